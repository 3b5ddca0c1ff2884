package domain

import "time"

// Pet represents an adoption listing.
type Pet struct {
	ID               string
	OwnerEmail       string
	Name             string
	Category         string
	Image            string
	Age              int
	Location         string
	ShortDescription string
	LongDescription  string
	Adopted          bool
	DateAdded        time.Time
}

// PetEdit carries the listing fields an owner may change. The adopted flag
// and ownership are excluded; they move through dedicated operations.
type PetEdit struct {
	Name             *string
	Category         *string
	Image            *string
	Age              *int
	Location         *string
	ShortDescription *string
	LongDescription  *string
}
