package domain

import "time"

// AdoptionStatus enumerates the states of an adoption request. Accepted and
// rejected are terminal.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionAccepted AdoptionStatus = "accepted"
	AdoptionRejected AdoptionStatus = "rejected"
)

// Valid reports whether s is a known status value.
func (s AdoptionStatus) Valid() bool {
	switch s {
	case AdoptionPending, AdoptionAccepted, AdoptionRejected:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s AdoptionStatus) Terminal() bool {
	return s == AdoptionAccepted || s == AdoptionRejected
}

// AdoptionRequest is a pending claim by a user to adopt a specific pet,
// resolved by the pet's owner.
type AdoptionRequest struct {
	ID             string
	PetID          string
	PetName        string
	RequesterEmail string
	RequesterName  string
	PetOwnerEmail  string
	Status         AdoptionStatus
	CreatedAt      time.Time
}
