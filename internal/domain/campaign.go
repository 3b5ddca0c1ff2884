package domain

import "time"

// Campaign is a fundraising effort with a running donated total. The
// DonatedCents field is derived from the payment records referencing the
// campaign and is mutated only through the ledger engine.
type Campaign struct {
	ID               string
	OwnerEmail       string
	PetName          string
	PetImage         string
	TargetCents      int64
	DonatedCents     int64
	LastDate         time.Time
	ShortDescription string
	LongDescription  string
	IsPaused         bool
	CreatedAt        time.Time
}

// CampaignEdit carries the editable campaign fields. DonatedCents, IsPaused
// and ownership are structurally unrepresentable here so a field merge can
// never touch them.
type CampaignEdit struct {
	PetName          *string
	PetImage         *string
	TargetCents      *int64
	LastDate         *time.Time
	ShortDescription *string
	LongDescription  *string
}
