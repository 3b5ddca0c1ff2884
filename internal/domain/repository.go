package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, email string, edit UserProfileEdit) error
	GrantAdmin(ctx context.Context, id string) error
	RoleByEmail(ctx context.Context, email string) (UserRole, error)
}

// PetRepository handles persistence for adoption listings.
type PetRepository interface {
	Create(ctx context.Context, pet *Pet) error
	GetByID(ctx context.Context, id string) (*Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error)
	Update(ctx context.Context, id string, edit PetEdit) error
	SetAdopted(ctx context.Context, id string, adopted bool) error
	// MarkAdopted flips the adopted flag from false to true as a single
	// conditional update and reports whether this call won the flip.
	MarkAdopted(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// CampaignRepository handles persistence for donation campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Campaign, error)
	// AddDonated applies a signed delta to the campaign's donated total as a
	// single atomic update.
	AddDonated(ctx context.Context, id string, deltaCents int64) error
	// AddDonatedActive is AddDonated restricted to unpaused campaigns; it
	// reports whether a row was updated.
	AddDonatedActive(ctx context.Context, id string, deltaCents int64) (bool, error)
	SetPaused(ctx context.Context, id string, paused bool) error
	Update(ctx context.Context, id string, edit CampaignEdit) error
}

// PaymentRepository is the append/revert log of individual donations.
type PaymentRepository interface {
	Create(ctx context.Context, record *PaymentRecord) error
	GetByID(ctx context.Context, id string) (*PaymentRecord, error)
	// Delete removes a record and reports whether it still existed.
	Delete(ctx context.Context, id string) (bool, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]PaymentRecord, error)
	ListByDonator(ctx context.Context, donatorEmail string) ([]DonatorPayment, error)
}

// AdoptionRepository handles persistence for adoption requests.
type AdoptionRepository interface {
	Create(ctx context.Context, request *AdoptionRequest) error
	GetByID(ctx context.Context, id string) (*AdoptionRequest, error)
	Exists(ctx context.Context, petID, requesterEmail string) (bool, error)
	ListByPetOwner(ctx context.Context, ownerEmail string) ([]AdoptionRequest, error)
	// SetStatusFromPending transitions a request out of pending as a single
	// conditional update and reports whether the transition applied.
	SetStatusFromPending(ctx context.Context, id string, status AdoptionStatus) (bool, error)
	// RejectOtherPending auto-rejects every pending request for the pet
	// except the one identified by exceptID.
	RejectOtherPending(ctx context.Context, petID, exceptID string) error
}

// StatsRepository computes the dashboard aggregates.
type StatsRepository interface {
	UserStats(ctx context.Context, email string) (*UserStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}
