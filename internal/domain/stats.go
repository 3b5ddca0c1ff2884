package domain

// UserStats are the per-user dashboard counters.
type UserStats struct {
	PetsAdded         int64
	CampaignsCreated  int64
	TotalDonatedCents int64
}

// AdminStats are the platform-wide dashboard counters.
type AdminStats struct {
	Users               int64
	Pets                int64
	TotalDonationsCents int64
}
