package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// StatsRepositoryPG computes the dashboard aggregates with single
// round-trips.
type StatsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new stats repo.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepositoryPG {
	return &StatsRepositoryPG{pool: pool}
}

// UserStats returns the per-user dashboard counters.
func (r *StatsRepositoryPG) UserStats(ctx context.Context, email string) (*domain.UserStats, error) {
	row := r.pool.QueryRow(ctx, `
SELECT
    (SELECT COUNT(*) FROM pets WHERE owner_email = $1),
    (SELECT COUNT(*) FROM donation_campaigns WHERE owner_email = $1),
    (SELECT COALESCE(SUM(amount_cents), 0) FROM payment_records WHERE donator_email = $1);
`, email)

	var stats domain.UserStats
	if err := row.Scan(&stats.PetsAdded, &stats.CampaignsCreated, &stats.TotalDonatedCents); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminStats returns the platform-wide dashboard counters.
func (r *StatsRepositoryPG) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	row := r.pool.QueryRow(ctx, `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM pets),
    (SELECT COALESCE(SUM(donated_cents), 0) FROM donation_campaigns);
`)

	var stats domain.AdminStats
	if err := row.Scan(&stats.Users, &stats.Pets, &stats.TotalDonationsCents); err != nil {
		return nil, err
	}
	return &stats, nil
}
