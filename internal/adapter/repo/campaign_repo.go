package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// CampaignRepositoryPG implements domain.CampaignRepository backed by
// PostgreSQL. All mutations of donated_cents are single UPDATE statements;
// the application never computes a new total from a previously read value.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repo.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// Create inserts a new campaign record.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donation_campaigns (id, owner_email, pet_name, pet_image, target_cents, donated_cents, last_date, short_description, long_description, is_paused, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`, campaign.ID, campaign.OwnerEmail, campaign.PetName, campaign.PetImage, campaign.TargetCents, campaign.DonatedCents, campaign.LastDate, campaign.ShortDescription, campaign.LongDescription, campaign.IsPaused, campaign.CreatedAt)
	return err
}

// GetByID fetches a campaign by id.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_email, pet_name, pet_image, target_cents, donated_cents, last_date, short_description, long_description, is_paused, created_at
FROM donation_campaigns
WHERE id = $1;
`, id)
	return scanCampaign(row)
}

// ListByOwner returns the owner's campaigns, newest first.
func (r *CampaignRepositoryPG) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_email, pet_name, pet_image, target_cents, donated_cents, last_date, short_description, long_description, is_paused, created_at
FROM donation_campaigns
WHERE owner_email = $1
ORDER BY created_at DESC;
`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AddDonated applies a signed delta to the donated total atomically.
func (r *CampaignRepositoryPG) AddDonated(ctx context.Context, id string, deltaCents int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE donation_campaigns SET donated_cents = donated_cents + $2 WHERE id = $1;
`, id, deltaCents)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddDonatedActive applies the delta only while the campaign is unpaused.
// The pause check rides in the same statement so a concurrent pause cannot
// slip between check and increment.
func (r *CampaignRepositoryPG) AddDonatedActive(ctx context.Context, id string, deltaCents int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE donation_campaigns SET donated_cents = donated_cents + $2 WHERE id = $1 AND is_paused = FALSE;
`, id, deltaCents)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetPaused toggles the pause flag.
func (r *CampaignRepositoryPG) SetPaused(ctx context.Context, id string, paused bool) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE donation_campaigns SET is_paused = $2 WHERE id = $1;
`, id, paused)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update merges the allow-listed campaign fields. donated_cents and
// is_paused are not reachable from here.
func (r *CampaignRepositoryPG) Update(ctx context.Context, id string, edit domain.CampaignEdit) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE donation_campaigns
SET pet_name          = COALESCE($2, pet_name),
    pet_image         = COALESCE($3, pet_image),
    target_cents      = COALESCE($4, target_cents),
    last_date         = COALESCE($5, last_date),
    short_description = COALESCE($6, short_description),
    long_description  = COALESCE($7, long_description)
WHERE id = $1;
`, id, edit.PetName, edit.PetImage, edit.TargetCents, edit.LastDate, edit.ShortDescription, edit.LongDescription)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := row.Scan(&campaign.ID, &campaign.OwnerEmail, &campaign.PetName, &campaign.PetImage, &campaign.TargetCents, &campaign.DonatedCents, &campaign.LastDate, &campaign.ShortDescription, &campaign.LongDescription, &campaign.IsPaused, &campaign.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &campaign, nil
}
