package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// PaymentRepositoryPG implements domain.PaymentRepository backed by
// PostgreSQL.
type PaymentRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repo.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{pool: pool}
}

// Create appends a payment record.
func (r *PaymentRepositoryPG) Create(ctx context.Context, record *domain.PaymentRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO payment_records (id, campaign_id, donator_email, donator_name, amount_cents, date)
VALUES ($1, $2, $3, $4, $5, $6);
`, record.ID, record.CampaignID, record.DonatorEmail, record.DonatorName, record.AmountCents, record.Date)
	return err
}

// GetByID fetches a payment record by id.
func (r *PaymentRepositoryPG) GetByID(ctx context.Context, id string) (*domain.PaymentRecord, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, campaign_id, donator_email, donator_name, amount_cents, date
FROM payment_records
WHERE id = $1;
`, id)

	var record domain.PaymentRecord
	if err := row.Scan(&record.ID, &record.CampaignID, &record.DonatorEmail, &record.DonatorName, &record.AmountCents, &record.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes a record and reports whether it still existed, which lets
// racing reversals detect that another call already accounted for it.
func (r *PaymentRepositoryPG) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM payment_records WHERE id = $1;
`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByCampaign returns the live records of one campaign, newest first.
func (r *PaymentRepositoryPG) ListByCampaign(ctx context.Context, campaignID string) ([]domain.PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, donator_email, donator_name, amount_cents, date
FROM payment_records
WHERE campaign_id = $1
ORDER BY date DESC;
`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PaymentRecord
	for rows.Next() {
		var record domain.PaymentRecord
		if err := rows.Scan(&record.ID, &record.CampaignID, &record.DonatorEmail, &record.DonatorName, &record.AmountCents, &record.Date); err != nil {
			return nil, err
		}
		items = append(items, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByDonator returns a donator's payments joined with campaign display
// fields.
func (r *PaymentRepositoryPG) ListByDonator(ctx context.Context, donatorEmail string) ([]domain.DonatorPayment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT p.id, p.campaign_id, p.amount_cents, p.date, c.pet_name, c.pet_image
FROM payment_records p
JOIN donation_campaigns c ON c.id = p.campaign_id
WHERE p.donator_email = $1
ORDER BY p.date DESC;
`, donatorEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DonatorPayment
	for rows.Next() {
		var payment domain.DonatorPayment
		if err := rows.Scan(&payment.ID, &payment.CampaignID, &payment.AmountCents, &payment.Date, &payment.PetName, &payment.PetImage); err != nil {
			return nil, err
		}
		items = append(items, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
