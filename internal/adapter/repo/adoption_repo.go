package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// AdoptionRepositoryPG implements domain.AdoptionRepository backed by
// PostgreSQL.
type AdoptionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAdoptionRepository creates a new adoption repo.
func NewAdoptionRepository(pool *pgxpool.Pool) *AdoptionRepositoryPG {
	return &AdoptionRepositoryPG{pool: pool}
}

// Create inserts a new adoption request.
func (r *AdoptionRepositoryPG) Create(ctx context.Context, request *domain.AdoptionRequest) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO adoption_requests (id, pet_id, pet_name, requester_email, requester_name, pet_owner_email, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`, request.ID, request.PetID, request.PetName, request.RequesterEmail, request.RequesterName, request.PetOwnerEmail, request.Status, request.CreatedAt)
	return err
}

// GetByID fetches an adoption request by id.
func (r *AdoptionRepositoryPG) GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, pet_id, pet_name, requester_email, requester_name, pet_owner_email, status, created_at
FROM adoption_requests
WHERE id = $1;
`, id)
	return scanAdoption(row)
}

// Exists reports whether the requester already has a request for the pet.
func (r *AdoptionRepositoryPG) Exists(ctx context.Context, petID, requesterEmail string) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM adoption_requests WHERE pet_id = $1 AND requester_email = $2
);
`, petID, requesterEmail)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByPetOwner returns the requests targeting the owner's pets, newest
// first.
func (r *AdoptionRepositoryPG) ListByPetOwner(ctx context.Context, ownerEmail string) ([]domain.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, pet_id, pet_name, requester_email, requester_name, pet_owner_email, status, created_at
FROM adoption_requests
WHERE pet_owner_email = $1
ORDER BY created_at DESC;
`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AdoptionRequest
	for rows.Next() {
		request, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SetStatusFromPending moves a request out of pending as a single
// conditional update, so terminal states cannot be overwritten.
func (r *AdoptionRepositoryPG) SetStatusFromPending(ctx context.Context, id string, status domain.AdoptionStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE adoption_requests SET status = $2 WHERE id = $1 AND status = $3;
`, id, status, domain.AdoptionPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RejectOtherPending auto-rejects every pending request for the pet except
// the accepted one.
func (r *AdoptionRepositoryPG) RejectOtherPending(ctx context.Context, petID, exceptID string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE adoption_requests SET status = $3 WHERE pet_id = $1 AND id <> $2 AND status = $4;
`, petID, exceptID, domain.AdoptionRejected, domain.AdoptionPending)
	return err
}

func scanAdoption(row pgx.Row) (*domain.AdoptionRequest, error) {
	var request domain.AdoptionRequest
	if err := row.Scan(&request.ID, &request.PetID, &request.PetName, &request.RequesterEmail, &request.RequesterName, &request.PetOwnerEmail, &request.Status, &request.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}
