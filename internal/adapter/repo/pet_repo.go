package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// PetRepositoryPG implements domain.PetRepository backed by PostgreSQL.
type PetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPetRepository creates a new pet repo.
func NewPetRepository(pool *pgxpool.Pool) *PetRepositoryPG {
	return &PetRepositoryPG{pool: pool}
}

// Create inserts a new listing.
func (r *PetRepositoryPG) Create(ctx context.Context, pet *domain.Pet) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO pets (id, owner_email, name, category, image, age, location, short_description, long_description, adopted, date_added)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`, pet.ID, pet.OwnerEmail, pet.Name, pet.Category, pet.Image, pet.Age, pet.Location, pet.ShortDescription, pet.LongDescription, pet.Adopted, pet.DateAdded)
	return err
}

// GetByID fetches a listing by id.
func (r *PetRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_email, name, category, image, age, location, short_description, long_description, adopted, date_added
FROM pets
WHERE id = $1;
`, id)
	return scanPet(row)
}

// ListByOwner returns the owner's listings, newest first.
func (r *PetRepositoryPG) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Pet, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_email, name, category, image, age, location, short_description, long_description, adopted, date_added
FROM pets
WHERE owner_email = $1
ORDER BY date_added DESC;
`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *pet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update merges the allow-listed listing fields.
func (r *PetRepositoryPG) Update(ctx context.Context, id string, edit domain.PetEdit) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE pets
SET name              = COALESCE($2, name),
    category          = COALESCE($3, category),
    image             = COALESCE($4, image),
    age               = COALESCE($5, age),
    location          = COALESCE($6, location),
    short_description = COALESCE($7, short_description),
    long_description  = COALESCE($8, long_description)
WHERE id = $1;
`, id, edit.Name, edit.Category, edit.Image, edit.Age, edit.Location, edit.ShortDescription, edit.LongDescription)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetAdopted sets the adopted flag unconditionally (owner/admin override).
func (r *PetRepositoryPG) SetAdopted(ctx context.Context, id string, adopted bool) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE pets SET adopted = $2 WHERE id = $1;
`, id, adopted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAdopted flips adopted from false to true as one conditional update so
// concurrent accepts serialize on the store.
func (r *PetRepositoryPG) MarkAdopted(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE pets SET adopted = TRUE WHERE id = $1 AND adopted = FALSE;
`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a listing.
func (r *PetRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM pets WHERE id = $1;
`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var pet domain.Pet
	if err := row.Scan(&pet.ID, &pet.OwnerEmail, &pet.Name, &pet.Category, &pet.Image, &pet.Age, &pet.Location, &pet.ShortDescription, &pet.LongDescription, &pet.Adopted, &pet.DateAdded); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}
