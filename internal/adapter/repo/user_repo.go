package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repo.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user record.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, email, name, phone, address, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`, user.ID, user.Email, user.Name, user.Phone, user.Address, user.Role, user.CreatedAt)
	return err
}

// GetByEmail fetches a user by email.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, name, phone, address, role, created_at
FROM users
WHERE email = $1;
`, email)

	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.Address, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the allow-listed profile fields.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, email string, edit domain.UserProfileEdit) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET name    = COALESCE($2, name),
    phone   = COALESCE($3, phone),
    address = COALESCE($4, address)
WHERE email = $1;
`, email, edit.Name, edit.Phone, edit.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GrantAdmin assigns the admin role to the user with the given id.
func (r *UserRepositoryPG) GrantAdmin(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users SET role = $2 WHERE id = $1;
`, id, domain.UserRoleAdmin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RoleByEmail returns the current role of the account. Authorization reads
// this live so role changes take effect on the next request.
func (r *UserRepositoryPG) RoleByEmail(ctx context.Context, email string) (domain.UserRole, error) {
	row := r.pool.QueryRow(ctx, `
SELECT role FROM users WHERE email = $1;
`, email)

	var role domain.UserRole
	if err := row.Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("select role: %w", err)
	}
	return role, nil
}
