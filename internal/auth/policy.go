// Package auth holds the authorization decisions shared by every write path:
// self-match, owner-or-admin and admin-only. Roles are looked up live at
// decision time so a revocation takes effect on the next request, never from
// the credential itself.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// RoleLookup resolves the current role of an account. Satisfied by
// domain.UserRepository.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (domain.UserRole, error)
}

// Policy is a pure decision layer over a live role lookup.
type Policy struct {
	users RoleLookup
}

func NewPolicy(users RoleLookup) *Policy {
	return &Policy{users: users}
}

// RequireSelf allows only the identity whose email matches the target.
func (p *Policy) RequireSelf(identity domain.Identity, email string) error {
	if identity.Email == "" {
		return domain.ErrUnauthorized
	}
	if identity.Email != email {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin allows the resource owner, or anyone currently holding
// the admin role.
func (p *Policy) RequireOwnerOrAdmin(ctx context.Context, identity domain.Identity, ownerEmail string) error {
	if identity.Email == "" {
		return domain.ErrUnauthorized
	}
	if identity.Email == ownerEmail {
		return nil
	}
	admin, err := p.IsAdmin(ctx, identity)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAdmin allows only identities currently holding the admin role.
func (p *Policy) RequireAdmin(ctx context.Context, identity domain.Identity) error {
	if identity.Email == "" {
		return domain.ErrUnauthorized
	}
	admin, err := p.IsAdmin(ctx, identity)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	return nil
}

// IsAdmin reports whether the identity currently holds the admin role. An
// unknown account is simply not an admin.
func (p *Policy) IsAdmin(ctx context.Context, identity domain.Identity) (bool, error) {
	role, err := p.users.RoleByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("role lookup: %w", err)
	}
	return role == domain.UserRoleAdmin, nil
}
