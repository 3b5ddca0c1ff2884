package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

type roleMap map[string]domain.UserRole

func (m roleMap) RoleByEmail(_ context.Context, email string) (domain.UserRole, error) {
	if role, ok := m[email]; ok {
		return role, nil
	}
	return "", domain.ErrNotFound
}

func testPolicy() *Policy {
	return NewPolicy(roleMap{
		"admin@example.com": domain.UserRoleAdmin,
		"user@example.com":  domain.UserRoleUser,
	})
}

func TestRequireSelf(t *testing.T) {
	p := testPolicy()

	if err := p.RequireSelf(domain.Identity{Email: "user@example.com"}, "user@example.com"); err != nil {
		t.Fatalf("RequireSelf() for matching email: %v", err)
	}
	err := p.RequireSelf(domain.Identity{Email: "user@example.com"}, "other@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("RequireSelf() for mismatch = %v, want ErrForbidden", err)
	}
	err = p.RequireSelf(domain.Identity{}, "user@example.com")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("RequireSelf() anonymous = %v, want ErrUnauthorized", err)
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()

	if err := p.RequireOwnerOrAdmin(ctx, domain.Identity{Email: "user@example.com"}, "user@example.com"); err != nil {
		t.Fatalf("RequireOwnerOrAdmin() for owner: %v", err)
	}
	if err := p.RequireOwnerOrAdmin(ctx, domain.Identity{Email: "admin@example.com"}, "user@example.com"); err != nil {
		t.Fatalf("RequireOwnerOrAdmin() for admin: %v", err)
	}
	err := p.RequireOwnerOrAdmin(ctx, domain.Identity{Email: "user@example.com"}, "other@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("RequireOwnerOrAdmin() for stranger = %v, want ErrForbidden", err)
	}
	err = p.RequireOwnerOrAdmin(ctx, domain.Identity{}, "user@example.com")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("RequireOwnerOrAdmin() anonymous = %v, want ErrUnauthorized", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()

	if err := p.RequireAdmin(ctx, domain.Identity{Email: "admin@example.com"}); err != nil {
		t.Fatalf("RequireAdmin() for admin: %v", err)
	}
	err := p.RequireAdmin(ctx, domain.Identity{Email: "user@example.com"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("RequireAdmin() for plain user = %v, want ErrForbidden", err)
	}
	// An account the store has never seen is simply not an admin.
	err = p.RequireAdmin(ctx, domain.Identity{Email: "ghost@example.com"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("RequireAdmin() for unknown account = %v, want ErrForbidden", err)
	}
}

func TestIsAdmin(t *testing.T) {
	p := testPolicy()
	ctx := context.Background()

	admin, err := p.IsAdmin(ctx, domain.Identity{Email: "admin@example.com"})
	if err != nil || !admin {
		t.Fatalf("IsAdmin(admin) = %v, %v, want true, nil", admin, err)
	}
	admin, err = p.IsAdmin(ctx, domain.Identity{Email: "ghost@example.com"})
	if err != nil || admin {
		t.Fatalf("IsAdmin(unknown) = %v, %v, want false, nil", admin, err)
	}
}
