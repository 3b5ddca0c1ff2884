package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

type createUserRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// UsersCreate registers an account on first login. Registering an email that
// already exists is a harmless no-op.
func (a *App) UsersCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		a.message(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := a.Users.GetByEmail(r.Context(), email); err == nil {
		a.json(w, http.StatusOK, map[string]any{"message": "User already exists", "insertedId": nil})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		a.domainError(w, err)
		return
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      domain.UserRoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"insertedId": user.ID})
}

// UserGet returns the caller's own profile.
func (a *App) UserGet(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

// UserUpdate merges the allow-listed profile fields of the caller's own
// account.
func (a *App) UserUpdate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var edit struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := decodeAllowed(body, &edit, "name", "phone", "address"); err != nil {
		a.domainError(w, err)
		return
	}
	profile := domain.UserProfileEdit{Name: edit.Name, Phone: edit.Phone, Address: edit.Address}
	if err := a.Users.UpdateProfile(r.Context(), email, profile); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "profile updated")
}

// UserIsAdmin lets the caller probe their own role.
func (a *App) UserIsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	identity := a.identity(r)
	if err := a.Policy.RequireSelf(identity, email); err != nil {
		a.domainError(w, err)
		return
	}
	admin, err := a.Policy.IsAdmin(r.Context(), identity)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"admin": admin})
}

// UserGrantAdmin promotes an account, admin-only.
func (a *App) UserGrantAdmin(w http.ResponseWriter, r *http.Request) {
	if err := a.Policy.RequireAdmin(r.Context(), a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Users.GrantAdmin(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "role updated")
}
