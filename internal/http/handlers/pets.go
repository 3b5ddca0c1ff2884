package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

type createPetRequest struct {
	PetName          string `json:"petName"`
	PetCategory      string `json:"petCategory"`
	PetImage         string `json:"petImage"`
	PetAge           int    `json:"petAge"`
	PetLocation      string `json:"petLocation"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
}

type petDTO struct {
	ID               string    `json:"id"`
	OwnerEmail       string    `json:"ownerEmail"`
	PetName          string    `json:"petName"`
	PetCategory      string    `json:"petCategory"`
	PetImage         string    `json:"petImage"`
	PetAge           int       `json:"petAge"`
	PetLocation      string    `json:"petLocation"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	Adopted          bool      `json:"adopted"`
	DateAdded        time.Time `json:"dateAdded"`
}

func toPetDTO(p *domain.Pet) petDTO {
	return petDTO{
		ID:               p.ID,
		OwnerEmail:       p.OwnerEmail,
		PetName:          p.Name,
		PetCategory:      p.Category,
		PetImage:         p.Image,
		PetAge:           p.Age,
		PetLocation:      p.Location,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Adopted:          p.Adopted,
		DateAdded:        p.DateAdded,
	}
}

// PetsCreate adds a listing owned by the caller. The server controls the
// owner, the adopted flag and the timestamp.
func (a *App) PetsCreate(w http.ResponseWriter, r *http.Request) {
	var req createPetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.PetName == "" {
		a.message(w, http.StatusBadRequest, "petName is required")
		return
	}

	pet := &domain.Pet{
		ID:               uuid.NewString(),
		OwnerEmail:       a.identity(r).Email,
		Name:             req.PetName,
		Category:         req.PetCategory,
		Image:            req.PetImage,
		Age:              req.PetAge,
		Location:         req.PetLocation,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Adopted:          false,
		DateAdded:        time.Now().UTC(),
	}
	if err := a.Pets.Create(r.Context(), pet); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"insertedId": pet.ID})
}

// PetGet is public.
func (a *App) PetGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		a.message(w, http.StatusNotFound, "Invalid ID format")
		return
	}
	pet, err := a.Pets.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toPetDTO(pet))
}

// PetsByOwner lists the caller's own listings.
func (a *App) PetsByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	pets, err := a.Pets.ListByOwner(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]petDTO, 0, len(pets))
	for i := range pets {
		items = append(items, toPetDTO(&pets[i]))
	}
	a.json(w, http.StatusOK, items)
}

// PetUpdate merges the allow-listed listing fields, owner-or-admin only.
func (a *App) PetUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pet, err := a.Pets.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Policy.RequireOwnerOrAdmin(r.Context(), a.identity(r), pet.OwnerEmail); err != nil {
		a.domainError(w, err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var edit struct {
		PetName          *string `json:"petName"`
		PetCategory      *string `json:"petCategory"`
		PetImage         *string `json:"petImage"`
		PetAge           *int    `json:"petAge"`
		PetLocation      *string `json:"petLocation"`
		ShortDescription *string `json:"shortDescription"`
		LongDescription  *string `json:"longDescription"`
	}
	if err := decodeAllowed(body, &edit, "petName", "petCategory", "petImage", "petAge", "petLocation", "shortDescription", "longDescription"); err != nil {
		a.domainError(w, err)
		return
	}
	petEdit := domain.PetEdit{
		Name:             edit.PetName,
		Category:         edit.PetCategory,
		Image:            edit.PetImage,
		Age:              edit.PetAge,
		Location:         edit.PetLocation,
		ShortDescription: edit.ShortDescription,
		LongDescription:  edit.LongDescription,
	}
	if err := a.Pets.Update(r.Context(), id, petEdit); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "pet updated")
}

// PetSetAdopted manually overrides the adopted flag, owner-or-admin only.
func (a *App) PetSetAdopted(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Adopted bool `json:"adopted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	pet, err := a.Pets.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Policy.RequireOwnerOrAdmin(r.Context(), a.identity(r), pet.OwnerEmail); err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Pets.SetAdopted(r.Context(), id, req.Adopted); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "pet updated")
}

// PetDelete removes a listing, owner-or-admin only.
func (a *App) PetDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pet, err := a.Pets.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Policy.RequireOwnerOrAdmin(r.Context(), a.identity(r), pet.OwnerEmail); err != nil {
		a.domainError(w, err)
		return
	}
	if err := a.Pets.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "pet deleted")
}
