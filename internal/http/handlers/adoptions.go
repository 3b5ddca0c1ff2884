package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

type createAdoptionRequest struct {
	PetID    string `json:"petId"`
	UserName string `json:"userName"`
}

type adoptionDTO struct {
	ID             string    `json:"id"`
	PetID          string    `json:"petId"`
	PetName        string    `json:"petName"`
	RequesterEmail string    `json:"userEmail"`
	RequesterName  string    `json:"userName"`
	PetOwnerEmail  string    `json:"petOwnerEmail"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toAdoptionDTO(req *domain.AdoptionRequest) adoptionDTO {
	return adoptionDTO{
		ID:             req.ID,
		PetID:          req.PetID,
		PetName:        req.PetName,
		RequesterEmail: req.RequesterEmail,
		RequesterName:  req.RequesterName,
		PetOwnerEmail:  req.PetOwnerEmail,
		Status:         string(req.Status),
		CreatedAt:      req.CreatedAt,
	}
}

// AdoptionsCreate files an adoption request for the caller.
func (a *App) AdoptionsCreate(w http.ResponseWriter, r *http.Request) {
	var req createAdoptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.PetID == "" {
		a.message(w, http.StatusBadRequest, "petId is required")
		return
	}
	request, err := a.Adoption.Request(r.Context(), req.PetID, a.identity(r), req.UserName)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toAdoptionDTO(request))
}

// AdoptionsCheck reports whether a request already exists for petId+email.
func (a *App) AdoptionsCheck(w http.ResponseWriter, r *http.Request) {
	petID := r.URL.Query().Get("petId")
	email := r.URL.Query().Get("email")
	if petID == "" || email == "" {
		a.message(w, http.StatusBadRequest, "petId and email are required")
		return
	}
	exists, err := a.Adoptions.Exists(r.Context(), petID, email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"hasRequested": exists})
}

// AdoptionsByOwner lists the requests targeting the caller's pets.
func (a *App) AdoptionsByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	requests, err := a.Adoptions.ListByPetOwner(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]adoptionDTO, 0, len(requests))
	for i := range requests {
		items = append(items, toAdoptionDTO(&requests[i]))
	}
	a.json(w, http.StatusOK, items)
}

// AdoptionAccept resolves a request in the requester's favor, pet-owner only.
func (a *App) AdoptionAccept(w http.ResponseWriter, r *http.Request) {
	if err := a.Adoption.Accept(r.Context(), chi.URLParam(r, "id"), a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "adoption accepted")
}

// AdoptionReject resolves a request against the requester, pet-owner only.
func (a *App) AdoptionReject(w http.ResponseWriter, r *http.Request) {
	if err := a.Adoption.Reject(r.Context(), chi.URLParam(r, "id"), a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "adoption rejected")
}

// AdoptionSetStatus is the owner-or-admin status override.
func (a *App) AdoptionSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	err := a.Adoption.SetStatus(r.Context(), chi.URLParam(r, "id"), domain.AdoptionStatus(req.Status), a.identity(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "status updated")
}
