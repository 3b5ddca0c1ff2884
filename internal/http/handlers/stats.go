package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// UserStats returns the caller's dashboard counters.
func (a *App) UserStats(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	stats, err := a.Stats.UserStats(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"petsAdded":        stats.PetsAdded,
		"campaignsCreated": stats.CampaignsCreated,
		"totalDonated":     domain.CentsToAmount(stats.TotalDonatedCents).InexactFloat64(),
	})
}

// AdminStats returns the platform-wide counters, admin-only.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	if err := a.Policy.RequireAdmin(r.Context(), a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	stats, err := a.Stats.AdminStats(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"users":          stats.Users,
		"pets":           stats.Pets,
		"totalDonations": domain.CentsToAmount(stats.TotalDonationsCents).InexactFloat64(),
	})
}
