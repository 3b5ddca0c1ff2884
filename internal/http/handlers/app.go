package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rkmehedi/nexyn-pets-server/internal/adoption"
	"github.com/rkmehedi/nexyn-pets-server/internal/auth"
	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
	"github.com/rkmehedi/nexyn-pets-server/internal/ledger"
	"github.com/rkmehedi/nexyn-pets-server/internal/middleware"
	"github.com/rkmehedi/nexyn-pets-server/internal/providers/stripegw"
)

// App bundles the dependencies of the HTTP handlers.
type App struct {
	Users     domain.UserRepository
	Pets      domain.PetRepository
	Campaigns domain.CampaignRepository
	Payments  domain.PaymentRepository
	Adoptions domain.AdoptionRepository
	Stats     domain.StatsRepository
	Ledger    *ledger.Engine
	Adoption  *adoption.Workflow
	Policy    *auth.Policy
	Gateway   *stripegw.Client
	Logger    zerolog.Logger
	JWTSecret string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) message(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"message": message})
}

// domainError maps domain sentinel errors onto stable status codes and short
// messages; nothing internal leaks to the client.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.message(w, http.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, domain.ErrForbidden):
		a.message(w, http.StatusForbidden, "forbidden access")
	case errors.Is(err, domain.ErrCampaignPaused):
		a.message(w, http.StatusForbidden, "This campaign is currently paused.")
	case errors.Is(err, domain.ErrNotFound):
		a.message(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateRequest):
		a.message(w, http.StatusBadRequest, "You have already requested to adopt this pet.")
	case errors.Is(err, domain.ErrInvalidInput):
		a.message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		a.message(w, http.StatusConflict, err.Error())
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.message(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a *App) identity(r *http.Request) domain.Identity {
	return middleware.IdentityFromContext(r.Context())
}

// decodeAllowed unmarshals body into dst after checking that every top-level
// field is on the entity's allow-list, so derived or ownership fields can
// never ride along in a merge.
func decodeAllowed(body []byte, dst any, allowed ...string) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = struct{}{}
	}
	for name := range fields {
		if _, ok := allowedSet[name]; !ok {
			return fmt.Errorf("%w: field %q is not editable", domain.ErrInvalidInput, name)
		}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	return nil
}
