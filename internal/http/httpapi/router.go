package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rkmehedi/nexyn-pets-server/internal/http/handlers"
	"github.com/rkmehedi/nexyn-pets-server/internal/infra"
	"github.com/rkmehedi/nexyn-pets-server/internal/middleware"
)

// NewRouter builds the route table. Public reads sit outside the auth group;
// everything that mutates state requires a verified identity.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	rateLimit := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	// Public
	r.Get("/healthz", app.Health)
	r.With(rateLimit).Post("/jwt", app.IssueToken)
	r.Post("/users", app.UsersCreate)
	r.Get("/pets/{id}", app.PetGet)
	r.Get("/donations/{id}", app.CampaignGet)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))

		r.Get("/user/{email}", app.UserGet)
		r.Patch("/user/{email}", app.UserUpdate)
		r.Get("/user/stats/{email}", app.UserStats)
		r.Get("/users/admin/{email}", app.UserIsAdmin)
		r.Patch("/users/admin/{id}", app.UserGrantAdmin)

		r.Post("/pets", app.PetsCreate)
		r.Get("/pets/user/{email}", app.PetsByOwner)
		r.Patch("/pets/{id}", app.PetUpdate)
		r.Patch("/pets/adopt/{id}", app.PetSetAdopted)
		r.Delete("/pets/{id}", app.PetDelete)

		r.Post("/adoptions", app.AdoptionsCreate)
		r.Get("/adoptions/check", app.AdoptionsCheck)
		r.Get("/adoptions/{email}", app.AdoptionsByOwner)
		r.Patch("/adoptions/accept/{id}", app.AdoptionAccept)
		r.Patch("/adoptions/reject/{id}", app.AdoptionReject)
		r.Patch("/adoptions/{id}", app.AdoptionSetStatus)

		r.Post("/donations", app.CampaignsCreate)
		r.Get("/donations/user/{email}", app.CampaignsByOwner)
		r.Get("/donations/donators/{id}", app.CampaignDonators)
		r.Patch("/donations/{id}", app.Donate)
		r.Patch("/donations/pause/{id}", app.CampaignPause)
		r.Patch("/donations-edit/{id}", app.CampaignEdit)

		r.Delete("/payments/{id}", app.PaymentReverse)
		r.Get("/payments/{email}", app.PaymentsByDonator)
		r.With(rateLimit).Post("/create-payment-intent", app.CreatePaymentIntent)

		r.Get("/admin/stats", app.AdminStats)
	})

	return r
}
