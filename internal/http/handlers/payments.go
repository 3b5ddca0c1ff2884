package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// PaymentReverse undoes a donation. The ledger makes this idempotent, so
// retrying a reversal that already went through succeeds without effect.
func (a *App) PaymentReverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		a.message(w, http.StatusNotFound, "Donation not found.")
		return
	}
	if err := a.Ledger.Reverse(r.Context(), id, a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "donation reversed")
}

type donatorPaymentDTO struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaignId"`
	DonationAmount float64   `json:"donationAmount"`
	Date           time.Time `json:"date"`
	PetName        string    `json:"petName"`
	PetImage       string    `json:"petImage"`
}

// PaymentsByDonator lists the caller's own donations with campaign details.
func (a *App) PaymentsByDonator(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	payments, err := a.Payments.ListByDonator(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]donatorPaymentDTO, 0, len(payments))
	for _, payment := range payments {
		items = append(items, donatorPaymentDTO{
			ID:             payment.ID,
			CampaignID:     payment.CampaignID,
			DonationAmount: domain.CentsToAmount(payment.AmountCents).InexactFloat64(),
			Date:           payment.Date,
			PetName:        payment.PetName,
			PetImage:       payment.PetImage,
		})
	}
	a.json(w, http.StatusOK, items)
}

type paymentIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreatePaymentIntent opens a card charge with the external gateway. The
// gateway refuses charges under $0.50, so the minimum is enforced here
// before any outbound call.
func (a *App) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountCents, err := domain.AmountToCents(req.Amount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if amountCents < domain.MinimumChargeCents {
		a.message(w, http.StatusBadRequest, "Amount must be at least $0.50")
		return
	}

	clientSecret, err := a.Gateway.CreatePaymentIntent(r.Context(), amountCents, "usd")
	if err != nil {
		a.Logger.Error().Err(err).Msg("create payment intent failed")
		a.message(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}
