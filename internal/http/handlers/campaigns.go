package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

type createCampaignRequest struct {
	PetName            string          `json:"petName"`
	PetImage           string          `json:"petImage"`
	MaxDonationAmount  decimal.Decimal `json:"maxDonationAmount"`
	LastDateOfDonation time.Time       `json:"lastDateOfDonation"`
	ShortDescription   string          `json:"shortDescription"`
	LongDescription    string          `json:"longDescription"`
}

type campaignDTO struct {
	ID                 string    `json:"id"`
	OwnerEmail         string    `json:"ownerEmail"`
	PetName            string    `json:"petName"`
	PetImage           string    `json:"petImage"`
	MaxDonationAmount  float64   `json:"maxDonationAmount"`
	DonatedAmount      float64   `json:"donatedAmount"`
	LastDateOfDonation time.Time `json:"lastDateOfDonation"`
	ShortDescription   string    `json:"shortDescription"`
	LongDescription    string    `json:"longDescription"`
	IsPaused           bool      `json:"isPaused"`
	CreatedDate        time.Time `json:"createdDate"`
}

func toCampaignDTO(c *domain.Campaign) campaignDTO {
	return campaignDTO{
		ID:                 c.ID,
		OwnerEmail:         c.OwnerEmail,
		PetName:            c.PetName,
		PetImage:           c.PetImage,
		MaxDonationAmount:  domain.CentsToAmount(c.TargetCents).InexactFloat64(),
		DonatedAmount:      domain.CentsToAmount(c.DonatedCents).InexactFloat64(),
		LastDateOfDonation: c.LastDate,
		ShortDescription:   c.ShortDescription,
		LongDescription:    c.LongDescription,
		IsPaused:           c.IsPaused,
		CreatedDate:        c.CreatedAt,
	}
}

// CampaignsCreate starts a fundraising campaign owned by the caller. The
// server controls the donated total, the pause flag and the creation date.
func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.PetName == "" {
		a.message(w, http.StatusBadRequest, "petName is required")
		return
	}
	targetCents, err := domain.AmountToCents(req.MaxDonationAmount)
	if err != nil {
		a.domainError(w, err)
		return
	}

	campaign := &domain.Campaign{
		ID:               uuid.NewString(),
		OwnerEmail:       a.identity(r).Email,
		PetName:          req.PetName,
		PetImage:         req.PetImage,
		TargetCents:      targetCents,
		DonatedCents:     0,
		LastDate:         req.LastDateOfDonation,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		IsPaused:         false,
		CreatedAt:        time.Now().UTC(),
	}
	if err := a.Campaigns.Create(r.Context(), campaign); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"insertedId": campaign.ID})
}

// CampaignGet is public.
func (a *App) CampaignGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		a.message(w, http.StatusNotFound, "Invalid ID format")
		return
	}
	campaign, err := a.Campaigns.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(campaign))
}

// CampaignsByOwner lists the caller's own campaigns.
func (a *App) CampaignsByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := a.Policy.RequireSelf(a.identity(r), email); err != nil {
		a.domainError(w, err)
		return
	}
	campaigns, err := a.Campaigns.ListByOwner(r.Context(), email)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]campaignDTO, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, toCampaignDTO(&campaigns[i]))
	}
	a.json(w, http.StatusOK, items)
}

type donateRequest struct {
	DonationAmount decimal.Decimal `json:"donationAmount"`
	DonatorName    string          `json:"donatorName"`
	DonatorEmail   string          `json:"donatorEmail"`
}

// Donate records a contribution by the authenticated caller. The payer
// identity comes from the verified credential, never from the body.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountCents, err := domain.AmountToCents(req.DonationAmount)
	if err != nil {
		a.domainError(w, err)
		return
	}
	record, err := a.Ledger.Donate(r.Context(), chi.URLParam(r, "id"), amountCents, a.identity(r), req.DonatorName)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"insertedId":     record.ID,
		"donationAmount": domain.CentsToAmount(record.AmountCents).InexactFloat64(),
	})
}

// CampaignPause toggles the pause flag, owner-or-admin only.
func (a *App) CampaignPause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsPaused bool `json:"isPaused"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := a.Ledger.SetPaused(r.Context(), chi.URLParam(r, "id"), req.IsPaused, a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "campaign updated")
}

// CampaignEdit merges the allow-listed campaign fields. The donated total is
// derived state; a payload naming it is rejected outright.
func (a *App) CampaignEdit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		a.message(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var edit struct {
		PetName            *string          `json:"petName"`
		PetImage           *string          `json:"petImage"`
		MaxDonationAmount  *decimal.Decimal `json:"maxDonationAmount"`
		LastDateOfDonation *time.Time       `json:"lastDateOfDonation"`
		ShortDescription   *string          `json:"shortDescription"`
		LongDescription    *string          `json:"longDescription"`
	}
	if err := decodeAllowed(body, &edit, "petName", "petImage", "maxDonationAmount", "lastDateOfDonation", "shortDescription", "longDescription"); err != nil {
		a.domainError(w, err)
		return
	}

	campaignEdit := domain.CampaignEdit{
		PetName:          edit.PetName,
		PetImage:         edit.PetImage,
		LastDate:         edit.LastDateOfDonation,
		ShortDescription: edit.ShortDescription,
		LongDescription:  edit.LongDescription,
	}
	if edit.MaxDonationAmount != nil {
		targetCents, err := domain.AmountToCents(*edit.MaxDonationAmount)
		if err != nil {
			a.domainError(w, err)
			return
		}
		campaignEdit.TargetCents = &targetCents
	}
	if err := a.Ledger.EditCampaign(r.Context(), chi.URLParam(r, "id"), campaignEdit, a.identity(r)); err != nil {
		a.domainError(w, err)
		return
	}
	a.message(w, http.StatusOK, "campaign updated")
}

type paymentRecordDTO struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaignId"`
	DonatorEmail   string    `json:"donatorEmail"`
	DonatorName    string    `json:"donatorName"`
	DonationAmount float64   `json:"donationAmount"`
	Date           time.Time `json:"date"`
}

// CampaignDonators lists the live payment records of a campaign.
func (a *App) CampaignDonators(w http.ResponseWriter, r *http.Request) {
	records, err := a.Payments.ListByCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]paymentRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, paymentRecordDTO{
			ID:             record.ID,
			CampaignID:     record.CampaignID,
			DonatorEmail:   record.DonatorEmail,
			DonatorName:    record.DonatorName,
			DonationAmount: domain.CentsToAmount(record.AmountCents).InexactFloat64(),
			Date:           record.Date,
		})
	}
	a.json(w, http.StatusOK, items)
}
