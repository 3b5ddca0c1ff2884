package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestDonateRecordsContribution(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com", TargetCents: 100000})
	payments := newFakePayments()
	app := newTestApp(campaigns, payments, nil)

	req := authedRequest(http.MethodPatch, "/donations/c1",
		strings.NewReader(`{"donationAmount": 25.50, "donatorName": "Donor"}`),
		"donor@example.com", map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()
	app.Donate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["insertedId"] == "" {
		t.Fatal("response missing insertedId")
	}
	if got := body["donationAmount"].(float64); got != 25.5 {
		t.Fatalf("donationAmount = %v, want 25.5", got)
	}
	if got := campaigns.donated("c1"); got != 2550 {
		t.Fatalf("donated total = %d, want 2550", got)
	}
}

func TestDonatePausedCampaignReturns403(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com", IsPaused: true})
	app := newTestApp(campaigns, newFakePayments(), nil)

	req := authedRequest(http.MethodPatch, "/donations/c1",
		strings.NewReader(`{"donationAmount": 10}`),
		"donor@example.com", map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()
	app.Donate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "This campaign is currently paused." {
		t.Fatalf("message = %v", got)
	}
	if got := campaigns.donated("c1"); got != 0 {
		t.Fatalf("donated total = %d, want 0", got)
	}
}

func TestDonateInvalidAmountReturns400(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com"})
	app := newTestApp(campaigns, newFakePayments(), nil)

	for _, payload := range []string{`{"donationAmount": 0}`, `{"donationAmount": -5}`, `{"donationAmount": 0.005}`} {
		req := authedRequest(http.MethodPatch, "/donations/c1",
			strings.NewReader(payload), "donor@example.com", map[string]string{"id": "c1"})
		rec := httptest.NewRecorder()
		app.Donate(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: status = %d, want 400", payload, rec.Code)
		}
	}
}

func TestCampaignEditRejectsDerivedFields(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com", TargetCents: 100000})
	app := newTestApp(campaigns, newFakePayments(), nil)

	for _, payload := range []string{
		`{"donatedAmount": 99999}`,
		`{"isPaused": false}`,
		`{"ownerEmail": "thief@example.com"}`,
	} {
		req := authedRequest(http.MethodPatch, "/donations-edit/c1",
			strings.NewReader(payload), "owner@example.com", map[string]string{"id": "c1"})
		rec := httptest.NewRecorder()
		app.CampaignEdit(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: status = %d, want 400", payload, rec.Code)
		}
	}
	if got := campaigns.donated("c1"); got != 0 {
		t.Fatalf("donated total = %d, want 0", got)
	}
}

func TestCampaignEditMergesAllowedFields(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com", PetName: "Rex", TargetCents: 100000})
	app := newTestApp(campaigns, newFakePayments(), nil)

	req := authedRequest(http.MethodPatch, "/donations-edit/c1",
		strings.NewReader(`{"petName": "Bella", "maxDonationAmount": 2000}`),
		"owner@example.com", map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()
	app.CampaignEdit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	campaign, _ := campaigns.GetByID(req.Context(), "c1")
	if campaign.PetName != "Bella" || campaign.TargetCents != 200000 {
		t.Fatalf("campaign after edit = %+v", campaign)
	}
}

func TestCampaignEditStrangerForbidden(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com", TargetCents: 100000})
	app := newTestApp(campaigns, newFakePayments(), nil)

	req := authedRequest(http.MethodPatch, "/donations-edit/c1",
		strings.NewReader(`{"petName": "Bella"}`),
		"stranger@example.com", map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()
	app.CampaignEdit(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCampaignGetInvalidIDFormat(t *testing.T) {
	app := newTestApp(newFakeCampaigns(), newFakePayments(), nil)

	req := authedRequest(http.MethodGet, "/donations/not-a-uuid", nil, "", map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()
	app.CampaignGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Invalid ID format" {
		t.Fatalf("message = %v", got)
	}
}

func TestCampaignGetReturnsDTO(t *testing.T) {
	id := uuid.NewString()
	campaigns := newFakeCampaigns(&domain.Campaign{
		ID: id, OwnerEmail: "owner@example.com", PetName: "Rex",
		TargetCents: 100000, DonatedCents: 2550, IsPaused: true,
	})
	app := newTestApp(campaigns, newFakePayments(), nil)

	req := authedRequest(http.MethodGet, "/donations/"+id, nil, "", map[string]string{"id": id})
	rec := httptest.NewRecorder()
	app.CampaignGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["donatedAmount"].(float64) != 25.5 {
		t.Fatalf("donatedAmount = %v, want 25.5", body["donatedAmount"])
	}
	if body["maxDonationAmount"].(float64) != 1000 {
		t.Fatalf("maxDonationAmount = %v, want 1000", body["maxDonationAmount"])
	}
	if body["isPaused"].(bool) != true {
		t.Fatal("isPaused not reported")
	}
}

func TestCampaignPauseOwnerOnly(t *testing.T) {
	campaigns := newFakeCampaigns(&domain.Campaign{ID: "c1", OwnerEmail: "owner@example.com"})
	app := newTestApp(campaigns, newFakePayments(), nil)

	req := authedRequest(http.MethodPatch, "/donations/pause/c1",
		strings.NewReader(`{"isPaused": true}`),
		"stranger@example.com", map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()
	app.CampaignPause(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger pause status = %d, want 403", rec.Code)
	}

	req = authedRequest(http.MethodPatch, "/donations/pause/c1",
		strings.NewReader(`{"isPaused": true}`),
		"owner@example.com", map[string]string{"id": "c1"})
	rec = httptest.NewRecorder()
	app.CampaignPause(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner pause status = %d, want 200", rec.Code)
	}
	campaign, _ := campaigns.GetByID(req.Context(), "c1")
	if !campaign.IsPaused {
		t.Fatal("campaign not paused")
	}
}
