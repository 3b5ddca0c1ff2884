package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rkmehedi/nexyn-pets-server/internal/auth"
	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
	"github.com/rkmehedi/nexyn-pets-server/internal/ledger"
	"github.com/rkmehedi/nexyn-pets-server/internal/middleware"
)

type fakeCampaigns struct {
	mu    sync.Mutex
	items map[string]*domain.Campaign
}

func newFakeCampaigns(campaigns ...*domain.Campaign) *fakeCampaigns {
	items := make(map[string]*domain.Campaign)
	for _, c := range campaigns {
		items[c.ID] = c
	}
	return &fakeCampaigns{items: items}
}

func (f *fakeCampaigns) Create(_ context.Context, campaign *domain.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCampaigns) ListByOwner(context.Context, string) ([]domain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaigns) AddDonated(_ context.Context, id string, deltaCents int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.DonatedCents += deltaCents
	return nil
}

func (f *fakeCampaigns) AddDonatedActive(_ context.Context, id string, deltaCents int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok || c.IsPaused {
		return false, nil
	}
	c.DonatedCents += deltaCents
	return true, nil
}

func (f *fakeCampaigns) SetPaused(_ context.Context, id string, paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsPaused = paused
	return nil
}

func (f *fakeCampaigns) Update(_ context.Context, id string, edit domain.CampaignEdit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if edit.PetName != nil {
		c.PetName = *edit.PetName
	}
	if edit.TargetCents != nil {
		c.TargetCents = *edit.TargetCents
	}
	return nil
}

func (f *fakeCampaigns) donated(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].DonatedCents
}

type fakePayments struct {
	mu    sync.Mutex
	items map[string]*domain.PaymentRecord
}

func newFakePayments() *fakePayments {
	return &fakePayments{items: make(map[string]*domain.PaymentRecord)}
}

func (f *fakePayments) Create(_ context.Context, record *domain.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[record.ID] = record
	return nil
}

func (f *fakePayments) GetByID(_ context.Context, id string) (*domain.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakePayments) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakePayments) ListByCampaign(context.Context, string) ([]domain.PaymentRecord, error) {
	return nil, nil
}

func (f *fakePayments) ListByDonator(context.Context, string) ([]domain.DonatorPayment, error) {
	return nil, nil
}

type roleMap map[string]domain.UserRole

func (m roleMap) RoleByEmail(_ context.Context, email string) (domain.UserRole, error) {
	if role, ok := m[email]; ok {
		return role, nil
	}
	return "", domain.ErrNotFound
}

func newTestApp(campaigns *fakeCampaigns, payments *fakePayments, roles roleMap) *App {
	if roles == nil {
		roles = roleMap{}
	}
	policy := auth.NewPolicy(roles)
	return &App{
		Campaigns: campaigns,
		Payments:  payments,
		Ledger:    ledger.NewEngine(campaigns, payments, policy, zerolog.Nop()),
		Policy:    policy,
		Logger:    zerolog.Nop(),
	}
}

// authedRequest builds a request carrying a verified identity and chi URL
// parameters, the same shape the router hands to a handler.
func authedRequest(method, target string, body io.Reader, email string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := req.Context()
	if email != "" {
		ctx = middleware.ContextWithIdentity(ctx, domain.Identity{Email: email})
	}
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}
