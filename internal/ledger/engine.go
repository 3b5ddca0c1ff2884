// Package ledger keeps each campaign's donated total synchronized with the
// append/revert log of payment records. The total is only ever touched
// through atomic store increments paired with a record write; when the second
// half of a pair fails, the engine applies a compensating delta so the total
// never exceeds the sum of the records that exist.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rkmehedi/nexyn-pets-server/internal/auth"
	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// Engine coordinates campaign-total mutation with payment-record writes.
type Engine struct {
	campaigns domain.CampaignRepository
	payments  domain.PaymentRepository
	policy    *auth.Policy
	logger    zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewEngine(campaigns domain.CampaignRepository, payments domain.PaymentRepository, policy *auth.Policy, logger zerolog.Logger) *Engine {
	return &Engine{
		campaigns: campaigns,
		payments:  payments,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Donate increments the campaign's donated total and appends a payment
// record. The increment is a single conditional store update that also
// enforces the pause flag, so a pause landing after the precondition read
// still blocks the donation. A failed record write rolls the increment back.
func (e *Engine) Donate(ctx context.Context, campaignID string, amountCents int64, donator domain.Identity, donatorName string) (*domain.PaymentRecord, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", domain.ErrInvalidInput)
	}

	campaign, err := e.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.IsPaused {
		return nil, domain.ErrCampaignPaused
	}

	applied, err := e.campaigns.AddDonatedActive(ctx, campaignID, amountCents)
	if err != nil {
		return nil, fmt.Errorf("%w: increment campaign total: %v", domain.ErrInternal, err)
	}
	if !applied {
		// Lost a race with a pause or a removal between the read and the
		// increment. Re-read to report the right condition.
		if _, err := e.campaigns.GetByID(ctx, campaignID); err != nil {
			return nil, err
		}
		return nil, domain.ErrCampaignPaused
	}

	record := &domain.PaymentRecord{
		ID:           e.newID(),
		CampaignID:   campaignID,
		DonatorEmail: donator.Email,
		DonatorName:  donatorName,
		AmountCents:  amountCents,
		Date:         e.now().UTC(),
	}
	if err := e.payments.Create(ctx, record); err != nil {
		e.compensate(ctx, campaignID, -amountCents, record.ID)
		return nil, fmt.Errorf("%w: create payment record: %v", domain.ErrInternal, err)
	}
	return record, nil
}

// Reverse undoes a payment: the campaign total is decremented first, then
// the record is deleted. Reversing a record that no longer exists is a
// no-op, so an at-least-once retry of the pair cannot double-apply.
func (e *Engine) Reverse(ctx context.Context, paymentID string, requester domain.Identity) error {
	record, err := e.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := e.policy.RequireOwnerOrAdmin(ctx, requester, record.DonatorEmail); err != nil {
		return err
	}

	if err := e.campaigns.AddDonated(ctx, record.CampaignID, -record.AmountCents); err != nil {
		return fmt.Errorf("%w: decrement campaign total: %v", domain.ErrInternal, err)
	}
	deleted, err := e.payments.Delete(ctx, record.ID)
	if err != nil {
		e.compensate(ctx, record.CampaignID, record.AmountCents, record.ID)
		return fmt.Errorf("%w: delete payment record: %v", domain.ErrInternal, err)
	}
	if !deleted {
		// A concurrent reversal removed the record and already accounted for
		// one decrement; undo ours.
		if err := e.compensate(ctx, record.CampaignID, record.AmountCents, record.ID); err != nil {
			return fmt.Errorf("%w: undo duplicate decrement: %v", domain.ErrInternal, err)
		}
	}
	return nil
}

// SetPaused toggles the campaign's pause flag, owner-or-admin only.
func (e *Engine) SetPaused(ctx context.Context, campaignID string, paused bool, requester domain.Identity) error {
	campaign, err := e.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := e.policy.RequireOwnerOrAdmin(ctx, requester, campaign.OwnerEmail); err != nil {
		return err
	}
	return e.campaigns.SetPaused(ctx, campaignID, paused)
}

// EditCampaign applies an allow-listed field edit, owner-or-admin only. The
// donated total is derived state and is not part of CampaignEdit at all.
func (e *Engine) EditCampaign(ctx context.Context, campaignID string, edit domain.CampaignEdit, requester domain.Identity) error {
	if edit.TargetCents != nil && *edit.TargetCents <= 0 {
		return fmt.Errorf("%w: target amount must be positive", domain.ErrInvalidInput)
	}
	campaign, err := e.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := e.policy.RequireOwnerOrAdmin(ctx, requester, campaign.OwnerEmail); err != nil {
		return err
	}
	return e.campaigns.Update(ctx, campaignID, edit)
}

// compensate applies a corrective delta after a half-applied mutation. A
// failure here is the one place the ledger cannot self-heal, so it logs
// everything needed for manual reconciliation.
func (e *Engine) compensate(ctx context.Context, campaignID string, deltaCents int64, paymentID string) error {
	if err := e.campaigns.AddDonated(ctx, campaignID, deltaCents); err != nil {
		e.logger.Error().
			Err(err).
			Str("campaign_id", campaignID).
			Int64("delta_cents", deltaCents).
			Str("payment_id", paymentID).
			Msg("ledger compensation failed, manual reconciliation required")
		return err
	}
	return nil
}
