// Package adoption implements the request/accept/reject state machine over
// adoption requests. Accepting is linearized on a conditional flip of the
// pet's adopted flag, so exactly one accept can win per pet; the winner
// auto-rejects every other pending request for that pet.
package adoption

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rkmehedi/nexyn-pets-server/internal/auth"
	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// Workflow drives adoption-request state transitions.
type Workflow struct {
	requests domain.AdoptionRepository
	pets     domain.PetRepository
	policy   *auth.Policy
	logger   zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewWorkflow(requests domain.AdoptionRepository, pets domain.PetRepository, policy *auth.Policy, logger zerolog.Logger) *Workflow {
	return &Workflow{
		requests: requests,
		pets:     pets,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Request files a new pending adoption request. A requester may hold at most
// one request per pet, and already-adopted pets accept no new requests.
func (w *Workflow) Request(ctx context.Context, petID string, requester domain.Identity, requesterName string) (*domain.AdoptionRequest, error) {
	pet, err := w.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.Adopted {
		return nil, fmt.Errorf("%w: pet already adopted", domain.ErrConflict)
	}
	exists, err := w.requests.Exists(ctx, petID, requester.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRequest
	}

	request := &domain.AdoptionRequest{
		ID:             w.newID(),
		PetID:          pet.ID,
		PetName:        pet.Name,
		RequesterEmail: requester.Email,
		RequesterName:  requesterName,
		PetOwnerEmail:  pet.OwnerEmail,
		Status:         domain.AdoptionPending,
		CreatedAt:      w.now().UTC(),
	}
	if err := w.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Accept resolves a pending request in the requester's favor: the pet is
// marked adopted, the request becomes accepted, and every other pending
// request for the pet is auto-rejected. Only the pet's owner may accept.
func (w *Workflow) Accept(ctx context.Context, requestID string, actor domain.Identity) error {
	request, err := w.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if actor.Email != request.PetOwnerEmail {
		return domain.ErrForbidden
	}
	return w.accept(ctx, request)
}

// Reject resolves a pending request against the requester. Only the pet's
// owner may reject.
func (w *Workflow) Reject(ctx context.Context, requestID string, actor domain.Identity) error {
	request, err := w.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if actor.Email != request.PetOwnerEmail {
		return domain.ErrForbidden
	}
	return w.transition(ctx, request, domain.AdoptionRejected)
}

// SetStatus is the administrative override of accept/reject, gated
// owner-or-admin. Terminal states still cannot be left.
func (w *Workflow) SetStatus(ctx context.Context, requestID string, status domain.AdoptionStatus, actor domain.Identity) error {
	if !status.Valid() || status == domain.AdoptionPending {
		return fmt.Errorf("%w: unsupported status %q", domain.ErrInvalidInput, status)
	}
	request, err := w.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := w.policy.RequireOwnerOrAdmin(ctx, actor, request.PetOwnerEmail); err != nil {
		return err
	}
	if status == domain.AdoptionAccepted {
		return w.accept(ctx, request)
	}
	return w.transition(ctx, request, status)
}

func (w *Workflow) accept(ctx context.Context, request *domain.AdoptionRequest) error {
	if request.Status.Terminal() {
		return fmt.Errorf("%w: request already %s", domain.ErrConflict, request.Status)
	}

	// Conditional flip is the linearization point: the loser of two
	// concurrent accepts sees no row updated and gets a conflict.
	adopted, err := w.pets.MarkAdopted(ctx, request.PetID)
	if err != nil {
		return err
	}
	if !adopted {
		return fmt.Errorf("%w: pet already adopted", domain.ErrConflict)
	}

	applied, err := w.requests.SetStatusFromPending(ctx, request.ID, domain.AdoptionAccepted)
	if err != nil {
		w.logger.Error().
			Err(err).
			Str("request_id", request.ID).
			Str("pet_id", request.PetID).
			Msg("pet adopted but request status update failed")
		return fmt.Errorf("%w: accept adoption request: %v", domain.ErrInternal, err)
	}
	if !applied {
		return fmt.Errorf("%w: request already resolved", domain.ErrConflict)
	}

	if err := w.requests.RejectOtherPending(ctx, request.PetID, request.ID); err != nil {
		// The accept itself stands; stale pending requests are harmless
		// because the adopted flag blocks any further accept.
		w.logger.Error().
			Err(err).
			Str("pet_id", request.PetID).
			Msg("cascade reject of pending requests failed")
	}
	return nil
}

func (w *Workflow) transition(ctx context.Context, request *domain.AdoptionRequest, status domain.AdoptionStatus) error {
	if request.Status.Terminal() {
		return fmt.Errorf("%w: request already %s", domain.ErrConflict, request.Status)
	}
	applied, err := w.requests.SetStatusFromPending(ctx, request.ID, status)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: request already resolved", domain.ErrConflict)
	}
	return nil
}
