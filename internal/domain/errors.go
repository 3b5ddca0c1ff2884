package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateRequest = errors.New("duplicate adoption request")
	ErrCampaignPaused   = errors.New("campaign paused")
	ErrConflict         = errors.New("conflict")
	ErrInternal         = errors.New("internal error")
)
