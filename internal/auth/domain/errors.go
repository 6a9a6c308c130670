package domain

import (
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// Domain errors for authentication.
var (
	// ErrInvalidCredentials covers every authentication failure: missing
	// key, unknown key, inactive or expired credential, inactive account,
	// and a plan without API access. Collapsing them prevents callers
	// from probing which keys exist.
	ErrInvalidCredentials = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")

	// ErrInsufficientScope is returned when a valid credential lacks the
	// scope an endpoint requires.
	ErrInsufficientScope = apperrors.Wrap(apperrors.ErrForbidden, "insufficient scope")

	// ErrAccountNotFound is returned when an account lookup fails.
	ErrAccountNotFound = apperrors.Wrap(apperrors.ErrNotFound, "account not found")

	// ErrCredentialNotFound is returned when a credential lookup fails.
	ErrCredentialNotFound = apperrors.Wrap(apperrors.ErrNotFound, "credential not found")

	// ErrInvalidScope is returned when a credential is created with an
	// unknown scope token.
	ErrInvalidScope = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid scope")

	// ErrInvalidPlan is returned when an account is created with an
	// unknown plan.
	ErrInvalidPlan = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid plan")
)
