package domain

import (
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// Domain errors for listings.
var (
	// ErrListingNotFound is returned when a listing doesn't exist or
	// belongs to another account. The two cases are indistinguishable so
	// a tenant cannot probe other tenants' IDs.
	ErrListingNotFound = apperrors.Wrap(apperrors.ErrNotFound, "listing not found")

	// ErrQuotaExceeded is returned when the account's plan has no room
	// for another non-terminal listing.
	ErrQuotaExceeded = apperrors.Wrap(apperrors.ErrConflict, "listing quota exceeded for plan")

	// ErrInvalidStatus is returned for an unknown or unpatchable status.
	ErrInvalidStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid listing status")

	// ErrInvalidCondition is returned for an unknown condition value.
	ErrInvalidCondition = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid listing condition")
)
