package domain

import (
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// Domain errors for inquiries.
var (
	// ErrInquiryNotFound is returned when an inquiry doesn't exist or
	// belongs to another account; the cases are indistinguishable.
	ErrInquiryNotFound = apperrors.Wrap(apperrors.ErrNotFound, "inquiry not found")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid inquiry status")
)
