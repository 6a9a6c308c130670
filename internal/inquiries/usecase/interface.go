// Package usecase defines business logic interfaces for inquiry operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// InquiryRepository defines persistence operations for inquiries. Reads
// and writes are filtered by account ID for ownership isolation.
type InquiryRepository interface {
	// Get retrieves an inquiry owned by the account.
	// Returns ErrInquiryNotFound when absent or owned by another account.
	Get(ctx context.Context, inquiryID, accountID uuid.UUID) (*inquiriesDomain.Inquiry, error)

	// List returns one page of the account's inquiries, newest first,
	// along with the total row count for the filter.
	List(ctx context.Context, filter inquiriesDomain.ListFilter) ([]*inquiriesDomain.Inquiry, int64, error)

	// Update persists the inquiry's mutable fields, filtered by owner.
	// Returns ErrInquiryNotFound when no row matched.
	Update(ctx context.Context, inquiry *inquiriesDomain.Inquiry) error
}

// OutboundEnqueuer persists an outbound message in pending state. The
// dispatcher picks it up on its next run.
type OutboundEnqueuer interface {
	Enqueue(ctx context.Context, message *outboundDomain.Message) error
}

// InquiryUseCase defines business logic operations for inquiries.
type InquiryUseCase interface {
	// List returns one page of the account's inquiries with the total.
	List(ctx context.Context, filter inquiriesDomain.ListFilter) ([]*inquiriesDomain.Inquiry, int64, error)

	// Get retrieves one of the account's inquiries.
	Get(ctx context.Context, inquiryID, accountID uuid.UUID) (*inquiriesDomain.Inquiry, error)

	// Update applies the patchable fields to one of the account's
	// inquiries. Moving an inquiry to replied with a reply body enqueues
	// the outbound reply email.
	Update(
		ctx context.Context,
		inquiryID, accountID uuid.UUID,
		input *inquiriesDomain.UpdateInquiryInput,
	) (*inquiriesDomain.Inquiry, error)
}
