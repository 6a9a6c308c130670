// Package usecase defines business logic interfaces for listing operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
)

// ListingRepository defines persistence operations for listings. Every
// read and write is filtered by account ID so ownership isolation is a
// property of the query, not of handler-level checks.
type ListingRepository interface {
	// Create stores a new listing in the repository.
	Create(ctx context.Context, listing *listingsDomain.Listing) error

	// Get retrieves a listing owned by the account.
	// Returns ErrListingNotFound when the row is absent or owned by
	// another account.
	Get(ctx context.Context, listingID, accountID uuid.UUID) (*listingsDomain.Listing, error)

	// List returns one page of the account's listings, newest first,
	// along with the total row count for the filter.
	List(ctx context.Context, filter listingsDomain.ListFilter) ([]*listingsDomain.Listing, int64, error)

	// Update persists the listing's mutable fields, filtered by owner.
	// Returns ErrListingNotFound when no row matched.
	Update(ctx context.Context, listing *listingsDomain.Listing) error

	// SoftDelete marks the listing deleted and stamps deleted_at.
	// Returns ErrListingNotFound when no row matched.
	SoftDelete(ctx context.Context, listingID, accountID uuid.UUID, deletedAt time.Time) error

	// CountNonTerminal counts the account's listings that still count
	// against the plan quota.
	CountNonTerminal(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// ListingUseCase defines business logic operations for listings.
type ListingUseCase interface {
	// Create validates the input, checks the plan quota, and stores the
	// listing. Returns ErrQuotaExceeded when the plan is full.
	Create(
		ctx context.Context,
		account *authDomain.Account,
		input *listingsDomain.CreateListingInput,
	) (*listingsDomain.Listing, error)

	// List returns one page of the account's listings with the total.
	List(
		ctx context.Context,
		filter listingsDomain.ListFilter,
	) ([]*listingsDomain.Listing, int64, error)

	// Get retrieves one of the account's listings.
	Get(ctx context.Context, listingID, accountID uuid.UUID) (*listingsDomain.Listing, error)

	// Update applies the patchable fields to one of the account's listings.
	Update(
		ctx context.Context,
		listingID, accountID uuid.UUID,
		input *listingsDomain.UpdateListingInput,
	) (*listingsDomain.Listing, error)

	// Delete soft deletes one of the account's listings.
	Delete(ctx context.Context, listingID, accountID uuid.UUID) error
}
