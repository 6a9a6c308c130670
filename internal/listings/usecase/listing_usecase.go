// Package usecase implements business logic orchestration for listing operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	"github.com/rmarques/marketgate/internal/database"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
	"github.com/rmarques/marketgate/internal/validation"

	v "github.com/jellydator/validation"
)

// listingUseCase implements ListingUseCase.
type listingUseCase struct {
	listingRepo ListingRepository
	txManager   database.TxManager
}

// Create validates the input, checks the plan quota, and stores the listing.
//
// The quota check and the insert run in one transaction so concurrent
// creations on the same account serialize at the store. The check is
// count-then-insert: without a store-level constraint it is best-effort,
// and a race can briefly overshoot the limit by one.
func (l *listingUseCase) Create(
	ctx context.Context,
	account *authDomain.Account,
	input *listingsDomain.CreateListingInput,
) (*listingsDomain.Listing, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	listing := listingsDomain.NewListing(account.ID, input)

	err := l.txManager.WithTx(ctx, func(ctx context.Context) error {
		limit := account.Plan.ListingLimit()
		if limit >= 0 {
			count, err := l.listingRepo.CountNonTerminal(ctx, account.ID)
			if err != nil {
				return err
			}
			if count >= int64(limit) {
				return listingsDomain.ErrQuotaExceeded
			}
		}
		return l.listingRepo.Create(ctx, listing)
	})
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// List returns one page of the account's listings with the total count.
func (l *listingUseCase) List(
	ctx context.Context,
	filter listingsDomain.ListFilter,
) ([]*listingsDomain.Listing, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, listingsDomain.ErrInvalidStatus
	}
	return l.listingRepo.List(ctx, filter)
}

// Get retrieves one of the account's listings.
func (l *listingUseCase) Get(
	ctx context.Context,
	listingID, accountID uuid.UUID,
) (*listingsDomain.Listing, error) {
	return l.listingRepo.Get(ctx, listingID, accountID)
}

// Update applies the patchable fields to one of the account's listings.
func (l *listingUseCase) Update(
	ctx context.Context,
	listingID, accountID uuid.UUID,
	input *listingsDomain.UpdateListingInput,
) (*listingsDomain.Listing, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	listing, err := l.listingRepo.Get(ctx, listingID, accountID)
	if err != nil {
		return nil, err
	}

	listing.Apply(input, time.Now().UTC())

	if err := l.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete soft deletes one of the account's listings.
func (l *listingUseCase) Delete(ctx context.Context, listingID, accountID uuid.UUID) error {
	return l.listingRepo.SoftDelete(ctx, listingID, accountID, time.Now().UTC())
}

// validateCreateInput checks the create payload's required fields.
func validateCreateInput(input *listingsDomain.CreateListingInput) error {
	if err := v.ValidateStruct(input,
		v.Field(&input.Title, v.Required, validation.NotBlank, v.Length(1, 255)),
		v.Field(&input.Description, v.Length(0, 10000)),
		v.Field(&input.Price, v.Required, v.Min(1)),
		v.Field(&input.Currency, v.Required, validation.CurrencyCode),
		v.Field(&input.City, v.Length(0, 255)),
		v.Field(&input.Country, v.Length(0, 2)),
	); err != nil {
		return validation.WrapValidationError(err)
	}
	if !input.Condition.Valid() {
		return listingsDomain.ErrInvalidCondition
	}
	return nil
}

// validateUpdateInput checks whichever patchable fields are present.
func validateUpdateInput(input *listingsDomain.UpdateListingInput) error {
	if input.Title != nil {
		if err := v.Validate(*input.Title, v.Required, validation.NotBlank, v.Length(1, 255)); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	if input.Price != nil && *input.Price < 1 {
		return validation.WrapValidationError(v.NewError("validation_min", "price must be positive"))
	}
	if input.Currency != nil {
		if err := v.Validate(*input.Currency, validation.CurrencyCode); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	if input.Condition != nil && !input.Condition.Valid() {
		return listingsDomain.ErrInvalidCondition
	}
	if input.Status != nil && !input.Status.Patchable() {
		return listingsDomain.ErrInvalidStatus
	}
	return nil
}

// NewListingUseCase creates a new ListingUseCase with the provided dependencies.
func NewListingUseCase(listingRepo ListingRepository, txManager database.TxManager) ListingUseCase {
	return &listingUseCase{
		listingRepo: listingRepo,
		txManager:   txManager,
	}
}
