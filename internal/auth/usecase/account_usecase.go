package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	"github.com/rmarques/marketgate/internal/validation"

	v "github.com/jellydator/validation"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	accountRepo AccountRepository
}

// Create validates and stores a new seller account.
func (a *accountUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateAccountInput,
) (*authDomain.Account, error) {
	if err := v.ValidateStruct(input,
		v.Field(&input.Name, v.Required, validation.NotBlank, v.Length(1, 255)),
		v.Field(&input.Email, v.Required, validation.Email),
	); err != nil {
		return nil, validation.WrapValidationError(err)
	}
	if !input.Plan.Valid() {
		return nil, authDomain.ErrInvalidPlan
	}

	account := authDomain.NewAccount(input.Name, input.Email, input.Plan)
	if err := a.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Get retrieves an account by ID.
func (a *accountUseCase) Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error) {
	return a.accountRepo.Get(ctx, accountID)
}

// NewAccountUseCase creates a new AccountUseCase with the provided dependencies.
func NewAccountUseCase(accountRepo AccountRepository) AccountUseCase {
	return &accountUseCase{accountRepo: accountRepo}
}
