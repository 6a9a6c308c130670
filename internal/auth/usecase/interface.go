// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
)

// AccountRepository defines persistence operations for seller accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	// Create stores a new account in the repository.
	Create(ctx context.Context, account *authDomain.Account) error

	// Get retrieves an account by ID. Returns ErrAccountNotFound if not found.
	Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error)
}

// CredentialRepository defines persistence operations for API credentials.
// Implementations must support transaction-aware operations via context propagation.
type CredentialRepository interface {
	// Create stores a new credential in the repository.
	Create(ctx context.Context, credential *authDomain.Credential) error

	// Get retrieves a credential by ID. Returns ErrCredentialNotFound if not found.
	Get(ctx context.Context, credentialID uuid.UUID) (*authDomain.Credential, error)

	// GetByKeyHash retrieves a credential by its key hash.
	// Returns ErrCredentialNotFound if not found.
	GetByKeyHash(ctx context.Context, keyHash string) (*authDomain.Credential, error)

	// TouchLastUsed records when the credential last authenticated a request.
	TouchLastUsed(ctx context.Context, credentialID uuid.UUID, usedAt time.Time) error
}

// AccountUseCase defines business logic operations for seller accounts.
type AccountUseCase interface {
	// Create validates and stores a new account.
	Create(ctx context.Context, input *authDomain.CreateAccountInput) (*authDomain.Account, error)

	// Get retrieves an account by ID.
	Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error)
}

// CredentialUseCase defines business logic operations for API credentials.
type CredentialUseCase interface {
	// Create issues a new API key for an account. The plain key in the
	// output is shown exactly once; only its hash is persisted.
	Create(
		ctx context.Context,
		input *authDomain.CreateCredentialInput,
	) (*authDomain.CreateCredentialOutput, error)

	// Authenticate resolves a presented API key to its credential and
	// account. Every failure mode maps to ErrInvalidCredentials.
	Authenticate(ctx context.Context, plainKey string) (*authDomain.Identity, error)
}
