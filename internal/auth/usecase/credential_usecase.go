// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authService "github.com/rmarques/marketgate/internal/auth/service"
	"github.com/rmarques/marketgate/internal/validation"

	v "github.com/jellydator/validation"
)

// touchTimeout bounds the background last_used_at update so it cannot
// leak goroutines when the database is slow.
const touchTimeout = 5 * time.Second

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	accountRepo    AccountRepository
	credentialRepo CredentialRepository
	keyService     authService.KeyService
	logger         *slog.Logger
}

// Create issues a new API key for an account.
//
// This method:
// 1. Validates the input and scope tokens
// 2. Verifies the account exists
// 3. Generates a random key and stores only its hash
// 4. Returns the plain key to the caller (only shown once)
func (c *credentialUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateCredentialInput,
) (*authDomain.CreateCredentialOutput, error) {
	if err := v.ValidateStruct(input,
		v.Field(&input.Name, v.Required, validation.NotBlank, v.Length(1, 255)),
		v.Field(&input.Scopes, v.Required),
	); err != nil {
		return nil, validation.WrapValidationError(err)
	}
	for _, scope := range input.Scopes {
		if !scope.Valid() {
			return nil, authDomain.ErrInvalidScope
		}
	}

	if _, err := c.accountRepo.Get(ctx, input.AccountID); err != nil {
		return nil, err
	}

	plainKey, keyHash, keyPrefix, err := c.keyService.GenerateKey()
	if err != nil {
		return nil, err
	}

	credential := authDomain.NewCredential(
		input.AccountID,
		input.Name,
		keyHash,
		keyPrefix,
		input.Scopes,
		input.ExpiresAt,
	)

	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}

	return &authDomain.CreateCredentialOutput{
		Credential: credential,
		PlainKey:   plainKey,
	}, nil
}

// Authenticate resolves a presented API key to its credential and account.
//
// This method:
// 1. Rejects malformed keys before touching the database
// 2. Looks up the credential by the key's SHA-256 hash
// 3. Checks the credential is active and not expired
// 4. Checks the owning account is active and its plan allows API access
// 5. Records last_used_at in the background
//
// Security Notes:
//   - Every failure path returns ErrInvalidCredentials so callers cannot
//     distinguish unknown keys from revoked, expired, or downgraded ones
//   - The last_used_at update is fire-and-forget: a failure there is
//     logged but never blocks or fails the request
func (c *credentialUseCase) Authenticate(ctx context.Context, plainKey string) (*authDomain.Identity, error) {
	if !c.keyService.ValidShape(plainKey) {
		return nil, authDomain.ErrInvalidCredentials
	}

	credential, err := c.credentialRepo.GetByKeyHash(ctx, c.keyService.HashKey(plainKey))
	if err != nil {
		// If credential not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrCredentialNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !credential.Active {
		return nil, authDomain.ErrInvalidCredentials
	}

	if credential.Expired(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	account, err := c.accountRepo.Get(ctx, credential.AccountID)
	if err != nil {
		if errors.Is(err, authDomain.ErrAccountNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.Active {
		return nil, authDomain.ErrInvalidCredentials
	}

	// A downgraded plan closes API access even for previously valid keys.
	if !account.Plan.AllowsAPI() {
		return nil, authDomain.ErrInvalidCredentials
	}

	go c.touchLastUsed(credential.ID)

	return &authDomain.Identity{
		Credential: credential,
		Account:    account,
	}, nil
}

// touchLastUsed updates the credential's last_used_at off the request path.
func (c *credentialUseCase) touchLastUsed(credentialID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()

	now := time.Now().UTC()
	if err := c.credentialRepo.TouchLastUsed(ctx, credentialID, now); err != nil {
		c.logger.Warn("failed to update credential last_used_at",
			slog.String("credential_id", credentialID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// NewCredentialUseCase creates a new CredentialUseCase with the provided dependencies.
func NewCredentialUseCase(
	accountRepo AccountRepository,
	credentialRepo CredentialRepository,
	keyService authService.KeyService,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		accountRepo:    accountRepo,
		credentialRepo: credentialRepo,
		keyService:     keyService,
		logger:         logger,
	}
}
