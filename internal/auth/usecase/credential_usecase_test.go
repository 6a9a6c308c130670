package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// mockAccountRepository is a mock implementation of AccountRepository for testing.
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) Get(ctx context.Context, accountID uuid.UUID) (*authDomain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// mockCredentialRepository is a mock implementation of CredentialRepository for testing.
type mockCredentialRepository struct {
	mock.Mock
}

func (m *mockCredentialRepository) Create(ctx context.Context, credential *authDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *mockCredentialRepository) Get(ctx context.Context, credentialID uuid.UUID) (*authDomain.Credential, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Credential), args.Error(1)
}

func (m *mockCredentialRepository) GetByKeyHash(ctx context.Context, keyHash string) (*authDomain.Credential, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Credential), args.Error(1)
}

func (m *mockCredentialRepository) TouchLastUsed(ctx context.Context, credentialID uuid.UUID, usedAt time.Time) error {
	args := m.Called(ctx, credentialID, usedAt)
	return args.Error(0)
}

// mockKeyService is a mock implementation of KeyService for testing.
type mockKeyService struct {
	mock.Mock
}

func (m *mockKeyService) GenerateKey() (plainKey string, keyHash string, prefix string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

func (m *mockKeyService) HashKey(plainKey string) string {
	args := m.Called(plainKey)
	return args.String(0)
}

func (m *mockKeyService) ValidShape(plainKey string) bool {
	args := m.Called(plainKey)
	return args.Bool(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeAccount(plan authDomain.Plan) *authDomain.Account {
	return &authDomain.Account{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   "test-account",
		Email:  "seller@example.com",
		Plan:   plan,
		Active: true,
	}
}

func activeCredential(accountID uuid.UUID, scopes []authDomain.Scope) *authDomain.Credential {
	return &authDomain.Credential{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		Name:      "test-credential",
		KeyHash:   "abcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
		KeyPrefix: "mk_test123",
		Scopes:    scopes,
		Active:    true,
	}
}

func TestCredentialUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateCredential", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		account := activeAccount(authDomain.PlanPro)
		plainKey := "mk_testkeyvalue"
		keyHash := "abcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"

		mockAccountRepo.On("Get", ctx, account.ID).
			Return(account, nil).
			Once()

		mockKeySvc.On("GenerateKey").
			Return(plainKey, keyHash, "mk_testkey", nil).
			Once()

		mockCredentialRepo.On("Create", ctx, mock.MatchedBy(func(credential *authDomain.Credential) bool {
			return credential.AccountID == account.ID &&
				credential.KeyHash == keyHash &&
				credential.KeyPrefix == "mk_testkey" &&
				credential.Active &&
				!credential.CreatedAt.IsZero()
		})).
			Return(nil).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		output, err := uc.Create(ctx, &authDomain.CreateCredentialInput{
			AccountID: account.ID,
			Name:      "ci-bot",
			Scopes:    []authDomain.Scope{authDomain.ScopeListingsRead, authDomain.ScopeListingsWrite},
		})

		assert.NoError(t, err)
		assert.NotNil(t, output)
		assert.Equal(t, plainKey, output.PlainKey)
		assert.Equal(t, "mk_testkey", output.Credential.KeyPrefix)
		mockAccountRepo.AssertExpectations(t)
		mockCredentialRepo.AssertExpectations(t)
		mockKeySvc.AssertExpectations(t)
	})

	t.Run("Error_UnknownScope", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		output, err := uc.Create(ctx, &authDomain.CreateCredentialInput{
			AccountID: uuid.Must(uuid.NewV7()),
			Name:      "ci-bot",
			Scopes:    []authDomain.Scope{"listings:admin"},
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrInvalidScope)
		mockAccountRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		output, err := uc.Create(ctx, &authDomain.CreateCredentialInput{
			AccountID: uuid.Must(uuid.NewV7()),
			Name:      "   ",
			Scopes:    []authDomain.Scope{authDomain.ScopeListingsRead},
		})

		assert.Nil(t, output)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_AccountNotFound", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		accountID := uuid.Must(uuid.NewV7())
		mockAccountRepo.On("Get", ctx, accountID).
			Return(nil, authDomain.ErrAccountNotFound).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		output, err := uc.Create(ctx, &authDomain.CreateCredentialInput{
			AccountID: accountID,
			Name:      "ci-bot",
			Scopes:    []authDomain.Scope{authDomain.ScopeListingsRead},
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, authDomain.ErrAccountNotFound)
		mockKeySvc.AssertNotCalled(t, "GenerateKey")
	})
}

func TestCredentialUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	plainKey := "mk_validshapedkey"
	keyHash := "abcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890"

	t.Run("Success_ValidKey", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		account := activeAccount(authDomain.PlanStarter)
		credential := activeCredential(account.ID, []authDomain.Scope{authDomain.ScopeListingsRead})

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(credential, nil).
			Once()
		mockAccountRepo.On("Get", ctx, account.ID).
			Return(account, nil).
			Once()
		// Fire-and-forget update may or may not land before the test ends.
		mockCredentialRepo.On("TouchLastUsed", mock.Anything, credential.ID, mock.Anything).
			Return(nil).
			Maybe()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, credential.ID, identity.Credential.ID)
		assert.Equal(t, account.ID, identity.Account.ID)
		mockKeySvc.AssertExpectations(t)
	})

	t.Run("Error_MalformedKey", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		mockKeySvc.On("ValidShape", "garbage").Return(false).Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, "garbage")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		mockCredentialRepo.AssertNotCalled(t, "GetByKeyHash", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownKey", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(nil, authDomain.ErrCredentialNotFound).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_InactiveCredential", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		credential := activeCredential(uuid.Must(uuid.NewV7()), nil)
		credential.Active = false

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(credential, nil).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		mockAccountRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_ExpiredCredential", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		credential := activeCredential(uuid.Must(uuid.NewV7()), nil)
		expired := time.Now().UTC().Add(-time.Hour)
		credential.ExpiresAt = &expired

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(credential, nil).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_InactiveAccount", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		account := activeAccount(authDomain.PlanPro)
		account.Active = false
		credential := activeCredential(account.ID, nil)

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(credential, nil).
			Once()
		mockAccountRepo.On("Get", ctx, account.ID).
			Return(account, nil).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_PlanWithoutAPIAccess", func(t *testing.T) {
		mockAccountRepo := &mockAccountRepository{}
		mockCredentialRepo := &mockCredentialRepository{}
		mockKeySvc := &mockKeyService{}

		account := activeAccount(authDomain.PlanFree)
		credential := activeCredential(account.ID, nil)

		mockKeySvc.On("ValidShape", plainKey).Return(true).Once()
		mockKeySvc.On("HashKey", plainKey).Return(keyHash).Once()
		mockCredentialRepo.On("GetByKeyHash", ctx, keyHash).
			Return(credential, nil).
			Once()
		mockAccountRepo.On("Get", ctx, account.ID).
			Return(account, nil).
			Once()

		uc := NewCredentialUseCase(mockAccountRepo, mockCredentialRepo, mockKeySvc, testLogger())
		identity, err := uc.Authenticate(ctx, plainKey)

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}
