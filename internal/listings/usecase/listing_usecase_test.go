package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
)

// mockListingRepository is a mock implementation of ListingRepository for testing.
type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, listing *listingsDomain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) Get(ctx context.Context, listingID, accountID uuid.UUID) (*listingsDomain.Listing, error) {
	args := m.Called(ctx, listingID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingsDomain.Listing), args.Error(1)
}

func (m *mockListingRepository) List(ctx context.Context, filter listingsDomain.ListFilter) ([]*listingsDomain.Listing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*listingsDomain.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *mockListingRepository) Update(ctx context.Context, listing *listingsDomain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) SoftDelete(ctx context.Context, listingID, accountID uuid.UUID, deletedAt time.Time) error {
	args := m.Called(ctx, listingID, accountID, deletedAt)
	return args.Error(0)
}

func (m *mockListingRepository) CountNonTerminal(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// fakeTxManager runs the function directly without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testAccount(plan authDomain.Plan) *authDomain.Account {
	return &authDomain.Account{
		ID:     uuid.Must(uuid.NewV7()),
		Plan:   plan,
		Active: true,
	}
}

func validCreateInput() *listingsDomain.CreateListingInput {
	return &listingsDomain.CreateListingInput{
		Title:     "Vintage camera",
		Price:     12500,
		Currency:  "EUR",
		Condition: listingsDomain.ConditionGood,
		Specs:     map[string]string{"brand": "Canon"},
		City:      "Lisbon",
		Country:   "PT",
	}
}

func TestListingUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateListing", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanStarter)

		repo.On("CountNonTerminal", ctx, account.ID).Return(int64(3), nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(listing *listingsDomain.Listing) bool {
			return listing.AccountID == account.ID &&
				listing.Status == listingsDomain.StatusActive &&
				listing.Title == "Vintage camera"
		})).Return(nil).Once()

		uc := NewListingUseCase(repo, fakeTxManager{})
		listing, err := uc.Create(ctx, account, validCreateInput())

		assert.NoError(t, err)
		assert.NotNil(t, listing)
		repo.AssertExpectations(t)
	})

	t.Run("Error_QuotaExhausted", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanStarter)

		repo.On("CountNonTerminal", ctx, account.ID).
			Return(int64(authDomain.PlanStarter.ListingLimit()), nil).
			Once()

		uc := NewListingUseCase(repo, fakeTxManager{})
		listing, err := uc.Create(ctx, account, validCreateInput())

		assert.Nil(t, listing)
		assert.ErrorIs(t, err, listingsDomain.ErrQuotaExceeded)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success_UnlimitedPlanSkipsCount", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanBusiness)

		repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		uc := NewListingUseCase(repo, fakeTxManager{})
		_, err := uc.Create(ctx, account, validCreateInput())

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CountNonTerminal", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidInput", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanStarter)

		input := validCreateInput()
		input.Price = 0

		uc := NewListingUseCase(repo, fakeTxManager{})
		listing, err := uc.Create(ctx, account, input)

		assert.Nil(t, listing)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_InvalidCondition", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanStarter)

		input := validCreateInput()
		input.Condition = "mint"

		uc := NewListingUseCase(repo, fakeTxManager{})
		_, err := uc.Create(ctx, account, input)

		assert.ErrorIs(t, err, listingsDomain.ErrInvalidCondition)
	})
}

func TestListingUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PartialUpdate", func(t *testing.T) {
		repo := &mockListingRepository{}
		account := testAccount(authDomain.PlanStarter)
		existing := listingsDomain.NewListing(account.ID, validCreateInput())

		newTitle := "Vintage camera (serviced)"
		newStatus := listingsDomain.StatusPaused

		repo.On("Get", ctx, existing.ID, account.ID).Return(existing, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(listing *listingsDomain.Listing) bool {
			return listing.Title == newTitle &&
				listing.Status == listingsDomain.StatusPaused &&
				listing.Price == 12500 // untouched field survives
		})).Return(nil).Once()

		uc := NewListingUseCase(repo, fakeTxManager{})
		updated, err := uc.Update(ctx, existing.ID, account.ID, &listingsDomain.UpdateListingInput{
			Title:  &newTitle,
			Status: &newStatus,
		})

		assert.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		repo.AssertExpectations(t)
	})

	t.Run("Error_DeletedStatusNotPatchable", func(t *testing.T) {
		repo := &mockListingRepository{}
		deleted := listingsDomain.StatusDeleted

		uc := NewListingUseCase(repo, fakeTxManager{})
		_, err := uc.Update(ctx, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), &listingsDomain.UpdateListingInput{
			Status: &deleted,
		})

		assert.ErrorIs(t, err, listingsDomain.ErrInvalidStatus)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockListingRepository{}
		listingID := uuid.Must(uuid.NewV7())
		accountID := uuid.Must(uuid.NewV7())

		repo.On("Get", ctx, listingID, accountID).
			Return(nil, listingsDomain.ErrListingNotFound).
			Once()

		uc := NewListingUseCase(repo, fakeTxManager{})
		_, err := uc.Update(ctx, listingID, accountID, &listingsDomain.UpdateListingInput{})

		assert.ErrorIs(t, err, listingsDomain.ErrListingNotFound)
	})
}

func TestListingUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mockListingRepository{}
	listingID := uuid.Must(uuid.NewV7())
	accountID := uuid.Must(uuid.NewV7())

	repo.On("SoftDelete", ctx, listingID, accountID, mock.Anything).Return(nil).Once()

	uc := NewListingUseCase(repo, fakeTxManager{})
	err := uc.Delete(ctx, listingID, accountID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_InvalidStatusFilter", func(t *testing.T) {
		repo := &mockListingRepository{}
		bogus := listingsDomain.Status("archived")

		uc := NewListingUseCase(repo, fakeTxManager{})
		_, _, err := uc.List(ctx, listingsDomain.ListFilter{
			AccountID: uuid.Must(uuid.NewV7()),
			Status:    &bogus,
			Page:      1,
			Limit:     20,
		})

		assert.ErrorIs(t, err, listingsDomain.ErrInvalidStatus)
	})
}
