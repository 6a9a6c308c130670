package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
)

// mockInquiryUseCase is a mock implementation of InquiryUseCase for testing.
type mockInquiryUseCase struct {
	mock.Mock
}

func (m *mockInquiryUseCase) List(ctx context.Context, filter inquiriesDomain.ListFilter) ([]*inquiriesDomain.Inquiry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*inquiriesDomain.Inquiry), args.Get(1).(int64), args.Error(2)
}

func (m *mockInquiryUseCase) Get(ctx context.Context, inquiryID, accountID uuid.UUID) (*inquiriesDomain.Inquiry, error) {
	args := m.Called(ctx, inquiryID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inquiriesDomain.Inquiry), args.Error(1)
}

func (m *mockInquiryUseCase) Update(ctx context.Context, inquiryID, accountID uuid.UUID, input *inquiriesDomain.UpdateInquiryInput) (*inquiriesDomain.Inquiry, error) {
	args := m.Called(ctx, inquiryID, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inquiriesDomain.Inquiry), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity() *authDomain.Identity {
	accountID := uuid.Must(uuid.NewV7())
	return &authDomain.Identity{
		Credential: &authDomain.Credential{
			ID:        uuid.Must(uuid.NewV7()),
			AccountID: accountID,
			Scopes:    []authDomain.Scope{authDomain.ScopeWildcard},
			Active:    true,
		},
		Account: &authDomain.Account{
			ID:     accountID,
			Plan:   authDomain.PlanStarter,
			Active: true,
		},
	}
}

func setupRouter(uc *mockInquiryUseCase, identity *authDomain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewInquiryHandler(uc, testLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx := authHTTP.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	router.GET("/v1/inquiries", handler.ListHandler)
	router.GET("/v1/inquiries/:id", handler.GetHandler)
	router.PATCH("/v1/inquiries/:id", handler.UpdateHandler)
	return router
}

func sampleInquiry(accountID uuid.UUID) *inquiriesDomain.Inquiry {
	now := time.Now().UTC()
	return &inquiriesDomain.Inquiry{
		ID:          uuid.Must(uuid.NewV7()),
		AccountID:   accountID,
		ListingID:   uuid.Must(uuid.NewV7()),
		SenderName:  "Interested Buyer",
		SenderEmail: "buyer@example.com",
		Message:     "Is this still available?",
		Status:      inquiriesDomain.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInquiryHandler_List(t *testing.T) {
	t.Run("Success_EnvelopeWithMeta", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()
		inquiry := sampleInquiry(identity.Account.ID)

		uc.On("List", mock.Anything, mock.MatchedBy(func(filter inquiriesDomain.ListFilter) bool {
			return filter.AccountID == identity.Account.ID && filter.Page == 1 && filter.Limit == 20
		})).Return([]*inquiriesDomain.Inquiry{inquiry}, int64(1), nil).Once()

		router := setupRouter(uc, identity)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/inquiries", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []map[string]any `json:"data"`
			Meta map[string]any   `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "buyer@example.com", body.Data[0]["sender_email"])
		assert.Equal(t, float64(1), body.Meta["total"])
	})

	t.Run("Success_StatusFilter", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()

		uc.On("List", mock.Anything, mock.MatchedBy(func(filter inquiriesDomain.ListFilter) bool {
			return filter.Status != nil && *filter.Status == inquiriesDomain.StatusNew
		})).Return([]*inquiriesDomain.Inquiry{}, int64(0), nil).Once()

		router := setupRouter(uc, identity)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/inquiries?status=new", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidPage", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		router := setupRouter(uc, testIdentity())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/inquiries?page=-1", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})
}

func TestInquiryHandler_Get(t *testing.T) {
	t.Run("Error_NotFoundParity", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()
		inquiryID := uuid.Must(uuid.NewV7())

		// Absent and foreign rows produce the identical response.
		uc.On("Get", mock.Anything, inquiryID, identity.Account.ID).
			Return(nil, inquiriesDomain.ErrInquiryNotFound).
			Once()

		router := setupRouter(uc, identity)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/inquiries/"+inquiryID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("Error_MalformedID", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		router := setupRouter(uc, testIdentity())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/inquiries/not-a-uuid", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInquiryHandler_Update(t *testing.T) {
	t.Run("Success_ReplyBodyForwarded", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()
		inquiry := sampleInquiry(identity.Account.ID)
		inquiry.Status = inquiriesDomain.StatusReplied

		uc.On("Update", mock.Anything, inquiry.ID, identity.Account.ID,
			mock.MatchedBy(func(input *inquiriesDomain.UpdateInquiryInput) bool {
				return input.Status != nil && *input.Status == inquiriesDomain.StatusReplied &&
					input.ReplyBody != nil && *input.ReplyBody == "Yes, still available."
			})).
			Return(inquiry, nil).
			Once()

		router := setupRouter(uc, identity)
		req := httptest.NewRequest(http.MethodPatch, "/v1/inquiries/"+inquiry.ID.String(),
			bytes.NewBufferString(`{"status":"replied","reply_body":"Yes, still available."}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"replied"`)
		uc.AssertExpectations(t)
	})

	t.Run("Success_UnknownFieldsIgnored", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()
		inquiry := sampleInquiry(identity.Account.ID)

		uc.On("Update", mock.Anything, inquiry.ID, identity.Account.ID,
			mock.MatchedBy(func(input *inquiriesDomain.UpdateInquiryInput) bool {
				return input.Notes != nil && *input.Notes == "priced too low" &&
					input.Status == nil && input.ReplyBody == nil
			})).
			Return(inquiry, nil).
			Once()

		router := setupRouter(uc, identity)
		req := httptest.NewRequest(http.MethodPatch, "/v1/inquiries/"+inquiry.ID.String(),
			bytes.NewBufferString(`{"notes":"priced too low","sender_email":"hijack@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		uc := &mockInquiryUseCase{}
		identity := testIdentity()
		inquiryID := uuid.Must(uuid.NewV7())

		uc.On("Update", mock.Anything, inquiryID, identity.Account.ID, mock.Anything).
			Return(nil, inquiriesDomain.ErrInquiryNotFound).
			Once()

		router := setupRouter(uc, identity)
		req := httptest.NewRequest(http.MethodPatch, "/v1/inquiries/"+inquiryID.String(),
			bytes.NewBufferString(`{"notes":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
