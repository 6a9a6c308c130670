package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// identityMiddleware injects a fixed identity, standing in for the
// authentication middleware.
func identityMiddleware(identity *authDomain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := authHTTP.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func apiTestRouter(store CounterStore, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	identity := &authDomain.Identity{
		Credential: &authDomain.Credential{ID: uuid.Must(uuid.NewV7())},
		Account:    &authDomain.Account{ID: uuid.Must(uuid.NewV7())},
	}

	policy := Policy{Bucket: BucketAPI, Limit: limit, Window: time.Minute}

	router := gin.New()
	router.GET("/v1/listings",
		identityMiddleware(identity),
		APIMiddleware(NewLimiter(store), policy, testLogger()),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestAPIMiddleware(t *testing.T) {
	t.Run("AllowsAndSetsHeaders", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		router := apiTestRouter(store, 2)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/listings", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("DeniesOverLimit", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		router := apiTestRouter(store, 2)

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/listings", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/listings", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("SharedAcrossAccountCredentials", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		store := NewMemoryStore()
		defer store.Close()

		accountID := uuid.Must(uuid.NewV7())
		firstKey := &authDomain.Identity{
			Credential: &authDomain.Credential{ID: uuid.Must(uuid.NewV7()), AccountID: accountID},
			Account:    &authDomain.Account{ID: accountID},
		}
		secondKey := &authDomain.Identity{
			Credential: &authDomain.Credential{ID: uuid.Must(uuid.NewV7()), AccountID: accountID},
			Account:    &authDomain.Account{ID: accountID},
		}

		policy := Policy{Bucket: BucketAPI, Limit: 1, Window: time.Minute}
		limiter := NewLimiter(store)

		router := gin.New()
		router.GET("/v1/first",
			identityMiddleware(firstKey),
			APIMiddleware(limiter, policy, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)
		router.GET("/v1/second",
			identityMiddleware(secondKey),
			APIMiddleware(limiter, policy, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/first", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		// A second credential on the same account draws from the same
		// window; more keys never mean more quota.
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/second", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("FailsClosedOnStoreError", func(t *testing.T) {
		router := apiTestRouter(failingStore{}, 2)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/listings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("RejectsWithoutIdentity", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		store := NewMemoryStore()
		defer store.Close()

		policy := Policy{Bucket: BucketAPI, Limit: 2, Window: time.Minute}
		router := gin.New()
		router.GET("/v1/listings",
			APIMiddleware(NewLimiter(store), policy, testLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/listings", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func trackTestRouter(store CounterStore, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	policy := Policy{Bucket: BucketTrack, Limit: limit, Window: time.Minute}

	keyFunc := func(c *gin.Context) string { return c.ClientIP() }

	router := gin.New()
	router.POST("/internal/track-event",
		TrackMiddleware(NewLimiter(store), policy, keyFunc, testLogger()),
		func(c *gin.Context) { c.Status(http.StatusAccepted) },
	)
	return router
}

func TestTrackMiddleware(t *testing.T) {
	t.Run("DeniesOverLimit", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()
		router := trackTestRouter(store, 1)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/internal/track-event", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/internal/track-event", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("FailsOpenOnStoreError", func(t *testing.T) {
		router := trackTestRouter(failingStore{}, 1)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/internal/track-event", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
