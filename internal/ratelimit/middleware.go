package ratelimit

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	"github.com/rmarques/marketgate/internal/httputil"
)

// Policy is a bucket's limit configuration.
type Policy struct {
	Bucket Bucket
	Limit  int64
	Window time.Duration
}

// APIMiddleware enforces the per-account limit on authenticated API
// traffic. Counters are keyed by the account, not the credential, so
// issuing more keys never raises an account's quota. MUST be used after
// the authentication middleware.
//
// The bucket fails closed: if the counter store is unreachable the
// request is rejected with 503 rather than letting an outage disable
// admission control on paid endpoints.
func APIMiddleware(limiter *Limiter, policy Policy, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := authHTTP.GetIdentity(c.Request.Context())
		if !ok || identity == nil {
			logger.Error("rate limit middleware: no authenticated identity in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		decision, err := limiter.Check(
			c.Request.Context(),
			policy.Bucket,
			identity.Account.ID.String(),
			policy.Limit,
			policy.Window,
		)
		if err != nil {
			logger.Error("rate limit check failed",
				slog.String("bucket", string(policy.Bucket)),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrUnavailable, logger)
			c.Abort()
			return
		}

		setRateLimitHeaders(c, decision)

		if !decision.Allowed {
			logger.Debug("rate limit exceeded",
				slog.String("bucket", string(policy.Bucket)),
				slog.String("account_id", identity.Account.ID.String()))
			retryAfter := int(decision.RetryAfter(time.Now().UTC()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httputil.HandleErrorGin(c, apperrors.ErrRateLimited, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyFunc derives the rate limit identity for an unauthenticated request.
type KeyFunc func(c *gin.Context) string

// TrackMiddleware enforces the per-visitor limit on anonymous event
// ingestion. keyFunc derives the identity, typically the anonymized
// visitor hash rather than the raw client IP.
//
// The bucket fails open: tracking is best-effort, so a counter store
// outage must not take the endpoint down with it.
func TrackMiddleware(limiter *Limiter, policy Policy, keyFunc KeyFunc, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Check(
			c.Request.Context(),
			policy.Bucket,
			keyFunc(c),
			policy.Limit,
			policy.Window,
		)
		if err != nil {
			logger.Warn("rate limit check failed, allowing request",
				slog.String("bucket", string(policy.Bucket)),
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		setRateLimitHeaders(c, decision)

		if !decision.Allowed {
			logger.Debug("rate limit exceeded",
				slog.String("bucket", string(policy.Bucket)))
			retryAfter := int(decision.RetryAfter(time.Now().UTC()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httputil.HandleErrorGin(c, apperrors.ErrRateLimited, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders exposes the current window state to the caller.
func setRateLimitHeaders(c *gin.Context, decision Decision) {
	c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
}
