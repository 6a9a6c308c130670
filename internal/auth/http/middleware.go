package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authUseCase "github.com/rmarques/marketgate/internal/auth/usecase"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	"github.com/rmarques/marketgate/internal/httputil"
)

// apiKeyHeader is the primary way machine clients present their key.
const apiKeyHeader = "X-Api-Key"

// AuthenticationMiddleware authenticates requests via an API key presented
// in the X-Api-Key header, or as a Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the key from X-Api-Key, falling back to "Authorization: Bearer <key>"
// 2. Resolves it via credentialUseCase.Authenticate()
// 3. Stores the resulting identity in the request context
// 4. Allows downstream handlers to access it via GetIdentity()
//
// Error handling:
//   - Missing or malformed key → 401 Unauthorized
//   - Unknown, revoked, expired key, or inactive/downgraded account →
//     401 Unauthorized (from CredentialUseCase.Authenticate, one generic class)
//   - Other errors → 500 Internal Server Error
func AuthenticationMiddleware(
	credentialUseCase authUseCase.CredentialUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainKey := extractKey(c)
		if plainKey == "" {
			logger.Debug("authentication failed: no api key presented")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		identity, err := credentialUseCase.Authenticate(c.Request.Context(), plainKey)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("credential_id", identity.Credential.ID.String()),
			slog.String("account_id", identity.Account.ID.String()))

		c.Next()
	}
}

// extractKey pulls the API key from the X-Api-Key header, or from a
// Bearer Authorization header (case-insensitive scheme).
func extractKey(c *gin.Context) string {
	if key := c.GetHeader(apiKeyHeader); key != "" {
		return key
	}

	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}

// RequireScope authorizes the authenticated credential for a scope.
//
// This middleware MUST be used after AuthenticationMiddleware. The check
// passes when the credential carries the scope directly or via the
// wildcard. A valid credential without the scope gets 403 Forbidden;
// unlike authentication failures, this is safe to distinguish because
// the caller already proved it holds a real key.
func RequireScope(scope authDomain.Scope, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok || identity == nil {
			logger.Debug("authorization failed: no authenticated identity in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !identity.Credential.HasScope(scope) {
			logger.Debug("authorization failed: insufficient scope",
				slog.String("credential_id", identity.Credential.ID.String()),
				slog.String("scope", string(scope)))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientScope, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
