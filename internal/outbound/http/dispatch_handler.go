// Package http provides the internal HTTP trigger for outbound dispatch.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rmarques/marketgate/internal/errors"
	"github.com/rmarques/marketgate/internal/httputil"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
	outboundService "github.com/rmarques/marketgate/internal/outbound/service"
	outboundUseCase "github.com/rmarques/marketgate/internal/outbound/usecase"
)

// dispatchSecretHeader carries the scheduler's plain shared secret.
const dispatchSecretHeader = "X-Dispatch-Secret"

// DispatchResponse is the trigger response body.
type DispatchResponse struct {
	Success bool                   `json:"success"`
	Result  *outboundDomain.Result `json:"result"`
}

// DispatchHandler handles the scheduler-facing dispatch trigger.
type DispatchHandler struct {
	dispatchUseCase outboundUseCase.DispatchUseCase
	secretService   outboundService.SecretService
	secretHash      string
	logger          *slog.Logger
}

// NewDispatchHandler creates a new dispatch handler with required dependencies.
// secretHash is the Argon2id hash the presented secret is verified against;
// when empty the trigger is disabled.
func NewDispatchHandler(
	dispatchUseCase outboundUseCase.DispatchUseCase,
	secretService outboundService.SecretService,
	secretHash string,
	logger *slog.Logger,
) *DispatchHandler {
	return &DispatchHandler{
		dispatchUseCase: dispatchUseCase,
		secretService:   secretService,
		secretHash:      secretHash,
		logger:          logger,
	}
}

// DispatchHandler drains the pending outbound queue.
// GET|POST /internal/dispatch-outbound - Requires the X-Dispatch-Secret header.
// The secret is verified before any queue access.
func (h *DispatchHandler) DispatchHandler(c *gin.Context) {
	secret := c.GetHeader(dispatchSecretHeader)
	if h.secretHash == "" || secret == "" ||
		!h.secretService.CompareSecret(secret, h.secretHash) {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	result, err := h.dispatchUseCase.Dispatch(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, DispatchResponse{Success: true, Result: result})
}
