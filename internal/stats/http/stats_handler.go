// Package http provides HTTP handlers for account statistics.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	"github.com/rmarques/marketgate/internal/httputil"
	statsDomain "github.com/rmarques/marketgate/internal/stats/domain"
	statsUseCase "github.com/rmarques/marketgate/internal/stats/usecase"
)

// defaultPeriod is used when the period query parameter is absent.
const defaultPeriod = statsDomain.Period30Days

// StatsHandler handles HTTP requests for account statistics.
type StatsHandler struct {
	statsUseCase statsUseCase.StatsUseCase
	logger       *slog.Logger
}

// NewStatsHandler creates a new stats handler with required dependencies.
func NewStatsHandler(statsUseCase statsUseCase.StatsUseCase, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsUseCase: statsUseCase,
		logger:       logger,
	}
}

// GetHandler computes the account's aggregate report for the period.
// GET /v1/stats?period=7d|30d|90d|12m - Requires scope stats:read.
func (h *StatsHandler) GetHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	period := defaultPeriod
	if raw := c.Query("period"); raw != "" {
		period = statsDomain.Period(raw)
	}

	stats, err := h.statsUseCase.Get(c.Request.Context(), identity.Account.ID, period)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.Data(c, http.StatusOK, stats)
}
