// Package http provides the internal HTTP ingestion endpoint for view events.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eventsUseCase "github.com/rmarques/marketgate/internal/events/usecase"
	"github.com/rmarques/marketgate/internal/httputil"
)

// TrackEventRequest is the ingestion payload posted by the public site.
type TrackEventRequest struct {
	SubjectID string `json:"subjectId"`
}

// TrackEventResponse acknowledges the ingestion attempt; Tracked is
// false for bots and duplicate views.
type TrackEventResponse struct {
	OK      bool `json:"ok"`
	Tracked bool `json:"tracked"`
}

// TrackHandler handles view event ingestion.
type TrackHandler struct {
	trackUseCase eventsUseCase.TrackUseCase
	logger       *slog.Logger
}

// NewTrackHandler creates a new track handler with required dependencies.
func NewTrackHandler(trackUseCase eventsUseCase.TrackUseCase, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		trackUseCase: trackUseCase,
		logger:       logger,
	}
}

// TrackHandler records one listing view.
// POST /internal/track-event - anonymous, rate limited per visitor.
func (h *TrackHandler) TrackHandler(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	listingID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid subjectId format: must be a valid UUID"),
			h.logger)
		return
	}

	tracked, err := h.trackUseCase.Track(
		c.Request.Context(),
		listingID,
		c.Request.UserAgent(),
		c.ClientIP(),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, TrackEventResponse{OK: true, Tracked: tracked})
}
