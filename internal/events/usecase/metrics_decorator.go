package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/metrics"
)

// trackUseCaseWithMetrics decorates TrackUseCase with metrics instrumentation.
type trackUseCaseWithMetrics struct {
	next    TrackUseCase
	metrics metrics.BusinessMetrics
}

// NewTrackUseCaseWithMetrics wraps a TrackUseCase with metrics recording.
func NewTrackUseCaseWithMetrics(useCase TrackUseCase, m metrics.BusinessMetrics) TrackUseCase {
	return &trackUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Track records metrics for view tracking. The status distinguishes
// newly counted views from discarded ones (bots and same-day repeats).
func (t *trackUseCaseWithMetrics) Track(
	ctx context.Context,
	listingID uuid.UUID,
	userAgent, ip string,
) (bool, error) {
	start := time.Now()
	tracked, err := t.next.Track(ctx, listingID, userAgent, ip)

	status := "tracked"
	switch {
	case err != nil:
		status = "error"
	case !tracked:
		status = "discarded"
	}

	t.metrics.RecordOperation(ctx, "events", "view_track", status)
	t.metrics.RecordDuration(ctx, "events", "view_track", time.Since(start), status)

	return tracked, err
}
