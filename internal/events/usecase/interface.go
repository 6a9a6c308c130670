// Package usecase defines business logic interfaces for event ingestion.
package usecase

import (
	"context"

	"github.com/google/uuid"

	eventsDomain "github.com/rmarques/marketgate/internal/events/domain"
)

// EventRepository defines data access operations for view events.
type EventRepository interface {
	// InsertUnique inserts the event unless the (listing, visitor, day)
	// triple already exists. Returns true when the event was newly counted.
	InsertUnique(ctx context.Context, event *eventsDomain.ViewEvent) (bool, error)
}

// TrackUseCase ingests listing view events.
type TrackUseCase interface {
	// Track records one view for the listing. Bot traffic is silently
	// discarded and repeated views by the same visitor on the same day
	// are deduplicated; tracked reports whether the view was newly counted.
	Track(ctx context.Context, listingID uuid.UUID, userAgent, ip string) (tracked bool, err error)
}
