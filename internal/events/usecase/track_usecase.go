package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	eventsDomain "github.com/rmarques/marketgate/internal/events/domain"
	eventsService "github.com/rmarques/marketgate/internal/events/service"
)

type trackUseCase struct {
	eventRepository EventRepository
	botDetector     *eventsService.BotDetector
	visitorHasher   *eventsService.VisitorHasher
	logger          *slog.Logger
}

// NewTrackUseCase creates a new track use case with required dependencies.
func NewTrackUseCase(
	eventRepository EventRepository,
	botDetector *eventsService.BotDetector,
	visitorHasher *eventsService.VisitorHasher,
	logger *slog.Logger,
) TrackUseCase {
	return &trackUseCase{
		eventRepository: eventRepository,
		botDetector:     botDetector,
		visitorHasher:   visitorHasher,
		logger:          logger,
	}
}

func (t *trackUseCase) Track(ctx context.Context, listingID uuid.UUID, userAgent, ip string) (bool, error) {
	if t.botDetector.IsBot(userAgent) {
		t.logger.Debug("discarded bot view event", "listing_id", listingID)
		return false, nil
	}

	day := time.Now().UTC().Format(eventsDomain.DayFormat)
	visitorHash := t.visitorHasher.Hash(ip, day)

	event := eventsDomain.NewViewEvent(listingID, visitorHash, day)
	return t.eventRepository.InsertUnique(ctx, event)
}
