package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	statsDomain "github.com/rmarques/marketgate/internal/stats/domain"
)

type statsUseCase struct {
	statsRepository StatsRepository
	logger          *slog.Logger
}

// NewStatsUseCase creates a new stats use case with required dependencies.
func NewStatsUseCase(statsRepository StatsRepository, logger *slog.Logger) StatsUseCase {
	return &statsUseCase{
		statsRepository: statsRepository,
		logger:          logger,
	}
}

func (s *statsUseCase) Get(ctx context.Context, accountID uuid.UUID, period statsDomain.Period) (*statsDomain.Stats, error) {
	if !period.Valid() {
		return nil, statsDomain.ErrInvalidPeriod
	}

	since := period.Since(time.Now().UTC())

	listings, err := s.statsRepository.ListingCounts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	views, err := s.statsRepository.ViewCountSince(ctx, accountID, since)
	if err != nil {
		return nil, err
	}

	inquiries, byStatus, err := s.statsRepository.InquiryCountsSince(ctx, accountID, since)
	if err != nil {
		return nil, err
	}

	return &statsDomain.Stats{
		Period:            period,
		Listings:          listings,
		Views:             views,
		Inquiries:         inquiries,
		InquiriesByStatus: byStatus,
	}, nil
}
