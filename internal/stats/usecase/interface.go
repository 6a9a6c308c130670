// Package usecase defines business logic interfaces for account statistics.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	statsDomain "github.com/rmarques/marketgate/internal/stats/domain"
)

// StatsRepository computes aggregates over the account's rows. All
// queries are account-scoped; views are attributed through the listing
// join so only the account's own traffic is counted.
type StatsRepository interface {
	// ListingCounts breaks down the account's current listings by status.
	ListingCounts(ctx context.Context, accountID uuid.UUID) (statsDomain.ListingCounts, error)

	// ViewCountSince counts deduplicated listing views since the given time.
	ViewCountSince(ctx context.Context, accountID uuid.UUID, since time.Time) (int64, error)

	// InquiryCountsSince counts inquiries since the given time, in total
	// and broken down by status.
	InquiryCountsSince(ctx context.Context, accountID uuid.UUID, since time.Time) (int64, map[string]int64, error)
}

// StatsUseCase defines business logic operations for account statistics.
type StatsUseCase interface {
	// Get computes the account's aggregate report for the period.
	Get(ctx context.Context, accountID uuid.UUID, period statsDomain.Period) (*statsDomain.Stats, error)
}
