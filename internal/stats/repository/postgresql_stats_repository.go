// Package repository implements aggregate queries for account statistics.
//
// Provides PostgreSQL and MySQL implementations. Views are attributed to
// the account through the listing join, so each query stays scoped to a
// single tenant.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	statsDomain "github.com/rmarques/marketgate/internal/stats/domain"
)

// PostgreSQLStatsRepository implements stats aggregates for PostgreSQL.
type PostgreSQLStatsRepository struct {
	db *sql.DB
}

// ListingCounts breaks down the account's current listings by status.
// Soft-deleted rows are excluded from every bucket.
func (p *PostgreSQLStatsRepository) ListingCounts(
	ctx context.Context,
	accountID uuid.UUID,
) (statsDomain.ListingCounts, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT
				  COUNT(*) FILTER (WHERE status = 'active'),
				  COUNT(*) FILTER (WHERE status = 'paused'),
				  COUNT(*) FILTER (WHERE status = 'sold'),
				  COUNT(*)
			  FROM listings
			  WHERE account_id = $1 AND status != 'deleted'`

	var counts statsDomain.ListingCounts
	err := querier.QueryRowContext(ctx, query, accountID).Scan(
		&counts.Active,
		&counts.Paused,
		&counts.Sold,
		&counts.Total,
	)
	if err != nil {
		return statsDomain.ListingCounts{}, apperrors.Wrap(err, "failed to count listings by status")
	}
	return counts, nil
}

// ViewCountSince counts deduplicated listing views recorded since the
// given time across all of the account's listings.
func (p *PostgreSQLStatsRepository) ViewCountSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*)
			  FROM listing_view_events e
			  JOIN listings l ON l.id = e.listing_id
			  WHERE l.account_id = $1 AND e.created_at >= $2`

	var count int64
	if err := querier.QueryRowContext(ctx, query, accountID, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count listing views")
	}
	return count, nil
}

// InquiryCountsSince counts inquiries received since the given time, in
// total and broken down by status.
func (p *PostgreSQLStatsRepository) InquiryCountsSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) (int64, map[string]int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT status, COUNT(*)
			  FROM inquiries
			  WHERE account_id = $1 AND created_at >= $2
			  GROUP BY status`

	rows, err := querier.QueryContext(ctx, query, accountID, since)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, "failed to count inquiries")
	}
	defer rows.Close()

	var total int64
	byStatus := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return 0, nil, apperrors.Wrap(err, "failed to scan inquiry counts")
		}
		byStatus[status] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return 0, nil, apperrors.Wrap(err, "failed to iterate inquiry counts")
	}

	return total, byStatus, nil
}

// NewPostgreSQLStatsRepository creates a new PostgreSQL stats repository.
func NewPostgreSQLStatsRepository(db *sql.DB) *PostgreSQLStatsRepository {
	return &PostgreSQLStatsRepository{db: db}
}
