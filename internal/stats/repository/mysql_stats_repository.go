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

// MySQLStatsRepository implements stats aggregates for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLStatsRepository struct {
	db *sql.DB
}

// ListingCounts breaks down the account's current listings by status.
// Soft-deleted rows are excluded from every bucket.
func (m *MySQLStatsRepository) ListingCounts(
	ctx context.Context,
	accountID uuid.UUID,
) (statsDomain.ListingCounts, error) {
	querier := database.GetTx(ctx, m.db)

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return statsDomain.ListingCounts{}, apperrors.Wrap(err, "failed to marshal account ID")
	}

	query := `SELECT
				  COALESCE(SUM(status = 'active'), 0),
				  COALESCE(SUM(status = 'paused'), 0),
				  COALESCE(SUM(status = 'sold'), 0),
				  COUNT(*)
			  FROM listings
			  WHERE account_id = ? AND status != 'deleted'`

	var counts statsDomain.ListingCounts
	err = querier.QueryRowContext(ctx, query, accountIDBytes).Scan(
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
func (m *MySQLStatsRepository) ViewCountSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal account ID")
	}

	query := `SELECT COUNT(*)
			  FROM listing_view_events e
			  JOIN listings l ON l.id = e.listing_id
			  WHERE l.account_id = ? AND e.created_at >= ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, accountIDBytes, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count listing views")
	}
	return count, nil
}

// InquiryCountsSince counts inquiries received since the given time, in
// total and broken down by status.
func (m *MySQLStatsRepository) InquiryCountsSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) (int64, map[string]int64, error) {
	querier := database.GetTx(ctx, m.db)

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return 0, nil, apperrors.Wrap(err, "failed to marshal account ID")
	}

	query := `SELECT status, COUNT(*)
			  FROM inquiries
			  WHERE account_id = ? AND created_at >= ?
			  GROUP BY status`

	rows, err := querier.QueryContext(ctx, query, accountIDBytes, since)
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

// NewMySQLStatsRepository creates a new MySQL stats repository.
func NewMySQLStatsRepository(db *sql.DB) *MySQLStatsRepository {
	return &MySQLStatsRepository{db: db}
}
