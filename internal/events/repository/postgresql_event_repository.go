// Package repository implements persistence for listing view events.
//
// Deduplication lives in the database: a unique index over
// (listing_id, visitor_hash, day) makes duplicate inserts no-ops, and
// the rows-affected count tells the caller whether the view was newly
// counted.
package repository

import (
	"context"
	"database/sql"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	eventsDomain "github.com/rmarques/marketgate/internal/events/domain"
)

// PostgreSQLEventRepository implements view event persistence for PostgreSQL.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// InsertUnique inserts the event unless the (listing, visitor, day)
// triple already exists. Returns true when the event was newly counted.
func (p *PostgreSQLEventRepository) InsertUnique(
	ctx context.Context,
	event *eventsDomain.ViewEvent,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO listing_view_events (id, listing_id, visitor_hash, day, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (listing_id, visitor_hash, day) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.ListingID,
		event.VisitorHash,
		event.Day,
		event.CreatedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to insert view event")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to insert view event")
	}
	return affected > 0, nil
}

// NewPostgreSQLEventRepository creates a new PostgreSQL view event repository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}
