package repository

import (
	"context"
	"database/sql"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	eventsDomain "github.com/rmarques/marketgate/internal/events/domain"
)

// MySQLEventRepository implements view event persistence for MySQL.
// UUIDs are stored as BINARY(16); INSERT IGNORE leans on the same
// unique index as the PostgreSQL ON CONFLICT clause.
type MySQLEventRepository struct {
	db *sql.DB
}

// InsertUnique inserts the event unless the (listing, visitor, day)
// triple already exists. Returns true when the event was newly counted.
func (m *MySQLEventRepository) InsertUnique(
	ctx context.Context,
	event *eventsDomain.ViewEvent,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal event ID")
	}
	listingIDBytes, err := event.ListingID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal listing ID")
	}

	query := `INSERT IGNORE INTO listing_view_events (id, listing_id, visitor_hash, day, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		idBytes,
		listingIDBytes,
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

// NewMySQLEventRepository creates a new MySQL view event repository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}
