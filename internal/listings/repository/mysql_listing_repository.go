package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
)

// MySQLListingRepository implements Listing persistence for MySQL.
// Uses BINARY(16) for UUID storage; specs are stored as a JSON document.
// "condition" is a reserved word in MySQL, hence the backticks.
type MySQLListingRepository struct {
	db *sql.DB
}

const mysqlListingColumns = "id, account_id, title, description, price, currency, `condition`, specs, city, country, status, created_at, updated_at, deleted_at"

// Create inserts a new Listing into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLListingRepository) Create(ctx context.Context, listing *listingsDomain.Listing) error {
	querier := database.GetTx(ctx, m.db)

	specsJSON, err := json.Marshal(listing.Specs)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing specs")
	}

	id, err := listing.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing id")
	}

	accountID, err := listing.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	query := `INSERT INTO listings (` + mysqlListingColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		accountID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Currency,
		listing.Condition,
		specsJSON,
		listing.City,
		listing.Country,
		listing.Status,
		listing.CreatedAt,
		listing.UpdatedAt,
		listing.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create listing")
	}
	return nil
}

// Get retrieves a Listing by ID and owner from the MySQL database.
// Returns ErrListingNotFound when the row is absent or owned by another account.
func (m *MySQLListingRepository) Get(
	ctx context.Context,
	listingID, accountID uuid.UUID,
) (*listingsDomain.Listing, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := listingID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal listing id")
	}

	owner, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	query := `SELECT ` + mysqlListingColumns + `
			  FROM listings WHERE id = ? AND account_id = ? AND status != 'deleted'`

	return scanMySQLListing(querier.QueryRowContext(ctx, query, id, owner))
}

// List returns one page of the account's listings, newest first, along
// with the total row count for the filter.
func (m *MySQLListingRepository) List(
	ctx context.Context,
	filter listingsDomain.ListFilter,
) ([]*listingsDomain.Listing, int64, error) {
	querier := database.GetTx(ctx, m.db)

	owner, err := filter.AccountID.MarshalBinary()
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	where := ` WHERE account_id = ? AND status != 'deleted'`
	args := []any{owner}
	if filter.Status != nil {
		where = ` WHERE account_id = ? AND status = ?`
		args = append(args, *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM listings` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count listings")
	}

	query := `SELECT ` + mysqlListingColumns + ` FROM listings` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list listings")
	}
	defer rows.Close()

	var listings []*listingsDomain.Listing
	for rows.Next() {
		listing, err := scanMySQLListing(rows)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate listings")
	}

	return listings, total, nil
}

// Update persists the listing's mutable fields, filtered by owner.
// Returns ErrListingNotFound when no row matched.
func (m *MySQLListingRepository) Update(ctx context.Context, listing *listingsDomain.Listing) error {
	querier := database.GetTx(ctx, m.db)

	specsJSON, err := json.Marshal(listing.Specs)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing specs")
	}

	id, err := listing.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing id")
	}

	owner, err := listing.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	query := "UPDATE listings SET title = ?, description = ?, price = ?, currency = ?, `condition` = ?, specs = ?, city = ?, country = ?, status = ?, updated_at = ? WHERE id = ? AND account_id = ? AND status != 'deleted'"

	result, err := querier.ExecContext(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Currency,
		listing.Condition,
		specsJSON,
		listing.City,
		listing.Country,
		listing.Status,
		listing.UpdatedAt,
		id,
		owner,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update listing")
	}

	return checkAffected(result, "failed to update listing")
}

// SoftDelete marks the listing deleted and stamps deleted_at.
// Returns ErrListingNotFound when no row matched.
func (m *MySQLListingRepository) SoftDelete(
	ctx context.Context,
	listingID, accountID uuid.UUID,
	deletedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := listingID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing id")
	}

	owner, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	query := `UPDATE listings
			  SET status = 'deleted', deleted_at = ?, updated_at = ?
			  WHERE id = ? AND account_id = ? AND status != 'deleted'`

	result, err := querier.ExecContext(ctx, query, deletedAt, deletedAt, id, owner)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete listing")
	}

	return checkAffected(result, "failed to delete listing")
}

// CountNonTerminal counts the account's listings that still count
// against the plan quota.
func (m *MySQLListingRepository) CountNonTerminal(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	owner, err := accountID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal listing account_id")
	}

	query := `SELECT COUNT(*) FROM listings
			  WHERE account_id = ? AND status NOT IN ('sold', 'deleted')`

	var count int64
	if err := querier.QueryRowContext(ctx, query, owner).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count listings")
	}
	return count, nil
}

// scanMySQLListing scans a single listing row, converting BINARY(16)
// UUIDs and unmarshaling the specs column.
func scanMySQLListing(row rowScanner) (*listingsDomain.Listing, error) {
	var listing listingsDomain.Listing
	var idBinary, accountIDBinary, specsJSON []byte

	err := row.Scan(
		&idBinary,
		&accountIDBinary,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Currency,
		&listing.Condition,
		&specsJSON,
		&listing.City,
		&listing.Country,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listingsDomain.ErrListingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get listing")
	}

	if err := listing.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal listing id")
	}
	if err := listing.AccountID.UnmarshalBinary(accountIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal listing account_id")
	}
	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &listing.Specs); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal listing specs")
		}
	}

	return &listing, nil
}

// NewMySQLListingRepository creates a new MySQL Listing repository.
func NewMySQLListingRepository(db *sql.DB) *MySQLListingRepository {
	return &MySQLListingRepository{db: db}
}
