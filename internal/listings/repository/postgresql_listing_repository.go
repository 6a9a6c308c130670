// Package repository implements data persistence for listings.
//
// Provides PostgreSQL and MySQL implementations with transaction support
// via database.GetTx(). Every query that touches an existing row carries
// both the listing ID and the account ID, so ownership isolation holds
// at the SQL level.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
)

// PostgreSQLListingRepository implements Listing persistence for PostgreSQL.
// Specs are stored as a JSONB document.
type PostgreSQLListingRepository struct {
	db *sql.DB
}

const pgListingColumns = `id, account_id, title, description, price, currency, condition, specs, city, country, status, created_at, updated_at, deleted_at`

// Create inserts a new Listing into the PostgreSQL database.
func (p *PostgreSQLListingRepository) Create(ctx context.Context, listing *listingsDomain.Listing) error {
	querier := database.GetTx(ctx, p.db)

	specsJSON, err := json.Marshal(listing.Specs)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing specs")
	}

	query := `INSERT INTO listings (` + pgListingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = querier.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.AccountID,
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

// Get retrieves a Listing by ID and owner from the PostgreSQL database.
// Returns ErrListingNotFound when the row is absent or owned by another account.
func (p *PostgreSQLListingRepository) Get(
	ctx context.Context,
	listingID, accountID uuid.UUID,
) (*listingsDomain.Listing, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgListingColumns + `
			  FROM listings WHERE id = $1 AND account_id = $2 AND status != 'deleted'`

	listing, err := scanListing(querier.QueryRowContext(ctx, query, listingID, accountID))
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// List returns one page of the account's listings, newest first, along
// with the total row count for the filter. Soft-deleted rows are hidden
// unless explicitly requested by status.
func (p *PostgreSQLListingRepository) List(
	ctx context.Context,
	filter listingsDomain.ListFilter,
) ([]*listingsDomain.Listing, int64, error) {
	querier := database.GetTx(ctx, p.db)

	where := ` WHERE account_id = $1 AND status != 'deleted'`
	args := []any{filter.AccountID}
	if filter.Status != nil {
		where = ` WHERE account_id = $1 AND status = $2`
		args = append(args, *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM listings` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count listings")
	}

	query := `SELECT ` + pgListingColumns + ` FROM listings` + where +
		` ORDER BY created_at DESC LIMIT ` + placeholder(len(args)+1) +
		` OFFSET ` + placeholder(len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list listings")
	}
	defer rows.Close()

	var listings []*listingsDomain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
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
func (p *PostgreSQLListingRepository) Update(ctx context.Context, listing *listingsDomain.Listing) error {
	querier := database.GetTx(ctx, p.db)

	specsJSON, err := json.Marshal(listing.Specs)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal listing specs")
	}

	query := `UPDATE listings
			  SET title = $1,
				  description = $2,
				  price = $3,
				  currency = $4,
				  condition = $5,
				  specs = $6,
				  city = $7,
				  country = $8,
				  status = $9,
				  updated_at = $10
			  WHERE id = $11 AND account_id = $12 AND status != 'deleted'`

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
		listing.ID,
		listing.AccountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update listing")
	}

	return checkAffected(result, "failed to update listing")
}

// SoftDelete marks the listing deleted and stamps deleted_at.
// Returns ErrListingNotFound when no row matched.
func (p *PostgreSQLListingRepository) SoftDelete(
	ctx context.Context,
	listingID, accountID uuid.UUID,
	deletedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE listings
			  SET status = 'deleted', deleted_at = $1, updated_at = $1
			  WHERE id = $2 AND account_id = $3 AND status != 'deleted'`

	result, err := querier.ExecContext(ctx, query, deletedAt, listingID, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete listing")
	}

	return checkAffected(result, "failed to delete listing")
}

// CountNonTerminal counts the account's listings that still count
// against the plan quota.
func (p *PostgreSQLListingRepository) CountNonTerminal(
	ctx context.Context,
	accountID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM listings
			  WHERE account_id = $1 AND status NOT IN ('sold', 'deleted')`

	var count int64
	if err := querier.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count listings")
	}
	return count, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanListing scans a single listing row, unmarshaling the specs column.
func scanListing(row rowScanner) (*listingsDomain.Listing, error) {
	var listing listingsDomain.Listing
	var specsJSON []byte

	err := row.Scan(
		&listing.ID,
		&listing.AccountID,
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

	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &listing.Specs); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal listing specs")
		}
	}

	return &listing, nil
}

// checkAffected converts a zero-row update into ErrListingNotFound.
func checkAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return listingsDomain.ErrListingNotFound
	}
	return nil
}

// placeholder returns the PostgreSQL positional placeholder for index n.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// NewPostgreSQLListingRepository creates a new PostgreSQL Listing repository.
func NewPostgreSQLListingRepository(db *sql.DB) *PostgreSQLListingRepository {
	return &PostgreSQLListingRepository{db: db}
}
