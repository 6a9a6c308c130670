// Package repository implements data persistence for inquiries.
//
// Provides PostgreSQL and MySQL implementations with transaction support
// via database.GetTx(); reads and writes carry the account ID so
// ownership isolation holds at the SQL level.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
)

// PostgreSQLInquiryRepository implements Inquiry persistence for PostgreSQL.
type PostgreSQLInquiryRepository struct {
	db *sql.DB
}

const pgInquiryColumns = `id, account_id, listing_id, sender_name, sender_email, message, status, notes, offer_amount, created_at, updated_at`

// Get retrieves an Inquiry by ID and owner from the PostgreSQL database.
// Returns ErrInquiryNotFound when the row is absent or owned by another account.
func (p *PostgreSQLInquiryRepository) Get(
	ctx context.Context,
	inquiryID, accountID uuid.UUID,
) (*inquiriesDomain.Inquiry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgInquiryColumns + `
			  FROM inquiries WHERE id = $1 AND account_id = $2`

	return scanInquiry(querier.QueryRowContext(ctx, query, inquiryID, accountID))
}

// List returns one page of the account's inquiries, newest first, along
// with the total row count for the filter.
func (p *PostgreSQLInquiryRepository) List(
	ctx context.Context,
	filter inquiriesDomain.ListFilter,
) ([]*inquiriesDomain.Inquiry, int64, error) {
	querier := database.GetTx(ctx, p.db)

	where := ` WHERE account_id = $1`
	args := []any{filter.AccountID}
	if filter.Status != nil {
		where += ` AND status = $2`
		args = append(args, *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM inquiries` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count inquiries")
	}

	query := `SELECT ` + pgInquiryColumns + ` FROM inquiries` + where +
		` ORDER BY created_at DESC LIMIT ` + placeholder(len(args)+1) +
		` OFFSET ` + placeholder(len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list inquiries")
	}
	defer rows.Close()

	var inquiries []*inquiriesDomain.Inquiry
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate inquiries")
	}

	return inquiries, total, nil
}

// Update persists the inquiry's mutable fields, filtered by owner.
// Returns ErrInquiryNotFound when no row matched.
func (p *PostgreSQLInquiryRepository) Update(ctx context.Context, inquiry *inquiriesDomain.Inquiry) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE inquiries
			  SET status = $1,
				  notes = $2,
				  offer_amount = $3,
				  updated_at = $4
			  WHERE id = $5 AND account_id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		inquiry.Status,
		inquiry.Notes,
		inquiry.OfferAmount,
		inquiry.UpdatedAt,
		inquiry.ID,
		inquiry.AccountID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update inquiry")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to update inquiry")
	}
	if affected == 0 {
		return inquiriesDomain.ErrInquiryNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanInquiry scans a single inquiry row.
func scanInquiry(row rowScanner) (*inquiriesDomain.Inquiry, error) {
	var inquiry inquiriesDomain.Inquiry

	err := row.Scan(
		&inquiry.ID,
		&inquiry.AccountID,
		&inquiry.ListingID,
		&inquiry.SenderName,
		&inquiry.SenderEmail,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.Notes,
		&inquiry.OfferAmount,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inquiriesDomain.ErrInquiryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get inquiry")
	}

	return &inquiry, nil
}

// placeholder returns the PostgreSQL positional placeholder for index n.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// NewPostgreSQLInquiryRepository creates a new PostgreSQL Inquiry repository.
func NewPostgreSQLInquiryRepository(db *sql.DB) *PostgreSQLInquiryRepository {
	return &PostgreSQLInquiryRepository{db: db}
}
