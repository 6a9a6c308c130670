package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
)

// MySQLInquiryRepository implements Inquiry persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLInquiryRepository struct {
	db *sql.DB
}

const mysqlInquiryColumns = `id, account_id, listing_id, sender_name, sender_email, message, status, notes, offer_amount, created_at, updated_at`

// Get retrieves an Inquiry by ID and owner from the MySQL database.
// Returns ErrInquiryNotFound when the row is absent or owned by another account.
func (m *MySQLInquiryRepository) Get(
	ctx context.Context,
	inquiryID, accountID uuid.UUID,
) (*inquiriesDomain.Inquiry, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := inquiryID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal inquiry id")
	}

	owner, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal inquiry account_id")
	}

	query := `SELECT ` + mysqlInquiryColumns + `
			  FROM inquiries WHERE id = ? AND account_id = ?`

	return scanMySQLInquiry(querier.QueryRowContext(ctx, query, id, owner))
}

// List returns one page of the account's inquiries, newest first, along
// with the total row count for the filter.
func (m *MySQLInquiryRepository) List(
	ctx context.Context,
	filter inquiriesDomain.ListFilter,
) ([]*inquiriesDomain.Inquiry, int64, error) {
	querier := database.GetTx(ctx, m.db)

	owner, err := filter.AccountID.MarshalBinary()
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to marshal inquiry account_id")
	}

	where := ` WHERE account_id = ?`
	args := []any{owner}
	if filter.Status != nil {
		where += ` AND status = ?`
		args = append(args, *filter.Status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM inquiries` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count inquiries")
	}

	query := `SELECT ` + mysqlInquiryColumns + ` FROM inquiries` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset())

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list inquiries")
	}
	defer rows.Close()

	var inquiries []*inquiriesDomain.Inquiry
	for rows.Next() {
		inquiry, err := scanMySQLInquiry(rows)
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
func (m *MySQLInquiryRepository) Update(ctx context.Context, inquiry *inquiriesDomain.Inquiry) error {
	querier := database.GetTx(ctx, m.db)

	id, err := inquiry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal inquiry id")
	}

	owner, err := inquiry.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal inquiry account_id")
	}

	query := `UPDATE inquiries
			  SET status = ?,
				  notes = ?,
				  offer_amount = ?,
				  updated_at = ?
			  WHERE id = ? AND account_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		inquiry.Status,
		inquiry.Notes,
		inquiry.OfferAmount,
		inquiry.UpdatedAt,
		id,
		owner,
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

// scanMySQLInquiry scans a single inquiry row, converting BINARY(16) UUIDs.
func scanMySQLInquiry(row rowScanner) (*inquiriesDomain.Inquiry, error) {
	var inquiry inquiriesDomain.Inquiry
	var idBinary, accountIDBinary, listingIDBinary []byte

	err := row.Scan(
		&idBinary,
		&accountIDBinary,
		&listingIDBinary,
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

	if err := inquiry.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal inquiry id")
	}
	if err := inquiry.AccountID.UnmarshalBinary(accountIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal inquiry account_id")
	}
	if err := inquiry.ListingID.UnmarshalBinary(listingIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal inquiry listing_id")
	}

	return &inquiry, nil
}

// NewMySQLInquiryRepository creates a new MySQL Inquiry repository.
func NewMySQLInquiryRepository(db *sql.DB) *MySQLInquiryRepository {
	return &MySQLInquiryRepository{db: db}
}
