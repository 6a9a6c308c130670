package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// MySQLMessageRepository implements outbound queue persistence for MySQL.
// UUIDs are stored as BINARY(16). MySQL 8 supports SKIP LOCKED with the
// same semantics as PostgreSQL.
type MySQLMessageRepository struct {
	db *sql.DB
}

const mysqlMessageColumns = `id, account_id, listing_id, recipient, subject, body, include_listing, include_signature, status, last_error, attempted_at, created_at`

// Enqueue inserts a new pending message into the MySQL database.
func (m *MySQLMessageRepository) Enqueue(ctx context.Context, message *outboundDomain.Message) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message ID")
	}
	accountIDBytes, err := message.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account ID")
	}
	var listingIDBytes []byte
	if message.ListingID != nil {
		listingIDBytes, err = message.ListingID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal listing ID")
		}
	}

	query := `INSERT INTO outbound_messages (` + mysqlMessageColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		accountIDBytes,
		listingIDBytes,
		message.Recipient,
		message.Subject,
		message.Body,
		message.IncludeListing,
		message.IncludeSignature,
		message.Status,
		message.LastError,
		message.AttemptedAt,
		message.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to enqueue outbound message")
	}
	return nil
}

// ClaimPending selects up to limit pending messages oldest-first and
// locks the rows for the calling transaction.
func (m *MySQLMessageRepository) ClaimPending(
	ctx context.Context,
	limit int,
) ([]*outboundDomain.Message, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlMessageColumns + `
			  FROM outbound_messages
			  WHERE status = 'pending'
			  ORDER BY created_at ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to claim pending messages")
	}
	defer rows.Close()

	var messages []*outboundDomain.Message
	for rows.Next() {
		message, err := scanMySQLMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate pending messages")
	}

	return messages, nil
}

// MarkResult persists the message's terminal status, error and attempt
// timestamp.
func (m *MySQLMessageRepository) MarkResult(ctx context.Context, message *outboundDomain.Message) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := message.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal message ID")
	}

	query := `UPDATE outbound_messages
			  SET status = ?, last_error = ?, attempted_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		message.Status,
		message.LastError,
		message.AttemptedAt,
		idBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark outbound message")
	}
	return nil
}

func scanMySQLMessage(row rowScanner) (*outboundDomain.Message, error) {
	var message outboundDomain.Message
	var idBytes, accountIDBytes, listingIDBytes []byte

	err := row.Scan(
		&idBytes,
		&accountIDBytes,
		&listingIDBytes,
		&message.Recipient,
		&message.Subject,
		&message.Body,
		&message.IncludeListing,
		&message.IncludeSignature,
		&message.Status,
		&message.LastError,
		&message.AttemptedAt,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan outbound message")
	}

	if err := message.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal message ID")
	}
	if err := message.AccountID.UnmarshalBinary(accountIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account ID")
	}
	if len(listingIDBytes) > 0 {
		var listingID uuid.UUID
		if err := listingID.UnmarshalBinary(listingIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal listing ID")
		}
		message.ListingID = &listingID
	}

	return &message, nil
}

// NewMySQLMessageRepository creates a new MySQL outbound message repository.
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}
