// Package repository implements persistence for the outbound message queue.
//
// Provides PostgreSQL and MySQL implementations. Claiming uses
// FOR UPDATE SKIP LOCKED so concurrent dispatcher invocations never
// double-deliver a message.
package repository

import (
	"context"
	"database/sql"

	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// PostgreSQLMessageRepository implements outbound queue persistence for PostgreSQL.
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

const pgMessageColumns = `id, account_id, listing_id, recipient, subject, body, include_listing, include_signature, status, last_error, attempted_at, created_at`

// Enqueue inserts a new pending message into the PostgreSQL database.
func (p *PostgreSQLMessageRepository) Enqueue(ctx context.Context, message *outboundDomain.Message) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO outbound_messages (` + pgMessageColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		message.ID,
		message.AccountID,
		message.ListingID,
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
// locks the rows for the calling transaction. Rows already locked by a
// concurrent invocation are skipped.
func (p *PostgreSQLMessageRepository) ClaimPending(
	ctx context.Context,
	limit int,
) ([]*outboundDomain.Message, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + pgMessageColumns + `
			  FROM outbound_messages
			  WHERE status = 'pending'
			  ORDER BY created_at ASC
			  LIMIT $1
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to claim pending messages")
	}
	defer rows.Close()

	var messages []*outboundDomain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
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
func (p *PostgreSQLMessageRepository) MarkResult(ctx context.Context, message *outboundDomain.Message) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE outbound_messages
			  SET status = $1, last_error = $2, attempted_at = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx,
		query,
		message.Status,
		message.LastError,
		message.AttemptedAt,
		message.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark outbound message")
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*outboundDomain.Message, error) {
	var message outboundDomain.Message

	err := row.Scan(
		&message.ID,
		&message.AccountID,
		&message.ListingID,
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
	return &message, nil
}

// NewPostgreSQLMessageRepository creates a new PostgreSQL outbound message repository.
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{db: db}
}
