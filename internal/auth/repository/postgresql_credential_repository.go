package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// PostgreSQLCredentialRepository implements Credential persistence for PostgreSQL.
// Scopes are stored as a JSONB array; lookups by key hash use a unique index.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new Credential into the PostgreSQL database.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *authDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	scopesJSON, err := json.Marshal(credential.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential scopes")
	}

	query := `INSERT INTO credentials (id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.AccountID,
		credential.Name,
		credential.KeyHash,
		credential.KeyPrefix,
		scopesJSON,
		credential.Active,
		credential.ExpiresAt,
		credential.LastUsedAt,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Get retrieves a Credential by ID from the PostgreSQL database.
// Returns ErrCredentialNotFound if the credential doesn't exist.
func (p *PostgreSQLCredentialRepository) Get(
	ctx context.Context,
	credentialID uuid.UUID,
) (*authDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at
			  FROM credentials WHERE id = $1`

	return scanCredential(querier.QueryRowContext(ctx, query, credentialID))
}

// GetByKeyHash retrieves a Credential by its key hash from the PostgreSQL database.
// Returns ErrCredentialNotFound if no credential has the given hash.
func (p *PostgreSQLCredentialRepository) GetByKeyHash(
	ctx context.Context,
	keyHash string,
) (*authDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at
			  FROM credentials WHERE key_hash = $1`

	return scanCredential(querier.QueryRowContext(ctx, query, keyHash))
}

// TouchLastUsed records when the credential last authenticated a request.
func (p *PostgreSQLCredentialRepository) TouchLastUsed(
	ctx context.Context,
	credentialID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET last_used_at = $1 WHERE id = $2`

	if _, err := querier.ExecContext(ctx, query, usedAt, credentialID); err != nil {
		return apperrors.Wrap(err, "failed to update credential last_used_at")
	}
	return nil
}

// scanCredential scans a single credential row, unmarshaling the scopes column.
func scanCredential(row *sql.Row) (*authDomain.Credential, error) {
	var credential authDomain.Credential
	var scopesJSON []byte

	err := row.Scan(
		&credential.ID,
		&credential.AccountID,
		&credential.Name,
		&credential.KeyHash,
		&credential.KeyPrefix,
		&scopesJSON,
		&credential.Active,
		&credential.ExpiresAt,
		&credential.LastUsedAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	if err := json.Unmarshal(scopesJSON, &credential.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential scopes")
	}

	return &credential, nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL Credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
