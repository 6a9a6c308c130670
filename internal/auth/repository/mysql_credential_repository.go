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

// MySQLCredentialRepository implements Credential persistence for MySQL.
// Uses BINARY(16) for UUID storage; scopes are stored as a JSON array.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new Credential into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLCredentialRepository) Create(ctx context.Context, credential *authDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	scopesJSON, err := json.Marshal(credential.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential scopes")
	}

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	accountID, err := credential.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential account_id")
	}

	query := `INSERT INTO credentials (id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		accountID,
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

// Get retrieves a Credential by ID from the MySQL database.
// Returns ErrCredentialNotFound if the credential doesn't exist.
func (m *MySQLCredentialRepository) Get(
	ctx context.Context,
	credentialID uuid.UUID,
) (*authDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at
			  FROM credentials WHERE id = ?`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential id")
	}

	return scanMySQLCredential(querier.QueryRowContext(ctx, query, id))
}

// GetByKeyHash retrieves a Credential by its key hash from the MySQL database.
// Returns ErrCredentialNotFound if no credential has the given hash.
func (m *MySQLCredentialRepository) GetByKeyHash(
	ctx context.Context,
	keyHash string,
) (*authDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_id, name, key_hash, key_prefix, scopes, is_active, expires_at, last_used_at, created_at, updated_at
			  FROM credentials WHERE key_hash = ?`

	return scanMySQLCredential(querier.QueryRowContext(ctx, query, keyHash))
}

// TouchLastUsed records when the credential last authenticated a request.
func (m *MySQLCredentialRepository) TouchLastUsed(
	ctx context.Context,
	credentialID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	query := `UPDATE credentials SET last_used_at = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, usedAt, id); err != nil {
		return apperrors.Wrap(err, "failed to update credential last_used_at")
	}
	return nil
}

// scanMySQLCredential scans a single credential row, converting BINARY(16)
// UUIDs and unmarshaling the scopes column.
func scanMySQLCredential(row *sql.Row) (*authDomain.Credential, error) {
	var credential authDomain.Credential
	var idBinary, accountIDBinary, scopesJSON []byte

	err := row.Scan(
		&idBinary,
		&accountIDBinary,
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

	if err := credential.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	if err := credential.AccountID.UnmarshalBinary(accountIDBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential account_id")
	}
	if err := json.Unmarshal(scopesJSON, &credential.Scopes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential scopes")
	}

	return &credential, nil
}

// NewMySQLCredentialRepository creates a new MySQL Credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
