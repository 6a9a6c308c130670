package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	"github.com/rmarques/marketgate/internal/database"
	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// MySQLAccountRepository implements Account persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new Account into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO accounts (id, name, email, plan, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		account.Name,
		account.Email,
		account.Plan,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Get retrieves an Account by ID from the MySQL database.
// Returns ErrAccountNotFound if the account doesn't exist.
func (m *MySQLAccountRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, plan, is_active, created_at, updated_at
			  FROM accounts WHERE id = ?`

	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	var account authDomain.Account
	var idBinary []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBinary,
		&account.Name,
		&account.Email,
		&account.Plan,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	if err := account.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}

	return &account, nil
}

// NewMySQLAccountRepository creates a new MySQL Account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
