// Package repository implements data persistence for authentication entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
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

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new Account into the PostgreSQL database.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, name, email, plan, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
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

// Get retrieves an Account by ID from the PostgreSQL database.
// Returns ErrAccountNotFound if the account doesn't exist.
func (p *PostgreSQLAccountRepository) Get(
	ctx context.Context,
	accountID uuid.UUID,
) (*authDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, plan, is_active, created_at, updated_at
			  FROM accounts WHERE id = $1`

	var account authDomain.Account

	err := querier.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
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

	return &account, nil
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}
