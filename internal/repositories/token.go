package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type TokenReadRepository struct {
	db *sqlx.DB
}

func NewTokenReadRepository(db *sqlx.DB) *TokenReadRepository {
	return &TokenReadRepository{db: db}
}

// GetByUsername returns the active token of username or ErrNotFound.
func (r *TokenReadRepository) GetByUsername(ctx context.Context, username string) (string, error) {
	const query = `SELECT token FROM tokens WHERE username = $1`

	var token string
	err := sqlx.GetContext(ctx, r.db, &token, query, username)
	logQuery(query, []any{username}, token != "", err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return token, nil
}

type TokenWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTokenWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TokenWriteRepository {
	return &TokenWriteRepository{db: db, txGetter: txGetter}
}

// Save stores token as the only token of username, replacing any previous one.
func (r *TokenWriteRepository) Save(ctx context.Context, username, token string) error {
	const query = `
		INSERT INTO tokens (username, token)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE
		SET token = EXCLUDED.token
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, username, token)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{username}, rowsAffected, err)

	return err
}
