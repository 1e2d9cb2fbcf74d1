package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-feed/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns ErrNotFound when no user has the given name.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, profile_image_ref, password_hash, salt
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.db, &user, query, username)
	logQuery(query, []any{username}, user.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts the user and returns the generated id.
// A taken username is reported as ErrUsernameTaken.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.User) (int64, error) {
	const query = `
		INSERT INTO users (username, profile_image_ref, password_hash, salt)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	// the hash and salt are never logged
	logArgs := []any{user.Username, user.ProfileImageRef}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &id, query,
		user.Username, user.ProfileImageRef, user.PasswordHash, user.Salt)
	logQuery(query, logArgs, id, err)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}
