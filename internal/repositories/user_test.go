package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestUserWriteRepository_Save(t *testing.T) {
	user := &models.User{
		Username:        "alice",
		ProfileImageRef: "1700000000000_alice.png",
		PasswordHash:    "hash",
		Salt:            "salt",
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WithArgs("alice", "1700000000000_alice.png", "hash", "salt").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			wantID: 7,
		},
		{
			name: "unique violation is translated",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name: "other errors pass through",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			repo := NewUserWriteRepository(db, GetTxFromContext)
			id, err := repo.Save(context.Background(), user)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Zero(t, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	columns := []string{"id", "username", "profile_image_ref", "password_hash", "salt"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "bob", "bob.png", "h", "s"))

		user, err := NewUserReadRepository(db).GetByUsername(context.Background(), "bob")
		assert.NoError(t, err)
		assert.Equal(t, &models.User{ID: 3, Username: "bob", ProfileImageRef: "bob.png", PasswordHash: "h", Salt: "s"}, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(columns))

		user, err := NewUserReadRepository(db).GetByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})
}
