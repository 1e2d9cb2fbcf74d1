package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/stretchr/testify/assert"
)

var postColumns = []string{"id", "username", "profile_image_ref", "post_image_ref", "created_at", "text_content"}

func TestPostReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	img := "1_cat.png"
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(20, 10).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(2, "alice", "a.png", img, 200, "second").
			AddRow(1, "bob", "b.png", nil, 100, "first"))

	posts, err := NewPostReadRepository(db).List(context.Background(), 20, 10)
	assert.NoError(t, err)
	assert.Equal(t, []models.Post{
		{ID: 2, Username: "alice", ProfileImageRef: "a.png", PostImageRef: &img, CreatedAt: 200, TextContent: "second"},
		{ID: 1, Username: "bob", ProfileImageRef: "b.png", CreatedAt: 100, TextContent: "first"},
	}, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostReadRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts")).
		WithArgs(20, 500).
		WillReturnRows(sqlmock.NewRows(postColumns))

	posts, err := NewPostReadRepository(db).List(context.Background(), 20, 500)
	assert.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostReadRepository_List_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts")).WillReturnError(errors.New("boom"))

	posts, err := NewPostReadRepository(db).List(context.Background(), 20, 0)
	assert.Error(t, err)
	assert.Nil(t, posts)
}

func TestPostWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs("alice", "a.png", nil, int64(1700000000), "hello").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := NewPostWriteRepository(db).Save(context.Background(), &models.Post{
		Username:        "alice",
		ProfileImageRef: "a.png",
		CreatedAt:       1700000000,
		TextContent:     "hello",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
