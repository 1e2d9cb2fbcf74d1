package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-feed/internal/models"
)

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// List returns up to limit posts, newest first, skipping offset rows.
// Posts with equal created_at are ordered by id, newest first.
func (r *PostReadRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	const query = `
		SELECT id, username, profile_image_ref, post_image_ref, created_at, text_content
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	posts := make([]models.Post, 0, limit)
	err := sqlx.SelectContext(ctx, r.db, &posts, query, limit, offset)
	logQuery(query, []any{limit, offset}, len(posts), err)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts post and returns the generated id.
func (r *PostWriteRepository) Save(ctx context.Context, post *models.Post) (int64, error) {
	const query = `
		INSERT INTO posts (username, profile_image_ref, post_image_ref, created_at, text_content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	args := []any{post.Username, post.ProfileImageRef, post.PostImageRef, post.CreatedAt, post.TextContent}

	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, query, args...)
	logQuery(query, args, id, err)

	return id, err
}
