package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/repositories"
)

//go:generate mockgen -source=posts.go -destination=mock_posts.go -package=services

// TokenValidator checks a username/token pair.
type TokenValidator interface {
	Validate(ctx context.Context, username, token string) (bool, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, post *models.Post) (int64, error)
}

// PostPublisher announces created posts to other systems.
type PostPublisher interface {
	PublishPostCreated(ctx context.Context, post models.Post) error
}

// PostService creates posts on behalf of authenticated users.
type PostService struct {
	tokens    TokenValidator
	users     UserReader
	posts     PostWriter
	publisher PostPublisher
	now       func() time.Time
}

func NewPostService(tokens TokenValidator, users UserReader, posts PostWriter, publisher PostPublisher) *PostService {
	return &PostService{
		tokens:    tokens,
		users:     users,
		posts:     posts,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create stores a post authored by username. The author's current profile
// image is copied into the post. An empty postImageRef is stored as absent.
func (s *PostService) Create(ctx context.Context, username, token, textContent string, postImageRef *string) (*models.Post, error) {
	if username == "" || token == "" || textContent == "" {
		return nil, ErrMissingField
	}

	ok, err := s.tokens.Validate(ctx, username, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Log.Infow("rejected post with invalid token", "username", username)
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get post author", "username", username, "err", err)
		return nil, fmt.Errorf("%w: get user: %w", ErrStoreFailure, err)
	}

	if postImageRef != nil && *postImageRef == "" {
		postImageRef = nil
	}

	post := models.Post{
		Username:        username,
		ProfileImageRef: user.ProfileImageRef,
		PostImageRef:    postImageRef,
		CreatedAt:       s.now().Unix(),
		TextContent:     textContent,
	}

	id, err := s.posts.Save(ctx, &post)
	if err != nil {
		logger.Log.Errorw("failed to save post", "username", username, "err", err)
		return nil, fmt.Errorf("%w: save post: %w", ErrStoreFailure, err)
	}
	post.ID = id

	if s.publisher != nil {
		if err := s.publisher.PublishPostCreated(ctx, post); err != nil {
			logger.Log.Warnw("failed to publish post event", "post_id", post.ID, "err", err)
		}
	}

	return &post, nil
}
