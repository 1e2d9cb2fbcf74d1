package services

import (
	"context"
	"fmt"
	"math"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/models"
)

//go:generate mockgen -source=feed.go -destination=mock_feed.go -package=services

// Feed paging. A page starts FeedPageStep rows after the previous one but
// holds FeedPageSize rows, so neighbouring pages share ten posts. Clients
// depend on this window.
const (
	FeedPageStep = 10
	FeedPageSize = 20
)

// PostReader defines read-only operations for posts.
type PostReader interface {
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
}

// FeedService serves the public post feed.
type FeedService struct {
	posts PostReader
}

func NewFeedService(posts PostReader) *FeedService {
	return &FeedService{posts: posts}
}

// List returns the given page of the feed, newest first. Negative pages are
// treated as page 0. A page past the end is empty.
func (s *FeedService) List(ctx context.Context, page int) ([]models.Post, error) {
	if page < 0 {
		page = 0
	}
	// page*FeedPageStep must not overflow; such a page is past the end anyway
	if page > math.MaxInt/FeedPageStep {
		return []models.Post{}, nil
	}

	posts, err := s.posts.List(ctx, FeedPageSize, page*FeedPageStep)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "page", page, "err", err)
		return nil, fmt.Errorf("%w: list posts: %w", ErrStoreFailure, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
