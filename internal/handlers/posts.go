package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-feed/internal/models"
)

//go:generate mockgen -source=posts.go -destination=mock_posts.go -package=handlers

// FeedLister defines the interface that the feed service must implement.
type FeedLister interface {
	List(ctx context.Context, page int) ([]models.Post, error)
}

// FeedResponse represents a page of the feed
// swagger:model FeedResponse
type FeedResponse struct {
	Data []models.Post `json:"data"`
}

// NewPostsHandler returns an HTTP handler for the public feed.
// @Summary List posts
// @Description Returns up to 20 posts, newest first, starting at page*10. Consecutive pages overlap by ten posts.
// @Tags posts
// @Produce json
// @Param page path int false "Page number" default(0)
// @Success 200 {object} handlers.FeedResponse "Posts"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /posts/{page} [get]
func NewPostsHandler(svc FeedLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(chi.URLParam(r, "page"))

		posts, err := svc.List(r.Context(), page)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, FeedResponse{Data: posts})
	}
}

// parsePage reads the leading decimal integer of raw, so "2abc" is page 2.
// A missing or non-numeric page is 0. Values out of int range saturate.
func parsePage(raw string) int {
	raw = strings.TrimSpace(raw)

	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	page, err := strconv.Atoi(raw[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return page
}
