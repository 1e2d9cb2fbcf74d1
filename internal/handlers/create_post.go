package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-feed/internal/models"
)

//go:generate mockgen -source=create_post.go -destination=mock_create_post.go -package=handlers

// PostCreator defines the interface that the post service must implement.
type PostCreator interface {
	Create(ctx context.Context, username, token, textContent string, postImageRef *string) (*models.Post, error)
}

// CreatePostRequest represents the JSON body for post creation
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Author username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Session token. May be sent as "Authorization: Bearer <token>" instead.
	Token string `json:"token"`

	// Post text
	// required: true
	// default: Hello world
	TextContent string `json:"text_content"`

	// Optional reference to an uploaded image
	PostImageRef *string `json:"post_image_ref,omitempty"`

	// Older clients send the image reference under this name.
	PostImg *string `json:"post_img,omitempty"`
}

// CreatePostResponse represents a created post
// swagger:model CreatePostResponse
type CreatePostResponse struct {
	// default: Post created successfully
	Message string      `json:"message"`
	Post    models.Post `json:"post"`
}

// NewCreatePostHandler returns an HTTP handler for post creation.
// @Summary Create a post
// @Description Creates a post for an authenticated user. The author's current profile image is copied into the post.
// @Tags posts
// @Accept json
// @Produce json
// @Param createPostRequest body handlers.CreatePostRequest true "Post"
// @Param Authorization header string false "Bearer token"
// @Success 201 {object} handlers.CreatePostResponse "Post created"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or malformed body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /create-post [post]
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, CategoryMalformedRequest, "Invalid request body")
			return
		}

		token := req.Token
		if token == "" {
			token = bearerToken(r)
		}

		image := req.PostImageRef
		if image == nil {
			image = req.PostImg
		}

		post, err := svc.Create(r.Context(), req.Username, token, req.TextContent, image)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, CreatePostResponse{
			Message: "Post created successfully",
			Post:    *post,
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
