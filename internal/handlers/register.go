package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/services"
)

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, profileImageRef, password string) (*services.AuthResult, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Reference to an uploaded profile image
	// required: true
	// default: 1700000000000_avatar.png
	ProfileImageRef string `json:"profile_image_ref"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// UserResponse is the public view of a user.
// swagger:model UserResponse
type UserResponse struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	ProfileImageRef string `json:"profile_image_ref"`
}

// AuthResponse represents a successful registration or login
// swagger:model AuthResponse
type AuthResponse struct {
	// Success message
	// default: User registered successfully
	Message string `json:"message"`

	User UserResponse `json:"user"`

	// Session token
	Token string `json:"token"`
}

func newAuthResponse(message string, user *models.User, token string) AuthResponse {
	return AuthResponse{
		Message: message,
		User: UserResponse{
			ID:              user.ID,
			Username:        user.Username,
			ProfileImageRef: user.ProfileImageRef,
		},
		Token: token,
	}
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique username and returns its first session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.AuthResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or malformed body"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, CategoryMalformedRequest, "Invalid request body")
			return
		}

		res, err := svc.Register(r.Context(), req.Username, req.ProfileImageRef, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newAuthResponse("User registered successfully", res.User, res.Token))
	}
}
