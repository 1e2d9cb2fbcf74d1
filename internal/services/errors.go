package services

import "errors"

// Error taxonomy shared by the services. Handlers map these to HTTP statuses.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token or session expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrMalformedRequest   = errors.New("malformed request")
	ErrStoreFailure       = errors.New("store failure")

	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrFileNotFound     = errors.New("file not found")
)
