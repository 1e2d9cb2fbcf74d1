// Package storage keeps uploaded image bytes. Objects are addressed by a
// flat name; callers are responsible for choosing collision-free names.
package storage

import (
	"errors"
	"io"
)

// ErrNotFound is returned when no object has the requested name.
var ErrNotFound = errors.New("object not found")

// Object is an open stored object. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}
