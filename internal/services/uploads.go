package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/storage"
)

//go:generate mockgen -source=uploads.go -destination=mock_uploads.go -package=services

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// DefaultAllowedImageTypes is used when no allow-list is configured.
var DefaultAllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ObjectStore keeps uploaded bytes.
type ObjectStore interface {
	Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, name string) (*storage.Object, error)
}

// UploadService stores user images under generated names.
type UploadService struct {
	store   ObjectStore
	maxSize int64
	allowed []string
	now     func() time.Time
}

// NewUploadService creates an UploadService accepting files up to maxSize
// bytes whose sniffed type is in allowed.
func NewUploadService(store ObjectStore, maxSize int64, allowed []string) *UploadService {
	if len(allowed) == 0 {
		allowed = DefaultAllowedImageTypes
	}
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		allowed: allowed,
		now:     time.Now,
	}
}

// Save stores body and returns the name it can be fetched by. The name is
// the upload time in Unix milliseconds followed by the sanitized filename.
func (s *UploadService) Save(ctx context.Context, filename string, size int64, body io.Reader) (string, error) {
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: read upload: %w", ErrMalformedRequest, err)
	}
	head = head[:n]

	contentType := baseMIME(mimetype.Detect(head).String())
	if !s.isAllowed(contentType) {
		logger.Log.Infow("rejected upload", "filename", filename, "content_type", contentType)
		return "", ErrUnsupportedMedia
	}

	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), sanitizeFilename(filename))
	if err := s.store.Put(ctx, name, io.MultiReader(bytes.NewReader(head), body), size, contentType); err != nil {
		logger.Log.Errorw("failed to store upload", "name", name, "err", err)
		return "", fmt.Errorf("%w: store upload: %w", ErrStoreFailure, err)
	}
	return name, nil
}

// Open returns a stored upload. Callers must close the body.
func (s *UploadService) Open(ctx context.Context, name string) (*storage.Object, error) {
	obj, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		logger.Log.Errorw("failed to open upload", "name", name, "err", err)
		return nil, fmt.Errorf("%w: open upload: %w", ErrStoreFailure, err)
	}
	return obj, nil
}

func (s *UploadService) isAllowed(contentType string) bool {
	if !strings.HasPrefix(contentType, "image/") {
		return false
	}
	for _, t := range s.allowed {
		if baseMIME(t) == contentType {
			return true
		}
	}
	return false
}

func baseMIME(mime string) string {
	return strings.TrimSpace(strings.Split(mime, ";")[0])
}

// sanitizeFilename keeps letters, digits, dots, dashes and underscores of the
// base name and replaces everything else with an underscore.
func sanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "image"
	}
	return cleaned
}
