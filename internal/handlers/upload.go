package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/storage"
)

//go:generate mockgen -source=upload.go -destination=mock_upload.go -package=handlers

// multipartOverhead is allowed on top of the file size for headers and
// boundaries.
const multipartOverhead = 1 << 20

// Uploader defines the interface that the upload service must implement.
type Uploader interface {
	Save(ctx context.Context, filename string, size int64, body io.Reader) (string, error)
}

// ResourceOpener returns stored uploads.
type ResourceOpener interface {
	Open(ctx context.Context, name string) (*storage.Object, error)
}

// UploadResponse represents a stored upload
// swagger:model UploadResponse
type UploadResponse struct {
	// Name to pass as profile_image_ref or post_image_ref and to fetch under /res/
	// default: 1700000000000_cat.png
	URL string `json:"url"`
}

// NewUploadHandler returns an HTTP handler for image uploads.
// @Summary Upload an image
// @Description Stores an image sent as the multipart field "image" and returns its generated name.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} handlers.UploadResponse "Stored"
// @Failure 400 {object} handlers.ErrorResponse "Missing file or malformed body"
// @Failure 413 {object} handlers.ErrorResponse "File too large"
// @Failure 415 {object} handlers.ErrorResponse "Not an accepted image type"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /upload [post]
func NewUploadHandler(svc Uploader, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

		file, header, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				writeError(w, http.StatusRequestEntityTooLarge, CategoryFileTooLarge, "File too large")
			case errors.Is(err, http.ErrMissingFile):
				writeError(w, http.StatusBadRequest, CategoryMissingField, "Missing image file")
			default:
				writeError(w, http.StatusBadRequest, CategoryMalformedRequest, "Invalid multipart body")
			}
			return
		}
		defer file.Close()

		name, err := svc.Save(r.Context(), header.Filename, header.Size, file)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UploadResponse{URL: name})
	}
}

// NewResourceHandler returns an HTTP handler serving stored uploads.
// @Summary Fetch an upload
// @Tags uploads
// @Produce octet-stream
// @Param name path string true "Upload name"
// @Success 200 {file} file "Image bytes"
// @Failure 404 {object} handlers.ErrorResponse "File not found"
// @Router /res/{name} [get]
func NewResourceHandler(svc ResourceOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := svc.Open(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		defer obj.Body.Close()

		if obj.ContentType != "" {
			w.Header().Set("Content-Type", obj.ContentType)
		}
		if obj.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, obj.Body); err != nil {
			logger.Log.Warnw("failed to stream upload", "name", chi.URLParam(r, "name"), "err", err)
		}
	}
}
