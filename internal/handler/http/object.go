package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/internal/utils"
	"github.com/YabaiTech/YAPM/models"
)

const upsertHeader = "x-upsert"

// uploadObject handles POST. An existing object is only replaced when the
// request sets "x-upsert: true".
func (h *Handler) uploadObject(w http.ResponseWriter, r *http.Request) {
	h.putObject(w, r, r.Header.Get(upsertHeader) == "true")
}

// updateObject handles PUT, which always replaces.
func (h *Handler) updateObject(w http.ResponseWriter, r *http.Request) {
	h.putObject(w, r, true)
}

func (h *Handler) putObject(w http.ResponseWriter, r *http.Request, overwrite bool) {
	log := logger.FromRequest(r)

	bucket, name, err := objectFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	defer body.Close()

	if err = h.blobs.Put(r.Context(), bucket, name, body, overwrite); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
		}
		writeError(w, r, err)
		return
	}

	log.Info().Str("bucket", bucket).Str("name", name).Bool("upsert", overwrite).Msg("object stored")
	_, _ = utils.WriteJSON(w, models.StoredObject{Key: bucket + "/" + name}, http.StatusOK)
}

func (h *Handler) downloadObject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	bucket, name, err := objectFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	content, size, err := h.blobs.Get(r.Context(), bucket, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, content); err != nil {
		// headers are gone, the client sees a short body
		log.Err(err).Str("bucket", bucket).Str("name", name).Msg("error streaming object")
	}
}

// objectFromRequest returns the decoded bucket and object name route params.
func objectFromRequest(r *http.Request) (string, string, error) {
	bucket := chi.URLParam(r, "bucket")
	name := chi.URLParam(r, "name")

	// chi routes on RawPath when the request path carried escapes
	if r.URL.RawPath != "" {
		var err error
		if bucket, err = url.PathUnescape(bucket); err != nil {
			return "", "", fmt.Errorf("%w: %w", store.ErrInvalidBlobName, err)
		}
		if name, err = url.PathUnescape(name); err != nil {
			return "", "", fmt.Errorf("%w: %w", store.ErrInvalidBlobName, err)
		}
	}

	return bucket, name, nil
}
