package http

import (
	"errors"
	"net/http"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/internal/utils"
)

type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatuses is ordered: the first match wins, so more specific errors
// that wrap others go first.
var errorStatuses = []errorStatus{
	{ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
	{ErrMissingAPIKey, http.StatusUnauthorized, "unauthorized"},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "unauthorized"},
	{ErrInvalidAPIKey, http.StatusUnauthorized, "unauthorized"},
	{ErrAPIKeyExpired, http.StatusUnauthorized, "unauthorized"},
	{ErrForbidden, http.StatusForbidden, "access_denied"},
	{ErrRouteNotFound, http.StatusNotFound, "not_found"},

	{store.ErrInvalidBlobName, http.StatusBadRequest, "invalid_key"},
	{store.ErrBlobNotFound, http.StatusNotFound, "not_found"},
	{store.ErrBlobAlreadyExists, http.StatusConflict, "Duplicate"},
	{store.ErrReadingBlobContent, http.StatusBadRequest, "invalid_request"},
	{store.ErrWritingBlob, http.StatusInternalServerError, "internal"},
	{store.ErrReadingBlob, http.StatusInternalServerError, "internal"},
}

func statusFromError(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError logs err with the request logger and sends it as a storage
// error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	utils.WriteError(w, status, code, message)
}
