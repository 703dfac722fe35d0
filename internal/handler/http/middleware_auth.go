package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/utils"
	"github.com/YabaiTech/YAPM/models"
)

const apiKeyHeader = "apikey"

// auth is an HTTP middleware that verifies the relay API key.
//
// The key is taken from the bearer token of the "Authorization" header, or
// from the "apikey" header when no Authorization header is sent. A valid key
// is stored in the request context with [utils.WithAPIKey]; role checks are
// left to [Handler.requireUpload] and [Handler.requireDownload].
//
// The middleware rejects requests with HTTP 401 Unauthorized when the key is
// missing, malformed, signed with another secret, issued by another relay or
// expired.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := apiKeyFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		key, err := utils.ParseAPIKey(tokenString, h.authConfig.TokenSignKey, h.authConfig.TokenIssuer)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, r, fmt.Errorf("%w: %w", ErrAPIKeyExpired, err))
				return
			}
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAPIKey, err))
			return
		}

		log.Debug().Str("role", key.Role).Msg("API key accepted")
		next.ServeHTTP(w, r.WithContext(utils.WithAPIKey(r.Context(), key)))
	})
}

func (h *Handler) requireUpload(next http.Handler) http.Handler {
	return requireRole(models.APIKey.CanUpload, next)
}

func (h *Handler) requireDownload(next http.Handler) http.Handler {
	return requireRole(models.APIKey.CanDownload, next)
}

func requireRole(allowed func(models.APIKey) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := utils.GetAPIKeyFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrMissingAPIKey)
			return
		}
		if !allowed(key) {
			writeError(w, r, fmt.Errorf("%w: role %q", ErrForbidden, key.Role))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// apiKeyFromRequest returns the raw key string of the request.
func apiKeyFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
		}
		return token, nil
	}

	if key := r.Header.Get(apiKeyHeader); key != "" {
		return key, nil
	}

	return "", ErrMissingAPIKey
}
