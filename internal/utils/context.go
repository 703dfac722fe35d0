// Package utils provides general-purpose helpers shared by the client and
// the relay server: context keys, JSON responses, API key tokens, the HTTP
// client, atomic file writes and id generation.
package utils

import (
	"context"

	"github.com/YabaiTech/YAPM/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// APIKeyCtxKey is the key the relay server uses to store the verified
// [models.APIKey] of the current request.
var APIKeyCtxKey = contextKey("apiKey")

// WithAPIKey returns a copy of ctx carrying key.
func WithAPIKey(ctx context.Context, key models.APIKey) context.Context {
	return context.WithValue(ctx, APIKeyCtxKey, key)
}

// GetAPIKeyFromContext retrieves the API key stored by [WithAPIKey].
// ok is false when the value is missing or has an unexpected type.
func GetAPIKeyFromContext(ctx context.Context) (models.APIKey, bool) {
	key, ok := ctx.Value(APIKeyCtxKey).(models.APIKey)
	return key, ok
}
