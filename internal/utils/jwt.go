package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YabaiTech/YAPM/models"
)

// IssueAPIKey creates a signed HMAC-SHA256 API key for the blob relay.
//
// The key carries the role claim plus the standard claims:
//   - Issuer    (iss): identifies the relay that accepts the key
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl, omitted when ttl is zero
//
// Returns an error if issuer or signKey is empty, or role is not
// models.RoleAnon or models.RoleService.
//
// Example usage:
//
//	key, err := utils.IssueAPIKey("yapm", models.RoleService, 0, "secret")
func IssueAPIKey(issuer, role string, ttl time.Duration, signKey string) (models.APIKey, error) {
	if issuer == "" || signKey == "" {
		return models.APIKey{}, errors.New("invalid params for issuing API key")
	}
	if role != models.RoleAnon && role != models.RoleService {
		return models.APIKey{}, fmt.Errorf("unknown role %q", role)
	}

	now := time.Now()
	key := models.APIKey{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		key.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, key).SignedString([]byte(signKey))
	if err != nil {
		return models.APIKey{}, fmt.Errorf("error occurred during signing API key: %w", err)
	}
	key.SignedString = signed

	return key, nil
}

// ParseAPIKey validates tokenString and returns its claims.
//
// Validation includes:
//   - HS256 signature verification using signKey
//   - Issuer (iss) claim check against issuer
//   - Expiration (exp) claim check when present
//   - a known role claim
func ParseAPIKey(tokenString, signKey, issuer string) (models.APIKey, error) {
	var key models.APIKey
	_, err := jwt.ParseWithClaims(tokenString, &key, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.APIKey{}, fmt.Errorf("error occurred validating and parsing API key: %w", err)
	}

	if key.Role != models.RoleAnon && key.Role != models.RoleService {
		return models.APIKey{}, fmt.Errorf("unknown role %q", key.Role)
	}
	key.SignedString = tokenString

	return key, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(token), nil
}
