package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles an API key can carry. They follow the Supabase storage convention:
// the anon key may only read public objects, the service key may also write.
const (
	RoleAnon    = "anon"
	RoleService = "service_role"
)

// APIKey is the claim set of a blob relay API key.
//
// Keys are HS256 JWTs. The same compact string is sent both as the
// "apikey" header and as the bearer token, so a key has no per-user subject:
// it authorises a role against one relay.
type APIKey struct {
	// Role is either [RoleAnon] or [RoleService].
	Role string `json:"role"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form. Filled on issue, never parsed.
	SignedString string `json:"-"`
}

// CanUpload reports whether the key may create or overwrite objects.
func (k APIKey) CanUpload() bool {
	return k.Role == RoleService
}

// CanDownload reports whether the key may read objects.
func (k APIKey) CanDownload() bool {
	return k.Role == RoleService || k.Role == RoleAnon
}

// String returns the compact JWS serialization of the key.
func (k APIKey) String() string {
	return k.SignedString
}
