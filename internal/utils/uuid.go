package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. It falls back to a random
// UUIDv4 when no v7 value can be generated.
//
// IDs are used for request trace IDs and for the names of temporary vault
// copies, so sorting either by name keeps creation order.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
