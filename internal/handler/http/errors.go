// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the relay transport. Callers can match against them
// with [errors.Is].
var (
	// ErrMissingAPIKey is returned by the auth middleware when the request
	// carries neither an "Authorization" nor an "apikey" header.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a bearer token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidAPIKey is returned when the key signature, issuer or role
	// does not check out.
	ErrInvalidAPIKey = errors.New("invalid API key")

	ErrAPIKeyExpired = errors.New("API key is expired")

	// ErrForbidden is returned when a valid key lacks the role the route
	// needs, e.g. an anon key trying to upload.
	ErrForbidden = errors.New("operation is not allowed for this API key")

	ErrPayloadTooLarge = errors.New("payload too large")
	ErrRouteNotFound   = errors.New("route not found")
)
