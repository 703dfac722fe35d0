package adapter

import "errors"

// Errors mapped from remote responses.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("blob not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

var (
	// ErrInvalidConfig is returned by constructors when the blob settings are
	// unusable.
	ErrInvalidConfig = errors.New("invalid blob transfer configuration")

	// ErrTransport is returned when the request could not be sent or the
	// response could not be read.
	ErrTransport = errors.New("blob transfer failed")

	// ErrLocalFile is returned when the local source or destination file
	// cannot be read or written.
	ErrLocalFile = errors.New("local file error")
)
