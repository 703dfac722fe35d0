package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusNotFound, want: ErrNotFound},
		{status: http.StatusConflict, want: ErrConflict},
		{status: http.StatusBadGateway, want: ErrBadGateway},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
		{status: http.StatusServiceUnavailable, want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.ErrorIs(t, mapHTTPStatus(tt.status, "body"), tt.want)
		})
	}
}

func TestMapHTTPStatus_Success(t *testing.T) {
	assert.NoError(t, mapHTTPStatus(http.StatusOK, ""))
	assert.NoError(t, mapHTTPStatus(http.StatusCreated, ""))
}

func TestMapHTTPStatus_UnknownStatus(t *testing.T) {
	err := mapHTTPStatus(http.StatusTeapot, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "418")
}

func TestMapMinioError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no such key", err: minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, want: ErrNotFound},
		{name: "no such bucket", err: minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404}, want: ErrNotFound},
		{name: "access denied", err: minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, want: ErrForbidden},
		{name: "bad signature", err: minio.ErrorResponse{Code: "SignatureDoesNotMatch", StatusCode: 403}, want: ErrUnauthorized},
		{name: "status fallback", err: minio.ErrorResponse{Code: "SlowDown", StatusCode: 503}, want: ErrInternalServerError},
		{name: "not an s3 error", err: errors.New("dial tcp: refused"), want: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapMinioError(tt.err), tt.want)
		})
	}

	assert.NoError(t, mapMinioError(nil))
}
