// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter moves whole vault files between the local disk and remote
// blob storage.
//
// The primary abstraction is [BlobTransfer]. Two implementations ship: an
// HTTP client for the Supabase storage API (also spoken by the bundled relay
// server, see [NewHTTPBlobTransfer]) and an S3 client for MinIO and other
// S3-compatible stores ([NewMinioBlobTransfer]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from S3 error codes by mapMinioError so that callers can
// use [errors.Is] for transport-agnostic error handling (e.g. [ErrNotFound]
// for a vault that was never uploaded).
package adapter

import (
	"context"
	"fmt"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_transfer_mock.go -package=mock

// BlobTransfer uploads and downloads named vault files. Each call is
// all-or-nothing: a failed download never leaves a partial file at the
// destination.
type BlobTransfer interface {
	// Upload stores the file at localPath under remoteName, replacing any
	// existing blob with that name.
	Upload(ctx context.Context, localPath, remoteName string) error

	// Download fetches remoteName into localDestPath, creating parent
	// directories. An existing file at localDestPath is replaced only after
	// the whole blob has been received.
	Download(ctx context.Context, remoteName, localDestPath string) error
}

// NewBlobTransfer returns the [BlobTransfer] selected by cfg.Backend.
func NewBlobTransfer(cfg config.ClientBlob, logger *logger.Logger) (BlobTransfer, error) {
	switch cfg.Backend {
	case config.BlobBackendSupabase:
		return NewHTTPBlobTransfer(cfg, logger)
	case config.BlobBackendMinIO:
		return NewMinioBlobTransfer(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}
