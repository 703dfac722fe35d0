// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks source-independent invariants of the merged
// [StructuredConfig]. Role specific requirements are checked by the
// projections.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Blob.Backend {
	case "", BlobBackendSupabase, BlobBackendMinIO:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidBlobConfigs, cfg.Blob.Backend)
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Vault.Dir == "" {
		return ErrInvalidVaultConfigs
	}

	if cfg.Directory.RemoteDSN == "" || cfg.Directory.LocalPath == "" ||
		strings.Contains(cfg.Directory.LocalPath, "memory") {
		return ErrInvalidDirectoryConfigs
	}

	if cfg.Blob.Bucket == "" || cfg.Blob.RequestTimeout <= 0 {
		return ErrInvalidBlobConfigs
	}
	switch cfg.Blob.Backend {
	case BlobBackendSupabase:
		if cfg.Blob.SupabaseURL == "" || cfg.Blob.SupabaseAPIKey == "" {
			return fmt.Errorf("%w: supabase url and api key are required", ErrInvalidBlobConfigs)
		}
	case BlobBackendMinIO:
		if cfg.Blob.MinIOEndpoint == "" || cfg.Blob.MinIOAccessKey == "" || cfg.Blob.MinIOSecretKey == "" {
			return fmt.Errorf("%w: minio endpoint and credentials are required", ErrInvalidBlobConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidBlobConfigs, cfg.Blob.Backend)
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.StorageDir == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
