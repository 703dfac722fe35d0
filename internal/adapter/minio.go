package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
)

type minioBlobTransfer struct {
	client  *minio.Client
	bucket  string
	timeout time.Duration

	logger *logger.Logger
}

// NewMinioBlobTransfer constructs a [BlobTransfer] backed by an S3-compatible
// object store. The bucket is created on first upload if it does not exist.
func NewMinioBlobTransfer(cfg config.ClientBlob, logger *logger.Logger) (BlobTransfer, error) {
	if cfg.MinIOEndpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: minio endpoint and bucket are required", ErrInvalidConfig)
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &minioBlobTransfer{
		client:  client,
		bucket:  cfg.Bucket,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}, nil
}

func (m *minioBlobTransfer) Upload(ctx context.Context, localPath, remoteName string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if err := m.ensureBucket(ctx); err != nil {
		m.logger.Err(err).Str("func", "*minioBlobTransfer.Upload").Str("bucket", m.bucket).Msg("bucket is unavailable")
		return err
	}

	info, err := m.client.FPutObject(ctx, m.bucket, remoteName, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		m.logger.Err(err).Str("func", "*minioBlobTransfer.Upload").Str("name", remoteName).Msg("upload failed")
		return mapMinioError(err)
	}

	m.logger.Debug().Str("func", "*minioBlobTransfer.Upload").Str("name", remoteName).Int64("bytes", info.Size).Msg("vault uploaded")
	return nil
}

func (m *minioBlobTransfer) Download(ctx context.Context, remoteName, localDestPath string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	object, err := m.client.GetObject(ctx, m.bucket, remoteName, minio.GetObjectOptions{})
	if err != nil {
		m.logger.Err(err).Str("func", "*minioBlobTransfer.Download").Str("name", remoteName).Msg("download failed")
		return mapMinioError(err)
	}
	defer object.Close()

	// GetObject is lazy; Stat surfaces NoSuchKey before anything is written.
	if _, err = object.Stat(); err != nil {
		m.logger.Err(err).Str("func", "*minioBlobTransfer.Download").Str("name", remoteName).Msg("object is unavailable")
		return mapMinioError(err)
	}

	if err = writeFileAtomic(localDestPath, object); err != nil {
		m.logger.Err(err).Str("func", "*minioBlobTransfer.Download").Str("name", remoteName).Msg("error writing downloaded vault")
		return err
	}

	return nil
}

func (m *minioBlobTransfer) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return mapMinioError(err)
	}
	if exists {
		return nil
	}

	m.logger.Info().Str("bucket", m.bucket).Msg("creating bucket")
	if err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return mapMinioError(err)
	}
	return nil
}

func (m *minioBlobTransfer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}
