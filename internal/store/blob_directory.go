package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/utils"
)

var bucketNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,62}$`)

type blobDirectory struct {
	root string

	// serializes the exists check and the rename of non-upsert writes
	mu sync.Mutex

	logger *logger.Logger
}

// NewBlobDirectory returns a [BlobStorage] keeping every object as a plain
// file at root/bucket/name.
func NewBlobDirectory(root string, logger *logger.Logger) (BlobStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty storage directory", ErrOpeningBlobStorage)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningBlobStorage, err)
	}

	logger.Info().Str("root", root).Msg("blob directory opened")
	return &blobDirectory{root: root, logger: logger}, nil
}

func (d *blobDirectory) Put(ctx context.Context, bucket, name string, content io.Reader, overwrite bool) error {
	path, err := d.objectPath(bucket, name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return ErrBlobAlreadyExists
		}
	}

	if err := utils.WriteFileAtomic(path, content); err != nil {
		if errors.Is(err, utils.ErrCopyingContent) {
			return fmt.Errorf("%w: %w", ErrReadingBlobContent, err)
		}
		d.logger.Err(err).Str("bucket", bucket).Str("name", name).Msg("error writing blob")
		return fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}

	return nil
}

func (d *blobDirectory) Get(ctx context.Context, bucket, name string) (io.ReadCloser, int64, error) {
	path, err := d.objectPath(bucket, name)
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrBlobNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, 0, ErrBlobNotFound
	}

	return file, info.Size(), nil
}

// objectPath resolves bucket/name under root, refusing anything that could
// step outside of the bucket directory.
func (d *blobDirectory) objectPath(bucket, name string) (string, error) {
	if !bucketNamePattern.MatchString(bucket) {
		return "", fmt.Errorf("%w: bucket %q", ErrInvalidBlobName, bucket)
	}
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: object %q", ErrInvalidBlobName, name)
	}

	return filepath.Join(d.root, bucket, name), nil
}
