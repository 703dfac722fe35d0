package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func newTestBlobDirectory(t *testing.T) (BlobStorage, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "blobs")
	blobs, err := NewBlobDirectory(root, logger.Nop())
	require.NoError(t, err)
	return blobs, root
}

func readBlob(t *testing.T, blobs BlobStorage, bucket, name string) string {
	t.Helper()
	rc, size, err := blobs.Get(context.Background(), bucket, name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
	return string(data)
}

func TestNewBlobDirectory_EmptyRoot(t *testing.T) {
	_, err := NewBlobDirectory("", logger.Nop())
	require.ErrorIs(t, err, ErrOpeningBlobStorage)
}

func TestBlobDirectory_PutGet(t *testing.T) {
	blobs, root := newTestBlobDirectory(t)
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "vaults", "12.db", strings.NewReader("vault bytes"), false))

	assert.Equal(t, "vault bytes", readBlob(t, blobs, "vaults", "12.db"))
	assert.FileExists(t, filepath.Join(root, "vaults", "12.db"))
}

func TestBlobDirectory_PutWithoutOverwrite(t *testing.T) {
	blobs, _ := newTestBlobDirectory(t)
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "vaults", "12.db", strings.NewReader("first"), false))

	err := blobs.Put(ctx, "vaults", "12.db", strings.NewReader("second"), false)
	require.ErrorIs(t, err, ErrBlobAlreadyExists)
	assert.Equal(t, "first", readBlob(t, blobs, "vaults", "12.db"))

	require.NoError(t, blobs.Put(ctx, "vaults", "12.db", strings.NewReader("second"), true))
	assert.Equal(t, "second", readBlob(t, blobs, "vaults", "12.db"))
}

func TestBlobDirectory_PutBrokenStream(t *testing.T) {
	blobs, root := newTestBlobDirectory(t)
	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, "vaults", "12.db", strings.NewReader("kept"), false))

	err := blobs.Put(ctx, "vaults", "12.db", brokenReader{}, true)
	require.ErrorIs(t, err, ErrReadingBlobContent)
	assert.Equal(t, "kept", readBlob(t, blobs, "vaults", "12.db"))

	entries, err := os.ReadDir(filepath.Join(root, "vaults"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBlobDirectory_GetMissing(t *testing.T) {
	blobs, _ := newTestBlobDirectory(t)

	_, _, err := blobs.Get(context.Background(), "vaults", "404.db")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobDirectory_GetDirectoryIsNotFound(t *testing.T) {
	blobs, root := newTestBlobDirectory(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vaults", "nested"), 0o700))

	_, _, err := blobs.Get(context.Background(), "vaults", "nested")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobDirectory_InvalidNames(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		object string
	}{
		{name: "empty bucket", bucket: "", object: "1.db"},
		{name: "bucket traversal", bucket: "..", object: "1.db"},
		{name: "bucket with slash", bucket: "a/b", object: "1.db"},
		{name: "empty object", bucket: "vaults", object: ""},
		{name: "dot object", bucket: "vaults", object: "."},
		{name: "dotdot object", bucket: "vaults", object: ".."},
		{name: "object traversal", bucket: "vaults", object: "../../etc/passwd"},
		{name: "backslash", bucket: "vaults", object: `..\x.db`},
		{name: "hidden temp file", bucket: "vaults", object: ".12.db.123.part"},
		{name: "nul byte", bucket: "vaults", object: "a\x00b"},
	}

	blobs, _ := newTestBlobDirectory(t)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blobs.Put(ctx, tt.bucket, tt.object, strings.NewReader("x"), true)
			assert.ErrorIs(t, err, ErrInvalidBlobName)

			_, _, err = blobs.Get(ctx, tt.bucket, tt.object)
			assert.ErrorIs(t, err, ErrInvalidBlobName)
		})
	}
}

func TestBlobDirectory_CanceledContext(t *testing.T) {
	blobs, _ := newTestBlobDirectory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := blobs.Put(ctx, "vaults", "1.db", strings.NewReader("x"), true)
	require.ErrorIs(t, err, context.Canceled)
}
