package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrCopyingContent wraps read failures on the source reader passed to
// [WriteFileAtomic], so callers can tell a broken stream from a local disk
// problem.
var ErrCopyingContent = errors.New("error copying content")

// WriteFileAtomic copies r into a temporary file next to dst and renames it
// over dst once the copy is complete. The file ends up with 0600 permissions
// and missing parent directories are created with 0700.
func WriteFileAtomic(dst string, r io.Reader) (err error) {
	dir := filepath.Dir(dst)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyingContent, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("error syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("error renaming temp file: %w", err)
	}

	return nil
}
