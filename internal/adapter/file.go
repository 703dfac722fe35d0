package adapter

import (
	"errors"
	"fmt"
	"io"

	"github.com/YabaiTech/YAPM/internal/utils"
)

// writeFileAtomic stores a downloaded body at dst. A broken body stream is
// reported as ErrTransport, anything else as ErrLocalFile.
func writeFileAtomic(dst string, r io.Reader) error {
	err := utils.WriteFileAtomic(dst, r)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrCopyingContent):
		return fmt.Errorf("%w: %w", ErrTransport, err)
	default:
		return fmt.Errorf("%w: %w", ErrLocalFile, err)
	}
}
