package table

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// NewByteProgress returns a byte progress bar sized to the file, for
// plain (non-TUI) commands. Plug it into ParseOptions.Progress.
func NewByteProgress(path, label string) (io.Writer, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return progressbar.DefaultBytes(fi.Size(), label), nil
}
