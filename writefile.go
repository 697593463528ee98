package vxl

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// writeFileBufferSize is the size of the internal buffer WriteFile
// streams through; 64 KiB matches the reference library's file-writer
// convenience wrapper.
const writeFileBufferSize = 64 * 1024

// WriteFile is a thin convenience wrapper, external to the core codec:
// it opens name for writing, streams m through it in writeFileBufferSize
// chunks, and returns the total bytes written. Grounded on the same
// open-file-then-delegate-to-the-buffer-based-core shape as
// tbogdala-voxfile's DecodeFile.
func WriteFile(m *Map, name string) (int64, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer f.Close()

	s, err := NewStream(m, writeFileBufferSize)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	// Hide f's ReadFrom method: with it, io.CopyBuffer would hand the
	// copy to os.File.ReadFrom, which ignores the buffer given here.
	n, err := io.CopyBuffer(struct{ io.Writer }{f}, s, make([]byte, writeFileBufferSize))
	if err != nil {
		return n, errors.WithStack(err)
	}
	return n, nil
}
