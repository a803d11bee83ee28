package fs

import (
	"io"
	"os"
)

// File is the read-only surface the inspector needs from a disk image or
// raw device: positioned reads for boot sectors and partition tables, plus
// Stat for the source size.
type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}
