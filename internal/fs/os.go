//go:build !windows
// +build !windows

package fs

import "os"

// Open opens a disk image or raw device strictly for reading.
func Open(path string) (File, error) {
	return os.OpenFile(path, os.O_RDONLY, 0)
}
