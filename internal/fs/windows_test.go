//go:build windows
// +build windows

package fs_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/fatprobe/internal/fs"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, size int) string {
	t.Helper()

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}

	path := filepath.Join(t.TempDir(), "volume.img")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReadAtUnaligned(t *testing.T) {
	f, err := fs.Open(writeTestImage(t, 600))
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 16)
	n, err := f.ReadAt(buf, 100)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, byte(100), buf[0])
	require.Equal(t, byte(115), buf[15])
}

func TestReadAtOffsetPastEOF(t *testing.T) {
	f, err := fs.Open(writeTestImage(t, 600))
	require.NoError(t, err)
	defer f.Close()

	// The aligned window starts before EOF, the requested offset after it.
	n, err := f.ReadAt(make([]byte, 8), 700)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Zero(t, n)
}

func TestReadAtShortRead(t *testing.T) {
	f, err := fs.Open(writeTestImage(t, 600))
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 100)
	n, err := f.ReadAt(buf, 550)
	require.Error(t, err)
	require.Equal(t, 50, n)
	require.Equal(t, byte(38), buf[0])
}
