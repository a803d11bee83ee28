//go:build !linux
// +build !linux

package disk

import (
	"errors"
	"os"
)

// ErrDeviceStatUnsupported is returned on platforms without block device
// size ioctls. Callers fall back to whatever Stat reports.
var ErrDeviceStatUnsupported = errors.New("block device stat not supported on this platform")

func DeviceSize(f *os.File) (uint64, error) {
	return 0, ErrDeviceStatUnsupported
}

func DeviceSectorSize(f *os.File) (uint64, error) {
	return 0, ErrDeviceStatUnsupported
}
