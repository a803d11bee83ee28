//go:build linux
// +build linux

package disk

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DeviceSize returns the total size in bytes of a block device via the
// BLKGETSIZE64 ioctl. Regular files report their size through Stat and
// never need this.
func DeviceSize(f *os.File) (uint64, error) {
	var size uint64
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size))); errno != 0 {
		return 0, fmt.Errorf("ioctl BLKGETSIZE64 failed: %w", errno)
	}
	return size, nil
}

// DeviceSectorSize returns the logical sector size in bytes of a block
// device via the BLKSSZGET ioctl.
func DeviceSectorSize(f *os.File) (uint64, error) {
	var size uint64
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKSSZGET, uintptr(unsafe.Pointer(&size))); errno != 0 {
		return 0, fmt.Errorf("ioctl BLKSSZGET failed: %w", errno)
	}
	return size, nil
}
