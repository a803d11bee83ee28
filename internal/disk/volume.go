package disk

import (
	"runtime"
	"strings"
	"unicode"
)

// NormalizeVolumePath checks if a given path is a Windows volume path
// and normalizes it to \\.\C: format if running on Windows.
// Otherwise, returns the path unchanged.
func NormalizeVolumePath(path string) string {
	if runtime.GOOS != "windows" {
		return path // Only normalize on Windows
	}

	path = strings.TrimSpace(path)
	path = strings.ReplaceAll(path, "/", `\`)
	upper := strings.ToUpper(path)

	// Already a raw volume path like \\.\C:
	if strings.HasPrefix(upper, `\\.\`) {
		return upper
	}

	// Handle paths like "C:" or "C:\" (must be drive letter only)
	if len(upper) >= 2 && upper[1] == ':' && unicode.IsLetter(rune(upper[0])) {
		// Normalize to \\.\C:
		return `\\.\` + strings.ToUpper(string(upper[0])) + `:`
	}

	return path // Not a volume path
}

// DevicePath maps a bare drive name to the operating system's raw device
// path: "sda" becomes "/dev/sda" on POSIX systems, while drive letters
// such as "C" or "C:" become \\.\C: volume paths on Windows.
func DevicePath(drive string) string {
	drive = strings.TrimSpace(drive)
	if runtime.GOOS == "windows" {
		letter := strings.ToUpper(strings.TrimSuffix(drive, ":"))
		return `\\.\` + letter + `:`
	}
	return "/dev/" + drive
}
