package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Helper to format bytes into human-readable units, avoiding .00 for whole numbers
func FormatBytes(b int64) string {
	const (
		_  = iota // ignore first value
		KB = 1 << (10 * iota)
		MB
		GB
		TB
	)

	val := float64(b)
	var unit string

	switch {
	case b >= TB:
		val /= float64(TB)
		unit = "TB"
	case b >= GB:
		val /= float64(GB)
		unit = "GB"
	case b >= MB:
		val /= float64(MB)
		unit = "MB"
	case b >= KB:
		val /= float64(KB)
		unit = "KB"
	default:
		return fmt.Sprintf("%dB", b)
	}

	// Use %.0f for whole numbers, %.2f for numbers with decimals
	if val == float64(int(val)) {
		return fmt.Sprintf("%.0f%s", val, unit)
	}
	return fmt.Sprintf("%.2f%s", val, unit)
}

// ParseBytes converts a human-readable size string such as "512", "64KB"
// or "1.5GB" into a number of bytes. Units are powers of 1024. A bare
// number or a "B" suffix denotes plain bytes.
func ParseBytes(s string) (uint64, error) {
	const (
		_  = iota // ignore first value
		KB = 1 << (10 * iota)
		MB
		GB
		TB
	)

	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var mult uint64 = 1
	switch {
	case strings.HasSuffix(str, "TB"):
		mult, str = TB, str[:len(str)-2]
	case strings.HasSuffix(str, "GB"):
		mult, str = GB, str[:len(str)-2]
	case strings.HasSuffix(str, "MB"):
		mult, str = MB, str[:len(str)-2]
	case strings.HasSuffix(str, "KB"):
		mult, str = KB, str[:len(str)-2]
	case strings.HasSuffix(str, "B"):
		str = str[:len(str)-1]
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if val < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return uint64(val * float64(mult)), nil
}
