// Package format renders sizes, durations and counters for display.
package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Size renders a byte count with binary units, e.g. "1.5 MiB".
func Size(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}

// SizeMB returns b in MiB rounded to two decimals.
func SizeMB(b int64) float64 {
	return math.Round(float64(b)/(1024*1024)*100) / 100
}

// Duration renders seconds as h:mm:ss, or m:ss under one hour.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Views renders a counter compactly: 1.2K, 3.4M, 1.0B.
func Views(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return humanize.Comma(n)
	}
}
