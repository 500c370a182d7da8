package model

import "fmt"

// sizeUnits are the scaled units used by FormatSize, each step 1024x.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatDuration renders a duration in seconds as zero-padded "MM:SS".
//
// Durations of an hour or more simply grow the minutes field ("75:30").
// Negative or unknown durations should be handled by the caller; this
// function treats negative input as zero.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatSize renders a byte count as a human-readable string with one
// decimal place, scaling through B/KB/MB/GB/TB at 1024-byte boundaries.
//
//	FormatSize(512)     // "512.0 B"
//	FormatSize(5242880) // "5.0 MB"
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range sizeUnits[:len(sizeUnits)-1] {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[len(sizeUnits)-1])
}
