package catalog

import (
	"errors"
	"fmt"

	"github.com/handiism/audiodex/internal/model"
)

// ErrEmptyCatalog is returned by Statistics when nothing has been scanned.
var ErrEmptyCatalog = errors.New("catalog: no files scanned")

// Stats summarizes the scan-time counters of a catalog.
//
// All values derive from the counters, which Deduplicate leaves untouched,
// so after a dedup these totals still describe everything that was
// scanned rather than the surviving records.
type Stats struct {
	TotalFiles   int
	SuccessCount int
	ErrorCount   int

	// SuccessRate is SuccessCount / TotalFiles, in [0, 1].
	SuccessRate float64

	// TotalDuration is the summed duration of all scanned audio, with
	// DurationHours/DurationMinutes as its hours+minutes breakdown.
	TotalDuration   float64
	DurationHours   int
	DurationMinutes int

	// TotalSizeMB is the summed file size in mebibytes.
	TotalSizeMB float64

	// Averages are per successfully scanned file.
	AverageDuration float64
	AverageSizeMB   float64
}

// FormatDuration renders the total duration as "NhMMm".
func (s Stats) FormatDuration() string {
	return fmt.Sprintf("%dh %02dm", s.DurationHours, s.DurationMinutes)
}

// FormatSize renders the scan-time total size with scaled units.
func (s Stats) FormatSize() string {
	return model.FormatSize(int64(s.TotalSizeMB * 1024 * 1024))
}

// Statistics derives aggregate statistics from the scan counters.
// It returns ErrEmptyCatalog when no files were scanned, since a success
// rate is undefined for an empty scan.
func (c *Catalog) Statistics() (Stats, error) {
	if c.TotalFiles == 0 {
		return Stats{}, ErrEmptyCatalog
	}

	s := Stats{
		TotalFiles:    c.TotalFiles,
		SuccessCount:  c.SuccessCount,
		ErrorCount:    c.ErrorCount,
		SuccessRate:   float64(c.SuccessCount) / float64(c.TotalFiles),
		TotalDuration: c.TotalDuration,
		TotalSizeMB:   float64(c.TotalSize) / (1024 * 1024),
	}

	total := int(c.TotalDuration)
	s.DurationHours = total / 3600
	s.DurationMinutes = (total % 3600) / 60

	if c.SuccessCount > 0 {
		s.AverageDuration = c.TotalDuration / float64(c.SuccessCount)
		s.AverageSizeMB = s.TotalSizeMB / float64(c.SuccessCount)
	}
	return s, nil
}
