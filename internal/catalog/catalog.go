package catalog

import (
	"sort"
	"strings"

	"github.com/handiism/audiodex/internal/model"
)

// Sort keys accepted by Catalog.Sort.
const (
	SortArtist       = "artist"
	SortTitle        = "title"
	SortAlbum        = "album"
	SortDuration     = "duration"
	SortFileSize     = "file_size"
	SortCreationTime = "creation_time"
)

// Catalog is the mutable ordered collection of records plus the running
// aggregate counters maintained during scanning.
type Catalog struct {
	records []*model.Record

	// Counters updated during scanning only. Deduplicate does not adjust
	// them; see Deduplicate.
	TotalFiles    int
	SuccessCount  int
	ErrorCount    int
	TotalDuration float64 // seconds
	TotalSize     int64   // bytes
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{}
}

// Add appends a successfully scanned record and updates the counters.
func (c *Catalog) Add(rec *model.Record) {
	c.records = append(c.records, rec)
	c.TotalFiles++
	c.SuccessCount++
	c.TotalSize += rec.FileSize
	if rec.Duration != nil {
		c.TotalDuration += *rec.Duration
	}
}

// AddError counts a file that failed extraction. Nothing is stored.
func (c *Catalog) AddError() {
	c.TotalFiles++
	c.ErrorCount++
}

// Records returns the records in their current order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Records() []*model.Record {
	return c.records
}

// Len returns the number of records currently in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Deduplicate removes records whose fingerprint was already seen earlier
// in the current order. The first occurrence wins; the removed duplicates
// are returned. Fingerprint collisions count as duplicates: the hash
// covers only the leading bytes of each file, an accepted trade-off.
//
// Counters are intentionally not decremented: they describe the scan,
// not the surviving collection. Running Deduplicate twice in a row
// changes nothing the second time.
func (c *Catalog) Deduplicate() []*model.Record {
	seen := make(map[string]bool, len(c.records))
	kept := c.records[:0]
	var removed []*model.Record

	for _, rec := range c.records {
		if seen[rec.FileHash] {
			removed = append(removed, rec)
			continue
		}
		seen[rec.FileHash] = true
		kept = append(kept, rec)
	}
	c.records = kept
	return removed
}

// Sort stably reorders the catalog by the named key. Missing tag values
// sort under the literal fallback "Unknown"; a missing duration sorts as
// zero. An unknown key name is a no-op.
func (c *Catalog) Sort(key string) {
	var less func(a, b *model.Record) bool

	switch key {
	case SortArtist:
		less = func(a, b *model.Record) bool {
			ka := [3]string{a.ArtistOr(model.Unknown), a.AlbumOr(model.Unknown), a.TitleOr(model.Unknown)}
			kb := [3]string{b.ArtistOr(model.Unknown), b.AlbumOr(model.Unknown), b.TitleOr(model.Unknown)}
			return lessTuple(ka[:], kb[:])
		}
	case SortTitle:
		less = func(a, b *model.Record) bool {
			return a.TitleOr(model.Unknown) < b.TitleOr(model.Unknown)
		}
	case SortAlbum:
		less = func(a, b *model.Record) bool {
			ka := [2]string{a.AlbumOr(model.Unknown), a.ArtistOr(model.Unknown)}
			kb := [2]string{b.AlbumOr(model.Unknown), b.ArtistOr(model.Unknown)}
			return lessTuple(ka[:], kb[:])
		}
	case SortDuration:
		less = func(a, b *model.Record) bool {
			return a.DurationOr(0) < b.DurationOr(0)
		}
	case SortFileSize:
		less = func(a, b *model.Record) bool {
			return a.FileSize < b.FileSize
		}
	case SortCreationTime:
		less = func(a, b *model.Record) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	default:
		return
	}

	sort.SliceStable(c.records, func(i, j int) bool {
		return less(c.records[i], c.records[j])
	})
}

func lessTuple(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Search returns the records whose title, artist, album or filename
// contains query, case-insensitively. Absent fields are skipped. The
// current collection order is preserved.
func (c *Catalog) Search(query string) []*model.Record {
	query = strings.ToLower(query)
	var matches []*model.Record

	for _, rec := range c.records {
		parts := make([]string, 0, 4)
		if rec.Title != nil {
			parts = append(parts, *rec.Title)
		}
		if rec.Artist != nil {
			parts = append(parts, *rec.Artist)
		}
		if rec.Album != nil {
			parts = append(parts, *rec.Album)
		}
		parts = append(parts, rec.Filename)

		if strings.Contains(strings.ToLower(strings.Join(parts, " ")), query) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Group is one partition of the catalog under a grouping key.
type Group struct {
	Key     string
	Records []*model.Record
}

// GroupByArtist partitions the catalog by artist name, falling back to
// "Unknown Artist". Groups appear in first-encounter order and keep the
// records in collection order.
func (c *Catalog) GroupByArtist() []Group {
	return c.groupBy(func(rec *model.Record) string {
		return rec.ArtistOr(model.UnknownArtist)
	})
}

// GroupByAlbum partitions the catalog by the composite "album - artist"
// key, with the usual fallbacks for either half.
func (c *Catalog) GroupByAlbum() []Group {
	return c.groupBy(func(rec *model.Record) string {
		return rec.AlbumOr(model.UnknownAlbum) + " - " + rec.ArtistOr(model.UnknownArtist)
	})
}

func (c *Catalog) groupBy(keyOf func(*model.Record) string) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, rec := range c.records {
		key := keyOf(rec)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
