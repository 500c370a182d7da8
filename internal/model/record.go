package model

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fallback labels used when a tag field is absent.
const (
	// Unknown is the generic sort/display fallback for missing tag values.
	Unknown = "Unknown"

	// UnknownArtist is the display fallback for a missing artist tag.
	UnknownArtist = "Unknown Artist"

	// UnknownAlbum is the display fallback for a missing album tag.
	UnknownAlbum = "Unknown Album"

	// UnknownHash is the sentinel fingerprint for files whose content
	// could not be read.
	UnknownHash = "unknown"
)

// Record represents the normalized metadata for one scanned audio file.
//
// A Record is created by the metadata extractor when a file is first
// scanned and is immutable afterwards; audiodex never writes tags back.
// Tag fields may be absent (nil) when the file carries no tag header or
// the specific frame is missing.
type Record struct {
	// FileID is the filename without extension, used as a stable key.
	FileID string `json:"file_id"`

	// Filename is the base name of the file including extension.
	Filename string `json:"filename"`

	// FilePath is the absolute path the file was scanned from.
	FilePath string `json:"file_path"`

	// FileSize is the size of the file in bytes.
	FileSize int64 `json:"file_size"`

	// CreatedAt and ModifiedAt both carry the file's modification time;
	// stat exposes no portable birth time, so none is read.
	CreatedAt  time.Time `json:"creation_time"`
	ModifiedAt time.Time `json:"modification_time"`

	// Tag-level fields. Nil means the tag was absent.
	Title  *string `json:"title"`
	Artist *string `json:"artist"`
	Album  *string `json:"album"`
	Genre  *string `json:"genre"`
	Year   *int    `json:"year"`

	// Stream-level fields. Nil means the decoder could not determine them.
	Duration   *float64 `json:"duration"`    // seconds
	Bitrate    *int     `json:"bitrate"`     // bits per second
	SampleRate *int     `json:"sample_rate"` // Hz

	// FileHash is the bounded-prefix content fingerprint, or UnknownHash
	// when the file bytes could not be read.
	FileHash string `json:"file_hash"`
}

// NewRecord creates a Record with the path- and stat-derived fields set.
//
// FileID is derived deterministically from the path: the base name with
// the extension stripped. Tag and stream fields start absent and are
// filled in by the metadata extractor.
func NewRecord(path string, info os.FileInfo) *Record {
	base := filepath.Base(path)
	return &Record{
		FileID:     strings.TrimSuffix(base, filepath.Ext(base)),
		Filename:   base,
		FilePath:   path,
		FileSize:   info.Size(),
		CreatedAt:  info.ModTime(),
		ModifiedAt: info.ModTime(),
		FileHash:   UnknownHash,
	}
}

// TitleOr returns the title tag, or fallback if absent.
func (r *Record) TitleOr(fallback string) string {
	if r.Title != nil {
		return *r.Title
	}
	return fallback
}

// ArtistOr returns the artist tag, or fallback if absent.
func (r *Record) ArtistOr(fallback string) string {
	if r.Artist != nil {
		return *r.Artist
	}
	return fallback
}

// AlbumOr returns the album tag, or fallback if absent.
func (r *Record) AlbumOr(fallback string) string {
	if r.Album != nil {
		return *r.Album
	}
	return fallback
}

// DurationOr returns the duration in seconds, or fallback if unknown.
func (r *Record) DurationOr(fallback float64) float64 {
	if r.Duration != nil {
		return *r.Duration
	}
	return fallback
}

// DisplayLabel returns the "<artist> - <title>" label used in playlists.
// A missing artist falls back to UnknownArtist and a missing title falls
// back to the filename.
func (r *Record) DisplayLabel() string {
	return r.ArtistOr(UnknownArtist) + " - " + r.TitleOr(r.Filename)
}

// String returns a pointer to s. Convenience for building records.
func String(s string) *string { return &s }

// Int returns a pointer to i. Convenience for building records.
func Int(i int) *int { return &i }

// Float returns a pointer to f. Convenience for building records.
func Float(f float64) *float64 { return &f }
