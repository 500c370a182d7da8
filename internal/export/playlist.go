package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/audiodex/internal/catalog"
	ioutils "github.com/handiism/audiodex/internal/io"
	"github.com/handiism/audiodex/internal/model"
)

// Format represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
type Format int

const (
	// FormatM3U creates .m3u files (most compatible). Output is always
	// extended M3U: a #EXTM3U header and per-record #EXTINF lines.
	FormatM3U Format = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// ParseFormat maps a format name ("m3u", "pls") to a Format, defaulting
// to M3U for anything unrecognized.
func ParseFormat(name string) Format {
	if strings.EqualFold(name, "pls") {
		return FormatPLS
	}
	return FormatM3U
}

// PlaylistWriter generates playlist files from catalog records.
//
// Records are written in the order given, so the playlist reflects
// whatever sort the catalog currently holds. Output is deterministic:
// the same records always produce the same bytes.
//
// Example:
//
//	w := export.NewPlaylistWriter(export.FormatM3U)
//	err := w.Write(cat.Records(), "/music/playlist.m3u")
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// /music/song.mp3
type PlaylistWriter struct {
	format Format
}

// NewPlaylistWriter creates a PlaylistWriter for the given format.
func NewPlaylistWriter(format Format) *PlaylistWriter {
	return &PlaylistWriter{format: format}
}

// Render generates the playlist content for records.
func (w *PlaylistWriter) Render(records []*model.Record) string {
	if w.format == FormatPLS {
		return w.renderPLS(records)
	}
	return w.renderM3U(records)
}

// Write renders the playlist and writes it to path atomically.
func (w *PlaylistWriter) Write(records []*model.Record, path string) error {
	return ioutils.WriteFileAtomic(path, []byte(w.Render(records)))
}

// WriteGroups writes one playlist per group into dir, naming each file
// after its sanitized group key. Group keys come from tags, so they can
// carry path separators and other characters invalid in filenames.
func (w *PlaylistWriter) WriteGroups(groups []catalog.Group, dir string) error {
	for _, group := range groups {
		name := ioutils.SanitizeFileName(group.Key) + w.format.Extension()
		if err := w.Write(group.Records, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// renderM3U generates an extended M3U playlist.
//
// Each record contributes an info line and a path line:
//
//	#EXTINF:<seconds-or--1>,<artist> - <title>
//	/absolute/path/to/file.mp3
//
// A record without a known duration carries -1, the conventional M3U
// marker for "unknown length".
func (w *PlaylistWriter) renderM3U(records []*model.Record) string {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")
	for _, rec := range records {
		seconds := -1
		if rec.Duration != nil {
			seconds = int(*rec.Duration)
		}
		sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", seconds, rec.DisplayLabel()))
		sb.WriteString(rec.FilePath + "\n")
	}
	return sb.String()
}

// renderPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=/music/song.mp3
//	Title1=Artist - Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (w *PlaylistWriter) renderPLS(records []*model.Record) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	for i, rec := range records {
		idx := i + 1
		length := -1
		if rec.Duration != nil {
			length = int(*rec.Duration)
		}
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, rec.FilePath))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, rec.DisplayLabel()))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, length))
	}
	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(records)))
	sb.WriteString("Version=2\n")
	return sb.String()
}
