package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"

	"github.com/handiism/audiodex/internal/model"
)

// yearPattern matches the first run of exactly four consecutive digits,
// used to pull a year out of full date strings like "2003-05-01".
var yearPattern = regexp.MustCompile(`\d{4}`)

// Extractor reads tag and stream metadata from audio files.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds a Record for the file at path.
//
// It returns ok=false when the file cannot be recognized as audio at all:
// no tag header was found and no stream decoder accepted the content.
// A recognized file without tags is not an error; the record is returned
// with all tag fields absent and only stream info populated.
//
// Extract never lets a decoder failure escape: I/O errors, malformed
// input and decoder panics all degrade to ok=false.
func (e *Extractor) Extract(path string) (rec *model.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rec, ok = nil, false
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	raw, tagged := e.readTags(path)
	stream, streamErr := probeStream(path, info.Size())

	if !tagged && streamErr != nil {
		return nil, false
	}

	rec = model.NewRecord(path, info)
	if tagged {
		applyTags(rec, raw)
	}
	if streamErr == nil {
		rec.Duration = stream.duration
		rec.Bitrate = stream.bitrate
		rec.SampleRate = stream.sampleRate
	}
	return rec, true
}

// readTags reads the raw tag map for path. The second return reports
// whether a tag header was actually found; a missing header is not an
// error condition.
func (e *Extractor) readTags(path string) (rawTags, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err == nil {
		return rawTags(m.Raw()), true
	}
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, false
	}

	// dhowden/tag rejects some real-world MP3s with damaged headers that
	// bogem/id3v2 still parses; salvage those before giving up.
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return readID3Fallback(path)
	}
	return nil, false
}

// readID3Fallback parses ID3v2 frames with bogem/id3v2 and flattens the
// text frames into a raw tag map.
func readID3Fallback(path string) (rawTags, bool) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, false
	}
	defer t.Close()

	if !t.HasFrames() {
		return nil, false
	}

	raw := rawTags{}
	for id, frames := range t.AllFrames() {
		if len(frames) == 0 {
			continue
		}
		if tf, ok := frames[0].(id3v2.TextFrame); ok {
			raw[id] = tf.Text
		}
	}
	return raw, len(raw) > 0
}

// applyTags resolves each logical field against the alias tables and
// fills the record. Absent fields stay nil.
func applyTags(rec *model.Record, raw rawTags) {
	if v, ok := raw.Get(FieldTitle); ok {
		rec.Title = model.String(v)
	}
	if v, ok := raw.Get(FieldArtist); ok {
		rec.Artist = model.String(v)
	}
	if v, ok := raw.Get(FieldAlbum); ok {
		rec.Album = model.String(v)
	}
	if v, ok := raw.Get(FieldGenre); ok {
		rec.Genre = model.String(v)
	}
	if v, ok := raw.Get(FieldYear); ok {
		rec.Year = parseYear(v)
	}
}

// parseYear normalizes a raw year tag. A pure digit string parses
// directly; otherwise the first four-consecutive-digit substring is used.
// Returns nil when neither form matches.
func parseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if isDigits(raw) {
		if y, err := strconv.Atoi(raw); err == nil {
			return model.Int(y)
		}
		return nil
	}
	if m := yearPattern.FindString(raw); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return model.Int(y)
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
