package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/audiodex/internal/catalog"
	"github.com/handiism/audiodex/internal/model"
)

func testCatalog() *catalog.Catalog {
	cat := catalog.New()

	full := &model.Record{
		FileID:     "song",
		Filename:   "song.mp3",
		FilePath:   "/music/song.mp3",
		FileSize:   5 * 1024 * 1024,
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Title:      model.String("A Song"),
		Artist:     model.String("Some Band"),
		Album:      model.String("The Album"),
		Genre:      model.String("Rock"),
		Year:       model.Int(2003),
		Duration:   model.Float(185.25),
		Bitrate:    model.Int(128000),
		SampleRate: model.Int(44100),
		FileHash:   "0123456789abcdef",
	}
	bare := &model.Record{
		FileID:   "untitled",
		Filename: "untitled.wav",
		FilePath: "/music/untitled.wav",
		FileSize: 1024,
		FileHash: "fedcba9876543210",
	}
	cat.Add(full)
	cat.Add(bare)
	cat.AddError()
	return cat
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	cat := testCatalog()
	generatedAt := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	data, err := NewJSONExporter("/music").Marshal(cat, generatedAt)
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	md := doc.Metadata
	if md.GeneratedAt != "2024-06-01T08:30:00Z" {
		t.Errorf("generated_at = %q", md.GeneratedAt)
	}
	if md.CacheDirectory != "/music" {
		t.Errorf("cache_directory = %q", md.CacheDirectory)
	}
	if md.TotalSongs != 2 {
		t.Errorf("total_songs = %d, want 2", md.TotalSongs)
	}
	if md.Statistics.TotalFiles != 3 || md.Statistics.SuccessCount != 2 || md.Statistics.ErrorCount != 1 {
		t.Errorf("statistics counters = %+v", md.Statistics)
	}

	if len(doc.Playlist) != 2 {
		t.Fatalf("playlist has %d entries, want 2", len(doc.Playlist))
	}

	// Every field survives the round trip, including the exact duration
	// float and the absent-vs-present distinction.
	got := doc.Playlist[0]
	want := *cat.Records()[0]
	if got.FileID != want.FileID || got.Filename != want.Filename || got.FilePath != want.FilePath {
		t.Errorf("identity fields differ: %+v", got.Record)
	}
	if got.Duration == nil || *got.Duration != 185.25 {
		t.Errorf("duration = %v, want exactly 185.25", got.Duration)
	}
	if got.Year == nil || *got.Year != 2003 {
		t.Errorf("year = %v, want 2003", got.Year)
	}
	if got.DurationFormatted != "03:05" {
		t.Errorf("duration_formatted = %q, want %q", got.DurationFormatted, "03:05")
	}
	if got.FileSizeFormatted != "5.0 MB" {
		t.Errorf("file_size_formatted = %q, want %q", got.FileSizeFormatted, "5.0 MB")
	}

	bare := doc.Playlist[1]
	if bare.Title != nil || bare.Duration != nil {
		t.Error("absent fields must round-trip as null, not zero values")
	}
	if bare.DurationFormatted != "00:00" {
		t.Errorf("bare duration_formatted = %q, want %q", bare.DurationFormatted, "00:00")
	}
}

func TestJSONExporter_Deterministic(t *testing.T) {
	cat := testCatalog()
	generatedAt := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	ex := NewJSONExporter("/music")

	a, err := ex.Marshal(cat, generatedAt)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ex.Marshal(cat, generatedAt)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("same catalog and timestamp must export identical bytes")
	}
}

func TestJSONExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	cat := testCatalog()

	if err := NewJSONExporter("/music").Export(cat, time.Now().UTC(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("export wrote invalid JSON")
	}
}

func TestPlaylistWriter_M3U(t *testing.T) {
	cat := testCatalog()

	got := NewPlaylistWriter(FormatM3U).Render(cat.Records())

	want := strings.Join([]string{
		"#EXTM3U",
		"#EXTINF:185,Some Band - A Song",
		"/music/song.mp3",
		"#EXTINF:-1,Unknown Artist - untitled.wav",
		"/music/untitled.wav",
		"",
	}, "\n")
	if got != want {
		t.Errorf("M3U output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlaylistWriter_PLS(t *testing.T) {
	cat := testCatalog()

	got := NewPlaylistWriter(FormatPLS).Render(cat.Records())

	want := strings.Join([]string{
		"[playlist]",
		"File1=/music/song.mp3",
		"Title1=Some Band - A Song",
		"Length1=185",
		"File2=/music/untitled.wav",
		"Title2=Unknown Artist - untitled.wav",
		"Length2=-1",
		"NumberOfEntries=2",
		"Version=2",
		"",
	}, "\n")
	if got != want {
		t.Errorf("PLS output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlaylistWriter_WriteGroups(t *testing.T) {
	// Album group keys come straight from tags, so separators and other
	// filename-hostile characters must be sanitized away.
	cat := catalog.New()
	cat.Add(&model.Record{
		FileID:   "live",
		Filename: "live.mp3",
		FilePath: "/music/live.mp3",
		Artist:   model.String("AC/DC"),
		Album:    model.String("Live: Loud"),
		Title:    model.String("Riff"),
		FileHash: "1111111111111111",
	})
	cat.Add(&model.Record{
		FileID:   "quiet",
		Filename: "quiet.mp3",
		FilePath: "/music/quiet.mp3",
		FileHash: "2222222222222222",
	})
	dir := t.TempDir()

	if err := NewPlaylistWriter(FormatM3U).WriteGroups(cat.GroupByAlbum(), dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Live_ Loud - AC_DC.m3u"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "/music/live.mp3") {
		t.Errorf("album playlist missing its track:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "Unknown Album - Unknown Artist.m3u")); err != nil {
		t.Errorf("fallback-key playlist not written: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"m3u", FormatM3U},
		{"PLS", FormatPLS},
		{"anything", FormatM3U},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFormat(tt.name); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
