package metadata

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

// writeWAV writes a minimal valid PCM WAV file (8 kHz, mono, 16-bit) with
// the given number of sample frames and returns its path.
func writeWAV(t *testing.T, dir, name string, samples int) string {
	t.Helper()

	const (
		sampleRate = 8000
		blockAlign = 2
	)
	dataLen := samples * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeTaggedMP3 writes a file consisting of just an ID3v2 tag with the
// given frames and returns its path.
func writeTaggedMP3(t *testing.T, dir, name string, frames map[string]string) string {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	for id, text := range frames {
		tag.AddTextFrame(id, id3v2.EncodingUTF8, text)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_UntaggedWAV(t *testing.T) {
	// A recognized file without a tag header is not an error: the record
	// comes back with tag fields absent and stream info populated.
	path := writeWAV(t, t.TempDir(), "take1.wav", 8000*2) // 2 seconds

	rec, ok := NewExtractor().Extract(path)
	if !ok {
		t.Fatal("Extract reported failure for a valid WAV file")
	}

	if rec.Title != nil || rec.Artist != nil || rec.Album != nil || rec.Genre != nil || rec.Year != nil {
		t.Error("tag fields should be absent for an untagged file")
	}
	if rec.Duration == nil {
		t.Fatal("duration should be populated from the RIFF header")
	}
	if got := *rec.Duration; got < 1.99 || got > 2.01 {
		t.Errorf("duration = %v, want ~2.0", got)
	}
	if rec.SampleRate == nil || *rec.SampleRate != 8000 {
		t.Errorf("sample rate = %v, want 8000", rec.SampleRate)
	}
	if rec.Bitrate == nil || *rec.Bitrate != 8000*2*8 {
		t.Errorf("bitrate = %v, want %d", rec.Bitrate, 8000*2*8)
	}
	if rec.FileID != "take1" {
		t.Errorf("FileID = %q, want %q", rec.FileID, "take1")
	}
}

func TestExtract_TaggedFile(t *testing.T) {
	path := writeTaggedMP3(t, t.TempDir(), "song.mp3", map[string]string{
		"TIT2": "A Song",
		"TPE1": "Some Band",
		"TALB": "The Album",
		"TCON": "Rock",
		"TYER": "2003-05-01",
	})

	rec, ok := NewExtractor().Extract(path)
	if !ok {
		t.Fatal("Extract reported failure for a tagged file")
	}

	if rec.TitleOr("") != "A Song" {
		t.Errorf("Title = %v, want %q", rec.Title, "A Song")
	}
	if rec.ArtistOr("") != "Some Band" {
		t.Errorf("Artist = %v, want %q", rec.Artist, "Some Band")
	}
	if rec.AlbumOr("") != "The Album" {
		t.Errorf("Album = %v, want %q", rec.Album, "The Album")
	}
	if rec.Genre == nil || *rec.Genre != "Rock" {
		t.Errorf("Genre = %v, want %q", rec.Genre, "Rock")
	}
	if rec.Year == nil || *rec.Year != 2003 {
		t.Errorf("Year = %v, want 2003", rec.Year)
	}
}

func TestExtract_UnrecognizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.mp3")
	if err := os.WriteFile(path, []byte("this is not an audio file at all"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewExtractor().Extract(path); ok {
		t.Error("Extract should fail for content no decoder recognizes")
	}
}

func TestExtract_MissingFile(t *testing.T) {
	if _, ok := NewExtractor().Extract(filepath.Join(t.TempDir(), "nope.flac")); ok {
		t.Error("Extract should fail for a missing file")
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		raw  string
		want int // 0 means absent
	}{
		{"1999", 1999},
		{"2003-05-01", 2003},
		{"released 2010", 2010},
		{"unknown", 0},
		{"", 0},
		{"  1987  ", 1987},
		{"20030501", 20030501}, // pure digits parse directly
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parseYear(tt.raw)
			if tt.want == 0 {
				if got != nil {
					t.Errorf("parseYear(%q) = %d, want absent", tt.raw, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("parseYear(%q) = %v, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
