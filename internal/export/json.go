package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/handiism/audiodex/internal/catalog"
	ioutils "github.com/handiism/audiodex/internal/io"
	"github.com/handiism/audiodex/internal/model"
)

// Document is the top-level JSON export schema.
type Document struct {
	Metadata DocumentMetadata `json:"metadata"`
	Playlist []Entry          `json:"playlist"`
}

// DocumentMetadata describes the export itself plus the scan counters.
type DocumentMetadata struct {
	GeneratedAt    string             `json:"generated_at"`
	CacheDirectory string             `json:"cache_directory"`
	TotalSongs     int                `json:"total_songs"`
	Statistics     DocumentStatistics `json:"statistics"`
}

// DocumentStatistics carries the catalog's scan-time counters.
type DocumentStatistics struct {
	TotalFiles    int     `json:"total_files"`
	SuccessCount  int     `json:"success_count"`
	ErrorCount    int     `json:"error_count"`
	TotalDuration float64 `json:"total_duration"` // seconds
	TotalSize     int64   `json:"total_size"`     // bytes
}

// Entry is one record in the export, extended with the human-readable
// duration and size forms.
type Entry struct {
	model.Record
	DurationFormatted string `json:"duration_formatted"`
	FileSizeFormatted string `json:"file_size_formatted"`
}

// JSONExporter writes the catalog as an indented JSON document.
type JSONExporter struct {
	// CacheDirectory is the scanned source directory recorded in the
	// document metadata.
	CacheDirectory string
}

// NewJSONExporter creates a JSONExporter for the given source directory.
func NewJSONExporter(cacheDirectory string) *JSONExporter {
	return &JSONExporter{CacheDirectory: cacheDirectory}
}

// BuildDocument assembles the export document for cat at the given
// generation time. The result depends only on the catalog state and
// generatedAt, making exports reproducible.
func (e *JSONExporter) BuildDocument(cat *catalog.Catalog, generatedAt time.Time) *Document {
	records := cat.Records()
	doc := &Document{
		Metadata: DocumentMetadata{
			GeneratedAt:    generatedAt.Format(time.RFC3339),
			CacheDirectory: e.CacheDirectory,
			TotalSongs:     len(records),
			Statistics: DocumentStatistics{
				TotalFiles:    cat.TotalFiles,
				SuccessCount:  cat.SuccessCount,
				ErrorCount:    cat.ErrorCount,
				TotalDuration: cat.TotalDuration,
				TotalSize:     cat.TotalSize,
			},
		},
		Playlist: make([]Entry, 0, len(records)),
	}

	for _, rec := range records {
		doc.Playlist = append(doc.Playlist, Entry{
			Record:            *rec,
			DurationFormatted: model.FormatDuration(rec.DurationOr(0)),
			FileSizeFormatted: model.FormatSize(rec.FileSize),
		})
	}
	return doc
}

// Marshal renders the document as indented JSON.
func (e *JSONExporter) Marshal(cat *catalog.Catalog, generatedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(e.BuildDocument(cat, generatedAt), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

// Export writes the JSON document to path atomically.
func (e *JSONExporter) Export(cat *catalog.Catalog, generatedAt time.Time, path string) error {
	data, err := e.Marshal(cat, generatedAt)
	if err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(path, data)
}
