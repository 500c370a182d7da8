package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/handiism/audiodex/internal/scan"
)

// Settings holds all configuration options.
type Settings struct {
	// CacheDirectory is the directory that gets scanned. It is always an
	// explicit setting, never derived from the install location.
	CacheDirectory string `json:"cache_directory"`

	// Extensions is the set of audio file extensions recognized by the
	// scanner, each including the leading dot.
	Extensions []string `json:"extensions"`

	// WorkerCount controls concurrent metadata extraction. 1 scans
	// sequentially.
	WorkerCount int `json:"worker_count"`

	// Export targets.
	ExportPath     string `json:"export_path"`
	PlaylistPath   string `json:"playlist_path"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls

	// DefaultSortKey is applied to the catalog before exporting.
	DefaultSortKey string `json:"default_sort_key"`

	// Verbose enables per-file progress output.
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	musicDir := filepath.Join(homeDir, "Music")
	return &Settings{
		CacheDirectory: musicDir,
		Extensions:     append([]string(nil), scan.Extensions...),
		WorkerCount:    1,
		ExportPath:     filepath.Join(musicDir, "catalog.json"),
		PlaylistPath:   filepath.Join(musicDir, "playlist.m3u"),
		PlaylistFormat: "m3u",
		DefaultSortKey: "artist",
	}
}

// Load reads settings from a JSON file. A missing file is not an error:
// defaults are returned.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
