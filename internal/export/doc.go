// Package export serializes a catalog to interchange formats.
//
// # JSON Export
//
// The JSON exporter writes a document with a metadata section (generation
// timestamp, source directory, counters) and the full record list:
//
//	ex := export.NewJSONExporter("/music")
//	err := ex.Export(cat, time.Now().UTC(), "/music/catalog.json")
//
// # Playlist Export
//
// Generate playlists from the catalog's current order:
//
//	w := export.NewPlaylistWriter(export.FormatM3U)
//	content := w.Render(cat.Records())
//	err := w.Write(cat.Records(), "/music/playlist.m3u")
//
// Supported formats:
//   - M3U (extended, with #EXTINF duration/label lines)
//   - PLS
//
// Both exporters are byte-for-byte deterministic given the same catalog
// state and generation timestamp.
package export
