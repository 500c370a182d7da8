// Package metadata extracts tag and stream information from audio files.
//
// # Extraction
//
// Use the Extractor to turn a file path into a model.Record:
//
//	ex := metadata.NewExtractor()
//	rec, ok := ex.Extract("/music/song.flac")
//	if !ok {
//	    // file was not recognized as audio
//	}
//
// Extraction never panics or returns an error past this boundary: an
// unrecognized file reports ok=false, and a recognized file with no tag
// header reports ok=true with all tag fields absent.
//
// # Tag Resolution
//
// Logical fields (title, artist, album, genre, year) are resolved through
// ordered alias tables covering ID3v2.2/2.3/2.4 frame IDs, Vorbis comment
// keys and MP4 atom names. The first present, non-empty value wins; list
// values contribute their first element. This keeps format differences in
// configuration data rather than code branches.
//
// # Stream Info
//
// Duration, bitrate and sample rate come from per-format decoders:
// tcolgate/mp3 (frame walk), mewkiz/flac (StreamInfo), go-audio/wav,
// jfreymuth/oggvorbis and abema/go-mp4 (mvhd probe).
package metadata
