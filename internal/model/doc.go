// Package model defines the core data structures used throughout audiodex.
//
// # Record
//
// Record holds the normalized metadata for one scanned audio file:
//
//	rec := model.NewRecord("/music/song.mp3", info)
//	rec.Title = model.String("A Song")
//	fmt.Println(rec.TitleOr(model.Unknown))
//
// Tag-level fields (Title, Artist, Album, Genre, Year) and stream-level
// fields (Duration, Bitrate, SampleRate) are pointer-typed: a nil pointer
// means the value was absent from the file, which downstream formatting
// treats differently from an empty string.
//
// # Display Fallbacks
//
// Fallback labels are applied at read time, never stored:
//
//	rec.ArtistOr(model.UnknownArtist) // "Unknown Artist" if no artist tag
//
// # Formatting
//
// FormatDuration and FormatSize produce the human-readable forms used by
// the exporters:
//
//	model.FormatDuration(185.2) // "03:05"
//	model.FormatSize(5242880)   // "5.0 MB"
package model
