// Package ioutils provides file system utilities shared by the exporters.
//
// This package contains functions for:
//   - Atomic file writing (temp file + rename)
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//
// # File Operations
//
//	// Write an export atomically so readers never see a partial file
//	err := ioutils.WriteFileAtomic("/music/catalog.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/music/exports")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
