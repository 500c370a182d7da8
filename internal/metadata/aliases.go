package metadata

import (
	"fmt"
	"strings"
)

// Field identifies a logical metadata field resolved through the alias
// tables.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldGenre
	FieldYear
)

// fieldAliases maps each logical field to an ordered list of raw tag keys.
// Order matters: the first present, non-empty key wins. The lists cover
// ID3v2.3/2.4 frame IDs, ID3v2.2 three-letter IDs, Vorbis/FLAC comment
// keys (lowercase, as dhowden/tag stores them) and MP4 atom names.
var fieldAliases = map[Field][]string{
	FieldTitle:  {"TIT2", "TT2", "title", "\xa9nam"},
	FieldArtist: {"TPE1", "TP1", "artist", "\xa9ART", "aART"},
	FieldAlbum:  {"TALB", "TAL", "album", "\xa9alb"},
	FieldGenre:  {"TCON", "TCO", "genre", "\xa9gen", "gnre"},
	FieldYear:   {"TDRC", "TYER", "TYE", "date", "year", "\xa9day"},
}

// rawTags is the untyped key/value view of a file's tags, as produced by
// the underlying tag readers.
type rawTags map[string]interface{}

// Get resolves field against the alias table and returns the first
// present, non-empty value, stringified.
func (t rawTags) Get(field Field) (string, bool) {
	for _, key := range fieldAliases[field] {
		val, present := t[key]
		if !present {
			continue
		}
		if s := stringify(val); s != "" {
			return s, true
		}
	}
	return "", false
}

// stringify converts a raw tag value to a trimmed string. Lists contribute
// their first element; non-string scalars are formatted with fmt.
func stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []string:
		if len(v) == 0 {
			return ""
		}
		return strings.TrimSpace(v[0])
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		return stringify(v[0])
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
