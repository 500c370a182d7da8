package metadata

import "testing"

func TestRawTags_Get(t *testing.T) {
	tests := []struct {
		name   string
		raw    rawTags
		field  Field
		want   string
		wantOK bool
	}{
		{
			name:   "id3v2 frame",
			raw:    rawTags{"TIT2": "A Song"},
			field:  FieldTitle,
			want:   "A Song",
			wantOK: true,
		},
		{
			name:   "vorbis comment key",
			raw:    rawTags{"title": "Vorbis Song"},
			field:  FieldTitle,
			want:   "Vorbis Song",
			wantOK: true,
		},
		{
			name:   "mp4 atom",
			raw:    rawTags{"\xa9nam": "Atom Song"},
			field:  FieldTitle,
			want:   "Atom Song",
			wantOK: true,
		},
		{
			name:   "alias priority order",
			raw:    rawTags{"TIT2": "From ID3", "title": "From Vorbis"},
			field:  FieldTitle,
			want:   "From ID3",
			wantOK: true,
		},
		{
			name:   "empty value skipped for later alias",
			raw:    rawTags{"TIT2": "  ", "title": "Fallback"},
			field:  FieldTitle,
			want:   "Fallback",
			wantOK: true,
		},
		{
			name:   "list takes first element",
			raw:    rawTags{"artist": []string{"First", "Second"}},
			field:  FieldArtist,
			want:   "First",
			wantOK: true,
		},
		{
			name:   "non-string value stringified",
			raw:    rawTags{"year": 1999},
			field:  FieldYear,
			want:   "1999",
			wantOK: true,
		},
		{
			name:   "absent field",
			raw:    rawTags{"TIT2": "A Song"},
			field:  FieldAlbum,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.raw.Get(tt.field)
			if ok != tt.wantOK {
				t.Fatalf("Get ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Get = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want string
	}{
		{"string", " padded ", "padded"},
		{"nil", nil, ""},
		{"empty list", []string{}, ""},
		{"interface list", []interface{}{42, "later"}, "42"},
		{"int", 7, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringify(tt.val); got != tt.want {
				t.Errorf("stringify(%v) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}
}
