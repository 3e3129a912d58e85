package media

import (
	"errors"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name    string
		mime    string
		size    int64
		wantErr bool
	}{
		{"png image", "image/png", 2 << 20, false},
		{"jpeg image", "image/jpeg", 2 << 20, false},
		{"image at limit", "image/jpeg", MaxGenericSize, false},
		{"image too large", "image/jpeg", MaxGenericSize + 1, true},
		{"gif rejected", "image/gif", 1 << 20, true},
		{"webp rejected", "image/webp", 1 << 20, true},
		{"video within limit", "video/mp4", MaxVideoSize, false},
		{"video too large", "video/mp4", MaxVideoSize + 1, true},
		{"ogg audio", "audio/ogg", 1 << 20, false},
		{"opus audio", "audio/opus", 1 << 20, false},
		{"mp3 rejected", "audio/mpeg", 1 << 20, true},
		{"audio too large", "audio/ogg", MaxAudioSize + 1, true},
		{"document within limit", "application/pdf", MaxGenericSize, false},
		{"document too large", "application/pdf", MaxGenericSize + 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUpload(tc.mime, tc.size)
			if tc.wantErr && err == nil {
				t.Fatalf("ValidateUpload(%q, %d) = nil, want error", tc.mime, tc.size)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateUpload(%q, %d) = %v, want nil", tc.mime, tc.size, err)
			}
			if err != nil {
				var cerr *ConstraintError
				if !errors.As(err, &cerr) {
					t.Fatalf("error is %T, want *ConstraintError", err)
				}
				if cerr.Mime != tc.mime || cerr.Size != tc.size {
					t.Errorf("error carries mime=%q size=%d, want %q %d", cerr.Mime, cerr.Size, tc.mime, tc.size)
				}
			}
		})
	}
}
