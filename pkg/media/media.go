// Package media enforces the upload constraints of the messaging provider
// before a blob is handed to the opaque BlobStore collaborator.
package media

import (
	"fmt"
	"strings"
)

// Size limits in bytes.
const (
	MaxVideoSize   = 15 << 20 // 15 MB
	MaxAudioSize   = 16 << 20 // 16 MB
	MaxGenericSize = 16 << 20 // 16 MB
)

// Allowed mime types.
var (
	imageMimes = map[string]bool{"image/jpeg": true, "image/png": true}
	audioMimes = map[string]bool{"audio/ogg": true, "audio/opus": true}
)

// ConstraintError reports an upload rejected before reaching storage.
type ConstraintError struct {
	Mime   string
	Size   int64
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("upload rejected: %s (mime=%s, size=%d)", e.Reason, e.Mime, e.Size)
}

// ValidateUpload checks a candidate upload against the provider constraints:
// images must be jpeg or png at most 16 MB, video at most 15 MB, audio must
// be ogg/opus at most 16 MB, anything else at most 16 MB.
func ValidateUpload(mime string, size int64) error {
	switch {
	case strings.HasPrefix(mime, "image/"):
		if !imageMimes[mime] {
			return &ConstraintError{Mime: mime, Size: size, Reason: "image must be jpeg or png"}
		}
		if size > MaxGenericSize {
			return &ConstraintError{Mime: mime, Size: size, Reason: "image exceeds 16 MB"}
		}
	case strings.HasPrefix(mime, "video/"):
		if size > MaxVideoSize {
			return &ConstraintError{Mime: mime, Size: size, Reason: "video exceeds 15 MB"}
		}
	case strings.HasPrefix(mime, "audio/"):
		if !audioMimes[mime] {
			return &ConstraintError{Mime: mime, Size: size, Reason: "audio must be ogg or opus"}
		}
		if size > MaxAudioSize {
			return &ConstraintError{Mime: mime, Size: size, Reason: "audio exceeds 16 MB"}
		}
	default:
		if size > MaxGenericSize {
			return &ConstraintError{Mime: mime, Size: size, Reason: "file exceeds 16 MB"}
		}
	}
	return nil
}
