package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes bounds a single uploaded file.
const MaxUploadBytes = 10 << 20

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUploadTooLarge       = errors.New("upload too large")
)

// ToDataURL reads r and encodes it as a data URL. The content type is
// sniffed from the bytes; allowed lists accepted MIME prefixes such as
// "image/" or "application/pdf".
func ToDataURL(r io.Reader, allowed ...string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", ErrUploadTooLarge
	}

	mtype := mimetype.Detect(data)
	ct := mtype.String()
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	if !mediaTypeAllowed(ct, allowed) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURL reports whether s looks like a data URL of an allowed type.
func IsDataURL(s string, allowed ...string) bool {
	if !strings.HasPrefix(s, "data:") {
		return false
	}
	ct := strings.TrimPrefix(s, "data:")
	if i := strings.IndexAny(ct, ";,"); i >= 0 {
		ct = ct[:i]
	}
	return mediaTypeAllowed(ct, allowed)
}

func mediaTypeAllowed(ct string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.HasPrefix(ct, a) {
			return true
		}
	}
	return false
}
