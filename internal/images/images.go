// Package images converts uploaded profile photos into data URIs so the
// athlete record stays a self-contained document with no file storage.
package images

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxUploadBytes caps profile image uploads at 5 MB.
const MaxUploadBytes = 5 << 20

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// ToDataURI reads an uploaded image and encodes it as a base64 data URI.
// The content type is sniffed from the bytes, not trusted from the
// upload headers.
func ToDataURI(file multipart.File) (string, error) {
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", MaxUploadBytes)
	}

	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// IsDataURI reports whether a profile image value is an inline data URI
// rather than an external URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
