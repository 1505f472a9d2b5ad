package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// allowed image extensions for recipe uploads
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// DecodeDataURI decodes a `data:image/<ext>;base64,<payload>` string
// into the raw image bytes and its extension.
func DecodeDataURI(uri string) ([]byte, string, error) {
	header, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, "", fmt.Errorf("invalid data URI: missing payload separator")
	}

	if !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("invalid data URI: expected data:image/<ext>;base64 header")
	}

	ext := strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64")
	if !allowedExtensions[ext] {
		return nil, "", fmt.Errorf("unsupported image type: %s", ext)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}

	return data, ext, nil
}
