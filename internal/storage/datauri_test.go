package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47} // PNG magic
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, ext, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "png", ext)
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		uri  string
	}{
		{"missing separator", "data:image/png;base64"},
		{"not an image", "data:text/plain;base64,aGVsbG8="},
		{"unsupported extension", "data:image/tiff;base64,aGVsbG8="},
		{"invalid base64", "data:image/png;base64,!!!!"},
		{"empty payload", "data:image/png;base64,"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURI(tt.uri)
			assert.Error(t, err)
		})
	}
}

func TestDiskStoreSave(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/media")

	url, err := store.Save("recipes/images", []byte("image-bytes"), "jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/images/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// The blob must exist under the media root with the same name.
	name := filepath.Base(url)
	content, err := os.ReadFile(filepath.Join(root, "recipes/images", name))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), content)
}
