package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ImageStore persists decoded image blobs and returns the public URL
// the API serves back in recipe representations.
type ImageStore interface {
	// Save stores the blob under the given folder and returns its URL.
	Save(folder string, data []byte, ext string) (string, error)
}

// DiskStore writes images under a local media root, served statically.
type DiskStore struct {
	Root    string
	BaseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{Root: root, BaseURL: baseURL}
}

func (s *DiskStore) Save(folder string, data []byte, ext string) (string, error) {
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	url := path.Join(s.BaseURL, folder, name)
	log.WithFields(log.Fields{
		"path": fullPath,
		"url":  url,
		"size": len(data),
	}).Debug("Stored image on disk")

	return url, nil
}
