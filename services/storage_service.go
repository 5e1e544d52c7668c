package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// StorageService stores uploaded report files and hands back the public
// URL they will be served under.
type StorageService interface {
	Save(originalName string, r io.Reader) (string, error)
}

type diskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates a StorageService writing into dir. Files are
// served under baseURL by the static file route.
func NewDiskStorage(dir, baseURL string) (StorageService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("ERROR: [Storage] Failed to create storage directory '%s': %v", dir, err)
		return nil, fmt.Errorf("failed to create storage directory '%s': %w", dir, err)
	}
	return &diskStorage{dir: dir, baseURL: baseURL}, nil
}

// Save writes the uploaded file under a name derived from the current
// timestamp plus the original extension and returns its public URL.
func (s *diskStorage) Save(originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		log.Printf("ERROR: [Storage] Failed to create file '%s': %v", path, err)
		return "", fmt.Errorf("failed to create file '%s': %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		log.Printf("ERROR: [Storage] Failed to write file '%s': %v", path, err)
		os.Remove(path)
		return "", fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	url := s.baseURL + "/" + name
	log.Printf("INFO: [Storage] Stored upload '%s' as '%s'.", originalName, url)
	return url, nil
}
