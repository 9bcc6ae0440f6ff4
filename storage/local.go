package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage writes files to a directory on disk, served under /uploads
type LocalStorage struct {
	BaseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

// Save implements Storage
func (s *LocalStorage) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(filename)
	key := uuid.NewString() + ext
	filePath := filepath.Join(s.BaseDir, key)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", err
	}

	return key, nil
}

// Get implements Storage
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.BaseDir, key))
}

// URL implements Storage
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}
	// Adjust this based on your actual file serving setup
	return "/uploads/" + key, nil
}
