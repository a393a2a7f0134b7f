package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStore persists clock event snapshots.
type PhotoStore interface {
	// Save decodes a base64 photo and stores it under key, returning
	// the stored relative path.
	Save(ctx context.Context, key string, photoBase64 string) (string, error)
	Delete(ctx context.Context, path string) error
}

type LocalPhotoStore struct {
	basePath string
}

func NewLocalPhotoStore(basePath string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &LocalPhotoStore{basePath: basePath}, nil
}

func (s *LocalPhotoStore) Save(ctx context.Context, key string, photoBase64 string) (string, error) {
	// Clients may send data URIs; strip the prefix before decoding.
	if idx := strings.Index(photoBase64, ","); idx != -1 && strings.HasPrefix(photoBase64, "data:") {
		photoBase64 = photoBase64[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(photoBase64)
	if err != nil {
		return "", fmt.Errorf("invalid photo encoding: %w", err)
	}

	cleanPath := filepath.Clean(key) + ".jpg"
	fullPath := filepath.Join(s.basePath, cleanPath)

	// Keep writes inside the base directory.
	if !strings.HasPrefix(fullPath, filepath.Clean(s.basePath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid photo path: %s", key)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return cleanPath, nil
}

func (s *LocalPhotoStore) Delete(ctx context.Context, path string) error {
	cleanPath := filepath.Clean(path)
	fullPath := filepath.Join(s.basePath, cleanPath)

	if !strings.HasPrefix(fullPath, filepath.Clean(s.basePath)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid photo path: %s", path)
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
