// Package storage provides file storage adapters for uploaded recipe
// images.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	"go.uber.org/zap"
)

// LocalStorage implements outbound.StorageService on the local
// filesystem. Keys are flattened to base names so a crafted key cannot
// escape the root directory.
type LocalStorage struct {
	root   string
	logger *zap.Logger
}

// NewLocalStorage creates a local storage adapter rooted at the given
// directory, creating it if needed.
func NewLocalStorage(root string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	return &LocalStorage{
		root:   root,
		logger: logger.Named("local-storage"),
	}, nil
}

var _ outbound.StorageService = (*LocalStorage)(nil)

// Upload writes the data under the given key and returns the stored path
func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(filepath.Clean(key))
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.logger.Debug("File stored",
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)
	return path, nil
}

// Delete removes a stored file. Deleting an absent file is not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := filepath.Base(filepath.Clean(key))
	path := filepath.Join(s.root, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
