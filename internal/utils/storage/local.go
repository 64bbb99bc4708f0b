package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type localStorage struct {
	root string
}

// NewLocalStorage keeps files under root. Existing files with the same name are overwritten.
func NewLocalStorage(root string) FileStorage {
	return &localStorage{root: root}
}

func (s *localStorage) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error) {
	if _, err := detectContentType(file, allowType...); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media folder: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filepath.Base(fileName)))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return objectKey(folder, filepath.Base(fileName)), nil
}

func (s *localStorage) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// GetPublicLinkKey returns the key itself; media is served relative to the media URL prefix.
func (s *localStorage) GetPublicLinkKey(key string) string {
	return key
}
