package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorer persists uploaded files and returns a public URL. The real
// deployment points this at an external storage provider.
type FileStorer interface {
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
}

// DiskFileStorer keeps uploads on the local filesystem and serves them from
// the static route.
type DiskFileStorer struct {
	Dir     string
	BaseURL string
}

func NewDiskFileStorer(dir string, baseURL string) (*DiskFileStorer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskFileStorer{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskFileStorer) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	// the original name only contributes its extension, the stored name is
	// always a fresh uuid
	name := uuid.NewString() + filepath.Ext(filepath.Base(filename))

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.BaseURL + "/" + name, nil
}
