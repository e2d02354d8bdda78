package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskFileStorer(t *testing.T) {
	dir := t.TempDir()
	storer, err := NewDiskFileStorer(dir, "/static/uploads")
	assert.NoError(t, err)

	url, err := storer.Store(context.Background(), "photo.png", strings.NewReader("image bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// stored under a generated name, never the client-supplied one
	assert.NotContains(t, url, "photo")

	name := filepath.Base(url)
	content, err := os.ReadFile(filepath.Join(dir, name))
	assert.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
}

func TestDiskFileStorerCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskFileStorer(dir, "/static/uploads")
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
