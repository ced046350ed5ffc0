package sorter

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/acm19/exifsort/internal/config"
)

// newTestConfig builds the default configuration rooted at dir, with optional tweaks.
func newTestConfig(t *testing.T, dir string, tweak func(*config.Settings)) config.Config {
	t.Helper()
	s := config.DefaultSettings()
	s.SourceDir = dir
	if tweak != nil {
		tweak(&s)
	}
	cfg, err := s.Build()
	if err != nil {
		t.Fatalf("Failed to build config: %v", err)
	}
	return cfg
}

func createTestFile(t *testing.T, dir, filename string) string {
	t.Helper()
	filePath := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", filePath, err)
	}
	if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", filePath, err)
	}
	return filePath
}

// writeJPEG writes a small JPEG without EXIF data.
func writeJPEG(t *testing.T, dir, filename string) string {
	t.Helper()
	filePath := filepath.Join(dir, filename)
	f, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create file %s: %v", filePath, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	return filePath
}

func createTestDir(t *testing.T, parentDir, name string) string {
	t.Helper()
	dirPath := filepath.Join(parentDir, name)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", dirPath, err)
	}
	return dirPath
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

func dated(value string) Metadata {
	return Metadata{
		"EXIF:DateTimeOriginal": value,
		mimeTypeTag:             "image/jpeg",
	}
}

// stubProvider returns canned metadata and records what it was asked for.
type stubProvider struct {
	name      string
	metadata  map[string]Metadata
	requested [][]string
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) ReadMetadata(paths []string) map[string]Metadata {
	p.requested = append(p.requested, paths)
	out := make(map[string]Metadata)
	for _, path := range paths {
		if md, ok := p.metadata[path]; ok {
			out[path] = md
		}
	}
	return out
}
