package sorter

import (
	"path/filepath"
	"slices"
	"strings"
)

// Extensions decides which files are media by their extension.
type Extensions interface {
	// IsSupported returns true if the file extension is one of the configured media extensions.
	IsSupported(filePath string) bool
	// Count returns how many of the files have each supported extension.
	Count(files []string) map[string]int
}

// extensions implements the Extensions interface.
type extensions struct {
	exts []string
}

// NewExtensions creates an Extensions instance for lowercase, dot-less extensions.
func NewExtensions(exts []string) Extensions {
	return &extensions{exts: exts}
}

// IsSupported returns true if the file extension is one of the configured media extensions.
func (e *extensions) IsSupported(filePath string) bool {
	ext := strings.ToLower(extension(filePath))
	return ext != "" && slices.Contains(e.exts, ext)
}

// Count returns how many of the files have each supported extension.
func (e *extensions) Count(files []string) map[string]int {
	counts := make(map[string]int)
	for _, f := range files {
		if e.IsSupported(f) {
			counts[strings.ToLower(extension(f))]++
		}
	}
	return counts
}

// extension returns the extension of filePath without the leading dot, case preserved.
func extension(filePath string) string {
	return strings.TrimPrefix(filepath.Ext(filePath), ".")
}

// stem returns the file name without directory and extension.
func stem(filePath string) string {
	name := filepath.Base(filePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
