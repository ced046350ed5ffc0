package sorter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/acm19/exifsort/internal/config"
)

// maxUniqueAttempts bounds the search for a free "_N" name in the fallback folder.
const maxUniqueAttempts = 9999

// ErrUniqueNameExhausted is returned when no free name is found in the fallback folder.
var ErrUniqueNameExhausted = errors.New("could not generate unique filename")

// PathGenerator decides where a file goes and what it is called.
// It only reads its configuration; apart from the existence checks in
// UniquePath every method is a pure function of its arguments.
type PathGenerator struct {
	cfg        config.Config
	dirLayout  string
	fileLayout string
}

// NewPathGenerator creates a PathGenerator for cfg.
func NewPathGenerator(cfg config.Config) *PathGenerator {
	return &PathGenerator{
		cfg:        cfg,
		dirLayout:  DirectoryLayout(cfg.DirectoryTemplate),
		fileLayout: FileLayout(cfg.FileTemplate),
	}
}

// Config returns the configuration the generator was built with.
func (g *PathGenerator) Config() config.Config {
	return g.cfg
}

// Subdirectory returns the destination folder for a file with the given
// adjusted timestamp. ok is false when subdirectories are disabled. A nil
// timestamp routes to the fallback folder. Timestamps earlier in the day than
// the configured day start belong to the previous day's folder.
func (g *PathGenerator) Subdirectory(adjusted *time.Time) (subdir string, ok bool) {
	if !g.cfg.UseSubdirs {
		return "", false
	}
	if adjusted == nil {
		return g.cfg.FallbackFolder, true
	}

	day := *adjusted
	if g.cfg.DayStart.After(day) {
		day = day.AddDate(0, 0, -1)
	}
	return filepath.FromSlash(day.Format(g.dirLayout)), true
}

// Prefix renders the unshifted adjusted timestamp with the file template.
func (g *PathGenerator) Prefix(adjusted time.Time) string {
	return adjusted.Format(g.fileLayout)
}

// Filename joins prefix, interfix and stem with single dashes, leaving out
// empty parts, and appends the extension.
func (g *PathGenerator) Filename(stem, prefix, interfix, ext string) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString("-")
	}
	if interfix != "" {
		b.WriteString(interfix)
		b.WriteString("-")
	}
	b.WriteString(stem)
	if ext != "" {
		b.WriteString(".")
		b.WriteString(ext)
	}
	return b.String()
}

// Path returns the absolute destination of filename. With subdirectories
// enabled an empty subdir means the fallback folder.
func (g *PathGenerator) Path(subdir, filename string) string {
	var p string
	if g.cfg.UseSubdirs {
		if subdir == "" {
			subdir = g.cfg.FallbackFolder
		}
		p = filepath.Join(g.cfg.SourceDir, subdir, filename)
	} else {
		p = filepath.Join(g.cfg.SourceDir, filename)
	}

	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// UniquePath returns a destination that does not exist yet by inserting
// "_1", "_2", ... before the extension of base. Only files bound for the
// fallback folder are renamed; any other base is returned as is, as is a base
// that does not exist.
func (g *PathGenerator) UniquePath(base, subdir string) (path, filename string, err error) {
	filename = filepath.Base(base)
	if subdir != g.cfg.FallbackFolder || !pathExists(base) {
		return base, filename, nil
	}

	dir := filepath.Dir(base)
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; i <= maxUniqueAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		candidatePath := filepath.Join(dir, candidate)
		if !pathExists(candidatePath) {
			return candidatePath, candidate, nil
		}
	}
	return "", "", fmt.Errorf("%w for %s after %d attempts", ErrUniqueNameExhausted, filename, maxUniqueAttempts)
}
