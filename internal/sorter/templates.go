package sorter

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/acm19/exifsort/internal/config"
)

const (
	// DefaultDirectoryLayout is used for unknown directory template names.
	DefaultDirectoryLayout = "20060102"
	// DefaultFileLayout is used for unknown file template names.
	DefaultFileLayout = "20060102-150405"
)

// directoryTemplates maps symbolic directory template names to time layouts.
// A slash in a layout produces nested folders.
var directoryTemplates = map[string]string{
	"YYYYMMDD":   "20060102",
	"YYYY-MM-DD": "2006-01-02",
	"YYYY.MM.DD": "2006.01.02",
	"YYYY_MM_DD": "2006_01_02",
	"YYYY-MM":    "2006-01",
	"YYYYMM":     "200601",
	"YYYY/MM/DD": "2006/01/02",
	"YYYY/MM":    "2006/01",
	"YYYY":       "2006",
}

// fileTemplates maps symbolic filename prefix template names to time layouts.
var fileTemplates = map[string]string{
	"YYYYMMDD-HHMMSS":     "20060102-150405",
	"YYYY-MM-DD-HH-MM-SS": "2006-01-02-15-04-05",
	"YYYY.MM.DD.HH.MM.SS": "2006.01.02.15.04.05",
	"YYYYMMDD_HHMMSS":     "20060102_150405",
	"YYYY-MM-DD_HH-MM-SS": "2006-01-02_15-04-05",
	"YYYYMMDDHHMM":        "200601021504",
	"YYYYMMDD":            "20060102",
	"YYYY-MM-DD":          "2006-01-02",
	"HHMMSS":              "150405",
}

// DirectoryLayout resolves a directory template name, falling back to
// DefaultDirectoryLayout when the name is not registered.
func DirectoryLayout(name string) string {
	if layout, ok := directoryTemplates[name]; ok {
		return layout
	}
	return DefaultDirectoryLayout
}

// FileLayout resolves a file template name, falling back to
// DefaultFileLayout when the name is not registered.
func FileLayout(name string) string {
	if layout, ok := fileTemplates[name]; ok {
		return layout
	}
	return DefaultFileLayout
}

// Template is a registered template name and its time layout.
type Template struct {
	Name   string
	Layout string
}

// Render formats t with the template layout.
func (t Template) Render(ts time.Time) string {
	return filepath.FromSlash(ts.Format(t.Layout))
}

// DirectoryTemplates lists the registered directory templates sorted by name.
func DirectoryTemplates() []Template {
	return sortedTemplates(directoryTemplates)
}

// FileTemplates lists the registered file templates sorted by name.
func FileTemplates() []Template {
	return sortedTemplates(fileTemplates)
}

func sortedTemplates(table map[string]string) []Template {
	templates := make([]Template, 0, len(table))
	for name, layout := range table {
		templates = append(templates, Template{Name: name, Layout: layout})
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates
}

// Schema describes how a file named FileName.Ext is renamed under cfg.
func Schema(cfg config.Config) string {
	fileNew := "FileName.Ext"
	if cfg.NormalizeExtension {
		fileNew = "FileName.ext"
	}
	if cfg.UsePrefix {
		sep := "-"
		if cfg.Interfix != "" {
			sep = "-" + cfg.Interfix + "-"
		}
		fileNew = cfg.FileTemplate + sep + fileNew
	} else if cfg.Interfix != "" {
		fileNew = cfg.Interfix + "-" + fileNew
	}

	folder := ""
	if cfg.UseSubdirs {
		folder = cfg.DirectoryTemplate + "/"
	}
	return "FileName.Ext → " + folder + fileNew
}
