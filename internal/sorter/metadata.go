package sorter

import (
	"fmt"
	"path/filepath"

	"github.com/acm19/exifsort/internal/logger"
	"github.com/barasher/go-exiftool"
)

// MetadataProvider reads tag maps for a batch of files.
type MetadataProvider interface {
	// ReadMetadata returns the tags of each file it could read, keyed by the
	// path as given. Files that could not be read are absent from the result.
	ReadMetadata(paths []string) map[string]Metadata
	// Name identifies the provider in logs.
	Name() string
}

// ExiftoolProvider reads metadata through a long-running exiftool process.
// Tag names carry their group, e.g. "EXIF:DateTimeOriginal".
type ExiftoolProvider struct {
	et *exiftool.Exiftool
}

// NewExiftoolProvider starts exiftool. An empty binaryPath looks exiftool up in PATH.
func NewExiftoolProvider(binaryPath string) (*ExiftoolProvider, error) {
	opts := []func(*exiftool.Exiftool) error{exiftool.PrintGroupNames("0")}
	if binaryPath != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binaryPath))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExiftoolProvider{et: et}, nil
}

// Name identifies the provider in logs.
func (p *ExiftoolProvider) Name() string {
	return "exiftool"
}

// ReadMetadata extracts the tags of every path in a single exiftool call.
func (p *ExiftoolProvider) ReadMetadata(paths []string) map[string]Metadata {
	result := make(map[string]Metadata, len(paths))
	if len(paths) == 0 {
		return result
	}

	for i, fm := range p.et.ExtractMetadata(paths...) {
		if fm.Err != nil {
			logger.Warn("Failed to read metadata", "file", filepath.Base(fm.File), "error", fm.Err)
			continue
		}
		// exiftool echoes the file name as given; fall back to the request order.
		key := fm.File
		if key == "" && i < len(paths) {
			key = paths[i]
		}
		result[key] = Metadata(fm.Fields)
	}
	return result
}

// Close stops the exiftool process.
func (p *ExiftoolProvider) Close() error {
	return p.et.Close()
}

// AggregatedProvider asks each provider in turn for the files the previous
// ones could not read.
type AggregatedProvider struct {
	providers []MetadataProvider
}

// NewAggregatedProvider creates an AggregatedProvider trying providers in order.
func NewAggregatedProvider(providers ...MetadataProvider) *AggregatedProvider {
	return &AggregatedProvider{providers: providers}
}

// Name identifies the provider in logs.
func (a *AggregatedProvider) Name() string {
	name := "aggregated"
	for i, p := range a.providers {
		if i == 0 {
			name += "(" + p.Name()
		} else {
			name += "," + p.Name()
		}
	}
	if len(a.providers) > 0 {
		name += ")"
	}
	return name
}

// ReadMetadata merges the results of all providers, earlier ones winning.
func (a *AggregatedProvider) ReadMetadata(paths []string) map[string]Metadata {
	result := make(map[string]Metadata, len(paths))
	missing := paths
	for _, provider := range a.providers {
		if len(missing) == 0 {
			break
		}
		for path, md := range provider.ReadMetadata(missing) {
			result[path] = md
		}

		var next []string
		for _, path := range missing {
			if _, ok := result[path]; !ok {
				next = append(next, path)
			}
		}
		if len(next) > 0 {
			logger.Debug("Provider could not read all files, trying next", "provider", provider.Name(), "missing", len(next))
		}
		missing = next
	}
	return result
}
