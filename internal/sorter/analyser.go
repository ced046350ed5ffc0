package sorter

import (
	"github.com/acm19/exifsort/internal/logger"
)

// Analyser turns a directory listing into file records.
type Analyser interface {
	// Analyse builds one record per supported file, in the order given.
	// Metadata for all of them is read with a single provider call.
	Analyse(files []string, progressChan chan<- ProgressEvent) []*FileRecord
}

// analyser implements the Analyser interface
type analyser struct {
	provider MetadataProvider
	gen      *PathGenerator
	ext      Extensions
}

// NewAnalyser creates a new Analyser instance
func NewAnalyser(provider MetadataProvider, gen *PathGenerator) Analyser {
	return &analyser{
		provider: provider,
		gen:      gen,
		ext:      NewExtensions(gen.Config().Extensions),
	}
}

// Analyse builds one record per supported file, in the order given.
func (a *analyser) Analyse(files []string, progressChan chan<- ProgressEvent) []*FileRecord {
	var media []string
	for _, f := range files {
		if a.ext.IsSupported(f) {
			media = append(media, f)
		}
	}
	logger.Info("Analysing files", "media", len(media), "total", len(files), "provider", a.provider.Name())

	metadata := a.provider.ReadMetadata(media)

	records := make([]*FileRecord, 0, len(media))
	for i, f := range media {
		emitProgress(progressChan, StageAnalysing, i+1, len(media), f)
		// A file the provider could not read gets a nil map.
		records = append(records, NewFileRecord(f, metadata[f], a.gen))
	}
	return records
}
