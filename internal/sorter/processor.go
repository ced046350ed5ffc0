package sorter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acm19/exifsort/internal/config"
	"github.com/acm19/exifsort/internal/logger"
)

// msgTargetExists is recorded when the destination is taken outside the fallback folder.
const msgTargetExists = "Target file already exists."

// BatchProcessor moves analysed files to their destinations.
type BatchProcessor interface {
	// Process moves every valid record to its computed path, one at a time and
	// in order. Invalid records are ignored. A failure only affects its own
	// record, which is marked skipped with the reason in its Error field.
	//
	// Missing destination folders are created (only reported in dry-run mode).
	// When the destination exists and overwriting is off, files bound for the
	// fallback folder get a "_N" suffix and all others are skipped.
	//
	// Cancelling ctx stops the run before the next record; the returned stats
	// cover the records handled so far.
	Process(ctx context.Context, records []*FileRecord, progressChan chan<- ProgressEvent) *RunStats
}

// batchProcessor implements the BatchProcessor interface
type batchProcessor struct {
	gen    *PathGenerator
	cfg    config.Config
	rename func(oldPath, newPath string) error
	mkdir  func(path string, perm os.FileMode) error
}

// NewBatchProcessor creates a new BatchProcessor instance
func NewBatchProcessor(gen *PathGenerator) BatchProcessor {
	return &batchProcessor{
		gen:    gen,
		cfg:    gen.Config(),
		rename: os.Rename,
		mkdir:  os.MkdirAll,
	}
}

// Process moves every valid record to its computed path.
func (p *batchProcessor) Process(ctx context.Context, records []*FileRecord, progressChan chan<- ProgressEvent) *RunStats {
	stats := &RunStats{DryRun: p.cfg.DryRun}
	created := make(map[string]bool)

	total := 0
	for _, r := range records {
		if r.Valid {
			total++
		}
	}
	logger.Info("Processing files", "valid", total, "dry_run", p.cfg.DryRun)

	current := 0
	for _, r := range records {
		if !r.Valid {
			continue
		}
		if err := ctx.Err(); err != nil {
			logger.Warn("Processing cancelled", "handled", current, "total", total, "error", err)
			break
		}
		current++
		emitProgress(progressChan, StageMoving, current, total, r.PathOld)

		if err := p.ensureSubdir(r, created, stats); err != nil {
			p.skip(stats, r, err.Error())
			continue
		}

		if pathExists(r.PathNew) && !p.cfg.Overwrite {
			unique, name, err := p.gen.UniquePath(r.PathNew, r.SubdirName())
			if err != nil {
				p.skip(stats, r, err.Error())
				continue
			}
			if unique == r.PathNew {
				p.skip(stats, r, msgTargetExists)
				continue
			}
			logger.Debug("Renamed to avoid conflict", "file", r.NameOld, "from", r.NameNew, "to", name)
			r.PathNew = unique
			r.NameNew = name
		}

		if !p.cfg.DryRun {
			if err := p.rename(r.PathOld, r.PathNew); err != nil {
				p.skip(stats, r, classifyMoveError(r.PathOld, r.PathNew, err).Error())
				continue
			}
		}

		logger.Debug("Moved file", "from", r.PathOld, "to", r.PathNew, "dry_run", p.cfg.DryRun)
		stats.Processed = append(stats.Processed, r.NameOld)
	}

	logger.Info("Processing finished", "processed", len(stats.Processed), "skipped", len(stats.Skipped), "created_dirs", len(stats.CreatedDirs))
	return stats
}

// ensureSubdir creates the destination folder of r if it is missing. Each
// folder is reported once per run; in dry-run mode it is reported but not created.
func (p *batchProcessor) ensureSubdir(r *FileRecord, created map[string]bool, stats *RunStats) error {
	if !p.cfg.UseSubdirs || r.Subdir == nil {
		return nil
	}
	name := *r.Subdir
	if created[name] {
		return nil
	}

	dir := filepath.Join(p.cfg.SourceDir, name)
	if pathExists(dir) {
		return nil
	}
	if !p.cfg.DryRun {
		if err := p.mkdir(dir, 0755); err != nil {
			return fmt.Errorf("Failed to create directory %s: %w", name, err)
		}
	}
	created[name] = true
	stats.CreatedDirs = append(stats.CreatedDirs, name)
	logger.Debug("Created directory", "dir", name, "dry_run", p.cfg.DryRun)
	return nil
}

func (p *batchProcessor) skip(stats *RunStats, r *FileRecord, reason string) {
	r.Error = reason
	stats.Skipped = append(stats.Skipped, r.NameOld)
	logger.Warn("Skipped file", "file", r.NameOld, "reason", reason)
}
