package sorter

import (
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
)

// RunStats summarises a processing run.
type RunStats struct {
	// Processed holds the original names of files moved (or that would be moved in dry-run mode).
	Processed []string
	// Skipped holds the original names of valid files that could not be moved.
	Skipped []string
	// CreatedDirs holds the destination folders created (or that would be created).
	CreatedDirs []string
	DryRun      bool
}

// Considered returns how many valid records the run handled.
func (s *RunStats) Considered() int {
	return len(s.Processed) + len(s.Skipped)
}

// FolderInfo describes the source directory before processing.
type FolderInfo struct {
	Path     string
	Created  time.Time
	Modified time.Time
	// FileCount is the number of regular files directly inside Path.
	FileCount  int
	MediaCount int
	// MediaTypes counts media files per lowercase extension.
	MediaTypes map[string]int
	// MediaSize is the total size in bytes of the media files.
	MediaSize int64
}

// ValidateSourceDir checks that dir exists, is a directory and can be written to.
func ValidateSourceDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	if !isWritable(dir) {
		return fmt.Errorf("directory is not writable: %s", dir)
	}
	return nil
}

// GetFolderInfo collects the statistics of dir for the given listing.
// Created falls back to the change time, then the modification time, on
// file systems that do not record birth times.
func GetFolderInfo(dir string, files []string, ext Extensions) (*FolderInfo, error) {
	ts, err := times.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	info := &FolderInfo{
		Path:       dir,
		Modified:   ts.ModTime(),
		Created:    ts.ModTime(),
		FileCount:  len(files),
		MediaTypes: ext.Count(files),
	}
	switch {
	case ts.HasBirthTime():
		info.Created = ts.BirthTime()
	case ts.HasChangeTime():
		info.Created = ts.ChangeTime()
	}

	for _, f := range files {
		if !ext.IsSupported(f) {
			continue
		}
		info.MediaCount++
		if fi, err := os.Stat(f); err == nil {
			info.MediaSize += fi.Size()
		}
	}
	return info, nil
}
