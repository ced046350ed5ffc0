package sorter

import (
	"fmt"

	"github.com/acm19/exifsort/internal/logger"
)

// Progress stages.
const (
	StageAnalysing = "analysing"
	StageMoving    = "moving"
)

// ProgressEvent represents a progress update during file processing operations.
type ProgressEvent struct {
	// Stage indicates the current processing stage ("analysing", "moving").
	Stage string
	// Current is the number of items processed so far.
	Current int
	// Total is the total number of items to process.
	Total int
	// Message is a human-readable description of the current operation.
	Message string
	// File is the path of the file currently being processed.
	File string
}

// emitProgress sends an event without blocking; events are dropped when the
// channel is full or nil.
func emitProgress(progressChan chan<- ProgressEvent, stage string, current, total int, file string) {
	if progressChan == nil {
		return
	}
	select {
	case progressChan <- ProgressEvent{
		Stage:   stage,
		Current: current,
		Total:   total,
		Message: fmt.Sprintf("%s file %d of %d", stage, current, total),
		File:    file,
	}:
	default:
		logger.Debug("Progress event dropped (channel full)", "stage", stage)
	}
}
