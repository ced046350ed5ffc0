package sorter

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/acm19/exifsort/internal/logger"
)

// mimeTypeTag carries the MIME type that drives the media-type classification.
const mimeTypeTag = "File:MIMEType"

// RecordState is the lifecycle stage a FileRecord reached.
type RecordState int

const (
	StateUnvalidated RecordState = iota
	StateInvalid
	StateValidated
	StateTimestampResolved
	StateNamed
)

func (s RecordState) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateInvalid:
		return "invalid"
	case StateValidated:
		return "validated"
	case StateTimestampResolved:
		return "timestamp-resolved"
	case StateNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Issue is the reason a record failed a checkpoint or fell back.
type Issue int

const (
	IssueNone Issue = iota
	IssueMissing
	IssueEmpty
	IssueUnreadable
	IssueUnwritable
	IssueNoMetadata
	IssueNoTimestamp
)

var issueMessages = map[Issue]string{
	IssueMissing:     "File does not exist.",
	IssueEmpty:       "File is empty.",
	IssueUnreadable:  "File is not readable.",
	IssueUnwritable:  "File is not writable.",
	IssueNoMetadata:  "Metadata not provided or could not be read.",
	IssueNoTimestamp: "No EXIF date found.",
}

// Message returns the user-facing description of the issue.
func (i Issue) Message() string {
	return issueMessages[i]
}

// FileRecord is one candidate media file and every decision taken about it.
// Pointer fields are nil until computed, or when the value does not apply.
type FileRecord struct {
	PathOld string
	NameOld string
	Stem    string
	ExtOld  string

	Size     int64
	Readable bool
	Writable bool

	// Metadata is nil when no tag map was available for the file.
	Metadata Metadata
	// Timestamp is the capture time as read from TimestampTag.
	Timestamp    *time.Time
	TimestampTag string
	// Adjusted is Timestamp plus the configured offset.
	Adjusted *time.Time
	MIMEType string
	// MediaType is the part of MIMEType before the slash, or "unknown".
	MediaType string

	State RecordState
	Valid bool
	Issue Issue
	Error string

	ExtNew   string
	Prefix   string
	Interfix string
	// Subdir is nil when subdirectories are disabled.
	Subdir  *string
	NameNew string
	PathNew string
}

// NewFileRecord validates the file at path, resolves its timestamp from md and
// computes its destination with gen. Pass a nil md when no metadata could be read.
func NewFileRecord(path string, md Metadata, gen *PathGenerator) *FileRecord {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	r := &FileRecord{
		PathOld:  abs,
		NameOld:  filepath.Base(abs),
		Stem:     stem(abs),
		ExtOld:   extension(abs),
		Metadata: md,
		State:    StateUnvalidated,
		Valid:    true,
	}

	if !r.validate() {
		return r
	}
	if !r.resolveTimestamp(gen) {
		return r
	}
	r.name(gen)
	return r
}

func (r *FileRecord) fail(issue Issue) {
	r.Issue = issue
	r.Error = issue.Message()
	r.Valid = false
	r.State = StateInvalid
}

func (r *FileRecord) validate() bool {
	size, issue := validateFile(r.PathOld)
	r.Size = size
	r.Readable = issue != IssueMissing && issue != IssueEmpty && issue != IssueUnreadable
	r.Writable = issue == IssueNone
	if issue != IssueNone {
		r.fail(issue)
		logger.Debug("File failed validation", "file", r.NameOld, "error", r.Error)
		return false
	}
	r.State = StateValidated
	return true
}

func (r *FileRecord) resolveTimestamp(gen *PathGenerator) bool {
	cfg := gen.Config()
	if r.Metadata == nil {
		r.fail(IssueNoMetadata)
		return false
	}

	if ts, tag, ok := ResolveTimestamp(r.Metadata, cfg.TimestampTags); ok {
		adjusted := ts.Add(cfg.Offset())
		r.Timestamp = &ts
		r.TimestampTag = tag
		r.Adjusted = &adjusted
	} else {
		r.Issue = IssueNoTimestamp
		r.Error = IssueNoTimestamp.Message()
		if !cfg.UseFallbackFolder {
			r.fail(IssueNoTimestamp)
			return false
		}
	}

	r.MediaType = "unknown"
	if mime, ok := r.Metadata.String(mimeTypeTag); ok && mime != "" {
		r.MIMEType = mime
		r.MediaType = strings.SplitN(mime, "/", 2)[0]
	}
	r.State = StateTimestampResolved
	return true
}

func (r *FileRecord) name(gen *PathGenerator) {
	cfg := gen.Config()

	r.ExtNew = r.newExtension(cfg.NormalizeExtension, cfg.ChangeExtensions)
	if r.Adjusted != nil && cfg.UsePrefix {
		r.Prefix = gen.Prefix(*r.Adjusted)
	}
	r.Interfix = cfg.Interfix
	if subdir, ok := gen.Subdirectory(r.Adjusted); ok {
		r.Subdir = &subdir
	}

	r.NameNew = gen.Filename(r.Stem, r.Prefix, r.Interfix, r.ExtNew)
	r.PathNew = gen.Path(r.SubdirName(), r.NameNew)
	r.State = StateNamed
	logger.Debug("Computed destination", "file", r.NameOld, "subdir", r.SubdirName(), "name", r.NameNew)
}

// newExtension lowercases the old extension when normalising, then applies
// the remap table.
func (r *FileRecord) newExtension(normalise bool, changes map[string]string) string {
	ext := r.ExtOld
	if normalise {
		ext = strings.ToLower(ext)
	}
	if mapped, ok := changes[ext]; ok {
		return mapped
	}
	return ext
}

// SubdirName returns the destination folder, or "" when subdirectories are disabled.
func (r *FileRecord) SubdirName() string {
	if r.Subdir == nil {
		return ""
	}
	return *r.Subdir
}

// HasTimestamp reports whether a capture time was found.
func (r *FileRecord) HasTimestamp() bool {
	return r.Timestamp != nil
}
