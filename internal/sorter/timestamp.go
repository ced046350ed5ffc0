package sorter

import (
	"fmt"
	"strings"
	"time"

	"github.com/acm19/exifsort/internal/logger"
)

const (
	// timestampLength is the length of "YYYY:MM:DD HH:MM:SS"; anything after it
	// (sub-seconds, zone offsets) is ignored.
	timestampLength = 19
	timestampLayout = "2006-01-02 15:04:05"
)

// Metadata is a flat tag map as returned by a metadata provider. Keys are
// group-qualified tag names such as "EXIF:DateTimeOriginal". A nil Metadata
// means no metadata could be read for the file.
type Metadata map[string]any

// String returns the value of tag when it is a string.
func (m Metadata) String(tag string) (string, bool) {
	v, ok := m[tag]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ResolveTimestamp returns the first timestamp that parses among tags, tried
// in order, together with the tag it came from. A tag that is missing or does
// not parse is skipped. ok is false when no tag yields a timestamp.
func ResolveTimestamp(md Metadata, tags []string) (ts time.Time, tag string, ok bool) {
	for _, tag := range tags {
		raw, present := md[tag]
		if !present {
			continue
		}
		parsed, err := parseTimestamp(raw)
		if err != nil {
			logger.Debug("Skipping unparseable date tag", "tag", tag, "value", raw, "error", err)
			continue
		}
		return parsed, tag, true
	}
	return time.Time{}, "", false
}

// parseTimestamp accepts "YYYY:MM:DD HH:MM:SS" and "YYYY-MM-DD HH:MM:SS".
func parseTimestamp(raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("value of type %T is not a date", raw)
	}
	if len(s) < timestampLength {
		return time.Time{}, fmt.Errorf("date %q is too short", s)
	}
	s = s[:timestampLength]
	if s[4] == ':' {
		// Only the date part uses colons as separators.
		s = strings.Replace(s, ":", "-", 2)
	}
	return time.Parse(timestampLayout, s)
}
