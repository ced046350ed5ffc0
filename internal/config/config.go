// Package config holds the settings of a single sorting run.
//
// A Config is built once, before any file is touched, and is passed by value
// to every component afterwards. Nothing mutates it during a run.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoExtensions is returned when no usable media extension is configured.
	ErrNoExtensions = errors.New("at least one file extension must be specified")
	// ErrInvalidDayStart is returned when the day start is not a valid HH:MM:SS clock time.
	ErrInvalidDayStart = errors.New("invalid day start time")
	// ErrQuietVerbose is returned when quiet and verbose output are both requested.
	ErrQuietVerbose = errors.New("cannot use both quiet mode and verbose mode")
)

// ClockTime is a time of day with second precision.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses an HH:MM:SS string.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("%w: %q must be in HH:MM:SS format", ErrInvalidDayStart, s)
	}

	var values [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return ClockTime{}, fmt.Errorf("%w: %q is not a number", ErrInvalidDayStart, part)
		}
		values[i] = n
	}

	ct := ClockTime{Hour: values[0], Minute: values[1], Second: values[2]}
	if ct.Hour < 0 || ct.Hour > 23 || ct.Minute < 0 || ct.Minute > 59 || ct.Second < 0 || ct.Second > 59 {
		return ClockTime{}, fmt.Errorf("%w: %q (hours: 0-23, minutes/seconds: 0-59)", ErrInvalidDayStart, s)
	}
	return ct, nil
}

// String formats the clock time as HH:MM:SS.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// IsMidnight reports whether the clock time is 00:00:00.
func (c ClockTime) IsMidnight() bool {
	return c == ClockTime{}
}

// After reports whether c is strictly later in the day than the clock time of t.
func (c ClockTime) After(t time.Time) bool {
	return secondsOfDay(t.Hour(), t.Minute(), t.Second()) < secondsOfDay(c.Hour, c.Minute, c.Second)
}

// MarshalYAML renders the clock time in its HH:MM:SS form.
func (c ClockTime) MarshalYAML() (any, error) {
	return c.String(), nil
}

func secondsOfDay(h, m, s int) int {
	return h*3600 + m*60 + s
}

// Config is the validated, immutable configuration of a run.
type Config struct {
	// Extensions are lowercase media extensions without the leading dot.
	Extensions []string `yaml:"extensions"`
	// ChangeExtensions remaps an extension after optional lowercasing.
	ChangeExtensions map[string]string `yaml:"change_extensions"`
	// TimestampTags are metadata tag names tried in priority order.
	TimestampTags     []string  `yaml:"timestamp_tags"`
	DirectoryTemplate string    `yaml:"directory_template"`
	FileTemplate      string    `yaml:"file_template"`
	Interfix          string    `yaml:"interfix"`
	FallbackFolder    string    `yaml:"fallback_folder"`
	DayStart          ClockTime `yaml:"day_start"`
	// OffsetSeconds is added to every extracted timestamp.
	OffsetSeconds int `yaml:"offset"`

	UsePrefix          bool `yaml:"use_prefix"`
	UseSubdirs         bool `yaml:"use_subdirs"`
	NormalizeExtension bool `yaml:"normalize_extension"`
	UseFallbackFolder  bool `yaml:"use_fallback_folder"`
	Overwrite          bool `yaml:"overwrite"`

	// SourceDir is the absolute path of the directory being organised.
	SourceDir string `yaml:"source_dir"`

	DryRun       bool   `yaml:"dry_run"`
	CheckOnly    bool   `yaml:"check_only"`
	Yes          bool   `yaml:"yes"`
	Verbose      bool   `yaml:"verbose"`
	Quiet        bool   `yaml:"quiet"`
	ShowDetails  bool   `yaml:"show_details"`
	ShowErrors   bool   `yaml:"show_errors"`
	ShowSettings bool   `yaml:"show_settings"`
	ExiftoolPath string `yaml:"exiftool_path,omitempty"`
}

// Offset returns the configured offset as a duration.
func (c Config) Offset() time.Duration {
	return time.Duration(c.OffsetSeconds) * time.Second
}

// Validate checks the invariants that do not depend on the filesystem.
func (c Config) Validate() error {
	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	if c.Quiet && c.Verbose {
		return ErrQuietVerbose
	}
	return nil
}

// YAML renders the configuration for the settings dump.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render settings: %w", err)
	}
	return string(out), nil
}

// Settings is the raw, loosely typed form of a Config as it is read from
// defaults, config files, environment and flags.
type Settings struct {
	Extensions         []string          `mapstructure:"extensions"`
	ChangeExtensions   map[string]string `mapstructure:"change_extensions"`
	TimestampTags      []string          `mapstructure:"timestamp_tags"`
	DirectoryTemplate  string            `mapstructure:"directory_template"`
	FileTemplate       string            `mapstructure:"file_template"`
	Interfix           string            `mapstructure:"interfix"`
	FallbackFolder     string            `mapstructure:"fallback_folder"`
	DayStart           string            `mapstructure:"day_start"`
	Offset             int               `mapstructure:"offset"`
	UsePrefix          bool              `mapstructure:"use_prefix"`
	UseSubdirs         bool              `mapstructure:"use_subdirs"`
	NormalizeExtension bool              `mapstructure:"normalize_extension"`
	UseFallbackFolder  bool              `mapstructure:"use_fallback_folder"`
	Overwrite          bool              `mapstructure:"overwrite"`
	SourceDir          string            `mapstructure:"source_dir"`
	DryRun             bool              `mapstructure:"dry_run"`
	CheckOnly          bool              `mapstructure:"check_only"`
	Yes                bool              `mapstructure:"yes"`
	Verbose            bool              `mapstructure:"verbose"`
	Quiet              bool              `mapstructure:"quiet"`
	ShowDetails        bool              `mapstructure:"show_details"`
	ShowErrors         bool              `mapstructure:"show_errors"`
	ShowSettings       bool              `mapstructure:"show_settings"`
	ExiftoolPath       string            `mapstructure:"exiftool_path"`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		Extensions:       []string{"jpg", "jpeg", "dng", "mov", "mp4", "orf", "ori", "raw"},
		ChangeExtensions: map[string]string{"jpeg": "jpg", "tiff": "tif"},
		TimestampTags: []string{
			"EXIF:DateTimeOriginal",
			"EXIF:CreateDate",
			"XMP:CreateDate",
			"QuickTime:CreateDate",
		},
		DirectoryTemplate:  "YYYYMMDD",
		FileTemplate:       "YYYYMMDD-HHMMSS",
		FallbackFolder:     "_UNKNOWN",
		DayStart:           "04:00:00",
		UsePrefix:          true,
		UseSubdirs:         true,
		NormalizeExtension: true,
		UseFallbackFolder:  true,
		SourceDir:          ".",
	}
}

// Build normalises the raw settings and returns a validated Config.
func (s Settings) Build() (Config, error) {
	dayStart, err := ParseClockTime(s.DayStart)
	if err != nil {
		return Config{}, err
	}

	sourceDir := s.SourceDir
	if sourceDir == "" {
		sourceDir = "."
	}
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	cfg := Config{
		Extensions:         normaliseExtensions(s.Extensions),
		ChangeExtensions:   normaliseChanges(s.ChangeExtensions),
		TimestampTags:      append([]string(nil), s.TimestampTags...),
		DirectoryTemplate:  s.DirectoryTemplate,
		FileTemplate:       s.FileTemplate,
		Interfix:           s.Interfix,
		FallbackFolder:     s.FallbackFolder,
		DayStart:           dayStart,
		OffsetSeconds:      s.Offset,
		UsePrefix:          s.UsePrefix,
		UseSubdirs:         s.UseSubdirs,
		NormalizeExtension: s.NormalizeExtension,
		UseFallbackFolder:  s.UseFallbackFolder,
		Overwrite:          s.Overwrite,
		SourceDir:          absSource,
		DryRun:             s.DryRun,
		CheckOnly:          s.CheckOnly,
		Yes:                s.Yes,
		Verbose:            s.Verbose,
		Quiet:              s.Quiet,
		ShowDetails:        s.ShowDetails,
		ShowErrors:         s.ShowErrors,
		ShowSettings:       s.ShowSettings,
		ExiftoolPath:       s.ExiftoolPath,
	}
	if cfg.FallbackFolder == "" {
		cfg.FallbackFolder = DefaultSettings().FallbackFolder
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normaliseExtensions lowercases, strips leading dots and drops blanks and duplicates.
func normaliseExtensions(exts []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ext := range exts {
		e := strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func normaliseChanges(changes map[string]string) map[string]string {
	out := make(map[string]string, len(changes))
	for from, to := range changes {
		from = strings.TrimLeft(strings.TrimSpace(from), ".")
		to = strings.TrimLeft(strings.TrimSpace(to), ".")
		if from == "" || to == "" {
			continue
		}
		out[from] = to
	}
	return out
}
