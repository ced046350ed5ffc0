package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acm19/exifsort/internal/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "exifsort"
	envPrefix  = "EXIFSORT"
)

// Loader layers defaults, an optional config file, EXIFSORT_* environment
// variables and command-line flags into a Config.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with every key defaulted.
func NewLoader() *Loader {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("change_extensions", d.ChangeExtensions)
	v.SetDefault("timestamp_tags", d.TimestampTags)
	v.SetDefault("directory_template", d.DirectoryTemplate)
	v.SetDefault("file_template", d.FileTemplate)
	v.SetDefault("interfix", d.Interfix)
	v.SetDefault("fallback_folder", d.FallbackFolder)
	v.SetDefault("day_start", d.DayStart)
	v.SetDefault("offset", d.Offset)
	v.SetDefault("use_prefix", d.UsePrefix)
	v.SetDefault("use_subdirs", d.UseSubdirs)
	v.SetDefault("normalize_extension", d.NormalizeExtension)
	v.SetDefault("use_fallback_folder", d.UseFallbackFolder)
	v.SetDefault("overwrite", d.Overwrite)
	v.SetDefault("source_dir", d.SourceDir)
	v.SetDefault("dry_run", false)
	v.SetDefault("check_only", false)
	v.SetDefault("yes", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("show_details", false)
	v.SetDefault("show_errors", false)
	v.SetDefault("show_settings", false)
	v.SetDefault("exiftool_path", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag makes a command-line flag override key when the flag is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Override forces key to value, above every other source.
func (l *Loader) Override(key string, value any) {
	l.v.Set(key, value)
}

// Load reads the config file (configFile, or exifsort.* from the user config
// directory and the working directory) and builds the Config.
// A missing default config file is not an error; a missing explicit one is.
func (l *Loader) Load(configFile string) (Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		l.v.SetConfigName(configName)
		if dir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(dir, configName))
		}
		l.v.AddConfigPath(".")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}
	if used := l.v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", "path", used)
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return s.Build()
}
