package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/acm19/exifsort/internal/config"
	"github.com/acm19/exifsort/internal/logger"
	"github.com/acm19/exifsort/internal/sorter"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// errCancelled marks a run the user declined at the prompt.
var errCancelled = errors.New("operation cancelled by user")

// flagKeys maps flags that set a config key directly.
var flagKeys = map[string]string{
	"directory-template": "directory_template",
	"files-details":      "show_details",
	"extensions":         "extensions",
	"show-errors":        "show_errors",
	"file-template":      "file_template",
	"interfix":           "interfix",
	"new-day":            "day_start",
	"fallback-folder":    "fallback_folder",
	"offset":             "offset",
	"overwrite":          "overwrite",
	"check":              "check_only",
	"quiet":              "quiet",
	"settings":           "show_settings",
	"test":               "dry_run",
	"verbose":            "verbose",
	"yes":                "yes",
	"exiftool":           "exiftool_path",
}

// invertedFlags switch a config key off when given.
var invertedFlags = map[string]string{
	"no-normalize":  "normalize_extension",
	"no-prefix":     "use_prefix",
	"skip-fallback": "use_fallback_folder",
	"rename":        "use_subdirs",
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var (
		configFile    string
		showTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "exifsort [DIRECTORY]",
		Short: "Organise media files into date-based folders by their EXIF date",
		Long: `Exifsort renames media files after the date they were taken and moves them
into date-based subdirectories of DIRECTORY (default: the current directory).

Dates are read with exiftool when it is available, otherwise from the EXIF
data of JPEG and TIFF based files. Files without a date go to a fallback folder.

Settings are read from exifsort.yaml (or .toml, .json) in the user config
directory or the working directory, then EXIFSORT_* environment variables,
then flags.`,
		Example:       "  exifsort -o 3600 --fallback-folder UNSORTED ~/Pictures/import",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showTemplates {
				printTemplates(stdout)
				return nil
			}

			loader := config.NewLoader()
			for flagName, key := range flagKeys {
				if err := loader.BindFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
					return err
				}
			}
			for flagName, key := range invertedFlags {
				if cmd.Flags().Changed(flagName) {
					loader.Override(key, false)
				}
			}
			if len(args) == 1 {
				loader.Override("source_dir", args[0])
			}

			cfg, err := loader.Load(configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = run(ctx, cfg, stdin, newReport(stdout, cfg))
			if errors.Is(err, errCancelled) {
				fmt.Fprintln(stdout, "Operation cancelled by user.")
				return nil
			}
			return err
		},
	}

	defaults := config.DefaultSettings()
	flags := cmd.Flags()
	flags.StringP("directory-template", "d", defaults.DirectoryTemplate, "Template for directory names")
	flags.BoolP("files-details", "D", false, "Show detailed information about each file")
	flags.StringSliceP("extensions", "e", defaults.Extensions, "File extensions to process")
	flags.BoolP("show-errors", "E", false, "Show files with errors")
	flags.StringP("file-template", "f", defaults.FileTemplate, "Template for file names")
	flags.StringP("interfix", "i", "", "Text to insert between timestamp prefix and original filename")
	flags.StringP("new-day", "n", defaults.DayStart, "Time when the new day starts (HH:MM:SS)")
	flags.BoolP("no-normalize", "N", false, "Do not normalise extensions to lowercase")
	flags.StringP("fallback-folder", "F", defaults.FallbackFolder, "Folder name for files without EXIF date")
	flags.IntP("offset", "o", 0, "Time offset in seconds to apply to EXIF dates")
	flags.BoolP("overwrite", "O", false, "Overwrite existing files")
	flags.BoolP("check", "c", false, "Validate files and report issues without moving them")
	flags.BoolP("no-prefix", "p", false, "Do not add timestamp prefix to filenames")
	flags.BoolP("quiet", "q", false, "Suppress non-error messages")
	flags.BoolP("skip-fallback", "s", false, "Do not move files without date to the fallback folder")
	flags.BoolP("settings", "S", false, "Show the resolved settings")
	flags.BoolP("rename", "r", false, "Rename in place without moving files to subdirectories")
	flags.BoolP("test", "t", false, "Show what would be done without making changes")
	flags.BoolVarP(&showTemplates, "templates", "T", false, "Show available directory and file templates and exit")
	flags.BoolP("verbose", "V", false, "Print detailed information during processing")
	flags.BoolP("yes", "y", false, "Assume yes to all prompts")
	flags.StringVar(&configFile, "config", "", "Config file (default: exifsort.yaml in the user config or working directory)")
	flags.String("exiftool", "", "Path to the exiftool binary (default: looked up in PATH)")

	return cmd
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		logger.Error("exifsort failed", "error", err)
		os.Exit(1)
	}
}

// run analyses cfg.SourceDir and, unless checking only, moves the valid files.
func run(ctx context.Context, cfg config.Config, stdin io.Reader, r *report) error {
	start := time.Now()
	switch {
	case cfg.Quiet:
		logger.SetLevel(slog.LevelError)
	case cfg.Verbose:
		logger.SetLevel(slog.LevelDebug)
	default:
		logger.SetLevel(slog.LevelWarn)
	}

	if err := sorter.ValidateSourceDir(cfg.SourceDir); err != nil {
		return err
	}

	provider, closeProvider := newProvider(cfg.ExiftoolPath)
	defer closeProvider()

	r.header()

	files, err := sorter.ListFiles(cfg.SourceDir)
	if err != nil {
		return err
	}
	info, err := sorter.GetFolderInfo(cfg.SourceDir, files, sorter.NewExtensions(cfg.Extensions))
	if err != nil {
		return err
	}
	r.folderInfo(info)

	gen := sorter.NewPathGenerator(cfg)
	progressChan, done := r.progress("Analysing", info.MediaCount)
	records := sorter.NewAnalyser(provider, gen).Analyse(files, progressChan)
	close(progressChan)
	<-done

	if cfg.ShowDetails {
		for _, rec := range records {
			r.fileDetails(rec)
		}
	}

	if cfg.CheckOnly {
		r.checkReport(sorter.CheckFiles(records))
		return nil
	}

	valid := r.filesSummary(records)
	if valid == 0 {
		r.line("No valid media files to process. Exiting.")
		return nil
	}
	if !cfg.Yes && !cfg.DryRun && !confirm(stdin, r, valid) {
		return errCancelled
	}

	progressChan, done = r.progress("Moving", valid)
	stats := sorter.NewBatchProcessor(gen).Process(ctx, records, progressChan)
	close(progressChan)
	<-done

	if cfg.Verbose {
		r.moves(records)
	}
	if cfg.Verbose || cfg.ShowErrors {
		r.skipped(records, stats)
	}
	r.footer(stats, time.Since(start))
	return ctx.Err()
}

// newProvider prefers exiftool and falls back to native EXIF parsing for
// files it cannot read, or entirely when exiftool is not available.
func newProvider(exiftoolPath string) (sorter.MetadataProvider, func()) {
	native := sorter.NewNativeProvider()
	et, err := sorter.NewExiftoolProvider(exiftoolPath)
	if err != nil {
		logger.Warn("exiftool not available, reading EXIF natively", "error", err)
		return native, func() {}
	}
	return sorter.NewAggregatedProvider(et, native), func() {
		if err := et.Close(); err != nil {
			logger.Debug("Failed to close exiftool", "error", err)
		}
	}
}

func confirm(stdin io.Reader, r *report, count int) bool {
	r.prompt(fmt.Sprintf("Do you want to continue with %d files? (yes/No): ", count))
	var answer string
	if _, err := fmt.Fscanln(stdin, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printTemplates(w io.Writer) {
	st := newStyles(w)
	sample := time.Now()
	fmt.Fprintln(w, st.title.Render("Directory templates:"))
	for _, t := range sorter.DirectoryTemplates() {
		fmt.Fprintf(w, "%s%s %s\n", indent, st.value.Render(fmt.Sprintf("%-12s", t.Name)), filepath.ToSlash(t.Render(sample)))
	}
	fmt.Fprintln(w, st.title.Render("File templates:"))
	for _, t := range sorter.FileTemplates() {
		fmt.Fprintf(w, "%s%s %s\n", indent, st.value.Render(fmt.Sprintf("%-20s", t.Name)), t.Render(sample))
	}
}
