package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/acm19/exifsort/internal/config"
	"github.com/acm19/exifsort/internal/logger"
	"github.com/acm19/exifsort/internal/sorter"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

const indent = "  "

// styles renders with the color profile of the writer they print to.
type styles struct {
	title lipgloss.Style
	value lipgloss.Style
	on    lipgloss.Style
	err   lipgloss.Style
	arrow string
}

func newStyles(w io.Writer) styles {
	re := lipgloss.NewRenderer(w)
	return styles{
		title: re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		value: re.NewStyle().Foreground(lipgloss.Color("6")),
		on:    re.NewStyle().Foreground(lipgloss.Color("2")),
		err:   re.NewStyle().Foreground(lipgloss.Color("1")),
		arrow: re.NewStyle().Foreground(lipgloss.Color("3")).Render("→"),
	}
}

// report prints the human-readable output of a run. Nothing but errors is
// printed in quiet mode.
type report struct {
	out io.Writer
	cfg config.Config
	st  styles
}

func newReport(out io.Writer, cfg config.Config) *report {
	return &report{out: out, cfg: cfg, st: newStyles(out)}
}

func (r *report) line(format string, args ...any) {
	if r.cfg.Quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *report) item(label string, value any) {
	r.line("%s%s: %s", indent, label, r.st.value.Render(fmt.Sprint(value)))
}

func (r *report) status(label string, on bool) {
	value := r.st.err.Render("OFF")
	if on {
		value = r.st.on.Render("ON")
	}
	r.line("%s%s: %s", indent, label, value)
}

func (r *report) title(title string) {
	r.line("%s", r.st.title.Render(title))
}

// prompt is printed even in quiet mode since it waits for input.
func (r *report) prompt(question string) {
	fmt.Fprint(r.out, r.st.title.Render(question))
}

func (r *report) header() {
	cfg := r.cfg
	r.line("%s v%s", r.st.on.Render("exifsort"), version)

	if cfg.ShowSettings {
		if dump, err := cfg.YAML(); err != nil {
			logger.Warn("Failed to render settings", "error", err)
		} else {
			r.title("Raw settings:")
			for _, l := range strings.Split(strings.TrimRight(dump, "\n"), "\n") {
				r.line("%s%s", indent, l)
			}
		}
	}

	r.title("Schema:")
	r.line("%s%s", indent, strings.Replace(sorter.Schema(cfg), "→", r.st.arrow, 1))

	v := cfg.Verbose
	r.title("Settings:")
	if v {
		r.status("Verbose mode", true)
	}
	if cfg.DryRun || v {
		r.status("Test mode", cfg.DryRun)
	}
	r.item("Include extensions", strings.Join(cfg.Extensions, ", "))
	if v || !cfg.UseSubdirs {
		r.status("Process to subdirectories", cfg.UseSubdirs)
	}
	if cfg.UseSubdirs {
		r.item("Subfolder template", cfg.DirectoryTemplate)
	}
	if v || !cfg.DayStart.IsMidnight() {
		r.item("Day starts at", cfg.DayStart)
	}
	if v || cfg.Overwrite {
		r.status("Overwrite existing files", cfg.Overwrite)
	}
	if v || !cfg.NormalizeExtension {
		r.status("Normalise extensions", cfg.NormalizeExtension)
	}
	if v || !cfg.UsePrefix {
		r.status("Add prefix to filenames", cfg.UsePrefix)
	}
	if cfg.UsePrefix {
		r.item("Prefix format", cfg.FileTemplate)
	}
	if v || !cfg.UseFallbackFolder {
		r.status("Use fallback folder", cfg.UseFallbackFolder)
	}
	if cfg.UseFallbackFolder {
		r.item("Fallback folder name", cfg.FallbackFolder)
	}
	if v || cfg.OffsetSeconds != 0 {
		r.item("Time offset", fmt.Sprintf("%d seconds (%s)", cfg.OffsetSeconds, cfg.Offset()))
	}
	if v || cfg.Interfix != "" {
		r.item("Interfix", cfg.Interfix)
	}
}

func (r *report) folderInfo(info *sorter.FolderInfo) {
	r.title("Folder info:")
	r.item("Path", info.Path)
	r.item("Total files", humanize.Comma(int64(info.FileCount)))
	if !r.cfg.Verbose {
		r.item("Matching files", humanize.Comma(int64(info.MediaCount)))
		return
	}

	exts := make([]string, 0, len(info.MediaTypes))
	for ext := range info.MediaTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		parts = append(parts, fmt.Sprintf("%d x %s", info.MediaTypes[ext], strings.ToUpper(ext)))
	}
	r.item("Matching files", fmt.Sprintf("%d (%s)", info.MediaCount, strings.Join(parts, ", ")))
	r.item("Matching size", humanize.Bytes(uint64(info.MediaSize)))
	r.item("Created", fmt.Sprintf("%s (%s)", info.Created.Format(time.DateTime), humanize.Time(info.Created)))
	r.item("Modified", fmt.Sprintf("%s (%s)", info.Modified.Format(time.DateTime), humanize.Time(info.Modified)))
}

// progress returns a channel that drives a progress bar until closed; done
// is closed once the bar has finished. Quiet and verbose runs get no bar.
func (r *report) progress(description string, total int) (chan sorter.ProgressEvent, <-chan struct{}) {
	events := make(chan sorter.ProgressEvent, 16)
	done := make(chan struct{})

	var bar *progressbar.ProgressBar
	if !r.cfg.Quiet && !r.cfg.Verbose && total > 0 {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	go func() {
		defer close(done)
		for e := range events {
			if bar != nil {
				_ = bar.Set(e.Current)
			}
		}
		if bar != nil {
			_ = bar.Finish()
		}
	}()
	return events, done
}

func (r *report) fileDetails(rec *sorter.FileRecord) {
	r.line("%s %s", r.st.title.Render("File:"), r.st.title.Render(rec.NameOld))
	valid := r.st.value.Render("true")
	if !rec.Valid {
		valid = r.st.err.Render("false")
	}
	r.line("%svalid: %s", indent, valid)
	r.line("%sstate: %s", indent, r.st.value.Render(rec.State.String()))
	if rec.Error != "" {
		r.line("%serror: %s", indent, r.st.err.Render(rec.Error))
	}
	if rec.Size > 0 {
		r.item("size", humanize.Bytes(uint64(rec.Size)))
	}
	if rec.MIMEType != "" {
		r.item("mime_type", rec.MIMEType)
	}
	if rec.MediaType != "" {
		r.item("media_type", rec.MediaType)
	}
	if rec.Timestamp != nil {
		r.item("timestamp", fmt.Sprintf("%s (%s)", rec.Timestamp.Format(time.DateTime), rec.TimestampTag))
	}
	if rec.Adjusted != nil && !rec.Adjusted.Equal(*rec.Timestamp) {
		r.item("adjusted", rec.Adjusted.Format(time.DateTime))
	}
	if rec.Subdir != nil {
		r.item("subdir", *rec.Subdir)
	}
	if rec.NameNew != "" {
		r.item("name_new", rec.NameNew)
	}
}

func (r *report) checkReport(check *sorter.CheckReport) {
	r.title("Check results:")
	if !check.HasIssues() {
		r.line("%sNo issues found.", indent)
		return
	}
	for _, cat := range check.Categories() {
		r.title(fmt.Sprintf("%s (%d):", cat.Title, len(cat.Entries)))
		for _, e := range cat.Entries {
			r.line("%s%s: %s", indent, r.st.value.Render(e.Name), r.st.err.Render(e.Message))
		}
	}
	r.item("Total issues", check.Total())
}

// filesSummary prints the analysis totals and returns the number of valid files.
func (r *report) filesSummary(records []*sorter.FileRecord) int {
	valid := 0
	for _, rec := range records {
		if rec.Valid {
			valid++
		}
	}

	r.title("Files summary:")
	r.item("Total files analysed", len(records))
	r.item("Valid files", valid)
	r.item("Invalid files", len(records)-valid)

	if (r.cfg.Verbose || r.cfg.ShowErrors) && valid < len(records) {
		r.title("Files not valid:")
		for _, rec := range records {
			if !rec.Valid {
				r.line("%s%s: %s", indent, r.st.value.Render(rec.NameOld), r.st.err.Render(rec.Error))
			}
		}
	}
	return valid
}

func (r *report) moves(records []*sorter.FileRecord) {
	r.title("Files:")
	for _, rec := range records {
		if !rec.Valid {
			continue
		}
		date := r.st.err.Render("EXIF data not found")
		if rec.Timestamp != nil {
			date = r.st.value.Render(rec.Timestamp.Format(time.DateTime))
		}
		dest := r.st.value.Render(rec.NameNew)
		if sub := rec.SubdirName(); sub != "" {
			dest = r.st.value.Render(sub) + "/" + dest
		}
		r.line("%s%s (%s) %s %s", indent, r.st.value.Render(fmt.Sprintf("%-13s", rec.NameOld)), date, r.st.arrow, dest)
	}
}

func (r *report) skipped(records []*sorter.FileRecord, stats *sorter.RunStats) {
	if len(stats.Skipped) == 0 {
		return
	}
	skipped := make(map[string]bool, len(stats.Skipped))
	for _, name := range stats.Skipped {
		skipped[name] = true
	}
	r.title("Files with errors:")
	for _, rec := range records {
		if rec.Valid && skipped[rec.NameOld] {
			r.line("%s%s: %s", indent, r.st.value.Render(rec.NameOld), r.st.err.Render(rec.Error))
		}
	}
}

func (r *report) footer(stats *sorter.RunStats, elapsed time.Duration) {
	r.title("Summary:")
	if stats.DryRun {
		r.line("%sTest mode (no changes made).", indent)
		r.item("Would process files", len(stats.Processed))
		r.item("Would skip files", len(stats.Skipped))
		r.item("Would create directories", len(stats.CreatedDirs))
	} else {
		r.item("Processed files", len(stats.Processed))
		r.item("Skipped files", len(stats.Skipped))
		r.item("Directories created", len(stats.CreatedDirs))
	}
	r.item("Completed in", elapsed.Round(time.Millisecond))
}
