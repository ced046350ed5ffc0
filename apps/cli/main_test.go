package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acm19/exifsort/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noExiftool forces the native metadata reader so results do not depend on
// whether exiftool is installed.
const noExiftool = "--exiftool=/nonexistent/exiftool"

func isolateConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func createMediaDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test"), 0644))
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateConfig(t)
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestTemplates(t *testing.T) {
	out, err := execute(t, "", "-T")
	require.NoError(t, err)

	assert.Contains(t, out, "Directory templates:")
	assert.Contains(t, out, "YYYY/MM/DD")
	assert.Contains(t, out, "File templates:")
	assert.Contains(t, out, "YYYY-MM-DD_HH-MM-SS")
}

func TestDryRun(t *testing.T) {
	dir := createMediaDir(t, "a.jpg", "b.mov", "notes.txt")

	out, err := execute(t, "", dir, "-t", noExiftool)
	require.NoError(t, err)

	assert.Contains(t, out, "Total files: 3")
	assert.Contains(t, out, "Matching files: 2")
	assert.Contains(t, out, "Test mode (no changes made).")
	assert.Contains(t, out, "Would process files: 2")
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
	assert.NoDirExists(t, filepath.Join(dir, "_UNKNOWN"))
}

func TestRunWithYes(t *testing.T) {
	dir := createMediaDir(t, "a.JPG", "notes.txt")

	out, err := execute(t, "", dir, "-y", noExiftool)
	require.NoError(t, err)

	assert.Contains(t, out, "Processed files: 1")
	assert.Contains(t, out, "Directories created: 1")
	assert.FileExists(t, filepath.Join(dir, "_UNKNOWN", "a.jpg"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		moved bool
	}{
		{"yes", "yes\n", true},
		{"y", "Y\n", true},
		{"no", "no\n", false},
		{"empty answer", "\n", false},
		{"no input", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createMediaDir(t, "a.jpg")

			out, err := execute(t, tt.input, dir, noExiftool)
			require.NoError(t, err)

			assert.Contains(t, out, "Do you want to continue with 1 files?")
			if tt.moved {
				assert.FileExists(t, filepath.Join(dir, "_UNKNOWN", "a.jpg"))
			} else {
				assert.Contains(t, out, "Operation cancelled by user.")
				assert.FileExists(t, filepath.Join(dir, "a.jpg"))
			}
		})
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	dir := createMediaDir(t, "a.jpeg")

	_, err := execute(t, "", dir, "-y", "-F", "NO_DATE", "-i", "trip", noExiftool)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "NO_DATE", "trip-a.jpg"))
}

func TestRenameInPlace(t *testing.T) {
	dir := createMediaDir(t, "a.JPG")

	_, err := execute(t, "", dir, "-y", "-r", "-N", noExiftool)
	require.NoError(t, err)

	// Without subdirectories nothing moves; the name keeps its case.
	assert.FileExists(t, filepath.Join(dir, "a.JPG"))
	assert.NoDirExists(t, filepath.Join(dir, "_UNKNOWN"))
}

func TestSkipFallback(t *testing.T) {
	dir := createMediaDir(t, "a.jpg")

	out, err := execute(t, "", dir, "-y", "-s", "-E", noExiftool)
	require.NoError(t, err)

	assert.Contains(t, out, "No valid media files to process. Exiting.")
	assert.Contains(t, out, "No EXIF date found.")
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
}

func TestConfigFile(t *testing.T) {
	dir := createMediaDir(t, "a.jpg")
	cfgFile := filepath.Join(t.TempDir(), "exifsort.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("fallback_folder: FROM_FILE\nyes: true\n"), 0644))

	_, err := execute(t, "", dir, "--config", cfgFile, noExiftool)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "FROM_FILE", "a.jpg"))
}

func TestCheckMode(t *testing.T) {
	dir := createMediaDir(t, "a.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.jpg"), nil, 0644))

	out, err := execute(t, "", dir, "-c", noExiftool)
	require.NoError(t, err)

	assert.Contains(t, out, "Check results:")
	assert.Contains(t, out, "Files without EXIF date (1):")
	assert.Contains(t, out, "Empty files (1):")
	assert.Contains(t, out, "Non-media files (1):")
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
}

func TestSettingsDump(t *testing.T) {
	dir := createMediaDir(t)

	out, err := execute(t, "", dir, "-S", "-t", noExiftool)
	require.NoError(t, err)

	assert.Contains(t, out, "Raw settings:")
	assert.Contains(t, out, "fallback_folder: _UNKNOWN")
	assert.Contains(t, out, "04:00:00")
}

func TestQuiet(t *testing.T) {
	dir := createMediaDir(t, "a.jpg")

	out, err := execute(t, "", dir, "-q", "-y", noExiftool)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.FileExists(t, filepath.Join(dir, "_UNKNOWN", "a.jpg"))
}

func TestPreconditions(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"missing directory", []string{filepath.Join(t.TempDir(), "missing")}, nil},
		{"not a directory", []string{file}, nil},
		{"quiet and verbose", []string{t.TempDir(), "-q", "-V"}, config.ErrQuietVerbose},
		{"no extensions", []string{t.TempDir(), "-e", ""}, config.ErrNoExtensions},
		{"bad day start", []string{t.TempDir(), "-n", "25:00:00"}, config.ErrInvalidDayStart},
		{"too many args", []string{t.TempDir(), t.TempDir()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", append(tt.args, noExiftool)...)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
