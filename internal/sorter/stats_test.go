package sorter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateSourceDir(t *testing.T) {
	tmpDir := t.TempDir()
	sourceDir := createTestDir(t, tmpDir, "source")

	if err := ValidateSourceDir(sourceDir); err != nil {
		t.Errorf("Expected no error for valid directory, got: %v", err)
	}
}

func TestValidateSourceDir_Nonexistent(t *testing.T) {
	tmpDir := t.TempDir()

	if err := ValidateSourceDir(filepath.Join(tmpDir, "nonexistent")); err == nil {
		t.Error("Expected error for nonexistent directory")
	}
}

func TestValidateSourceDir_IsFile(t *testing.T) {
	tmpDir := t.TempDir()
	sourceFile := createTestFile(t, tmpDir, "source.txt")

	if err := ValidateSourceDir(sourceFile); err == nil {
		t.Error("Expected error when source is a file")
	}
}

func TestValidateSourceDir_ReadOnly(t *testing.T) {
	skipIfRoot(t)
	tmpDir := t.TempDir()
	sourceDir := createTestDir(t, tmpDir, "locked")
	if err := os.Chmod(sourceDir, 0555); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(sourceDir, 0755) })

	if err := ValidateSourceDir(sourceDir); err == nil {
		t.Error("Expected error for read-only directory")
	}
}

func TestGetFolderInfo(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		createTestFile(t, tmpDir, "a.jpg"),
		createTestFile(t, tmpDir, "b.JPG"),
		createTestFile(t, tmpDir, "c.mov"),
		createTestFile(t, tmpDir, "d.txt"),
	}

	info, err := GetFolderInfo(tmpDir, files, NewExtensions([]string{"jpg", "mov"}))
	if err != nil {
		t.Fatalf("GetFolderInfo failed: %v", err)
	}

	if info.FileCount != 4 {
		t.Errorf("Expected 4 files, got %d", info.FileCount)
	}
	if info.MediaCount != 3 {
		t.Errorf("Expected 3 media files, got %d", info.MediaCount)
	}
	if info.MediaSize != 12 {
		t.Errorf("Expected 12 bytes of media, got %d", info.MediaSize)
	}
	if info.MediaTypes["jpg"] != 2 || info.MediaTypes["mov"] != 1 {
		t.Errorf("Unexpected media types: %v", info.MediaTypes)
	}
	if info.Modified.IsZero() || info.Created.IsZero() {
		t.Error("Expected folder timestamps to be set")
	}
}

func TestGetFolderInfo_MissingDir(t *testing.T) {
	if _, err := GetFolderInfo(filepath.Join(t.TempDir(), "missing"), nil, NewExtensions([]string{"jpg"})); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestRunStats_Considered(t *testing.T) {
	stats := &RunStats{Processed: []string{"a", "b"}, Skipped: []string{"c"}}
	if stats.Considered() != 3 {
		t.Errorf("Expected 3, got %d", stats.Considered())
	}
}
