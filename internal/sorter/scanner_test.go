package sorter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()
	createTestFile(t, tmpDir, "b.jpg")
	createTestFile(t, tmpDir, "A.jpg")
	createTestFile(t, tmpDir, "c.MOV")
	createTestFile(t, tmpDir, ".hidden.jpg")
	createTestFile(t, tmpDir, filepath.Join("nested", "d.jpg"))

	files, err := ListFiles(tmpDir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	expected := []string{"A.jpg", "b.jpg", "c.MOV"}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i, name := range expected {
		if filepath.Base(files[i]) != name {
			t.Errorf("files[%d] = %s, expected %s", i, filepath.Base(files[i]), name)
		}
	}
}

func TestListFiles_FollowsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := createTestFile(t, tmpDir, "target.jpg")
	if err := os.Symlink(target, filepath.Join(tmpDir, "link.jpg")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "nowhere"), filepath.Join(tmpDir, "dangling.jpg")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	files, err := ListFiles(tmpDir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected link and target, got %v", files)
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	if _, err := ListFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
