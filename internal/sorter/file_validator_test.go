package sorter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateFile_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.jpg")

	if err := os.WriteFile(validFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	size, issue := validateFile(validFile)
	if issue != IssueNone {
		t.Errorf("Expected no issue for valid file, got: %s", issue.Message())
	}
	if size != 12 {
		t.Errorf("Expected size 12, got %d", size)
	}
}

func TestValidateFile_ZeroByteFile(t *testing.T) {
	tmpDir := t.TempDir()
	zeroByteFile := filepath.Join(tmpDir, "empty.jpg")

	if err := os.WriteFile(zeroByteFile, []byte{}, 0644); err != nil {
		t.Fatalf("Failed to create 0-byte file: %v", err)
	}

	_, issue := validateFile(zeroByteFile)
	if issue != IssueEmpty {
		t.Errorf("Expected IssueEmpty for 0-byte file, got %v", issue)
	}
	if issue.Message() != "File is empty." {
		t.Errorf("Unexpected message %q", issue.Message())
	}
}

func TestValidateFile_NonexistentFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, issue := validateFile(filepath.Join(tmpDir, "nonexistent.jpg"))
	if issue != IssueMissing {
		t.Errorf("Expected IssueMissing, got %v", issue)
	}
}

func TestValidateFile_SymlinkToEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "empty.jpg")
	link := filepath.Join(tmpDir, "link.jpg")

	if err := os.WriteFile(target, nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	if _, issue := validateFile(link); issue != IssueEmpty {
		t.Errorf("Expected IssueEmpty through symlink, got %v", issue)
	}
}

func TestValidateFile_ReadOnlyFile(t *testing.T) {
	skipIfRoot(t)
	tmpDir := t.TempDir()
	readOnly := createTestFile(t, tmpDir, "readonly.jpg")
	if err := os.Chmod(readOnly, 0444); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(readOnly, 0644) })

	if _, issue := validateFile(readOnly); issue != IssueUnwritable {
		t.Errorf("Expected IssueUnwritable, got %v", issue)
	}
}

func TestPathExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := createTestFile(t, tmpDir, "a.jpg")

	if !pathExists(file) {
		t.Error("Expected existing file to exist")
	}
	if !pathExists(tmpDir) {
		t.Error("Expected directory to exist")
	}
	if pathExists(filepath.Join(tmpDir, "b.jpg")) {
		t.Error("Expected missing file not to exist")
	}

	dangling := filepath.Join(tmpDir, "dangling.jpg")
	if err := os.Symlink(filepath.Join(tmpDir, "nowhere"), dangling); err == nil && !pathExists(dangling) {
		t.Error("Expected dangling symlink to count as existing")
	}
}
