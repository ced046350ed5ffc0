package sorter

import (
	"errors"
	"io/fs"
	"os"
)

// validateFile runs the validation checkpoints in order and stops at the
// first failure. os.Stat follows symlinks, so a link to an empty file is empty.
func validateFile(filePath string) (size int64, issue Issue) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, IssueMissing
	}
	if info.Size() == 0 {
		return 0, IssueEmpty
	}
	if !isReadable(filePath) {
		return info.Size(), IssueUnreadable
	}
	if !isWritable(filePath) {
		return info.Size(), IssueUnwritable
	}
	return info.Size(), IssueNone
}

// pathExists reports whether something exists at p. Errors other than "not
// exist" count as existing so that nothing gets overwritten by accident.
func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
