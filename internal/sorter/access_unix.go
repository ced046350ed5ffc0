//go:build unix

package sorter

import "golang.org/x/sys/unix"

func isReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

func isWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
