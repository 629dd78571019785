package instances

import (
	"os"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/merrors"
)

// writeFileAtomic writes via a .part file and renames it in place so
// a crash never leaves a half-written file behind
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	part := path + ".part"
	if err := os.WriteFile(part, data, perm); err != nil {
		return &merrors.IoError{Path: path, Err: err}
	}
	if err := os.Rename(part, path); err != nil {
		os.Remove(part)
		return &merrors.IoError{Path: path, Err: err}
	}
	return nil
}
