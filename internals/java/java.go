// Package java installs and locates the bundled java runtimes.
package java

import (
	"os"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/merrors"
)

// Java is one installed runtime
type Java struct {
	// Major is the java feature release (8, 16, 17, 21, ...)
	Major int
	dir   string
}

// Dir is the runtime install directory
func (j *Java) Dir() string { return j.dir }

// Bin finds the named executable inside the runtime. Layouts differ
// per distribution, so a few known locations are probed.
func (j *Java) Bin(name string) (string, error) {
	candidates := []string{
		filepath.Join(j.dir, "bin", name),
		filepath.Join(j.dir, "bin", name+".exe"),
		filepath.Join(j.dir, "jre.bundle", "Contents", "Home", "bin", name),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &merrors.IoError{Path: filepath.Join(j.dir, "bin", name), Err: os.ErrNotExist}
}
