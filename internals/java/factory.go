package java

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/minefetch/minefetch/internals/ownhttp"
)

// lockFile marks an unfinished install. Finding it means a previous
// run crashed mid-install and the directory contents are untrusted.
const lockFile = "install.lock"

// Factory installs java runtimes under a base directory, one
// subdirectory per feature release
type Factory struct {
	baseDir string
	client  *http.Client

	// OnProgress, when set, receives (done, total) download counts
	OnProgress func(done int, total int)
}

func NewFactory(baseDir string, client *http.Client) *Factory {
	if client == nil {
		client = ownhttp.New()
	}
	return &Factory{baseDir: baseDir, client: client}
}

// Version returns the runtime for the given feature release,
// installing it first if needed. A leftover install.lock causes a
// full wipe and reinstall of that runtime.
func (f *Factory) Version(ctx context.Context, major int) (*Java, error) {
	dir, err := filepath.Abs(filepath.Join(f.baseDir, strconv.Itoa(major)))
	if err != nil {
		return nil, err
	}
	j := &Java{Major: major, dir: dir}

	lock := filepath.Join(dir, lockFile)
	_, lockErr := os.Stat(lock)
	if info, err := os.Stat(dir); err == nil && info.IsDir() && lockErr != nil {
		return j, nil
	}
	if lockErr == nil {
		if err := os.RemoveAll(dir); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(lock, []byte("java is being installed. Please do not delete this file\n"), 0644); err != nil {
		return nil, err
	}

	if err := f.install(ctx, j); err != nil {
		return nil, err
	}

	if err := os.Remove(lock); err != nil {
		return nil, err
	}
	return j, nil
}

// componentFor maps a feature release to mojang's runtime component
// name. Mojang never published arbitrary versions, only these four
// tracks.
func componentFor(major int) string {
	switch {
	case major <= 8:
		return "jre-legacy"
	case major <= 16:
		return "java-runtime-alpha"
	case major <= 17:
		return "java-runtime-gamma"
	default:
		return "java-runtime-delta"
	}
}
