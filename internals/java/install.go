package java

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/ulikunitz/xz/lzma"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
)

func (f *Factory) install(ctx context.Context, j *Java) error {
	if runtime.GOOS == "linux" && runtime.GOARCH == "arm64" {
		// mojang publishes no linux arm64 runtimes
		return f.installCorretto(ctx, j)
	}

	manifest, err := fetchManifest(ctx, f.client, componentFor(j.Major))
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(manifest.Files))
	for path := range manifest.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	// directories first so that file jobs never race their parents
	var jobs []downloadmgr.Job
	var links []string
	for _, path := range paths {
		target, err := safeJoin(j.dir, path)
		if err != nil {
			return err
		}
		entry := manifest.Files[path]
		switch entry.Type {
		case "directory":
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case "file":
			jobs = append(jobs, f.fileJob(entry, target))
		case "link":
			links = append(links, path)
		}
	}

	total := len(jobs)
	var done int64
	if f.OnProgress != nil {
		wrapped := make([]downloadmgr.Job, len(jobs))
		for i, job := range jobs {
			job := job
			wrapped[i] = func(ctx context.Context) error {
				if err := job(ctx); err != nil {
					return err
				}
				f.OnProgress(int(atomic.AddInt64(&done, 1)), total)
				return nil
			}
		}
		jobs = wrapped
	}
	if err := downloadmgr.Run(ctx, jobs, downloadmgr.MaxJobs); err != nil {
		return err
	}

	// links last, after their targets exist
	for _, path := range links {
		source, err := safeJoin(j.dir, path)
		if err != nil {
			return err
		}
		if err := makeLink(manifest.Files[path].Target, source); err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) fileJob(entry runtimeFile, target string) downloadmgr.Job {
	return func(ctx context.Context) error {
		if entry.Downloads.Lzma != nil {
			if err := f.downloadLzma(ctx, entry.Downloads.Lzma.URL, target); err == nil {
				return f.finishFile(entry, target)
			}
			// fall back to the uncompressed variant
		}
		if entry.Downloads.Raw == nil {
			return nil
		}
		item := downloadmgr.NewHTTPItem(entry.Downloads.Raw.URL, target)
		item.Client = f.client
		item.Sha1 = entry.Downloads.Raw.Sha1
		if err := item.Download(ctx); err != nil {
			return err
		}
		return f.finishFile(entry, target)
	}
}

func (f *Factory) finishFile(entry runtimeFile, target string) error {
	if !entry.Executable {
		return nil
	}
	return os.Chmod(target, 0755)
}

func (f *Factory) downloadLzma(ctx context.Context, url string, target string) error {
	body, err := downloadmgr.Get(ctx, f.client, url)
	if err != nil {
		return err
	}
	defer body.Close()

	reader, err := lzma.NewReader(body)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	part, err := os.Create(target + ".part")
	if err != nil {
		return &merrors.IoError{Path: target, Err: err}
	}
	if _, err := io.Copy(part, reader); err != nil {
		part.Close()
		os.Remove(part.Name())
		return err
	}
	if err := part.Close(); err != nil {
		return &merrors.IoError{Path: target, Err: err}
	}
	return os.Rename(part.Name(), target)
}

// makeLink creates the symlink the runtime manifest asks for. Windows
// restricts symlink creation to elevated processes, and no windows
// runtime manifest contains links anyway, so it fails loudly there.
func makeLink(target string, source string) error {
	if runtime.GOOS == "windows" {
		return &merrors.PlatformUnsupported{
			What: "symlink " + source,
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		}
	}
	if err := os.Remove(source); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(target, source)
}

// safeJoin joins a manifest-supplied relative path onto base and
// refuses anything that would escape it
func safeJoin(base string, path string) (string, error) {
	joined := filepath.Join(base, filepath.FromSlash(path))
	if joined != base && !strings.HasPrefix(joined, base+string(os.PathSeparator)) {
		return "", &merrors.ExtractionError{
			Archive: base,
			Err:     &merrors.IoError{Path: path, Err: os.ErrPermission},
		}
	}
	return joined, nil
}
