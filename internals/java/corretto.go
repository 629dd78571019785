package java

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	archiver "github.com/mholt/archiver/v3"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
)

// correttoURL points at amazon's latest arm64 linux build of the
// given feature release
func correttoURL(major int) string {
	return fmt.Sprintf("https://corretto.aws/downloads/latest/amazon-corretto-%d-aarch64-linux-jdk.tar.gz", major)
}

// installCorretto downloads and unpacks an amazon corretto jdk into
// j.dir. The tarball nests everything under a versioned top-level
// directory which gets flattened away.
func (f *Factory) installCorretto(ctx context.Context, j *Java) error {
	url := correttoURL(j.Major)
	body, err := downloadmgr.Get(ctx, f.client, url)
	if err != nil {
		return err
	}
	defer body.Close()

	archive, err := os.CreateTemp("", "corretto-*.tar.gz")
	if err != nil {
		return err
	}
	defer os.Remove(archive.Name())
	if _, err := io.Copy(archive, body); err != nil {
		archive.Close()
		return err
	}
	if err := archive.Close(); err != nil {
		return err
	}
	if f.OnProgress != nil {
		f.OnProgress(1, 1)
	}

	// find the top-level directory name before extracting
	rootDirName := ""
	err = archiver.Walk(archive.Name(), func(file archiver.File) error {
		if file.IsDir() && rootDirName == "" {
			rootDirName = file.Name()
		}
		return nil
	})
	if err != nil {
		return &merrors.ExtractionError{Archive: url, Err: err}
	}
	if rootDirName == "" {
		return &merrors.ExtractionError{Archive: url, Err: fmt.Errorf("archive has no top-level directory")}
	}

	tmp := j.dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := archiver.Unarchive(archive.Name(), tmp); err != nil {
		return &merrors.ExtractionError{Archive: url, Err: err}
	}

	// replace the install dir with the flattened tree
	if err := os.RemoveAll(j.dir); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(tmp, rootDirName), j.dir); err != nil {
		return err
	}
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	// the wipe above took the lock file with it, recreate it so the
	// caller's cleanup step finds it
	return os.WriteFile(filepath.Join(j.dir, lockFile), []byte("java is being installed. Please do not delete this file\n"), 0644)
}
