package instances

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minefetch/minefetch/internals/merrors"
)

// extractJar unpacks a natives jar into dest, then removes the paths
// listed in exclude (jar signing metadata, mostly META-INF). Entries
// or exclude paths that would leave dest are a hard error. archive/zip
// is used directly here because entries need to be filtered one by
// one, which the archiver facade does not expose.
func extractJar(jarPath string, dest string, exclude []string) error {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return &merrors.ExtractionError{Archive: jarPath, Err: err}
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		target, err := insideDir(dest, file.Name)
		if err != nil {
			return &merrors.ExtractionError{Archive: jarPath, Err: err}
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractZipEntry(file, target); err != nil {
			return &merrors.ExtractionError{Archive: jarPath, Err: err}
		}
	}

	for _, path := range exclude {
		target, err := insideDir(dest, path)
		if err != nil {
			return &merrors.ExtractionError{Archive: jarPath, Err: err}
		}
		if err := os.RemoveAll(target); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, file.Mode().Perm()|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// insideDir resolves a relative archive path against dir and rejects
// anything escaping it
func insideDir(dir string, path string) (string, error) {
	joined := filepath.Join(dir, filepath.FromSlash(path))
	if joined != dir && !strings.HasPrefix(joined, dir+string(os.PathSeparator)) {
		return "", &merrors.IoError{Path: path, Err: os.ErrPermission}
	}
	return joined, nil
}
