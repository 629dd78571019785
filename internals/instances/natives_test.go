package instances

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minefetch/minefetch/internals/merrors"
)

func writeTestJar(t *testing.T, entries map[string]string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "natives.jar")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractJar(t *testing.T) {
	jar := writeTestJar(t, map[string]string{
		"liblwjgl.so":          "elf",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
	})
	dest := t.TempDir()

	if err := extractJar(jar, dest, []string{"META-INF/"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "liblwjgl.so")); err != nil {
		t.Errorf("expected extracted native: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "META-INF")); !os.IsNotExist(err) {
		t.Error("excluded path should have been removed")
	}
}

func TestExtractJarRejectsTraversal(t *testing.T) {
	jar := writeTestJar(t, map[string]string{
		"../escape.so": "elf",
	})
	dest := filepath.Join(t.TempDir(), "natives")

	err := extractJar(jar, dest, nil)
	var extraction *merrors.ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "escape.so")); !os.IsNotExist(statErr) {
		t.Error("file escaped the extraction dir")
	}
}

func TestExtractJarRejectsTraversalInExclude(t *testing.T) {
	jar := writeTestJar(t, map[string]string{"ok.so": "elf"})
	dest := t.TempDir()

	if err := extractJar(jar, dest, []string{"../../etc"}); err == nil {
		t.Fatal("expected error for escaping exclude path")
	}
}
