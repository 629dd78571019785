package forge

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeInstallerJar(t *testing.T, entries map[string]string) string {
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
	path := filepath.Join(t.TempDir(), "installer.jar")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseInstallerDetailsVersionJSON(t *testing.T) {
	jar := writeInstallerJar(t, map[string]string{
		"version.json": `{"id":"1.12.2-forge","mainClass":"net.minecraft.launchwrapper.Launch","libraries":[{"name":"net.minecraftforge:forge:1.12.2-14.23.5.2859"}]}`,
	})
	details, raw, err := parseInstallerDetails(jar)
	if err != nil {
		t.Fatal(err)
	}
	if details.MainClass != "net.minecraft.launchwrapper.Launch" {
		t.Errorf("mainClass = %q", details.MainClass)
	}
	if len(raw) == 0 {
		t.Error("raw descriptor missing")
	}
}

func TestParseInstallerDetailsInstallProfile(t *testing.T) {
	jar := writeInstallerJar(t, map[string]string{
		"install_profile.json": `{"install":{},"versionInfo":{"id":"1.7.10-forge","mainClass":"net.minecraft.launchwrapper.Launch","minecraftArguments":"--tweakClass x","libraries":[]}}`,
	})
	details, _, err := parseInstallerDetails(jar)
	if err != nil {
		t.Fatal(err)
	}
	if details.ID != "1.7.10-forge" || details.MinecraftArguments != "--tweakClass x" {
		t.Errorf("details = %+v", details)
	}
}

func TestParseInstallerDetailsMissingBoth(t *testing.T) {
	jar := writeInstallerJar(t, map[string]string{"other.txt": "x"})
	if _, _, err := parseInstallerDetails(jar); err == nil {
		t.Error("expected error when no descriptor is present")
	}
}
