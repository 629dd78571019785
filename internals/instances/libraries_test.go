package instances

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/minefetch/minefetch/internals/minecraft"
)

func currentNativesKey(t *testing.T) string {
	t.Helper()
	candidates := []string{
		"natives-" + minecraft.OSName(),
		"natives-" + minecraft.OSName() + "-" + minecraft.Arch(),
		"natives-windows-32",
	}
	for _, key := range candidates {
		if minecraft.NativeKeyMatches(key) {
			return key
		}
	}
	t.Fatal("no natives key matches this platform")
	return ""
}

// Pre-1.13 natives entries carry only downloads.classifiers, there is
// no primary artifact to fetch for them.
func TestInstallLibraryClassifierOnly(t *testing.T) {
	jar := writeTestJar(t, map[string]string{"liblwjgl.so": "elf"})
	jarBytes, err := os.ReadFile(jar)
	if err != nil {
		t.Fatal(err)
	}

	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		if r.URL.Path != "/natives.jar" {
			http.NotFound(w, r)
			return
		}
		w.Write(jarBytes)
	}))
	defer server.Close()

	lib := minecraft.Lib{Name: "org.lwjgl.lwjgl:lwjgl-platform:2.9.4-nightly-20150209"}
	lib.Downloads.Classifiers = map[string]minecraft.Artifact{
		currentNativesKey(t): {
			Path: "org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/natives.jar",
			URL:  server.URL + "/natives.jar",
		},
	}

	i := NewInstance(t.TempDir(), "classifier-only", server.Client())
	if err := i.installLibrary(context.Background(), &lib); err != nil {
		t.Fatalf("classifier-only library failed to install: %v", err)
	}

	if _, err := os.Stat(filepath.Join(i.NativesDir(), "liblwjgl.so")); err != nil {
		t.Errorf("natives not extracted: %v", err)
	}
	for _, path := range requests {
		if path != "/natives.jar" {
			t.Errorf("request for %s, but a classifier-only entry has no primary jar", path)
		}
	}
}

func TestInstallLibraryPrimaryArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	lib := minecraft.Lib{Name: "com.example:library:1.0"}
	lib.Downloads.Artifact = minecraft.Artifact{
		Path: "com/example/library/1.0/library-1.0.jar",
		URL:  server.URL + "/library-1.0.jar",
	}

	i := NewInstance(t.TempDir(), "primary", server.Client())
	if err := i.installLibrary(context.Background(), &lib); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(i.LibrariesDir(), "com", "example", "library", "1.0", "library-1.0.jar")
	if _, err := os.Stat(target); err != nil {
		t.Errorf("primary artifact not downloaded: %v", err)
	}
}
