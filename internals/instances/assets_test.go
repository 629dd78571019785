package instances

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/progress"
)

func assetServer(t *testing.T, objects map[string]string, objectHits *int64) *httptest.Server {
	t.Helper()

	index := minecraft.AssetIndex{Objects: map[string]minecraft.AssetObject{}}
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/index.json" {
			json.NewEncoder(w).Encode(index)
			return
		}
		atomic.AddInt64(objectHits, 1)
		for _, content := range objects {
			hash := fmt.Sprintf("%x", sha1.Sum([]byte(content)))
			if r.URL.Path == "/objects/"+hash {
				w.Write([]byte(content))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	for path, content := range objects {
		hash := fmt.Sprintf("%x", sha1.Sum([]byte(content)))
		index.Objects[path] = minecraft.AssetObject{
			Hash: hash,
			Size: len(content),
			URL:  server.URL + "/objects/" + hash,
		}
	}
	return server
}

func assetDetails(serverURL string, indexID string) *minecraft.VersionDescriptor {
	details := &minecraft.VersionDescriptor{}
	details.AssetIndex.ID = indexID
	details.AssetIndex.URL = serverURL + "/index.json"
	return details
}

func TestEnsureAssetsSkipsPresentObjects(t *testing.T) {
	var hits int64
	server := assetServer(t, map[string]string{
		"minecraft/sounds/ambient.ogg": "oggdata",
		"minecraft/lang/en_us.json":    "{}",
	}, &hits)

	i := NewInstance(t.TempDir(), "test", server.Client())
	details := assetDetails(server.URL, "1.20")

	ch := make(chan progress.Report, 64)
	if err := i.EnsureAssets(context.Background(), details, ch); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Fatalf("first run fetched %d objects, want 2", hits)
	}

	// the second run finds everything on disk
	if err := i.EnsureAssets(context.Background(), details, nil); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("second run fetched %d extra objects", hits-2)
	}

	// progress reaches the full total even when everything is skipped
	var last progress.Report
	for len(ch) > 0 {
		last = <-ch
	}
	if last.Done != last.Total {
		t.Errorf("last report %d/%d, want complete", last.Done, last.Total)
	}
}

func TestEnsureAssetsModernLayout(t *testing.T) {
	var hits int64
	server := assetServer(t, map[string]string{"icons/icon_16x16.png": "png"}, &hits)

	i := NewInstance(t.TempDir(), "modern", server.Client())
	if err := i.EnsureAssets(context.Background(), assetDetails(server.URL, "5"), nil); err != nil {
		t.Fatal(err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum([]byte("png")))
	object := filepath.Join(i.AssetsDir(), "dir", "objects", hash[:2], hash)
	if _, err := os.Stat(object); err != nil {
		t.Errorf("expected content-addressed object: %v", err)
	}
}

func TestEnsureAssetsLegacyLayout(t *testing.T) {
	var hits int64
	server := assetServer(t, map[string]string{"sound/step/grass1.ogg": "ogg"}, &hits)

	i := NewInstance(t.TempDir(), "legacy", server.Client())
	if err := i.EnsureAssets(context.Background(), assetDetails(server.URL, "legacy"), nil); err != nil {
		t.Fatal(err)
	}

	flat := filepath.Join(i.AssetsDir(), "legacy_assets", "sound", "step", "grass1.ogg")
	if _, err := os.Stat(flat); err != nil {
		t.Errorf("expected flat legacy asset: %v", err)
	}
}

func TestEnsureAssetsSurvivesStaleLock(t *testing.T) {
	var hits int64
	server := assetServer(t, map[string]string{"a.png": "a"}, &hits)

	i := NewInstance(t.TempDir(), "stale", server.Client())
	lock := filepath.Join(i.AssetsDir(), "dir", assetLock)
	if err := os.MkdirAll(filepath.Dir(lock), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lock, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := i.EnsureAssets(context.Background(), assetDetails(server.URL, "1.8"), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(lock); !os.IsNotExist(err) {
		t.Error("lock should be removed after a finished run")
	}
}
