package java

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
)

// runtimeListURL is mojang's index of bundled java runtimes,
// keyed platform → component → builds
const runtimeListURL = "https://launchermeta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"

type runtimeList map[string]map[string][]runtimeBuild

type runtimeBuild struct {
	Manifest struct {
		Sha1 string `json:"sha1"`
		Size int64  `json:"size"`
		URL  string `json:"url"`
	} `json:"manifest"`
	Version struct {
		Name     string `json:"name"`
		Released string `json:"released"`
	} `json:"version"`
}

// runtimeManifest lists every file of a runtime with its download
type runtimeManifest struct {
	Files map[string]runtimeFile `json:"files"`
}

type runtimeFile struct {
	Type       string `json:"type"` // "file", "directory" or "link"
	Executable bool   `json:"executable,omitempty"`
	Target     string `json:"target,omitempty"`
	Downloads  struct {
		Raw  *runtimeDownload `json:"raw,omitempty"`
		Lzma *runtimeDownload `json:"lzma,omitempty"`
	} `json:"downloads,omitempty"`
}

type runtimeDownload struct {
	Sha1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// platformKey names the current platform the way the runtime list
// keys it. Unknown combinations return "".
func platformKey(goos string, goarch string) string {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return "linux"
		case "386":
			return "linux-i386"
		}
	case "darwin":
		switch goarch {
		case "amd64":
			return "mac-os"
		case "arm64":
			return "mac-os-arm64"
		}
	case "windows":
		switch goarch {
		case "amd64":
			return "windows-x64"
		case "386":
			return "windows-x86"
		case "arm64":
			return "windows-arm64"
		}
	}
	return ""
}

// fetchManifest looks up the build for this platform and component
// and downloads its per-file manifest
func fetchManifest(ctx context.Context, client *http.Client, component string) (*runtimeManifest, error) {
	raw, err := downloadmgr.GetBytes(ctx, client, runtimeListURL)
	if err != nil {
		return nil, err
	}
	list := runtimeList{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &merrors.SchemaError{Source: runtimeListURL, Err: err}
	}

	key := platformKey(runtime.GOOS, runtime.GOARCH)
	builds := list[key][component]
	if len(builds) == 0 {
		return nil, &merrors.PlatformUnsupported{
			What: "java runtime " + component,
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		}
	}

	raw, err = downloadmgr.GetBytes(ctx, client, builds[0].Manifest.URL)
	if err != nil {
		return nil, err
	}
	manifest := &runtimeManifest{}
	if err := json.Unmarshal(raw, manifest); err != nil {
		return nil, &merrors.SchemaError{Source: builds[0].Manifest.URL, Err: err}
	}
	return manifest, nil
}
