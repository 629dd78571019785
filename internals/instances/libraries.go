package instances

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/progress"
)

// lwjgl 2.9.4 macOS natives that crash on arm64, and the rebuilt jar
// that replaces them
const (
	lwjgl294OsxURL      = "https://libraries.minecraft.net/org/lwjgl/lwjgl/lwjgl-platform/2.9.4-nightly-20150209/lwjgl-platform-2.9.4-nightly-20150209-natives-osx.jar"
	lwjgl294MachinaURL  = "https://github.com/MinecraftMachina/lwjgl/releases/download/2.9.4-20150209-mmachina.2/lwjgl-platform-2.9.4-nightly-20150209-natives-osx.jar"
	lwjgl294OsxArm64URL = "https://github.com/Dungeons-Guide/lwjgl/releases/download/2.9.4-20150209-mmachina.2-syeyoung.1/lwjgl-platform-2.9.4-nightly-20150209-natives-osx-arm64.jar"

	jemallocArm64URL        = "https://github.com/theofficialgman/lwjgl3-binaries-arm64/raw/lwjgl-3.1.6/lwjgl-jemalloc-natives-linux.jar"
	jemallocArm64PatchedURL = "https://github.com/theofficialgman/lwjgl3-binaries-arm64/raw/lwjgl-3.1.6/lwjgl-jemalloc-patched-natives-linux-arm64.jar"
)

// EnsureLibraries downloads every library of the given version and
// extracts its native components. Libraries already on disk are
// skipped. Reports go to ch (may be nil).
func (i *Instance) EnsureLibraries(ctx context.Context, details *minecraft.VersionDescriptor, ch chan<- progress.Report) error {
	libs := minecraft.SpliceARM64Libraries(details.Libraries)

	if minecraft.IsARMLinux() {
		// natives extracted by an earlier run on another machine may
		// be x86 builds, start over. All architectures share this
		// one dir, so leftovers can only be cleared before
		// extraction, not after. A crash mid-install leaves the dir
		// empty and the next run re-extracts everything.
		if err := os.RemoveAll(i.NativesDir()); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(i.NativesDir(), 0755); err != nil {
		return err
	}

	total := len(libs)
	jobs := make([]downloadmgr.Job, 0, total)
	var done int64
	for index := range libs {
		lib := &libs[index]
		jobs = append(jobs, func(ctx context.Context) error {
			if err := i.installLibrary(ctx, lib); err != nil {
				return err
			}
			progress.Send(ch, progress.Report{
				Done:    int(atomic.AddInt64(&done, 1)),
				Total:   total,
				Message: lib.Name,
			})
			return nil
		})
	}
	if err := downloadmgr.Run(ctx, jobs, downloadmgr.MaxJobs); err != nil {
		return err
	}
	progress.Send(ch, progress.Finished(total))
	return nil
}

func (i *Instance) installLibrary(ctx context.Context, lib *minecraft.Lib) error {
	if !lib.Allowed() {
		return nil
	}

	// a coordinate alone is not enough: classifier-only natives
	// entries (all pre-1.13 lwjgl platform jars) have no primary
	// artifact, and a derived URL for them does not exist upstream
	hasPrimary := (lib.Downloads.Artifact.URL != "" || lib.URL != "") &&
		lib.Filepath() != ""
	if hasPrimary {
		target := filepath.Join(i.LibrariesDir(), lib.Filepath())
		if _, err := os.Stat(target); err != nil {
			item := downloadmgr.NewHTTPItem(lib.DownloadURL(), target)
			item.Client = i.client
			item.Sha1 = lib.Downloads.Artifact.Sha1
			if err := item.Download(ctx); err != nil {
				return err
			}
		}
		if err := i.extractNativesField(ctx, lib, target); err != nil {
			return err
		}
		if err := i.extractNamedNatives(ctx, lib, target); err != nil {
			return err
		}
	}

	return i.extractClassifierNatives(ctx, lib)
}

// extractNativesField handles libraries with a "natives" map. The
// primary jar is extracted too, then a companion natives jar is
// derived, downloaded and extracted on top.
func (i *Instance) extractNativesField(ctx context.Context, lib *minecraft.Lib, jarPath string) error {
	if len(lib.Natives) == 0 {
		return nil
	}
	classifier, ok := lib.Natives[minecraft.NativesKey()]
	if !ok {
		return nil
	}
	classifier = strings.ReplaceAll(classifier, "${arch}", archBits())

	if err := extractJar(jarPath, i.NativesDir(), nil); err != nil {
		return err
	}

	url := ""
	if len(lib.Downloads.Classifiers) > 0 {
		artifact, ok := lib.Downloads.Classifiers[classifier]
		if !ok {
			log.Printf("%s: no classifiers entry matches %q, skipping natives", lib.Name, classifier)
			return nil
		}
		url = artifact.URL
		if url == lwjgl294MachinaURL {
			// rebuilt fork, fixes a crash on macOS arm64 when
			// resizing the window
			url = lwjgl294OsxArm64URL
		}
	} else {
		url = strings.TrimSuffix(lib.DownloadURL(), ".jar") + "-" + classifier + ".jar"
		if url == jemallocArm64URL {
			url = jemallocArm64PatchedURL
		}
		if minecraft.Arch() == "arm64" {
			if url == lwjgl294OsxURL {
				url = lwjgl294OsxArm64URL
			}
			if strings.HasSuffix(url, "lwjgl-core-natives-linux.jar") {
				url = strings.Replace(url, "lwjgl-core-natives-linux.jar", "lwjgl-natives-linux-arm64.jar", 1)
			}
		}
	}

	return i.downloadAndExtractNatives(ctx, url)
}

func (i *Instance) downloadAndExtractNatives(ctx context.Context, url string) error {
	tmp, err := os.CreateTemp("", "natives-*.jar")
	if err != nil {
		return err
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	item := downloadmgr.NewHTTPItem(url, tmp.Name())
	item.Client = i.client
	err = item.Download(ctx)
	if err != nil && merrors.IsNotFound(err) && minecraft.IsARMLinux() {
		// some arm64 rebuild repos publish under a -arm64 suffix only
		retry := strings.Replace(url, "linux.jar", "linux-arm64.jar", 1)
		item = downloadmgr.NewHTTPItem(retry, tmp.Name())
		item.Client = i.client
		err = item.Download(ctx)
	}
	if err != nil {
		return err
	}
	return extractJar(tmp.Name(), i.NativesDir(), nil)
}

// extractNamedNatives handles libraries whose maven coordinate itself
// marks them as natives ("native" in the name, arch spelled out).
// The primary jar is the natives jar here. A jar built for another
// architecture is swapped for a platform-correct rebuild when the
// remap table knows one.
func (i *Instance) extractNamedNatives(ctx context.Context, lib *minecraft.Lib, jarPath string) error {
	if !strings.Contains(lib.Name, "native") {
		return nil
	}
	if !nameMatchesArch(lib.Name, minecraft.Arch()) {
		alt, ok := minecraft.NamedNativeRemap(*lib)
		if !ok {
			return nil
		}
		return i.downloadAndExtractNatives(ctx, alt.URL)
	}
	return extractJar(jarPath, i.NativesDir(), nil)
}

func nameMatchesArch(name string, arch string) bool {
	switch arch {
	case "arm32":
		return strings.Contains(name, "arm32")
	case "x86":
		return strings.Contains(name, "x86") && !strings.Contains(name, "x86_64")
	case "arm64":
		return strings.Contains(name, "aarch") || strings.Contains(name, "arm64")
	default:
		return !(strings.Contains(name, "aarch") ||
			strings.Contains(name, "arm") ||
			(strings.Contains(name, "x86") && !strings.Contains(name, "x86_64")))
	}
}

// extractClassifierNatives handles the modern classifiers map: every
// natives-* entry matching the current platform is downloaded and
// extracted, honoring the extract.exclude list
func (i *Instance) extractClassifierNatives(ctx context.Context, lib *minecraft.Lib) error {
	var exclude []string
	if lib.Extract != nil {
		exclude = lib.Extract.Exclude
	}

	for key, artifact := range lib.Downloads.Classifiers {
		if !minecraft.NativeKeyMatches(key) {
			continue
		}
		path := artifact.Path
		if path == "" {
			continue
		}
		target := filepath.Join(i.LibrariesDir(), filepath.FromSlash(path))
		if _, err := os.Stat(target); err != nil {
			item := downloadmgr.NewHTTPItem(artifact.URL, target)
			item.Client = i.client
			item.Sha1 = artifact.Sha1
			if err := item.Download(ctx); err != nil {
				return err
			}
		}
		if err := extractJar(target, i.NativesDir(), exclude); err != nil {
			return err
		}
	}
	return nil
}

func archBits() string {
	if minecraft.Arch() == "x86" || minecraft.Arch() == "arm32" {
		return "32"
	}
	return "64"
}
