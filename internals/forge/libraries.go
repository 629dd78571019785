package forge

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/progress"
)

// downloadLibraries fetches every client-side library of the loader
// descriptor and extends the classpath fragment with it. The clean
// classpath collects the bare "group:artifact" keys, used later to
// drop the matching vanilla libraries at launch.
func (fi *Installer) downloadLibraries(ctx context.Context, details *forgeDetails, classpath []string) ([]string, []string, error) {
	librariesDir := filepath.Join(fi.forgeDir(), "libraries")
	if err := os.MkdirAll(librariesDir, 0755); err != nil {
		return nil, nil, err
	}

	var wanted []forgeLib
	for _, lib := range details.Libraries {
		if lib.Clientreq != nil && !*lib.Clientreq {
			continue
		}
		wanted = append(wanted, lib)
	}

	var cleanClasspath []string
	for index, lib := range wanted {
		key := minecraft.DedupKey(lib.Name)
		if key != "" {
			cleanClasspath = append(cleanClasspath, key)
		}

		dir, file, err := libraryLocation(&lib)
		if err != nil {
			return nil, nil, err
		}
		relPath := path.Join(dir, file)

		// the loader's own jar was placed by the installer run, it is
		// only a classpath entry on very new majors
		if key == "net.minecraftforge:forge" {
			if fi.major > 48 {
				classpath = append(classpath, "../forge/libraries/"+relPath)
			}
			continue
		}

		progress.Send(fi.Reports, progress.Report{
			Done:    index + 1,
			Total:   len(wanted),
			Message: lib.Name,
		})

		dest := filepath.Join(librariesDir, filepath.FromSlash(relPath))
		if _, err := os.Stat(dest); err != nil {
			skipped, err := fi.fetchLibrary(ctx, &lib, relPath, dest)
			if err != nil {
				return nil, nil, err
			}
			if skipped {
				continue
			}
		}
		classpath = append(classpath, "../forge/libraries/"+relPath)
	}
	return classpath, cleanClasspath, nil
}

// fetchLibrary downloads one library, falling back to the pack200
// form when the plain jar is missing. A 404 on the fallback means the
// library genuinely does not exist for this build and is skipped.
func (fi *Installer) fetchLibrary(ctx context.Context, lib *forgeLib, relPath string, dest string) (skipped bool, err error) {
	url := libraryURL(lib, relPath)

	item := downloadmgr.NewHTTPItem(url, dest)
	item.Client = fi.client
	err = item.Download(ctx)
	if err == nil {
		return false, nil
	}
	if !merrors.IsNotFound(err) {
		return false, err
	}

	err = fi.unpackAugmentedLibrary(ctx, url, dest)
	if err == nil {
		return false, nil
	}
	if merrors.IsNotFound(err) {
		fmt.Fprintf(os.Stderr, "library %s not found upstream, skipping\n", lib.Name)
		return true, nil
	}
	return false, err
}

// libraryLocation derives the maven directory and file name of a
// library, either from its explicit download entry or from the
// coordinate itself
func libraryLocation(lib *forgeLib) (dir string, file string, err error) {
	if lib.Downloads != nil && lib.Downloads.Artifact.Path != "" {
		p := lib.Downloads.Artifact.Path
		return path.Dir(p), path.Base(p), nil
	}

	parts := strings.SplitN(lib.Name, ":", 3)
	if len(parts) < 3 {
		return "", "", fmt.Errorf("malformed library coordinate %q", lib.Name)
	}
	group, artifact, version := parts[0], parts[1], parts[2]
	dir = path.Join(strings.ReplaceAll(group, ".", "/"), artifact, version)
	return dir, artifact + "-" + version + ".jar", nil
}

func libraryURL(lib *forgeLib, relPath string) string {
	if lib.Downloads != nil && lib.Downloads.Artifact.URL != "" {
		return lib.Downloads.Artifact.URL
	}
	base := minecraft.LibrariesBaseURL
	if lib.URL != "" {
		base = lib.URL
	}
	return strings.TrimSuffix(base, "/") + "/" + relPath
}
