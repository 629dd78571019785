// Package forge installs the forge mod loader into an instance.
//
// The pipeline is strictly sequential: pick a loader version, fetch
// the upstream installer jar, run it (newer versions) or use it
// directly (older ones), parse the library list it carries, download
// those libraries and persist the resulting classpath fragment.
package forge

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/instances"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/ownhttp"
	"github.com/minefetch/minefetch/internals/progress"
)

// forgeLock marks an unfinished loader install inside the instance
// dir. A leftover lock is reported but not fatal, the next install
// simply runs again.
const forgeLock = "forge.lock"

// Installer drives one loader install into one instance
type Installer struct {
	instance *instances.Instance
	client   *http.Client

	// Reports receives phase and per-library progress (may be nil)
	Reports chan<- progress.Report

	forgeVersion string
	shortVersion string
	normVersion  string
	major        int
}

// NewInstaller creates an installer for the given instance. client
// may be nil for the package default.
func NewInstaller(instance *instances.Instance, client *http.Client) *Installer {
	if client == nil {
		client = ownhttp.New()
	}
	return &Installer{instance: instance, client: client}
}

func (fi *Installer) forgeDir() string {
	return fi.instance.ForgeDir()
}

// Install runs the full pipeline and flips the instance's loader kind
// to forge on success
func (fi *Installer) Install(ctx context.Context) error {
	details, err := fi.instance.Details()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(fi.instance.McDir(), "mods"), 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(fi.forgeDir(), 0755); err != nil {
		return err
	}
	if err := fi.createLock(); err != nil {
		return err
	}

	fi.report(0, "resolving forge version")
	if err := fi.resolveVersion(ctx, details.ID); err != nil {
		return errors.Wrap(err, "resolving forge version")
	}

	fi.report(1, "downloading installer")
	installerPath, installerName, err := fi.downloadInstaller(ctx)
	if err != nil {
		return errors.Wrap(err, "downloading forge installer")
	}

	fi.report(2, "running installer")
	classpath, err := fi.runInstallerAndSeedClasspath(ctx, installerName)
	if err != nil {
		return err
	}

	forgeJSON, raw, err := parseInstallerDetails(installerPath)
	if err != nil {
		return err
	}

	fi.report(3, "downloading libraries")
	classpath, cleanClasspath, err := fi.downloadLibraries(ctx, forgeJSON, classpath)
	if err != nil {
		return errors.Wrap(err, "downloading forge libraries")
	}

	if err := fi.persist(classpath, cleanClasspath, raw); err != nil {
		return err
	}

	fi.instance.Config.Loader = instances.LoaderForge
	if err := fi.instance.SaveConfig(); err != nil {
		return err
	}

	fi.cleanupJunk()
	fi.report(4, "done")
	return fi.removeLock()
}

// cleanupJunk removes the build leftovers of the installer run. The
// installer jar itself stays, old versions need it on the classpath.
func (fi *Installer) cleanupJunk() {
	junk := []string{
		"ForgeInstaller.java",
		"ForgeInstaller.class",
		"launcher_profiles.json",
		"launcher_profiles_microsoft_store.json",
		"installer.log",
	}
	for _, name := range junk {
		os.Remove(filepath.Join(fi.forgeDir(), name))
	}
}

// resolveVersion picks the promoted forge build for the game version
// and derives the two spellings upstream file names use
func (fi *Installer) resolveVersion(ctx context.Context, gameVersion string) error {
	version, err := latestForgeVersion(ctx, fi.client, gameVersion)
	if err != nil {
		return err
	}

	// "1.7" style ids get a ".0" appended in some artifact names
	normGame := gameVersion
	if strings.Count(gameVersion, ".") == 1 {
		normGame = gameVersion + ".0"
	}

	fi.forgeVersion = version
	fi.shortVersion = gameVersion + "-" + version
	fi.normVersion = fi.shortVersion + "-" + normGame
	fi.major = majorOf(version)
	return nil
}

// downloadInstaller tries the four historical upstream spellings in
// order. Only a 404 moves on to the next candidate, any other failure
// is final. All four missing means the version does not exist.
func (fi *Installer) downloadInstaller(ctx context.Context) (string, string, error) {
	fileType, flipped := "installer", "universal"
	if fi.major < 14 {
		fileType, flipped = "universal", "installer"
	}

	const base = "https://files.minecraftforge.net/maven/net/minecraftforge/forge"
	urls := []string{
		fmt.Sprintf("%s/%s/forge-%s-%s.jar", base, fi.shortVersion, fi.shortVersion, fileType),
		fmt.Sprintf("%s/%s/forge-%s-%s.jar", base, fi.normVersion, fi.normVersion, fileType),
		fmt.Sprintf("%s/%s/forge-%s-%s.jar", base, fi.shortVersion, fi.shortVersion, flipped),
		fmt.Sprintf("%s/%s/forge-%s-%s.jar", base, fi.normVersion, fi.normVersion, flipped),
	}

	name := fmt.Sprintf("forge-%s-%s.jar", fi.shortVersion, fileType)
	target := filepath.Join(fi.forgeDir(), name)

	for _, url := range urls {
		item := downloadmgr.NewHTTPItem(url, target)
		item.Client = fi.client
		err := item.Download(ctx)
		if err == nil {
			return target, name, nil
		}
		if !merrors.IsNotFound(err) {
			return "", "", err
		}
	}
	return "", "", &merrors.NotFoundFallbackExhausted{URLs: urls}
}

// runInstallerAndSeedClasspath runs the upstream installer where one
// exists and returns the classpath entries the loader itself
// contributes, ahead of its library list
func (fi *Installer) runInstallerAndSeedClasspath(ctx context.Context, installerName string) ([]string, error) {
	if fi.major < 14 {
		// old universal jars are used directly, nothing to run
		return []string{"../forge/" + installerName}, nil
	}

	if err := fi.runInstaller(ctx, installerName); err != nil {
		return nil, err
	}

	if fi.major < 39 {
		jar := fmt.Sprintf("../forge/libraries/net/minecraftforge/forge/%s/forge-%s.jar",
			fi.shortVersion, fi.shortVersion)
		return []string{jar}, nil
	}
	return nil, nil
}

func (fi *Installer) persist(classpath []string, cleanClasspath []string, rawDetails []byte) error {
	joined := strings.Join(classpath, string(filepath.ListSeparator))
	if joined != "" {
		joined += string(filepath.ListSeparator)
	}
	if err := os.WriteFile(filepath.Join(fi.forgeDir(), "classpath.txt"), []byte(joined), 0644); err != nil {
		return err
	}
	clean := strings.Join(cleanClasspath, "\n")
	if err := os.WriteFile(filepath.Join(fi.forgeDir(), "clean_classpath.txt"), []byte(clean), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(fi.forgeDir(), "details.json"), rawDetails, 0644)
}

func (fi *Installer) createLock() error {
	lock := filepath.Join(fi.instance.Dir(), forgeLock)
	if _, err := os.Stat(lock); err == nil {
		fmt.Fprintln(os.Stderr, "previously incomplete forge install found (not a problem)")
		return nil
	}
	return os.WriteFile(lock, []byte("If you see this, forge was not installed correctly.\n"), 0644)
}

func (fi *Installer) removeLock() error {
	return os.Remove(filepath.Join(fi.instance.Dir(), forgeLock))
}

func (fi *Installer) report(phase int, message string) {
	progress.Send(fi.Reports, progress.Report{Done: phase, Total: 4, Message: message})
}
