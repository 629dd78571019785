package instances

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/java"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/mojang"
	"github.com/minefetch/minefetch/internals/progress"
)

// instanceLock marks an unfinished instance creation
const instanceLock = "install.lock"

// ErrInstanceExists is returned when creating over a finished install
var ErrInstanceExists = &merrors.CliError{
	Err:  "An instance with that name already exists",
	Help: "Pick another name or delete the existing instance first",
}

// CreateProgress carries the per-phase progress channels of a running
// install. All channels are optional, a nil channel drops reports.
type CreateProgress struct {
	Jar       chan<- progress.Report
	Assets    chan<- progress.Report
	Libraries chan<- progress.Report
	Java      chan<- progress.Report
}

// Create installs this instance from scratch: resolve the version,
// store its descriptor, then fetch jar, assets, libraries and the
// java runtime. A leftover install.lock from a crashed run causes the
// directory to be wiped and recreated.
func (i *Instance) Create(ctx context.Context, version string, prog *CreateProgress) error {
	if prog == nil {
		prog = &CreateProgress{}
	}

	dir := i.Dir()
	lock := filepath.Join(dir, instanceLock)
	if _, err := os.Stat(dir); err == nil {
		if _, lockErr := os.Stat(lock); lockErr != nil {
			return ErrInstanceExists
		}
		log.Printf("found stale %s, removing the unfinished instance and starting over", instanceLock)
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(lock, []byte("instance is being created. Please do not delete this file\n"), 0644); err != nil {
		return err
	}

	details, err := i.fetchDetails(ctx, version)
	if err != nil {
		return errors.Wrap(err, "resolving version")
	}

	if i.Config == nil {
		i.Config = DefaultConfig()
	}
	if err := i.SaveConfig(); err != nil {
		return err
	}

	if err := i.downloadGameJar(ctx, details, prog.Jar); err != nil {
		return errors.Wrap(err, "downloading game jar")
	}
	if err := i.downloadLoggingConfig(ctx, details); err != nil {
		return errors.Wrap(err, "downloading log config")
	}

	// assets, libraries and java do not depend on each other
	jobs := []downloadmgr.Job{
		func(ctx context.Context) error {
			return errors.Wrap(i.EnsureAssets(ctx, details, prog.Assets), "downloading assets")
		},
		func(ctx context.Context) error {
			return errors.Wrap(i.EnsureLibraries(ctx, details, prog.Libraries), "downloading libraries")
		},
		func(ctx context.Context) error {
			return errors.Wrap(i.ensureJava(ctx, details, prog.Java), "installing java")
		},
	}
	if err := downloadmgr.Run(ctx, jobs, len(jobs)); err != nil {
		return err
	}

	return os.Remove(lock)
}

// fetchDetails resolves the version name and stores the descriptor
// json verbatim as details.json
func (i *Instance) fetchDetails(ctx context.Context, version string) (*minecraft.VersionDescriptor, error) {
	service := mojang.New(i.client)
	entry, err := service.Resolve(ctx, version)
	if err != nil {
		return nil, err
	}

	raw, err := downloadmgr.GetBytes(ctx, i.client, entry.URL)
	if err != nil {
		return nil, err
	}
	details := &minecraft.VersionDescriptor{}
	if err := json.Unmarshal(raw, details); err != nil {
		return nil, &merrors.SchemaError{Source: entry.URL, Err: err}
	}

	// stored as received so later loader installs see the exact
	// upstream document
	if err := writeFileAtomic(i.detailsPath(), raw, 0644); err != nil {
		return nil, err
	}
	return details, nil
}

func (i *Instance) downloadGameJar(ctx context.Context, details *minecraft.VersionDescriptor, ch chan<- progress.Report) error {
	target := i.GameJar(details.ID)
	if _, err := os.Stat(target); err == nil {
		progress.Send(ch, progress.Finished(1))
		return nil
	}
	item := downloadmgr.NewHTTPItem(details.Downloads.Client.URL, target)
	item.Client = i.client
	item.Sha1 = details.Downloads.Client.Sha1
	if err := item.Download(ctx); err != nil {
		return err
	}
	progress.Send(ch, progress.Finished(1))
	return nil
}

// downloadLoggingConfig fetches the log4j configuration, if the
// version uses one
func (i *Instance) downloadLoggingConfig(ctx context.Context, details *minecraft.VersionDescriptor) error {
	if details.Logging == nil || details.Logging.Client.File.URL == "" {
		return nil
	}
	file := details.Logging.Client.File
	target := filepath.Join(i.Dir(), file.ID)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	item := downloadmgr.NewHTTPItem(file.URL, target)
	item.Client = i.client
	item.Sha1 = file.Sha1
	return item.Download(ctx)
}

func (i *Instance) ensureJava(ctx context.Context, details *minecraft.VersionDescriptor, ch chan<- progress.Report) error {
	if i.Config != nil && i.Config.JavaOverride != "" {
		progress.Send(ch, progress.Finished(1))
		return nil
	}
	factory := java.NewFactory(i.JavaDir(), i.client)
	factory.OnProgress = func(done int, total int) {
		progress.Send(ch, progress.Report{Done: done, Total: total})
	}
	_, err := factory.Version(ctx, javaMajor(details))
	return err
}

// javaMajor picks the runtime feature release for a version.
// Versions without a javaVersion block predate java 9 and run on 8.
func javaMajor(details *minecraft.VersionDescriptor) int {
	if details.JavaVersion == nil || details.JavaVersion.MajorVersion == 0 {
		return 8
	}
	return details.JavaVersion.MajorVersion
}

// JavaBinary is the java executable this instance launches with,
// installing the runtime first if needed
func (i *Instance) JavaBinary(ctx context.Context, details *minecraft.VersionDescriptor) (string, error) {
	if i.Config != nil && i.Config.JavaOverride != "" {
		return i.Config.JavaOverride, nil
	}
	factory := java.NewFactory(i.JavaDir(), i.client)
	runtime, err := factory.Version(ctx, javaMajor(details))
	if err != nil {
		return "", err
	}
	return runtime.Bin("java")
}

// Delete removes the instance directory and everything in it
func (i *Instance) Delete() error {
	return os.RemoveAll(i.Dir())
}
