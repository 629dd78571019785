package forge

import (
	"context"
	_ "embed"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/java"
	"github.com/minefetch/minefetch/internals/merrors"
)

// installerSource is a tiny headless driver compiled against the
// upstream installer jar, so the install runs without a GUI
//
//go:embed ForgeInstaller.java
var installerSource string

// runInstaller compiles the headless driver against the downloaded
// installer jar and runs it inside the forge dir. The upstream
// installer insists on a launcher_profiles.json, empty stubs satisfy
// it.
func (fi *Installer) runInstaller(ctx context.Context, installerName string) error {
	factory := java.NewFactory(fi.instance.JavaDir(), fi.client)
	runtime, err := factory.Version(ctx, 21)
	if err != nil {
		return err
	}
	javac, err := runtime.Bin("javac")
	if err != nil {
		return err
	}
	javaBin, err := runtime.Bin("java")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(fi.forgeDir(), "ForgeInstaller.java"), []byte(installerSource), 0644); err != nil {
		return err
	}
	for _, stub := range []string{"launcher_profiles.json", "launcher_profiles_microsoft_store.json"} {
		if err := os.WriteFile(filepath.Join(fi.forgeDir(), stub), []byte("{}"), 0644); err != nil {
			return err
		}
	}

	if err := fi.runCommand(ctx, javac, "-cp", installerName, "ForgeInstaller.java", "-d", "."); err != nil {
		return err
	}
	return fi.runCommand(ctx, javaBin,
		"-cp", installerName+string(filepath.ListSeparator)+".", "ForgeInstaller")
}

func (fi *Installer) runCommand(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = fi.forgeDir()
	stdout, stderr := &limitedBuffer{}, &limitedBuffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return &merrors.SubprocessError{
			Command: bin,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
		}
	}
	return nil
}

// limitedBuffer keeps the head of a subprocess stream so a runaway
// installer can not balloon an error message
type limitedBuffer struct {
	data []byte
}

const limitedBufferMax = 64 << 10

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := limitedBufferMax - len(b.data); room > 0 {
		if len(p) < room {
			b.data = append(b.data, p...)
		} else {
			b.data = append(b.data, p[:room]...)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	return string(b.data)
}
