package instances

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minefetch/minefetch/internals/classpath"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
)

// LaunchOptions are the per-launch inputs of the command assembly
type LaunchOptions struct {
	Username string
	// Offline play has no real session, these placeholders keep old
	// versions from crashing on missing arguments
	UUID        string
	AccessToken string
}

// BuildLaunchCmd assembles the full java invocation for this
// instance: runtime binary, jvm args, main class and the substituted
// game argument template. The command is returned and also kept on
// the instance for later inspection.
func (i *Instance) BuildLaunchCmd(ctx context.Context, opts LaunchOptions) ([]string, error) {
	details, err := i.Details()
	if err != nil {
		return nil, err
	}

	javaBin, err := i.JavaBinary(ctx, details)
	if err != nil {
		return nil, err
	}

	loaderDetails, err := i.loaderDetails()
	if err != nil {
		return nil, err
	}

	cp, err := i.buildClasspath(details)
	if err != nil {
		return nil, err
	}

	cmd := []string{javaBin}
	cmd = append(cmd, fmt.Sprintf("-Xmx%dM", i.ramMB()))
	cmd = append(cmd, i.configJavaArgs()...)
	cmd = append(cmd, platformJavaArgs(details)...)
	cmd = append(cmd, "-Djava.library.path="+i.NativesDir())
	if arg := i.loggingArg(details); arg != "" {
		cmd = append(cmd, arg)
	}
	cmd = append(cmd, "-cp", cp)

	mainClass := details.MainClass
	if loaderDetails != nil && loaderDetails.MainClass != "" {
		mainClass = loaderDetails.MainClass
	}
	cmd = append(cmd, mainClass)

	gameArgs := i.gameArgs(details, loaderDetails, opts)
	cmd = append(cmd, gameArgs...)
	cmd = append(cmd, i.configGameArgs()...)

	i.launchCmd = cmd
	return cmd, nil
}

// Launch starts the game process in the instance's game directory
func (i *Instance) Launch(ctx context.Context, opts LaunchOptions) (*exec.Cmd, error) {
	args, err := i.BuildLaunchCmd(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(i.McDir(), 0755); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = i.McDir()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, &merrors.SubprocessError{Command: args[0], Stderr: err.Error()}
	}
	return cmd, nil
}

// buildClasspath joins loader libraries, unclaimed vanilla libraries
// and the game jar, in that order
func (i *Instance) buildClasspath(details *minecraft.VersionDescriptor) (string, error) {
	builder := classpath.New()

	loaderPaths, loaderKeys, err := i.loaderClasspath()
	if err != nil {
		return "", err
	}
	for _, path := range loaderPaths {
		builder.AddLoader("", path)
	}
	for _, key := range loaderKeys {
		builder.ClaimKey(key)
	}

	for _, lib := range minecraft.SpliceARM64Libraries(details.Libraries).Required() {
		path := lib.Filepath()
		if path == "" {
			continue
		}
		builder.AddVanilla(lib.DedupKey(), filepath.Join(i.LibrariesDir(), path))
	}

	builder.SetGameJar(i.GameJar(details.ID))
	return builder.String(), nil
}

// loaderClasspath reads the jar list and the group:artifact keys a
// loader install left behind. classpath.txt is one separator-joined
// string, clean_classpath.txt is line oriented.
func (i *Instance) loaderClasspath() ([]string, []string, error) {
	if i.Config == nil || i.Config.Loader == LoaderVanilla {
		return nil, nil, nil
	}
	raw, err := os.ReadFile(filepath.Join(i.ForgeDir(), "classpath.txt"))
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}
	var paths []string
	for _, entry := range strings.Split(string(raw), string(filepath.ListSeparator)) {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			paths = append(paths, entry)
		}
	}
	keys, err := readLines(filepath.Join(i.ForgeDir(), "clean_classpath.txt"))
	if err != nil {
		return nil, nil, err
	}
	return paths, keys, nil
}

// loaderDetails loads the version descriptor the loader install wrote
func (i *Instance) loaderDetails() (*minecraft.VersionDescriptor, error) {
	if i.Config == nil || i.Config.Loader == LoaderVanilla {
		return nil, nil
	}
	path := filepath.Join(i.ForgeDir(), "details.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	// older installs stored the descriptor json-encoded a second
	// time, unwrap that first
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, &merrors.SchemaError{Source: path, Err: err}
		}
		raw = []byte(inner)
	}
	parsed := struct {
		minecraft.VersionDescriptor
		VersionInfo *minecraft.VersionDescriptor `json:"versionInfo,omitempty"`
	}{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &merrors.SchemaError{Source: path, Err: err}
	}
	if parsed.VersionInfo != nil {
		return parsed.VersionInfo, nil
	}
	return &parsed.VersionDescriptor, nil
}

func (i *Instance) gameArgs(details *minecraft.VersionDescriptor, loaderDetails *minecraft.VersionDescriptor, opts LaunchOptions) []string {
	template := i.argTemplate(details, loaderDetails)

	replacer := strings.NewReplacer(
		"${auth_player_name}", opts.Username,
		"${version_name}", details.ID,
		"${game_directory}", i.McDir(),
		"${assets_root}", filepath.Join(i.AssetsDir(), "dir"),
		"${game_assets}", filepath.Join(i.AssetsDir(), "legacy_assets"),
		"${assets_index_name}", details.AssetIndex.ID,
		"${auth_uuid}", defaultString(opts.UUID, "00000000-0000-0000-0000-000000000000"),
		"${auth_access_token}", defaultString(opts.AccessToken, "0"),
		"${auth_session}", defaultString(opts.AccessToken, "0"),
		"${user_type}", "legacy",
		"${user_properties}", "{}",
		"${version_type}", details.Type,
	)

	args := make([]string, 0, len(template))
	for _, arg := range template {
		args = append(args, replacer.Replace(arg))
	}
	return args
}

// argTemplate flattens the argument template of a version. Arguments
// gated on launcher features (demo mode, custom resolution) are
// skipped, OS rules are evaluated.
func (i *Instance) argTemplate(details *minecraft.VersionDescriptor, loaderDetails *minecraft.VersionDescriptor) []string {
	source := details
	if loaderDetails != nil && (loaderDetails.MinecraftArguments != "" || loaderDetails.Arguments != nil) {
		source = loaderDetails
	}

	if source.Arguments != nil {
		var flat []string
		for _, arg := range source.Arguments.Game {
			if hasFeatureRule(arg.Rules) {
				continue
			}
			if !minecraft.EvaluateRules(arg.Rules) {
				continue
			}
			flat = append(flat, arg.Value...)
		}
		return flat
	}
	if source.MinecraftArguments != "" {
		return strings.Fields(source.MinecraftArguments)
	}
	return nil
}

func hasFeatureRule(rules []minecraft.Rule) bool {
	for _, rule := range rules {
		if len(rule.Features) > 0 {
			return true
		}
	}
	return false
}

// platformJavaArgs returns jvm arguments that depend on the host OS
// or on the age of the version. Classic, alpha and beta builds get
// the betacraft proxy so skins and sounds still resolve.
func platformJavaArgs(details *minecraft.VersionDescriptor) []string {
	var args []string
	if runtime.GOOS == "darwin" {
		args = append(args, "-XstartOnFirstThread")
	}
	if details.Type == "old_beta" || details.Type == "old_alpha" {
		args = append(args, "-Dhttp.proxyHost=betacraft.uk")
		switch {
		case strings.HasPrefix(details.ID, "c0."):
			args = append(args, "-Dhttp.proxyPort=11701")
		case details.Type == "old_alpha":
			args = append(args, "-Dhttp.proxyPort=11702")
		default:
			args = append(args, "-Dhttp.proxyPort=11705")
		}
		args = append(args, "-Djava.util.Arrays.useLegacyMergeSort=true")
	}
	return args
}

// loggingArg builds the log4j config jvm argument, if the version
// ships a logging config
func (i *Instance) loggingArg(details *minecraft.VersionDescriptor) string {
	if details.Logging == nil || details.Logging.Client.Argument == "" {
		return ""
	}
	path := filepath.Join(i.Dir(), details.Logging.Client.File.ID)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return strings.ReplaceAll(details.Logging.Client.Argument, "${path}", path)
}

func (i *Instance) ramMB() int {
	if i.Config != nil && i.Config.RamMB > 0 {
		return i.Config.RamMB
	}
	return 2048
}

func (i *Instance) configJavaArgs() []string {
	if i.Config == nil {
		return nil
	}
	return i.Config.JavaArgs
}

func (i *Instance) configGameArgs() []string {
	if i.Config == nil {
		return nil
	}
	return i.Config.GameArgs
}

func defaultString(s string, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
