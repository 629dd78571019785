// Package instances manages locally installed game instances.
package instances

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	homedir "github.com/mitchellh/go-homedir"
	strcase "github.com/stoewer/go-strcase"

	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/ownhttp"
)

var (
	// ErrNoInstance is returned when the named instance does not exist
	ErrNoInstance = &merrors.CliError{
		Err:  "No instance with that name exists",
		Help: "Create one with \"minefetch create <version> <name>\" or list existing ones with \"minefetch list\"",
	}
)

// Instance is one locally installed game, with its own version,
// loader and game directory
type Instance struct {
	// Name is the display name given at creation
	Name string
	// GlobalDir is the launcher root holding all instances plus the
	// shared assets and java installs. Defaults to $HOME/.minefetch.
	GlobalDir string

	Config *Config

	client *http.Client

	launchCmd []string
}

// NewInstance creates an in-memory handle for a (possibly not yet
// installed) instance. client may be nil for the package default.
func NewInstance(globalDir string, name string, client *http.Client) *Instance {
	if client == nil {
		client = ownhttp.New()
	}
	return &Instance{Name: name, GlobalDir: globalDir, client: client}
}

// DefaultGlobalDir resolves the default launcher root
func DefaultGlobalDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".minefetch"), nil
}

// Open loads an existing instance including its config
func Open(globalDir string, name string, client *http.Client) (*Instance, error) {
	i := NewInstance(globalDir, name, client)
	if _, err := os.Stat(i.Dir()); err != nil {
		return nil, ErrNoInstance
	}
	config, err := readConfig(i.configPath())
	if err != nil {
		return nil, err
	}
	i.Config = config
	return i, nil
}

// List returns the names of all installed instances, sorted
func List(globalDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(globalDir, "instances"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Dir is the instance directory. The display name is kebab-cased so
// that it is always a safe directory name.
func (i *Instance) Dir() string {
	return filepath.Join(i.GlobalDir, "instances", strcase.KebabCase(i.Name))
}

// McDir is the game working directory of this instance
func (i *Instance) McDir() string {
	return filepath.Join(i.Dir(), ".minecraft")
}

// VersionsDir holds the game jar, one directory per version id
func (i *Instance) VersionsDir() string {
	return filepath.Join(i.McDir(), "versions")
}

// LibrariesDir holds this instance's maven-pathed libraries
func (i *Instance) LibrariesDir() string {
	return filepath.Join(i.Dir(), "libraries")
}

// NativesDir holds the extracted native libraries
func (i *Instance) NativesDir() string {
	return filepath.Join(i.LibrariesDir(), "natives")
}

// ForgeDir holds the loader install of this instance
func (i *Instance) ForgeDir() string {
	return filepath.Join(i.Dir(), "forge")
}

// AssetsDir is the launcher-wide asset store shared by instances
func (i *Instance) AssetsDir() string {
	return filepath.Join(i.GlobalDir, "assets")
}

// JavaDir is the launcher-wide java install root
func (i *Instance) JavaDir() string {
	return filepath.Join(i.GlobalDir, "java_installs")
}

func (i *Instance) detailsPath() string {
	return filepath.Join(i.Dir(), "details.json")
}

func (i *Instance) configPath() string {
	return filepath.Join(i.Dir(), "config.json")
}

// Details reads the stored version descriptor of this instance
func (i *Instance) Details() (*minecraft.VersionDescriptor, error) {
	raw, err := os.ReadFile(i.detailsPath())
	if err != nil {
		return nil, &merrors.IoError{Path: i.detailsPath(), Err: err}
	}
	details := &minecraft.VersionDescriptor{}
	if err := json.Unmarshal(raw, details); err != nil {
		return nil, &merrors.SchemaError{Source: i.detailsPath(), Err: err}
	}
	return details, nil
}

// GameJar is the path of this instance's game jar
func (i *Instance) GameJar(versionID string) string {
	return filepath.Join(i.VersionsDir(), versionID, versionID+".jar")
}

// LaunchCmd returns the command assembled by BuildLaunchCmd
func (i *Instance) LaunchCmd() []string {
	return i.launchCmd
}
