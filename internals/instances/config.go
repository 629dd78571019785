package instances

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/minefetch/minefetch/internals/merrors"
)

// Loader is the mod loader kind of an instance
type Loader uint8

const (
	LoaderVanilla Loader = iota
	LoaderForge
	LoaderFabric
	LoaderOptiFine
)

var loaderNames = map[Loader]string{
	LoaderVanilla:  "Vanilla",
	LoaderForge:    "Forge",
	LoaderFabric:   "Fabric",
	LoaderOptiFine: "OptiFine",
}

func (l Loader) String() string {
	if name, ok := loaderNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Loader(%d)", uint8(l))
}

func (l Loader) MarshalJSON() ([]byte, error) {
	name, ok := loaderNames[l]
	if !ok {
		return nil, fmt.Errorf("unknown loader %d", uint8(l))
	}
	return json.Marshal(name)
}

func (l *Loader) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for loader, n := range loaderNames {
		if n == name {
			*l = loader
			return nil
		}
	}
	return fmt.Errorf("unknown loader %q", name)
}

// Config is the per-instance configuration stored as config.json
type Config struct {
	// Loader is the installed mod loader kind
	Loader Loader `json:"modType"`
	// RamMB is the java heap size in MiB
	RamMB int `json:"ramInMb"`
	// JavaOverride, when set, replaces the auto-installed runtime
	JavaOverride string `json:"javaOverride,omitempty"`
	// JavaArgs are extra jvm arguments prepended to the defaults
	JavaArgs []string `json:"javaArgs,omitempty"`
	// GameArgs are extra game arguments appended to the defaults
	GameArgs []string `json:"gameArgs,omitempty"`
}

// DefaultConfig is the config new instances start with
func DefaultConfig() *Config {
	return &Config{Loader: LoaderVanilla, RamMB: 2048}
}

func readConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &merrors.IoError{Path: path, Err: err}
	}
	config := &Config{}
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, &merrors.SchemaError{Source: path, Err: err}
	}
	return config, nil
}

// SaveConfig persists the instance config
func (i *Instance) SaveConfig() error {
	raw, err := json.MarshalIndent(i.Config, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(i.configPath(), raw, 0644)
}
