package instances

import (
	"encoding/json"
	"testing"
)

func TestLoaderJSONRoundTrip(t *testing.T) {
	for _, loader := range []Loader{LoaderVanilla, LoaderForge, LoaderFabric, LoaderOptiFine} {
		raw, err := json.Marshal(loader)
		if err != nil {
			t.Fatal(err)
		}
		var back Loader
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatal(err)
		}
		if back != loader {
			t.Errorf("%v round-tripped to %v", loader, back)
		}
	}
}

func TestLoaderRejectsUnknownName(t *testing.T) {
	var loader Loader
	if err := json.Unmarshal([]byte(`"Rift"`), &loader); err == nil {
		t.Error("expected error for unknown loader name")
	}
}

func TestSaveAndOpenConfig(t *testing.T) {
	dir := t.TempDir()
	i := NewInstance(dir, "My Instance", nil)
	i.Config = &Config{Loader: LoaderForge, RamMB: 4096, JavaArgs: []string{"-XX:+UseG1GC"}}
	if err := i.SaveConfig(); err != nil {
		t.Fatal(err)
	}

	opened, err := Open(dir, "My Instance", nil)
	if err != nil {
		t.Fatal(err)
	}
	if opened.Config.Loader != LoaderForge || opened.Config.RamMB != 4096 {
		t.Errorf("got config %+v", opened.Config)
	}
}

func TestDirIsKebabCased(t *testing.T) {
	i := NewInstance("/root", "My Cool Instance", nil)
	if got := i.Dir(); got != "/root/instances/my-cool-instance" {
		t.Errorf("Dir() = %q", got)
	}
}

func TestOpenMissingInstance(t *testing.T) {
	if _, err := Open(t.TempDir(), "nope", nil); err != ErrNoInstance {
		t.Errorf("err = %v, want ErrNoInstance", err)
	}
}
