package minecraft

import (
	"encoding/json"
	"testing"
)

func TestStringSlice(t *testing.T) {
	var s StringSlice
	err := json.Unmarshal([]byte(`["a", "b"]`), &s)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "a b" {
		t.Fatalf("Expected 'a b', got '%s'", s.String())
	}

	err = json.Unmarshal([]byte(`"a b"`), &s)
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "a b" {
		t.Fatalf("Expected 'a b', got '%s'", s.String())
	}
}

func TestArgumentForms(t *testing.T) {
	var a Argument
	if err := json.Unmarshal([]byte(`"--demo"`), &a); err != nil {
		t.Fatal(err)
	}
	if a.Value.String() != "--demo" {
		t.Fatalf("got %q", a.Value.String())
	}

	raw := `{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":["-XstartOnFirstThread"]}`
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatal(err)
	}
	if len(a.Rules) != 1 || a.Value.String() != "-XstartOnFirstThread" {
		t.Fatalf("unexpected parse: %+v", a)
	}
}
