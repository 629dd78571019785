package classpath

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderOverridesVanilla(t *testing.T) {
	b := New()
	b.AddLoader("A:B", "libs/A/B/2.0/B-2.0.jar")
	b.AddVanilla("A:B", "libs/A/B/1.0/B-1.0.jar")
	b.AddVanilla("C:D", "libs/C/D/1.0/D-1.0.jar")
	b.SetGameJar("versions/1.20/1.20.jar")

	got := b.Entries()
	want := []string{
		"libs/A/B/2.0/B-2.0.jar",
		"libs/C/D/1.0/D-1.0.jar",
		"versions/1.20/1.20.jar",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStringUsesListSeparator(t *testing.T) {
	b := New()
	b.AddVanilla("A:B", "a.jar")
	b.SetGameJar("game.jar")
	want := "a.jar" + string(filepath.ListSeparator) + "game.jar"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKeylessEntriesAlwaysIncluded(t *testing.T) {
	b := New()
	b.AddLoader("", "one.jar")
	b.AddLoader("", "two.jar")
	if got := b.String(); !strings.Contains(got, "one.jar") || !strings.Contains(got, "two.jar") {
		t.Errorf("String() = %q", got)
	}
}

func TestExtendedLengthPrefixStripped(t *testing.T) {
	b := New()
	b.AddVanilla("A:B", `\\?\C:\libs\a.jar`)
	if got := b.String(); got != `C:\libs\a.jar` {
		t.Errorf("String() = %q", got)
	}
}
