package mojang

import (
	"errors"
	"testing"
)

func testManifest() *Manifest {
	return &Manifest{
		Versions: []Version{
			{ID: "1.20", URL: "https://x/1.20.json"},
			{ID: "1.19.4", URL: "https://x/1.19.4.json"},
			{ID: "b1.7.3", URL: "https://x/b1.7.3.json"},
			{ID: "b1.7.2", URL: "https://x/b1.7.2.json"},
			{ID: "a1.2.6", URL: "https://x/a1.2.6.json"},
			{ID: "c0.30_01c", URL: "https://x/c0.30_01c.json"},
			{ID: "c0.0.13a", URL: "https://x/c0.0.13a.json"},
			{ID: "rd-132211", URL: "https://x/rd-132211.json"},
			{ID: "inf-20100618", URL: "https://x/inf-20100618.json"},
		},
	}
}

func TestResolveExact(t *testing.T) {
	v, err := testManifest().Resolve("1.20")
	if err != nil {
		t.Fatal(err)
	}
	if v.URL != "https://x/1.20.json" {
		t.Errorf("got url %q", v.URL)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := testManifest().Resolve("9.9.9")
	var notFound *VersionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want VersionNotFoundError", err)
	}
	if notFound.Name != "9.9.9" {
		t.Errorf("error names %q", notFound.Name)
	}
}

func TestResolveFuzzy(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"b1.7.3", "b1.7.3"},       // exact beats fuzzy
		{"Beta 1.7.3", "b1.7.3"},   // category by name, prefix filter
		{"a1.2.6_02", "a1.2.6"},    // closest alpha
		{"Alpha 1.2.6", "a1.2.6"},  // informal era name
		{"rd-132328", "rd-132211"}, // only one pre-classic entry
		{"Indev", "c0.30_01c"},     // single-build era, exact id
		{"Infdev 20100618", "inf-20100618"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := testManifest().Resolve(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if v.ID != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.name, v.ID, tt.want)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"rd-132211", CategoryPreClassic},
		{"c0.0.13a", CategoryClassic},
		{"a1.2.6", CategoryAlpha},
		{"Alpha 1.2.6", CategoryAlpha},
		{"b1.7.3", CategoryBeta},
		{"Beta 1.7.3", CategoryBeta},
		{"inf-20100618", CategoryInfdev},
		{"in-20100130", CategoryIndev},
		{"1.20", CategoryNone},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.name); got != tt.want {
			t.Errorf("CategoryOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
