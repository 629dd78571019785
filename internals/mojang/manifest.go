// Package mojang fetches and resolves the global version manifest.
package mojang

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/ownhttp"
)

// ManifestURL is mojang's official version index
const ManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// ArchiveManifestURL is the community archive index. It is a superset
// of mojang's list (it includes restored pre-classic/classic/indev/
// infdev builds), so it is tried first.
const ArchiveManifestURL = "https://meta.omniarchive.uk/v1/manifest.json"

// Service resolves logical version names to descriptor URLs.
// The manifest is fetched once per Service and cached; create one
// Service per run and share it.
type Service struct {
	client *http.Client

	mu     sync.Mutex
	cached *Manifest
}

// New creates a manifest Service using the given client
// (nil for the package default)
func New(client *http.Client) *Service {
	if client == nil {
		client = ownhttp.New()
	}
	return &Service{client: client}
}

// Manifest is the global version index
type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Version `json:"versions"`
}

// Version is one row of the global version index
type Version struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url"`
	Time        string `json:"time,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty"`
}

// VersionNotFoundError means neither exact nor fuzzy resolution
// produced a manifest entry
type VersionNotFoundError struct {
	Name string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q was not found in the version manifest", e.Name)
}

// Manifest downloads the version index, or returns the cached one
func (s *Service) Manifest(ctx context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	manifest, err := s.fetch(ctx, ArchiveManifestURL)
	if err != nil {
		log.Printf("version archive unreachable (%v), falling back to mojang", err)
		manifest, err = s.fetch(ctx, ManifestURL)
		if err != nil {
			return nil, err
		}
	}

	s.cached = manifest
	return manifest, nil
}

func (s *Service) fetch(ctx context.Context, url string) (*Manifest, error) {
	raw, err := downloadmgr.GetBytes(ctx, s.client, url)
	if err != nil {
		return nil, err
	}
	manifest := &Manifest{}
	if err := json.Unmarshal(raw, manifest); err != nil {
		return nil, &merrors.SchemaError{Source: url, Err: err}
	}
	return manifest, nil
}

// Resolve turns a logical version name into its manifest entry.
// Exact id match first; for names in a historical category a fuzzy
// prefix match against manifest ids is applied.
func (s *Service) Resolve(ctx context.Context, name string) (*Version, error) {
	manifest, err := s.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	return manifest.Resolve(name)
}

// Resolve is the offline part of Service.Resolve
func (m *Manifest) Resolve(name string) (*Version, error) {
	if v, ok := m.FindName(name); ok {
		return v, nil
	}

	category := CategoryOf(name)
	if category == CategoryNone {
		return nil, &VersionNotFoundError{Name: name}
	}

	// Indev and Infdev only ever shipped one usable build each, so
	// they resolve to hard-coded ids instead of a prefix search
	if id, ok := category.exactID(); ok {
		if v, ok := m.FindName(id); ok {
			return v, nil
		}
		return nil, &VersionNotFoundError{Name: name}
	}

	if v, ok := m.FindFuzzy(name, category.prefix()); ok {
		return v, nil
	}
	return nil, &VersionNotFoundError{Name: name}
}

// FindName finds a manifest entry by exact id
func (m *Manifest) FindName(name string) (*Version, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == name {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// FindFuzzy filters entries by id prefix and picks the one closest to
// name by levenshtein distance
func (m *Manifest) FindFuzzy(name string, prefix string) (*Version, bool) {
	var best *Version
	bestDistance := -1

	for i := range m.Versions {
		v := &m.Versions[i]
		if len(v.ID) < len(prefix) || v.ID[:len(prefix)] != prefix {
			continue
		}
		d := levenshtein.ComputeDistance(name, v.ID)
		if bestDistance == -1 || d < bestDistance {
			best = v
			bestDistance = d
		}
	}
	return best, best != nil
}
