// Package classpath assembles the java classpath for a game process.
package classpath

import (
	"path/filepath"
	"strings"
)

// Builder collects library jars and joins them in launch order.
// Loader jars are added before vanilla jars so that a loader override
// of a library (same group:artifact, different version) wins; the
// game jar always goes last.
type Builder struct {
	entries []string
	claimed map[string]bool
	gameJar string
}

func New() *Builder {
	return &Builder{claimed: map[string]bool{}}
}

// AddLoader adds a loader-provided jar and claims its group:artifact
// key. An empty key claims nothing but the path is still included.
func (b *Builder) AddLoader(key string, path string) {
	if key != "" {
		if b.claimed[key] {
			return
		}
		b.claimed[key] = true
	}
	b.entries = append(b.entries, cleanPath(path))
}

// ClaimKey marks a group:artifact key as loader-provided without
// adding a path. Loader installs persist their jar list and their key
// list separately, so claims can arrive on their own.
func (b *Builder) ClaimKey(key string) {
	if key != "" {
		b.claimed[key] = true
	}
}

// AddVanilla adds a vanilla jar unless a loader jar already claimed
// its group:artifact key
func (b *Builder) AddVanilla(key string, path string) {
	if key != "" && b.claimed[key] {
		return
	}
	b.entries = append(b.entries, cleanPath(path))
}

// SetGameJar sets the game jar appended after all libraries
func (b *Builder) SetGameJar(path string) {
	b.gameJar = cleanPath(path)
}

// String joins all entries with the platform path list separator
func (b *Builder) String() string {
	all := b.entries
	if b.gameJar != "" {
		all = append(append([]string{}, b.entries...), b.gameJar)
	}
	return strings.Join(all, string(filepath.ListSeparator))
}

// Entries returns the ordered jar paths including the game jar
func (b *Builder) Entries() []string {
	all := append([]string{}, b.entries...)
	if b.gameJar != "" {
		all = append(all, b.gameJar)
	}
	return all
}

// java fails to load jars given under the windows extended-length
// prefix, so it is stripped
func cleanPath(path string) string {
	return strings.TrimPrefix(path, `\\?\`)
}
