package minecraft

import (
	"path/filepath"
	"runtime"
	"strings"
)

// LibrariesBaseURL is where libraries without an explicit download
// entry are fetched from
const LibrariesBaseURL = "https://libraries.minecraft.net/"

// Libraries is a collection of minecraft libs
type Libraries []Lib

// Required returns only the libraries allowed on the current platform
func (l Libraries) Required() Libraries {
	required := make(Libraries, 0)
	for _, lib := range l {
		if lib.Allowed() {
			required = append(required, lib)
		}
	}
	return required
}

// Lib is a minecraft library
type Lib struct {
	// Name is the maven coordinate "group:artifact:version"
	Name      string `json:"name"`
	Downloads struct {
		Artifact Artifact `json:"artifact,omitempty"`
		// Classifiers is a list of additional artifacts, used to
		// download platform specific native libraries
		Classifiers map[string]Artifact `json:"classifiers,omitempty"`
	} `json:"downloads,omitempty"`
	URL string `json:"url,omitempty"`
	// Rules determine whether this library should be included.
	// No rules means it is included by default.
	Rules []Rule `json:"rules,omitempty"`
	// Natives maps OS names to native classifier names
	Natives map[string]string `json:"natives,omitempty"`
	Extract *Extract          `json:"extract,omitempty"`
}

// Extract lists paths to remove again after native extraction
type Extract struct {
	Exclude []string `json:"exclude"`
}

// Allowed reports whether this library should be installed on the
// current platform. Rule evaluation decides, except that a
// classifiers map carrying natives for this OS always wins: a library
// that ships our natives is wanted no matter what its rules say.
func (l *Lib) Allowed() bool {
	return l.allowedFor(osNameFor(runtime.GOOS), archFor(runtime.GOARCH))
}

func (l *Lib) allowedFor(os string, arch string) bool {
	allowed := evaluateRulesFor(l.Rules, os, arch)

	if len(l.Downloads.Classifiers) > 0 {
		for key := range l.Downloads.Classifiers {
			if strings.HasPrefix(key, "natives-"+os) {
				allowed = true
				break
			}
		}
	}

	return allowed
}

// DedupKey is the version-insensitive "group:artifact" prefix used
// for classpath deduplication
func (l *Lib) DedupKey() string {
	return DedupKey(l.Name)
}

// DedupKey derives "group:artifact" from a maven coordinate.
// Coordinates without at least group and artifact return "".
func DedupKey(coordinate string) string {
	parts := strings.SplitN(coordinate, ":", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + ":" + parts[1]
}

// Filepath returns the target filepath for this library relative to
// the libraries folder
func (l *Lib) Filepath() string {
	if l.Downloads.Artifact.Path != "" {
		return l.Downloads.Artifact.Path
	}

	grouped := strings.SplitN(l.Name, ":", 3)
	if len(grouped) < 3 {
		return ""
	}
	basePath := filepath.Join(strings.Split(grouped[0], ".")...)
	name := grouped[1]
	version := grouped[2]

	return filepath.Join(basePath, name, version, name+"-"+version+".jar")
}

// DownloadURL returns the download URL for this library's primary
// artifact
func (l *Lib) DownloadURL() string {
	switch {
	case l.Downloads.Artifact.URL != "":
		return l.Downloads.Artifact.URL
	case l.URL != "":
		return l.URL + filepath.ToSlash(l.Filepath())
	default:
		return LibrariesBaseURL + filepath.ToSlash(l.Filepath())
	}
}

// NativeClassifierFor returns the classifier artifact matching the
// current platform, if any
func (l *Lib) NativeClassifierFor(os string, arch string) (string, Artifact, bool) {
	wanted := nativeClassifier(os, arch)
	if a, ok := l.Downloads.Classifiers[wanted]; ok {
		return wanted, a, true
	}
	// "natives-windows-64" style keys are used by some very old libs
	if os == "windows" && arch == "x86_64" {
		if a, ok := l.Downloads.Classifiers["natives-windows-64"]; ok {
			return "natives-windows-64", a, true
		}
	}
	return "", Artifact{}, false
}
