package minecraft

import "strings"

// lwjgl builds that mojang ships without linux arm64 natives.
// theofficialgman rebuilds them; the release tag mirrors the lwjgl
// version.
var arm64LwjglVersions = map[string]string{
	"3.1.6": "lwjgl-3.1.6",
	"3.2.1": "lwjgl-3.2.1",
	"3.2.2": "lwjgl-3.2.2",
	"3.3.0": "lwjgl-3.3.0",
	"3.3.1": "lwjgl-3.3.1",
}

const arm64LwjglBaseURL = "https://github.com/theofficialgman/lwjgl3-binaries-arm64/raw/"

// SpliceARM64Libraries rewrites the library list for 64-bit ARM Linux
// before resolution starts. Known-broken lwjgl entries are replaced by
// variants pointing at arm64 rebuilds, matched by maven coordinate.
// On every other platform the list is returned untouched.
func SpliceARM64Libraries(libs Libraries) Libraries {
	if !IsARMLinux() {
		return libs
	}

	out := make(Libraries, 0, len(libs))
	for _, lib := range libs {
		if replacement, ok := arm64Replacement(lib); ok {
			out = append(out, replacement)
			continue
		}
		out = append(out, lib)
	}
	return out
}

// NamedNativeRemap looks up a platform-correct replacement artifact
// for a natives library whose name marks it as built for another
// architecture. Keyed by maven coordinate; covers the lwjgl rebuilds
// for 64-bit ARM Linux.
func NamedNativeRemap(lib Lib) (Artifact, bool) {
	if !IsARMLinux() {
		return Artifact{}, false
	}
	return namedNativeRemapFor(lib)
}

func namedNativeRemapFor(lib Lib) (Artifact, bool) {
	replaced, ok := arm64Replacement(lib)
	if !ok || !replaced.Allowed() {
		return Artifact{}, false
	}
	artifact, ok := replaced.Downloads.Classifiers["natives-linux-arm64"]
	return artifact, ok
}

func arm64Replacement(lib Lib) (Lib, bool) {
	parts := strings.SplitN(lib.Name, ":", 3)
	if len(parts) < 3 || !strings.HasPrefix(parts[0], "org.lwjgl") {
		return Lib{}, false
	}

	// 4-part coordinates carry a natives classifier after the version
	version := parts[2]
	if c := strings.IndexByte(version, ':'); c >= 0 {
		version = version[:c]
	}

	tag, ok := arm64LwjglVersions[version]
	if !ok {
		return Lib{}, false
	}

	artifact := parts[1]
	replaced := lib
	replaced.Rules = nil

	jar := artifact + "-natives-linux-arm64.jar"
	replaced.Downloads.Classifiers = map[string]Artifact{
		"natives-linux-arm64": {
			Path: "org/lwjgl/" + artifact + "/" + version + "/" + jar,
			URL:  arm64LwjglBaseURL + tag + "/" + jar,
		},
	}
	return replaced, true
}
