package minecraft

import "runtime"

// OSName returns the current OS in mojang naming ("osx" not "darwin")
func OSName() string {
	return osNameFor(runtime.GOOS)
}

func osNameFor(goos string) string {
	if goos == "darwin" {
		return "osx"
	}
	return goos
}

// Arch returns the current architecture in the naming used by library
// rules and native classifiers
func Arch() string {
	return archFor(runtime.GOARCH)
}

func archFor(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm":
		return "arm32"
	case "arm64":
		return "arm64"
	}
	return goarch
}

// IsARMLinux reports whether we are on 64-bit ARM Linux, the platform
// mojang does not ship natives or java runtimes for
func IsARMLinux() bool {
	return runtime.GOOS == "linux" && runtime.GOARCH == "arm64"
}

// ruleTarget is the string library rules are matched against: plain OS
// name on x86_64, "<os>-<arch>" on everything else
func ruleTarget(os string, arch string) string {
	if arch == "x86_64" {
		return os
	}
	return os + "-" + arch
}

// NativesKey is the key old libraries' "natives" maps are looked up
// with. Same shape as rule targets: plain OS name on x86_64,
// "<os>-<arch>" on everything else.
func NativesKey() string {
	return ruleTarget(OSName(), Arch())
}

// NativeKeyMatches reports whether a classifiers key names natives
// for the current platform
func NativeKeyMatches(key string) bool {
	if key == nativeClassifier(OSName(), Arch()) {
		return true
	}
	// very old libs spell 64-bit windows out
	return OSName() == "windows" && Arch() == "x86_64" && key == "natives-windows-64"
}

// nativeClassifier returns the natives-* key for the given platform
func nativeClassifier(os string, arch string) string {
	switch {
	case os == "windows" && arch == "x86":
		return "natives-windows-32"
	case os == "windows":
		return "natives-windows"
	case arch == "x86_64":
		return "natives-" + os
	default:
		return "natives-" + os + "-" + arch
	}
}
