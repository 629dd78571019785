package minecraft

import "testing"

func TestNamedNativeRemap(t *testing.T) {
	lib := Lib{Name: "org.lwjgl:lwjgl-glfw:3.2.2:natives-linux-x86_64"}
	artifact, ok := namedNativeRemapFor(lib)
	if !ok {
		t.Fatal("expected a replacement for a known lwjgl build")
	}
	wantURL := arm64LwjglBaseURL + "lwjgl-3.2.2/lwjgl-glfw-natives-linux-arm64.jar"
	if artifact.URL != wantURL {
		t.Errorf("url = %q, want %q", artifact.URL, wantURL)
	}
	wantPath := "org/lwjgl/lwjgl-glfw/3.2.2/lwjgl-glfw-natives-linux-arm64.jar"
	if artifact.Path != wantPath {
		t.Errorf("path = %q, want %q", artifact.Path, wantPath)
	}
}

func TestNamedNativeRemapUnknownLibrary(t *testing.T) {
	tests := []string{
		"com.example:foo-natives-x86:1.0",
		"org.lwjgl:lwjgl-glfw:9.9.9",
	}
	for _, name := range tests {
		if _, ok := namedNativeRemapFor(Lib{Name: name}); ok {
			t.Errorf("%s: must not be remapped", name)
		}
	}
}

func TestARM64ReplacementVersionWithClassifier(t *testing.T) {
	lib := Lib{Name: "org.lwjgl:lwjgl:3.3.1:natives-linux"}
	replaced, ok := arm64Replacement(lib)
	if !ok {
		t.Fatal("expected a replacement")
	}
	artifact := replaced.Downloads.Classifiers["natives-linux-arm64"]
	if artifact.URL != arm64LwjglBaseURL+"lwjgl-3.3.1/lwjgl-natives-linux-arm64.jar" {
		t.Errorf("url = %q", artifact.URL)
	}
}
