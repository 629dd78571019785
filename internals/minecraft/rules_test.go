package minecraft

import "testing"

func TestEvaluateRulesFor(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		os    string
		arch  string
		want  bool
	}{
		{
			name: "no rules",
			os:   "linux", arch: "x86_64",
			want: true,
		},
		{
			name:  "bare allow",
			rules: []Rule{{Action: "allow"}},
			os:    "linux", arch: "x86_64",
			want: true,
		},
		{
			name:  "bare disallow",
			rules: []Rule{{Action: "disallow"}},
			os:    "linux", arch: "x86_64",
			want: false,
		},
		{
			name: "allow then disallow osx, on osx",
			rules: []Rule{
				{Action: "allow"},
				{Action: "disallow", OS: &OS{Name: "osx"}},
			},
			os: "osx", arch: "x86_64",
			want: false,
		},
		{
			name: "allow then disallow osx, on linux",
			rules: []Rule{
				{Action: "allow"},
				{Action: "disallow", OS: &OS{Name: "osx"}},
			},
			os: "linux", arch: "x86_64",
			want: true,
		},
		{
			name: "matching disallow is final",
			rules: []Rule{
				{Action: "disallow", OS: &OS{Name: "linux"}},
				{Action: "allow"},
			},
			os: "linux", arch: "x86_64",
			want: false,
		},
		{
			name:  "allow for other os only",
			rules: []Rule{{Action: "allow", OS: &OS{Name: "osx"}}},
			os:    "linux", arch: "x86_64",
			want: false,
		},
		{
			name:  "arch suffixed target",
			rules: []Rule{{Action: "allow", OS: &OS{Name: "linux-arm64"}}},
			os:    "linux", arch: "arm64",
			want: true,
		},
		{
			name:  "plain os name does not match arm target",
			rules: []Rule{{Action: "allow", OS: &OS{Name: "linux"}}},
			os:    "linux", arch: "arm64",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateRulesFor(tt.rules, tt.os, tt.arch); got != tt.want {
				t.Errorf("evaluateRulesFor() = %v, want %v", got, tt.want)
			}
		})
	}

	// determinism: evaluating twice yields the same result
	rules := []Rule{{Action: "allow"}, {Action: "disallow", OS: &OS{Name: "osx"}}}
	first := evaluateRulesFor(rules, "osx", "x86_64")
	second := evaluateRulesFor(rules, "osx", "x86_64")
	if first != second {
		t.Error("rule evaluation is not deterministic")
	}
}

func TestLibAllowedClassifierWins(t *testing.T) {
	lib := Lib{
		Name:  "org.lwjgl:lwjgl:3.2.2",
		Rules: []Rule{{Action: "disallow"}},
	}
	lib.Downloads.Classifiers = map[string]Artifact{
		"natives-linux": {URL: "https://example.com/x.jar"},
	}

	if !lib.allowedFor("linux", "x86_64") {
		t.Error("native classifier for the current os must force allowed = true")
	}
	if lib.allowedFor("windows", "x86_64") {
		t.Error("classifier for another os must not force allow")
	}
}

func TestDedupKey(t *testing.T) {
	tests := []struct {
		coordinate string
		want       string
	}{
		{"org.lwjgl:lwjgl:3.2.2", "org.lwjgl:lwjgl"},
		{"com.google.guava:guava:21.0", "com.google.guava:guava"},
		{"broken", ""},
	}
	for _, tt := range tests {
		if got := DedupKey(tt.coordinate); got != tt.want {
			t.Errorf("DedupKey(%q) = %q, want %q", tt.coordinate, got, tt.want)
		}
	}
}

func TestSpliceARM64LibrariesNoopElsewhere(t *testing.T) {
	if IsARMLinux() {
		t.Skip("running on arm linux")
	}
	libs := Libraries{{Name: "org.lwjgl:lwjgl:3.2.2"}}
	out := SpliceARM64Libraries(libs)
	if len(out) != 1 || out[0].Downloads.Classifiers != nil {
		t.Error("splice must be a no-op off arm linux")
	}
}
