package minecraft

import "runtime"

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be
// applied on a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to
// determine if it should be applied.
type OS struct {
	Name string `json:"name,omitempty"`
	// Version of the os (can be a regex string)
	Version string `json:"version,omitempty"`
	// Arch of the system
	Arch string `json:"arch,omitempty"`
}

// EvaluateRules runs an ordered rule list against the current platform
func EvaluateRules(rules []Rule) bool {
	return evaluateRulesFor(rules, osNameFor(runtime.GOOS), archFor(runtime.GOARCH))
}

// evaluateRulesFor is the rule algorithm used for libraries:
// no rules at all means allowed. With rules present the default flips
// to disallowed, then rules apply in order. A rule without an OS
// predicate applies unconditionally; one with an OS predicate applies
// only when it matches this platform, and a matching disallow is
// final, later rules can not re-enable the library.
func evaluateRulesFor(rules []Rule, os string, arch string) bool {
	if len(rules) == 0 {
		return true
	}

	target := ruleTarget(os, arch)

	allowed := false
	for _, rule := range rules {
		if rule.OS == nil {
			allowed = rule.Action == "allow"
			continue
		}
		if rule.OS.Name != target {
			continue
		}
		allowed = rule.Action == "allow"
		if !allowed {
			break
		}
	}
	return allowed
}
