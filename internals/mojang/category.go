package mojang

import "strings"

// Category is a historical era of game versions with its own naming
// convention. Very old releases are often requested under informal
// names, so each category maps to a manifest id prefix (or, for the
// single-build eras, one hard-coded id).
type Category uint8

const (
	CategoryNone Category = iota
	CategoryPreClassic
	CategoryClassic
	CategoryIndev
	CategoryInfdev
	CategoryAlpha
	CategoryBeta
)

// CategoryOf guesses the historical category a version name belongs to
func CategoryOf(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "rd-") || strings.Contains(lower, "pre-classic"):
		return CategoryPreClassic
	case strings.HasPrefix(lower, "inf-") || strings.Contains(lower, "infdev"):
		return CategoryInfdev
	case strings.HasPrefix(lower, "in-") || strings.Contains(lower, "indev"):
		return CategoryIndev
	case strings.HasPrefix(lower, "c0.") || strings.Contains(lower, "classic"):
		return CategoryClassic
	case strings.HasPrefix(lower, "a1.") || strings.Contains(lower, "alpha"):
		return CategoryAlpha
	case strings.HasPrefix(lower, "b1.") || strings.Contains(lower, "beta"):
		return CategoryBeta
	}
	return CategoryNone
}

func (c Category) prefix() string {
	switch c {
	case CategoryPreClassic:
		return "rd-"
	case CategoryClassic:
		return "c0."
	case CategoryAlpha:
		return "a1."
	case CategoryBeta:
		return "b1."
	}
	return ""
}

// exactID returns the hard-coded manifest id for the two categories
// that only ever had a single distributable build
func (c Category) exactID() (string, bool) {
	switch c {
	case CategoryIndev:
		return "c0.30_01c", true
	case CategoryInfdev:
		return "inf-20100618", true
	}
	return "", false
}

func (c Category) String() string {
	switch c {
	case CategoryPreClassic:
		return "pre-classic"
	case CategoryClassic:
		return "classic"
	case CategoryIndev:
		return "indev"
	case CategoryInfdev:
		return "infdev"
	case CategoryAlpha:
		return "alpha"
	case CategoryBeta:
		return "beta"
	}
	return "none"
}
