package label

import (
	"fmt"
	"regexp"
	"strings"
)

// Version represents a validated registry version.
// Format: MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]
//
// The grammar is the permissive one commonly used for SemVer checks:
// numeric parts may carry leading zeros, and pre-release/build identifiers
// are dot-separated runs of [0-9A-Za-z-].
type Version struct {
	raw string

	// Numeric parts are kept as digit strings without leading zeros so
	// arbitrarily large numbers still order correctly.
	major string
	minor string
	patch string

	prerelease string
	build      string
}

// versionRegex matches registry versions.
// The regex captures: major, minor, patch, prerelease, build
var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

// NewVersion creates a validated Version from a string.
func NewVersion(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version %q: must be MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]", s)
	}

	return Version{
		raw:        s,
		major:      trimZeros(matches[1]),
		minor:      trimZeros(matches[2]),
		patch:      trimZeros(matches[3]),
		prerelease: matches[4],
		build:      matches[5],
	}, nil
}

// MustVersion creates a Version or panics. Use only for constants/tests.
func MustVersion(s string) Version {
	v, err := NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsVersion reports whether s is a valid registry version.
func IsVersion(s string) bool {
	return versionRegex.MatchString(s)
}

// String returns the version string.
func (v Version) String() string {
	return v.raw
}

// IsPrerelease returns true if this is a pre-release version.
func (v Version) IsPrerelease() bool {
	return v.prerelease != ""
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// Pre-release versions are considered less than release versions.
func (v Version) Compare(other Version) int {
	if c := compareNumeric(v.major, other.major); c != 0 {
		return c
	}
	if c := compareNumeric(v.minor, other.minor); c != 0 {
		return c
	}
	if c := compareNumeric(v.patch, other.patch); c != 0 {
		return c
	}

	if v.prerelease == "" && other.prerelease != "" {
		return 1
	}
	if v.prerelease != "" && other.prerelease == "" {
		return -1
	}
	if v.prerelease != other.prerelease {
		return comparePrerelease(v.prerelease, other.prerelease)
	}

	// Build metadata does not affect precedence
	return 0
}

func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareNumeric orders two digit strings without leading zeros by value.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		return intCompare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func comparePrerelease(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := range min(len(aParts), len(bParts)) {
		aIsNum := isNumeric(aParts[i])
		bIsNum := isNumeric(bParts[i])

		if aIsNum && bIsNum {
			if c := compareNumeric(trimZeros(aParts[i]), trimZeros(bParts[i])); c != 0 {
				return c
			}
		} else if aIsNum {
			return -1 // Numeric < alphanumeric
		} else if bIsNum {
			return 1
		} else {
			if c := strings.Compare(aParts[i], bParts[i]); c != 0 {
				return c
			}
		}
	}

	return intCompare(len(aParts), len(bParts))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimZeros(s string) string {
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}
	return "0"
}
