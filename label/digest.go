// Package label provides strongly-typed, validated value types for registry documents.
//
// All types in this package validate their input at construction time.
//
// # Types
//
// The main types are:
//   - [Version]: A semantic version (e.g., "1.2.3", "1.2.3-beta.1", "1.2.3+build.7")
//   - [Digest]: A content digest of the form "sha256:<64 hex>"
//   - [Timestamp]: A calendar date/time in ISO or common free-form notation
//
// # Validation Patterns
//
// Versions must match: \d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?
// Digests must match (case-insensitive): sha256:[0-9a-f]{64}
package label

import (
	_ "crypto/sha256" // registers the hash behind digest.SHA256
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Digest is a validated sha256 content digest, normalized to lower case.
type Digest struct {
	d digest.Digest
}

// ParseDigest validates s as "sha256:" followed by exactly 64 hex characters.
// Matching is case-insensitive; the returned Digest is lower-cased.
func ParseDigest(s string) (Digest, error) {
	d := digest.Digest(strings.ToLower(s))
	if err := d.Validate(); err != nil {
		return Digest{}, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	if d.Algorithm() != digest.SHA256 {
		return Digest{}, fmt.Errorf("invalid digest %q: algorithm must be sha256", s)
	}
	return Digest{d: d}, nil
}

// IsDigest reports whether s is a valid sha256 digest.
func IsDigest(s string) bool {
	_, err := ParseDigest(s)
	return err == nil
}

// String returns the normalized digest string.
func (d Digest) String() string {
	return d.d.String()
}
