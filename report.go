package modelreg

import (
	"slices"
	"time"

	"github.com/albertocavalcante/go-modelreg/label"
	"github.com/albertocavalcante/go-modelreg/registry"
)

// Report summarizes a successful validation run.
type Report struct {
	// Root is the repository root that was validated. Empty for ValidateFS.
	Root string `json:"root,omitempty"`

	// Models lists every validated model in scan order.
	Models []ModelSummary `json:"models"`

	// Benchmarks is the number of entries in the benchmark registry.
	Benchmarks int `json:"benchmarks"`
}

// ModelSummary describes one validated model and its released versions.
type ModelSummary struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Modality registry.Modality `json:"modality"`
	Owner    registry.Owner    `json:"owner"`

	// Path is the model descriptor, slash-separated and relative to the repository root.
	Path string `json:"path"`

	// CreatedAt is the model's creation time.
	CreatedAt time.Time `json:"createdAt"`

	// Version is the current version declared by the model.
	Version string `json:"version"`

	// Versions lists every version descriptor, lowest precedence first.
	Versions []string `json:"versions"`

	// Latest is the highest version that is not a pre-release. Empty when
	// every version is a pre-release.
	Latest string `json:"latest,omitempty"`
}

// VersionCount returns the total number of version descriptors across all models.
func (r *Report) VersionCount() int {
	n := 0
	for _, m := range r.Models {
		n += len(m.Versions)
	}
	return n
}

// Model returns the summary for id, or nil.
func (r *Report) Model(id string) *ModelSummary {
	for i := range r.Models {
		if r.Models[i].ID == id {
			return &r.Models[i]
		}
	}
	return nil
}

// sortVersions orders versions by precedence. Inputs have passed schema
// validation, so parsing cannot fail.
func sortVersions(versions []string) []label.Version {
	parsed := make([]label.Version, 0, len(versions))
	for _, v := range versions {
		parsed = append(parsed, label.MustVersion(v))
	}
	slices.SortStableFunc(parsed, func(a, b label.Version) int {
		return a.Compare(b)
	})
	return parsed
}

// latestRelease returns the last non-pre-release entry of sorted.
func latestRelease(sorted []label.Version) string {
	for _, v := range slices.Backward(sorted) {
		if !v.IsPrerelease() {
			return v.String()
		}
	}
	return ""
}

func versionStrings(versions []label.Version) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out
}
