package registry

import (
	"encoding/json"
	"slices"
)

// Modality classifies a model's input/output type.
type Modality string

const (
	ModalityText       Modality = "text"
	ModalityVision     Modality = "vision"
	ModalityMultimodal Modality = "multimodal"
)

// Modalities returns every accepted modality, in declaration order.
func Modalities() []Modality {
	return []Modality{ModalityText, ModalityVision, ModalityMultimodal}
}

// IsValid returns true if m is one of the accepted modalities.
func (m Modality) IsValid() bool {
	return slices.Contains(Modalities(), m)
}

// ModelEntry represents a model.json descriptor.
type ModelEntry struct {
	// ID identifies the model across the registry.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Modality must match the folder the descriptor lives under.
	Modality Modality `json:"modality"`

	// Owner is the contributor responsible for the model.
	Owner Owner `json:"owner"`

	// CreatedAt is the creation timestamp as written in the document.
	CreatedAt string `json:"createdAt"`

	// Version is the current published version. A versions/{Version}.json
	// descriptor must exist next to the model descriptor.
	Version string `json:"version"`
}

// Owner identifies the contributor that owns a model.
type Owner struct {
	ContributorID string `json:"contributorId"`
	DisplayName   string `json:"displayName"`
}

// VersionEntry represents a versions/{version}.json descriptor.
type VersionEntry struct {
	// ModelID must equal the owning model's ID.
	ModelID string `json:"modelId"`

	// Version must equal the descriptor's file name without extension.
	Version string `json:"version"`

	// ReleasedAt is the release timestamp as written in the document.
	ReleasedAt string `json:"releasedAt"`

	// Artifact locates the released build.
	Artifact Artifact `json:"artifact"`
}

// Artifact points at a released model artifact. Only the format of Digest
// and SizeBytes is checked; the URI is never fetched.
type Artifact struct {
	URI string `json:"uri"`

	// Digest is "sha256:<64 hex>" when present.
	Digest string `json:"digest,omitempty"`

	// SizeBytes is nil when the document omits it.
	SizeBytes *float64 `json:"sizeBytes,omitempty"`
}

// BenchmarkRegistry represents benchmarks/benchmark-registry.json.
// Entries are kept raw; their schema is owned by the benchmark tooling.
type BenchmarkRegistry struct {
	Benchmarks []json.RawMessage `json:"benchmarks"`
}

// Len returns the number of benchmark entries.
func (r *BenchmarkRegistry) Len() int {
	return len(r.Benchmarks)
}
