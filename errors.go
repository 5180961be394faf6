package modelreg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyRegistry indicates that no model descriptor exists under ModelsDir.
var ErrEmptyRegistry = errors.New("no model.json entries found under models/")

// InvalidJSONError is returned when a document cannot be read or is not
// well-formed JSON. Read and parse failures are deliberately not distinguished.
type InvalidJSONError struct {
	// Path is the offending file, relative to the repository root.
	Path string
	// Err is the underlying read or parse error.
	Err error
}

func (e *InvalidJSONError) Error() string {
	return "invalid_json: " + e.Path
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a model or version descriptor violates a
// field rule: missing or mistyped field, bad enum value, or a malformed
// timestamp, version, digest or size.
type SchemaError struct {
	// Path is the offending file.
	Path string
	// Field is the JSON field path, e.g. "owner.displayName". Empty when the
	// document itself is not an object.
	Field string
	// Reason describes the violated rule.
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema violation in %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("schema violation in %s: %s: %s", e.Path, e.Field, e.Reason)
}

// Rule names a cross-reference rule.
type Rule string

const (
	// RuleModalityFolder: the folder below models/ must equal the declared modality.
	RuleModalityFolder Rule = "modality-folder"
	// RulePerformanceDoc: PERFORMANCE.md must exist beside model.json.
	RulePerformanceDoc Rule = "performance-doc"
	// RuleVersionsPresent: the model must have at least one version descriptor.
	RuleVersionsPresent Rule = "versions-present"
	// RuleCurrentVersion: versions/{version}.json must exist for the declared version.
	RuleCurrentVersion Rule = "current-version"
	// RuleVersionModelID: a version's modelId must equal the owning model's id.
	RuleVersionModelID Rule = "version-model-id"
	// RuleVersionFilename: a version's file name must equal its version field.
	RuleVersionFilename Rule = "version-filename"
)

// StructuralError is returned when files disagree with each other or with
// their location in the tree.
type StructuralError struct {
	// Path is the file the rule was evaluated for.
	Path string
	// Rule is the violated rule.
	Rule Rule
	// ModelID is the owning model's id.
	ModelID string
	// Detail is the human-readable explanation.
	Detail string
}

func (e *StructuralError) Error() string {
	return e.Detail
}

// RegistryShapeError is returned when the benchmark registry is missing,
// malformed, or lacks a "benchmarks" array.
type RegistryShapeError struct {
	Path string
	Err  error
}

func (e *RegistryShapeError) Error() string {
	msg := e.Path + " must contain { benchmarks: [] }"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RegistryShapeError) Unwrap() error {
	return e.Err
}

// ValidationErrors is returned in collect-all mode and holds every failure
// in the order it was found.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d registry violations:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// Kind classifies a validation failure by the check that produced it.
type Kind int

const (
	KindOther Kind = iota
	KindInvalidJSON
	KindSchemaViolation
	KindStructuralMismatch
	KindRegistryShape
	KindEmptyRegistry
)

func (k Kind) String() string {
	switch k {
	case KindInvalidJSON:
		return "invalid_json"
	case KindSchemaViolation:
		return "schema_violation"
	case KindStructuralMismatch:
		return "structural_mismatch"
	case KindRegistryShape:
		return "registry_shape_violation"
	case KindEmptyRegistry:
		return "empty_registry"
	default:
		return "error"
	}
}

// KindOf returns the Kind of err. A *ValidationErrors reports the kind of
// its first error.
func KindOf(err error) Kind {
	if first := firstOf(err); first != err {
		return KindOf(first)
	}
	var (
		jsonErr   *InvalidJSONError
		schemaErr *SchemaError
		structErr *StructuralError
		shapeErr  *RegistryShapeError
	)
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrEmptyRegistry):
		return KindEmptyRegistry
	case errors.As(err, &jsonErr):
		return KindInvalidJSON
	case errors.As(err, &schemaErr):
		return KindSchemaViolation
	case errors.As(err, &structErr):
		return KindStructuralMismatch
	case errors.As(err, &shapeErr):
		return KindRegistryShape
	default:
		return KindOther
	}
}

// PathOf returns the file path carried by err, or "" if it has none.
func PathOf(err error) string {
	if first := firstOf(err); first != err {
		return PathOf(first)
	}
	var (
		jsonErr   *InvalidJSONError
		schemaErr *SchemaError
		structErr *StructuralError
		shapeErr  *RegistryShapeError
	)
	switch {
	case errors.As(err, &jsonErr):
		return jsonErr.Path
	case errors.As(err, &schemaErr):
		return schemaErr.Path
	case errors.As(err, &structErr):
		return structErr.Path
	case errors.As(err, &shapeErr):
		return shapeErr.Path
	case errors.Is(err, ErrEmptyRegistry):
		return ModelsDir
	default:
		return ""
	}
}

// firstOf unwraps a non-empty *ValidationErrors to its first error.
func firstOf(err error) error {
	var verrs *ValidationErrors
	if errors.As(err, &verrs) && len(verrs.Errors) > 0 {
		return verrs.Errors[0]
	}
	return err
}
