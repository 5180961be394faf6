package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// benchmarkRegistrySchema is the embedded benchmark-registry JSON schema.
//
//go:embed schemas/benchmark-registry.schema.json
var benchmarkRegistrySchema []byte

// Validator validates raw benchmark registry documents against an embedded
// JSON schema, since only its top-level shape is owned by this package.
// Model and version descriptors are checked by DecodeModelEntry and
// DecodeVersionEntry.
type Validator struct {
	benchmarks *gojsonschema.Schema
}

// NewValidator compiles the embedded benchmark registry schema.
func NewValidator() *Validator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(benchmarkRegistrySchema))
	if err != nil {
		// The schema is embedded at build time; failing here is a programming error.
		panic(fmt.Sprintf("registry: compile embedded benchmark schema: %v", err))
	}
	return &Validator{benchmarks: schema}
}

// ValidateBenchmarkRegistry checks that data is an object holding a
// "benchmarks" array. Benchmark entries themselves are not inspected.
func (v *Validator) ValidateBenchmarkRegistry(data []byte) (*BenchmarkRegistry, error) {
	result, err := v.benchmarks.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &FieldError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if !result.Valid() {
		var errs ValidationErrors
		for _, re := range result.Errors() {
			errs.Add(schemaField(re.Field()), re.Description())
		}
		return nil, errs.ToError()
	}

	var reg BenchmarkRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, &FieldError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return &reg, nil
}

// schemaField maps gojsonschema's "(root)" marker to the empty field path.
func schemaField(field string) string {
	if field == "(root)" {
		return ""
	}
	return strings.TrimPrefix(field, "(root).")
}
