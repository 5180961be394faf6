package registry

import (
	"errors"
	"testing"
)

func TestValidator_ValidateBenchmarkRegistry(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		json    string
		wantErr bool
		wantLen int
	}{
		{
			name:    "empty list",
			json:    `{"benchmarks": []}`,
			wantLen: 0,
		},
		{
			name: "entries are not inspected",
			json: `{
				"benchmarks": [
					{"id": "mmlu", "anything": true},
					42,
					"free-form"
				],
				"updatedAt": "2024-01-01"
			}`,
			wantLen: 3,
		},
		{
			name:    "benchmarks is an object",
			json:    `{"benchmarks": {}}`,
			wantErr: true,
		},
		{
			name:    "benchmarks is null",
			json:    `{"benchmarks": null}`,
			wantErr: true,
		},
		{
			name:    "missing benchmarks",
			json:    `{"items": []}`,
			wantErr: true,
		},
		{
			name:    "top level array",
			json:    `[]`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			json:    `{invalid`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := v.ValidateBenchmarkRegistry([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBenchmarkRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if reg.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", reg.Len(), tt.wantLen)
			}
		})
	}
}

func TestValidator_ValidateBenchmarkRegistry_FieldPath(t *testing.T) {
	v := NewValidator()

	_, err := v.ValidateBenchmarkRegistry([]byte(`{"benchmarks": {}}`))
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *ValidationErrors, got %T: %v", err, err)
	}
	if got := verrs.First().Field; got != "benchmarks" {
		t.Errorf("Field = %q, want %q", got, "benchmarks")
	}
}

func TestValidator_Reuse(t *testing.T) {
	v := NewValidator()

	for range 3 {
		if _, err := v.ValidateBenchmarkRegistry([]byte(`{"benchmarks": []}`)); err != nil {
			t.Errorf("ValidateBenchmarkRegistry() error: %v", err)
		}
	}
}
