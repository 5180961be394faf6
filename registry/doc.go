// Package registry provides types and validation for model registry documents.
//
// A model registry is a plain directory tree of JSON documents. This package
// knows the shape of each document kind and nothing about where the files
// live; path-level cross checks belong to the parent package.
//
// # Registry Structure
//
// A model registry follows a standard layout:
//
//	repo/
//	├── benchmarks/
//	│   └── benchmark-registry.json   # { "benchmarks": [...] }
//	└── models/
//	    └── {modality}/
//	        └── {model-id}/
//	            ├── model.json        # Model descriptor
//	            ├── PERFORMANCE.md    # Performance notes (not parsed)
//	            └── versions/
//	                └── {version}.json  # Version descriptor
//
// # Usage
//
// Validate a decoded document:
//
//	var doc any
//	_ = json.Unmarshal(data, &doc)
//	model, err := registry.DecodeModelEntry(doc)
//	if err != nil {
//	    // err is a *ValidationErrors listing every failing field
//	}
//
// Validate raw bytes:
//
//	validator := registry.NewValidator()
//	reg, err := validator.ValidateBenchmarkRegistry(jsonData)
package registry
