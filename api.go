// Package modelreg validates the internal consistency of a file-based model
// registry before it is published or merged.
//
// # Overview
//
// A registry is a repository holding a models/ tree and a benchmark registry:
//
//	models/{modality}/{model-id}/model.json
//	models/{modality}/{model-id}/PERFORMANCE.md
//	models/{modality}/{model-id}/versions/{version}.json
//	benchmarks/benchmark-registry.json
//
// Validation runs in a single sequential pass:
//
//   - Scan: list every file below models/
//   - Load: parse each model and version descriptor as JSON
//   - Schema: check required fields and formats (see package registry)
//   - Cross-reference: folder must match modality, PERFORMANCE.md must exist,
//     the current version must have a descriptor, and every version descriptor
//     must agree with its owning model and its own file name
//   - Benchmarks: the benchmark registry must hold a "benchmarks" array
//
// # Quick Start
//
//	report, err := modelreg.Validate(ctx, "/path/to/repo")
//	if err != nil {
//	    fmt.Println(modelreg.KindOf(err), err)
//	    os.Exit(1)
//	}
//	fmt.Printf("%d models OK\n", len(report.Models))
//
// # Failure Handling
//
// Validation is fail-fast: the first failure aborts the run and is returned as
// one of *InvalidJSONError, *SchemaError, *StructuralError,
// *RegistryShapeError or ErrEmptyRegistry. WithCollectAll switches to
// reporting every failure at once through *ValidationErrors.
//
// Validation only reads; it never modifies the tree and never fetches
// artifact URIs.
package modelreg

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/go-modelreg/registry"
)

// Validate checks the registry in the repository rooted at root.
//
// On success it returns a Report describing every model. On failure it
// returns a nil Report and the first failure found, or every failure when
// WithCollectAll is set.
func Validate(ctx context.Context, root string, opts ...Option) (*Report, error) {
	// BasePathFs rejects every name under a relative base such as ".".
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve registry root %s: %w", root, err)
	}
	report, err := ValidateFS(ctx, afero.NewBasePathFs(afero.NewOsFs(), abs), opts...)
	if err != nil {
		return nil, err
	}
	report.Root = root
	return report, nil
}

// ValidateFS checks the registry held by fsys, whose root is the repository root.
// Use afero.NewMemMapFs for in-memory registries.
func ValidateFS(ctx context.Context, fsys afero.Fs, opts ...Option) (*Report, error) {
	cfg, err := newValidatorConfig(opts...)
	if err != nil {
		return nil, err
	}
	v := &validator{
		fs:      fsys,
		cfg:     cfg,
		log:     cfg.log(),
		schemas: registry.NewValidator(),
	}
	return v.run(ctx)
}

// validator holds the state of a single validation run.
type validator struct {
	fs      afero.Fs
	cfg     *validatorConfig
	log     *slog.Logger
	schemas *registry.Validator

	// failures collects errors in collect-all mode.
	failures []error
}

func (v *validator) run(ctx context.Context) (*Report, error) {
	files, err := scanTree(v.fs, ModelsDir)
	if err != nil {
		return nil, err
	}
	modelFiles, versionFiles := partitionFiles(files)
	v.log.Debug("scanned registry",
		"files", len(files),
		"models", len(modelFiles),
		"versions", len(versionFiles))

	report := &Report{}
	if len(modelFiles) == 0 {
		if err := v.fail(ErrEmptyRegistry); err != nil {
			return nil, err
		}
	}

	for _, mf := range modelFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := v.checkModel(mf, versionFiles)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			report.Models = append(report.Models, *summary)
		}
	}

	n, err := v.checkBenchmarkRegistry()
	if err != nil {
		if err := v.fail(err); err != nil {
			return nil, err
		}
	}
	report.Benchmarks = n

	if len(v.failures) > 0 {
		return nil, &ValidationErrors{Errors: v.failures}
	}

	v.log.Info("registry validation passed",
		"models", len(report.Models),
		"versions", report.VersionCount(),
		"benchmarks", report.Benchmarks)
	return report, nil
}
