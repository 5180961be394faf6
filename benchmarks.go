package modelreg

import (
	"github.com/spf13/afero"
)

// checkBenchmarkRegistry loads the benchmark registry and checks its top-level
// shape. It returns the number of benchmark entries.
func (v *validator) checkBenchmarkRegistry() (int, error) {
	data, err := afero.ReadFile(v.fs, BenchmarkRegistryPath)
	if err != nil {
		return 0, &RegistryShapeError{Path: BenchmarkRegistryPath, Err: err}
	}
	reg, err := v.schemas.ValidateBenchmarkRegistry(data)
	if err != nil {
		return 0, &RegistryShapeError{Path: BenchmarkRegistryPath, Err: err}
	}
	v.log.Debug("validated benchmark registry", "path", BenchmarkRegistryPath, "benchmarks", reg.Len())
	return reg.Len(), nil
}
