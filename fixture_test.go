package modelreg

import (
	"fmt"
	"path"
	"testing"

	"github.com/spf13/afero"
)

// fixture builds an in-memory registry repository.
type fixture struct {
	t  *testing.T
	fs afero.Fs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, fs: afero.NewMemMapFs()}
}

func (f *fixture) write(p, content string) {
	f.t.Helper()
	if err := afero.WriteFile(f.fs, p, []byte(content), 0o644); err != nil {
		f.t.Fatal(err)
	}
}

func (f *fixture) remove(p string) {
	f.t.Helper()
	if err := f.fs.Remove(p); err != nil {
		f.t.Fatal(err)
	}
}

func modelDir(modality, id string) string {
	return path.Join(ModelsDir, modality, id)
}

// addModel writes a complete, valid model: descriptor, PERFORMANCE.md and
// one version descriptor for each version (the first is the current one).
func (f *fixture) addModel(modality, id string, versions ...string) {
	f.t.Helper()
	dir := modelDir(modality, id)
	f.write(path.Join(dir, ModelFileName), modelJSON(id, modality, versions[0]))
	f.write(path.Join(dir, PerformanceFileName), "# "+id+"\n")
	for _, v := range versions {
		f.write(path.Join(dir, VersionsDirName, v+".json"), versionJSON(id, v))
	}
}

func (f *fixture) benchmarks(content string) {
	f.t.Helper()
	f.write(BenchmarkRegistryPath, content)
}

// validRepo returns the smallest registry that passes validation.
func validRepo(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.addModel("text", "acme-1", "1.0.0")
	f.benchmarks(`{"benchmarks": []}`)
	return f
}

func modelJSON(id, modality, version string) string {
	return fmt.Sprintf(`{
  "id": %q,
  "name": "Model %s",
  "modality": %q,
  "owner": {"contributorId": "contrib-%s", "displayName": "Owner of %s"},
  "createdAt": "2024-01-15T09:30:00Z",
  "version": %q
}`, id, id, modality, id, id, version)
}

func versionJSON(modelID, version string) string {
	return fmt.Sprintf(`{
  "modelId": %q,
  "version": %q,
  "releasedAt": "2024-02-01T00:00:00Z",
  "artifact": {
    "uri": "https://artifacts.example.com/%s/%s.safetensors",
    "digest": "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
    "sizeBytes": 2048
  }
}`, modelID, version, modelID, version)
}
