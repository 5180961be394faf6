package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelJSON(id, modality, version string) string {
	return fmt.Sprintf(`{"id": %q, "name": "Model %s", "modality": %q,
  "owner": {"contributorId": "c-%s", "displayName": "Team %s"},
  "createdAt": "2024-01-15T09:30:00Z", "version": %q}`, id, id, modality, id, id, version)
}

func versionJSON(modelID, version string) string {
	return fmt.Sprintf(`{"modelId": %q, "version": %q, "releasedAt": "2024-02-01",
  "artifact": {"uri": "s3://models/%s/%s.bin", "sizeBytes": 10}}`, modelID, version, modelID, version)
}

// newRegistry writes a valid two-model registry and returns its root.
func newRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"models/text/acme-1/model.json":            modelJSON("acme-1", "text", "1.1.0"),
		"models/text/acme-1/PERFORMANCE.md":        "# acme-1",
		"models/text/acme-1/versions/1.0.0.json":   versionJSON("acme-1", "1.0.0"),
		"models/text/acme-1/versions/1.1.0.json":   versionJSON("acme-1", "1.1.0"),
		"models/vision/lens-2/model.json":          modelJSON("lens-2", "vision", "0.3.0"),
		"models/vision/lens-2/PERFORMANCE.md":      "# lens-2",
		"models/vision/lens-2/versions/0.3.0.json": versionJSON("lens-2", "0.3.0"),
		"benchmarks/benchmark-registry.json":       `{"benchmarks": [{"id": "mmlu"}]}`,
	})
	return root
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// execute runs the command line and captures both output streams.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd("1.2.3")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidate_Success(t *testing.T) {
	root := newRegistry(t)

	stdout, stderr, err := execute(t, "validate", root, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "OK: model registry validation passed (2 models, 3 versions, 1 benchmarks).\n", stdout)
	assert.Empty(t, stderr)
}

func TestValidate_Failure(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		"models/text/acme-1/versions/1.0.0.json": versionJSON("lens-2", "1.0.0"),
	})

	stdout, stderr, err := execute(t, "validate", root, "--no-color")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Empty(t, stdout)
	assert.Equal(t,
		"FAIL [structural_mismatch] version.modelId mismatch: models/text/acme-1/versions/1.0.0.json (modelId=lens-2, model=acme-1)\n",
		stderr)
}

func TestValidate_CollectAll(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		"models/text/acme-1/versions/1.0.0.json": versionJSON("lens-2", "1.0.0"),
		"benchmarks/benchmark-registry.json":     `{"benchmarks": {}}`,
	})
	require.NoError(t, os.Remove(filepath.Join(root, "models/vision/lens-2/PERFORMANCE.md")))

	_, stderr, err := execute(t, "validate", root, "--all", "--no-color")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 4, stderr)
	assert.Contains(t, lines[0], "version.modelId mismatch")
	assert.Contains(t, lines[1], "PERFORMANCE.md missing for lens-2")
	assert.Contains(t, lines[2], "[registry_shape_violation]")
	assert.Equal(t, "3 registry violations", lines[3])
}

func TestValidate_MaxErrors(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		"models/text/acme-1/versions/1.0.0.json": versionJSON("lens-2", "1.0.0"),
		"benchmarks/benchmark-registry.json":     `{"benchmarks": {}}`,
	})

	_, stderr, err := execute(t, "validate", root, "--all", "--max-errors", "1", "--no-color")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(stderr, "FAIL"), stderr)

	_, _, err = execute(t, "validate", root, "--max-errors", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxErrors requires collectAll")
}

func TestValidate_JSON(t *testing.T) {
	root := newRegistry(t)

	stdout, _, err := execute(t, "validate", root, "--format", "json")
	require.NoError(t, err)

	var res struct {
		OK     bool `json:"ok"`
		Models []struct {
			ID       string   `json:"id"`
			Versions []string `json:"versions"`
		} `json:"models"`
		Benchmarks int `json:"benchmarks"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.True(t, res.OK)
	require.Len(t, res.Models, 2)
	assert.Equal(t, "acme-1", res.Models[0].ID)
	assert.Equal(t, []string{"1.0.0", "1.1.0"}, res.Models[0].Versions)
	assert.Equal(t, 1, res.Benchmarks)
}

func TestValidate_JSONFailure(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		"benchmarks/benchmark-registry.json": `{"benchmarks": {}}`,
	})

	stdout, stderr, err := execute(t, "validate", root, "--format", "json")
	require.Error(t, err)
	assert.Empty(t, stderr)

	var res struct {
		OK     bool `json:"ok"`
		Errors []struct {
			Kind    string `json:"kind"`
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.False(t, res.OK)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "registry_shape_violation", res.Errors[0].Kind)
	assert.Equal(t, "benchmarks/benchmark-registry.json", res.Errors[0].Path)
	assert.Contains(t, res.Errors[0].Message, "must contain { benchmarks: [] }")
	assert.NotContains(t, stdout, `"models"`)
}

func TestValidate_MissingRoot(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "scan failures are not registry violations")
	assert.Contains(t, err.Error(), "scan models")
}

func TestValidate_StrictVersionLayout(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		"models/text/acme-1/versions/old/0.9.0.json": versionJSON("acme-1", "0.9.0"),
	})

	stdout, _, err := execute(t, "list", root, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "acme-1  text      1.1.0    3")

	stdout, _, err = execute(t, "list", root, "--no-color", "--strict-version-layout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "acme-1  text      1.1.0    2")
}

func TestList(t *testing.T) {
	root := newRegistry(t)

	stdout, _, err := execute(t, "ls", root)
	require.NoError(t, err)

	want := "" +
		"ID      MODALITY  VERSION  RELEASES  OWNER\n" +
		"acme-1  text      1.1.0    2         Team acme-1\n" +
		"lens-2  vision    0.3.0    1         Team lens-2\n"
	assert.Equal(t, want, stdout)
}

func TestList_InvalidRegistry(t *testing.T) {
	root := newRegistry(t)
	require.NoError(t, os.Remove(filepath.Join(root, "models/text/acme-1/versions/1.1.0.json")))

	stdout, stderr, err := execute(t, "list", root, "--no-color")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "missing versions/1.1.0.json for model acme-1")
}

func TestConfigFile(t *testing.T) {
	root := newRegistry(t)
	cfgPath := filepath.Join(root, "modelreg.yaml")
	writeFiles(t, root, map[string]string{
		"modelreg.yaml": "root: .\nformat: json\n",
	})

	t.Run("config root and format", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", "--config", cfgPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "{"), stdout)
	})

	t.Run("flag overrides config", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", "--config", cfgPath, "--format", "text", "--no-color")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "OK: "), stdout)
	})

	t.Run("argument overrides config root", func(t *testing.T) {
		_, _, err := execute(t, "validate", t.TempDir(), "--config", cfgPath)
		require.Error(t, err)
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		_, _, err := execute(t, "validate", root, "--config", filepath.Join(root, "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("flag completes config", func(t *testing.T) {
		limited := filepath.Join(root, "limited.yaml")
		writeFiles(t, root, map[string]string{"limited.yaml": "maxErrors: 5\n"})

		stdout, _, err := execute(t, "validate", root, "--config", limited, "--all", "--no-color")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "OK: "), stdout)

		_, _, err = execute(t, "validate", root, "--config", limited)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxErrors requires collectAll")
	})

	t.Run("flag fixes invalid config value", func(t *testing.T) {
		badFormat := filepath.Join(root, "xml.yaml")
		writeFiles(t, root, map[string]string{"xml.yaml": "format: xml\n"})

		stdout, _, err := execute(t, "validate", root, "--config", badFormat, "--format", "text", "--no-color")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "OK: "), stdout)
	})

	t.Run("invalid format flag", func(t *testing.T) {
		_, _, err := execute(t, "validate", root, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}

func TestDefaultConfigFile(t *testing.T) {
	root := newRegistry(t)
	writeFiles(t, root, map[string]string{
		".modelreg.yaml": "format: json\n",
	})
	t.Chdir(root)

	stdout, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "{"), stdout)
}

func TestVerbose(t *testing.T) {
	root := newRegistry(t)

	_, stderr, err := execute(t, "validate", root, "-v", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stderr, "validating registry")
	assert.Contains(t, stderr, "validated model")
	assert.Contains(t, stderr, "registry validation passed")

	_, stderr, err = execute(t, "validate", root, "--no-color")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "modelreg 1.2.3 ("), stdout)
}

func TestUnknownArgs(t *testing.T) {
	_, _, err := execute(t, "validate", "a", "b")
	require.Error(t, err)
}
