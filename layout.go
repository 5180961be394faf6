package modelreg

import (
	"path"
	"path/filepath"
	"strings"
)

// Registry layout. These names are part of the on-disk contract and are
// deliberately not configurable.
const (
	// ModelsDir is the registry root, relative to the repository root.
	ModelsDir = "models"

	// ModelFileName is the model descriptor file name.
	ModelFileName = "model.json"

	// PerformanceFileName is the documentation file expected beside every model descriptor.
	PerformanceFileName = "PERFORMANCE.md"

	// VersionsDirName is the directory beside model.json holding version descriptors.
	VersionsDirName = "versions"

	// BenchmarkRegistryPath is the benchmark registry document, relative to the repository root.
	BenchmarkRegistryPath = "benchmarks/benchmark-registry.json"
)

const jsonExt = ".json"

// toSlash normalizes both separator styles to forward slashes, independent
// of the platform the registry is checked on.
func toSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// isModelFile reports whether p names a model descriptor.
func isModelFile(p string) bool {
	return path.Base(toSlash(p)) == ModelFileName
}

// isVersionFile reports whether p is a .json file below a directory named
// exactly "versions".
func isVersionFile(p string) bool {
	p = toSlash(p)
	if !strings.HasSuffix(p, jsonExt) {
		return false
	}
	segments := strings.Split(path.Dir(p), "/")
	for _, s := range segments {
		if s == VersionsDirName {
			return true
		}
	}
	return false
}

// modalityFolder returns the path segment directly below ModelsDir.
// Returns "" when p is not below ModelsDir.
func modalityFolder(p string) string {
	rel, ok := strings.CutPrefix(toSlash(p), ModelsDir+"/")
	if !ok {
		return ""
	}
	folder, _, _ := strings.Cut(rel, "/")
	return folder
}

// performancePath derives the documentation path for a model descriptor.
func performancePath(modelFile string) string {
	return path.Join(path.Dir(toSlash(modelFile)), PerformanceFileName)
}

// versionsDir derives the versions directory for a model descriptor.
func versionsDir(modelFile string) string {
	return path.Join(path.Dir(toSlash(modelFile)), VersionsDirName)
}

// versionFilePath returns the descriptor path a model's current version must live at.
func versionFilePath(modelFile, version string) string {
	return path.Join(versionsDir(modelFile), version+jsonExt)
}

// versionStem returns a version descriptor's file name without extension.
func versionStem(versionFile string) string {
	return strings.TrimSuffix(path.Base(toSlash(versionFile)), jsonExt)
}

// inVersionsDir reports whether versionFile belongs to dir. The prefix is
// separator-terminated so "m/versions" never claims files of a sibling such
// as "m/versions-old". With strict set, only direct children match.
func inVersionsDir(versionFile, dir string, strict bool) bool {
	versionFile = toSlash(versionFile)
	if strict {
		return path.Dir(versionFile) == dir
	}
	return strings.HasPrefix(versionFile, dir+"/")
}
