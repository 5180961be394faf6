package modelreg

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// scanTree returns every non-directory entry below dir, in lexical order.
// Paths are returned as produced by the walk, relative to the filesystem root.
// Symlinks are reported as whatever Lstat says they are; they are not followed.
func scanTree(fsys afero.Fs, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}

// partitionFiles splits scanned paths into model and version descriptors.
// Both results are slash-normalized and keep scan order. A file can land in
// neither or, for a versions/model.json, in both.
func partitionFiles(files []string) (modelFiles, versionFiles []string) {
	for _, f := range files {
		f = toSlash(f)
		if isModelFile(f) {
			modelFiles = append(modelFiles, f)
		}
		if isVersionFile(f) {
			versionFiles = append(versionFiles, f)
		}
	}
	return modelFiles, versionFiles
}
