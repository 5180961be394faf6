package modelreg

import (
	"errors"
	"fmt"
	"slices"

	"github.com/albertocavalcante/go-modelreg/label"
	"github.com/albertocavalcante/go-modelreg/registry"
)

// checkModel validates one model descriptor and every version descriptor
// that belongs to it. It returns nil with a nil summary when a failure was
// recorded in collect-all mode and the model could not be checked further.
func (v *validator) checkModel(modelFile string, versionFiles []string) (*ModelSummary, error) {
	doc, err := loadDocument(v.fs, modelFile)
	if err != nil {
		return nil, v.fail(err)
	}
	m, err := registry.DecodeModelEntry(doc)
	if err != nil {
		return nil, v.failSchema(modelFile, err)
	}

	if folder := modalityFolder(modelFile); folder != string(m.Modality) {
		err := &StructuralError{
			Path:    modelFile,
			Rule:    RuleModalityFolder,
			ModelID: m.ID,
			Detail: fmt.Sprintf("modality folder mismatch for %s: folder=%s file=%s (%s)",
				m.ID, folder, m.Modality, modelFile),
		}
		if err := v.fail(err); err != nil {
			return nil, err
		}
	}

	if err := v.checkPerformanceDoc(modelFile, m); err != nil {
		return nil, err
	}

	dir := versionsDir(modelFile)
	var matching []string
	for _, vf := range versionFiles {
		if inVersionsDir(vf, dir, v.cfg.strictVersionLayout) {
			matching = append(matching, vf)
		}
	}

	if len(matching) == 0 {
		return nil, v.fail(&StructuralError{
			Path:    dir,
			Rule:    RuleVersionsPresent,
			ModelID: m.ID,
			Detail:  fmt.Sprintf("no versions found for model %s (%s)", m.ID, dir),
		})
	}

	expected := versionFilePath(modelFile, m.Version)
	if !slices.Contains(matching, expected) {
		err := &StructuralError{
			Path:    expected,
			Rule:    RuleCurrentVersion,
			ModelID: m.ID,
			Detail:  fmt.Sprintf("missing versions/%s.json for model %s (%s)", m.Version, m.ID, expected),
		}
		if err := v.fail(err); err != nil {
			return nil, err
		}
	}

	summary := &ModelSummary{
		ID:       m.ID,
		Name:     m.Name,
		Modality: m.Modality,
		Owner:    m.Owner,
		Path:     modelFile,
		Version:  m.Version,
	}
	if created, err := label.ParseTimestamp(m.CreatedAt); err == nil {
		summary.CreatedAt = created.Time()
	}
	var versions []string
	for _, vf := range matching {
		ve, err := v.checkVersion(vf, m)
		if err != nil {
			return nil, err
		}
		if ve != nil {
			versions = append(versions, ve.Version)
		}
	}
	sorted := sortVersions(versions)
	summary.Versions = versionStrings(sorted)
	summary.Latest = latestRelease(sorted)

	v.log.Debug("validated model", "id", m.ID, "path", modelFile, "versions", len(summary.Versions))
	return summary, nil
}

// checkPerformanceDoc requires a regular PERFORMANCE.md beside the model descriptor.
// Its content is never read.
func (v *validator) checkPerformanceDoc(modelFile string, m *registry.ModelEntry) error {
	perf := performancePath(modelFile)
	info, err := v.fs.Stat(perf)
	if err == nil && info.Mode().IsRegular() {
		return nil
	}
	return v.fail(&StructuralError{
		Path:    perf,
		Rule:    RulePerformanceDoc,
		ModelID: m.ID,
		Detail:  fmt.Sprintf("%s missing for %s: %s", PerformanceFileName, m.ID, perf),
	})
}

// checkVersion validates a version descriptor against its owning model.
// It returns the entry when the descriptor is schema-valid, even if a
// cross-reference rule failed in collect-all mode.
func (v *validator) checkVersion(versionFile string, m *registry.ModelEntry) (*registry.VersionEntry, error) {
	doc, err := loadDocument(v.fs, versionFile)
	if err != nil {
		return nil, v.fail(err)
	}
	ve, err := registry.DecodeVersionEntry(doc)
	if err != nil {
		return nil, v.failSchema(versionFile, err)
	}

	if ve.ModelID != m.ID {
		err := &StructuralError{
			Path:    versionFile,
			Rule:    RuleVersionModelID,
			ModelID: m.ID,
			Detail: fmt.Sprintf("version.modelId mismatch: %s (modelId=%s, model=%s)",
				versionFile, ve.ModelID, m.ID),
		}
		if err := v.fail(err); err != nil {
			return nil, err
		}
	}

	if stem := versionStem(versionFile); stem != ve.Version {
		err := &StructuralError{
			Path:    versionFile,
			Rule:    RuleVersionFilename,
			ModelID: m.ID,
			Detail: fmt.Sprintf("version filename mismatch: %s (file=%s, version=%s)",
				versionFile, stem, ve.Version),
		}
		if err := v.fail(err); err != nil {
			return nil, err
		}
	}

	v.log.Debug("validated version", "model", m.ID, "version", ve.Version, "path", versionFile)
	return ve, nil
}

// fail records err in collect-all mode and returns nil so the caller can
// carry on; otherwise it returns err unchanged. Once the failure limit is
// reached it returns everything collected so far.
func (v *validator) fail(err error) error {
	if !v.cfg.collectAll {
		return err
	}
	v.failures = append(v.failures, err)
	if v.cfg.maxFailures > 0 && len(v.failures) >= v.cfg.maxFailures {
		return &ValidationErrors{Errors: v.failures}
	}
	return nil
}

// failSchema converts registry field errors into SchemaErrors for path.
// Fail-fast surfaces the first failing field; collect-all records every field.
func (v *validator) failSchema(path string, err error) error {
	var verrs *registry.ValidationErrors
	if !errors.As(err, &verrs) || !verrs.HasErrors() {
		return v.fail(&SchemaError{Path: path, Reason: err.Error()})
	}
	if !v.cfg.collectAll {
		first := verrs.First()
		return &SchemaError{Path: path, Field: first.Field, Reason: first.Message}
	}
	for _, fe := range verrs.Errors {
		if err := v.fail(&SchemaError{Path: path, Field: fe.Field, Reason: fe.Message}); err != nil {
			return err
		}
	}
	return nil
}
