package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/albertocavalcante/go-modelreg/label"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field   string // Field path (e.g., "owner.contributorId")
	Message string // Human-readable error message
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects multiple validation errors.
// Errors are kept in the order the fields were checked.
type ValidationErrors struct {
	Errors []*FieldError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &FieldError{Field: field, Message: message})
}

// HasErrors returns true if any errors were collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first collected error, or nil.
func (e *ValidationErrors) First() *FieldError {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// ToError returns nil if no errors, otherwise returns self.
func (e *ValidationErrors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

const (
	msgRequiredString = "required field is missing or empty"
	msgRequiredObject = "required object is missing"
	msgTimestamp      = "must be a valid date/time"
	msgVersion        = "must be a semantic version (MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD])"
	msgDigest         = "must be sha256:<64 hex>"
	msgSizeBytes      = "must be a non-negative number"
	msgNotObject      = "document must be a JSON object"
)

// object is a decoded JSON object as produced by encoding/json into any.
type object map[string]any

func asObject(v any) (object, bool) {
	m, ok := v.(map[string]any)
	return object(m), ok
}

// str returns the trimmed-non-empty string at key, recording an error otherwise.
// Wrong types are reported exactly like missing fields.
func (o object) str(errs *ValidationErrors, field, key string) string {
	s, ok := o[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		errs.Add(field, msgRequiredString)
		return ""
	}
	return s
}

func (o object) timestamp(errs *ValidationErrors, field, key string) string {
	s, ok := o[key].(string)
	if !ok || !label.IsTimestamp(s) {
		errs.Add(field, msgTimestamp)
		return ""
	}
	return s
}

func (o object) version(errs *ValidationErrors, field, key string) string {
	s, ok := o[key].(string)
	if !ok || !label.IsVersion(s) {
		errs.Add(field, msgVersion)
		return ""
	}
	return s
}

func (o object) child(errs *ValidationErrors, field, key string) (object, bool) {
	c, ok := asObject(o[key])
	if !ok || c == nil {
		errs.Add(field, msgRequiredObject)
		return nil, false
	}
	return c, true
}

// DecodeModelEntry validates a decoded model.json document and converts it
// to a ModelEntry. Returns ValidationErrors containing all issues found, in
// the order: id, name, modality, owner, createdAt, version.
func DecodeModelEntry(doc any) (*ModelEntry, error) {
	var errs ValidationErrors

	o, ok := asObject(doc)
	if !ok || o == nil {
		errs.Add("", msgNotObject)
		return nil, errs.ToError()
	}

	var m ModelEntry
	m.ID = o.str(&errs, "id", "id")
	m.Name = o.str(&errs, "name", "name")

	modality, _ := o["modality"].(string)
	if !Modality(modality).IsValid() {
		errs.Add("modality", "must be one of: "+modalityList())
	} else {
		m.Modality = Modality(modality)
	}

	if owner, ok := o.child(&errs, "owner", "owner"); ok {
		m.Owner.ContributorID = owner.str(&errs, "owner.contributorId", "contributorId")
		m.Owner.DisplayName = owner.str(&errs, "owner.displayName", "displayName")
	}

	m.CreatedAt = o.timestamp(&errs, "createdAt", "createdAt")
	m.Version = o.version(&errs, "version", "version")

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeVersionEntry validates a decoded versions/{version}.json document and
// converts it to a VersionEntry. Returns ValidationErrors containing all
// issues found, in the order: modelId, version, releasedAt, artifact.
func DecodeVersionEntry(doc any) (*VersionEntry, error) {
	var errs ValidationErrors

	o, ok := asObject(doc)
	if !ok || o == nil {
		errs.Add("", msgNotObject)
		return nil, errs.ToError()
	}

	var v VersionEntry
	v.ModelID = o.str(&errs, "modelId", "modelId")
	v.Version = o.version(&errs, "version", "version")
	v.ReleasedAt = o.timestamp(&errs, "releasedAt", "releasedAt")

	if artifact, ok := o.child(&errs, "artifact", "artifact"); ok {
		v.Artifact.URI = artifact.str(&errs, "artifact.uri", "uri")

		// Optional fields are only checked when present; null counts as present.
		if raw, present := artifact["digest"]; present {
			s, _ := raw.(string)
			if d, err := label.ParseDigest(s); err != nil {
				errs.Add("artifact.digest", msgDigest)
			} else {
				v.Artifact.Digest = d.String()
			}
		}
		if raw, present := artifact["sizeBytes"]; present {
			n, ok := number(raw)
			if !ok || n < 0 {
				errs.Add("artifact.sizeBytes", msgSizeBytes)
			} else {
				v.Artifact.SizeBytes = &n
			}
		}
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return &v, nil
}

// number converts a decoded JSON number to float64. Documents decoded with
// UseNumber carry json.Number; magnitudes beyond float64 become ±Inf.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func modalityList() string {
	names := make([]string, 0, len(Modalities()))
	for _, m := range Modalities() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
