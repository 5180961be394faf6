package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	modelreg "github.com/albertocavalcante/go-modelreg"
	"github.com/albertocavalcante/go-modelreg/internal/config"
)

// reporter renders validation outcomes as text or JSON.
type reporter struct {
	out    io.Writer
	errOut io.Writer
	format string

	green *color.Color
	red   *color.Color
	bold  *color.Color
}

func newReporter(out, errOut io.Writer, format string, noColor bool) *reporter {
	r := &reporter{
		out:    out,
		errOut: errOut,
		format: format,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgHiRed),
		bold:   color.New(color.Bold),
	}
	if noColor {
		r.green.DisableColor()
		r.red.DisableColor()
		r.bold.DisableColor()
	}
	return r
}

type jsonResult struct {
	OK bool `json:"ok"`
	*modelreg.Report
	Errors []jsonError `json:"errors,omitempty"`
}

type jsonError struct {
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// success reports a passing registry.
func (r *reporter) success(report *modelreg.Report) error {
	if r.format == config.FormatJSON {
		return r.writeJSON(jsonResult{OK: true, Report: report})
	}
	_, err := r.green.Fprintf(r.out, "OK: model registry validation passed (%d models, %d versions, %d benchmarks).\n",
		len(report.Models), report.VersionCount(), report.Benchmarks)
	return err
}

// failure reports every error carried by err. JSON goes to the regular
// output so it can be piped; text goes to the error output.
func (r *reporter) failure(err error) error {
	errs := splitErrors(err)

	if r.format == config.FormatJSON {
		res := jsonResult{OK: false}
		for _, e := range errs {
			res.Errors = append(res.Errors, jsonError{
				Kind:    modelreg.KindOf(e).String(),
				Path:    modelreg.PathOf(e),
				Message: e.Error(),
			})
		}
		return r.writeJSON(res)
	}

	for _, e := range errs {
		if _, werr := fmt.Fprintf(r.errOut, "%s [%s] %s\n", r.red.Sprint("FAIL"), modelreg.KindOf(e), e); werr != nil {
			return werr
		}
	}
	if len(errs) > 1 {
		_, werr := r.bold.Fprintf(r.errOut, "%d registry violations\n", len(errs))
		return werr
	}
	return nil
}

// table prints one row per model.
func (r *reporter) table(report *modelreg.Report) error {
	if r.format == config.FormatJSON {
		return r.writeJSON(jsonResult{OK: true, Report: report})
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODALITY\tVERSION\tRELEASES\tOWNER")
	for _, m := range report.Models {
		owner := m.Owner.DisplayName
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", m.ID, m.Modality, m.Version, len(m.Versions), owner)
	}
	return w.Flush()
}

func (r *reporter) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitErrors flattens a collected *modelreg.ValidationErrors.
func splitErrors(err error) []error {
	var verrs *modelreg.ValidationErrors
	if errors.As(err, &verrs) && len(verrs.Errors) > 0 {
		return verrs.Errors
	}
	return []error{err}
}
