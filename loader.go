package modelreg

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/afero"
)

// errTrailingData reports content after the top-level JSON value.
var errTrailingData = errors.New("invalid character after top-level value")

// loadDocument reads path in full and decodes it as JSON into a generic value.
// Numbers are kept as json.Number so magnitudes beyond float64 still parse.
// Read and parse failures both yield *InvalidJSONError.
func loadDocument(fsys afero.Fs, path string) (any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &InvalidJSONError{Path: path, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &InvalidJSONError{Path: path, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &InvalidJSONError{Path: path, Err: errTrailingData}
	}
	return doc, nil
}
