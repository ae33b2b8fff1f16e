package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/slacklinehq/slackline/pkg/errors"
)

// WriteJSON encodes a project as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(p *Project, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a project from JSON and validates it.
func ReadJSON(r io.Reader) (*Project, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse project JSON")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ExportJSON writes a project to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// ImportJSON reads a project from a JSON file at path.
func ImportJSON(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open project %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
