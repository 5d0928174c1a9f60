package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write streams the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile writes the report to a JSON file.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a report from a JSON stream. Reports with a different
// schema version are rejected rather than silently misread.
func Read(rd io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(rd).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if report.Version != SchemaVersion {
		return nil, fmt.Errorf("report schema %q, this build reads %q", report.Version, SchemaVersion)
	}
	return &report, nil
}

// ReadFile reads a report from a JSON file.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
