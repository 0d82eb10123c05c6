// Package report persists name lists and comparison results as JSON files.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/adrecon/internal/domain"
)

// comparisonDTO is the on-disk shape of a comparison result. Key names are
// part of the downstream contract and must not change.
type comparisonDTO struct {
	MissingInAD  []string `json:"MissingInAD"`
	MissingInGSN []string `json:"MissingInGSN"`
}

// Sink writes run outputs to the local filesystem.
type Sink struct{}

// NewSink creates a Sink.
func NewSink() *Sink { return &Sink{} }

// WriteNames persists the set as a JSON array of strings at path.
// An empty set serializes to [], never null.
func (s *Sink) WriteNames(path string, names domain.NameSet) error {
	return writeJSON(path, names.Names())
}

// WriteComparison persists the comparison result as a JSON object at path.
func (s *Sink) WriteComparison(path string, result domain.ComparisonResult) error {
	return writeJSON(path, comparisonDTO{
		MissingInAD:  result.MissingInAD(),
		MissingInGSN: result.MissingInGSN(),
	})
}

// ReadNames loads a previously persisted JSON name array. A missing file or
// a null document yields an empty set; a leading UTF-8 BOM is tolerated
// because older producers wrote one.
func (s *Sink) ReadNames(path string) (domain.NameSet, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewNameSet(nil), nil
		}
		return domain.NameSet{}, fmt.Errorf("read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewNameSet(nil), nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return domain.NameSet{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return domain.NewNameSet(names), nil
}

// writeJSON marshals v with 4-space indent and renames a temp file into
// place, so consumers never observe a partially written report.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
