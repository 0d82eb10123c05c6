// Package gsn loads the externally produced GSN reference list.
package gsn

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

// Loader reads the GSN entry list handed over by the upstream extraction
// step. The handoff format is a JSON array of strings.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the given file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the reference set. A missing file or null document is an
// empty set, not an error: reconciliation must still produce a well-formed
// report when the upstream extraction has not run. The upstream tool writes
// the file with a UTF-8 BOM, which is stripped here.
func (l *Loader) Load() (domain.NameSet, error) {
	data, err := os.ReadFile(filepath.Clean(l.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewNameSet(nil), nil
		}
		return domain.NameSet{}, fmt.Errorf("read gsn file %s: %w", l.path, err)
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewNameSet(nil), nil
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return domain.NameSet{}, fmt.Errorf("parse gsn file %s: %w", l.path, err)
	}
	return domain.NewNameSet(entries), nil
}
