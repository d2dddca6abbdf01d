// Package artifact serializes interpreter output deterministically:
// identical input bytes must always produce identical artifact bytes.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tornlabs/tornspec/internal/interp"
)

// Artifact file names, consumed by the downstream generation stages.
const (
	SpecMapFile       = "spec_map.json"
	PaginationMapFile = "pagination_map.json"
	SchemaMapFile     = "schema_map.json"
)

// Marshal renders v as deterministic JSON: two-space indent, trailing
// newline, and map keys in sorted order (an encoding/json guarantee).
// Struct fields serialize in declaration order.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write serializes v into dir/name, creating dir if needed.
func Write(dir, name string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteResult writes the three artifacts of one interpretation run.
func WriteResult(dir string, res *interp.Result) error {
	if err := Write(dir, SpecMapFile, res.SpecMap); err != nil {
		return err
	}
	if err := Write(dir, PaginationMapFile, res.PaginationMap); err != nil {
		return err
	}
	return Write(dir, SchemaMapFile, res.SchemaMap)
}
