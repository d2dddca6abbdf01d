// Package interp turns one loaded OpenAPI document into the three
// intermediate representations consumed by downstream model generation:
// the endpoint catalog grouped by tag, the pagination capability map, and
// the flattened schema catalog.
//
// Every function here is a pure computation over the in-memory document
// tree. Malformed-but-present input degrades to absent or defaulted
// values; nothing in this package returns an error.
package interp

import "github.com/tornlabs/tornspec/internal/model"

// Result holds the three artifacts produced from one document.
type Result struct {
	SpecMap       model.TagCatalog
	PaginationMap model.PaginationMap
	SchemaMap     model.SchemaMap
}

// Interpret runs the three builders over one document. The document is
// read, never mutated, so the same tree can be interpreted repeatedly and
// concurrently.
func Interpret(doc map[string]any) *Result {
	catalog := BuildTagCatalog(doc)
	return &Result{
		SpecMap:       catalog,
		PaginationMap: BuildPaginationMap(doc, catalog),
		SchemaMap:     BuildSchemaMap(doc),
	}
}
