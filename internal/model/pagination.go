package model

type PaginationStyle string

const (
	// StyleMetadataLinks marks endpoints whose response embeds
	// _metadata.links.{next,prev}. Endpoints matched only through
	// temporal/sort parameters (from, to, sort, timestamp) share this
	// tag as a fallback bucket.
	StyleMetadataLinks PaginationStyle = "metadata_links"
	// StyleOffsetLimit marks endpoints driven by limit/offset parameters.
	StyleOffsetLimit PaginationStyle = "offset_limit"
)

// PaginationParam is the slice of a Parameter that pagination consumers
// need; description is deliberately dropped.
type PaginationParam struct {
	Name     string            `json:"name"`
	In       ParameterLocation `json:"in"`
	Required bool              `json:"required"`
	Schema   any               `json:"schema"`
}

// Pagination describes how one endpoint paginates. A Pagination existing
// for an operation id is itself the "is paginated" signal.
type Pagination struct {
	Path   string            `json:"path"`
	Method Method            `json:"method"`
	Style  PaginationStyle   `json:"paginationStyle"`
	Params []PaginationParam `json:"params"`
}

// PaginationMap keys Pagination records by operation id. Absence of a key
// means the operation is not paginated.
type PaginationMap map[string]Pagination
