package model

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

// Parameter is one fully resolved operation parameter. Schema carries the
// raw sub-tree from the document, never a dangling $ref.
type Parameter struct {
	Name        string            `json:"name"`
	In          ParameterLocation `json:"in"`
	Required    bool              `json:"required"`
	Schema      any               `json:"schema"`
	Description string            `json:"description"`
}

// Endpoint is the normalized record for one (path, method) operation.
// Parameters and PathParams are always non-nil so they serialize as [],
// not null. ResponseSchemaRef is nil when no 200 JSON schema ref exists.
type Endpoint struct {
	Path              string      `json:"path"`
	Method            Method      `json:"method"`
	OperationID       string      `json:"operationId"`
	Summary           string      `json:"summary"`
	Parameters        []Parameter `json:"parameters"`
	ResponseSchemaRef *string     `json:"responseSchemaRef"`
	PathParams        []string    `json:"pathParams"`
	RequiresID        bool        `json:"requiresId"`
}

// UntaggedKey is the reserved tag for operations that declare no tags.
const UntaggedKey = "untagged"

// TagCatalog groups endpoints by lower-cased, trimmed tag name. Per-tag
// ordering follows the sorted (path, method) traversal of the document.
type TagCatalog map[string][]Endpoint

// EndpointCount returns the number of records summed across all tags.
// Multi-tagged operations count once per tag.
func (c TagCatalog) EndpointCount() int {
	n := 0
	for _, endpoints := range c {
		n += len(endpoints)
	}
	return n
}
