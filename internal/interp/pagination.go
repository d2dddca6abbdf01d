package interp

import (
	"strings"

	"github.com/tornlabs/tornspec/internal/model"
)

// Parameter names that signal pagination, matched case-insensitively.
var paginationParamNames = map[string]bool{
	"limit":     true,
	"offset":    true,
	"from":      true,
	"to":        true,
	"sort":      true,
	"timestamp": true,
}

// BuildPaginationMap classifies every cataloged endpoint. Endpoints whose
// response schema exposes _metadata.links.{next,prev} are metadata_links
// regardless of parameters. Otherwise a limit/offset parameter makes the
// endpoint offset_limit, and any remaining pagination-named parameter
// (from, to, sort, timestamp) falls back to metadata_links. Endpoints with
// neither signal are omitted from the map entirely.
func BuildPaginationMap(doc map[string]any, catalog model.TagCatalog) model.PaginationMap {
	out := model.PaginationMap{}

	for _, tag := range sortedKeys(catalog) {
		for _, ep := range catalog[tag] {
			params := make([]model.PaginationParam, 0)
			hasLimitOffset := false
			for _, p := range ep.Parameters {
				name := strings.ToLower(p.Name)
				if !paginationParamNames[name] {
					continue
				}
				params = append(params, model.PaginationParam{
					Name:     p.Name,
					In:       p.In,
					Required: p.Required,
					Schema:   p.Schema,
				})
				if name == "limit" || name == "offset" {
					hasLimitOffset = true
				}
			}

			var style model.PaginationStyle
			switch {
			case hasMetadataLinks(doc, ep.ResponseSchemaRef):
				style = model.StyleMetadataLinks
			case hasLimitOffset:
				style = model.StyleOffsetLimit
			case len(params) > 0:
				style = model.StyleMetadataLinks
			default:
				continue
			}

			out[ep.OperationID] = model.Pagination{
				Path:   ep.Path,
				Method: ep.Method,
				Style:  style,
				Params: params,
			}
		}
	}
	return out
}

// hasMetadataLinks reports whether the referenced response schema exposes
// a _metadata property whose links definition carries both next and prev.
// One level of $ref indirection is tolerated at _metadata and at links;
// the check does not recurse beyond that.
func hasMetadataLinks(doc map[string]any, ref *string) bool {
	if ref == nil {
		return false
	}
	node, ok := Resolve(doc, *ref)
	if !ok {
		return false
	}
	schema, ok := node.(map[string]any)
	if !ok {
		return false
	}

	meta, ok := schemaProperty(schema, "_metadata")
	if !ok {
		return false
	}
	meta, ok = derefNode(doc, meta)
	if !ok {
		return false
	}

	links, ok := schemaProperty(meta, "links")
	if !ok {
		return false
	}
	links, ok = derefNode(doc, links)
	if !ok {
		return false
	}

	props, ok := links["properties"].(map[string]any)
	if !ok {
		return false
	}
	_, hasNext := props["next"]
	_, hasPrev := props["prev"]
	return hasNext && hasPrev
}

func schemaProperty(schema map[string]any, name string) (map[string]any, bool) {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil, false
	}
	child, ok := props[name].(map[string]any)
	return child, ok
}
