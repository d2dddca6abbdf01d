package interp

import (
	"maps"
	"slices"
	"strings"

	"github.com/tornlabs/tornspec/internal/model"
)

// Path-item keys that are shared blocks, not HTTP methods.
var nonOperationKeys = map[string]bool{
	"parameters":  true,
	"servers":     true,
	"summary":     true,
	"description": true,
}

var opIDReplacer = strings.NewReplacer("/", "_", "{", "", "}", "")

// BuildTagCatalog walks every (path, method) operation in the document and
// groups the resulting endpoint records under each of the operation's
// lower-cased tags. Paths are visited in lexicographic order, methods in
// lexicographic order within a path, so the catalog is independent of the
// document's native ordering.
func BuildTagCatalog(doc map[string]any) model.TagCatalog {
	catalog := model.TagCatalog{}

	paths, _ := doc["paths"].(map[string]any)
	for _, path := range sortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range sortedKeys(item) {
			if nonOperationKeys[method] {
				continue
			}
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			record := buildEndpoint(doc, path, method, op)
			for _, tag := range operationTags(op) {
				catalog[tag] = append(catalog[tag], record)
			}
		}
	}
	return catalog
}

func buildEndpoint(doc map[string]any, path, method string, op map[string]any) model.Endpoint {
	parameters := make([]model.Parameter, 0)
	pathParams := make([]string, 0)

	if raw, ok := op["parameters"].([]any); ok {
		for _, entry := range raw {
			node, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			resolved := resolveParameter(doc, node)
			param := model.Parameter{
				Name:        stringField(resolved, "name"),
				In:          model.ParameterLocation(stringField(resolved, "in")),
				Required:    boolField(resolved, "required"),
				Schema:      fieldOrEmpty(resolved, "schema"),
				Description: stringField(resolved, "description"),
			}
			parameters = append(parameters, param)
			if param.In == model.LocationPath {
				pathParams = append(pathParams, param.Name)
			}
		}
	}

	opID := stringField(op, "operationId")
	if opID == "" {
		// Synthesized from the source method key and path, so repeated
		// runs and reimplementations agree on the identifier.
		opID = opIDReplacer.Replace(method + "_" + path)
	}

	return model.Endpoint{
		Path:              path,
		Method:            model.Method(strings.ToUpper(method)),
		OperationID:       opID,
		Summary:           stringField(op, "summary"),
		Parameters:        parameters,
		ResponseSchemaRef: extractResponseSchemaRef(op),
		PathParams:        pathParams,
		RequiresID:        strings.Contains(path, "{id}") || slices.Contains(pathParams, "id"),
	}
}

// extractResponseSchemaRef locates the $ref describing the operation's 200
// JSON response. Union and intersection wrappers collapse to their first
// member: a direct $ref wins, then anyOf, oneOf and allOf are probed in
// that order. Inline schemas with no $ref yield nil.
func extractResponseSchemaRef(op map[string]any) *string {
	schema, ok := dig(op, "responses", "200", "content", "application/json", "schema").(map[string]any)
	if !ok {
		return nil
	}

	if ref, ok := schema["$ref"].(string); ok {
		return &ref
	}

	for _, key := range []string{"anyOf", "oneOf", "allOf"} {
		list, ok := schema[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		first, ok := list[0].(map[string]any)
		if !ok {
			continue
		}
		if ref, ok := first["$ref"].(string); ok {
			return &ref
		}
	}
	return nil
}

// operationTags returns the operation's lower-cased, trimmed tags, or the
// reserved untagged key when the operation declares no tags field.
func operationTags(op map[string]any) []string {
	raw, ok := op["tags"]
	if !ok {
		return []string{model.UntaggedKey}
	}
	list, ok := raw.([]any)
	if !ok {
		return []string{model.UntaggedKey}
	}
	tags := make([]string, 0, len(list))
	for _, entry := range list {
		if tag, ok := entry.(string); ok {
			tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
		}
	}
	return tags
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// dig descends through nested mappings one key at a time, returning nil
// as soon as the shape does not match.
func dig(node any, keys ...string) any {
	current := node
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func fieldOrEmpty(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	return map[string]any{}
}
