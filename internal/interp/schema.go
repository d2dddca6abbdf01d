package interp

import (
	"maps"

	"github.com/tornlabs/tornspec/internal/model"
)

// Composition keywords in marker precedence order.
var compositionKeys = []string{"allOf", "oneOf", "anyOf"}

// BuildSchemaMap flattens components.schemas into the schema catalog.
// Names are visited in lexicographic order. A definition that is itself a
// bare $ref is substituted with its target, exactly one level deep; if the
// target does not resolve the original reference node is kept, never
// dropped. The first composition keyword present (allOf, then oneOf, then
// anyOf) is recorded under the _composition marker. Nested $refs inside
// properties or items stay unresolved so mutually referential schemas
// never expand unboundedly here.
func BuildSchemaMap(doc map[string]any) model.SchemaMap {
	section, _ := dig(doc, "components", "schemas").(map[string]any)

	out := model.SchemaMap{}
	for _, name := range sortedKeys(section) {
		def, ok := section[name].(map[string]any)
		if !ok {
			out[name] = nil
			continue
		}

		if ref, ok := def["$ref"].(string); ok {
			if node, ok := Resolve(doc, ref); ok {
				if m, ok := node.(map[string]any); ok {
					def = m
				}
			}
		}

		// Shallow clone keeps the marker out of the document itself.
		entry := maps.Clone(def)
		for _, key := range compositionKeys {
			if _, ok := entry[key]; ok {
				entry[model.CompositionKey] = key
				break
			}
		}
		out[name] = entry
	}
	return out
}
