package interp

import (
	"maps"
	"strings"

	"github.com/tornlabs/tornspec/internal/model"
)

// Resolve follows a $ref pointer like "#/components/schemas/User" through
// the document tree. The second return is false when the pointer is not
// rooted at the document, an intermediate node is not a mapping, or a
// segment is missing. Malformed pointers never error, they resolve to
// nothing.
func Resolve(doc map[string]any, ref string) (any, bool) {
	rest, ok := strings.CutPrefix(ref, "#/")
	if !ok {
		return nil, false
	}

	var current any = doc
	for _, part := range strings.Split(rest, "/") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// resolveParameter follows one level of $ref indirection on a parameter
// node. When the ref does not resolve to a mapping, the original node is
// returned unchanged.
func resolveParameter(doc map[string]any, param map[string]any) map[string]any {
	ref, ok := param["$ref"].(string)
	if !ok {
		return param
	}
	node, ok := Resolve(doc, ref)
	if !ok {
		return param
	}
	if m, ok := node.(map[string]any); ok {
		return m
	}
	return param
}

// derefNode follows an optional $ref on node. Unlike resolveParameter, an
// unresolvable ref is reported as failure rather than falling back to the
// indirect node.
func derefNode(doc map[string]any, node map[string]any) (map[string]any, bool) {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node, true
	}
	resolved, ok := Resolve(doc, ref)
	if !ok {
		return nil, false
	}
	m, ok := resolved.(map[string]any)
	return m, ok
}

// ResolveDeep expands every $ref in a schema subtree into its resolved
// form and returns a fresh tree; the document is never mutated. A $ref
// already entered on the current ancestor chain is replaced with an echo
// node carrying the _circular marker instead of recursing further. Each
// descent into a sibling branch works on its own copy of the guard set,
// so only true ancestor revisits count as cycles.
func ResolveDeep(doc map[string]any, node any) any {
	return resolveDeep(doc, node, map[string]struct{}{})
}

func resolveDeep(doc map[string]any, node any, visited map[string]struct{}) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}

	if ref, ok := m["$ref"].(string); ok {
		if _, seen := visited[ref]; seen {
			return map[string]any{"$ref": ref, model.CircularKey: true}
		}
		visited[ref] = struct{}{}
		resolved, ok := Resolve(doc, ref)
		if !ok {
			return m
		}
		return resolveDeep(doc, resolved, visited)
	}

	out := make(map[string]any, len(m))
	for key, value := range m {
		switch v := value.(type) {
		case map[string]any:
			out[key] = resolveDeep(doc, v, maps.Clone(visited))
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if child, ok := item.(map[string]any); ok {
					items[i] = resolveDeep(doc, child, maps.Clone(visited))
				} else {
					items[i] = item
				}
			}
			out[key] = items
		default:
			out[key] = value
		}
	}
	return out
}
