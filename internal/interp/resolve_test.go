package interp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestResolve(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"schemas": {
				"User": {"type": "object"},
				"Empty": null
			}
		},
		"paths": ["not", "a", "mapping"]
	}`)

	tests := []struct {
		name   string
		ref    string
		wantOK bool
	}{
		{"existing schema", "#/components/schemas/User", true},
		{"missing key", "#/components/schemas/Missing", false},
		{"intermediate not a mapping", "#/paths/0", false},
		{"not rooted at document", "components/schemas/User", false},
		{"external reference", "http://example.com#/components", false},
		{"empty pointer", "#/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := Resolve(doc, tt.ref)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, node)
			}
		})
	}
}

func TestResolveReturnsDesignatedNode(t *testing.T) {
	doc := parseDoc(t, `{"components": {"schemas": {"ID": {"type": "integer", "minimum": 1}}}}`)

	node, ok := Resolve(doc, "#/components/schemas/ID")
	require.True(t, ok)
	require.Equal(t, map[string]any{"type": "integer", "minimum": float64(1)}, node)
}

func TestResolveParameter(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"parameters": {
				"Limit": {"name": "limit", "in": "query"}
			}
		}
	}`)

	t.Run("follows ref", func(t *testing.T) {
		got := resolveParameter(doc, map[string]any{"$ref": "#/components/parameters/Limit"})
		require.Equal(t, "limit", got["name"])
	})

	t.Run("unresolvable ref keeps node", func(t *testing.T) {
		param := map[string]any{"$ref": "#/components/parameters/Missing"}
		got := resolveParameter(doc, param)
		require.Equal(t, param, got)
	})

	t.Run("direct node unchanged", func(t *testing.T) {
		param := map[string]any{"name": "offset", "in": "query"}
		got := resolveParameter(doc, param)
		require.Equal(t, param, got)
	})
}

func TestResolveDeepExpandsNestedRefs(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"schemas": {
				"Leaf": {"type": "string"},
				"Wrapper": {
					"type": "object",
					"properties": {
						"value": {"$ref": "#/components/schemas/Leaf"},
						"values": {
							"type": "array",
							"items": [{"$ref": "#/components/schemas/Leaf"}]
						}
					}
				}
			}
		}
	}`)

	node, ok := Resolve(doc, "#/components/schemas/Wrapper")
	require.True(t, ok)

	expanded, ok := ResolveDeep(doc, node).(map[string]any)
	require.True(t, ok)

	props := expanded["properties"].(map[string]any)
	require.Equal(t, map[string]any{"type": "string"}, props["value"])
	items := props["values"].(map[string]any)["items"].([]any)
	require.Equal(t, map[string]any{"type": "string"}, items[0])
}

func TestResolveDeepKeepsUnresolvableRef(t *testing.T) {
	doc := parseDoc(t, `{"components": {"schemas": {}}}`)
	node := map[string]any{"$ref": "#/components/schemas/Missing"}

	got := ResolveDeep(doc, node)
	require.Equal(t, node, got)
}

func TestResolveDeepMarksDirectCycle(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"schemas": {
				"Node": {
					"type": "object",
					"properties": {
						"next": {"$ref": "#/components/schemas/Node"}
					}
				}
			}
		}
	}`)

	node, ok := Resolve(doc, "#/components/schemas/Node")
	require.True(t, ok)

	expanded := ResolveDeep(doc, node).(map[string]any)
	next := expanded["properties"].(map[string]any)["next"].(map[string]any)
	inner := next["properties"].(map[string]any)["next"].(map[string]any)
	require.Equal(t, map[string]any{
		"$ref":      "#/components/schemas/Node",
		"_circular": true,
	}, inner)
}

func TestResolveDeepMarksIndirectCycle(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"schemas": {
				"A": {"properties": {"b": {"$ref": "#/components/schemas/B"}}},
				"B": {"properties": {"a": {"$ref": "#/components/schemas/A"}}}
			}
		}
	}`)

	expanded := ResolveDeep(doc, map[string]any{"$ref": "#/components/schemas/A"}).(map[string]any)
	b := expanded["properties"].(map[string]any)["b"].(map[string]any)
	a := b["properties"].(map[string]any)["a"].(map[string]any)
	require.Equal(t, true, a["_circular"])
	require.Equal(t, "#/components/schemas/A", a["$ref"])
}

func TestResolveDeepSiblingsDoNotShareCycleGuard(t *testing.T) {
	// Two sibling properties referencing the same schema are both expanded;
	// only an ancestor-chain revisit counts as a cycle.
	doc := parseDoc(t, `{
		"components": {
			"schemas": {
				"Leaf": {"type": "string"},
				"Pair": {
					"properties": {
						"first": {"$ref": "#/components/schemas/Leaf"},
						"second": {"$ref": "#/components/schemas/Leaf"}
					}
				}
			}
		}
	}`)

	node, _ := Resolve(doc, "#/components/schemas/Pair")
	expanded := ResolveDeep(doc, node).(map[string]any)
	props := expanded["properties"].(map[string]any)
	require.Equal(t, map[string]any{"type": "string"}, props["first"])
	require.Equal(t, map[string]any{"type": "string"}, props["second"])
}

func TestResolveDeepDoesNotMutateDocument(t *testing.T) {
	raw := `{
		"components": {
			"schemas": {
				"Leaf": {"type": "string"},
				"Wrapper": {"properties": {"value": {"$ref": "#/components/schemas/Leaf"}}}
			}
		}
	}`
	doc := parseDoc(t, raw)

	node, _ := Resolve(doc, "#/components/schemas/Wrapper")
	_ = ResolveDeep(doc, node)

	require.Equal(t, parseDoc(t, raw), doc)
}
