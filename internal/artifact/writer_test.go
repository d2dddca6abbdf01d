package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tornlabs/tornspec/internal/interp"
)

func TestMarshalSortsMapKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"zebra": 1, "alpha": 2, "mid": 3})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"alpha\": 2,\n  \"mid\": 3,\n  \"zebra\": 1\n}\n", string(data))
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, Write(dir, "x.json", map[string]any{"a": 1}))

	data, err := os.ReadFile(filepath.Join(dir, "x.json"))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}\n", string(data))
}

func TestWriteResult(t *testing.T) {
	doc := parseDoc(t, `{
		"components": {
			"schemas": {"UserBasicResponse": {"type": "object"}}
		},
		"paths": {
			"/user/basic": {
				"get": {"tags": ["user"], "operationId": "getUserBasic"}
			}
		}
	}`)

	dir := t.TempDir()
	require.NoError(t, WriteResult(dir, interp.Interpret(doc)))

	for _, name := range []string{SpecMapFile, PaginationMapFile, SchemaMapFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.True(t, json.Valid(data), "%s is not valid JSON", name)
	}
}

func TestSerializedOutputIsDeterministic(t *testing.T) {
	raw := `{
		"components": {
			"schemas": {
				"B": {"oneOf": [{"$ref": "#/components/schemas/A"}]},
				"A": {"type": "object", "properties": {"x": {"type": "integer"}}}
			}
		},
		"paths": {
			"/market": {
				"get": {
					"tags": ["market"],
					"parameters": [
						{"name": "limit", "in": "query"},
						{"name": "offset", "in": "query"}
					]
				}
			},
			"/faction/{id}/basic": {"get": {"tags": ["faction"]}}
		}
	}`

	first := marshalAll(t, interp.Interpret(parseDoc(t, raw)))
	second := marshalAll(t, interp.Interpret(parseDoc(t, raw)))
	require.Equal(t, first, second)
}

func marshalAll(t *testing.T, res *interp.Result) map[string]string {
	t.Helper()
	out := map[string]string{}
	for name, v := range map[string]any{
		SpecMapFile:       res.SpecMap,
		PaginationMapFile: res.PaginationMap,
		SchemaMapFile:     res.SchemaMap,
	} {
		data, err := Marshal(v)
		require.NoError(t, err)
		out[name] = string(data)
	}
	return out
}

func parseDoc(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}
