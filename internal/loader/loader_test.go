package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalSpec = `{
	"openapi": "3.0.3",
	"info": {"title": "Torn API", "version": "2.0"},
	"paths": {
		"/user/basic": {
			"get": {
				"operationId": "getUserBasic",
				"responses": {
					"200": {
						"description": "ok",
						"content": {
							"application/json": {
								"schema": {"$ref": "#/components/schemas/UserBasicResponse"}
							}
						}
					}
				}
			}
		}
	},
	"components": {
		"schemas": {
			"UserBasicResponse": {"type": "object"}
		}
	}
}`

func TestLoad(t *testing.T) {
	result, err := Load([]byte(minimalSpec), nil)
	require.NoError(t, err)
	require.Equal(t, "3.0.3", result.Version)
	require.Equal(t, []byte(minimalSpec), result.RawData)

	paths, ok := result.Document["paths"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, paths, "/user/basic")
}

func TestLoadWithValidation(t *testing.T) {
	result, err := Load([]byte(minimalSpec), &Options{Validate: true})
	require.NoError(t, err)
	require.NotNil(t, result.Document)
}

func TestLoadUnsupportedVersion(t *testing.T) {
	spec := `{"swagger": "2.0", "info": {"title": "Old", "version": "1.0"}, "paths": {}}`
	_, err := Load([]byte(spec), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported OpenAPI version")
}

func TestLoadUnparseable(t *testing.T) {
	_, err := Load([]byte("{not json or yaml"), nil)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latest.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0644))

	result, err := LoadFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, "3.0.3", result.Version)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading spec file")
}
