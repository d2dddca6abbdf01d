// Package loader reads an OpenAPI document from disk and hands the
// interpreter the untyped tree it walks. Structural sanity (parseable
// document, supported version, optional schema validation) is this
// package's job; the interpreter itself never validates.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	yaml "go.yaml.in/yaml/v4"
)

type Result struct {
	// Document is the untyped tree the interpreter operates on.
	Document map[string]any
	Version  string
	Warnings []string
	RawData  []byte
}

type Options struct {
	// Validate runs the full document validator and surfaces findings as
	// warnings. Parsing and version checks happen regardless.
	Validate bool
}

func LoadFile(path string, opts *Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return Load(data, opts)
}

func Load(data []byte, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version: %s (only 3.x supported)", version)
	}

	result := &Result{Version: version, RawData: data}

	if opts.Validate {
		v, errs := validator.NewValidator(doc)
		if len(errs) > 0 {
			return nil, fmt.Errorf("building validator: %w", errs[0])
		}
		if ok, findings := v.ValidateDocument(); !ok {
			for _, f := range findings {
				result.Warnings = append(result.Warnings, f.Message)
			}
		}
	}

	// The interpreter wants the raw tree, not the resolved high-level
	// model: reference resolution is its own decision logic.
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding document tree: %w", err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	result.Document = tree

	if strings.HasPrefix(version, "3.0") {
		result.Warnings = append(result.Warnings, "OpenAPI 3.0.x detected; some 3.1 features unavailable")
	}

	return result, nil
}
