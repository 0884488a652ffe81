// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package adl

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parser decodes an ADL AST module from an io.Reader.
type Parser struct {
	decode func([]byte) (*rawModule, []string, error)
}

var (
	// JSONParser parses AST modules from JSON.
	JSONParser = Parser{decodeJSON}
	// YAMLParser parses AST modules from YAML.
	YAMLParser = Parser{decodeYAML}
)

// ParserFor selects a parser from the file extension.
func ParserFor(filePath string) (Parser, error) {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		return JSONParser, nil
	case ".yaml", ".yml":
		return YAMLParser, nil
	default:
		return Parser{}, fmt.Errorf("format not supported: %s", filePath)
	}
}

// Parse decodes a module from r. Declaration order follows the order of the
// keys of the "decls" object in the document.
func (p Parser) Parse(r io.Reader) (*Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw, order, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return raw.toModule(order)
}

func decodeJSON(data []byte) (*rawModule, []string, error) {
	var raw rawModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	order, err := declOrderJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract declaration order: %w", err)
	}
	return &raw, order, nil
}

func decodeYAML(data []byte) (*rawModule, []string, error) {
	var raw rawModule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	return &raw, declOrderYAML(&doc), nil
}

// declOrderJSON returns the keys of the top level "decls" object in the
// order they appear in data.
func declOrderJSON(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if key, _ := keyTok.(string); key != "decls" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok != json.Delim('{') {
			return nil, nil
		}
		var keys []string
		for dec.More() {
			k, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if s, ok := k.(string); ok {
				keys = append(keys, s)
			}
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}
	return nil, nil
}

// skipValue consumes the next complete JSON value from dec.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}

func declOrderYAML(doc *yaml.Node) []string {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "decls" {
			continue
		}
		decls := root.Content[i+1]
		if decls.Kind != yaml.MappingNode {
			return nil
		}
		keys := make([]string, 0, len(decls.Content)/2)
		for j := 0; j+1 < len(decls.Content); j += 2 {
			keys = append(keys, decls.Content[j].Value)
		}
		return keys
	}
	return nil
}
