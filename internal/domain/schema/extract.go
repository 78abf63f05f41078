package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// blockPattern matches JSON-LD script elements in raw page text. Matching on
// raw text keeps script contents exactly as authored.
var blockPattern = regexp.MustCompile(`(?is)<script\b[^>]*\stype\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script\s*>`)

// Block is one embedded structured-data script.
type Block struct {
	Line int    // 1-based line of the opening tag
	Raw  string // trimmed script body
}

// Extract returns every JSON-LD block in raw, in document order.
func Extract(raw string) []Block {
	var blocks []Block
	for _, m := range blockPattern.FindAllStringSubmatchIndex(raw, -1) {
		blocks = append(blocks, Block{
			Line: strings.Count(raw[:m[0]], "\n") + 1,
			Raw:  strings.TrimSpace(raw[m[2]:m[3]]),
		})
	}
	return blocks
}

// Node is one decoded record together with its authored JSON text.
type Node struct {
	Fields map[string]any
	Raw    string
}

// Decode parses a block into its records. A top-level array yields one
// record per element; an object carrying @graph yields its graph nodes (and
// itself when it declares a type). Each record keeps the bytes it was
// authored with, so text-level rules see only their own record.
func Decode(b Block) ([]Node, error) {
	dec := json.NewDecoder(strings.NewReader(b.Raw))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return flatten(raw)
}

func flatten(raw json.RawMessage) ([]Node, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) > 0 && raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		var out []Node
		for _, item := range items {
			nodes, err := flatten(item)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil

	case len(raw) > 0 && raw[0] == '{':
		fields, err := decodeObject(raw)
		if err != nil {
			return nil, err
		}
		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			return nil, err
		}
		graph := bytes.TrimSpace(members["@graph"])
		if len(graph) == 0 || graph[0] != '[' {
			return []Node{{Fields: fields, Raw: string(raw)}}, nil
		}

		var out []Node
		if truthy(fields["@type"]) {
			// The container's own text excludes its graph nodes.
			own := bytes.Replace(raw, graph, []byte("[]"), 1)
			out = append(out, Node{Fields: fields, Raw: string(own)})
		}
		nodes, err := flatten(graph)
		if err != nil {
			return nil, err
		}
		return append(out, nodes...), nil

	default:
		return []Node{{Fields: map[string]any{}, Raw: string(raw)}}, nil
	}
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
