// Package content decodes YAML content documents into validated template records.
//
// A document holds either a single record, a list of records, or a mapping
// with a list of records under a named key ("rooms", "items", "enemies").
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses one YAML document into records of type T.
//
// Precondition: newRecord must return a T populated with field defaults.
// Postcondition: Returns every record in document order, each validated, or a non-nil error.
// An empty document yields no records and no error.
func Decode[T any](data []byte, listKey string, newRecord func() T) ([]*T, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing content YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	nodes, err := recordNodes(doc.Content[0], listKey)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(nodes))
	for i, n := range nodes {
		rec := newRecord()
		if err := n.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i, err)
		}
		if err := Validate(&rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, &rec)
	}
	return out, nil
}

func recordNodes(root *yaml.Node, listKey string) ([]*yaml.Node, error) {
	switch root.Kind {
	case yaml.SequenceNode:
		return root.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != listKey {
				continue
			}
			list := root.Content[i+1]
			if list.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%q must be a list", listKey)
			}
			return list.Content, nil
		}
		return []*yaml.Node{root}, nil
	default:
		return nil, errors.New("content document must be a record, a list, or a keyed list")
	}
}

// LoadFile reads and decodes a single content file.
//
// Postcondition: Returns the decoded records or a non-nil error naming path.
func LoadFile[T any](path, listKey string, newRecord func() T) ([]*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file %s: %w", path, err)
	}
	recs, err := Decode(data, listKey, newRecord)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return recs, nil
}

// LoadDir loads every *.yaml and *.yml file in dir in file-name order.
//
// Postcondition: Returns the records of all files concatenated in load order.
// A missing directory yields no records and no error.
func LoadDir[T any](dir, listKey string, newRecord func() T) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var out []*T
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		recs, err := LoadFile(filepath.Join(dir, name), listKey, newRecord)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}
