package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// rawRecord is one top-level entry of a data file, not yet decoded.
type rawRecord struct {
	// Name is the top-level key.
	Name string
	// Fields are the keys present in the record, in source order.
	Fields []string
	decode func(v any) error
}

// Decode decodes the record into v.
func (r rawRecord) Decode(v any) error {
	return r.decode(v)
}

// unknownFields returns the fields of r not in known.
func (r rawRecord) unknownFields(known []string) []string {
	var unknown []string

	for _, f := range r.Fields {
		if !slices.Contains(known, f) {
			unknown = append(unknown, f)
		}
	}

	return unknown
}

// readRecords splits a data file into its top-level records, keeping
// source order.
func readRecords(data []byte, format Format) ([]rawRecord, error) {
	switch format {
	case FormatTOML:
		return readTOML(data)
	case FormatYAML:
		return readYAML(data)
	default:
		return nil, &LoadError{Err: fmt.Errorf("%w %q", ErrUnsupportedFormat, format)}
	}
}

func readTOML(data []byte) ([]rawRecord, error) {
	var doc map[string]toml.Primitive

	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("parse toml: %w", err)}
	}

	var records []rawRecord

	index := make(map[string]int)

	ensure := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}

		prim := doc[name]
		index[name] = len(records)
		records = append(records, rawRecord{
			Name: name,
			decode: func(v any) error {
				return md.PrimitiveDecode(prim, v)
			},
		})

		return index[name]
	}

	// md.Keys is in document order and lists tables before their keys.
	for _, key := range md.Keys() {
		i := ensure(key[0])

		if len(key) >= 2 && !slices.Contains(records[i].Fields, key[1]) {
			records[i].Fields = append(records[i].Fields, key[1])
		}
	}

	return records, nil
}

func readYAML(data []byte) ([]rawRecord, error) {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("parse yaml: %w", err)}
	}

	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if isNull(doc) {
		return nil, nil
	}

	if doc.Kind != yaml.MappingNode {
		return nil, &LoadError{Err: fmt.Errorf("line %d: top level must be a mapping of records", doc.Line)}
	}

	records := make([]rawRecord, 0, len(doc.Content)/2)
	seen := make(map[string]struct{}, len(doc.Content)/2)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, value := doc.Content[i], doc.Content[i+1]
		name := keyNode.Value

		if _, dup := seen[name]; dup {
			return nil, &LoadError{
				Record: name,
				Err:    fmt.Errorf("line %d: %w", keyNode.Line, ErrDuplicateRecord),
			}
		}

		seen[name] = struct{}{}

		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		rec := rawRecord{Name: name}

		if value.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(value.Content); j += 2 {
				rec.Fields = append(rec.Fields, value.Content[j].Value)
			}
		}

		rec.decode = func(v any) error {
			switch {
			case isNull(value):
				return nil
			case value.Kind != yaml.MappingNode:
				return fmt.Errorf("line %d: record must be a mapping", value.Line)
			default:
				return value.Decode(v)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// locationRecord is the on-disk shape of Coordinates.
type locationRecord struct {
	Latitude  *float64 `toml:"latitude" yaml:"latitude"`
	Longitude *float64 `toml:"longitude" yaml:"longitude"`
}

var errIncompleteLocation = errors.New("location needs both latitude and longitude")

// coordinates converts the record, nil when no location was given.
func (l *locationRecord) coordinates() (*Coordinates, error) {
	if l == nil {
		return nil, nil
	}

	if l.Latitude == nil || l.Longitude == nil {
		return nil, errIncompleteLocation
	}

	return &Coordinates{Latitude: *l.Latitude, Longitude: *l.Longitude}, nil
}
