package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// --- Tag ---

// Tag is a configured tag: either a plain value or a single key:value pair.
type Tag struct {
	Key   string
	Value string
}

// TagList is an ordered list of tags.
type TagList []Tag

// UnmarshalYAML accepts a scalar ("rdv") or a single-entry mapping ({team: ledger}).
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Tag{Value: node.Value}

		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: tag mapping must have exactly one entry", node.Line)
		}

		*t = Tag{Key: node.Content[0].Value, Value: node.Content[1].Value}

		return nil

	default:
		return fmt.Errorf("line %d: expected string or key:value tag", node.Line)
	}
}

// String renders the tag as "key:value" or "value".
func (t Tag) String() string {
	if t.Key == "" {
		return t.Value
	}

	return t.Key + ":" + t.Value
}

// Strings renders every tag with String.
func (l TagList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, t := range l {
		out = append(out, t.String())
	}

	return out
}

// --- NameList ---

// NameList is a list of field names. In YAML it is either a sequence
// or a mapping whose keys are the names.
type NameList []string

// UnmarshalYAML implements custom YAML unmarshaling for NameList.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" || node.Tag == "!!null" {
			*n = NameList{}
		} else {
			*n = NameList{node.Value}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*n = arr

		return nil

	case yaml.MappingNode:
		names := make(NameList, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			names = append(names, node.Content[i].Value)
		}

		*n = names

		return nil

	default:
		return fmt.Errorf("line %d: expected list of names, got %v", node.Line, node.Kind)
	}
}

// Contains returns true if the list contains the given name.
func (n NameList) Contains(name string) bool {
	return slices.Contains(n, name)
}

// --- FieldMapEntries ---

// FieldMapEntries keeps add_field_map_ctx_list entries in file order.
type FieldMapEntries []FieldMapEntry

// UnmarshalYAML decodes {tgt_field: {type, value, field_type}} preserving order.
func (f *FieldMapEntries) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*f = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: add_field_map_ctx_list must be a mapping", node.Line)
	}

	entries := make(FieldMapEntries, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		var e FieldMapEntry
		if err := node.Content[i+1].Decode(&e); err != nil {
			return fmt.Errorf("field %q: %w", node.Content[i].Value, err)
		}

		e.Name = node.Content[i].Value
		entries = append(entries, e)
	}

	*f = entries

	return nil
}

// --- PredefinedAttrs ---

// PredefinedAttr is a target attribute every table must declare exactly once.
type PredefinedAttr struct {
	Name      string
	DataType  string
	Mandatory string
}

// PredefinedAttrs keeps tgt_attr_predefined_datatype entries in file order.
type PredefinedAttrs []PredefinedAttr

// UnmarshalYAML decodes {name: [datatype, mandatory]} preserving order.
func (p *PredefinedAttrs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tgt_attr_predefined_datatype must be a mapping", node.Line)
	}

	attrs := make(PredefinedAttrs, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var pair []string
		if err := node.Content[i+1].Decode(&pair); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}

		if len(pair) != 2 {
			return fmt.Errorf("attribute %q: expected [datatype, mandatory], got %d values", name, len(pair))
		}

		attrs = append(attrs, PredefinedAttr{Name: name, DataType: pair[0], Mandatory: pair[1]})
	}

	*p = attrs

	return nil
}
