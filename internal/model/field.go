package model

import "maps"

// Property keys of DataBaseField.Properties.
const (
	PropHubField = "is_hub_field"
	PropHub      = "hub"
)

// DataBaseField is a column of a source or target table.
type DataBaseField struct {
	Name       string
	DataType   string
	Comment    string
	IsNullable bool
	IsPK       bool
	// Properties is an open bag read by templates.
	Properties map[string]any
}

// IsHubField reports whether the field references a hub table.
func (f DataBaseField) IsHubField() bool {
	v, _ := f.Properties[PropHubField].(bool)
	return v
}

// clone returns a copy that does not share the property bag.
func (f DataBaseField) clone() DataBaseField {
	f.Properties = maps.Clone(f.Properties)
	return f
}
