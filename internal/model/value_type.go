package model

import "fmt"

//go:generate go tool stringer -type=ValueType -linecomment -output=value_type_string.go

// ValueType tells the workflow how a mart column value is computed.
type ValueType int

const (
	ValueColumn        ValueType = iota // column
	ValueSQLExpression                  // sql_expression
)

// ParseValueType parses the configured spelling of a value type.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case ValueColumn.String():
		return ValueColumn, nil
	case ValueSQLExpression.String():
		return ValueSQLExpression, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", s)
	}
}
