package model

import (
	"fmt"
	"strings"
)

// MartField describes how one mart column is computed.
type MartField struct {
	TgtField     string
	ValueType    ValueType
	Value        string
	Expression   string
	TgtFieldType string
	// IsHubField fields are emitted in the hub section instead of the field map.
	IsHubField bool
}

// MartFieldInput is a normalized details row as seen by NewMartField.
type MartFieldInput struct {
	SrcAttribute string
	SrcDataType  string
	TgtAttribute string
	TgtDataType  string
	Expression   string
	IsPK         bool
	IsHub        bool
}

// textCasts maps a target datatype to the cast helper applied to text sources.
var textCasts = map[string]string{
	"timestamp": "etl.try_cast2ts",
	"date":      "etl.try_cast2dt",
	"smallint":  "etl.try_cast2int2",
	"int2":      "etl.try_cast2int2",
	"int":       "etl.try_cast2int4",
	"integer":   "etl.try_cast2int4",
	"int4":      "etl.try_cast2int4",
	"bigint":    "etl.try_cast2int8",
	"int8":      "etl.try_cast2int8",
	"bool":      "etl.try_cast2bool",
	"boolean":   "etl.try_cast2bool",
	"decimal":   "etl.try_cast2decimal",
}

// NewMartField derives the value of a mart column from a details row.
//
// An explicit expression wins and is cast to the target type. Text sources
// loaded into typed columns go through the etl.try_cast2* helpers; text into
// text turns empty strings into nulls unless the column is part of the key.
// Everything else is a plain column reference.
func NewMartField(in MartFieldInput) MartField {
	src := strings.ToLower(strings.TrimSpace(in.SrcAttribute))
	srcType := strings.ToLower(strings.TrimSpace(in.SrcDataType))
	tgtType := strings.ToLower(strings.TrimSpace(in.TgtDataType))
	expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(in.Expression), "="))

	f := MartField{
		TgtField:     strings.ToLower(strings.TrimSpace(in.TgtAttribute)),
		ValueType:    ValueSQLExpression,
		Value:        src,
		TgtFieldType: tgtType,
		IsHubField:   in.IsHub,
	}

	switch {
	case expr != "":
		f.Expression = expr + " :: " + tgtType
	case srcType == "text" && tgtType == "text" && !in.IsPK:
		f.Expression = fmt.Sprintf("case when %s = '' then Null else %s end :: %s", src, src, tgtType)
	case srcType == "text" && textCasts[tgtType] != "":
		f.Expression = fmt.Sprintf("%s(%s)", textCasts[tgtType], src)
	default:
		f.ValueType = ValueColumn
		f.Expression = expr
	}

	return f
}

// ValueText is the text written after "value:" in the field map.
func (f MartField) ValueText() string {
	if f.ValueType == ValueSQLExpression && f.Expression != "" {
		return f.Expression
	}

	return f.Value
}
