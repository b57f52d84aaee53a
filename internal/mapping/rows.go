package mapping

import (
	"strings"

	"rdv-generator/internal/sheet"
)

// ConversionHub marks details rows that reference a hub.
const ConversionHub = "hub"

// MandatoryNull is the tgt_attr_mandatory value of nullable columns.
const MandatoryNull = "null"

// FlowRow is one row of the flow list.
type FlowRow struct {
	Line                int
	Version             string
	VersionEnd          string
	AlgorithmUID        string
	SubAlgorithmUID     string
	FlowName            string
	TgtTable            string
	TargetRDVObjectType string
	SrcTable            string
	SourceName          string
	ScdType             string
	DistributionField   string
	Comment             string
}

// DetailRow is one row of the details sheet after normalization.
type DetailRow struct {
	Line             int
	SrcTable         string
	SrcAttribute     string
	SrcAttrDatatype  string
	SrcPK            bool
	Expression       string
	TgtTable         string
	TgtAttribute     string
	TgtAttrDatatype  string
	TgtAttrMandatory string
	// TgtPK holds the tokens of the composite tgt_pk column.
	TgtPK          []string
	IsPK           bool
	Comment        string
	ConversionType string
	BkSchema       string
	BkObject       string
	NullDefault    string
	VersionEnd     string
}

// IsHub reports whether the row is a hub conversion.
func (d DetailRow) IsHub() bool {
	return d.ConversionType == ConversionHub
}

// IsNullable reports whether the target column accepts nulls.
func (d DetailRow) IsNullable() bool {
	return d.TgtAttrMandatory == MandatoryNull
}

// SourceField is the projection of a details row describing a source column.
type SourceField struct {
	SrcTable        string
	SrcAttribute    string
	SrcAttrDatatype string
	SrcPK           bool
	Comment         string
	TgtAttribute    string
	TgtAttrDatatype string
}

func cell(r sheet.Row, col string) string {
	return strings.TrimSpace(r.Get(col))
}

func newFlowRow(r sheet.Row) FlowRow {
	return FlowRow{
		Line:                r.Line,
		Version:             cell(r, ColVersion),
		VersionEnd:          cell(r, ColVersionEnd),
		AlgorithmUID:        cell(r, ColAlgorithmUID),
		SubAlgorithmUID:     cell(r, ColSubAlgorithmUID),
		FlowName:            cell(r, ColFlowName),
		TgtTable:            normalizeTable(r.Get(ColTgtTable)),
		TargetRDVObjectType: cell(r, ColTargetRDVObjectType),
		SrcTable:            strings.ToLower(cell(r, ColSrcTable)),
		SourceName:          cell(r, ColSourceName),
		ScdType:             cell(r, ColScdType),
		DistributionField:   cell(r, ColDistributionField),
		Comment:             cell(r, ColComment),
	}
}
