package mapping

import (
	"slices"
	"strings"

	"rdv-generator/internal/match"
)

// StreamHeader is the typed view of one flow list row.
type StreamHeader struct {
	Row FlowRow

	FlowName string
	// BaseFlowName is FlowName without the "wf_" prefix.
	BaseFlowName    string
	AlgorithmUID    string
	SubAlgorithmUID string

	TgtFullName   string
	TgtSchema     string
	TgtTable      string
	TgtResourceCd string

	TargetRDVObjectType string

	SrcFullName string
	SrcSchema   string
	SrcTable    string

	SourceSystem string
	ScdType      string

	DistributionField  string
	DistributionFields []string
	Comment            string
}

// NewStreamHeader interprets a flow list row. Table names are split on the
// first dot; a missing dot leaves the table part empty for the caller's
// name checks to reject.
func NewStreamHeader(row FlowRow) StreamHeader {
	h := StreamHeader{
		Row:                 row,
		FlowName:            match.StripSpaces(row.FlowName),
		AlgorithmUID:        NormalizeUID(row.AlgorithmUID),
		SubAlgorithmUID:     NormalizeUID(row.SubAlgorithmUID),
		TgtFullName:         match.StripSpaces(row.TgtTable),
		TargetRDVObjectType: strings.ToUpper(match.StripSpaces(row.TargetRDVObjectType)),
		SrcFullName:         match.StripSpaces(row.SrcTable),
		SourceSystem:        strings.ToUpper(match.StripSpaces(row.SourceName)),
		ScdType:             match.StripSpaces(row.ScdType),
		DistributionField:   strings.ToLower(match.StripSpaces(row.DistributionField)),
		Comment:             row.Comment,
	}

	h.BaseFlowName = strings.TrimPrefix(h.FlowName, "wf_")
	h.TgtSchema, h.TgtTable, _ = strings.Cut(h.TgtFullName, ".")
	h.TgtResourceCd = "ceh." + h.TgtFullName
	h.SrcSchema, h.SrcTable, _ = strings.Cut(h.SrcFullName, ".")

	if h.DistributionField != "" {
		h.DistributionFields = strings.Split(h.DistributionField, ",")
		slices.Sort(h.DistributionFields)
		h.DistributionFields = slices.Compact(h.DistributionFields)
	}

	return h
}
