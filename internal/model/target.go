package model

import "strings"

// Target is a table written by a flow.
type Target struct {
	Schema        string
	Table         string
	ShortName     string
	SrcCd         string
	ObjectType    string
	ResourceCd    string
	UniResourceCd string
}

// NewTarget builds a target with the ceh.<schema>.<table> resource code.
func NewTarget(schema, table, srcCd, objectType, uniResourceCd string, opts *Options) *Target {
	return &Target{
		Schema:        schema,
		Table:         table,
		ShortName:     opts.ShortName.Name(table),
		SrcCd:         srcCd,
		ObjectType:    objectType,
		ResourceCd:    strings.Join([]string{"ceh", schema, table}, "."),
		UniResourceCd: uniResourceCd,
	}
}

// LocalMetric feeds the metric registration section of the workflow.
type LocalMetric struct {
	ProcessedDtConversion string
	ProcessedDt           string
	Algo                  string
	System                string
	Schema                string
	Name                  string
}

// NewLocalMetric lower-cases the source coordinates.
func NewLocalMetric(processedDtConversion, processedDt, algo, system, schema, name string) *LocalMetric {
	return &LocalMetric{
		ProcessedDtConversion: processedDtConversion,
		ProcessedDt:           processedDt,
		Algo:                  algo,
		System:                strings.ToLower(system),
		Schema:                strings.ToLower(schema),
		Name:                  strings.ToLower(name),
	}
}
