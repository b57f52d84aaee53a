package model

import (
	"fmt"
	"strings"
)

// SourceSpec holds the values a Source is built from.
type SourceSpec struct {
	System          string
	Schema          string
	Table           string
	AlgorithmUID    string
	AlgorithmUID2   string
	CehResource     string
	SrcCd           string
	DataCaptureMode string
}

// Source is an external table read by a flow.
type Source struct {
	System          string
	SourceSystem    string
	Schema          string
	Table           string
	AlgorithmUID    string
	AlgorithmUID2   string
	SrcCd           string
	DataCaptureMode string
	ShortName       string
	UniRes          string
	ResourceCd      string
	Instance        string
	ActualDttmName  string
	CehRes          string
	FileName        string
	Fields          []DataBaseField
}

// NewSource builds a source and derives its names.
// The resource id is rendered from opts.UniResource when set.
func NewSource(spec SourceSpec, opts *Options) (*Source, error) {
	s := &Source{
		System:          spec.System,
		SourceSystem:    spec.System,
		Schema:          spec.Schema,
		Table:           strings.ToUpper(spec.Table),
		AlgorithmUID:    spec.AlgorithmUID,
		AlgorithmUID2:   spec.AlgorithmUID2,
		SrcCd:           spec.SrcCd,
		DataCaptureMode: spec.DataCaptureMode,
		CehRes:          spec.CehResource,
	}

	s.ShortName = opts.ShortName.Name(s.Table)
	s.Instance = strings.ToLower(s.System + "_" + s.Schema)
	s.ActualDttmName = ActualDttmName(s.SrcCd)
	s.FileName = strings.ToLower(strings.Join([]string{s.System, s.Schema, s.Table, "json"}, "."))

	if opts.UniResource == nil {
		s.UniRes = strings.ToLower(s.System) + "." + strings.ToLower(s.Schema) + "." + strings.ToLower(s.Table)
	} else {
		var b strings.Builder
		if err := opts.UniResource.Execute(&b, s); err != nil {
			return nil, fmt.Errorf("rendering uni resource for %s: %w", s.FullName(), err)
		}

		s.UniRes = strings.TrimSpace(b.String())
	}

	s.ResourceCd = s.UniRes

	return s, nil
}

// AddField appends a source column.
func (s *Source) AddField(f DataBaseField) {
	s.Fields = append(s.Fields, f.clone())
}

// FullName returns schema.table in lower case.
func (s *Source) FullName() string {
	return strings.ToLower(s.Schema + "." + s.Table)
}
