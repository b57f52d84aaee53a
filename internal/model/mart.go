package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateField is returned when a mart already has a field with the same target name.
var ErrDuplicateField = errors.New("duplicate mart field")

// MartSpec holds the values a Mart is built from.
type MartSpec struct {
	ShortName     string
	AlgorithmUID  string
	AlgorithmUID2 string
	Target        string
	Source        string
	DeltaMode     string
	ProcessedDt   string
	Algo          string
	SourceSystem  string
	SourceSchema  string
	SourceName    string
	TableName     string
	SrcCd         string
	Comment       string
	UniResourceCd string
}

// Mart is the workflow view of a target table.
type Mart struct {
	ShortName      string
	AlgorithmUID   string
	AlgorithmUID2  string
	Target         string
	Source         string
	DeltaMode      string
	ProcessedDt    string
	Algo           string
	SourceSystem   string
	SourceSchema   string
	SourceName     string
	TableName      string
	SrcCd          string
	ActualDttmName string
	Comment        string
	UniResourceCd  string

	Fields  []MartField
	HubList []*HubMartField

	opts *Options
}

// NewMart builds a mart and adds the preset fields.
func NewMart(spec MartSpec, opts *Options) (*Mart, error) {
	m := &Mart{
		ShortName:      spec.ShortName,
		AlgorithmUID:   spec.AlgorithmUID,
		AlgorithmUID2:  spec.AlgorithmUID2,
		Target:         spec.Target,
		Source:         spec.Source,
		DeltaMode:      spec.DeltaMode,
		ProcessedDt:    spec.ProcessedDt,
		Algo:           spec.Algo,
		SourceSystem:   strings.ToLower(spec.SourceSystem),
		SourceSchema:   strings.ToLower(spec.SourceSchema),
		SourceName:     strings.ToLower(spec.SourceName),
		TableName:      spec.TableName,
		SrcCd:          spec.SrcCd,
		ActualDttmName: ActualDttmName(spec.SrcCd),
		Comment:        spec.Comment,
		UniResourceCd:  spec.UniResourceCd,
		opts:           opts,
	}

	for _, p := range opts.PresetFields {
		err := m.AddField(MartField{
			TgtField:     p.Name,
			ValueType:    p.ValueType,
			Value:        p.Value,
			TgtFieldType: p.FieldType,
		})
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AddField appends a field. Fields on the ignore list are skipped silently;
// a second field with the same target name yields ErrDuplicateField.
func (m *Mart) AddField(f MartField) error {
	if m.opts.ignoredFieldMap(f.TgtField) {
		return nil
	}

	if m.HasField(f.TgtField) {
		return fmt.Errorf("%w: %q is already in mart %s", ErrDuplicateField, f.TgtField, m.TableName)
	}

	m.Fields = append(m.Fields, f)

	return nil
}

// HasField reports whether the mart has a field with the target name.
func (m *Mart) HasField(name string) bool {
	for _, f := range m.Fields {
		if f.TgtField == name {
			return true
		}
	}

	return false
}

// FieldMap returns the fields rendered in the field map section.
func (m *Mart) FieldMap() []MartField {
	out := make([]MartField, 0, len(m.Fields))

	for _, f := range m.Fields {
		if !f.IsHubField {
			out = append(out, f)
		}
	}

	return out
}

// AddHub links a hub to the mart and stamps it with the mart's source code.
func (m *Mart) AddHub(h *HubMartField) {
	h.ActualDttmName = m.ActualDttmName
	h.SrcCd = m.SrcCd
	m.HubList = append(m.HubList, h)
}
