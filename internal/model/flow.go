package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// CreatedLayout is the strftime layout of FlowContext.Created.
const CreatedLayout = "%d %b %Y %H:%M:%S"

// ErrNoSources is returned by FormTags when the flow has no source or target.
var ErrNoSources = errors.New("flow has no sources or targets")

// FlowMeta is the run-level metadata copied into every flow.
type FlowMeta struct {
	Author                string
	Username              string
	DataCaptureMode       string
	DeltaMode             string
	ProcessedDt           string
	ProcessedDtConversion string
	TgtHistoryField       string
	WorkFlowSchemaVersion string
	Now                   time.Time
}

// FlowContext is everything the renderer needs for one flow.
type FlowContext struct {
	FlowName     string
	BaseFlowName string

	Sources      []*Source
	Targets      []*Target
	LocalMetrics []*LocalMetric
	Marts        []*Mart
	TargetTables []*TargetTable
	Hubs         []*HubMartField

	Tags         []string
	ResourceTags []string

	Author                string
	Username              string
	Created               string
	DataCaptureMode       string
	DeltaMode             string
	ProcessedDt           string
	ProcessedDtConversion string
	TgtHistoryField       string
	WorkFlowSchemaVersion string
}

// NewFlowContext creates an empty flow.
func NewFlowContext(flowName string, meta FlowMeta) (*FlowContext, error) {
	stamp, err := strftime.Format(CreatedLayout, meta.Now)
	if err != nil {
		return nil, fmt.Errorf("formatting creation time: %w", err)
	}

	return &FlowContext{
		FlowName:              flowName,
		BaseFlowName:          strings.TrimPrefix(flowName, "wf_"),
		Author:                meta.Author,
		Username:              meta.Username,
		Created:               fmt.Sprintf(`"%s" by %s`, stamp, meta.Author),
		DataCaptureMode:       meta.DataCaptureMode,
		DeltaMode:             meta.DeltaMode,
		ProcessedDt:           meta.ProcessedDt,
		ProcessedDtConversion: meta.ProcessedDtConversion,
		TgtHistoryField:       meta.TgtHistoryField,
		WorkFlowSchemaVersion: meta.WorkFlowSchemaVersion,
	}, nil
}

func (f *FlowContext) AddSource(s *Source) {
	f.Sources = append(f.Sources, s)
}

func (f *FlowContext) AddTarget(t *Target) {
	f.Targets = append(f.Targets, t)
}

func (f *FlowContext) AddLocalMetric(m *LocalMetric) {
	f.LocalMetrics = append(f.LocalMetrics, m)
}

// AddMart attaches a mart and collects its hubs, keeping one hub per full table name.
func (f *FlowContext) AddMart(m *Mart) {
	f.Marts = append(f.Marts, m)

	for _, h := range m.HubList {
		if f.Hub(h.FullTableName) == nil {
			f.Hubs = append(f.Hubs, h)
		}
	}
}

// AddTargetTable sorts the table's fields and attaches it.
func (f *FlowContext) AddTargetTable(t *TargetTable) {
	t.Sort()
	f.TargetTables = append(f.TargetTables, t)
}

// Hub returns the flow's hub with the given full table name, or nil.
func (f *FlowContext) Hub(fullName string) *HubMartField {
	for _, h := range f.Hubs {
		if h.FullTableName == fullName {
			return h
		}
	}

	return nil
}

// FormTags builds the resource and flow tag lists. Configured tags come first,
// followed by tags derived from the first source and target, the flow names,
// the source tables, the algorithm UIDs and the mart target tables.
// It must run after every source and target was added.
func (f *FlowContext) FormTags(resourceTags, flowTags []string) error {
	if len(f.Sources) == 0 || len(f.Targets) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSources, f.FlowName)
	}

	f.ResourceTags = f.ResourceTags[:0]
	for _, t := range resourceTags {
		f.ResourceTags = append(f.ResourceTags, `"`+t+`"`)
	}

	tags := make([]string, 0, len(flowTags)+5+2*len(f.Sources)+len(f.Targets))
	tags = append(tags, flowTags...)
	tags = append(tags,
		"prv:"+f.Sources[0].System,
		"src:"+strings.ToUpper(f.Targets[0].SrcCd),
		"tgt:"+f.Targets[0].Schema,
		"cf_"+f.BaseFlowName,
		"wf_"+f.BaseFlowName,
	)

	seen := make(map[string]struct{})
	unique := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, s := range f.Sources {
		unique("src_tbl:" + s.Schema + "." + s.Table)
	}

	for _, s := range f.Sources {
		unique("UID:" + s.AlgorithmUID)
	}

	for _, t := range f.Targets {
		if strings.HasPrefix(t.Table, "mart_") {
			unique("tgt_tbl:" + t.Table)
		}
	}

	f.Tags = f.Tags[:0]
	for _, t := range tags {
		f.Tags = append(f.Tags, "'"+t+"'")
	}

	return nil
}
