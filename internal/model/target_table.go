package model

import (
	"slices"
	"strings"
)

// HashFieldSoftLimit is the hash field count above which a warning is raised.
const HashFieldSoftLimit = 100

// TargetTableSpec holds the values a TargetTable is built from.
type TargetTableSpec struct {
	Schema    string
	TableName string
	Comment   string
	TableType string
	SrcCd     string
	// DistributionField is the comma-separated distribution key; empty falls back to the primary key.
	DistributionField string
}

// TargetTable is the physical description of a target table.
type TargetTable struct {
	Schema            string
	TableName         string
	Comment           string
	TableType         string
	SrcCd             string
	ActualDttmName    string
	FileName          string
	DistributionField string
	DistributedBy     string
	PrimaryKey        string

	Fields []DataBaseField
	// ResourceCehFields are Fields with datatypes spelled for resource descriptors.
	ResourceCehFields []DataBaseField
	HashFields        []string
	MultiFields       []string
	HubFields         []*HubMartField

	opts *Options
}

// NewTargetTable creates an empty target table.
func NewTargetTable(spec TargetTableSpec, opts *Options) *TargetTable {
	t := &TargetTable{
		Schema:            spec.Schema,
		TableName:         spec.TableName,
		Comment:           spec.Comment,
		TableType:         strings.ToUpper(spec.TableType),
		SrcCd:             spec.SrcCd,
		ActualDttmName:    ActualDttmName(spec.SrcCd),
		FileName:          strings.ToLower(spec.Schema + "." + spec.TableName),
		DistributionField: strings.ToLower(spec.DistributionField),
		opts:              opts,
	}

	t.DistributedBy = t.DistributionField

	return t
}

// IsMart reports whether the table is a MART object.
func (t *TargetTable) IsMart() bool {
	return t.TableType == "MART"
}

// FullName returns schema.table.
func (t *TargetTable) FullName() string {
	return t.Schema + "." + t.TableName
}

// AddField appends a column and updates the derived key and hash lists.
func (t *TargetTable) AddField(f DataBaseField) {
	f = f.clone()
	t.Fields = append(t.Fields, f)

	ceh := f.clone()
	if alias, ok := t.opts.CehAliases[f.DataType]; ok {
		ceh.DataType = alias
	}

	t.ResourceCehFields = append(t.ResourceCehFields, ceh)

	if f.IsPK && !t.opts.ignoredPK(f.Name) {
		if t.PrimaryKey == "" {
			t.PrimaryKey = f.Name
		} else {
			t.PrimaryKey += "," + f.Name
		}
	}

	if t.DistributionField == "" {
		t.DistributedBy = t.PrimaryKey
	}

	if !f.IsPK && !f.IsHubField() && !t.opts.ignoredHash(f.Name) {
		t.HashFields = append(t.HashFields, f.Name)
	}

	if f.IsPK && !f.IsHubField() && !t.opts.ignoredMulti(f.Name) {
		t.MultiFields = append(t.MultiFields, f.Name)
	}
}

// AddHubField records a hub linked through one of the table's columns.
func (t *TargetTable) AddHubField(h *HubMartField) {
	t.HubFields = append(t.HubFields, h)
}

// Sort orders the key lists by name and puts primary key columns first.
func (t *TargetTable) Sort() {
	slices.Sort(t.HashFields)
	slices.Sort(t.MultiFields)
	slices.SortStableFunc(t.Fields, compareFields)
}

// HashFieldsOverLimit reports whether the hash list exceeds HashFieldSoftLimit.
func (t *TargetTable) HashFieldsOverLimit() bool {
	return len(t.HashFields) > HashFieldSoftLimit
}

func compareFields(a, b DataBaseField) int {
	switch {
	case a.IsPK && !b.IsPK:
		return -1
	case !a.IsPK && b.IsPK:
		return 1
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
