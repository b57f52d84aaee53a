package model

import (
	"slices"
	"strings"
	"text/template"
)

// PresetField is a mart field added to every mart before workbook fields.
type PresetField struct {
	Name      string
	ValueType ValueType
	Value     string
	FieldType string
}

// Options is the read-only configuration context passed to entity constructors.
type Options struct {
	IgnorePrimaryKey  []string
	IgnoreHashFields  []string
	IgnoreMultiFields []string
	// IgnoreFieldMap lists target fields never added to a mart field map.
	IgnoreFieldMap []string
	// PresetFields are added to every mart.
	PresetFields []PresetField
	// CehAliases maps datatypes to the spelling used by resource descriptors.
	CehAliases map[string]string
	// UniResource renders a source resource id; nil selects system.schema.table.
	UniResource *template.Template
	ShortName   ShortNamer
}

// DefaultOptions returns options with no lists and the default short-name rule.
func DefaultOptions() *Options {
	return &Options{ShortName: DefaultShortNamer()}
}

func (o *Options) ignoredPK(name string) bool {
	return slices.Contains(o.IgnorePrimaryKey, name)
}

func (o *Options) ignoredHash(name string) bool {
	return slices.Contains(o.IgnoreHashFields, name)
}

func (o *Options) ignoredMulti(name string) bool {
	return slices.Contains(o.IgnoreMultiFields, name)
}

func (o *Options) ignoredFieldMap(name string) bool {
	return slices.Contains(o.IgnoreFieldMap, name)
}

// UniResourceFuncs are the functions available to uni resource templates.
var UniResourceFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// ParseUniResource parses a uni resource template. An empty text yields nil.
func ParseUniResource(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return template.New("uni_resource").Funcs(UniResourceFuncs).Option("missingkey=error").Parse(text)
}
