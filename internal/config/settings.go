package config

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/umisama/go-regexpcache"
)

// Sheet names of the mapping workbook.
const (
	DefaultFlowListSheet = "Перечень загрузок Src-RDV"
	DefaultDetailsSheet  = "Детали загрузок Src-RDV"
)

// Named regular expressions looked up by the builder and the repository.
const (
	RegexpSrcTableName = "src_table_name_regexp"
	RegexpTgtTableName = "tgt_table_name_regexp"
	RegexpSrcCd        = "src_cd_regexp"
	RegexpTgtAttrName  = "tgt_attr_name_regexp"
	RegexpBkSchema     = "bk_schema_regexp"
	RegexpBkObject     = "bk_object_regexp"
	RegexpHubNullDef   = "hub_nulldefault"

	DefaultHubNullDefault = "^(new_rk|good_default|delete_record)$"
)

// ErrMissingRegexp is returned when a named regular expression is not configured
// and the caller supplied no default.
var ErrMissingRegexp = errors.New("regular expression not found in config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings is the parsed generator configuration.
type Settings struct {
	Author                string `yaml:"author" validate:"required"`
	ExcelFile             string `yaml:"excel_file"`
	OutPath               string `yaml:"out_path" validate:"required"`
	LogFile               string `yaml:"log_file"`
	LogLevel              string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Templates             string `yaml:"templates"`
	Colorlog              bool   `yaml:"colorlog"`
	DataCaptureMode       string `yaml:"data_capture_mode" validate:"required"`
	DeltaMode             string `yaml:"delta_mode" validate:"required"`
	ProcessedDt           string `yaml:"processed_dt" validate:"required"`
	ProcessedDtConversion string `yaml:"processed_dt_conversion" validate:"required"`
	TgtHistoryField       string `yaml:"tgt_history_field"`
	WorkFlowSchemaVersion string `yaml:"work_flow_schema_version"`
	// UniResourceTemplate is a text/template rendered over a source to build its resource id.
	UniResourceTemplate string `yaml:"uni_resource_template"`

	// FlowNamePatterns are joined by alternation; flows not matching are skipped.
	FlowNamePatterns []string `yaml:"wf_templates_list" validate:"required,min=1"`

	Tags         TagList `yaml:"tags"`
	ResourceTags TagList `yaml:"resource_tags"`

	Regexps map[string]string `yaml:"regexp"`

	FieldLists FieldLists      `yaml:"setting_up_field_lists"`
	FieldTypes FieldTypes      `yaml:"field_type_list"`
	Excel      ExcelDefinition `yaml:"excel_data_definition"`
	PKTokens   PKTokenRule     `yaml:"tgt_pk"`
	ShortName  ShortNameRule   `yaml:"short_name"`
}

// FieldLists holds the ignore and always-add lists for entity construction.
type FieldLists struct {
	IgnorePrimaryKey  NameList        `yaml:"ignore_primary_key"`
	IgnoreHashSet     NameList        `yaml:"ignore_hash_set"`
	IgnoreMultiFields NameList        `yaml:"ignore_multi_fields"`
	IgnoreFieldMap    NameList        `yaml:"ignore_field_map_ctx_list"`
	AddFieldMap       FieldMapEntries `yaml:"add_field_map_ctx_list"`
}

// FieldMapEntry is a mart field that is always added to every mart.
type FieldMapEntry struct {
	Name      string `yaml:"-"`
	Type      string `yaml:"type" validate:"required"`
	Value     string `yaml:"value"`
	FieldType string `yaml:"field_type"`
}

// FieldTypes holds datatype allow-lists, alias tables and the compatibility table.
type FieldTypes struct {
	SrcAllowed    []string            `yaml:"src_attr_datatype"`
	TgtAllowed    []string            `yaml:"tgt_attr_datatype"`
	Predefined    PredefinedAttrs     `yaml:"tgt_attr_predefined_datatype"`
	SrcAliases    map[string]string   `yaml:"src_datatype_aliases"`
	TgtAliases    map[string]string   `yaml:"tgt_datatype_aliases"`
	CehAliases    map[string]string   `yaml:"ceh_datatype_aliases"`
	Compatibility map[string][]string `yaml:"corresp_datatype"`
}

// ExcelDefinition describes the workbook layout.
type ExcelDefinition struct {
	// HeaderRow is the zero-based index of the header row; zero selects the default (1).
	HeaderRow     int                          `yaml:"header_row" validate:"gte=0"`
	FlowListSheet string                       `yaml:"flow_list_sheet" validate:"required"`
	DetailsSheet  string                       `yaml:"details_sheet" validate:"required"`
	Columns       map[string][]string          `yaml:"columns"`
	ColAliases    map[string]map[string]string `yaml:"col_aliases"`
}

// PKTokenRule lists tokens allowed in the composite tgt_pk column.
// Strict turns unknown tokens into structural errors instead of warnings.
type PKTokenRule struct {
	Allowed []string `yaml:"allowed" validate:"required,min=1"`
	Strict  bool     `yaml:"strict"`
}

// ShortNameRule bounds generated short names.
type ShortNameRule struct {
	Length       int `yaml:"length" validate:"gte=2,lte=22"`
	RandomLength int `yaml:"random_length" validate:"gte=1,ltfield=Length"`
}

// Validate checks the settings with struct tags.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(s.Regexps)) {
		if _, err := Compile(s.Regexps[name]); err != nil {
			return fmt.Errorf("invalid regular expression %q: %w", name, err)
		}
	}

	return nil
}

// Regexp returns the named regular expression. When the name is absent,
// def is returned if non-empty; otherwise ErrMissingRegexp.
func (s *Settings) Regexp(name, def string) (string, error) {
	if p, ok := s.Regexps[name]; ok {
		return p, nil
	}

	if def != "" {
		return def, nil
	}

	return "", fmt.Errorf("%w: %q", ErrMissingRegexp, name)
}

// Columns returns the configured column names of a sheet.
func (s *Settings) Columns(sheet string) []string {
	return s.Excel.Columns[sheet]
}

// ColumnAliases returns the alias table of a sheet.
func (s *Settings) ColumnAliases(sheet string) map[string]string {
	return s.Excel.ColAliases[sheet]
}

// Compile compiles a pattern anchored at the start of the input.
// Compiled patterns are cached.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexpcache.Compile(`^(?:` + pattern + `)`)
}
