package mapping

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"rdv-generator/internal/common"
	"rdv-generator/internal/config"
	"rdv-generator/internal/diagnostic"
	"rdv-generator/internal/match"
	"rdv-generator/internal/sheet"
)

// Repository holds the validated flow list and details rows.
// It is read-only after New returns.
type Repository struct {
	settings *config.Settings
	log      *zap.SugaredLogger

	flows   []FlowRow
	details []DetailRow
	tables  []string
	diags   diagnostic.Diagnostics
}

// New loads both sheets from wb and validates them.
// Structural problems are returned together as a *StructureError.
func New(wb sheet.Workbook, settings *config.Settings, log *zap.SugaredLogger) (*Repository, error) {
	r := &Repository{settings: settings, log: log}

	if err := r.loadFlowList(wb); err != nil {
		return nil, err
	}

	if err := r.loadDetails(wb); err != nil {
		return nil, err
	}

	if r.diags.HasErrors() {
		return nil, &StructureError{Diagnostics: r.diags}
	}

	return r, nil
}

func (r *Repository) loadTable(wb sheet.Workbook, name string, defaults []string) (*sheet.Table, error) {
	columns := r.settings.Columns(name)
	if len(columns) == 0 {
		columns = defaults
	}

	t, err := sheet.LoadTable(wb, sheet.TableSpec{
		Sheet:     name,
		HeaderRow: r.settings.Excel.HeaderRow,
		Columns:   columns,
		Aliases:   r.settings.ColumnAliases(name),
	})
	if err != nil {
		return nil, fmt.Errorf("loading sheet %q: %w", name, err)
	}

	for alias, col := range t.Aliased {
		r.log.Infow("column renamed", "sheet", name, "from", alias, "to", col)
	}

	return t, nil
}

func (r *Repository) loadFlowList(wb sheet.Workbook) error {
	t, err := r.loadTable(wb, r.settings.Excel.FlowListSheet, DefaultFlowListColumns)
	if err != nil {
		return err
	}

	names, err := config.Compile(strings.Join(r.settings.FlowNamePatterns, "|"))
	if err != nil {
		return fmt.Errorf("invalid wf_templates_list: %w", err)
	}

	for _, raw := range t.Rows() {
		row := newFlowRow(raw)

		switch {
		case row.FlowName == "":
			continue
		case !names.MatchString(row.FlowName):
			r.log.Debugw("flow skipped by name pattern", "flow", row.FlowName, "line", row.Line)
			continue
		case row.VersionEnd != "":
			continue
		}

		r.flows = append(r.flows, row)
	}

	tables := make([]string, 0, len(r.flows))
	pairs := make([]string, 0, len(r.flows))

	for _, f := range r.flows {
		tables = append(tables, f.TgtTable)
		pairs = append(pairs, NormalizeUID(f.AlgorithmUID)+" "+f.TgtTable)
	}

	empty := func(s string) bool { return strings.TrimSpace(s) == "" }

	for _, tbl := range common.Duplicates(tables, empty) {
		r.fail(CodeDuplicateTargetTable,
			fmt.Sprintf("target table %s is listed more than once on sheet %q", tbl, r.settings.Excel.FlowListSheet),
			diagnostic.Location{Table: tbl})
	}

	for _, pair := range common.Duplicates(pairs, empty) {
		uid, tbl, _ := strings.Cut(pair, " ")
		r.fail(CodeDuplicateAlgorithm,
			fmt.Sprintf("algorithm %s is listed more than once for target table %s", uid, tbl),
			diagnostic.Location{Table: tbl})
	}

	slices.SortStableFunc(r.flows, func(a, b FlowRow) int {
		return cmp.Or(cmp.Compare(a.FlowName, b.FlowName), cmp.Compare(a.AlgorithmUID, b.AlgorithmUID))
	})

	for _, f := range r.flows {
		if f.TgtTable != "" && !slices.Contains(r.tables, f.TgtTable) {
			r.tables = append(r.tables, f.TgtTable)
		}
	}

	return nil
}

func (r *Repository) loadDetails(wb sheet.Workbook) error {
	t, err := r.loadTable(wb, r.settings.Excel.DetailsSheet, DefaultDetailsColumns)
	if err != nil {
		return err
	}

	types := r.settings.FieldTypes
	if len(types.SrcAliases) == 0 {
		r.warn(CodeMissingDatatypeAlias, "src_datatype_aliases is not configured, source datatypes are used as is",
			diagnostic.Location{})
	}

	if len(types.TgtAliases) == 0 {
		r.warn(CodeMissingDatatypeAlias, "tgt_datatype_aliases is not configured, target datatypes are used as is",
			diagnostic.Location{})
	}

	nullDefault, err := r.settings.Regexp(config.RegexpHubNullDef, config.DefaultHubNullDefault)
	if err != nil {
		return err
	}

	nullDefaultRe, err := config.Compile(nullDefault)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.RegexpHubNullDef, err)
	}

	for _, raw := range t.Rows() {
		tgtTable := normalizeTable(raw.Get(ColTgtTable))
		if tgtTable == "" || cell(raw, ColVersionEnd) != "" || !slices.Contains(r.tables, tgtTable) {
			continue
		}

		row := DetailRow{
			Line:             raw.Line,
			SrcTable:         match.NormalizeText(raw.Get(ColSrcTable)),
			SrcAttribute:     match.NormalizeText(raw.Get(ColSrcAttribute)),
			SrcAttrDatatype:  match.NormalizeDatatype(raw.Get(ColSrcAttrDatatype), types.SrcAliases),
			Expression:       cell(raw, ColExpression),
			TgtTable:         tgtTable,
			TgtAttribute:     match.NormalizeText(raw.Get(ColTgtAttribute)),
			TgtAttrDatatype:  match.NormalizeDatatype(raw.Get(ColTgtAttrDatatype), types.TgtAliases),
			TgtAttrMandatory: NormalizeMandatory(raw.Get(ColTgtAttrMandatory)),
			TgtPK:            SplitPKTokens(raw.Get(ColTgtPK)),
			Comment:          cell(raw, ColComment),
			ConversionType:   match.NormalizeText(raw.Get(ColConversionType)),
			BkSchema:         cell(raw, ColBkSchema),
			BkObject:         cell(raw, ColBkObject),
			NullDefault:      cell(raw, ColNullDefault),
		}

		at := diagnostic.Location{Table: row.TgtTable, Field: row.TgtAttribute}

		row.IsPK = slices.Contains(row.TgtPK, PKToken)
		r.checkPKTokens(row, at)

		srcPK, err := ParsePKFlag(raw.Get(ColSrcPK))
		if err != nil {
			r.warn(CodeInvalidSrcPK, fmt.Sprintf("line %d: %v, the column is not a key", row.Line, err), at)
		}

		row.SrcPK = srcPK

		if row.IsHub() && row.NullDefault != "" && !nullDefaultRe.MatchString(row.NullDefault) {
			r.fail(CodeHubNullDefault,
				fmt.Sprintf("line %d: attr:nulldefault %q does not match %q", row.Line, row.NullDefault, nullDefault), at)
		}

		if row.SrcAttribute != "" && row.Expression != "" {
			r.fail(CodeExclusiveSource,
				fmt.Sprintf("line %d: src_attribute %q and expression %q are mutually exclusive (src_table %s)",
					row.Line, row.SrcAttribute, row.Expression, row.SrcTable), at)
		}

		r.details = append(r.details, row)
	}

	return nil
}

func (r *Repository) checkPKTokens(row DetailRow, at diagnostic.Location) {
	rule := r.settings.PKTokens

	unknown := UnknownPKTokens(row.TgtPK, rule.Allowed)
	if len(unknown) == 0 {
		return
	}

	msg := fmt.Sprintf("line %d: tgt_pk tokens %s are not processed (allowed: %s)",
		row.Line, strings.Join(unknown, ","), strings.Join(rule.Allowed, ","))

	if rule.Strict {
		r.fail(CodeUnknownPKToken, msg, at)
		return
	}

	r.warn(CodeUnknownPKToken, msg, at)
}

func (r *Repository) fail(code, msg string, at diagnostic.Location) {
	r.diags.AddError(code, msg, at)
	r.log.Errorw(msg, "code", code, "table", at.Table, "field", at.Field)
}

func (r *Repository) warn(code, msg string, at diagnostic.Location) {
	r.diags.AddWarning(code, msg, at)
	r.log.Warnw(msg, "code", code, "table", at.Table, "field", at.Field)
}

// Diagnostics returns the warnings recorded while loading.
func (r *Repository) Diagnostics() diagnostic.Diagnostics {
	return r.diags
}

// TargetTables returns the retained target tables in processing order.
func (r *Repository) TargetTables() []string {
	return slices.Clone(r.tables)
}

// Flows returns the retained flow names in processing order.
func (r *Repository) Flows() []string {
	var names []string

	for _, f := range r.flows {
		if len(names) == 0 || names[len(names)-1] != f.FlowName {
			names = append(names, f.FlowName)
		}
	}

	return names
}

// FlowRows returns the flow list rows of a flow in processing order.
func (r *Repository) FlowRows(flow string) []FlowRow {
	var rows []FlowRow

	for _, f := range r.flows {
		if f.FlowName == flow {
			rows = append(rows, f)
		}
	}

	return rows
}

// ByTargetTable returns the details rows of a target table in sheet order.
func (r *Repository) ByTargetTable(table string) []DetailRow {
	table = normalizeTable(table)

	var rows []DetailRow

	for _, d := range r.details {
		if d.TgtTable == table {
			rows = append(rows, d)
		}
	}

	return rows
}

// BySourceTable returns the source columns described for a source table.
func (r *Repository) BySourceTable(table string) []SourceField {
	table = strings.ToLower(strings.TrimSpace(table))

	var rows []SourceField

	for _, d := range r.details {
		if d.SrcTable != table {
			continue
		}

		rows = append(rows, SourceField{
			SrcTable:        d.SrcTable,
			SrcAttribute:    d.SrcAttribute,
			SrcAttrDatatype: d.SrcAttrDatatype,
			SrcPK:           d.SrcPK,
			Comment:         d.Comment,
			TgtAttribute:    d.TgtAttribute,
			TgtAttrDatatype: d.TgtAttrDatatype,
		})
	}

	return rows
}

// SourceCode extracts the logical source name of a table from the expression
// of its src_cd attribute. Exactly one src_cd row is required and the
// expression, with whitespace removed, must match src_cd_regexp; the first
// group is the result.
func (r *Repository) SourceCode(table string) (string, error) {
	var exprs []string

	for _, d := range r.ByTargetTable(table) {
		if d.TgtAttribute == "src_cd" {
			exprs = append(exprs, d.Expression)
		}
	}

	switch len(exprs) {
	case 0:
		return "", fmt.Errorf("%w: %s has no src_cd attribute", ErrSourceCode, table)
	case 1:
	default:
		return "", fmt.Errorf("%w: %s has %d src_cd attributes", ErrSourceCode, table, len(exprs))
	}

	pattern, err := r.settings.Regexp(config.RegexpSrcCd, "")
	if err != nil {
		return "", err
	}

	re, err := config.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", config.RegexpSrcCd, err)
	}

	value := match.StripSpaces(exprs[0])

	m := re.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("%w: %s: %q does not match %q, expected a cell like ='XXXX'",
			ErrSourceCode, table, value, pattern)
	}

	if len(m) < 2 || m[1] == "" {
		return "", fmt.Errorf("%w: %s: %q has no source name group in %q", ErrSourceCode, table, value, pattern)
	}

	return m[1], nil
}
