package build

import (
	"fmt"
	"slices"
	"strings"

	"rdv-generator/internal/common"
	"rdv-generator/internal/diagnostic"
	"rdv-generator/internal/mapping"
	"rdv-generator/internal/match"
	"rdv-generator/internal/model"
)

// flowRun holds the state of one flow while its tables are processed.
type flowRun struct {
	*Builder

	out  *diagnostic.Outcome
	flow *model.FlowContext
	// failed is set by any table-level error.
	failed bool
}

func (r *flowRun) at(table, field string) diagnostic.Location {
	return diagnostic.Location{Flow: r.flow.FlowName, Table: table, Field: field}
}

// fail records a table-level error; the flow will not be exported.
func (r *flowRun) fail(code, msg string, at diagnostic.Location) {
	r.failed = true
	r.Builder.fail(r.out, code, msg, at)
}

// table processes one flow list row. It returns early on the first problem
// that makes the rest of the table meaningless.
func (r *flowRun) table(h mapping.StreamHeader) {
	tbl := h.TgtFullName
	at := r.at(tbl, "")

	if h.TargetRDVObjectType != "MART" {
		// Unsupported objects are reported without failing the flow.
		r.Builder.fail(r.out, CodeUnsupportedObject,
			fmt.Sprintf("target objects of type %q are not supported", h.TargetRDVObjectType), at)

		return
	}

	rows := r.repo.ByTargetTable(tbl)
	if len(rows) == 0 {
		r.fail(CodeTableNotInDetails,
			fmt.Sprintf("table %s is not described on sheet %q", tbl, r.settings.Excel.DetailsSheet), at)

		return
	}

	if !r.srcTableName.MatchString(h.SrcFullName) {
		r.fail(CodeSrcTableName, fmt.Sprintf("source table %q does not match %q",
			h.SrcFullName, r.srcTableName.String()), at)

		return
	}

	if !r.tgtTableName.MatchString(tbl) {
		r.fail(CodeTgtTableName, fmt.Sprintf("target table %q does not match %q", tbl, r.tgtTableName.String()), at)
		return
	}

	srcCd, err := r.repo.SourceCode(tbl)
	if err != nil {
		r.fail(CodeSourceCode, fmt.Sprintf("%v; the source name is set in the expression of the src_cd attribute", err), at)
		return
	}

	if !r.checkIdentity(h, at) {
		return
	}

	source, err := model.NewSource(model.SourceSpec{
		System:          h.SourceSystem,
		Schema:          h.SrcSchema,
		Table:           h.SrcTable,
		AlgorithmUID:    h.AlgorithmUID,
		AlgorithmUID2:   h.SubAlgorithmUID,
		CehResource:     h.TgtResourceCd,
		SrcCd:           srcCd,
		DataCaptureMode: r.settings.DataCaptureMode,
	}, r.opts)
	if err != nil {
		r.fail(CodeUniResource, err.Error(), at)
		return
	}

	r.sourceFields(h, source)
	r.flow.AddSource(source)

	target := model.NewTarget(h.TgtSchema, h.TgtTable, strings.ToLower(srcCd), h.TargetRDVObjectType,
		source.UniRes, r.opts)

	r.flow.AddLocalMetric(model.NewLocalMetric(r.settings.ProcessedDtConversion, r.settings.ProcessedDt,
		h.AlgorithmUID, h.SourceSystem, h.SrcSchema, h.SrcTable))
	r.flow.AddTarget(target)

	mart, err := model.NewMart(model.MartSpec{
		ShortName:     target.ShortName,
		AlgorithmUID:  h.AlgorithmUID,
		AlgorithmUID2: h.SubAlgorithmUID,
		Target:        target.ShortName,
		Source:        source.ShortName,
		DeltaMode:     r.settings.DeltaMode,
		ProcessedDt:   r.settings.ProcessedDt,
		Algo:          h.AlgorithmUID,
		SourceSystem:  h.SourceSystem,
		SourceSchema:  h.SrcSchema,
		SourceName:    h.SrcTable,
		TableName:     h.TgtTable,
		SrcCd:         srcCd,
		Comment:       h.Comment,
		UniResourceCd: source.UniRes,
	}, r.opts)
	if err != nil {
		r.fail(CodeDuplicateMartField, err.Error(), at)
		return
	}

	r.martFields(tbl, rows, mart)
	r.predefined(tbl, rows)

	tt := model.NewTargetTable(model.TargetTableSpec{
		Schema:            h.TgtSchema,
		TableName:         h.TgtTable,
		Comment:           h.Comment,
		TableType:         h.TargetRDVObjectType,
		SrcCd:             srcCd,
		DistributionField: h.DistributionField,
	}, r.opts)

	r.tableFields(tbl, rows, mart, tt)
	r.flow.AddTargetTable(tt)

	if tt.HashFieldsOverLimit() {
		r.warn(r.out, CodeHashFieldLimit, fmt.Sprintf("table %s has %d hash fields, more than %d",
			tt.TableName, len(tt.HashFields), model.HashFieldSoftLimit), at)
	}

	r.flow.AddMart(mart)
}

func (r *flowRun) checkIdentity(h mapping.StreamHeader, at diagnostic.Location) bool {
	switch {
	case h.SourceSystem == "":
		r.fail(CodeSourceSystem, "source_name (transport system) is not set", at)
	case h.AlgorithmUID == "":
		r.fail(CodeAlgorithmUID, "algorithm_uid is not set", at)
	case h.SubAlgorithmUID == "":
		r.fail(CodeSubAlgorithmUID, "subalgorithm_uid is not set", at)
	case !isDigits(h.SubAlgorithmUID):
		r.fail(CodeSubAlgorithmUID, fmt.Sprintf("subalgorithm_uid %q must be an integer", h.SubAlgorithmUID), at)
	default:
		return true
	}

	return false
}

func (r *flowRun) sourceFields(h mapping.StreamHeader, source *model.Source) {
	fields := slices.DeleteFunc(r.repo.BySourceTable(h.SrcFullName), func(f mapping.SourceField) bool {
		return f.SrcAttribute == ""
	})

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.SrcAttribute)
	}

	if dups := common.Duplicates(names, nil); len(dups) > 0 {
		r.warn(r.out, CodeDuplicateSrcAttr,
			fmt.Sprintf("source table %s lists attributes %s more than once, duplicates are dropped",
				h.SrcFullName, strings.Join(dups, ", ")),
			r.at(h.TgtFullName, ""))
	}

	allowed := r.settings.FieldTypes.SrcAllowed

	for _, f := range common.UniqueBy(fields, func(f mapping.SourceField) string { return f.SrcAttribute }) {
		if !slices.Contains(allowed, f.SrcAttrDatatype) {
			r.warn(r.out, CodeSrcDatatype,
				fmt.Sprintf("source attribute type %q is not in the allowed list", f.SrcAttrDatatype),
				r.at(h.SrcFullName, f.SrcAttribute),
				match.Suggest(f.SrcAttrDatatype, allowed, suggestMaxDistance, suggestLimit)...)
		}

		source.AddField(model.DataBaseField{
			Name:     f.SrcAttribute,
			DataType: f.SrcAttrDatatype,
			Comment:  f.Comment,
			IsPK:     f.SrcPK,
		})
	}
}

func (r *flowRun) martFields(tbl string, rows []mapping.DetailRow, mart *model.Mart) {
	allowed := r.settings.FieldTypes.TgtAllowed

	for _, row := range rows {
		at := r.at(tbl, row.TgtAttribute)

		f := model.NewMartField(model.MartFieldInput{
			SrcAttribute: row.SrcAttribute,
			SrcDataType:  row.SrcAttrDatatype,
			TgtAttribute: row.TgtAttribute,
			TgtDataType:  row.TgtAttrDatatype,
			Expression:   row.Expression,
			IsPK:         row.IsPK,
			IsHub:        row.IsHub(),
		})

		if err := mart.AddField(f); err != nil {
			r.fail(CodeDuplicateMartField, err.Error(), at)
		}

		if f.IsHubField {
			r.info(r.out, CodeHubFieldMap, "field is emitted in hub_map instead of field_map", at)
		}

		if !slices.Contains(allowed, row.TgtAttrDatatype) {
			r.warn(r.out, CodeTgtDatatype,
				fmt.Sprintf("target attribute type %q is not in the allowed list", row.TgtAttrDatatype), at,
				match.Suggest(row.TgtAttrDatatype, allowed, suggestMaxDistance, suggestLimit)...)
		}

		if row.SrcAttribute != "" {
			switch r.compat.Check(row.SrcAttrDatatype, row.TgtAttrDatatype) {
			case match.VerdictUnknownSource:
				r.warn(r.out, CodeUnknownSrcDatatype,
					fmt.Sprintf("source type %q is missing from corresp_datatype", row.SrcAttrDatatype), at)
			case match.VerdictIncompatible:
				r.warn(r.out, CodeIncompatibleDatatype,
					fmt.Sprintf("target type %q is not listed in corresp_datatype for %s: %v",
						row.TgtAttrDatatype, row.SrcAttrDatatype, r.compat[row.SrcAttrDatatype]), at)
			case match.VerdictUnchecked, match.VerdictCompatible:
			}
		}

		if !r.tgtAttrName.MatchString(row.TgtAttribute) {
			r.fail(CodeTgtAttrName, fmt.Sprintf("target attribute %q does not match %q",
				row.TgtAttribute, r.tgtAttrName.String()), at)
		}

		if row.SrcAttribute == "" && row.Expression == "" &&
			!slices.Contains(r.settings.FieldLists.IgnoreFieldMap, row.TgtAttribute) {
			r.warn(r.out, CodeNoValue, "neither src_attribute nor expression is set", at)
		}
	}
}

// predefined checks the attributes every table must declare exactly once
// with a fixed datatype and mandatory flag.
func (r *flowRun) predefined(tbl string, rows []mapping.DetailRow) {
	for _, p := range r.settings.FieldTypes.Predefined {
		at := r.at(tbl, p.Name)

		var found []mapping.DetailRow

		for _, row := range rows {
			if row.TgtAttribute == p.Name {
				found = append(found, row)
			}
		}

		dataType := match.NormalizeDatatype(p.DataType, r.settings.FieldTypes.TgtAliases)
		mandatory := mapping.NormalizeMandatory(p.Mandatory)

		switch {
		case len(found) == 0:
			r.fail(CodePredefinedMissing, fmt.Sprintf("mandatory attribute %q is missing", p.Name), at)
		case len(found) > 1:
			r.fail(CodePredefinedDuplicate,
				fmt.Sprintf("mandatory attribute %q is listed %d times", p.Name, len(found)), at)
		case found[0].TgtAttrDatatype != dataType || found[0].TgtAttrMandatory != mandatory:
			r.fail(CodePredefinedMismatch,
				fmt.Sprintf("mandatory attribute %q is %s %s, expected %s %s", p.Name,
					found[0].TgtAttrDatatype, found[0].TgtAttrMandatory, dataType, mandatory), at)
		}
	}
}

func (r *flowRun) tableFields(tbl string, rows []mapping.DetailRow, mart *model.Mart, tt *model.TargetTable) {
	for _, row := range rows {
		props := map[string]any{}

		if row.IsHub() {
			props[model.PropHubField] = true
			props[model.PropHub] = []string{}

			if hub := r.hub(tbl, row); hub != nil {
				mart.AddHub(hub)
				tt.AddHubField(hub)
			}
		}

		tt.AddField(model.DataBaseField{
			Name:       row.TgtAttribute,
			DataType:   row.TgtAttrDatatype,
			Comment:    row.Comment,
			IsNullable: row.IsNullable(),
			IsPK:       row.IsPK,
			Properties: props,
		})
	}
}

// hub validates the business key columns of a hub row and builds the link.
// The retain key column is the target attribute unless attr:bk_object
// names it as a third part: schema.hub.rk_field.
func (r *flowRun) hub(tbl string, row mapping.DetailRow) *model.HubMartField {
	at := r.at(tbl, row.TgtAttribute)
	ok := true

	if !r.bkSchema.MatchString(row.BkSchema) {
		r.fail(CodeBkSchema, fmt.Sprintf("bk schema %q does not match %q", row.BkSchema, r.bkSchema.String()), at)
		ok = false
	}

	if !r.bkObject.MatchString(row.BkObject) {
		r.fail(CodeBkObject, fmt.Sprintf("hub %q does not match %q", row.BkObject, r.bkObject.String()), at)
		ok = false
	}

	parts := strings.Split(row.BkObject, ".")
	if !ok || len(parts) < 2 {
		if ok {
			r.fail(CodeBkObject, fmt.Sprintf("hub %q is not schema.table", row.BkObject), at)
		}

		return nil
	}

	rk := row.TgtAttribute
	if len(parts) > 2 {
		rk = parts[2]
	}

	return model.NewHubMartField(model.HubSpec{
		Schema:            parts[0],
		Table:             parts[1],
		RkField:           rk,
		BusinessKeySchema: row.BkSchema,
		OnFullNull:        row.NullDefault,
		SrcAttribute:      row.SrcAttribute,
		SrcType:           row.SrcAttrDatatype,
		Expression:        row.Expression,
		FieldType:         row.TgtAttrDatatype,
		IsBK:              row.IsPK,
		MartRetainKey:     row.TgtAttribute,
	}, r.opts)
}
