// Package mappingtest builds mapping workbooks and settings for tests.
package mappingtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rdv-generator/internal/config"
	"rdv-generator/internal/mapping"
	"rdv-generator/internal/sheet"
	"rdv-generator/internal/sheet/sheettest"
)

// SettingsYAML is a complete configuration used by tests.
const SettingsYAML = `
author: Test Author
out_path: out
wf_templates_list:
  - 'wf_.+'
tags:
  - rdv
  - team: ledger
resource_tags:
  - system: ceh
regexp:
  src_table_name_regexp: '[a-z0-9_]+\.[a-z0-9_]+$'
  tgt_table_name_regexp: 'rdv\.[a-z0-9_]+$'
  src_cd_regexp: "='?([A-Za-z0-9_]+)'?$"
  tgt_attr_name_regexp: '[a-z][a-z0-9_]*$'
  bk_schema_regexp: '[A-Za-z0-9_-]+$'
  bk_object_regexp: '[a-z0-9_]+\.[a-z0-9_]+(\.[a-z0-9_]+)?$'
setting_up_field_lists:
  ignore_primary_key: [effective_date]
  ignore_hash_set: [src_cd, effective_date]
  ignore_multi_fields: [effective_date]
  ignore_field_map_ctx_list: [effective_date]
field_type_list:
  src_attr_datatype: [text, bigint, integer, timestamp, date, numeric]
  tgt_attr_datatype: [text, bigint, integer, timestamp, date, numeric, boolean]
  tgt_attr_predefined_datatype:
    src_cd: [text, not null]
  src_datatype_aliases:
    varchar: text
    int8: bigint
  tgt_datatype_aliases:
    int8: bigint
  ceh_datatype_aliases:
    timestamp: timestamp without time zone
  corresp_datatype:
    text: [text, timestamp, date, bigint, integer, boolean, numeric]
    bigint: [bigint, numeric]
    numeric: [numeric]
    timestamp: [timestamp]
`

// Settings parses SettingsYAML.
func Settings(t testing.TB) *config.Settings {
	t.Helper()

	s, err := config.Parse([]byte(SettingsYAML))
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	return s
}

// Cells is one data row keyed by column name.
type Cells map[string]string

// Workbook collects flow list and details rows.
type Workbook struct {
	FlowSheet    string
	DetailsSheet string
	Flows        []Cells
	Details      []Cells
}

// New returns an empty workbook using the default sheet names.
func New() *Workbook {
	return &Workbook{FlowSheet: config.DefaultFlowListSheet, DetailsSheet: config.DefaultDetailsSheet}
}

// Flow adds a flow list row.
func (w *Workbook) Flow(c Cells) *Workbook {
	w.Flows = append(w.Flows, c)
	return w
}

// Detail adds a details row.
func (w *Workbook) Detail(c Cells) *Workbook {
	w.Details = append(w.Details, c)
	return w
}

// Memory returns the workbook with a title row above the header.
func (w *Workbook) Memory() sheet.MemoryWorkbook {
	return sheet.MemoryWorkbook{
		w.FlowSheet:    rows(mapping.DefaultFlowListColumns, w.Flows),
		w.DetailsSheet: rows(mapping.DefaultDetailsColumns, w.Details),
	}
}

// XLSX renders the workbook as an xlsx document.
func (w *Workbook) XLSX(t testing.TB) []byte {
	t.Helper()

	var sheets []sheettest.Sheet

	for name, data := range map[string][][]string{
		w.FlowSheet:    rows(mapping.DefaultFlowListColumns, w.Flows),
		w.DetailsSheet: rows(mapping.DefaultDetailsColumns, w.Details),
	} {
		s := sheettest.Sheet{Name: name}
		for _, r := range data {
			row := make([]any, len(r))
			for i, v := range r {
				row[i] = v
			}

			s.Rows = append(s.Rows, row)
		}

		sheets = append(sheets, s)
	}

	return sheettest.Build(t, sheets...)
}

func rows(columns []string, data []Cells) [][]string {
	out := [][]string{{"Mapping"}, columns}

	for _, c := range data {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = c[col]
		}

		out = append(out, row)
	}

	return out
}

// ClientFlow is a flow with one mart sourced from crm.clients: five target
// fields (one key, one hub link, three plain) plus the src_cd attribute.
func ClientFlow() *Workbook {
	return New().
		Flow(Cells{
			mapping.ColFlowName:            "wf_crm_client",
			mapping.ColAlgorithmUID:        "1480",
			mapping.ColSubAlgorithmUID:     "1",
			mapping.ColTgtTable:            "rdv.mart_client",
			mapping.ColTargetRDVObjectType: "MART",
			mapping.ColSrcTable:            "crm.clients",
			mapping.ColSourceName:          "crm",
			mapping.ColComment:             "Clients",
		}).
		Detail(detail("client_id", "bigint", "id", "bigint", "pk", "not null")).
		Detail(Cells{
			mapping.ColSrcTable:         "crm.clients",
			mapping.ColSrcAttribute:     "customer_code",
			mapping.ColSrcAttrDatatype:  "varchar",
			mapping.ColTgtTable:         "rdv.mart_client",
			mapping.ColTgtAttribute:     "customer_rk",
			mapping.ColTgtAttrDatatype:  "bigint",
			mapping.ColTgtAttrMandatory: "not null",
			mapping.ColConversionType:   "hub",
			mapping.ColBkSchema:         "BK-CRM-CUSTOMER",
			mapping.ColBkObject:         "rk_schema.customer",
			mapping.ColNullDefault:      "new_rk",
		}).
		Detail(detail("name", "text", "full_name", "varchar", "", "")).
		Detail(detail("updated_dttm", "timestamp", "updated", "varchar", "", "")).
		Detail(detail("balance", "numeric", "balance", "numeric", "", "")).
		Detail(Cells{
			mapping.ColTgtTable:         "rdv.mart_client",
			mapping.ColTgtAttribute:     "src_cd",
			mapping.ColTgtAttrDatatype:  "text",
			mapping.ColTgtAttrMandatory: "not null",
			mapping.ColExpression:       "= 'CRM'",
		})
}

func detail(tgtAttr, tgtType, srcAttr, srcType, pk, mandatory string) Cells {
	return Cells{
		mapping.ColSrcTable:         "crm.clients",
		mapping.ColSrcAttribute:     srcAttr,
		mapping.ColSrcAttrDatatype:  srcType,
		mapping.ColTgtTable:         "rdv.mart_client",
		mapping.ColTgtAttribute:     tgtAttr,
		mapping.ColTgtAttrDatatype:  tgtType,
		mapping.ColTgtAttrMandatory: mandatory,
		mapping.ColTgtPK:            pk,
	}
}
