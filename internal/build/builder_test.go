package build_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"rdv-generator/internal/build"
	"rdv-generator/internal/config"
	"rdv-generator/internal/diagnostic"
	"rdv-generator/internal/mapping"
	"rdv-generator/internal/mapping/mappingtest"
	"rdv-generator/internal/model"
)

type cells = mappingtest.Cells

var testNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func run(t *testing.T, wb *mappingtest.Workbook, mutate ...func(*config.Settings)) (*diagnostic.Outcome, *build.CollectSink, error) {
	t.Helper()

	s := mappingtest.Settings(t)
	for _, m := range mutate {
		m(s)
	}

	sink := &build.CollectSink{}
	out, err := build.Run(context.Background(), wb.Memory(), s, sink, zaptest.NewLogger(t).Sugar(),
		build.WithClock(clockwork.NewFakeClockAt(testNow)), build.WithUsername("Tester"))

	return out, sink, err
}

func codes(diags []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}

	return out
}

func secondFlow() []cells {
	return []cells{
		{
			mapping.ColFlowName:            "wf_crm_account",
			mapping.ColAlgorithmUID:        "1490",
			mapping.ColSubAlgorithmUID:     "1",
			mapping.ColTgtTable:            "rdv.mart_account",
			mapping.ColTargetRDVObjectType: "MART",
			mapping.ColSrcTable:            "crm.accounts",
			mapping.ColSourceName:          "crm",
		},
		{
			mapping.ColSrcTable:         "crm.accounts",
			mapping.ColSrcAttribute:     "id",
			mapping.ColSrcAttrDatatype:  "bigint",
			mapping.ColTgtTable:         "rdv.mart_account",
			mapping.ColTgtAttribute:     "account_id",
			mapping.ColTgtAttrDatatype:  "bigint",
			mapping.ColTgtAttrMandatory: "not null",
			mapping.ColTgtPK:            "pk",
		},
		{
			mapping.ColTgtTable:         "rdv.mart_account",
			mapping.ColTgtAttribute:     "src_cd",
			mapping.ColTgtAttrDatatype:  "text",
			mapping.ColTgtAttrMandatory: "not null",
			mapping.ColExpression:       "='CRM'",
		},
	}
}

func withSecondFlow(wb *mappingtest.Workbook) *mappingtest.Workbook {
	second := secondFlow()
	wb.Flow(second[0])

	for _, d := range second[1:] {
		wb.Detail(d)
	}

	return wb
}

func TestRun_ClientFlow(t *testing.T) {
	out, sink, err := run(t, mappingtest.ClientFlow())
	require.NoError(t, err)
	require.False(t, out.HasError(), out.Diagnostics.Error())
	assert.False(t, out.HasWarning(), spew.Sdump(out.Warnings))

	require.Len(t, sink.Flows, 1)
	f := sink.Flows[0]

	assert.Equal(t, "wf_crm_client", f.FlowName)
	assert.Equal(t, `"05 Mar 2024 14:07:09" by Test Author`, f.Created)
	assert.Equal(t, "Tester", f.Username)
	require.Len(t, f.Sources, 1)
	require.Len(t, f.Targets, 1)
	require.Len(t, f.Marts, 1)
	require.Len(t, f.TargetTables, 1)
	require.Len(t, f.LocalMetrics, 1)

	src := f.Sources[0]
	assert.Equal(t, "CLIENTS", src.Table)
	assert.Equal(t, "crm.crm.clients", src.UniRes)
	assert.Equal(t, "ceh.rdv.mart_client", src.CehRes)
	assert.Len(t, src.Fields, 5)

	mart := f.Marts[0]
	require.Len(t, mart.Fields, 6)
	assert.Len(t, mart.FieldMap(), 5)

	byName := map[string]model.MartField{}
	for _, mf := range mart.Fields {
		byName[mf.TgtField] = mf
	}

	assert.True(t, byName["customer_rk"].IsHubField)
	assert.Equal(t, model.ValueSQLExpression, byName["updated_dttm"].ValueType)
	assert.Equal(t, "etl.try_cast2ts(updated)", byName["updated_dttm"].Expression)
	assert.Equal(t, "'CRM' :: text", byName["src_cd"].Expression)
	assert.Equal(t, model.ValueColumn, byName["balance"].ValueType)

	tt := f.TargetTables[0]
	assert.Equal(t, []string{"balance", "name", "updated_dttm"}, tt.HashFields)
	assert.Equal(t, "client_id", tt.PrimaryKey)
	assert.Equal(t, []string{"client_id"}, tt.MultiFields)
	assert.Equal(t, "client_id", tt.Fields[0].Name)
	require.Len(t, tt.HubFields, 1)

	require.Len(t, f.Hubs, 1)
	hub := f.Hubs[0]
	assert.Equal(t, "rk_schema.customer", hub.FullTableName)
	assert.Equal(t, "customer_rk", hub.RkField)
	assert.Equal(t, "CRM", hub.SrcCd)
	assert.Equal(t, "case when customer_code = '' then null else customer_code end", hub.Expression)

	assert.Contains(t, f.Tags, "'src_tbl:crm.CLIENTS'")
	assert.Contains(t, f.Tags, "'tgt_tbl:mart_client'")
	assert.Equal(t, []string{`"system:ceh"`}, f.ResourceTags)

	assert.Equal(t, []string{"wf_crm_client"}, out.FlowsWith(diagnostic.FlowGenerated))
	assert.Contains(t, codes(out.Infos), build.CodeHubFieldMap)
}

func TestRun_NoFlows(t *testing.T) {
	out, sink, err := run(t, mappingtest.ClientFlow(), func(s *config.Settings) {
		s.FlowNamePatterns = []string{"nothing"}
	})
	require.NoError(t, err)

	assert.False(t, out.HasError())
	assert.Equal(t, []string{build.CodeNoFlows}, codes(out.Warnings))
	assert.Empty(t, sink.Flows)
	assert.Empty(t, out.Flows)
}

func TestRun_StructuralErrorStopsRun(t *testing.T) {
	wb := mappingtest.ClientFlow()
	wb.Flow(wb.Flows[0])

	out, sink, err := run(t, wb)
	require.ErrorIs(t, err, mapping.ErrStructure)

	assert.True(t, out.HasError())
	assert.Empty(t, sink.Flows)
	assert.Empty(t, out.Flows)
}

func TestRun_TableErrorFailsOnlyItsFlow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(wb *mappingtest.Workbook)
		code   string
	}{
		{
			name:   "bad source table name",
			mutate: func(wb *mappingtest.Workbook) { wb.Flows[0][mapping.ColSrcTable] = "clients" },
			code:   build.CodeSrcTableName,
		},
		{
			name: "bad target table name",
			mutate: func(wb *mappingtest.Workbook) {
				wb.Flows[0][mapping.ColTgtTable] = "ods.mart_client"
				for _, d := range wb.Details[:6] {
					d[mapping.ColTgtTable] = "ods.mart_client"
				}
			},
			code: build.CodeTgtTableName,
		},
		{
			name:   "table missing from details",
			mutate: func(wb *mappingtest.Workbook) { wb.Flows[0][mapping.ColTgtTable] = "rdv.mart_ghost" },
			code:   build.CodeTableNotInDetails,
		},
		{
			name:   "unresolved source code",
			mutate: func(wb *mappingtest.Workbook) { wb.Details[5][mapping.ColExpression] = "crm" },
			code:   build.CodeSourceCode,
		},
		{
			name:   "missing source system",
			mutate: func(wb *mappingtest.Workbook) { wb.Flows[0][mapping.ColSourceName] = "" },
			code:   build.CodeSourceSystem,
		},
		{
			name:   "missing algorithm",
			mutate: func(wb *mappingtest.Workbook) { wb.Flows[0][mapping.ColAlgorithmUID] = "" },
			code:   build.CodeAlgorithmUID,
		},
		{
			name:   "non numeric sub algorithm",
			mutate: func(wb *mappingtest.Workbook) { wb.Flows[0][mapping.ColSubAlgorithmUID] = "1a" },
			code:   build.CodeSubAlgorithmUID,
		},
		{
			name:   "bad target attribute name",
			mutate: func(wb *mappingtest.Workbook) { wb.Details[2][mapping.ColTgtAttribute] = "2name" },
			code:   build.CodeTgtAttrName,
		},
		{
			name:   "predefined attribute mismatch",
			mutate: func(wb *mappingtest.Workbook) { wb.Details[5][mapping.ColTgtAttrMandatory] = "" },
			code:   build.CodePredefinedMismatch,
		},
		{
			name: "src_cd listed twice",
			mutate: func(wb *mappingtest.Workbook) {
				wb.Detail(cells{
					mapping.ColTgtTable:         "rdv.mart_client",
					mapping.ColTgtAttribute:     "src_cd",
					mapping.ColTgtAttrDatatype:  "text",
					mapping.ColTgtAttrMandatory: "not null",
					mapping.ColExpression:       "='CRM'",
				})
			},
			code: build.CodeSourceCode,
		},
		{
			name:   "bad bk schema",
			mutate: func(wb *mappingtest.Workbook) { wb.Details[1][mapping.ColBkSchema] = "bk schema!" },
			code:   build.CodeBkSchema,
		},
		{
			name:   "bad hub object",
			mutate: func(wb *mappingtest.Workbook) { wb.Details[1][mapping.ColBkObject] = "customer" },
			code:   build.CodeBkObject,
		},
		{
			name: "duplicate mart field",
			mutate: func(wb *mappingtest.Workbook) {
				wb.Detail(cells{
					mapping.ColSrcTable:        "crm.clients",
					mapping.ColSrcAttribute:    "nick",
					mapping.ColSrcAttrDatatype: "text",
					mapping.ColTgtTable:        "rdv.mart_client",
					mapping.ColTgtAttribute:    "name",
					mapping.ColTgtAttrDatatype: "text",
				})
			},
			code: build.CodeDuplicateMartField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := mappingtest.ClientFlow()
			tt.mutate(wb)
			withSecondFlow(wb)

			out, sink, err := run(t, wb)
			require.NoError(t, err)

			assert.True(t, out.HasError())
			assert.Contains(t, codes(out.Errors), tt.code)
			assert.Contains(t, codes(out.Errors), build.CodeFlowFailed)
			assert.True(t, out.Failed("wf_crm_client"))

			require.Len(t, sink.Flows, 1)
			assert.Equal(t, "wf_crm_account", sink.Flows[0].FlowName)
		})
	}
}

func TestRun_PredefinedAttributeMissing(t *testing.T) {
	wb := mappingtest.ClientFlow()
	withSecondFlow(wb)

	out, sink, err := run(t, wb, func(s *config.Settings) {
		s.FieldTypes.Predefined = append(s.FieldTypes.Predefined,
			config.PredefinedAttr{Name: "version_id", DataType: "bigint", Mandatory: "not null"})
	})
	require.NoError(t, err)

	assert.Contains(t, codes(out.Errors), build.CodePredefinedMissing)
	assert.Empty(t, sink.Flows)
	assert.Equal(t, []string{"wf_crm_account", "wf_crm_client"}, out.FlowsWith(diagnostic.FlowFailed))
}

func TestRun_PredefinedAttributeConfigIsNormalized(t *testing.T) {
	tests := []struct {
		name     string
		attr     config.PredefinedAttr
		mismatch bool
	}{
		{name: "upper case", attr: config.PredefinedAttr{Name: "src_cd", DataType: "TEXT", Mandatory: "NOT NULL"}},
		{name: "padded", attr: config.PredefinedAttr{Name: "src_cd", DataType: " text ", Mandatory: " Not Null "}},
		{name: "datatype alias", attr: config.PredefinedAttr{Name: "client_id", DataType: "INT8", Mandatory: "not null"}},
		{name: "empty mandatory is null", attr: config.PredefinedAttr{Name: "name", DataType: "text", Mandatory: ""}},
		{name: "nullable expected", attr: config.PredefinedAttr{Name: "src_cd", DataType: "text", Mandatory: "NULL"}, mismatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, sink, err := run(t, mappingtest.ClientFlow(), func(s *config.Settings) {
				s.FieldTypes.Predefined = config.PredefinedAttrs{tt.attr}
			})
			require.NoError(t, err)

			if tt.mismatch {
				assert.Contains(t, codes(out.Errors), build.CodePredefinedMismatch)
				assert.Empty(t, sink.Flows)

				return
			}

			assert.False(t, out.HasError(), out.Diagnostics.Error())
			assert.Len(t, sink.Flows, 1)
		})
	}
}

func TestRun_UniResourceTemplateErrorFailsFlow(t *testing.T) {
	out, sink, err := run(t, withSecondFlow(mappingtest.ClientFlow()), func(s *config.Settings) {
		s.UniResourceTemplate = "{{ .Nope }}"
	})
	require.NoError(t, err)

	assert.Contains(t, codes(out.Errors), build.CodeUniResource)
	assert.NotContains(t, codes(out.Errors), build.CodeSrcTableName)
	assert.True(t, out.Failed("wf_crm_client"))
	assert.True(t, out.Failed("wf_crm_account"))
	assert.Empty(t, sink.Flows)
}

func TestRun_UnsupportedObjectTypeDoesNotFailFlow(t *testing.T) {
	wb := mappingtest.ClientFlow()
	wb.Flow(cells{
		mapping.ColFlowName:            "wf_crm_client",
		mapping.ColAlgorithmUID:        "1481",
		mapping.ColSubAlgorithmUID:     "1",
		mapping.ColTgtTable:            "rdv.link_client",
		mapping.ColTargetRDVObjectType: "link",
		mapping.ColSrcTable:            "crm.clients",
		mapping.ColSourceName:          "crm",
	})

	out, sink, err := run(t, wb)
	require.NoError(t, err)

	assert.Equal(t, []string{build.CodeUnsupportedObject}, codes(out.Errors))
	assert.True(t, out.HasError())
	require.Len(t, sink.Flows, 1)
	assert.Len(t, sink.Flows[0].TargetTables, 1)
}

func TestRun_Warnings(t *testing.T) {
	wb := mappingtest.ClientFlow()
	wb.Details[4][mapping.ColSrcAttrDatatype] = "numerc"
	wb.Details[4][mapping.ColTgtAttrDatatype] = "numerc"
	wb.Detail(cells{
		mapping.ColSrcTable:        "crm.clients",
		mapping.ColSrcAttribute:    "id",
		mapping.ColSrcAttrDatatype: "bigint",
		mapping.ColTgtTable:        "rdv.mart_client",
		mapping.ColTgtAttribute:    "client_code",
		mapping.ColTgtAttrDatatype: "timestamp",
	}).Detail(cells{
		mapping.ColTgtTable:        "rdv.mart_client",
		mapping.ColTgtAttribute:    "comment_txt",
		mapping.ColTgtAttrDatatype: "text",
	}).Detail(cells{
		mapping.ColTgtTable:        "rdv.mart_client",
		mapping.ColTgtAttribute:    "effective_date",
		mapping.ColTgtAttrDatatype: "date",
	})

	out, sink, err := run(t, wb)
	require.NoError(t, err)
	require.False(t, out.HasError(), out.Diagnostics.Error())
	require.Len(t, sink.Flows, 1)

	got := codes(out.Warnings)
	assert.Contains(t, got, build.CodeSrcDatatype)
	assert.Contains(t, got, build.CodeTgtDatatype)
	assert.Contains(t, got, build.CodeUnknownSrcDatatype)
	assert.Contains(t, got, build.CodeIncompatibleDatatype)
	assert.Contains(t, got, build.CodeDuplicateSrcAttr)
	assert.Contains(t, got, build.CodeNoValue)

	var noValue []string
	for _, w := range out.Warnings {
		if w.Code == build.CodeNoValue {
			noValue = append(noValue, w.Field)
		}

		if w.Code == build.CodeTgtDatatype {
			assert.Equal(t, []string{"numeric"}, w.Suggestions)
		}
	}

	assert.Equal(t, []string{"comment_txt"}, noValue)
	assert.Len(t, sink.Flows[0].Sources[0].Fields, 5)
}

func TestRun_NoCompatibilityTable(t *testing.T) {
	out, _, err := run(t, mappingtest.ClientFlow(), func(s *config.Settings) {
		s.FieldTypes.Compatibility = nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{build.CodeNoCompatibility}, codes(out.Warnings))
}

func TestRun_HashFieldLimit(t *testing.T) {
	wb := mappingtest.ClientFlow()
	for i := range model.HashFieldSoftLimit {
		wb.Detail(cells{
			mapping.ColTgtTable:        "rdv.mart_client",
			mapping.ColTgtAttribute:    "f" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			mapping.ColTgtAttrDatatype: "text",
			mapping.ColExpression:      "''",
		})
	}

	out, _, err := run(t, wb)
	require.NoError(t, err)

	assert.Contains(t, codes(out.Warnings), build.CodeHashFieldLimit)
}

func TestRun_MissingRegexp(t *testing.T) {
	out, _, err := run(t, mappingtest.ClientFlow(), func(s *config.Settings) {
		delete(s.Regexps, config.RegexpBkObject)
	})

	require.ErrorIs(t, err, config.ErrMissingRegexp)
	assert.True(t, out.HasError())
}

func TestRun_InvalidRegexpsReportedInFixedOrder(t *testing.T) {
	for range 10 {
		_, _, err := run(t, mappingtest.ClientFlow(), func(s *config.Settings) {
			s.Regexps[config.RegexpBkObject] = "(["
			s.Regexps[config.RegexpTgtAttrName] = "(["
			s.Regexps[config.RegexpSrcTableName] = "(["
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid "+config.RegexpSrcTableName)
	}
}

type failingSink struct{}

func (failingSink) Export(context.Context, *model.FlowContext) ([]string, error) {
	return nil, errors.New("disk full")
}

func TestRun_SinkErrorStopsRun(t *testing.T) {
	s := mappingtest.Settings(t)

	_, err := build.Run(context.Background(), mappingtest.ClientFlow().Memory(), s, failingSink{}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := build.Run(ctx, mappingtest.ClientFlow().Memory(), mappingtest.Settings(t), build.DiscardSink{},
		zap.NewNop().Sugar())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_RetainKeyFromHubObject(t *testing.T) {
	wb := mappingtest.ClientFlow()
	wb.Details[1][mapping.ColBkObject] = "rk_schema.customer.cust_rk"

	_, sink, err := run(t, wb)
	require.NoError(t, err)
	require.Len(t, sink.Flows, 1)

	hub := sink.Flows[0].Hubs[0]
	assert.Equal(t, "cust_rk", hub.RkField)
	assert.Equal(t, "cust_id", hub.IDField)
	assert.Equal(t, "customer_rk", hub.MartRetainKey)
}

func TestNewOptions(t *testing.T) {
	s := mappingtest.Settings(t)
	s.UniResourceTemplate = "{{ lower .System }}.{{ .Table }}"
	s.FieldLists.AddFieldMap = config.FieldMapEntries{{Name: "deleted_flg", Type: "sql_expression", Value: "false"}}

	opts, err := build.NewOptions(s)
	require.NoError(t, err)

	require.NotNil(t, opts.UniResource)
	require.Len(t, opts.PresetFields, 1)
	assert.Equal(t, model.ValueSQLExpression, opts.PresetFields[0].ValueType)
	assert.Equal(t, 22, opts.ShortName.Length)

	s.FieldLists.AddFieldMap[0].Type = "literal"
	_, err = build.NewOptions(s)
	assert.Error(t, err)
}
