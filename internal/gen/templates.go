package gen

import (
	"embed"
	"io/fs"
	"strings"
)

// Template names.
const (
	TplWorkflow       = "flow.wk.yaml"
	TplControlFlow    = "flow.cf.yaml"
	TplDag            = "flow_wk.py"
	TplUniResource    = "resource.uni.table.json"
	TplMartDDL        = "create.table.mart.sql"
	TplMartTable      = "table.mart.yaml"
	TplMartResource   = "resource.ceh.mart.json"
	TplHubDDL         = "create.table.hub.sql"
	TplHubTable       = "table.hub.yaml"
	TplHubResource    = "resource.ceh.hub.bk_schema.json"
	TplAccessView     = "f_gen_access_view.sql"
	TplSourceTable    = "db_table.yaml"
	uniResourcePrefix = "resource.uni.table."
	uniResourceSuffix = ".json"
)

// TemplateNames lists every template an export needs.
var TemplateNames = []string{
	TplWorkflow, TplControlFlow, TplDag, TplUniResource, TplMartDDL, TplMartTable,
	TplMartResource, TplHubDDL, TplHubTable, TplHubResource, TplAccessView, TplSourceTable,
}

//go:embed templates/*
var embedded embed.FS

// DefaultTemplates returns the embedded template set.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}

// UniResourceTemplate returns the name of the per-schema uni resource template.
func UniResourceTemplate(schema string) string {
	return uniResourcePrefix + strings.ToUpper(schema) + uniResourceSuffix
}
