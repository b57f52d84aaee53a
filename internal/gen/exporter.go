package gen

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"rdv-generator/internal/model"
)

// Output directories, relative to the flow directory.
const (
	dirWorkflows   = "ceh-etl/general_ledger/src_rdv/schema/work_flows"
	dirFlowDumps   = "ceh-etl/general_ledger/src_rdv/flow_dumps"
	dirDags        = "ceh-etl/general_ledger/src_rdv/dags"
	dirUniRes      = "ceh-etl/_resources/uni"
	dirMartDDL     = "ceh-ddl/extensions/ripper/.data"
	dirTables      = "ceh-etl/general_ledger/src_rdv/schema/ceh/rdv"
	dirCehRes      = "ceh-etl/_resources/ceh/rdv"
	dirSrcTables   = "ceh-etl/general_ledger/src_rdv/schema/db_tables"
	dirHubDDL      = "src/ceh-ddl/extensions/ripper/.data"
	dirHubTables   = "src/ceh-etl/general_ledger/src_rdv/schema/ceh/rdv"
	dirHubRes      = "src/ceh-etl/_resources/ceh/rdv"
	dirAccessViews = "src"
)

// Artifact is one file to render: where it goes, which template renders it
// and the view passed to the template.
type Artifact struct {
	Path     string
	Template string
	View     View
}

// Plan lists the artifacts of a flow in a stable order. has reports which
// optional templates exist; it selects per-schema uni resource templates.
func Plan(flow *model.FlowContext, has func(string) bool) []Artifact {
	base := View{Flow: flow}

	arts := []Artifact{
		{Path: path.Join(dirWorkflows, flow.FlowName+".yaml"), Template: TplWorkflow, View: base},
		{Path: path.Join(dirFlowDumps, "cf_"+flow.BaseFlowName+".yaml"), Template: TplControlFlow, View: base},
		{Path: path.Join(dirDags, flow.FlowName+".py"), Template: TplDag, View: base},
	}

	for _, src := range flow.Sources {
		tpl := UniResourceTemplate(src.Schema)
		if !has(tpl) {
			tpl = TplUniResource
		}

		arts = append(arts, Artifact{
			Path:     path.Join(dirUniRes, strings.ToLower(src.System), src.Schema, src.FileName),
			Template: tpl,
			View:     View{Flow: flow, Source: src, Tags: flow.ResourceTags},
		})
	}

	for _, tt := range flow.TargetTables {
		if !tt.IsMart() {
			continue
		}

		v := View{Flow: flow, Table: tt, Tags: flow.ResourceTags}
		arts = append(arts,
			Artifact{Path: path.Join(dirMartDDL, tt.FileName+".sql"), Template: TplMartDDL, View: v},
			Artifact{Path: path.Join(dirTables, tt.TableName+".yaml"), Template: TplMartTable, View: v},
			Artifact{
				Path:     path.Join(dirCehRes, "ceh."+tt.FullName()+".json"),
				Template: TplMartResource,
				View:     v,
			},
		)
	}

	for _, hub := range flow.Hubs {
		v := View{Flow: flow, Hub: hub, Tags: flow.ResourceTags}
		arts = append(arts,
			Artifact{Path: path.Join(dirHubDDL, hub.FullTableName+".sql"), Template: TplHubDDL, View: v},
			Artifact{Path: path.Join(dirHubTables, hub.HubNameOnly()+".yaml"), Template: TplHubTable, View: v},
			// Both names carry the same descriptor; the second is shared by all business key schemas.
			Artifact{
				Path:     path.Join(dirHubRes, "ceh."+hub.FullTableName+"."+hub.BkSchemaName()+".json"),
				Template: TplHubResource,
				View:     v,
			},
			Artifact{Path: path.Join(dirHubRes, "ceh."+hub.FullTableName+".json"), Template: TplHubResource, View: v},
		)
	}

	for _, tt := range flow.TargetTables {
		if tt.IsMart() {
			arts = append(arts, Artifact{
				Path:     path.Join(dirAccessViews, "acc."+tt.FileName+".sql"),
				Template: TplAccessView,
				View:     View{Flow: flow, Table: tt},
			})
		}
	}

	for _, src := range flow.Sources {
		arts = append(arts, Artifact{
			Path:     path.Join(dirSrcTables, src.Table+".yaml"),
			Template: TplSourceTable,
			View:     View{Flow: flow, Source: src},
		})
	}

	return arts
}

// Exporter renders flows and writes them under <root>/<flow_name>.
type Exporter struct {
	fs       afero.Fs
	root     string
	renderer Renderer
	log      *zap.SugaredLogger
}

// NewExporter creates an exporter writing to fsys below root.
func NewExporter(fsys afero.Fs, root string, renderer Renderer, log *zap.SugaredLogger) *Exporter {
	return &Exporter{fs: fsys, root: root, renderer: renderer, log: log}
}

// Export renders every artifact of the flow before writing any of them, so
// a template error leaves no partial output. It returns the written paths
// relative to root.
func (e *Exporter) Export(ctx context.Context, flow *model.FlowContext) ([]string, error) {
	arts := Plan(flow, e.renderer.Has)
	files := make([]GeneratedFile, 0, len(arts))

	for _, a := range arts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := e.renderer.Render(&buf, a.Template, a.View); err != nil {
			return nil, fmt.Errorf("flow %s, file %s: %w", flow.FlowName, a.Path, err)
		}

		e.log.Debugw("rendered", "flow", flow.FlowName, "template", a.Template, "file", a.Path)
		files = append(files, GeneratedFile{Filename: a.Path, Content: buf.Bytes()})
	}

	if err := WriteFiles(e.fs, files, filepath.Join(e.root, flow.FlowName)); err != nil {
		return nil, fmt.Errorf("flow %s: %w", flow.FlowName, err)
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		written = append(written, path.Join(flow.FlowName, f.Filename))
	}

	return written, nil
}
