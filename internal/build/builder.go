package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rdv-generator/internal/config"
	"rdv-generator/internal/diagnostic"
	"rdv-generator/internal/mapping"
	"rdv-generator/internal/match"
	"rdv-generator/internal/model"
	"rdv-generator/internal/sheet"
)

// Suggestion limits for datatype warnings.
const (
	suggestMaxDistance = 3
	suggestLimit       = 3
)

// Builder turns repository rows into flows.
type Builder struct {
	repo     *mapping.Repository
	settings *config.Settings
	opts     *model.Options
	sink     FlowSink
	clock    clockwork.Clock
	log      *zap.SugaredLogger
	username string

	compat match.CompatibilityTable

	srcTableName *regexp.Regexp
	tgtTableName *regexp.Regexp
	tgtAttrName  *regexp.Regexp
	bkSchema     *regexp.Regexp
	bkObject     *regexp.Regexp
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the clock used for creation timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(b *Builder) { b.clock = c }
}

// WithUsername overrides the user name read from the environment.
func WithUsername(name string) Option {
	return func(b *Builder) { b.username = name }
}

// New creates a builder. Every regular expression the loop needs is resolved
// here so a missing one fails before any flow is processed.
func New(repo *mapping.Repository, settings *config.Settings, sink FlowSink, log *zap.SugaredLogger,
	options ...Option,
) (*Builder, error) {
	opts, err := NewOptions(settings)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		repo:     repo,
		settings: settings,
		opts:     opts,
		sink:     sink,
		clock:    clockwork.NewRealClock(),
		log:      log,
		username: envUsername(),
		compat:   match.CompatibilityTable(settings.FieldTypes.Compatibility),
	}

	for _, o := range options {
		o(b)
	}

	for _, named := range []struct {
		name string
		dst  **regexp.Regexp
	}{
		{config.RegexpSrcTableName, &b.srcTableName},
		{config.RegexpTgtTableName, &b.tgtTableName},
		{config.RegexpTgtAttrName, &b.tgtAttrName},
		{config.RegexpBkSchema, &b.bkSchema},
		{config.RegexpBkObject, &b.bkObject},
	} {
		name, dst := named.name, named.dst

		pattern, err := settings.Regexp(name, "")
		if err != nil {
			return nil, err
		}

		re, err := config.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}

		*dst = re
	}

	return b, nil
}

func envUsername() string {
	name := os.Getenv("USERNAME")
	if name == "" {
		name = os.Getenv("USER")
	}

	if name == "" {
		return "Unknown Author"
	}

	return cases.Title(language.Und).String(name)
}

// Run processes every retained flow and records the results in out.
// The returned error is reserved for failures that stop the run: a
// cancelled context or a sink that could not write.
func (b *Builder) Run(ctx context.Context, out *diagnostic.Outcome) error {
	flows := b.repo.Flows()
	if len(flows) == 0 {
		b.warn(out, CodeNoFlows,
			"no flow matches wf_templates_list, nothing will be generated", diagnostic.Location{})

		return nil
	}

	if !b.compat.Enabled() {
		b.warn(out, CodeNoCompatibility,
			"corresp_datatype is not configured, source and target datatypes are not cross-checked",
			diagnostic.Location{})
	}

	b.log.Infof("generating %d flow(s)", len(flows))

	for i, name := range flows {
		if err := ctx.Err(); err != nil {
			return err
		}

		b.log.Infow("flow", "index", i+1, "flow", name)

		if err := b.runFlow(ctx, name, out); err != nil {
			return err
		}
	}

	if len(out.FlowsWith(diagnostic.FlowFailed)) > 0 {
		b.log.Error("one or more flows were not generated because of errors")
	}

	return nil
}

func (b *Builder) runFlow(ctx context.Context, name string, out *diagnostic.Outcome) error {
	flow, err := model.NewFlowContext(name, model.FlowMeta{
		Author:                b.settings.Author,
		Username:              b.username,
		DataCaptureMode:       b.settings.DataCaptureMode,
		DeltaMode:             b.settings.DeltaMode,
		ProcessedDt:           b.settings.ProcessedDt,
		ProcessedDtConversion: b.settings.ProcessedDtConversion,
		TgtHistoryField:       b.settings.TgtHistoryField,
		WorkFlowSchemaVersion: b.settings.WorkFlowSchemaVersion,
		Now:                   b.clock.Now(),
	})
	if err != nil {
		return err
	}

	run := &flowRun{Builder: b, out: out, flow: flow}

	for i, row := range b.repo.FlowRows(name) {
		b.log.Infow("table", "flow", name, "index", i+1, "table", row.TgtTable)
		run.table(mapping.NewStreamHeader(row))
	}

	if !run.failed {
		if err := flow.FormTags(b.settings.ResourceTags.Strings(), b.settings.Tags.Strings()); err != nil {
			run.fail(CodeTags, err.Error(), diagnostic.Location{})
		}
	}

	if run.failed {
		b.fail(out, CodeFlowFailed, fmt.Sprintf("files of flow %s were not generated", name),
			diagnostic.Location{Flow: name})
		out.AddFlow(diagnostic.FlowResult{Flow: name, Status: diagnostic.FlowFailed})

		return nil
	}

	files, err := b.sink.Export(ctx, flow)
	if err != nil {
		return fmt.Errorf("exporting flow %s: %w", name, err)
	}

	out.AddFlow(diagnostic.FlowResult{Flow: name, Status: diagnostic.FlowGenerated, Files: files})
	b.log.Infow("flow generated", "flow", name, "files", len(files))

	return nil
}

func (b *Builder) fail(out *diagnostic.Outcome, code, msg string, at diagnostic.Location) {
	out.AddError(code, msg, at)
	b.log.Errorw(msg, logFields(code, at)...)
}

func (b *Builder) warn(out *diagnostic.Outcome, code, msg string, at diagnostic.Location, suggestions ...string) {
	out.AddWarning(code, msg, at, suggestions...)
	b.log.Warnw(msg, append(logFields(code, at), "suggestions", suggestions)...)
}

func (b *Builder) info(out *diagnostic.Outcome, code, msg string, at diagnostic.Location) {
	out.AddInfo(code, msg, at)
	b.log.Infow(msg, logFields(code, at)...)
}

func logFields(code string, at diagnostic.Location) []any {
	return []any{"code", code, "flow", at.Flow, "table", at.Table, "field", at.Field}
}

// Run loads the workbook, validates it and builds every flow into sink.
// Structural errors are recorded in the outcome and returned.
func Run(ctx context.Context, wb sheet.Workbook, settings *config.Settings, sink FlowSink,
	log *zap.SugaredLogger, options ...Option,
) (*diagnostic.Outcome, error) {
	out := diagnostic.NewOutcome()

	log.Infow("run started", "run_id", out.RunID.String(), "author", settings.Author, "out_path", settings.OutPath)

	repo, err := mapping.New(wb, settings, log)
	if err != nil {
		var se *mapping.StructureError
		if errors.As(err, &se) {
			out.Merge(se.Diagnostics)
		} else {
			out.AddError("workbook", err.Error(), diagnostic.Location{})
		}

		return out, err
	}

	out.Merge(repo.Diagnostics())

	b, err := New(repo, settings, sink, log, options...)
	if err != nil {
		out.AddError("config", err.Error(), diagnostic.Location{})
		return out, err
	}

	if err := b.Run(ctx, out); err != nil {
		return out, err
	}

	return out, nil
}

func isDigits(s string) bool {
	return s != "" && strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
