package gen

import (
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"rdv-generator/internal/model"
)

// Renderer renders a named template over a view.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
	Has(name string) bool
}

// View is the data passed to templates. Only the entity the artifact
// describes is set besides Flow.
type View struct {
	Flow   *model.FlowContext
	Source *model.Source
	Table  *model.TargetTable
	Hub    *model.HubMartField
	// Tags are the resource tags for resource descriptors.
	Tags []string
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"join":  strings.Join,
	"quote": strconv.Quote,
	"comma": comma,
}

// comma separates list items in JSON templates.
func comma(i, n int) string {
	if i < n-1 {
		return ","
	}

	return ""
}

// TemplateRenderer renders text/template templates.
type TemplateRenderer struct {
	tmpl *template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer parses every file at the root of each set. A file in
// a later set replaces the template of the same name from an earlier one.
func NewTemplateRenderer(sets ...fs.FS) (*TemplateRenderer, error) {
	root := template.New("").Option("missingkey=error").Funcs(funcs)

	for _, fsys := range sets {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return nil, fmt.Errorf("listing templates: %w", err)
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}

			data, err := fs.ReadFile(fsys, e.Name())
			if err != nil {
				return nil, fmt.Errorf("reading template %s: %w", e.Name(), err)
			}

			if _, err := root.New(e.Name()).Parse(string(data)); err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", e.Name(), err)
			}
		}
	}

	for _, name := range TemplateNames {
		if root.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s is not defined", name)
		}
	}

	return &TemplateRenderer{tmpl: root}, nil
}

// LoadRenderer returns the embedded templates overlaid with the files of dir.
// An empty dir selects the embedded templates alone.
func LoadRenderer(fsys afero.Fs, dir string) (*TemplateRenderer, error) {
	if dir == "" {
		return NewTemplateRenderer(DefaultTemplates())
	}

	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("checking template directory: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("template directory %s does not exist", dir)
	}

	return NewTemplateRenderer(DefaultTemplates(), afero.NewIOFS(afero.NewBasePathFs(fsys, dir)))
}

// Has reports whether a template with the name is defined.
func (r *TemplateRenderer) Has(name string) bool {
	return r.tmpl.Lookup(name) != nil
}

// Render executes the named template.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	return nil
}
