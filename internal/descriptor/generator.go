// Package descriptor renders the Ant build file that drives the CPD task for a set of
// development components.
package descriptor

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/buildhelper"
	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/excludes"
)

// TemplateName is the name the build file template is registered under. It doubles as
// the Ant target the template defines.
const TemplateName = "cpd-all"

//go:embed templates/cpd-build.xml.tmpl
var defaultTemplate string

// Template context keys. The template refers to these names verbatim.
const (
	keySourcePaths       = "sourcePaths"
	keyEncoding          = "encoding"
	keyOutputFile        = "outputFile"
	keyMinimumTokenCount = "minimumTokenCount"
	keyWorkspace         = "workspace"
)

var templateFuncMap = template.FuncMap{
	"xml": escapeXML,
}

// Logger defines the logging interface used by the generator.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// Options configures a Generator.
type Options struct {
	// BuildFilePath is where the rendered build file is written.
	BuildFilePath string
	// OutputFile is the CPD report location referenced from the build file.
	OutputFile        string
	Encoding          string
	MinimumTokenCount int

	// BaseExcludes and BaseContainsRegexpExcludes are merged into every component's excludes.
	BaseExcludes               []string
	BaseContainsRegexpExcludes []string

	// TemplatePath optionally replaces the embedded template.
	TemplatePath string

	Helper buildhelper.Helper
	Fs     afero.Fs
	Logger Logger
}

// Generator renders CPD build files.
type Generator struct {
	opts       Options
	buildFiles []string
}

// NewGenerator creates a Generator. A nil Fs uses the OS filesystem.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Helper == nil {
		return nil, fmt.Errorf("descriptor: build helper is required")
	}
	if opts.BuildFilePath == "" {
		return nil, fmt.Errorf("descriptor: build file path is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	return &Generator{opts: opts}, nil
}

// BuildFilePath returns the configured build file location.
func (g *Generator) BuildFilePath() string {
	return g.opts.BuildFilePath
}

// BuildFiles returns the build files written so far.
func (g *Generator) BuildFiles() []string {
	return append([]string{}, g.buildFiles...)
}

// Execute renders the build file for components. When the components yield no source
// folders nothing is written and no error is returned.
func (g *Generator) Execute(ctx context.Context, components []component.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sources, err := g.SourcePaths(components)
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		g.debug("no source folders found, skipping build file generation", "components", len(components))
		return nil
	}

	var buf bytes.Buffer
	if err := g.Evaluate(sources, &buf); err != nil {
		return err
	}

	if err := g.write(buf.Bytes()); err != nil {
		return err
	}

	g.buildFiles = append(g.buildFiles, g.opts.BuildFilePath)
	if g.opts.Logger != nil {
		g.opts.Logger.Info("generated CPD build file", "path", g.opts.BuildFilePath, "source_folders", len(sources))
	}

	return nil
}

// SourcePaths collects one SourceFolder per distinct folder of the given components,
// source and test folders alike. The first component claiming a folder wins.
func (g *Generator) SourcePaths(components []component.Component) ([]SourceFolder, error) {
	sources := []SourceFolder{}
	seen := make(map[string]struct{})

	for i := range components {
		c := &components[i]

		fileExcludes, err := excludes.Create(c, g.opts.BaseExcludes)
		if err != nil {
			return nil, err
		}
		contentExcludes, err := excludes.CreateContainsRegexpExcludes(c, g.opts.BaseContainsRegexpExcludes)
		if err != nil {
			return nil, err
		}

		folders := append(g.opts.Helper.SourceFolders(*c), g.opts.Helper.TestSourceFolders(*c)...)
		for _, folder := range folders {
			if _, ok := seen[folder]; ok {
				continue
			}
			seen[folder] = struct{}{}
			sources = append(sources, NewSourceFolder(folder, fileExcludes, contentExcludes))
		}
	}

	return sources, nil
}

// Evaluate renders the build file for sources into w.
func (g *Generator) Evaluate(sources []SourceFolder, w io.Writer) error {
	tmpl, err := g.template()
	if err != nil {
		return err
	}

	if err := tmpl.Execute(w, g.context(sources)); err != nil {
		return &TemplateRenderError{TemplateName: TemplateName, Operation: "execute", Err: err}
	}
	return nil
}

func (g *Generator) context(sources []SourceFolder) map[string]any {
	return map[string]any{
		keySourcePaths:       sources,
		keyEncoding:          g.opts.Encoding,
		keyOutputFile:        g.opts.OutputFile,
		keyMinimumTokenCount: g.opts.MinimumTokenCount,
		keyWorkspace:         filepath.ToSlash(g.opts.Helper.PathToWorkspace()),
	}
}

func (g *Generator) template() (*template.Template, error) {
	text := defaultTemplate
	if g.opts.TemplatePath != "" {
		data, err := afero.ReadFile(g.opts.Fs, g.opts.TemplatePath)
		if err != nil {
			return nil, &TemplateRenderError{TemplateName: g.opts.TemplatePath, Operation: "load", Err: err}
		}
		text = string(data)
	}

	tmpl, err := template.New(TemplateName).Funcs(templateFuncMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, &TemplateRenderError{TemplateName: TemplateName, Operation: "parse", Err: err}
	}
	return tmpl, nil
}

func (g *Generator) write(content []byte) (err error) {
	path := g.opts.BuildFilePath

	if err := g.opts.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := g.opts.Fs.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &WriteError{Path: path, Err: closeErr}
		}
	}()

	if _, err := f.Write(content); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (g *Generator) debug(msg string, args ...any) {
	if g.opts.Logger != nil {
		g.opts.Logger.Debug(msg, args...)
	}
}

func escapeXML(v any) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(fmt.Sprint(v))); err != nil {
		return "", err
	}
	return b.String(), nil
}
