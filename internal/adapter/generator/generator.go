// Package generator renders skeleton Python source from the structural model.
package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"xray/internal/domain"
)

// separator puts two blank lines between top level definitions.
const separator = "\n\n\n"

const templates = `
{{- define "function" -}}
def {{.Name}}({{join .Parameters ", "}}):
{{- with .Description}}
    {{doc . "    "}}
{{- end}}
    pass
{{- end}}

{{- define "class" -}}
class {{.Name}}{{with .Parents}}({{join . ", "}}){{end}}:
{{- with .Description}}
    {{doc . "    "}}
{{- end}}
{{- range .Methods}}

{{include "function" . | indent "    "}}
{{- else}}
    pass
{{- end}}
{{- end}}

{{- define "doc" -}}
{{doc . ""}}
{{- end}}
`

type Generator struct {
	tmpl *template.Template
}

func New() *Generator {
	g := &Generator{}
	g.tmpl = template.Must(template.New("python").Funcs(template.FuncMap{
		"join":    strings.Join,
		"doc":     docString,
		"indent":  indent,
		"include": g.include,
	}).Parse(templates))
	return g
}

// RenderModule returns the source of a module: its doc-string, then its
// classes, then its functions.
func (g *Generator) RenderModule(m domain.Module) (string, error) {
	var parts []string
	if m.Description != "" {
		s, err := g.include("doc", m.Description)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	for _, c := range m.Classes {
		s, err := g.include("class", c)
		if err != nil {
			return "", fmt.Errorf("failed to render class %s: %w", c.Name, err)
		}
		parts = append(parts, s)
	}
	for _, fn := range m.Functions {
		s, err := g.include("function", fn)
		if err != nil {
			return "", fmt.Errorf("failed to render function %s: %w", fn.Name, err)
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, separator) + "\n", nil
}

// RenderPackageInit returns the content of a package marker file, which
// carries only the package description.
func (g *Generator) RenderPackageInit(p domain.Package) (string, error) {
	if p.Description == "" {
		return "", nil
	}
	s, err := g.include("doc", p.Description)
	if err != nil {
		return "", err
	}
	return s + "\n", nil
}

func (g *Generator) include(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// docString quotes text as a doc-string whose continuation lines start at
// prefix. Single quotes are used when double quotes would end it early.
func docString(text, prefix string) string {
	quote := `"""`
	if strings.Contains(text, `"""`) || strings.HasSuffix(text, `"`) {
		quote = `'''`
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return quote + strings.Join(lines, "\n") + quote
}

func indent(prefix, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
