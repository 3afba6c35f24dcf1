package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pthm/hxlive"
)

// generateFile writes the *_live.go file for the schemas declared in source.
func (g *Generator) generateFile(pkgPath, pkgName, source string, schemas []*SchemaInfo) error {
	baseName := strings.TrimSuffix(filepath.Base(source), ".go")
	outputFile := filepath.Join(pkgPath, baseName+suffix)

	fmt.Printf("generating %s\n", outputFile)

	if g.opts.DryRun {
		return nil
	}

	code, err := renderTemplate(pkgName, filepath.Base(source), schemas)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(code)
	if err != nil {
		if writeErr := os.WriteFile(outputFile+".unformatted", code, 0o644); writeErr == nil {
			fmt.Printf("  wrote unformatted code to %s.unformatted for debugging\n", outputFile)
		}
		return fmt.Errorf("format source: %w", err)
	}

	return os.WriteFile(outputFile, formatted, 0o644)
}

var liveTemplate = template.Must(template.New("live").Funcs(template.FuncMap{
	"kindIdent": kindIdent,
}).Parse(`// Code generated by hxlive. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}

import "github.com/pthm/hxlive"
{{range .Schemas}}
// New{{.TypeName}}Schema declares the properties of the "{{.Name}}" component.
// Chain sync handlers, rules, actions and the renderer onto the result.
func New{{.TypeName}}Schema() *hxlive.Schema {
	return hxlive.NewSchema({{printf "%q" .Name}}){{range .Fields}}.
		Field({{printf "%q" .Key}}, {{kindIdent .Kind}}){{end}}
}

// LiveValues returns the property values held by v, keyed by property name.
func (v {{.TypeName}}) LiveValues() map[string]any {
	return map[string]any{ {{- range .Fields}}
		{{printf "%q" .Key}}: v.{{.GoName}},{{end}}
	}
}
{{end}}`))

// renderTemplate renders the generated code template.
func renderTemplate(pkgName, source string, schemas []*SchemaInfo) ([]byte, error) {
	data := struct {
		Package string
		Source  string
		Schemas []*SchemaInfo
	}{
		Package: pkgName,
		Source:  source,
		Schemas: schemas,
	}

	var buf bytes.Buffer
	if err := liveTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// kindIdent returns the qualified identifier of a kind constant, e.g.
// "hxlive.KindString".
func kindIdent(k hxlive.Kind) string {
	name := k.String()
	return "hxlive.Kind" + strings.ToUpper(name[:1]) + name[1:]
}
