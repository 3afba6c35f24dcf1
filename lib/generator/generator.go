// Package generator writes schema constructors for structs annotated with an
// hxlive:schema directive.
//
//	//hxlive:schema profile
//	type Profile struct {
//	    Name  string   `live:"name"`
//	    Age   int      `live:"age"`
//	    Tags  []string `live:"tags,list"`
//	    Draft string   `live:"-"`
//	}
//
// produces profile_live.go with NewProfileSchema and Profile.LiveValues.
package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pthm/hxlive"
)

const (
	directive = "//hxlive:schema"
	suffix    = "_live.go"
)

// Options configures the generator.
type Options struct {
	DryRun bool
}

// Generator generates hxlive schema code.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			packages = append(packages, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := d.Name()
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") && !strings.HasSuffix(entry.Name(), "_test.go") {
					packages = append(packages, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

// generatePackage generates code for a single package.
func (g *Generator) generatePackage(pkgPath string) error {
	pkgs, err := parser.ParseDir(g.fset, pkgPath, func(info os.FileInfo) bool {
		name := info.Name()
		return !strings.HasSuffix(name, "_test.go") && !strings.HasSuffix(name, suffix)
	}, parser.ParseComments)
	if err != nil {
		return err
	}

	for pkgName, pkg := range pkgs {
		byFile := make(map[string][]*SchemaInfo)
		for filename, file := range pkg.Files {
			schemas, err := g.findSchemas(file)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(filename), err)
			}
			if len(schemas) > 0 {
				byFile[filename] = schemas
			}
		}

		for filename, schemas := range byFile {
			if err := g.generateFile(pkgPath, pkgName, filename, schemas); err != nil {
				return err
			}
		}
	}

	return nil
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		fmt.Printf("removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// SchemaInfo describes one annotated struct.
type SchemaInfo struct {
	TypeName string // e.g. "Profile"
	Name     string // component name from the directive, e.g. "profile"
	Fields   []FieldInfo
}

// FieldInfo is one struct field mapped to a property.
type FieldInfo struct {
	GoName string
	GoType string
	Key    string
	Kind   hxlive.Kind
}

// findSchemas returns the annotated structs declared in file.
func (g *Generator) findSchemas(file *ast.File) ([]*SchemaInfo, error) {
	var schemas []*SchemaInfo

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			name, ok := schemaDirective(typeSpec.Doc)
			if !ok && len(genDecl.Specs) == 1 {
				name, ok = schemaDirective(genDecl.Doc)
			}
			if !ok {
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("%s: %s directive on a non-struct type", typeSpec.Name.Name, directive)
			}

			fields, err := g.structFields(structType)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", typeSpec.Name.Name, err)
			}

			schemas = append(schemas, &SchemaInfo{
				TypeName: typeSpec.Name.Name,
				Name:     name,
				Fields:   fields,
			})
		}
	}

	return schemas, nil
}

// schemaDirective extracts the component name from an hxlive:schema line.
func schemaDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directive)
		if !ok {
			continue
		}
		name := strings.TrimSpace(rest)
		if name == "" || strings.ContainsAny(name, " \t") {
			return "", false
		}
		return name, true
	}
	return "", false
}

// structFields maps the exported fields of st to properties.
func (g *Generator) structFields(st *ast.StructType) ([]FieldInfo, error) {
	var fields []FieldInfo
	seen := make(map[string]string)

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}

		goType := g.typeToString(field.Type)
		var tag string
		if field.Tag != nil {
			tag = strings.Trim(field.Tag.Value, "`")
		}

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}

			key, kindName, exclude := parseLiveTag(tag)
			if exclude {
				continue
			}

			kind, inferred := inferKind(goType)
			if kindName != "" {
				k, ok := hxlive.ParseKind(kindName)
				if !ok {
					return nil, fmt.Errorf("field %s: unknown kind %q", ident.Name, kindName)
				}
				kind = k
			} else if key == "" && !inferred {
				// Untagged fields of other types stay out of the schema.
				continue
			}
			if key == "" {
				key = lowerFirst(ident.Name)
			}

			if hxlive.IsReserved(key) {
				return nil, fmt.Errorf("field %s: property name %q is reserved", ident.Name, key)
			}
			if prev, dup := seen[key]; dup {
				return nil, fmt.Errorf("fields %s and %s share property %q", prev, ident.Name, key)
			}
			seen[key] = ident.Name

			fields = append(fields, FieldInfo{
				GoName: ident.Name,
				GoType: goType,
				Key:    key,
				Kind:   kind,
			})
		}
	}

	return fields, nil
}

// typeToString converts an AST type to a string representation.
func (g *Generator) typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + g.typeToString(t.X)
	case *ast.SelectorExpr:
		return g.typeToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + g.typeToString(t.Elt)
		}
		return "[...]" + g.typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + g.typeToString(t.Key) + "]" + g.typeToString(t.Value)
	case *ast.InterfaceType:
		return "any"
	case *ast.FuncType:
		return "func"
	case *ast.IndexExpr:
		return g.typeToString(t.X) + "[" + g.typeToString(t.Index) + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// parseLiveTag parses a live struct tag: `live:"key,kind"` or `live:"-"`.
func parseLiveTag(tagStr string) (key, kind string, exclude bool) {
	for _, part := range strings.Fields(tagStr) {
		value, ok := strings.CutPrefix(part, `live:"`)
		if !ok {
			continue
		}
		value = strings.TrimSuffix(value, `"`)
		if value == "-" {
			return "", "", true
		}
		key, kind, _ = strings.Cut(value, ",")
		return key, kind, false
	}
	return "", "", false
}

// inferKind derives a property kind from a Go type. ok is false for types
// with no natural kind, which then need an explicit tag.
func inferKind(goType string) (kind hxlive.Kind, ok bool) {
	switch goType {
	case "string":
		return hxlive.KindString, true
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return hxlive.KindInt, true
	case "float32", "float64":
		return hxlive.KindFloat, true
	case "bool":
		return hxlive.KindBool, true
	case "hxlive.Callback", "*hxlive.BoundCallback", "hxlive.CallbackFunc":
		return hxlive.KindCallback, true
	}
	switch {
	case strings.HasPrefix(goType, "[]"):
		return hxlive.KindList, true
	case strings.HasPrefix(goType, "map["):
		return hxlive.KindMap, true
	}
	return hxlive.KindNull, false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
