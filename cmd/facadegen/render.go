package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
)

// GoImport is one import line of the generated file.
type GoImport struct {
	Name string
	Path string
}

type accessor struct {
	Name   string
	Module string
	Type   string
}

// renderOptions carries what the table file itself does not know.
type renderOptions struct {
	// Source is the table file name written into the header.
	Source string
	// File is the generated file name reported under the File meta name.
	File string
	// Runtime is the import path of the lazy runtime package.
	Runtime string
}

type renderData struct {
	Source    string
	Hash      string
	Table     *TableFile
	File      string
	Runtime   string
	Imports   []GoImport
	Exports   []string
	Accessors []accessor
}

// render produces the facade source for a validated table. The output depends
// only on tf and opts: templates range over slices and go/format fixes layout.
func render(tf *TableFile, opts renderOptions) ([]byte, error) {
	data := renderData{
		Source:    opts.Source,
		Hash:      tableHash(tf),
		Table:     tf,
		File:      opts.File,
		Runtime:   opts.Runtime,
		Imports:   moduleImports(tf.Modules),
		Exports:   tf.table().PublicNames(),
		Accessors: accessors(tf.Modules),
	}

	var sb strings.Builder
	if err := facadeTpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source([]byte(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("gofmt generated source: %w", err)
	}
	return src, nil
}

// moduleImports returns one import per (alias, path), sorted by path.
func moduleImports(mods []ModuleSpec) []GoImport {
	type key struct {
		path string
		name string
	}
	seen := map[key]bool{}
	out := make([]GoImport, 0, len(mods))
	for _, m := range mods {
		k := key{path: m.Import, name: m.Alias}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, GoImport{Name: m.Alias, Path: m.Import})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// accessors lists one typed accessor per symbol in table order.
func accessors(mods []ModuleSpec) []accessor {
	var out []accessor
	for _, m := range mods {
		for _, sym := range m.Symbols {
			typ := strings.TrimSpace(m.Types[sym])
			if typ == "" {
				typ = "any"
			}
			out = append(out, accessor{Name: sym, Module: m.ID, Type: typ})
		}
	}
	return out
}

// tableHash fingerprints the table content that reaches the output.
func tableHash(tf *TableFile) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s\n", tf.Package, tf.Namespace, tf.Version, tf.ImportPath, tf.EagerEnv)
	for _, m := range tf.Modules {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\n", m.ID, m.Import, m.Alias, m.Loader)
		for _, sym := range m.Symbols {
			fmt.Fprintf(h, "\t%s\x00%s\n", sym, m.Types[sym])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

var facadeTpl = template.Must(
	template.New("facade").
		Funcs(template.FuncMap{
			"quote": func(s string) string { return fmt.Sprintf("%q", s) },
		}).
		Parse(`// Code generated by facadegen; DO NOT EDIT.
// Source: {{.Source}}
// Table-SHA256: {{.Hash}}

package {{.Table.Package}}

import (
	"log/slog"

	lazy "{{.Runtime}}"
{{- range .Imports}}
	{{.Name}} "{{.Path}}"
{{- end}}
)

// Version is the release of this facade.
const Version = {{quote .Table.Version}}

// resolutionTable maps each submodule to the symbols it provides.
var resolutionTable = lazy.Table{
{{- range .Table.Modules}}
	{Module: {{quote .ID}}, Symbols: []string{
	{{- range .Symbols}}
		{{quote .}},
	{{- end}}
	}},
{{- end}}
}

// exportList is the sorted public symbol set.
var exportList = []string{
{{- range .Exports}}
	{{quote .}},
{{- end}}
}

// namespace binds symbols on first use. Setting {{.Table.EagerEnv}} to true loads
// every submodule during package initialization instead. Values that are neither
// a boolean nor "eager" or "lazy" keep lazy loading.
var namespace = lazy.MustNew(lazy.Config{
	Name:    {{quote .Table.Namespace}},
	Version: Version,
	File:    {{quote .File}},
	Path:    {{quote .Table.ImportPath}},
	Table:   resolutionTable,
	Exports: exportList,
	Loaders: map[string]lazy.Loader{
	{{- range .Table.Modules}}
		{{quote .ID}}: {{.Alias}}.{{.Loader}},
	{{- end}}
	},
	Mode: lazy.ModeFromEnv({{quote .Table.EagerEnv}}),
})
{{range .Accessors}}
// {{.Name}} returns {{.Module}}.{{.Name}}, loading {{.Module}} on first use.
func {{.Name}}() ({{.Type}}, error) { return lazy.Get[{{.Type}}](namespace, {{quote .Name}}) }
{{end}}
// Resolve returns any public symbol by name.
func Resolve(name string) (any, error) { return namespace.Resolve(name) }

// Dir lists the public symbols and meta names without loading anything.
func Dir() []string { return namespace.Dir() }

// Exports returns the sorted public symbol set.
func Exports() []string { return namespace.Exports() }

// ForceEagerImports loads every submodule and binds every symbol.
func ForceEagerImports() error { return namespace.ForceEager() }

// SetLogger routes debug records about submodule loading to l. Nil discards.
func SetLogger(l *slog.Logger) { namespace.SetLogger(l) }
`),
)
