package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/lazyfacade/lazy"
)

// TableFile is the export table as written by hand next to the facade package.
//
// YAML / JSON:
//
//	package: sdk
//	version: 1.4.0
//	modules:
//	  - id: mod_b
//	    import: example.com/sdk/modb
//	    symbols: [Bar, Baz]
//	    types: {Bar: "*modb.Client"}
//
// HCL:
//
//	package = "sdk"
//	module "mod_b" {
//	  import  = "example.com/sdk/modb"
//	  symbols = ["Bar", "Baz"]
//	}
type TableFile struct {
	Package string `json:"package" yaml:"package" hcl:"package"`

	// Namespace names the facade in runtime errors. Defaults to Package.
	Namespace string `json:"namespace" yaml:"namespace" hcl:"namespace,optional"`
	Version   string `json:"version" yaml:"version" hcl:"version,optional"`

	// ImportPath is reported as the facade location. Inferred from go.mod when empty.
	ImportPath string `json:"importPath" yaml:"importPath" hcl:"import_path,optional"`

	// EagerEnv names the environment variable that switches the facade to eager
	// loading. Defaults to <PACKAGE>_EAGER_IMPORTS.
	EagerEnv string `json:"eagerEnv" yaml:"eagerEnv" hcl:"eager_env,optional"`

	Modules []ModuleSpec `json:"modules" yaml:"modules" hcl:"module,block"`
}

// ModuleSpec declares one lazily loaded submodule.
type ModuleSpec struct {
	ID     string `json:"id" yaml:"id" hcl:"id,label"`
	Import string `json:"import" yaml:"import" hcl:"import"`

	// Alias is the import name used in generated code. Derived from Import when empty.
	Alias string `json:"alias" yaml:"alias" hcl:"alias,optional"`

	// Loader is the exported func() (lazy.Module, error) in the package. Default "Load".
	Loader string `json:"loader" yaml:"loader" hcl:"loader,optional"`

	Symbols []string `json:"symbols" yaml:"symbols" hcl:"symbols"`

	// Types maps a symbol to the Go type its accessor returns. Unlisted symbols use any.
	Types map[string]string `json:"types" yaml:"types" hcl:"types,optional"`
}

// facadeAPI lists identifiers every generated facade declares itself.
var facadeAPI = map[string]struct{}{
	"Resolve":   {},
	"Dir":       {},
	"Exports":   {},
	"SetLogger": {},
}

// generatedIdents are file-level names the generated code relies on; import
// aliases must not shadow them.
var generatedIdents = map[string]bool{
	"lazy":            true,
	"slog":            true,
	"namespace":       true,
	"resolutionTable": true,
	"exportList":      true,
	"any":             true,
	"error":           true,
	"string":          true,
}

// declaredByFacade reports whether the generated file declares name at package
// level, either as part of its API or as a reserved binding.
func declaredByFacade(name string) bool {
	_, ok := facadeAPI[name]
	return ok || lazy.IsReserved(name)
}

var errUnsupportedFormat = errors.New("unsupported export table format")

// loadTableFile reads and decodes an export table. The format follows the extension.
func loadTableFile(tablePath string) (*TableFile, error) {
	raw, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, err
	}
	return decodeTableFile(tablePath, raw)
}

// decodeTableFile decodes raw by the extension of name. Unknown fields are errors
// in every format.
func decodeTableFile(name string, raw []byte) (*TableFile, error) {
	var tf TableFile

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&tf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("decode %s: empty document", name)
			}
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&tf); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

	case ".hcl":
		if err := hclsimple.Decode(name, raw, nil, &tf); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

	default:
		return nil, fmt.Errorf("%w: %q (want .yaml, .yml, .json or .hcl)", errUnsupportedFormat, filepath.Ext(name))
	}

	return &tf, nil
}

// applyDefaults fills optional fields. It must run before validate.
func applyDefaults(tf *TableFile) {
	if strings.TrimSpace(tf.Namespace) == "" {
		tf.Namespace = tf.Package
	}
	if strings.TrimSpace(tf.EagerEnv) == "" {
		tf.EagerEnv = strings.ToUpper(tf.Package) + "_EAGER_IMPORTS"
	}
	for i := range tf.Modules {
		if strings.TrimSpace(tf.Modules[i].Loader) == "" {
			tf.Modules[i].Loader = "Load"
		}
	}
	assignAliases(tf.Modules)
}

// assignAliases gives each import path one alias. Explicit aliases win; derived
// ones are made unique in table order by numbering.
func assignAliases(mods []ModuleSpec) {
	byPath := map[string]string{}
	taken := map[string]bool{}
	for ident := range generatedIdents {
		taken[ident] = true
	}

	for _, m := range mods {
		if m.Alias != "" {
			if _, ok := byPath[m.Import]; !ok {
				byPath[m.Import] = m.Alias
			}
			taken[m.Alias] = true
		}
	}

	for i := range mods {
		if mods[i].Alias != "" {
			continue
		}
		if alias, ok := byPath[mods[i].Import]; ok {
			mods[i].Alias = alias
			continue
		}
		base := aliasBase(mods[i].Import)
		alias := base
		for n := 2; taken[alias]; n++ {
			alias = base + strconv.Itoa(n)
		}
		taken[alias] = true
		byPath[mods[i].Import] = alias
		mods[i].Alias = alias
	}
}

// aliasBase turns the last import path element into a lower-case identifier.
func aliasBase(importPath string) string {
	elem := path.Base(strings.TrimSpace(importPath))

	var b strings.Builder
	for _, r := range strings.ToLower(elem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	alias := strings.Trim(b.String(), "_")
	if alias == "" || (alias[0] >= '0' && alias[0] <= '9') || token.IsKeyword(alias) {
		alias = "m" + alias
	}
	return alias
}

// table converts the file into the runtime resolution table.
func (tf *TableFile) table() lazy.Table {
	out := make(lazy.Table, 0, len(tf.Modules))
	for _, m := range tf.Modules {
		out = append(out, lazy.Entry{Module: m.ID, Symbols: append([]string(nil), m.Symbols...)})
	}
	return out
}

// validate checks the table invariants plus what generated Go code needs.
// The first failure is returned; nothing is emitted for an invalid table.
func validate(tf *TableFile) error {
	if !token.IsIdentifier(tf.Package) {
		return fmt.Errorf("package %q is not a Go identifier", tf.Package)
	}

	if err := tf.table().Validate(); err != nil {
		return err
	}

	symbols := map[string]struct{}{}
	for _, m := range tf.Modules {
		for _, sym := range m.Symbols {
			symbols[sym] = struct{}{}
		}
	}

	aliases := make(map[string]struct{}, len(tf.Modules))
	for _, m := range tf.Modules {
		aliases[m.Alias] = struct{}{}
	}

	aliasPath := map[string]string{}
	for _, m := range tf.Modules {
		if strings.TrimSpace(m.Import) == "" {
			return fmt.Errorf("module %q: import path is required", m.ID)
		}
		if !token.IsIdentifier(m.Alias) || generatedIdents[m.Alias] {
			return fmt.Errorf("module %q: alias %q is not usable", m.ID, m.Alias)
		}
		if declaredByFacade(m.Alias) {
			return fmt.Errorf("module %q: alias %q clashes with the generated facade API", m.ID, m.Alias)
		}
		if _, ok := symbols[m.Alias]; ok {
			return fmt.Errorf("module %q: alias %q clashes with a symbol", m.ID, m.Alias)
		}
		if prev, ok := aliasPath[m.Alias]; ok && prev != m.Import {
			return fmt.Errorf("module %q: alias %q already names %q", m.ID, m.Alias, prev)
		}
		aliasPath[m.Alias] = m.Import
		if !token.IsIdentifier(m.Loader) || !token.IsExported(m.Loader) {
			return fmt.Errorf("module %q: loader %q is not an exported identifier", m.ID, m.Loader)
		}

		declared := make(map[string]struct{}, len(m.Symbols))
		for _, sym := range m.Symbols {
			if !token.IsIdentifier(sym) || !token.IsExported(sym) {
				return fmt.Errorf("module %q: symbol %q is not an exported Go identifier", m.ID, sym)
			}
			if _, ok := facadeAPI[sym]; ok {
				return fmt.Errorf("module %q: symbol %q clashes with the generated facade API", m.ID, sym)
			}
			declared[sym] = struct{}{}
		}
		typed := make([]string, 0, len(m.Types))
		for sym := range m.Types {
			typed = append(typed, sym)
		}
		sort.Strings(typed)
		for _, sym := range typed {
			typ := m.Types[sym]
			if _, ok := declared[sym]; !ok {
				return fmt.Errorf("module %q: type given for undeclared symbol %q", m.ID, sym)
			}
			if strings.TrimSpace(typ) == "" {
				return fmt.Errorf("module %q: empty type for symbol %q", m.ID, sym)
			}
			expr, err := parser.ParseExpr(typ)
			if err != nil {
				return fmt.Errorf("module %q: type %q for symbol %q: %w", m.ID, typ, sym, err)
			}
			if pkg := unknownQualifier(expr, aliases); pkg != "" {
				return fmt.Errorf("module %q: type %q for symbol %q uses package %q, which is not a table alias", m.ID, typ, sym, pkg)
			}
		}
	}

	return nil
}

// unknownQualifier returns the first package qualifier in expr that the facade
// does not import, or "" when every qualified name resolves. The runtime
// packages lazy and slog are always imported.
func unknownQualifier(expr ast.Expr, aliases map[string]struct{}) string {
	var found string
	ast.Inspect(expr, func(n ast.Node) bool {
		if found != "" {
			return false
		}
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if _, ok := aliases[pkg.Name]; !ok && pkg.Name != "lazy" && pkg.Name != "slog" {
			found = pkg.Name
		}
		return false
	})
	return found
}
