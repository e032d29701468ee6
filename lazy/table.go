package lazy

import "sort"

// Infrastructure names are part of every public symbol set.
const (
	VersionName    = "Version"
	ForceEagerName = "ForceEagerImports"
)

// Meta names appear in Dir output next to the public symbols.
const (
	MetaExports = "Exports"
	MetaFile    = "File"
	MetaPath    = "Path"
)

var reservedNames = map[string]struct{}{
	VersionName:    {},
	ForceEagerName: {},
	MetaExports:    {},
	MetaFile:       {},
	MetaPath:       {},
}

// IsReserved reports whether name is an infrastructure or meta name and
// therefore cannot be exported by a module.
func IsReserved(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Entry is one submodule and the symbols it provides, in declaration order.
type Entry struct {
	Module  string
	Symbols []string
}

// Table is the ordered export table. Order is kept for reproducible output only;
// lookups go by name.
type Table []Entry

// Validate checks the table invariants. The first violation in table order is
// returned; nothing is dropped or overwritten to make a table pass.
func (t Table) Validate() error {
	_, err := t.Owners()
	return err
}

// Owners returns the symbol to module index derived from the table.
func (t Table) Owners() (map[string]string, error) {
	modules := make(map[string]struct{}, len(t))
	owners := make(map[string]string)

	for i, entry := range t {
		if entry.Module == "" {
			return nil, EmptyNameError{Index: i}
		}
		if _, ok := modules[entry.Module]; ok {
			return nil, DuplicateModuleError{Module: entry.Module}
		}
		modules[entry.Module] = struct{}{}

		for j, name := range entry.Symbols {
			if name == "" {
				return nil, EmptyNameError{Module: entry.Module, Index: j}
			}
			if IsReserved(name) {
				return nil, ReservedNameError{Module: entry.Module, Name: name}
			}
			if first, ok := owners[name]; ok {
				return nil, DuplicateSymbolError{Name: name, First: first, Second: entry.Module}
			}
			owners[name] = entry.Module
		}
	}
	return owners, nil
}

// Modules returns module ids in table order.
func (t Table) Modules() []string {
	out := make([]string, 0, len(t))
	for _, entry := range t {
		out = append(out, entry.Module)
	}
	return out
}

// Symbols returns the sorted union of every module's symbols.
func (t Table) Symbols() []string {
	var out []string
	for _, entry := range t {
		out = append(out, entry.Symbols...)
	}
	sort.Strings(out)
	return out
}

// PublicNames returns the derived public symbol set: every table symbol plus the
// infrastructure names, sorted.
func (t Table) PublicNames() []string {
	out := append(t.Symbols(), VersionName, ForceEagerName)
	sort.Strings(out)
	return out
}

// Clone returns a deep copy so callers cannot mutate a namespace's table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, entry := range t {
		out[i] = Entry{Module: entry.Module, Symbols: append([]string(nil), entry.Symbols...)}
	}
	return out
}
