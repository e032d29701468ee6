package lazy

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Mode selects when symbols are bound. It is fixed when the namespace is built.
type Mode int

const (
	// ModeLazy binds a symbol the first time it is resolved.
	ModeLazy Mode = iota
	// ModeEager binds every symbol while the namespace is built.
	ModeEager
)

func (m Mode) String() string {
	switch m {
	case ModeLazy:
		return "lazy"
	case ModeEager:
		return "eager"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode accepts "lazy", "eager" or any strconv.ParseBool value, where true
// means eager.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lazy":
		return ModeLazy, nil
	case "eager":
		return ModeEager, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return ModeLazy, fmt.Errorf("lazy: invalid mode %q", s)
	}
	if b {
		return ModeEager, nil
	}
	return ModeLazy, nil
}

// ModeFromEnv reads the mode from the named environment variable.
//
// Unset or unparsable values select ModeLazy. An unparsable value is reported
// at debug level on slog.Default.
func ModeFromEnv(name string) Mode {
	raw := os.Getenv(name)
	m, err := ParseMode(raw)
	if err != nil {
		slog.Debug("lazy: ignoring invalid mode", slog.String("variable", name), slog.String("value", raw))
		return ModeLazy
	}
	return m
}

// Config describes a namespace. Generated facades build one literal per package.
type Config struct {
	// Name identifies the namespace in errors and logs.
	Name    string
	Version string

	// File and Path locate the facade source (reported under MetaFile and MetaPath).
	File string
	Path string

	Table Table

	// Exports is the declared export list. When set it must equal
	// Table.PublicNames(); generated code always sets it.
	Exports []string

	// Loaders has exactly one entry per table module.
	Loaders map[string]Loader

	Mode Mode

	// Logger receives debug records about imports. Nil discards.
	Logger *slog.Logger
}

// Stats is a point-in-time view of resolution activity.
type Stats struct {
	// Imports counts successful loader runs per module.
	Imports map[string]int
	// Misses counts Resolve calls that did not find a bound value.
	Misses int
	// Resolved counts table symbols currently bound.
	Resolved int
}

// Namespace is the runtime half of a lazy facade: it owns the resolution table,
// the submodule loaders and the resolution cache.
//
// A Namespace is safe for concurrent use. Bound values are never replaced.
type Namespace struct {
	name    string
	version string
	file    string
	path    string
	mode    Mode

	table  Table
	owners map[string]string
	public []string
	dir    []string

	imports *importer
	cache   sync.Map // symbol -> value

	misses   atomic.Int64
	resolved atomic.Int64
	logger   atomic.Pointer[slog.Logger]
}

// New validates cfg and builds a namespace. In ModeEager every symbol is
// resolved before New returns.
func New(cfg Config) (*Namespace, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, errors.New("lazy: namespace name is required")
	}

	owners, err := cfg.Table.Owners()
	if err != nil {
		return nil, err
	}
	if err := checkLoaders(cfg.Table, cfg.Loaders); err != nil {
		return nil, err
	}

	public := cfg.Table.PublicNames()
	if cfg.Exports != nil && !slices.Equal(cfg.Exports, public) {
		return nil, fmt.Errorf("%w: declared export list for %q does not match the table (declared %d, derived %d)",
			ErrInvalidTable, cfg.Name, len(cfg.Exports), len(public))
	}

	ns := &Namespace{
		name:    cfg.Name,
		version: cfg.Version,
		file:    cfg.File,
		path:    cfg.Path,
		mode:    cfg.Mode,
		table:   cfg.Table.Clone(),
		owners:  owners,
		public:  public,
		dir:     append(slices.Clone(public), MetaExports, MetaFile, MetaPath),
		imports: newImporter(cfg.Loaders),
	}
	ns.SetLogger(cfg.Logger)

	// Infrastructure and meta names are ordinary bindings from the start.
	// MetaExports is answered by Resolve with a fresh copy instead.
	ns.cache.Store(VersionName, cfg.Version)
	ns.cache.Store(ForceEagerName, ns.ForceEager)
	ns.cache.Store(MetaFile, cfg.File)
	ns.cache.Store(MetaPath, cfg.Path)

	if cfg.Mode == ModeEager {
		if err := ns.ForceEager(); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

// MustNew is New that panics on error. Generated facades use it at package
// initialization, where a broken table should stop the program.
func MustNew(cfg Config) *Namespace {
	ns, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return ns
}

func checkLoaders(table Table, loaders map[string]Loader) error {
	listed := make(map[string]struct{}, len(table))
	for _, entry := range table {
		listed[entry.Module] = struct{}{}
		if loaders[entry.Module] == nil {
			return LoaderError{Module: entry.Module}
		}
	}

	var extra []string
	for id := range loaders {
		if _, ok := listed[id]; !ok {
			extra = append(extra, id)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return LoaderError{Module: extra[0], Extra: true}
	}
	return nil
}

// Resolve returns the value bound to name, loading its owning module on first use.
//
// An unknown name fails with UnknownSymbolError and binds nothing. A loader error
// is returned unchanged and leaves the symbol unbound, so a later call retries.
func (ns *Namespace) Resolve(name string) (any, error) {
	if name == MetaExports {
		return ns.Exports(), nil
	}
	if v, ok := ns.cache.Load(name); ok {
		return v, nil
	}
	ns.misses.Add(1)

	id, ok := ns.owners[name]
	if !ok {
		return nil, UnknownSymbolError{Namespace: ns.name, Name: name}
	}

	log := ns.log()
	mod, err := ns.imports.load(id, log)
	if err != nil {
		return nil, err
	}

	val, ok, err := lookup(mod, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, MissingExportError{Module: id, Name: name}
	}

	// Racing resolvers store the same value; the first store wins.
	actual, loaded := ns.cache.LoadOrStore(name, val)
	if !loaded {
		ns.resolved.Add(1)
		log.Debug("symbol resolved", slog.String("namespace", ns.name), slog.String("symbol", name), slog.String("module", id))
	}
	return actual, nil
}

// MustResolve is Resolve that panics on error.
func (ns *Namespace) MustResolve(name string) any {
	v, err := ns.Resolve(name)
	if err != nil {
		panic(err)
	}
	return v
}

// ForceEager resolves every table symbol in table order.
//
// Each symbol is attempted independently. When a module fails to load, its
// remaining symbols are skipped for this walk and the failure is reported once.
// All failures are joined. Calling ForceEager again after success loads nothing.
func (ns *Namespace) ForceEager() error {
	var errs []error
	for _, entry := range ns.table {
		for _, name := range entry.Symbols {
			if _, err := ns.Resolve(name); err != nil {
				errs = append(errs, err)
				if !ns.imports.isLoaded(entry.Module) {
					break
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Dir lists the public symbol set followed by the meta names. The result does
// not depend on what has been resolved.
func (ns *Namespace) Dir() []string { return slices.Clone(ns.dir) }

// Exports returns the declared export list.
func (ns *Namespace) Exports() []string { return slices.Clone(ns.public) }

// Resolved reports whether a table symbol is bound.
func (ns *Namespace) Resolved(name string) bool {
	if _, ok := ns.owners[name]; !ok {
		return false
	}
	_, ok := ns.cache.Load(name)
	return ok
}

// Owner returns the module that provides name.
func (ns *Namespace) Owner(name string) (string, bool) {
	id, ok := ns.owners[name]
	return id, ok
}

func (ns *Namespace) Stats() Stats {
	return Stats{
		Imports:  ns.imports.snapshot(),
		Misses:   int(ns.misses.Load()),
		Resolved: int(ns.resolved.Load()),
	}
}

func (ns *Namespace) Name() string    { return ns.name }
func (ns *Namespace) Version() string { return ns.version }
func (ns *Namespace) File() string    { return ns.file }
func (ns *Namespace) Path() string    { return ns.path }
func (ns *Namespace) Mode() Mode      { return ns.mode }

// Table returns a copy of the resolution table.
func (ns *Namespace) Table() Table { return ns.table.Clone() }

// SetLogger replaces the logger. A nil logger discards.
func (ns *Namespace) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	ns.logger.Store(l)
}

func (ns *Namespace) log() *slog.Logger { return ns.logger.Load() }

// Get resolves name and asserts its type.
func Get[T any](ns *Namespace, name string) (T, error) {
	var zero T

	v, err := ns.Resolve(name)
	if err != nil {
		return zero, err
	}

	want := reflect.TypeFor[T]()
	if v == nil {
		if nilable(want.Kind()) {
			return zero, nil
		}
		return zero, WrongTypeError{Name: name, Want: want.String(), Got: "nil"}
	}

	t, ok := v.(T)
	if !ok {
		return zero, WrongTypeError{Name: name, Want: want.String(), Got: reflect.TypeOf(v).String()}
	}
	return t, nil
}

// MustGet is Get that panics on error.
func MustGet[T any](ns *Namespace, name string) T {
	v, err := Get[T](ns, name)
	if err != nil {
		panic(err)
	}
	return v
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
