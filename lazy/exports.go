package lazy

import (
	"fmt"
	"sort"
)

// Module is what a loaded submodule exposes to the namespace.
//
// Lookup must report ok=false for names it does not export. Implementations may
// be user types; a panic inside Lookup is converted to ErrModulePanic.
type Module interface {
	Lookup(name string) (val any, ok bool)
}

// Loader loads one submodule. It runs at most once successfully per namespace;
// a failed run leaves the module unloaded so a later resolution can retry.
type Loader func() (Module, error)

// Exports is a simple in-memory Module.
//
// It is filled once by a loader and read-only afterwards.
//
//	func Load() (lazy.Module, error) {
//		return lazy.NewExports().Provide("Client", NewClient()), nil
//	}
type Exports struct {
	items map[string]any
}

func NewExports() *Exports {
	return &Exports{items: map[string]any{}}
}

// Provide stores a value under name and returns the exports for chaining.
func (e *Exports) Provide(name string, val any) *Exports {
	e.items[name] = val
	return e
}

// Lookup implements Module.
func (e *Exports) Lookup(name string) (any, bool) {
	v, ok := e.items[name]
	return v, ok
}

// Names returns the exported names, sorted.
func (e *Exports) Names() []string {
	out := make([]string, 0, len(e.items))
	for name := range e.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MustGet returns the value or panics with a helpful message.
// Useful in tests where a missing export should fail fast.
func (e *Exports) MustGet(name string) any {
	v, ok := e.items[name]
	if !ok {
		panic(fmt.Errorf("lazy: exports missing %q", name))
	}
	return v
}

// lookup reads name from mod and converts panics into errors.
func lookup(mod Module, name string) (val any, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			ok = false
			err = fmt.Errorf("%w: %v", ErrModulePanic, rec)
		}
	}()

	val, ok = mod.Lookup(name)
	return val, ok, nil
}
