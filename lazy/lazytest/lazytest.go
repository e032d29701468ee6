// Package lazytest provides counting loaders for tests of lazy namespaces.
//
// A Set holds one registered module per id. Its loaders record every call and
// can be told to fail a number of times before succeeding:
//
//	set := lazytest.New().
//		Register("mod_a", lazy.NewExports().Provide("Foo", 1)).
//		FailNext("mod_a", errBoom, 1)
//	ns := lazy.MustNew(lazy.Config{Name: "t", Table: table, Loaders: set.Loaders()})
package lazytest

import (
	"sort"
	"sync"

	"github.com/sghaida/lazyfacade/lazy"
)

type module struct {
	exports  *lazy.Exports
	failErr  error
	failLeft int
	calls    int
	loads    int
}

// Set is a group of registered fake modules. It is safe for concurrent use.
type Set struct {
	mu      sync.Mutex
	modules map[string]*module
}

func New() *Set {
	return &Set{modules: map[string]*module{}}
}

// Register adds or replaces the exports returned for id.
func (s *Set) Register(id string, exports *lazy.Exports) *Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry(id).exports = exports
	return s
}

// FailNext makes the next n loads of id fail with err.
func (s *Set) FailNext(id string, err error, n int) *Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.entry(id)
	m.failErr = err
	m.failLeft = n
	return s
}

// Calls returns how many times the loader for id ran, failures included.
func (s *Set) Calls(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.modules[id]; ok {
		return m.calls
	}
	return 0
}

// Count returns how many times the loader for id succeeded.
func (s *Set) Count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.modules[id]; ok {
		return m.loads
	}
	return 0
}

// IDs returns the registered module ids, sorted.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.modules))
	for id := range s.modules {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Loader returns the counting loader for id.
func (s *Set) Loader(id string) lazy.Loader {
	return func() (lazy.Module, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		m := s.entry(id)
		m.calls++
		if m.failLeft > 0 {
			m.failLeft--
			return nil, m.failErr
		}
		m.loads++
		if m.exports == nil {
			return lazy.NewExports(), nil
		}
		return m.exports, nil
	}
}

// Loaders returns a loader map covering every registered id.
func (s *Set) Loaders() map[string]lazy.Loader {
	out := map[string]lazy.Loader{}
	for _, id := range s.IDs() {
		out[id] = s.Loader(id)
	}
	return out
}

func (s *Set) entry(id string) *module {
	m, ok := s.modules[id]
	if !ok {
		m = &module{}
		s.modules[id] = m
	}
	return m
}
