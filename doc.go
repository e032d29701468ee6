// Package lazyfacade builds public-API facades whose submodules load on first use.
//
// A large library often re-exports many symbols from one top-level package.
// Wiring them eagerly makes every importer pay for every submodule. A lazy
// facade keeps one explicit export table instead and binds a symbol the first
// time it is requested:
//
//   - lazy: the runtime (export table, namespace, resolution cache, typed access)
//   - lazy/lazytest: counting loaders for tests
//   - cmd/facadegen: generates a facade package from an export table file
//   - examples/sdk: a generated facade over two submodules
//
// Guarantees:
//
//   - importing a facade runs no submodule loader
//   - a submodule loads at most once, even under concurrent first access
//   - a failed load is reported unchanged and retried on the next access
//   - unknown names fail with lazy.ErrUnknownSymbol and change nothing
//   - enumeration never triggers a load
//
// Start with examples/sdk and the doc of cmd/facadegen.
package lazyfacade
