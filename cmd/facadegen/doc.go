// Command facadegen generates lazy public-API facades.
//
// A facade package re-exports symbols that live in several submodule packages.
// Importing the facade is cheap: a submodule's loader runs the first time one of
// its symbols is requested, never earlier, and at most once.
//
// The single source of truth is an export table checked in next to the facade:
//
//	# examples/sdk/exports.yaml
//	package: sdk
//	version: 1.0.0
//	modules:
//	  - id: mod_a
//	    import: github.com/sghaida/lazyfacade/examples/sdk/moda
//	    symbols: [Foo]
//	  - id: mod_b
//	    import: github.com/sghaida/lazyfacade/examples/sdk/modb
//	    symbols: [Bar, Baz]
//	    types:
//	      Baz: string
//
// The same table may be written as JSON (same keys) or HCL:
//
//	package = "sdk"
//	module "mod_a" {
//	  import  = "github.com/sghaida/lazyfacade/examples/sdk/moda"
//	  symbols = ["Foo"]
//	}
//
// Every module package exports a loader, Load by default:
//
//	func Load() (lazy.Module, error)
//
// Usage
//
//	//go:generate go run github.com/sghaida/lazyfacade/cmd/facadegen -table ./exports.yaml -out ./sdk.gen.go
//
// Flags:
//
//	-table   export table (.yaml, .yml, .json, .hcl)
//	-out     generated file
//	-check   exit 1 if -out differs from a fresh render; nothing is written
//	-stdout  print the generated source instead of writing -out; overrides
//	         FACADEGEN_CHECK, but not an explicit -check
//	-v       debug logging
//
// Environment:
//
//	FACADEGEN_LOG_LEVEL       debug, info, warn, error (default info)
//	FACADEGEN_LOG_FORMAT      text or json (default text)
//	FACADEGEN_RUNTIME_IMPORT  import path of the lazy runtime, always imported as lazy
//	FACADEGEN_CHECK           true makes -check the default
//
// Exit codes: 0 success, 1 generation failure or stale output, 2 usage error.
//
// Validation
//
// A table is rejected, and nothing is written, when a symbol is claimed twice
// (by one module or by two), a module id repeats, a name is empty or reserved
// (Version, ForceEagerImports, Exports, File, Path), a symbol is not an exported
// Go identifier or collides with the generated API (Resolve, Dir, SetLogger), an
// import alias is unusable or names something the facade declares, or a declared
// type is not a Go expression or qualifies a package that is not a table alias.
//
// Generated file
//
// The output is deterministic: the same table always yields byte-identical
// source. It contains, in order, the header with a SHA-256 of the table, the
// import block, const Version, the embedded resolution table, the sorted export
// list, the namespace with its loaders and eager switch, one typed accessor per
// symbol in table order, and the fixed epilog (Resolve, Dir, Exports,
// ForceEagerImports, SetLogger).
//
// The namespace switches to eager loading when the table's eagerEnv variable
// (default <PACKAGE>_EAGER_IMPORTS) is true at program start; package
// initialization then fails loudly if any submodule cannot load. Values other
// than a boolean, "eager" or "lazy" keep lazy loading.
package main
