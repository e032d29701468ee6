// Package lazy is the runtime behind generated lazy facades.
//
// A facade is one flat namespace over many submodules. Each submodule is loaded
// by a Loader the first time one of its symbols is resolved; the resolved value
// is then bound in the namespace and later lookups read it directly.
//
// The mapping from submodule to symbols is a Table, fixed when the facade is
// generated:
//
//	table := lazy.Table{
//		{Module: "mod_a", Symbols: []string{"Foo"}},
//		{Module: "mod_b", Symbols: []string{"Bar", "Baz"}},
//	}
//
//	ns := lazy.MustNew(lazy.Config{
//		Name:    "sdk",
//		Table:   table,
//		Loaders: map[string]lazy.Loader{"mod_a": moda.Load, "mod_b": modb.Load},
//	})
//
//	bar, err := ns.Resolve("Bar")                  // loads mod_b only
//	baz, err := lazy.Get[string](ns, "Baz")        // mod_b is already loaded
//	foo, err := lazy.Get[*moda.Greeter](ns, "Foo") // loads mod_a
//
// Guarantees:
//   - A module is loaded at most once successfully, including under concurrent
//     resolution; a failed load is not remembered and is retried on the next call.
//   - Resolving a symbol never loads a module other than its owner.
//   - Dir and Exports do not depend on what has been resolved.
//   - ForceEager resolves everything; once it succeeds, calling it again loads nothing.
//
// Facades are normally produced by cmd/facadegen rather than written by hand.
package lazy
