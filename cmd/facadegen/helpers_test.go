package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// sampleYAML is the two-module table used across generator tests.
const sampleYAML = `package: sdk
version: 1.2.3
importPath: example.com/sdk
modules:
  - id: mod_a
    import: example.com/sdk/moda
    symbols: [Foo]
  - id: mod_b
    import: example.com/sdk/modb
    symbols: [Bar, Baz]
    types:
      Baz: string
`

// sampleJSON is sampleYAML written as JSON.
const sampleJSON = `{
  "package": "sdk",
  "version": "1.2.3",
  "importPath": "example.com/sdk",
  "modules": [
    {"id": "mod_a", "import": "example.com/sdk/moda", "symbols": ["Foo"]},
    {"id": "mod_b", "import": "example.com/sdk/modb", "symbols": ["Bar", "Baz"], "types": {"Baz": "string"}}
  ]
}`

// sampleHCL is sampleYAML written as HCL.
const sampleHCL = `package     = "sdk"
version     = "1.2.3"
import_path = "example.com/sdk"

module "mod_a" {
  import  = "example.com/sdk/moda"
  symbols = ["Foo"]
}

module "mod_b" {
  import  = "example.com/sdk/modb"
  symbols = ["Bar", "Baz"]
  types   = { Baz = "string" }
}
`

// sampleTableFile returns the decoded and defaulted form of sampleYAML.
func sampleTableFile() *TableFile {
	tf := &TableFile{
		Package:    "sdk",
		Version:    "1.2.3",
		ImportPath: "example.com/sdk",
		Modules: []ModuleSpec{
			{ID: "mod_a", Import: "example.com/sdk/moda", Symbols: []string{"Foo"}},
			{ID: "mod_b", Import: "example.com/sdk/modb", Symbols: []string{"Bar", "Baz"}, Types: map[string]string{"Baz": "string"}},
		},
	}
	applyDefaults(tf)
	return tf
}

// noEnv is a getenv that sees an empty environment.
func noEnv(string) string { return "" }

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets tests force errors on Write and Close without touching real files.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteFileSeams puts the real file seams back when the test ends.
func restoreWriteFileSeams(t *testing.T) {
	t.Helper()
	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
