package lazy

import (
	"errors"
	"strconv"
)

var (
	// ErrUnknownSymbol matches every failure where a requested name cannot be
	// bound: names absent from the table and names a loaded module does not export.
	ErrUnknownSymbol = errors.New("lazy: unknown symbol")

	// ErrModulePanic is returned if a Module implementation panics inside Lookup.
	ErrModulePanic = errors.New("lazy: panic during module lookup")

	// ErrNilModule is returned when a loader reports success without a module.
	ErrNilModule = errors.New("lazy: loader returned nil module")

	// ErrInvalidTable is matched by every Table.Validate failure.
	ErrInvalidTable = errors.New("lazy: invalid export table")
)

// UnknownSymbolError is returned when a name is not owned by any table entry.
type UnknownSymbolError struct {
	Namespace string
	Name      string
}

// Error implements the error interface.
func (e UnknownSymbolError) Error() string {
	// Example: lazy: namespace "sdk" has no symbol "Qux"
	return "lazy: namespace " + strconv.Quote(e.Namespace) + " has no symbol " + strconv.Quote(e.Name)
}

// Is reports ErrUnknownSymbol.
func (e UnknownSymbolError) Is(target error) bool { return target == ErrUnknownSymbol }

// MissingExportError is returned when a loaded module does not expose a symbol
// the table declares for it.
type MissingExportError struct {
	Module string
	Name   string
}

// Error implements the error interface.
func (e MissingExportError) Error() string {
	return "lazy: module " + strconv.Quote(e.Module) + " does not export " + strconv.Quote(e.Name)
}

// Is reports ErrUnknownSymbol.
func (e MissingExportError) Is(target error) bool { return target == ErrUnknownSymbol }

// WrongTypeError is returned by Get when the resolved value is not a T.
type WrongTypeError struct {
	Name string

	// Want and Got are reflect type strings.
	Want string
	Got  string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: lazy: symbol "Bar" has type *modb.Client, want string
	return "lazy: symbol " + strconv.Quote(e.Name) + " has type " + e.Got + ", want " + e.Want
}

// EmptyNameError reports an empty module id or symbol name.
type EmptyNameError struct {
	// Module is empty when the module id itself is missing.
	Module string
	Index  int
}

// Error implements the error interface.
func (e EmptyNameError) Error() string {
	if e.Module == "" {
		return "lazy: entry " + strconv.Itoa(e.Index) + " has an empty module id"
	}
	return "lazy: module " + strconv.Quote(e.Module) + " has an empty symbol at index " + strconv.Itoa(e.Index)
}

// Is reports ErrInvalidTable.
func (e EmptyNameError) Is(target error) bool { return target == ErrInvalidTable }

// DuplicateModuleError reports a module id listed twice.
type DuplicateModuleError struct{ Module string }

// Error implements the error interface.
func (e DuplicateModuleError) Error() string {
	return "lazy: duplicate module " + strconv.Quote(e.Module)
}

// Is reports ErrInvalidTable.
func (e DuplicateModuleError) Is(target error) bool { return target == ErrInvalidTable }

// DuplicateSymbolError reports a symbol claimed twice. First and Second are equal
// when a module lists the same symbol more than once.
type DuplicateSymbolError struct {
	Name   string
	First  string
	Second string
}

// Error implements the error interface.
func (e DuplicateSymbolError) Error() string {
	if e.First == e.Second {
		return "lazy: symbol " + strconv.Quote(e.Name) + " listed twice by module " + strconv.Quote(e.First)
	}
	return "lazy: symbol " + strconv.Quote(e.Name) + " claimed by both " + strconv.Quote(e.First) + " and " + strconv.Quote(e.Second)
}

// Is reports ErrInvalidTable.
func (e DuplicateSymbolError) Is(target error) bool { return target == ErrInvalidTable }

// ReservedNameError reports a symbol that collides with an infrastructure or meta name.
type ReservedNameError struct {
	Module string
	Name   string
}

// Error implements the error interface.
func (e ReservedNameError) Error() string {
	return "lazy: module " + strconv.Quote(e.Module) + " exports reserved name " + strconv.Quote(e.Name)
}

// Is reports ErrInvalidTable.
func (e ReservedNameError) Is(target error) bool { return target == ErrInvalidTable }

// LoaderError reports a mismatch between the table and the loader set.
type LoaderError struct {
	Module string

	// Extra is true when a loader exists for a module the table does not list.
	Extra bool
}

// Error implements the error interface.
func (e LoaderError) Error() string {
	if e.Extra {
		return "lazy: loader registered for unknown module " + strconv.Quote(e.Module)
	}
	return "lazy: no loader for module " + strconv.Quote(e.Module)
}
