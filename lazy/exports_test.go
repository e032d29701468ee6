package lazy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewExports / Provide
// -----------------------------------------------------------------------------

// TestNewExports_Empty verifies NewExports initializes an empty, non-nil map.
func TestNewExports_Empty(t *testing.T) {
	t.Parallel()

	e := NewExports()
	require.NotNil(t, e)
	require.NotNil(t, e.items)
	assert.Len(t, e.items, 0)
	assert.Empty(t, e.Names())
}

// TestProvide_ChainsAndStores verifies Provide stores values and returns the same exports.
func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	e := NewExports()
	ret := e.Provide("B", 1).Provide("A", "x")
	require.Same(t, e, ret)

	gotA, okA := e.Lookup("A")
	require.True(t, okA)
	assert.Equal(t, "x", gotA)

	gotB, okB := e.Lookup("B")
	require.True(t, okB)
	assert.Equal(t, 1, gotB)

	assert.Equal(t, []string{"A", "B"}, e.Names())
}

// TestLookup_Missing verifies Lookup returns (nil,false) for missing names.
func TestLookup_Missing(t *testing.T) {
	t.Parallel()

	got, ok := NewExports().Lookup("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestLookup_NilValue verifies a nil value is still reported as present.
func TestLookup_NilValue(t *testing.T) {
	t.Parallel()

	got, ok := NewExports().Provide("Nil", nil).Lookup("Nil")
	assert.True(t, ok)
	assert.Nil(t, got)
}

//
// -----------------------------------------------------------------------------
// MustGet
// -----------------------------------------------------------------------------

// TestExportsMustGet verifies MustGet returns present values and panics on missing ones.
func TestExportsMustGet(t *testing.T) {
	t.Parallel()

	e := NewExports().Provide("k", 123)
	assert.Equal(t, 123, e.MustGet("k"))

	require.PanicsWithError(t, `lazy: exports missing "nope"`, func() {
		e.MustGet("nope")
	})
}

//
// -----------------------------------------------------------------------------
// lookup (panic recovery)
// -----------------------------------------------------------------------------

type panicModule struct{}

func (panicModule) Lookup(string) (any, bool) { panic("kaboom") }

// TestLookup_ConvertsPanic verifies a panicking Module yields ErrModulePanic.
func TestLookup_ConvertsPanic(t *testing.T) {
	t.Parallel()

	val, ok, err := lookup(panicModule{}, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModulePanic))
	assert.Contains(t, err.Error(), "kaboom")
	assert.False(t, ok)
	assert.Nil(t, val)
}

// TestLookup_PassesThrough verifies lookup forwards normal results.
func TestLookup_PassesThrough(t *testing.T) {
	t.Parallel()

	val, ok, err := lookup(NewExports().Provide("x", 7), "x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, val)
}
