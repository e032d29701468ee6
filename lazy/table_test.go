package lazy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		{Module: "mod_a", Symbols: []string{"Foo"}},
		{Module: "mod_b", Symbols: []string{"Bar", "Baz"}},
	}
}

//
// -----------------------------------------------------------------------------
// Validate / Owners
// -----------------------------------------------------------------------------

// TestValidate_Valid verifies a well-formed table passes and indexes every symbol.
func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	require.NoError(t, tbl.Validate())

	owners, err := tbl.Owners()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Foo": "mod_a", "Bar": "mod_b", "Baz": "mod_b"}, owners)
}

// TestValidate_EmptyTable verifies an empty table is valid.
func TestValidate_EmptyTable(t *testing.T) {
	t.Parallel()

	require.NoError(t, Table{}.Validate())
	assert.Equal(t, []string{ForceEagerName, VersionName}, Table{}.PublicNames())
}

// TestValidate_Failures covers every invariant violation and its typed error.
func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		table   Table
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty module id",
			table:   Table{{Module: "", Symbols: []string{"Foo"}}},
			wantErr: EmptyNameError{Index: 0},
			wantMsg: `lazy: entry 0 has an empty module id`,
		},
		{
			name:    "empty symbol",
			table:   Table{{Module: "mod_a", Symbols: []string{"Foo", ""}}},
			wantErr: EmptyNameError{Module: "mod_a", Index: 1},
			wantMsg: `lazy: module "mod_a" has an empty symbol at index 1`,
		},
		{
			name: "duplicate module",
			table: Table{
				{Module: "mod_a", Symbols: []string{"Foo"}},
				{Module: "mod_a", Symbols: []string{"Bar"}},
			},
			wantErr: DuplicateModuleError{Module: "mod_a"},
			wantMsg: `lazy: duplicate module "mod_a"`,
		},
		{
			name: "symbol claimed by two modules",
			table: Table{
				{Module: "mod_a", Symbols: []string{"Foo"}},
				{Module: "mod_b", Symbols: []string{"Bar", "Foo"}},
			},
			wantErr: DuplicateSymbolError{Name: "Foo", First: "mod_a", Second: "mod_b"},
			wantMsg: `lazy: symbol "Foo" claimed by both "mod_a" and "mod_b"`,
		},
		{
			name:    "symbol repeated in one module",
			table:   Table{{Module: "mod_a", Symbols: []string{"Foo", "Foo"}}},
			wantErr: DuplicateSymbolError{Name: "Foo", First: "mod_a", Second: "mod_a"},
			wantMsg: `lazy: symbol "Foo" listed twice by module "mod_a"`,
		},
		{
			name:    "reserved name",
			table:   Table{{Module: "mod_a", Symbols: []string{VersionName}}},
			wantErr: ReservedNameError{Module: "mod_a", Name: VersionName},
			wantMsg: `lazy: module "mod_a" exports reserved name "Version"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.table.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err)
			assert.EqualError(t, err, tc.wantMsg)
			assert.True(t, errors.Is(err, ErrInvalidTable))
		})
	}
}

// TestIsReserved verifies the infrastructure and meta names are reserved.
func TestIsReserved(t *testing.T) {
	t.Parallel()

	for _, name := range []string{VersionName, ForceEagerName, MetaExports, MetaFile, MetaPath} {
		assert.True(t, IsReserved(name), name)
	}
	assert.False(t, IsReserved("Foo"))
}

//
// -----------------------------------------------------------------------------
// Derived sets
// -----------------------------------------------------------------------------

// TestPublicNames_SortedWithInfrastructure verifies the derived public set.
func TestPublicNames_SortedWithInfrastructure(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	assert.Equal(t, []string{"Bar", "Baz", "Foo"}, tbl.Symbols())
	assert.Equal(t, []string{"Bar", "Baz", "Foo", ForceEagerName, VersionName}, tbl.PublicNames())
	assert.Equal(t, []string{"mod_a", "mod_b"}, tbl.Modules())
}

// TestPublicNames_OrderIndependent verifies module order does not change the public set.
func TestPublicNames_OrderIndependent(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	reversed := Table{tbl[1], tbl[0]}
	assert.Equal(t, tbl.PublicNames(), reversed.PublicNames())
}

// TestClone_IsDeep verifies Clone does not share symbol slices.
func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	cp := tbl.Clone()
	cp[1].Symbols[0] = "Changed"

	assert.Equal(t, "Bar", tbl[1].Symbols[0])
}
