package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gemcore/cdl/catalog"
)

func TestIsSystem(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		expected bool
	}{
		"cubic is a system":        {input: "cubic", expected: true},
		"amorphous is a system":    {input: "amorphous", expected: true},
		"unknown name rejected":    {input: "bogus", expected: false},
		"case sensitive":          {input: "Cubic", expected: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, catalog.IsSystem(tc.input))
		})
	}
}

func TestIsPointGroup(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		sys      catalog.System
		group    string
		expected bool
	}{
		"m3m in cubic":            {sys: catalog.Cubic, group: "m3m", expected: true},
		"32 in trigonal":          {sys: catalog.Trigonal, group: "32", expected: true},
		"m3m not in trigonal":     {sys: catalog.Trigonal, group: "m3m", expected: false},
		"amorphous has none":      {sys: catalog.Amorphous, group: "1", expected: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, catalog.IsPointGroup(tc.sys, tc.group))
		})
	}
}

func TestDefaultPointGroups_coverEverySystem(t *testing.T) {
	t.Parallel()

	for sys := range catalog.PointGroups {
		def, ok := catalog.DefaultPointGroups[sys]
		if !ok {
			t.Fatalf("system %q has no default point group", sys)
		}
		assert.True(t, catalog.IsPointGroup(sys, def), "default point group %q must be a member of system %q", def, sys)
	}
}

func TestLookupNamedForm(t *testing.T) {
	t.Parallel()

	idx, ok := catalog.LookupNamedForm(catalog.Cubic, "octahedron")
	assert.True(t, ok)
	assert.Equal(t, catalog.MillerIndex{H: 1, K: 1, L: 1}, idx)

	_, ok = catalog.LookupNamedForm(catalog.Cubic, "nonexistent")
	assert.False(t, ok)

	_, ok = catalog.LookupNamedForm(catalog.Tetragonal, "octahedron")
	assert.False(t, ok)
}

func TestClosedSets(t *testing.T) {
	t.Parallel()

	assert.True(t, catalog.IsTwinLaw("spinel"))
	assert.False(t, catalog.IsTwinLaw("nonexistent"))

	assert.True(t, catalog.IsAmorphousSubtype("opalescent"))
	assert.False(t, catalog.IsAmorphousSubtype("nonexistent"))

	assert.True(t, catalog.IsAmorphousShape("botryoidal"))
	assert.False(t, catalog.IsAmorphousShape("nonexistent"))

	assert.True(t, catalog.IsAggregateArrangement("cluster"))
	assert.False(t, catalog.IsAggregateArrangement("nonexistent"))

	assert.True(t, catalog.IsAggregateOrientation("aligned"))
	assert.False(t, catalog.IsAggregateOrientation("nonexistent"))

	assert.True(t, catalog.IsModification("elongate"))
	assert.False(t, catalog.IsModification("nonexistent"))
}
