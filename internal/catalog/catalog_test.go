package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestEmbeddedFormulasLoad(t *testing.T) {
	c := newCatalog(t)

	names := c.Names()
	assert.Contains(t, names, "unified_action")
	assert.Contains(t, names, "gravity_action")
	assert.Contains(t, names, "einstein_field")
	assert.Len(t, names, 9)

	// Names is sorted.
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestGet(t *testing.T) {
	c := newCatalog(t)

	f, err := c.Get("einstein_field")
	require.NoError(t, err)
	assert.Equal(t, "Einstein Field Equations", f.Name)
	assert.NotEmpty(t, f.LaTeX)
	assert.NotEmpty(t, f.Variables)

	_, err = c.Get("nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formula")
	assert.Contains(t, err.Error(), "unified_action")
}

func TestExplore(t *testing.T) {
	c := newCatalog(t)

	ex, err := c.Explore("unified_action")
	require.NoError(t, err)
	assert.Equal(t, "Unified Action", ex.Formula.Name)
	assert.Len(t, ex.Components, 4)
	assert.Contains(t, ex.Components, "gravity_action")
	assert.Contains(t, ex.Components, "quantum_corrections")

	// Formula without components explores to an empty component map.
	ex, err = c.Explore("dirac")
	require.NoError(t, err)
	assert.Empty(t, ex.Components)
}

func TestCompare(t *testing.T) {
	c := newCatalog(t)

	cmp := c.Compare([]string{"gravity_action", "matter_action"})
	assert.Len(t, cmp.Formulas, 2)
	assert.Empty(t, cmp.CommonComponents)
	assert.Equal(t, []string{"einstein_field"}, cmp.UniqueComponents["gravity_action"])
	assert.Equal(t, []string{"dirac"}, cmp.UniqueComponents["matter_action"])

	// Same formula twice shares all components.
	cmp = c.Compare([]string{"gravity_action", "gravity_action"})
	assert.Equal(t, []string{"einstein_field"}, cmp.UniqueComponents["gravity_action"])

	// Unknown names surface in Errors, known ones still compare.
	cmp = c.Compare([]string{"gravity_action", "bogus"})
	assert.Len(t, cmp.Formulas, 1)
	assert.Contains(t, cmp.Errors, "bogus")
}

func TestSearch(t *testing.T) {
	c := newCatalog(t)

	results := c.Search("gravity")
	require.NotEmpty(t, results)
	// gravity_action matches on name; it must outrank formulas that only
	// mention gravity elsewhere.
	assert.Equal(t, "gravity_action", results[0].Name)
	assert.GreaterOrEqual(t, results[0].Score, 3)

	// Scores are non-increasing.
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}

	assert.Empty(t, c.Search("zzzz-no-match"))
}

func TestDependencyTree(t *testing.T) {
	c := newCatalog(t)

	deps, err := c.DependencyTree("unified_action")
	require.NoError(t, err)
	assert.Len(t, deps.Direct, 4)
	assert.Equal(t, []string{"einstein_field"}, deps.Tree["gravity_action"])
	assert.Equal(t, []string{"dirac"}, deps.Tree["matter_action"])

	_, err = c.DependencyTree("bogus")
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	c := newCatalog(t)
	dir := t.TempDir()

	good := `{"name": "Test Law", "description": "A test.", "latex": "a = b"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_law.json"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	require.NoError(t, c.LoadDir(dir))

	f, err := c.Get("test_law")
	require.NoError(t, err)
	assert.Equal(t, "Test Law", f.Name)

	// Malformed file was skipped, not loaded and not fatal.
	_, err = c.Get("broken")
	assert.Error(t, err)

	// Missing directory is an error.
	assert.Error(t, c.LoadDir(filepath.Join(dir, "missing")))
}
