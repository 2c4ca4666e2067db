package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-import-service/internal/models"
)

func TestResolveCategory_ExactBeatsSubstring(t *testing.T) {
	f := newFakeCatalog()
	r := NewResolver(f.categories, f.units)

	// "Snacks & Drinks" comes first in flatten order but only matches by substring
	c := r.ResolveCategory("snacks")
	require.NotNil(t, c)
	assert.Equal(t, "cat-snacks", c.ID)
}

func TestResolveCategory_SubstringEitherDirection(t *testing.T) {
	f := newFakeCatalog()
	r := NewResolver(f.categories, f.units)

	c := r.ResolveCategory("Drinks")
	require.NotNil(t, c)
	assert.Equal(t, "cat-snacks-drinks", c.ID)

	c = r.ResolveCategory("Household Cleaning Supplies")
	require.NotNil(t, c)
	assert.Equal(t, "cat-cleaning", c.ID)
}

func TestResolveCategory_AnyLanguage(t *testing.T) {
	f := newFakeCatalog()
	r := NewResolver(f.categories, f.units)

	c := r.ResolveCategory("طعام")
	require.NotNil(t, c)
	assert.Equal(t, "cat-food", c.ID)
}

func TestResolveCategory_DepthFirstParentsFirst(t *testing.T) {
	tree := []models.Category{
		{ID: "a", Name: models.LocalizedText{"en": "Home"}, Children: []models.Category{
			{ID: "a1", Name: models.LocalizedText{"en": "Home Garden"}},
		}},
		{ID: "b", Name: models.LocalizedText{"en": "Home Office"}},
	}
	r := NewResolver(tree, nil)

	// all three contain "hom"; the root comes first
	c := r.ResolveCategory("hom")
	require.NotNil(t, c)
	assert.Equal(t, "a", c.ID)

	c = r.ResolveCategory("garden")
	require.NotNil(t, c)
	assert.Equal(t, "a1", c.ID)
	assert.Equal(t, "b", r.CategoryByID("b").ID)
	assert.Nil(t, r.CategoryByID("missing"))
}

func TestResolveCategory_NotFound(t *testing.T) {
	f := newFakeCatalog()
	r := NewResolver(f.categories, f.units)
	assert.Nil(t, r.ResolveCategory("Electronics"))
	assert.Nil(t, r.ResolveCategory("  "))
}

func TestResolveUnit_ExactNameOrShortCode(t *testing.T) {
	f := newFakeCatalog()
	r := NewResolver(f.categories, f.units)

	u := r.ResolveUnit("PCS")
	require.NotNil(t, u)
	assert.Equal(t, "unit-pcs", u.ID)

	u = r.ResolveUnit(" carton ")
	require.NotNil(t, u)
	assert.Equal(t, "unit-ctn", u.ID)

	assert.Nil(t, r.ResolveUnit("Boxes"))
	assert.Nil(t, r.ResolveUnit("Car"))
}
