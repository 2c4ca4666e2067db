package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRow_CanonicalAndAliasHeaders(t *testing.T) {
	header := []any{"Product Name", "Category", "Unit", "qty", "Price", "SKU", "Status", "Additional Unit 1", "Unit 1 Pack Qty", "Additional Unit 1 Is Default"}
	row := []any{"Chips", "Snacks", "pcs", "", float64(2.5), "CHP-1", "", "Box", "12", "yes"}

	c := NormalizeRow(3, row, NewHeaderMapper(header))

	assert.Equal(t, 3, c.RowNumber)
	assert.Equal(t, "Chips", c.TitleEN)
	assert.Equal(t, "Snacks", c.CategoryName)
	assert.Equal(t, "pcs", c.UnitName)
	assert.Nil(t, c.Stock)
	require.NotNil(t, c.Price)
	assert.Equal(t, "2.5", *c.Price)
	assert.Equal(t, DefaultProductStatus, c.Status)

	require.Len(t, c.AdditionalUnits, 1)
	u := c.AdditionalUnits[0]
	assert.Equal(t, 1, u.Slot)
	assert.Equal(t, "Box", u.UnitName)
	require.NotNil(t, u.PackQty)
	assert.Equal(t, "12", *u.PackQty)
	assert.True(t, u.IsDefaultFlag)
}

func TestNormalizeRow_SkipsEmptyUnitSlots(t *testing.T) {
	header := []any{"Product Title (EN)", "Additional Unit 1", "Additional Unit 2", "Additional Unit 3", "Status"}
	row := []any{"Chips", "", "Carton", "", "Inactive"}

	c := NormalizeRow(1, row, NewHeaderMapper(header))
	require.Len(t, c.AdditionalUnits, 1)
	assert.Equal(t, 2, c.AdditionalUnits[0].Slot)
	assert.Equal(t, "inactive", c.Status)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Potato Chips 50g":     "potato-chips-50g",
		"  --Hello,  World!-- ": "hello-world",
		"Snacks & Drinks":      "snacks-drinks",
		"شيبس":                 "",
		"ABC":                  "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
