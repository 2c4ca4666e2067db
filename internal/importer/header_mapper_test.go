package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderMapper_CaseInsensitiveAndTrimmed(t *testing.T) {
	m := NewHeaderMapper([]any{"  Product Title (EN) *", "category", "PRICE"})
	row := []any{" Chips ", "Snacks", 2.5}

	v, ok := m.ValueFor(row, "product title (en)")
	assert.True(t, ok)
	assert.Equal(t, "Chips", v)

	v, ok = m.ValueFor(row, "Category")
	assert.True(t, ok)
	assert.Equal(t, "Snacks", v)

	v, ok = m.ValueFor(row, "price")
	assert.True(t, ok)
	assert.Equal(t, "2.5", v)
}

func TestHeaderMapper_AliasOrderIsPriority(t *testing.T) {
	m := NewHeaderMapper([]any{"name", "Product Title (EN)"})

	v, _ := m.ValueFor([]any{"Loose", "Canonical"}, "Product Title (EN)", "name")
	assert.Equal(t, "Canonical", v)

	// an empty higher-priority cell falls through to the next alias
	v, ok := m.ValueFor([]any{"Loose", ""}, "Product Title (EN)", "name")
	assert.True(t, ok)
	assert.Equal(t, "Loose", v)
}

func TestHeaderMapper_MissingAndShortRows(t *testing.T) {
	m := NewHeaderMapper([]any{"SKU", "Barcode"})

	_, ok := m.ValueFor([]any{"A-1"}, "Barcode")
	assert.False(t, ok)

	_, ok = m.ValueFor([]any{"A-1", "123"}, "Price")
	assert.False(t, ok)

	assert.True(t, m.Has("price", "barcode"))
	assert.False(t, m.Has("price"))
}

func TestHeaderMapper_DuplicateHeaderLeftmostWins(t *testing.T) {
	m := NewHeaderMapper([]any{"SKU", "sku"})
	v, _ := m.ValueFor([]any{"left", "right"}, "SKU")
	assert.Equal(t, "left", v)
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "100", cellString(float64(100)))
	assert.Equal(t, "0.25", cellString(0.25))
	assert.Equal(t, "7", cellString(7))
	assert.Equal(t, "true", cellString(true))
}
