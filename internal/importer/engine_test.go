package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-import-service/internal/models"
)

var importHeader = []string{"Product Title (EN)", "Category", "Unit", "Pack Qty", "Price", "Stock", "SKU", "Additional Unit 1", "Additional Unit 1 Pack Qty", "Additional Unit 1 Price"}

func TestPreview_CountsAndNoWrites(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products = []models.Product{{ID: "existing", SKU: "OLD-1"}}
	engine := NewEngine(catalog, 0, nil)

	sheet := sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
		[]string{"Soap", "Cleaning", "pcs", "", "1", "5", "OLD-1"},
		[]string{"", "", "", "", "", "", ""},
		[]string{"Cola", "Drinks", "box", "", "3", "4", "A-1"},
	)

	result, err := engine.Preview(context.Background(), sheet)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Valid)
	assert.Equal(t, 2, result.Invalid)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, 1, result.Rows[0].RowNumber)
	assert.Equal(t, 2, result.Rows[1].RowNumber)
	// the blank row keeps its number slot
	assert.Equal(t, 4, result.Rows[2].RowNumber)
	assert.Equal(t, []string{"SKU 'OLD-1' already exists in the catalog"}, result.Rows[1].Errors)
	assert.Equal(t, []string{"SKU 'A-1' appears multiple times in this import"}, result.Rows[2].Errors)

	assert.Empty(t, catalog.created)
	assert.Empty(t, catalog.createdUnits)
}

func TestPreview_IsIdempotent(t *testing.T) {
	engine := NewEngine(newFakeCatalog(), 0, nil)
	sheet := sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
		[]string{"Chips 2", "Snacks", "pcs", "", "2", "10", "A-1"},
	)

	first, err := engine.Preview(context.Background(), sheet)
	require.NoError(t, err)
	second, err := engine.Preview(context.Background(), sheet)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPreview_SnapshotFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.listErr = errCatalogDown
	engine := NewEngine(catalog, 0, nil)

	_, err := engine.Preview(context.Background(), sheetOf(importHeader, []string{"Chips"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCatalogDown))
}

func TestCommit_PartialFailure(t *testing.T) {
	catalog := newFakeCatalog()
	engine := NewEngine(catalog, 0, nil)

	sheet := sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
		[]string{"Widget", "Electronics", "pcs", "", "2", "10", "A-2"},
		[]string{"Soap", "Cleaning", "pcs", "", "1", "5", "A-3"},
	)

	result, err := engine.Commit(context.Background(), sheet)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"Row 2: Category 'Electronics' not found"}, result.Errors)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "Chips", result.Created[0].Name)
	assert.Equal(t, "Soap", result.Created[1].Name)
	assert.Len(t, catalog.created, 2)
	assert.Equal(t, result.Successful+result.Failed, result.Total)
}

func TestCommit_MatchesPreview(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products = []models.Product{{ID: "existing", SKU: "OLD-1", Barcode: "999"}}
	engine := NewEngine(catalog, 0, nil)

	sheet := sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
		[]string{"", "Snacks", "pcs", "", "2", "10", "A-2"},
		[]string{"Soap", "Cleaning", "ctn", "", "1", "5", "OLD-1"},
		[]string{"Chips again", "Snacks", "pcs", "", "2", "10", "a-1"},
		[]string{"Cola", "Drinks", "Boxes", "", "3", "4", "A-5"},
	)

	preview, err := engine.Preview(context.Background(), sheet)
	require.NoError(t, err)
	commit, err := engine.Commit(context.Background(), sheet)
	require.NoError(t, err)

	assert.Equal(t, preview.Valid, commit.Successful)
	assert.Equal(t, preview.Invalid, commit.Failed)
	for i, row := range commit.Rows {
		assert.Equal(t, preview.Rows[i].Status == models.ValidationStatusInvalid, row.Failed(), "row %d", i+1)
	}
}

func TestCommit_CreatesAdditionalUnitsAndFlagsProduct(t *testing.T) {
	catalog := newFakeCatalog()
	engine := NewEngine(catalog, 0, nil)

	sheet := sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "0", "2", "10", "A-1", "Box", "0.0001", "20"},
	)

	result, err := engine.Commit(context.Background(), sheet)
	require.NoError(t, err)
	require.Equal(t, 1, result.Successful)

	require.Len(t, catalog.created, 1)
	req := catalog.created[0]
	assert.Equal(t, models.MinPackQty, req.PackQty)
	assert.Equal(t, "chips", req.Slug)
	assert.Equal(t, "cat-snacks", req.CategoryID)
	assert.Equal(t, "unit-pcs", req.UnitID)
	assert.Equal(t, "active", req.Status)
	assert.Equal(t, models.LocalizedText{"en": "Chips"}, req.Title)

	require.Len(t, catalog.createdUnits, 1)
	assert.Equal(t, "unit-box", catalog.createdUnits[0].UnitID)
	assert.Equal(t, models.MinPackQty, catalog.createdUnits[0].PackQty)
	assert.Equal(t, 20.0, catalog.createdUnits[0].Price)
	assert.False(t, catalog.createdUnits[0].IsDefault)

	assert.Equal(t, 1, result.Created[0].UnitsCreated)
	update, ok := catalog.updates[result.Created[0].ID]
	require.True(t, ok)
	require.NotNil(t, update.HasMultiUnits)
	assert.True(t, *update.HasMultiUnits)
}

func TestCommit_AbsentPackQtyDefaultsToOne(t *testing.T) {
	catalog := newFakeCatalog()
	engine := NewEngine(catalog, 0, nil)

	_, err := engine.Commit(context.Background(), sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
	))
	require.NoError(t, err)
	require.Len(t, catalog.created, 1)
	assert.Equal(t, 1.0, catalog.created[0].PackQty)
	assert.Empty(t, catalog.updates)
}

func TestCommit_UnitFailureKeepsRowSuccessful(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.unitErrFor["unit-box"] = errors.New("unit rejected")
	engine := NewEngine(catalog, 0, nil)

	result, err := engine.Commit(context.Background(), sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1", "Box", "12", "20"},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []string{"Row 1: Failed to add unit 'Box' to 'Chips': unit rejected"}, result.Errors)
	assert.Equal(t, 0, result.Created[0].UnitsCreated)
	assert.Empty(t, catalog.updates)
}

func TestCommit_CreateFailureFailsRow(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.createErrFor["Chips"] = errors.New("slug taken")
	engine := NewEngine(catalog, 0, nil)

	result, err := engine.Commit(context.Background(), sheetOf(importHeader,
		[]string{"Chips", "Snacks", "pcs", "", "2", "10", "A-1"},
		[]string{"Soap", "Cleaning", "pcs", "", "1", "5", "A-2"},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"Row 1: Failed to create product 'Chips': slug taken"}, result.Errors)
	require.True(t, result.Rows[0].Failed())
	assert.False(t, result.Rows[1].Failed())
}

func TestExport_RowShape(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products = []models.Product{{
		ID: "p1", Title: models.LocalizedText{"en": "Chips", "ar": "شيبس"}, CategoryID: "cat-snacks",
		UnitID: "unit-pcs", PackQty: 1, Price: 2.5, Stock: 10, SKU: "A-1", Status: "active", Slug: "chips",
	}}
	catalog.productUnits["p1"] = []models.ProductUnit{
		{UnitID: "unit-pcs", PackQty: 1, Price: 2.5, IsDefault: true},
		{UnitID: "unit-box", Unit: &models.Unit{ID: "unit-box", Name: "Box"}, PackQty: 12, Price: 28, SKU: "A-1-BOX"},
	}
	engine := NewEngine(catalog, 0, nil)

	result, err := engine.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Header, 46)
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	require.Len(t, row, 46)

	assert.Equal(t, []string{"p1", "Chips", "شيبس", "", "", "Snacks", "Piece", "1", "2.5", "10", "A-1", "", "active", "chips", "true", "2"}, row[:16])
	assert.Equal(t, []string{"Piece", "1", "2.5", "", "", "true"}, row[16:22])
	assert.Equal(t, []string{"Box", "12", "28", "A-1-BOX", "", "false"}, row[22:28])
	for _, cell := range row[28:] {
		assert.Equal(t, "", cell)
	}
	assert.Empty(t, result.Warnings)
}

func TestExport_UnitFetchFailureIsWarning(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products = []models.Product{{ID: "p1", Title: models.LocalizedText{"en": "Chips"}}}
	catalog.productUnitsErr["p1"] = errors.New("timeout")
	engine := NewEngine(catalog, 0, nil)

	result, err := engine.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Rows[0], 46)
	assert.Equal(t, "false", result.Rows[0][14])
	assert.Equal(t, "0", result.Rows[0][15])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "units could not be loaded")
}

func TestExport_TruncatesExtraUnits(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products = []models.Product{{ID: "p1", Title: models.LocalizedText{"en": "Chips"}}}
	for i := 0; i < 7; i++ {
		catalog.productUnits["p1"] = append(catalog.productUnits["p1"], models.ProductUnit{UnitID: "unit-pcs", PackQty: 1})
	}
	engine := NewEngine(catalog, 0, nil)

	result, err := engine.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Rows[0], 46)
	assert.Equal(t, "7", result.Rows[0][15])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "only the first 5 are exported")
}
