package importer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
)

// Export flattens every product and its units into fixed-width rows.
// Units are emitted in the order the catalog returns them.
func (e *Engine) Export(ctx context.Context) (*models.ExportResult, error) {
	categories, err := e.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	units, err := e.catalog.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	products, err := e.catalog.ListProducts(ctx, models.ProductFilter{Page: 1, Limit: e.pageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	resolver := NewResolver(categories, units)
	result := &models.ExportResult{
		Header:   models.ExportHeader(),
		Rows:     make([][]string, 0, len(products)),
		Warnings: make([]string, 0),
	}

	for i := range products {
		p := &products[i]
		productUnits, err := e.catalog.ListProductUnits(ctx, p.ID)
		if err != nil {
			e.logger.WithError(err).WithField("productId", p.ID).Warn("Failed to load product units for export")
			result.Warnings = append(result.Warnings, fmt.Sprintf("Product '%s' (%s): units could not be loaded: %s", p.Title.Display(), p.ID, err.Error()))
			productUnits = nil
		}
		if len(productUnits) > models.ExportUnitSlots {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Product '%s' (%s) has %d units; only the first %d are exported", p.Title.Display(), p.ID, len(productUnits), models.ExportUnitSlots))
		}
		result.Rows = append(result.Rows, ExportRow(p, productUnits, resolver))
	}

	e.logger.WithFields(logrus.Fields{
		"products": len(result.Rows),
		"warnings": len(result.Warnings),
	}).Info("Catalog export completed")

	return result, nil
}

// ExportRow builds one positional export row. Unused unit slots are emitted
// as empty cells so every row has the same width.
func ExportRow(p *models.Product, productUnits []models.ProductUnit, r *Resolver) []string {
	row := make([]string, 0, models.ExportBaseColumns+models.ExportUnitSlots*models.ExportSlotColumns)

	categoryName := ""
	if c := r.CategoryByID(p.CategoryID); c != nil {
		categoryName = c.Name.Display()
	}
	unitName := ""
	if u := r.UnitByID(p.UnitID); u != nil {
		unitName = u.Name
	}

	row = append(row,
		p.ID,
		p.Title[models.LangEN],
		p.Title[models.LangAR],
		p.Description[models.LangEN],
		p.Description[models.LangAR],
		categoryName,
		unitName,
		formatNumber(p.PackQty),
		formatNumber(p.Price),
		formatNumber(p.Stock),
		p.SKU,
		p.Barcode,
		p.Status,
		p.Slug,
		strconv.FormatBool(len(productUnits) > 1),
		strconv.Itoa(len(productUnits)),
	)

	for i := 0; i < models.ExportUnitSlots; i++ {
		if i >= len(productUnits) {
			row = append(row, "", "", "", "", "", "")
			continue
		}
		pu := productUnits[i]
		row = append(row,
			productUnitName(pu, r),
			formatNumber(pu.PackQty),
			formatNumber(pu.Price),
			pu.SKU,
			pu.Barcode,
			strconv.FormatBool(pu.IsDefault),
		)
	}

	return row
}

func productUnitName(pu models.ProductUnit, r *Resolver) string {
	if pu.Unit != nil && pu.Unit.Name != "" {
		return pu.Unit.Name
	}
	if u := r.UnitByID(pu.UnitID); u != nil {
		return u.Name
	}
	return pu.UnitID
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
