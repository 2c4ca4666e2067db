package importer

import (
	"strings"

	"catalog-import-service/internal/models"
)

// DefaultProductStatus is used when the status column is empty
const DefaultProductStatus = "active"

var columnAliases = buildColumnAliases()

// buildColumnAliases indexes the template columns as canonical header
// followed by its loose synonyms.
func buildColumnAliases() map[string][]string {
	out := make(map[string][]string)
	for _, col := range models.ProductImportColumns() {
		out[col.Name] = append([]string{col.Name}, col.Aliases...)
	}
	return out
}

func aliases(column string) []string {
	return columnAliases[column]
}

// NormalizeRow converts one raw row into an import candidate. It only looks
// at cell contents and never consults the catalog.
func NormalizeRow(rowNumber int, row []any, m *HeaderMapper) models.ImportRowCandidate {
	text := func(column string) string {
		v, _ := m.ValueFor(row, aliases(column)...)
		return v
	}
	optional := func(column string) *string {
		if v, ok := m.ValueFor(row, aliases(column)...); ok {
			return &v
		}
		return nil
	}

	status := strings.ToLower(text(models.ColStatus))
	if status == "" {
		status = DefaultProductStatus
	}

	c := models.ImportRowCandidate{
		RowNumber:     rowNumber,
		TitleEN:       text(models.ColTitleEN),
		TitleAR:       text(models.ColTitleAR),
		DescriptionEN: text(models.ColDescriptionEN),
		DescriptionAR: text(models.ColDescriptionAR),
		CategoryName:  text(models.ColCategory),
		UnitName:      text(models.ColUnit),
		PackQty:       optional(models.ColPackQty),
		Price:         optional(models.ColPrice),
		Stock:         optional(models.ColStock),
		SKU:           text(models.ColSKU),
		Barcode:       text(models.ColBarcode),
		Status:        status,
	}

	for n := 1; n <= models.MaxAdditionalUnits; n++ {
		h := models.AdditionalUnitColumnNames(n)
		name := text(h.Name)
		if name == "" {
			continue
		}
		c.AdditionalUnits = append(c.AdditionalUnits, models.AdditionalUnitSpec{
			Slot:          n,
			UnitName:      name,
			PackQty:       optional(h.PackQty),
			Price:         optional(h.Price),
			SKU:           text(h.SKU),
			Barcode:       text(h.Barcode),
			IsDefaultFlag: parseBool(text(h.IsDefault)),
		})
	}

	return c
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
