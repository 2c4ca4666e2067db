package models

import "fmt"

// Canonical import headers. Each column also accepts the aliases listed in
// ProductImportColumns; the canonical header is always tried first.
const (
	ColTitleEN       = "Product Title (EN)"
	ColTitleAR       = "Product Title (AR)"
	ColDescriptionEN = "Description (EN)"
	ColDescriptionAR = "Description (AR)"
	ColCategory      = "Category"
	ColUnit          = "Unit"
	ColPackQty       = "Pack Qty"
	ColPrice         = "Price"
	ColStock         = "Stock"
	ColSKU           = "SKU"
	ColBarcode       = "Barcode"
	ColStatus        = "Status"
)

// AdditionalUnitHeaders holds the canonical headers of one additional unit group
type AdditionalUnitHeaders struct {
	Name      string
	PackQty   string
	Price     string
	SKU       string
	Barcode   string
	IsDefault string
}

// AdditionalUnitColumnNames returns the canonical headers for additional unit n (1-based)
func AdditionalUnitColumnNames(n int) AdditionalUnitHeaders {
	prefix := fmt.Sprintf("Additional Unit %d", n)
	return AdditionalUnitHeaders{
		Name:      prefix,
		PackQty:   prefix + " Pack Qty",
		Price:     prefix + " Price",
		SKU:       prefix + " SKU",
		Barcode:   prefix + " Barcode",
		IsDefault: prefix + " Is Default",
	}
}

// ProductImportColumns returns the column definitions for product import
func ProductImportColumns() []ImportTemplateColumn {
	columns := []ImportTemplateColumn{
		{Name: ColTitleEN, Aliases: []string{"title en", "title_en", "product name", "name"}, Description: "Product title in English", Required: true, Type: "string", Example: "Potato Chips 50g"},
		{Name: ColTitleAR, Aliases: []string{"title ar", "title_ar", "arabic name"}, Description: "Product title in Arabic", Type: "string", Example: "شيبس بطاطس"},
		{Name: ColDescriptionEN, Aliases: []string{"description en", "description_en", "description"}, Description: "Description in English", Type: "string"},
		{Name: ColDescriptionAR, Aliases: []string{"description ar", "description_ar"}, Description: "Description in Arabic", Type: "string"},
		{Name: ColCategory, Aliases: []string{"category name", "category_name"}, Description: "Category name - matched exactly, then by partial name", Required: true, Type: "string", Example: "Snacks"},
		{Name: ColUnit, Aliases: []string{"unit name", "unit_name", "default unit", "base unit"}, Description: "Default unit name or short code - must match exactly", Required: true, Type: "string", Example: "pcs"},
		{Name: ColPackQty, Aliases: []string{"pack quantity", "pack_qty", "packqty"}, Description: "Items per default unit (minimum 0.001)", Type: "number", Example: "1"},
		{Name: ColPrice, Aliases: []string{"unit price", "selling price"}, Description: "Price of the default unit", Type: "number", Example: "2.50"},
		{Name: ColStock, Aliases: []string{"quantity", "qty", "stock quantity"}, Description: "Stock on hand", Type: "number", Example: "100"},
		{Name: ColSKU, Aliases: []string{"product sku", "item code"}, Description: "Unique SKU", Type: "string", Example: "CHP-050"},
		{Name: ColBarcode, Aliases: []string{"ean", "upc", "gtin"}, Description: "Barcode (duplicates are allowed)", Type: "string", Example: "6291001234567"},
		{Name: ColStatus, Aliases: []string{"product status"}, Description: "active, inactive or draft (default active)", Type: "string", Example: "active"},
	}

	for n := 1; n <= MaxAdditionalUnits; n++ {
		h := AdditionalUnitColumnNames(n)
		short := fmt.Sprintf("unit %d", n)
		snake := fmt.Sprintf("unit_%d", n)
		columns = append(columns,
			ImportTemplateColumn{Name: h.Name, Aliases: []string{short + " name", snake + "_name", h.Name + " name"}, Description: fmt.Sprintf("Additional unit %d name or short code", n), Type: "string"},
			ImportTemplateColumn{Name: h.PackQty, Aliases: []string{short + " pack qty", snake + "_pack_qty"}, Description: fmt.Sprintf("Items per additional unit %d", n), Type: "number"},
			ImportTemplateColumn{Name: h.Price, Aliases: []string{short + " price", snake + "_price"}, Description: fmt.Sprintf("Price of additional unit %d", n), Type: "number"},
			ImportTemplateColumn{Name: h.SKU, Aliases: []string{short + " sku", snake + "_sku"}, Description: fmt.Sprintf("SKU of additional unit %d", n), Type: "string"},
			ImportTemplateColumn{Name: h.Barcode, Aliases: []string{short + " barcode", snake + "_barcode"}, Description: fmt.Sprintf("Barcode of additional unit %d", n), Type: "string"},
			ImportTemplateColumn{Name: h.IsDefault, Aliases: []string{short + " is default", snake + "_is_default", short + " default"}, Description: "Ignored on import: the base unit always stays default", Type: "boolean"},
		)
	}

	return columns
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1",
		Columns: ProductImportColumns(),
	}
}

// ExportUnitSlots is the fixed number of unit slots in an export row
const ExportUnitSlots = 5

// ExportSchemaVersion must be bumped whenever ExportHeader changes
const ExportSchemaVersion = "1"

// ExportHeader returns the positional export header: 16 base columns followed
// by ExportUnitSlots groups of 6 unit columns.
func ExportHeader() []string {
	header := []string{
		"Product ID", ColTitleEN, ColTitleAR, ColDescriptionEN, ColDescriptionAR,
		ColCategory, ColUnit, ColPackQty, ColPrice, ColStock, ColSKU, ColBarcode,
		ColStatus, "Slug", "Has Multi Units", "Unit Count",
	}
	for i := 1; i <= ExportUnitSlots; i++ {
		header = append(header,
			fmt.Sprintf("Unit %d Name", i),
			fmt.Sprintf("Unit %d Pack Qty", i),
			fmt.Sprintf("Unit %d Price", i),
			fmt.Sprintf("Unit %d SKU", i),
			fmt.Sprintf("Unit %d Barcode", i),
			fmt.Sprintf("Unit %d Is Default", i),
		)
	}
	return header
}

// ExportBaseColumns and ExportSlotColumns describe the row width
const (
	ExportBaseColumns = 16
	ExportSlotColumns = 6
)

// ExportNumericColumns returns the indexes of export columns holding numbers
func ExportNumericColumns() map[int]bool {
	cols := map[int]bool{7: true, 8: true, 9: true, 15: true}
	for i := 0; i < ExportUnitSlots; i++ {
		slot := ExportBaseColumns + i*ExportSlotColumns
		cols[slot+1] = true
		cols[slot+2] = true
	}
	return cols
}

// ExportResult is a flattened catalog dump
type ExportResult struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	Warnings []string   `json:"warnings,omitempty"`
}
