package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// MaxAdditionalUnits is the number of additional unit column groups in the import template
const MaxAdditionalUnits = 3

// MinPackQty is the smallest pack quantity the catalog accepts
const MinPackQty = 0.001

// ImportRowCandidate is one normalized, not yet validated spreadsheet row.
// Numeric fields keep their raw cell text; nil means the cell was empty.
type ImportRowCandidate struct {
	RowNumber       int                  `json:"rowNumber"`
	TitleEN         string               `json:"titleEn"`
	TitleAR         string               `json:"titleAr,omitempty"`
	DescriptionEN   string               `json:"descriptionEn,omitempty"`
	DescriptionAR   string               `json:"descriptionAr,omitempty"`
	CategoryName    string               `json:"categoryName"`
	UnitName        string               `json:"unitName"`
	PackQty         *string              `json:"packQty,omitempty"`
	Price           *string              `json:"price,omitempty"`
	Stock           *string              `json:"stock,omitempty"`
	SKU             string               `json:"sku,omitempty"`
	Barcode         string               `json:"barcode,omitempty"`
	Status          string               `json:"status"`
	AdditionalUnits []AdditionalUnitSpec `json:"additionalUnits,omitempty"`
}

// AdditionalUnitSpec describes one extra sellable unit given on the same row
type AdditionalUnitSpec struct {
	Slot          int     `json:"slot"`
	UnitName      string  `json:"unitName"`
	PackQty       *string `json:"packQty,omitempty"`
	Price         *string `json:"price,omitempty"`
	SKU           string  `json:"sku,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`
	IsDefaultFlag bool    `json:"isDefault"`
}

// ValidationStatus is the verdict for one row
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// ValidationOutcome holds every finding for one row
type ValidationOutcome struct {
	RowNumber int              `json:"rowNumber"`
	Title     string           `json:"title,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	Status    ValidationStatus `json:"status"`
	Errors    []string         `json:"errors"`
	Warnings  []string         `json:"warnings"`
}

// PreviewResult is the aggregate of a read-only validation pass
type PreviewResult struct {
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
	Rows    []ValidationOutcome `json:"rows"`
}

// CreatedProduct identifies a product created by a commit
type CreatedProduct struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	UnitsCreated int    `json:"unitsCreated"`
}

// RowOutcome is the success side of a committed row. Messages holds degraded
// unit attachment errors that did not fail the row.
type RowOutcome struct {
	RowNumber    int      `json:"rowNumber"`
	Name         string   `json:"name"`
	ProductID    string   `json:"productId"`
	UnitsCreated int      `json:"unitsCreated"`
	Messages     []string `json:"messages,omitempty"`
}

// RowError is the failure side of a committed row
type RowError struct {
	RowNumber int      `json:"rowNumber"`
	Messages  []string `json:"messages"`
}

// RowResult holds exactly one of Outcome or Err
type RowResult struct {
	Outcome *RowOutcome `json:"outcome,omitempty"`
	Err     *RowError   `json:"error,omitempty"`
}

// Failed reports whether the row failed
func (r RowResult) Failed() bool {
	return r.Err != nil
}

// ImportResult is the aggregate of a commit run
type ImportResult struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []string         `json:"errors"`
	Created    []CreatedProduct `json:"created"`
	Rows       []RowResult      `json:"rows"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Type        string   `json:"type"` // string, number, boolean
	Example     string   `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}
