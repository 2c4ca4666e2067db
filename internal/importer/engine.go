package importer

import (
	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/spreadsheet"
)

// DefaultPageSize is the product page size used to seed duplicate detection and for export
const DefaultPageSize = 10000

// Engine runs preview, commit and export against one catalog
type Engine struct {
	catalog  Catalog
	pageSize int
	logger   *logrus.Entry
}

func NewEngine(catalog Catalog, pageSize int, logger *logrus.Entry) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		catalog:  catalog,
		pageSize: pageSize,
		logger:   logger.WithField("component", "import_engine"),
	}
}

// dataRow is one non-blank sheet row with its 1-based number (header excluded)
type dataRow struct {
	number int
	cells  []any
}

// dataRows numbers rows by position and drops rows with no content.
// Blank rows keep their number slot so messages match the sheet.
func dataRows(sheet *spreadsheet.Sheet) []dataRow {
	rows := make([]dataRow, 0, len(sheet.Rows))
	for i, cells := range sheet.Rows {
		if isBlank(cells) {
			continue
		}
		rows = append(rows, dataRow{number: i + 1, cells: cells})
	}
	return rows
}

func isBlank(cells []any) bool {
	for _, c := range cells {
		if cellString(c) != "" {
			return false
		}
	}
	return true
}
