package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-import-service/internal/models"
)

const instructionsSheet = "Instructions"

// WriteTemplateCSV writes the template header row only
func WriteTemplateCSV(w io.Writer, template models.ImportTemplate) error {
	writer := csv.NewWriter(w)
	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	if err := writer.Write(headers); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteTemplateXLSX writes an empty Products sheet with styled headers plus an
// Instructions sheet describing every column and its accepted aliases.
func WriteTemplateXLSX(w io.Writer, template models.ImportTemplate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PreferredSheetName); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(PreferredSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(PreferredSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(PreferredSheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(PreferredSheetName, colName, colName, 22)
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return err
	}
	f.SetCellValue(instructionsSheet, "A1", "Product Import Instructions")
	f.SetCellValue(instructionsSheet, "A3", "HOW NAMES ARE MATCHED:")
	f.SetCellValue(instructionsSheet, "A4", "- Category: exact name in any language first, then partial name. The first category in tree order wins.")
	f.SetCellValue(instructionsSheet, "A5", "- Unit and additional units: exact unit name or short code only.")
	f.SetCellValue(instructionsSheet, "A6", "- SKU must be unique in the catalog and in the file. Duplicate barcodes only produce a warning.")
	f.SetCellValue(instructionsSheet, "A7", fmt.Sprintf("- Pack quantities below %g are raised to %g.", models.MinPackQty, models.MinPackQty))

	f.SetCellValue(instructionsSheet, "A9", "Column")
	f.SetCellValue(instructionsSheet, "B9", "Description")
	f.SetCellValue(instructionsSheet, "C9", "Required")
	f.SetCellValue(instructionsSheet, "D9", "Type")
	f.SetCellValue(instructionsSheet, "E9", "Also accepted")
	f.SetCellValue(instructionsSheet, "F9", "Example")

	for i, col := range template.Columns {
		row := i + 10
		f.SetCellValue(instructionsSheet, fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue(instructionsSheet, fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue(instructionsSheet, fmt.Sprintf("C%d", row), required)
		f.SetCellValue(instructionsSheet, fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue(instructionsSheet, fmt.Sprintf("E%d", row), strings.Join(col.Aliases, ", "))
		f.SetCellValue(instructionsSheet, fmt.Sprintf("F%d", row), col.Example)
	}

	f.SetColWidth(instructionsSheet, "A", "A", 30)
	f.SetColWidth(instructionsSheet, "B", "B", 60)
	f.SetColWidth(instructionsSheet, "C", "D", 12)
	f.SetColWidth(instructionsSheet, "E", "E", 50)
	f.SetColWidth(instructionsSheet, "F", "F", 25)

	sheetIdx, _ := f.GetSheetIndex(PreferredSheetName)
	f.SetActiveSheet(sheetIdx)

	return f.Write(w)
}
