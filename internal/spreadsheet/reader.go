package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-import-service/internal/models"
)

// PreferredSheetName is picked over the first sheet when a workbook has it
const PreferredSheetName = "Products"

var (
	ErrUnsupportedFormat = errors.New("only CSV and XLSX files are supported")
	ErrNoHeader          = errors.New("file has no header row")
)

// Sheet is a rectangular grid of primitive cell values; row 0 of the file is
// split off as Header.
type Sheet struct {
	Header []any
	Rows   [][]any
}

// DetectFormat picks the parser from the file extension
func DetectFormat(filename string) (models.ImportFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return models.ImportFormatCSV, nil
	case ".xlsx":
		return models.ImportFormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// Read parses a CSV or XLSX file by name
func Read(filename string, r io.Reader) (*Sheet, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == models.ImportFormatCSV {
		return ReadCSV(r)
	}
	return ReadXLSX(r)
}

// ReadCSV parses a CSV file. Rows may have differing lengths.
func ReadCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		// Excel writes a UTF-8 BOM in front of the first header
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	sheet := &Sheet{Header: toCells(header)}
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}
		sheet.Rows = append(sheet.Rows, toCells(record))
		lineNum++
	}

	return sheet, nil
}

// ReadXLSX parses the "Products" sheet of a workbook, or its first sheet
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, PreferredSheetName) {
			sheetName = name
			break
		}
	}

	// Raw values keep long SKUs and barcodes out of scientific notation.
	excelRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, ErrNoHeader
	}

	sheet := &Sheet{Header: toCells(excelRows[0])}
	for _, excelRow := range excelRows[1:] {
		sheet.Rows = append(sheet.Rows, toCells(excelRow))
	}
	return sheet, nil
}

// ReadBytes is Read over an in-memory file
func ReadBytes(filename string, data []byte) (*Sheet, error) {
	return Read(filename, bytes.NewReader(data))
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
