package importer

import (
	"context"

	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/spreadsheet"
)

// Preview validates every row of the sheet against a fresh catalog snapshot.
// It performs no writes.
func (e *Engine) Preview(ctx context.Context, sheet *spreadsheet.Sheet) (*models.PreviewResult, error) {
	snapshot, err := LoadSnapshot(ctx, e.catalog, e.pageSize)
	if err != nil {
		return nil, err
	}

	result := PreviewSheet(sheet, snapshot)

	e.logger.WithFields(logrus.Fields{
		"total":   result.Total,
		"valid":   result.Valid,
		"invalid": result.Invalid,
	}).Info("Import preview completed")

	return result, nil
}

// PreviewSheet is the pure part of Preview: normalization and validation
// with a tracker owned by this call.
func PreviewSheet(sheet *spreadsheet.Sheet, snapshot *Snapshot) *models.PreviewResult {
	mapper := NewHeaderMapper(sheet.Header)
	tracker := snapshot.NewTracker()
	rows := dataRows(sheet)

	result := &models.PreviewResult{
		Total: len(rows),
		Rows:  make([]models.ValidationOutcome, 0, len(rows)),
	}

	for _, row := range rows {
		candidate := NormalizeRow(row.number, row.cells, mapper)
		outcome := Validate(candidate, snapshot.Resolver, tracker)
		if outcome.Status == models.ValidationStatusValid {
			result.Valid++
		} else {
			result.Invalid++
		}
		result.Rows = append(result.Rows, outcome)
	}

	return result
}
