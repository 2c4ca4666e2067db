package importer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/spreadsheet"
)

// Commit re-derives candidates from the raw sheet, re-validates them against a
// fresh snapshot and creates every valid row in the catalog. A failing row is
// recorded and the loop moves on; already created rows are never rolled back.
func (e *Engine) Commit(ctx context.Context, sheet *spreadsheet.Sheet) (*models.ImportResult, error) {
	snapshot, err := LoadSnapshot(ctx, e.catalog, e.pageSize)
	if err != nil {
		return nil, err
	}

	mapper := NewHeaderMapper(sheet.Header)
	tracker := snapshot.NewTracker()
	rows := dataRows(sheet)

	result := &models.ImportResult{
		Total:   len(rows),
		Errors:  make([]string, 0),
		Created: make([]models.CreatedProduct, 0),
		Rows:    make([]models.RowResult, 0, len(rows)),
	}

	for _, row := range rows {
		candidate := NormalizeRow(row.number, row.cells, mapper)
		rr := e.commitRow(ctx, candidate, snapshot.Resolver, tracker)
		result.Rows = append(result.Rows, rr)

		if rr.Failed() {
			result.Failed++
			result.Errors = append(result.Errors, rr.Err.Messages...)
			continue
		}

		result.Successful++
		result.Errors = append(result.Errors, rr.Outcome.Messages...)
		result.Created = append(result.Created, models.CreatedProduct{
			Name:         rr.Outcome.Name,
			ID:           rr.Outcome.ProductID,
			UnitsCreated: rr.Outcome.UnitsCreated,
		})
	}

	e.logger.WithFields(logrus.Fields{
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
	}).Info("Import commit completed")

	return result, nil
}

func (e *Engine) commitRow(ctx context.Context, c models.ImportRowCandidate, r *Resolver, t *DuplicateTracker) models.RowResult {
	log := e.logger.WithFields(logrus.Fields{"row": c.RowNumber, "sku": c.SKU})

	outcome := Validate(c, r, t)
	if outcome.Status == models.ValidationStatusInvalid {
		log.WithField("errors", outcome.Errors).Debug("Row rejected by pre-flight validation")
		return rowFailure(c.RowNumber, outcome.Errors...)
	}

	category := r.ResolveCategory(c.CategoryName)
	unit := r.ResolveUnit(c.UnitName)
	price, _ := parseAmount(c.Price)
	stock, _ := parseAmount(c.Stock)

	product, err := e.catalog.CreateProduct(ctx, models.CreateProductRequest{
		Title:       localized(c.TitleEN, c.TitleAR),
		Description: localized(c.DescriptionEN, c.DescriptionAR),
		Slug:        Slugify(c.TitleEN),
		CategoryID:  category.ID,
		UnitID:      unit.ID,
		PackQty:     clampPackQty(c.PackQty),
		Price:       price,
		Stock:       stock,
		SKU:         c.SKU,
		Barcode:     c.Barcode,
		Status:      c.Status,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to create product")
		return rowFailure(c.RowNumber, fmt.Sprintf("Failed to create product '%s': %s", c.TitleEN, err.Error()))
	}

	log = log.WithField("productId", product.ID)
	log.Info("Product created")

	res := &models.RowOutcome{
		RowNumber: c.RowNumber,
		Name:      c.TitleEN,
		ProductID: product.ID,
		Messages:  make([]string, 0),
	}

	for _, spec := range c.AdditionalUnits {
		extra := r.ResolveUnit(spec.UnitName)
		if extra == nil || extra.ID == unit.ID {
			log.WithField("slot", spec.Slot).Debug("Skipping additional unit")
			continue
		}

		unitPrice, _ := parseAmount(spec.Price)
		_, err := e.catalog.CreateProductUnit(ctx, product.ID, models.CreateProductUnitRequest{
			UnitID:    extra.ID,
			PackQty:   clampPackQty(spec.PackQty),
			Price:     unitPrice,
			SKU:       spec.SKU,
			Barcode:   spec.Barcode,
			IsDefault: false,
		})
		if err != nil {
			log.WithError(err).WithField("slot", spec.Slot).Warn("Failed to create product unit")
			res.Messages = append(res.Messages, rowMessage(c.RowNumber,
				fmt.Sprintf("Failed to add unit '%s' to '%s': %s", spec.UnitName, c.TitleEN, err.Error())))
			continue
		}
		res.UnitsCreated++
	}

	if res.UnitsCreated > 0 {
		multi := true
		if err := e.catalog.UpdateProduct(ctx, product.ID, models.UpdateProductRequest{HasMultiUnits: &multi}); err != nil {
			log.WithError(err).Warn("Failed to flag product as multi-unit")
			res.Messages = append(res.Messages, rowMessage(c.RowNumber,
				fmt.Sprintf("Failed to mark '%s' as multi-unit: %s", c.TitleEN, err.Error())))
		}
	}

	return models.RowResult{Outcome: res}
}

func rowFailure(rowNumber int, messages ...string) models.RowResult {
	prefixed := make([]string, len(messages))
	for i, m := range messages {
		prefixed[i] = rowMessage(rowNumber, m)
	}
	return models.RowResult{Err: &models.RowError{RowNumber: rowNumber, Messages: prefixed}}
}

func rowMessage(rowNumber int, msg string) string {
	return fmt.Sprintf("Row %d: %s", rowNumber, msg)
}

func localized(en, ar string) models.LocalizedText {
	if en == "" && ar == "" {
		return nil
	}
	t := models.LocalizedText{}
	if en != "" {
		t[models.LangEN] = en
	}
	if ar != "" {
		t[models.LangAR] = ar
	}
	return t
}
