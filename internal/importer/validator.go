package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"catalog-import-service/internal/models"
)

// Validate runs every rule against the candidate and collects all findings.
// Rules never short-circuit so a row reports all of its problems at once.
// The tracker is mutated: a free SKU is recorded as seen in this batch.
func Validate(c models.ImportRowCandidate, r *Resolver, t *DuplicateTracker) models.ValidationOutcome {
	v := &findings{errors: []string{}, warnings: []string{}}

	if c.TitleEN == "" {
		v.err("%s is required", models.ColTitleEN)
	}

	var defaultUnit *models.Unit
	if c.CategoryName == "" {
		v.err("%s is required", models.ColCategory)
	} else if r.ResolveCategory(c.CategoryName) == nil {
		v.err("Category '%s' not found", c.CategoryName)
	}

	if c.UnitName == "" {
		v.err("%s is required", models.ColUnit)
	} else if defaultUnit = r.ResolveUnit(c.UnitName); defaultUnit == nil {
		v.err("Unit '%s' not found", c.UnitName)
	}

	if c.SKU != "" {
		switch t.CheckSKU(c.SKU) {
		case SKUInCatalog:
			v.err("SKU '%s' already exists in the catalog", c.SKU)
		case SKUInBatch:
			v.err("SKU '%s' appears multiple times in this import", c.SKU)
		}
	}

	if c.Barcode != "" && t.BarcodeInCatalog(c.Barcode) {
		v.warn("Barcode '%s' already exists in the catalog", c.Barcode)
	}

	price, priceErr := parseAmount(c.Price)
	if priceErr == nil && price == 0 {
		v.warn("Price is missing or zero")
	}
	stock, stockErr := parseAmount(c.Stock)
	if stockErr == nil && stock == 0 {
		v.warn("Stock is missing or zero")
	}

	if priceErr != nil {
		v.err("%s '%s' is not a valid number", models.ColPrice, *c.Price)
	}
	if stockErr != nil {
		v.err("%s '%s' is not a valid number", models.ColStock, *c.Stock)
	}
	if _, err := parseAmount(c.PackQty); err != nil {
		v.err("%s '%s' is not a valid number", models.ColPackQty, *c.PackQty)
	}

	for _, spec := range c.AdditionalUnits {
		h := models.AdditionalUnitColumnNames(spec.Slot)
		if _, err := parseAmount(spec.PackQty); err != nil {
			v.err("%s '%s' is not a valid number", h.PackQty, *spec.PackQty)
		}
		if _, err := parseAmount(spec.Price); err != nil {
			v.err("%s '%s' is not a valid number", h.Price, *spec.Price)
		}

		unit := r.ResolveUnit(spec.UnitName)
		switch {
		case unit == nil:
			v.warn("%s: unit '%s' not found and will be skipped", h.Name, spec.UnitName)
		case defaultUnit != nil && unit.ID == defaultUnit.ID:
			v.warn("%s: '%s' is already the default unit and will be skipped", h.Name, spec.UnitName)
		}
		if spec.IsDefaultFlag {
			v.warn("%s is marked default; the base unit stays the default unit", h.Name)
		}
	}

	status := models.ValidationStatusValid
	if len(v.errors) > 0 {
		status = models.ValidationStatusInvalid
	}

	return models.ValidationOutcome{
		RowNumber: c.RowNumber,
		Title:     c.TitleEN,
		SKU:       c.SKU,
		Status:    status,
		Errors:    v.errors,
		Warnings:  v.warnings,
	}
}

type findings struct {
	errors   []string
	warnings []string
}

func (f *findings) err(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *findings) warn(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

// groupedNumber matches a number whose integer part uses comma thousands groups
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseAmount parses an optional numeric cell. Absent cells parse as zero.
// Commas are accepted only as thousands separators, so "2,5" is rejected.
func parseAmount(raw *string) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		if !groupedNumber.MatchString(s) {
			return 0, fmt.Errorf("misplaced thousands separator: %s", s)
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return f, nil
}

// clampPackQty applies the catalog's minimum pack quantity. An absent pack
// quantity means one item per unit.
func clampPackQty(raw *string) float64 {
	if raw == nil {
		return 1
	}
	q, err := parseAmount(raw)
	if err != nil || q < models.MinPackQty {
		return models.MinPackQty
	}
	return q
}
