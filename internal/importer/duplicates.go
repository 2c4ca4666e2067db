package importer

import (
	"strings"

	"catalog-import-service/internal/models"
)

// SKUCheck is the verdict of DuplicateTracker.CheckSKU
type SKUCheck int

const (
	SKUFree SKUCheck = iota
	SKUInCatalog
	SKUInBatch
)

// DuplicateTracker holds the SKUs and barcodes already known to the catalog
// plus the SKUs seen earlier in the current run. It only grows, and belongs
// to a single preview or commit run.
type DuplicateTracker struct {
	catalogSKUs     map[string]struct{}
	catalogBarcodes map[string]struct{}
	batchSKUs       map[string]struct{}
}

// NewDuplicateTracker seeds a tracker from the existing catalog products
func NewDuplicateTracker(existing []models.Product) *DuplicateTracker {
	t := &DuplicateTracker{
		catalogSKUs:     make(map[string]struct{}, len(existing)),
		catalogBarcodes: make(map[string]struct{}, len(existing)),
		batchSKUs:       make(map[string]struct{}),
	}
	for _, p := range existing {
		if k := key(p.SKU); k != "" {
			t.catalogSKUs[k] = struct{}{}
		}
		if k := key(p.Barcode); k != "" {
			t.catalogBarcodes[k] = struct{}{}
		}
	}
	return t
}

// CheckSKU classifies sku and records it as seen in this batch when it is free.
// A SKU already recorded keeps reporting SKUInBatch on every later occurrence.
func (t *DuplicateTracker) CheckSKU(sku string) SKUCheck {
	k := key(sku)
	if k == "" {
		return SKUFree
	}
	if _, ok := t.catalogSKUs[k]; ok {
		return SKUInCatalog
	}
	if _, ok := t.batchSKUs[k]; ok {
		return SKUInBatch
	}
	t.batchSKUs[k] = struct{}{}
	return SKUFree
}

// BarcodeInCatalog reports whether the barcode already exists in the catalog
func (t *DuplicateTracker) BarcodeInCatalog(barcode string) bool {
	k := key(barcode)
	if k == "" {
		return false
	}
	_, ok := t.catalogBarcodes[k]
	return ok
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
