package importer

import (
	"context"
	"errors"
	"fmt"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/spreadsheet"
)

// fakeCatalog is an in-memory Catalog that records every write
type fakeCatalog struct {
	categories []models.Category
	units      []models.Unit
	products   []models.Product
	// productUnits is keyed by product id
	productUnits map[string][]models.ProductUnit

	listErr         error
	createErrFor    map[string]error // keyed by English title
	unitErrFor      map[string]error // keyed by unit id
	productUnitsErr map[string]error // keyed by product id

	created      []models.CreateProductRequest
	createdUnits []models.CreateProductUnitRequest
	updates      map[string]models.UpdateProductRequest
	nextID       int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: []models.Category{
			{ID: "cat-food", Name: models.LocalizedText{"en": "Food", "ar": "طعام"}, Children: []models.Category{
				{ID: "cat-snacks-drinks", Name: models.LocalizedText{"en": "Snacks & Drinks"}},
				{ID: "cat-snacks", Name: models.LocalizedText{"en": "Snacks"}},
			}},
			{ID: "cat-cleaning", Name: models.LocalizedText{"en": "Cleaning"}},
		},
		units: []models.Unit{
			{ID: "unit-pcs", Name: "Piece", ShortCode: "pcs"},
			{ID: "unit-box", Name: "Box", ShortCode: "box"},
			{ID: "unit-ctn", Name: "Carton", ShortCode: "ctn"},
		},
		productUnits:    map[string][]models.ProductUnit{},
		createErrFor:    map[string]error{},
		unitErrFor:      map[string]error{},
		productUnitsErr: map[string]error{},
		updates:         map[string]models.UpdateProductRequest{},
	}
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.categories, nil
}

func (f *fakeCatalog) ListUnits(ctx context.Context) ([]models.Unit, error) {
	return f.units, nil
}

func (f *fakeCatalog) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err, ok := f.createErrFor[req.Title[models.LangEN]]; ok {
		return nil, err
	}
	f.nextID++
	f.created = append(f.created, req)
	p := models.Product{
		ID:         fmt.Sprintf("prod-%d", f.nextID),
		Title:      req.Title,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
		UnitID:     req.UnitID,
		PackQty:    req.PackQty,
		Price:      req.Price,
		SKU:        req.SKU,
		Barcode:    req.Barcode,
		Status:     req.Status,
	}
	f.products = append(f.products, p)
	f.productUnits[p.ID] = []models.ProductUnit{{ID: p.ID + "-u0", ProductID: p.ID, UnitID: req.UnitID, PackQty: req.PackQty, Price: req.Price, IsDefault: true}}
	return &p, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) error {
	f.updates[productID] = req
	return nil
}

func (f *fakeCatalog) ListProductUnits(ctx context.Context, productID string) ([]models.ProductUnit, error) {
	if err, ok := f.productUnitsErr[productID]; ok {
		return nil, err
	}
	return f.productUnits[productID], nil
}

func (f *fakeCatalog) CreateProductUnit(ctx context.Context, productID string, req models.CreateProductUnitRequest) (*models.ProductUnit, error) {
	if err, ok := f.unitErrFor[req.UnitID]; ok {
		return nil, err
	}
	f.createdUnits = append(f.createdUnits, req)
	pu := models.ProductUnit{ID: fmt.Sprintf("%s-u%d", productID, len(f.productUnits[productID])), ProductID: productID, UnitID: req.UnitID, PackQty: req.PackQty, Price: req.Price, SKU: req.SKU}
	f.productUnits[productID] = append(f.productUnits[productID], pu)
	return &pu, nil
}

var errCatalogDown = errors.New("catalog unavailable")

// sheetOf builds a sheet from string rows
func sheetOf(header []string, rows ...[]string) *spreadsheet.Sheet {
	s := &spreadsheet.Sheet{Header: cells(header)}
	for _, r := range rows {
		s.Rows = append(s.Rows, cells(r))
	}
	return s
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
