package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// Language keys used in LocalizedText maps
const (
	LangEN = "en"
	LangAR = "ar"
)

// LocalizedText is a per-language text map, e.g. {"en": "Snacks", "ar": "وجبات خفيفة"}.
// The catalog sometimes sends a bare string instead of a map; it is stored under LangEN.
type LocalizedText map[string]string

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = LocalizedText{}
		if plain != "" {
			(*t)[LangEN] = plain
		}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = LocalizedText(m)
	return nil
}

// Display returns the English rendering, falling back to the first non-empty
// rendering in key order.
func (t LocalizedText) Display() string {
	if v := strings.TrimSpace(t[LangEN]); v != "" {
		return v
	}
	for _, k := range t.languages() {
		if v := strings.TrimSpace(t[k]); v != "" {
			return v
		}
	}
	return ""
}

// Renderings returns every non-empty rendering in key order.
func (t LocalizedText) Renderings() []string {
	out := make([]string, 0, len(t))
	for _, k := range t.languages() {
		if v := strings.TrimSpace(t[k]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (t LocalizedText) languages() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Category is a node of the catalog category tree. Children are owned by value.
type Category struct {
	ID       string        `json:"id"`
	Name     LocalizedText `json:"name"`
	Slug     string        `json:"slug,omitempty"`
	Children []Category    `json:"children,omitempty"`
}

// Unit is a sellable unit of measure (piece, box, carton...)
type Unit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
}

// Product as returned by the catalog service
type Product struct {
	ID            string        `json:"id"`
	Title         LocalizedText `json:"title"`
	Description   LocalizedText `json:"description,omitempty"`
	Slug          string        `json:"slug"`
	CategoryID    string        `json:"categoryId"`
	UnitID        string        `json:"unitId"`
	PackQty       float64       `json:"packQty"`
	Price         float64       `json:"price"`
	Stock         float64       `json:"stock"`
	SKU           string        `json:"sku,omitempty"`
	Barcode       string        `json:"barcode,omitempty"`
	Status        string        `json:"status"`
	HasMultiUnits bool          `json:"hasMultiUnits"`
}

// ProductUnit is one sellable packaging of a product
type ProductUnit struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	UnitID    string  `json:"unitId"`
	Unit      *Unit   `json:"unit,omitempty"`
	PackQty   float64 `json:"packQty"`
	Price     float64 `json:"price"`
	SKU       string  `json:"sku,omitempty"`
	Barcode   string  `json:"barcode,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Page   int
	Limit  int
	Search string
}

// CreateProductRequest is the payload for creating a product.
// The catalog creates the product's default ProductUnit from UnitID/PackQty/Price.
type CreateProductRequest struct {
	Title         LocalizedText `json:"title"`
	Description   LocalizedText `json:"description,omitempty"`
	Slug          string        `json:"slug"`
	CategoryID    string        `json:"categoryId"`
	UnitID        string        `json:"unitId"`
	PackQty       float64       `json:"packQty"`
	Price         float64       `json:"price"`
	Stock         float64       `json:"stock"`
	SKU           string        `json:"sku,omitempty"`
	Barcode       string        `json:"barcode,omitempty"`
	Status        string        `json:"status"`
	HasMultiUnits bool          `json:"hasMultiUnits"`
}

// UpdateProductRequest is a partial product update
type UpdateProductRequest struct {
	HasMultiUnits *bool `json:"hasMultiUnits,omitempty"`
}

// CreateProductUnitRequest is the payload for attaching a unit to a product
type CreateProductUnitRequest struct {
	UnitID    string  `json:"unitId"`
	PackQty   float64 `json:"packQty"`
	Price     float64 `json:"price"`
	SKU       string  `json:"sku,omitempty"`
	Barcode   string  `json:"barcode,omitempty"`
	IsDefault bool    `json:"isDefault"`
}
