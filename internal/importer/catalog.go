package importer

import (
	"context"

	"catalog-import-service/internal/models"
)

// Catalog is the remote catalog store the engine reads from and writes to
type Catalog interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	// CreateProduct also creates the product's default ProductUnit
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) error
	ListProductUnits(ctx context.Context, productID string) ([]models.ProductUnit, error)
	CreateProductUnit(ctx context.Context, productID string, req models.CreateProductUnitRequest) (*models.ProductUnit, error)
}
