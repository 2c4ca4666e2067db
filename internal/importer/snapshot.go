package importer

import (
	"context"
	"fmt"

	"catalog-import-service/internal/models"
)

// Snapshot is the read-only view of the catalog a single run works against
type Snapshot struct {
	Resolver *Resolver
	Products []models.Product
}

// NewTracker returns a fresh duplicate tracker seeded from the snapshot
func (s *Snapshot) NewTracker() *DuplicateTracker {
	return NewDuplicateTracker(s.Products)
}

// LoadSnapshot fetches categories, units and existing products once
func LoadSnapshot(ctx context.Context, catalog Catalog, pageSize int) (*Snapshot, error) {
	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	units, err := catalog.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}

	products, err := catalog.ListProducts(ctx, models.ProductFilter{Page: 1, Limit: pageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return &Snapshot{
		Resolver: NewResolver(categories, units),
		Products: products,
	}, nil
}
