package repository

import (
	"context"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// ProductQuery is the catalog search contract: free-text plus paging.
type ProductQuery struct {
	SearchText string
	Category   string
	Page       int
	PageSize   int
}

// CatalogRepository is the read-only view of the remote catalog service.
type CatalogRepository interface {
	SearchProducts(ctx context.Context, query ProductQuery) ([]entity.Product, int64, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}
