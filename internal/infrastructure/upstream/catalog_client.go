package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// CatalogClient talks to the remote product catalog service.
type CatalogClient struct {
	*client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{client: newClient(baseURL, timeout, "catalog")}
}

var _ repository.CatalogRepository = (*CatalogClient)(nil)

type productDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
	SKU      string  `json:"sku"`
	TaxRate  float64 `json:"tax_rate"`
}

func (d *productDTO) toEntity() entity.Product {
	return entity.Product{
		ID:       d.ID,
		Name:     d.Name,
		Price:    cents(d.Price),
		Stock:    d.Stock,
		Category: d.Category,
		SKU:      d.SKU,
		TaxRate:  d.TaxRate,
	}
}

type productSearchResponse struct {
	Items []productDTO `json:"items"`
	Total int64        `json:"total"`
}

func (c *CatalogClient) SearchProducts(ctx context.Context, query repository.ProductQuery) ([]entity.Product, int64, error) {
	q := url.Values{}
	if query.SearchText != "" {
		q.Set("search", query.SearchText)
	}
	if query.Category != "" {
		q.Set("category", query.Category)
	}
	q.Set("page", strconv.Itoa(query.Page))
	q.Set("page_size", strconv.Itoa(query.PageSize))

	var resp productSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/products", q, nil, &resp); err != nil {
		if errors.Is(err, errNotFound) {
			return []entity.Product{}, 0, nil
		}
		return nil, 0, err
	}

	products := make([]entity.Product, 0, len(resp.Items))
	for i := range resp.Items {
		products = append(products, resp.Items[i].toEntity())
	}
	return products, resp.Total, nil
}

func (c *CatalogClient) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var dto productDTO
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, apperror.NewNotFoundError("product")
		}
		return nil, err
	}
	product := dto.toEntity()
	return &product, nil
}
