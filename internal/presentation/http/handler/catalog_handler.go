package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/tillpoint-api/pkg/pagination"
)

// CatalogHandler exposes product search for the billing surface.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// SearchProducts searches the catalog with free text and paging.
// GET /products?search=&category=&page=&per_page=
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	query := repository.ProductQuery{
		SearchText: c.Query("search"),
		Category:   c.Query("category"),
		Page:       params.Page,
		PageSize:   params.PerPage,
	}

	items, total, err := h.catalog.SearchProducts(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(items, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination[entity.Product](c, 200, "Products retrieved", result)
}

// GetProduct returns one product snapshot.
// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved", product)
}
