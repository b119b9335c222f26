package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
)

// CustomerHandler exposes the customer directory lookup and upsert.
type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// LookupByPhone finds a customer by exact phone. A miss returns success with
// null data; the terminal falls back to manual entry.
// GET /customers/lookup?phone=
func (h *CustomerHandler) LookupByPhone(c *gin.Context) {
	record, err := h.customers.LookupByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if record == nil {
		response.OK(c, "No customer on record", nil)
		return
	}
	response.OK(c, "Customer found", record)
}

// Upsert creates or updates a directory record.
// PUT /customers
func (h *CustomerHandler) Upsert(c *gin.Context) {
	var req request.UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.customers.Upsert(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer saved", record)
}
