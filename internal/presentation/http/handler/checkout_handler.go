package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
)

// CheckoutHandler finalizes tabs into stored invoices.
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout validates the tab, submits it to the invoice service and retires
// it. Guarded by the idempotency middleware; a retried key replays.
// POST /tabs/:id/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), GetOperatorID(c), tabID, service.CheckoutInput{
		DocumentType: req.DocumentType,
		SaveCustomer: req.SaveCustomer,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab completed", result)
}
