package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
)

// TabHandler exposes the operator's working set of billing tabs.
type TabHandler struct {
	terminal *service.TerminalService
}

func NewTabHandler(terminal *service.TerminalService) *TabHandler {
	return &TabHandler{terminal: terminal}
}

// GetSession returns the operator's tabs and active tab pointer.
// GET /session
func (h *TabHandler) GetSession(c *gin.Context) {
	view := h.terminal.View(c.Request.Context(), GetOperatorID(c))
	response.OK(c, "Session retrieved", view)
}

// RecoverSession restores archived paused tabs after a terminal restart.
// POST /session/recover
func (h *TabHandler) RecoverSession(c *gin.Context) {
	recovered, err := h.terminal.RecoverTabs(c.Request.Context(), GetOperatorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Session recovered", gin.H{
		"recovered": recovered,
		"session":   h.terminal.View(c.Request.Context(), GetOperatorID(c)),
	})
}

// CreateTab opens a new empty tab and makes it active.
// POST /tabs
func (h *TabHandler) CreateTab(c *gin.Context) {
	tab := h.terminal.CreateTab(c.Request.Context(), GetOperatorID(c))
	response.Created(c, "Tab created", tab)
}

// GetTab returns one tab.
// GET /tabs/:id
func (h *TabHandler) GetTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tab, err := h.terminal.Tab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab retrieved", tab)
}

// CloseTab discards a tab. Pass ?confirm=true to close a tab that still has
// items or customer details.
// DELETE /tabs/:id
func (h *TabHandler) CloseTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := h.terminal.CloseTab(c.Request.Context(), GetOperatorID(c), tabID, confirmed); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab closed", h.terminal.View(c.Request.Context(), GetOperatorID(c)))
}

// ActivateTab switches the operator to another tab.
// POST /tabs/:id/activate
func (h *TabHandler) ActivateTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tab, err := h.terminal.SetActiveTab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab activated", tab)
}

// PauseTab parks a tab for later.
// POST /tabs/:id/pause
func (h *TabHandler) PauseTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tab, err := h.terminal.PauseTab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab paused", tab)
}

// ResumeTab unparks a tab.
// POST /tabs/:id/resume
func (h *TabHandler) ResumeTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tab, err := h.terminal.ResumeTab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab resumed", tab)
}

// HoldTab pauses the tab and opens a fresh active one in a single step.
// POST /tabs/:id/hold
func (h *TabHandler) HoldTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	held, fresh, err := h.terminal.HoldTab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab held", gin.H{"held": held, "fresh": fresh})
}

// UpdateTab applies a partial update to a tab.
// PATCH /tabs/:id
func (h *TabHandler) UpdateTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req request.UpdateTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tab, err := h.terminal.UpdateTab(c.Request.Context(), GetOperatorID(c), tabID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Tab updated", tab)
}

// AddItem adds a catalog product or a manual row to a tab.
// POST /tabs/:id/items
func (h *TabHandler) AddItem(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	operatorID := GetOperatorID(c)
	ctx := c.Request.Context()

	if req.IsManual() {
		tab, err := h.terminal.AddManualItem(ctx, operatorID, tabID, req.Name, req.UnitPriceCents())
		if err != nil {
			respondError(c, err)
			return
		}
		response.OK(c, "Item added", tab)
		return
	}

	tab, err := h.terminal.AddProduct(ctx, operatorID, tabID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Item added", tab)
}

// SetItemQuantity changes a row's quantity.
// PATCH /tabs/:id/items/:itemId/quantity
func (h *TabHandler) SetItemQuantity(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tab, err := h.terminal.SetLineItemQuantity(c.Request.Context(), GetOperatorID(c), tabID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Quantity updated", tab)
}

// SetItemNote changes a row's note.
// PATCH /tabs/:id/items/:itemId/note
func (h *TabHandler) SetItemNote(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req request.SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tab, err := h.terminal.SetLineItemNote(c.Request.Context(), GetOperatorID(c), tabID, itemID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Note updated", tab)
}

// RemoveItem deletes a row from a tab.
// DELETE /tabs/:id/items/:itemId
func (h *TabHandler) RemoveItem(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tab, err := h.terminal.RemoveLineItem(c.Request.Context(), GetOperatorID(c), tabID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Item removed", tab)
}

// ValidateTab runs the checkout pre-save check and reports every issue.
// GET /tabs/:id/validate
func (h *TabHandler) ValidateTab(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	issues, err := h.terminal.ValidateTab(c.Request.Context(), GetOperatorID(c), tabID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Validation complete", gin.H{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}
