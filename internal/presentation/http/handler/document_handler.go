package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
)

// DocumentHandler renders tabs as printable documents.
type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func documentType(c *gin.Context) enum.DocumentType {
	docType := enum.DocumentType(c.Query("type"))
	if !docType.IsValid() {
		return enum.DocumentTypeBill
	}
	return docType
}

// DownloadPDF renders the tab as a PDF bill or estimate.
// GET /tabs/:id/documents/pdf?type=bill
func (h *DocumentHandler) DownloadPDF(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.documents.RenderPDF(c.Request.Context(), GetOperatorID(c), tabID, documentType(c), GetOperatorName(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+tabID.String()+`.pdf"`)
	c.Data(200, "application/pdf", data)
}

// PrintReceipt sends the tab to the configured receipt printer.
// POST /tabs/:id/documents/print
func (h *DocumentHandler) PrintReceipt(c *gin.Context) {
	tabID, err := parseTabID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.documents.PrintReceipt(c.Request.Context(), GetOperatorID(c), tabID, documentType(c), GetOperatorName(c)); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", nil)
}
