package request

import "github.com/tillpoint/tillpoint-api/internal/domain/enum"

// CheckoutRequest finalizes a tab. DocumentType defaults to a bill;
// SaveCustomer registers the tab's customer in the directory first.
type CheckoutRequest struct {
	DocumentType enum.DocumentType `json:"document_type"`
	SaveCustomer bool              `json:"save_customer"`
}
