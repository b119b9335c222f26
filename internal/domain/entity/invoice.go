package entity

import "github.com/tillpoint/tillpoint-api/internal/domain/enum"

// InvoiceAmounts carries the money totals of a finalized bill. Amounts are
// decimal on the wire; the invoice service owns the canonical record.
type InvoiceAmounts struct {
	SubTotal float64 `json:"sub_total"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// InvoiceLineItem is one line of a submitted invoice.
type InvoiceLineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// InvoiceSubmission is the payload persisted by the invoice service when a
// tab is finalized.
type InvoiceSubmission struct {
	Amounts             InvoiceAmounts    `json:"amounts"`
	BillingAddressText  string            `json:"billing_address_text"`
	ShippingAddressText string            `json:"shipping_address_text"`
	LineItems           []InvoiceLineItem `json:"line_items"`
	CustomerReference   *string           `json:"customer_reference"`
	DocumentType        enum.DocumentType `json:"document_type"`
	OperatorReference   string            `json:"operator_reference"`
}

// InvoiceResult is what the invoice service returns for a stored invoice.
type InvoiceResult struct {
	Reference string `json:"reference"`
	InvoiceNo string `json:"invoice_no"`
}

// PaymentRecord is a payment posted against a stored invoice.
type PaymentRecord struct {
	InvoiceReference string             `json:"invoice_reference"`
	Amount           float64            `json:"amount"`
	Method           enum.PaymentMethod `json:"method"`
}
