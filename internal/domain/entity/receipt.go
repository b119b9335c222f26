package entity

// ReceiptHeader holds the store/business header printed at the top of a
// receipt or invoice document.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a printed document.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	Note      string  `json:"note,omitempty"`
}

// Receipt is a value object representing a printable bill or estimate.
// It is composed from tab data at render time and holds no live references.
type Receipt struct {
	Header          ReceiptHeader `json:"header"`
	DocumentType    string        `json:"document_type"`
	InvoiceNo       string        `json:"invoice_no"`
	Date            string        `json:"date"`
	Operator        string        `json:"operator,omitempty"`
	Customer        string        `json:"customer,omitempty"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	BillingAddress  string        `json:"billing_address,omitempty"`
	OrderType       string        `json:"order_type,omitempty"`
	PaymentMethod   string        `json:"payment_method,omitempty"`
	Items           []ReceiptItem `json:"items"`
	SubTotal        float64       `json:"sub_total"`
	Discount        float64       `json:"discount"`
	Tax             float64       `json:"tax"`
	DeliveryCharge  float64       `json:"delivery_charge"`
	ContainerCharge float64       `json:"container_charge"`
	GrandTotal      float64       `json:"grand_total"`
	Paid            float64       `json:"paid"`
	ChangeDue       float64       `json:"change_due"`
	Tip             float64       `json:"tip,omitempty"`
	Footer          string        `json:"footer,omitempty"`
}
