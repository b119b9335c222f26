package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
)

// CustomerInfo holds the free-form customer fields attached to a tab.
// No shape is enforced here; checkout validation decides what is required.
type CustomerInfo struct {
	Reference string `json:"reference,omitempty"` // directory ID once the customer is known
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// LineItem is one row on a tab. Name and price are copied from the product
// snapshot at add-time; catalog changes never re-price an existing row.
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"product_id,omitempty"`
	SKU       string    `json:"sku,omitempty"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"-"` // cents
	Quantity  int       `json:"quantity"`
	Amount    int64     `json:"-"` // cents, always UnitPrice * Quantity
	Note      string    `json:"note,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (li LineItem) MarshalJSON() ([]byte, error) {
	type Alias LineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
	}{
		Alias:     Alias(li),
		UnitPrice: float64(li.UnitPrice) / 100,
		Amount:    float64(li.Amount) / 100,
	})
}

// UnmarshalJSON converts decimal amounts back to cents, so archived tab
// snapshots round-trip.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type Alias LineItem
	aux := &struct {
		*Alias
		UnitPrice float64 `json:"unit_price"`
		Amount    float64 `json:"amount"`
	}{Alias: (*Alias)(li)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	li.UnitPrice = int64(math.Round(aux.UnitPrice * 100))
	li.Amount = int64(math.Round(aux.Amount * 100))
	return nil
}

// TabSummary holds the derived and operator-entered money fields of a tab.
// Derived fields (TotalQuantity, SubTotal, Tax when not overridden,
// GrandTotal, ChangeDue) are recomputed after every mutation and are never
// edited directly.
type TabSummary struct {
	TotalQuantity   int   `json:"total_quantity"`
	SubTotal        int64 `json:"-"` // cents
	Discount        int64 `json:"-"` // cents
	Tax             int64 `json:"-"` // cents
	TaxOverridden   bool  `json:"tax_overridden"`
	DeliveryCharge  int64 `json:"-"` // cents
	ContainerCharge int64 `json:"-"` // cents
	GrandTotal      int64 `json:"-"` // cents
	CustomerPaid    int64 `json:"-"` // cents
	ChangeDue       int64 `json:"-"` // cents, max(0, CustomerPaid-GrandTotal)
	Tip             int64 `json:"-"` // cents
}

// MarshalJSON converts cents to decimal for API responses
func (s TabSummary) MarshalJSON() ([]byte, error) {
	type Alias TabSummary
	return json.Marshal(&struct {
		Alias
		SubTotal        float64 `json:"sub_total"`
		Discount        float64 `json:"discount"`
		Tax             float64 `json:"tax"`
		DeliveryCharge  float64 `json:"delivery_charge"`
		ContainerCharge float64 `json:"container_charge"`
		GrandTotal      float64 `json:"grand_total"`
		CustomerPaid    float64 `json:"customer_paid"`
		ChangeDue       float64 `json:"change_due"`
		Tip             float64 `json:"tip"`
	}{
		Alias:           Alias(s),
		SubTotal:        float64(s.SubTotal) / 100,
		Discount:        float64(s.Discount) / 100,
		Tax:             float64(s.Tax) / 100,
		DeliveryCharge:  float64(s.DeliveryCharge) / 100,
		ContainerCharge: float64(s.ContainerCharge) / 100,
		GrandTotal:      float64(s.GrandTotal) / 100,
		CustomerPaid:    float64(s.CustomerPaid) / 100,
		ChangeDue:       float64(s.ChangeDue) / 100,
		Tip:             float64(s.Tip) / 100,
	})
}

// UnmarshalJSON converts decimal amounts back to cents, so archived tab
// snapshots round-trip.
func (s *TabSummary) UnmarshalJSON(data []byte) error {
	type Alias TabSummary
	aux := &struct {
		*Alias
		SubTotal        float64 `json:"sub_total"`
		Discount        float64 `json:"discount"`
		Tax             float64 `json:"tax"`
		DeliveryCharge  float64 `json:"delivery_charge"`
		ContainerCharge float64 `json:"container_charge"`
		GrandTotal      float64 `json:"grand_total"`
		CustomerPaid    float64 `json:"customer_paid"`
		ChangeDue       float64 `json:"change_due"`
		Tip             float64 `json:"tip"`
	}{Alias: (*Alias)(s)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	s.SubTotal = int64(math.Round(aux.SubTotal * 100))
	s.Discount = int64(math.Round(aux.Discount * 100))
	s.Tax = int64(math.Round(aux.Tax * 100))
	s.DeliveryCharge = int64(math.Round(aux.DeliveryCharge * 100))
	s.ContainerCharge = int64(math.Round(aux.ContainerCharge * 100))
	s.GrandTotal = int64(math.Round(aux.GrandTotal * 100))
	s.CustomerPaid = int64(math.Round(aux.CustomerPaid * 100))
	s.ChangeDue = int64(math.Round(aux.ChangeDue * 100))
	s.Tip = int64(math.Round(aux.Tip * 100))
	return nil
}

// BillingTab is one customer's in-progress transaction at the terminal.
type BillingTab struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNo     string             `json:"invoice_no"`
	Customer      CustomerInfo       `json:"customer"`
	Items         []LineItem         `json:"items"`
	Summary       TabSummary         `json:"summary"`
	OrderType     enum.OrderType     `json:"order_type"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	IsPaused      bool               `json:"is_paused"`
	CreatedAt     time.Time          `json:"created_at"`
	LastActivity  time.Time          `json:"last_activity"`
}

// Label returns the display name for the tab: customer name, else phone,
// else a short fallback built from the tab ID.
func (t *BillingTab) Label() string {
	if t.Customer.Name != "" {
		return t.Customer.Name
	}
	if t.Customer.Phone != "" {
		return t.Customer.Phone
	}
	return "Tab " + t.ID.String()[:8]
}

// HasContent reports whether closing the tab should require operator
// confirmation (any items, or a named customer).
func (t *BillingTab) HasContent() bool {
	return len(t.Items) > 0 || t.Customer.Name != ""
}

// Clone returns a deep copy so callers can hand tabs out without exposing
// the store's internal state to mutation.
func (t *BillingTab) Clone() *BillingTab {
	c := *t
	c.Items = make([]LineItem, len(t.Items))
	copy(c.Items, t.Items)
	return &c
}
