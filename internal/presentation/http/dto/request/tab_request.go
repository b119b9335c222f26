package request

import (
	"math"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/internal/session"
)

// CustomerInfoRequest mirrors the customer block on a tab. All fields are
// free-form; validation happens at checkout, not on entry.
type CustomerInfoRequest struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Notes     string `json:"notes"`
}

func (r *CustomerInfoRequest) ToEntity() *entity.CustomerInfo {
	return &entity.CustomerInfo{
		Reference: r.Reference,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Notes:     r.Notes,
	}
}

// UpdateTabRequest is a partial tab update. Absent fields leave the tab
// untouched; money fields are decimal and converted to cents.
type UpdateTabRequest struct {
	Customer         *CustomerInfoRequest `json:"customer"`
	OrderType        *enum.OrderType      `json:"order_type"`
	PaymentMethod    *enum.PaymentMethod  `json:"payment_method"`
	Discount         *float64             `json:"discount"`
	DeliveryCharge   *float64             `json:"delivery_charge"`
	ContainerCharge  *float64             `json:"container_charge"`
	CustomerPaid     *float64             `json:"customer_paid"`
	Tip              *float64             `json:"tip"`
	TaxOverride      *float64             `json:"tax_override"`
	ClearTaxOverride bool                 `json:"clear_tax_override"`
}

// ToInput converts the request into the session store's update input.
func (r *UpdateTabRequest) ToInput() session.UpdateTabInput {
	input := session.UpdateTabInput{
		OrderType:        r.OrderType,
		PaymentMethod:    r.PaymentMethod,
		Discount:         toCents(r.Discount),
		DeliveryCharge:   toCents(r.DeliveryCharge),
		ContainerCharge:  toCents(r.ContainerCharge),
		CustomerPaid:     toCents(r.CustomerPaid),
		Tip:              toCents(r.Tip),
		TaxOverride:      toCents(r.TaxOverride),
		ClearTaxOverride: r.ClearTaxOverride,
	}
	if r.Customer != nil {
		input.Customer = r.Customer.ToEntity()
	}
	return input
}

// AddItemRequest adds a row to a tab: either a catalog product by ID, or a
// free-form manual item with its own name and price.
type AddItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

func (r *AddItemRequest) IsManual() bool {
	return r.ProductID == ""
}

func (r *AddItemRequest) UnitPriceCents() int64 {
	return int64(math.Round(r.UnitPrice * 100))
}

// SetQuantityRequest updates a row's quantity. Any value below 1 is clamped
// to 1 by the store, so 0 and negatives are accepted, not rejected.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetNoteRequest updates a row's kitchen/packing note.
type SetNoteRequest struct {
	Note string `json:"note"`
}

func toCents(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := int64(math.Round(*v * 100))
	return &c
}
