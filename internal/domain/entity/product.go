package entity

import (
	"encoding/json"
	"math"
)

// Product is a point-in-time snapshot from the catalog service. Tabs copy
// name/price/sku out of it when a line item is added; they never hold a live
// reference.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    int64   `json:"-"` // cents
	Stock    int     `json:"stock"`
	Category string  `json:"category,omitempty"`
	SKU      string  `json:"sku,omitempty"`
	TaxRate  float64 `json:"tax_rate,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// UnmarshalJSON converts the decimal price back to cents, so cached catalog
// snapshots round-trip.
func (p *Product) UnmarshalJSON(data []byte) error {
	type Alias Product
	aux := &struct {
		*Alias
		Price float64 `json:"price"`
	}{Alias: (*Alias)(p)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	p.Price = int64(math.Round(aux.Price * 100))
	return nil
}
