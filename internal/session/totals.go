package session

import "github.com/tillpoint/tillpoint-api/internal/domain/entity"

// TaxRatePercent is the flat tax applied to the pre-tax subtotal when the
// operator has not entered an explicit tax figure.
const TaxRatePercent = 18

// Recompute derives a fresh summary from the tab's line items and the
// operator-entered adjustment fields. It is pure: the tab is not modified,
// the new summary is returned.
//
//	grandTotal = subTotal - discount + tax + deliveryCharge + containerCharge
//	changeDue  = max(0, customerPaid - grandTotal)
//
// All values are cents, so the 2-decimal rounding required of the grand
// total is exact.
func Recompute(tab *entity.BillingTab) entity.TabSummary {
	s := tab.Summary

	var totalQty int
	var subTotal int64
	for i := range tab.Items {
		totalQty += tab.Items[i].Quantity
		subTotal += tab.Items[i].Amount
	}
	s.TotalQuantity = totalQty
	s.SubTotal = subTotal

	if !s.TaxOverridden {
		// Rounded half-up, matching every other cents conversion.
		s.Tax = (subTotal*TaxRatePercent + 50) / 100
	}

	s.GrandTotal = s.SubTotal - s.Discount + s.Tax + s.DeliveryCharge + s.ContainerCharge

	change := s.CustomerPaid - s.GrandTotal
	if change < 0 {
		change = 0
	}
	s.ChangeDue = change

	return s
}

// lineAmount keeps computedAmount = unitPrice * quantity; it is the only
// place a line item amount is derived.
func lineAmount(item *entity.LineItem) {
	item.Amount = item.UnitPrice * int64(item.Quantity)
}
