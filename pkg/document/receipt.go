package document

import (
	"strings"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// EncodeReceipt converts a Receipt into ESC/POS bytes for a thermal printer.
func EncodeReceipt(r *entity.Receipt, charWidth int) []byte {
	t := NewTicket(charWidth)

	// Business header
	t.Center().
		Bold(true).
		Title(r.Header.StoreName).
		Bold(false)

	if r.Header.Address != "" {
		t.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		t.Line(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		t.Linef("Tax ID: %s", r.Header.TaxID)
	}
	if r.DocumentType != "" {
		t.Bold(true).Line(strings.ToUpper(r.DocumentType)).Bold(false)
	}

	t.Left().
		Rule('-')

	// Sale header; absent fields drop their row.
	t.Row("Invoice:", r.InvoiceNo).
		Row("Date:", r.Date).
		Row("Served by:", r.Operator).
		Row("Customer:", r.Customer).
		Row("Phone:", r.CustomerPhone).
		Row("Order:", r.OrderType).
		Row("Payment:", r.PaymentMethod)

	t.Rule('-')

	// Line items
	for _, item := range r.Items {
		t.Item(item.Quantity, item.Name, item.Total)
		if item.Quantity > 1 {
			t.Linef("  @ %.2f each", item.UnitPrice)
		}
		if item.Note != "" {
			t.Linef("  * %s", item.Note)
		}
	}

	t.Rule('-')

	// Summary block
	t.Amount("Subtotal:", r.SubTotal).
		AmountIf("Discount:", -r.Discount).
		AmountIf("Tax:", r.Tax).
		AmountIf("Delivery:", r.DeliveryCharge).
		AmountIf("Container:", r.ContainerCharge).
		Bold(true).
		Amount("TOTAL:", r.GrandTotal).
		Bold(false)

	// Payment block
	t.AmountIf("Paid:", r.Paid).
		AmountIf("Change:", r.ChangeDue).
		AmountIf("Tip:", r.Tip)

	t.Rule('-')

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Thank you for your business!"
	}
	t.Center().
		Blank(1).
		Line(footer).
		Blank(1).
		Left()

	t.Cut()

	return t.Bytes()
}
