package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// RenderPDF renders a Receipt as an A4 PDF document: business header,
// invoice header, bill-to block, line items table, summary block and
// payment block.
func RenderPDF(r *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Business header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 9, r.Header.StoreName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if r.Header.Address != "" {
		pdf.CellFormat(0, 5, r.Header.Address, "", 1, "L", false, 0, "")
	}
	if r.Header.Phone != "" {
		pdf.CellFormat(0, 5, r.Header.Phone, "", 1, "L", false, 0, "")
	}
	if r.Header.TaxID != "" {
		pdf.CellFormat(0, 5, "Tax ID: "+r.Header.TaxID, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Invoice header
	title := "INVOICE"
	if strings.EqualFold(r.DocumentType, "estimate") {
		title = "ESTIMATE"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 5, "Invoice No: "+r.InvoiceNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+r.Date, "", 1, "L", false, 0, "")
	if r.OrderType != "" {
		pdf.CellFormat(95, 5, "Order type: "+r.OrderType, "", 0, "L", false, 0, "")
		pdf.Ln(5)
	}
	if r.Operator != "" {
		pdf.CellFormat(0, 5, "Served by: "+r.Operator, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Bill-to block
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if r.Customer != "" {
		pdf.CellFormat(0, 5, r.Customer, "", 1, "L", false, 0, "")
	}
	if r.CustomerPhone != "" {
		pdf.CellFormat(0, 5, r.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if r.BillingAddress != "" {
		pdf.MultiCell(0, 5, r.BillingAddress, "", "L", false)
	}
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range r.Items {
		name := item.Name
		if item.Note != "" {
			name = name + " (" + item.Note + ")"
		}
		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Summary block
	summaryRow := func(label string, value float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(140, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}

	summaryRow("Subtotal", r.SubTotal, false)
	if r.Discount > 0 {
		summaryRow("Discount", -r.Discount, false)
	}
	summaryRow("Tax", r.Tax, false)
	if r.DeliveryCharge > 0 {
		summaryRow("Delivery", r.DeliveryCharge, false)
	}
	if r.ContainerCharge > 0 {
		summaryRow("Container", r.ContainerCharge, false)
	}
	summaryRow("Total", r.GrandTotal, true)

	// Payment block
	if r.PaymentMethod != "" || r.Paid > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "", 10)
		if r.PaymentMethod != "" {
			pdf.CellFormat(0, 5, "Payment method: "+r.PaymentMethod, "", 1, "L", false, 0, "")
		}
		if r.Paid > 0 {
			pdf.CellFormat(0, 5, fmt.Sprintf("Paid: %.2f", r.Paid), "", 1, "L", false, 0, "")
		}
		if r.ChangeDue > 0 {
			pdf.CellFormat(0, 5, fmt.Sprintf("Change: %.2f", r.ChangeDue), "", 1, "L", false, 0, "")
		}
		if r.Tip > 0 {
			pdf.CellFormat(0, 5, fmt.Sprintf("Tip: %.2f", r.Tip), "", 1, "L", false, 0, "")
		}
	}

	// Footer
	footer := r.Footer
	if footer == "" {
		footer = "Thank you for your business!"
	}
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}
