// Package pdf renders a persisted invoice into a printable A4 tax-invoice
// document. The layout mirrors the site's fixed invoice template: issuer
// header with formatted ABN, bill-to block, line-item table, totals block
// and the GST compliance footer.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

// Invoices at or above this total must disclose the buyer's identity
// under Australian tax invoice rules.
const buyerDisclosureThreshold = 1000.0

const complianceFooter = "This document is a tax invoice for GST purposes. " +
	"Amounts are in Australian dollars. GST is calculated at the rate shown."

// Render produces the invoice PDF as a byte slice. Any layout failure
// aborts with an error; a partial document is never returned.
func Render(inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(inv.Title, true)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	layoutHeader(doc, inv)
	layoutBillTo(doc, inv)
	layoutItems(doc, inv)
	layoutTotals(doc, inv)
	layoutFooter(doc, inv)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from the invoice number, with any
// whitespace replaced by hyphens.
func Filename(inv *models.Invoice) string {
	name := strings.Join(strings.Fields(inv.InvoiceNumber), "-")
	if name == "" {
		name = "invoice"
	}
	return name + ".pdf"
}

func layoutHeader(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(0, 12, inv.Title, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, inv.BusinessName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "ABN: "+FormatABN(inv.ABN), "", 1, "L", false, 0, "")
	if inv.BusinessAddress != "" {
		doc.MultiCell(0, 5, inv.BusinessAddress, "", "L", false)
	}

	doc.SetXY(130, 12)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(60, 6, inv.InvoiceNumber, "", 2, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(60, 5, "Issued: "+inv.IssueDate.Format("2 Jan 2006"), "", 2, "R", false, 0, "")
	if inv.DueDate != nil {
		doc.CellFormat(60, 5, "Due: "+inv.DueDate.Format("2 Jan 2006"), "", 2, "R", false, 0, "")
	}

	doc.Ln(12)
}

func layoutBillTo(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, inv.ClientName, "", 1, "L", false, 0, "")
	if inv.ClientAddress != "" {
		doc.MultiCell(0, 5, inv.ClientAddress, "", "L", false)
	}
	if inv.ClientEmail != "" {
		doc.CellFormat(0, 5, inv.ClientEmail, "", 1, "L", false, 0, "")
	}
	doc.Ln(6)
}

func layoutItems(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(100, 7, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		amount := item.Quantity * item.UnitPrice
		doc.CellFormat(100, 7, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, trimQty(item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(amount), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)
}

func layoutTotals(doc *gofpdf.Fpdf, inv *models.Invoice) {
	label := func(text string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 10)
		doc.SetX(120)
		doc.CellFormat(35, 7, text, "", 0, "R", false, 0, "")
	}

	label("Subtotal (ex GST)", false)
	doc.CellFormat(35, 7, money(inv.Subtotal), "", 1, "R", false, 0, "")
	label(fmt.Sprintf("GST (%g%%)", inv.TaxRate*100), false)
	doc.CellFormat(35, 7, money(inv.TaxAmount), "", 1, "R", false, 0, "")
	label("Total (inc GST)", true)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(35, 7, money(inv.Total), "T", 1, "R", false, 0, "")
	doc.Ln(6)
}

func layoutFooter(doc *gofpdf.Fpdf, inv *models.Invoice) {
	doc.SetFont("Helvetica", "", 9)
	if inv.PaymentTerms != "" {
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(0, 5, "Payment Terms", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, inv.PaymentTerms, "", "L", false)
		doc.Ln(2)
	}
	if inv.Notes != "" {
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
		doc.Ln(2)
	}

	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(100, 100, 100)
	doc.MultiCell(0, 4, complianceFooter, "", "L", false)
	if inv.Total >= buyerDisclosureThreshold {
		doc.MultiCell(0, 4,
			"As this invoice totals $1,000 or more, the buyer's identity is shown above as required for tax invoices.",
			"", "L", false)
	}
	doc.SetTextColor(0, 0, 0)
}

// FormatABN renders an 11-digit ABN as NN NNN NNN NNN. Anything else is
// returned untouched.
func FormatABN(abn string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, abn)
	if len(digits) != 11 {
		return abn
	}
	return digits[0:2] + " " + digits[2:5] + " " + digits[5:8] + " " + digits[8:11]
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func trimQty(q float64) string {
	s := fmt.Sprintf("%g", q)
	return s
}
