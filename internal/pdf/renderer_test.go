package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

func testInvoice() *models.Invoice {
	due := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-2026-1001",
		Title:         "Tax Invoice",
		IssueDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		BusinessName:  "Sing4You",
		ABN:           "12345678901",
		ClientName:    "A Client",
		ClientEmail:   "client@example.com",
		Items: []models.LineItem{
			{Description: "Wedding ceremony set", Quantity: 1, UnitPrice: 550, TaxIncluded: true},
			{Description: "Travel", Quantity: 2.5, UnitPrice: 40},
		},
		TaxRate:   0.10,
		Subtotal:  600,
		TaxAmount: 60,
		Total:     660,
		Status:    models.InvoiceStatusSent,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render(testInvoice())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}

func TestRenderMinimalInvoice(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "INV-2026-1002",
		Title:         "Tax Invoice",
		IssueDate:     time.Now(),
		BusinessName:  "Sing4You",
		ABN:           "12345678901",
		ClientName:    "A Client",
		Items: []models.LineItem{
			{Description: "Performance", Quantity: 1, UnitPrice: 100},
		},
		TaxRate: 0.10, Subtotal: 100, TaxAmount: 10, Total: 110,
		Status: models.InvoiceStatusDraft,
	}
	if _, err := Render(inv); err != nil {
		t.Fatalf("Render without optional fields: %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"INV-2026-1001", "INV-2026-1001.pdf"},
		{"draft copy 3", "draft-copy-3.pdf"},
		{" spaced  out ", "spaced-out.pdf"},
		{"", "invoice.pdf"},
	}
	for _, tt := range tests {
		inv := &models.Invoice{InvoiceNumber: tt.number}
		if got := Filename(inv); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestFormatABN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345678901", "12 345 678 901"},
		{"12 345 678 901", "12 345 678 901"},
		{"1234", "1234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatABN(tt.in); got != tt.want {
			t.Errorf("FormatABN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
