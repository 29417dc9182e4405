package models

import (
	"time"
)

// Invoice statuses.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// LineItem is one row of an invoice. When TaxIncluded is true the line
// total already contains GST and the exclusive amount is backed out when
// computing the invoice subtotal.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxIncluded bool    `json:"taxIncluded"`
}

// Invoice is a persisted Australian GST tax invoice. Subtotal, TaxAmount
// and Total are always recomputed server-side from Items and TaxRate.
type Invoice struct {
	ID              string     `json:"id"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	Title           string     `json:"title"`
	IssueDate       time.Time  `json:"issueDate"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	BusinessName    string     `json:"businessName"`
	ABN             string     `json:"abn"`
	BusinessAddress string     `json:"businessAddress,omitempty"`
	ClientID        string     `json:"clientId,omitempty"`
	ClientName      string     `json:"clientName"`
	ClientAddress   string     `json:"clientAddress,omitempty"`
	ClientEmail     string     `json:"clientEmail,omitempty"`
	Items           []LineItem `json:"items"`
	TaxRate         float64    `json:"taxRate"`
	Subtotal        float64    `json:"subtotal"`
	TaxAmount       float64    `json:"taxAmount"`
	Total           float64    `json:"total"`
	PaymentTerms    string     `json:"paymentTerms,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Client is an entry in the lightweight client tracker.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Admin is a stored admin credential. PasswordHash is always a bcrypt hash;
// plaintext never reaches the store.
type Admin struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}

// AdminProfile is the shape returned to clients after login.
type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *Admin) Profile() AdminProfile {
	return AdminProfile{ID: a.ID, Email: a.Email, Name: a.Name}
}

type Performance struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"` // "upcoming", "past", "cancelled"
	CreatedAt   time.Time `json:"createdAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Event     string    `json:"event,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactLead is a submission from the public contact form.
type ContactLead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Media is an uploaded image reference.
type Media struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
