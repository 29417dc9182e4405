package store

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

const invoiceColumns = `id, invoice_number, title, issue_date, due_date, business_name, abn,
	business_address, client_id, client_name, client_address, client_email,
	items, tax_rate, subtotal, tax_amount, total, payment_terms, notes, status,
	created_at, updated_at`

// CreateInvoice persists a fully computed invoice. A collision on the
// invoice number (two admins racing the sequencer) surfaces as
// apperr.ErrDuplicateNumber rather than a bare driver error.
func (s *Store) CreateInvoice(inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.DB.Exec(query,
		inv.ID, inv.InvoiceNumber, inv.Title, inv.IssueDate, inv.DueDate,
		inv.BusinessName, inv.ABN, inv.BusinessAddress,
		inv.ClientID, inv.ClientName, inv.ClientAddress, inv.ClientEmail,
		string(items), inv.TaxRate, inv.Subtotal, inv.TaxAmount, inv.Total,
		inv.PaymentTerms, inv.Notes, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: invoices.invoice_number") {
		return apperr.ErrDuplicateNumber
	}
	return err
}

// GetInvoiceByID returns (nil, nil) when no invoice matches; malformed
// ids simply match nothing.
func (s *Store) GetInvoiceByID(id string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
	inv, err := scanInvoice(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Store) GetAllInvoices() ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC`
	return s.queryInvoices(query)
}

func (s *Store) GetInvoicesByClient(clientID string) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = ? ORDER BY issue_date DESC`
	return s.queryInvoices(query, clientID)
}

// UpdateInvoice overwrites an existing invoice. Returns false when the id
// matched nothing.
func (s *Store) UpdateInvoice(inv *models.Invoice) (bool, error) {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE invoices SET
			invoice_number = ?, title = ?, issue_date = ?, due_date = ?,
			business_name = ?, abn = ?, business_address = ?,
			client_id = ?, client_name = ?, client_address = ?, client_email = ?,
			items = ?, tax_rate = ?, subtotal = ?, tax_amount = ?, total = ?,
			payment_terms = ?, notes = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query,
		inv.InvoiceNumber, inv.Title, inv.IssueDate, inv.DueDate,
		inv.BusinessName, inv.ABN, inv.BusinessAddress,
		inv.ClientID, inv.ClientName, inv.ClientAddress, inv.ClientEmail,
		string(items), inv.TaxRate, inv.Subtotal, inv.TaxAmount, inv.Total,
		inv.PaymentTerms, inv.Notes, inv.Status, inv.UpdatedAt,
		inv.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: invoices.invoice_number") {
			return false, apperr.ErrDuplicateNumber
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteInvoice returns false when the id matched nothing, so callers can
// tell "deleted" from "was already gone".
func (s *Store) DeleteInvoice(id string) (bool, error) {
	res, err := s.DB.Exec(`DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LatestInvoiceNumber returns the number of the most recently created
// invoice, or "" when none exist. The sequencer derives the next number
// from this.
func (s *Store) LatestInvoiceNumber() (string, error) {
	var number string
	err := s.DB.QueryRow(
		`SELECT invoice_number FROM invoices ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return number, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	var inv models.Invoice
	var itemsJSON string
	var dueDate sql.NullTime

	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Title, &inv.IssueDate, &dueDate,
		&inv.BusinessName, &inv.ABN, &inv.BusinessAddress,
		&inv.ClientID, &inv.ClientName, &inv.ClientAddress, &inv.ClientEmail,
		&itemsJSON, &inv.TaxRate, &inv.Subtotal, &inv.TaxAmount, &inv.Total,
		&inv.PaymentTerms, &inv.Notes, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		inv.DueDate = &d
	}
	if err := json.Unmarshal([]byte(itemsJSON), &inv.Items); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Store) queryInvoices(query string, args ...any) ([]models.Invoice, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
