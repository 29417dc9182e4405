// Package invoice orchestrates invoice numbering, GST computation and
// persistence. Totals are always recomputed server-side from the line
// items; client-supplied totals are never trusted.
package invoice

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
	"github.com/Rickychen930/sing4you-sub002/internal/fiscal"
	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

const (
	defaultTitle  = "Tax Invoice"
	firstSequence = 1001
)

// LineItemInput is a line item as submitted by the admin UI. TaxIncluded
// is a pointer so an omitted flag defaults to true.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxIncluded *bool   `json:"taxIncluded"`
}

// Draft is the payload for creating an invoice.
type Draft struct {
	InvoiceNumber   string          `json:"invoiceNumber"`
	Title           string          `json:"title"`
	IssueDate       *time.Time      `json:"issueDate"`
	DueDate         *time.Time      `json:"dueDate"`
	BusinessName    string          `json:"businessName"`
	ABN             string          `json:"abn"`
	BusinessAddress string          `json:"businessAddress"`
	ClientID        string          `json:"clientId"`
	ClientName      string          `json:"clientName"`
	ClientAddress   string          `json:"clientAddress"`
	ClientEmail     string          `json:"clientEmail"`
	Items           []LineItemInput `json:"items"`
	TaxRate         *float64        `json:"taxRate"`
	PaymentTerms    string          `json:"paymentTerms"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
}

// Patch is a partial update. Nil fields keep the stored value; in
// particular omitting Items or TaxRate recomputes totals over the
// existing items at the existing rate.
type Patch struct {
	Title           *string         `json:"title"`
	IssueDate       *time.Time      `json:"issueDate"`
	DueDate         *time.Time      `json:"dueDate"`
	BusinessName    *string         `json:"businessName"`
	ABN             *string         `json:"abn"`
	BusinessAddress *string         `json:"businessAddress"`
	ClientID        *string         `json:"clientId"`
	ClientName      *string         `json:"clientName"`
	ClientAddress   *string         `json:"clientAddress"`
	ClientEmail     *string         `json:"clientEmail"`
	Items           []LineItemInput `json:"items"`
	TaxRate         *float64        `json:"taxRate"`
	PaymentTerms    *string         `json:"paymentTerms"`
	Notes           *string         `json:"notes"`
	Status          *string         `json:"status"`
}

// Service coordinates the sequencer, the fiscal calculator and the
// repository. The store field is the concrete persistent store on
// purpose: the read-only fallback store must never carry invoice writes,
// so it cannot even be injected here. A nil store means persistence is
// unavailable and every mutation fails fast.
type Service struct {
	store *store.Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(st *store.Store, log *slog.Logger) *Service {
	return &Service{store: st, log: log, now: time.Now}
}

var errNotFound = apperr.New(apperr.NotFound, "invoice not found")

// Create validates the draft, assigns a number if absent, computes totals
// and persists. Nothing is written when validation fails, and nothing is
// fabricated when the store is unavailable.
func (s *Service) Create(draft *Draft) (*models.Invoice, error) {
	if s.store == nil {
		return nil, apperr.ErrStoreUnavailable
	}

	items, err := validateDraft(draft)
	if err != nil {
		return nil, err
	}

	taxRate := fiscal.DefaultTaxRate
	if draft.TaxRate != nil {
		taxRate = *draft.TaxRate
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	now := s.now()
	inv := &models.Invoice{
		ID:              uuid.New().String(),
		InvoiceNumber:   draft.InvoiceNumber,
		Title:           draft.Title,
		IssueDate:       now,
		DueDate:         draft.DueDate,
		BusinessName:    strings.TrimSpace(draft.BusinessName),
		ABN:             strings.TrimSpace(draft.ABN),
		BusinessAddress: draft.BusinessAddress,
		ClientID:        draft.ClientID,
		ClientName:      strings.TrimSpace(draft.ClientName),
		ClientAddress:   draft.ClientAddress,
		ClientEmail:     draft.ClientEmail,
		Items:           items,
		TaxRate:         taxRate,
		PaymentTerms:    draft.PaymentTerms,
		Notes:           draft.Notes,
		Status:          draft.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if inv.Title == "" {
		inv.Title = defaultTitle
	}
	if draft.IssueDate != nil {
		inv.IssueDate = *draft.IssueDate
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if !models.ValidInvoiceStatus(inv.Status) {
		return nil, apperr.New(apperr.Validation, "invalid invoice status "+strconv.Quote(inv.Status))
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = s.NextNumber()
	}

	totals := fiscal.ComputeTotals(inv.Items, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total

	if err := s.store.CreateInvoice(inv); err != nil {
		return nil, err
	}

	s.log.Info("invoice created", "id", inv.ID, "number", inv.InvoiceNumber, "total", inv.Total)
	return inv, nil
}

// Update merges the patch into the stored invoice, recomputes totals over
// the resulting item set and persists the merge.
func (s *Service) Update(id string, patch *Patch) (*models.Invoice, error) {
	if s.store == nil {
		return nil, apperr.ErrStoreUnavailable
	}

	inv, err := s.store.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errNotFound
	}

	if err := applyPatch(inv, patch); err != nil {
		return nil, err
	}

	if err := validateInvoice(inv); err != nil {
		return nil, err
	}

	totals := fiscal.ComputeTotals(inv.Items, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.UpdatedAt = s.now()

	ok, err := s.store.UpdateInvoice(inv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotFound
	}
	return inv, nil
}

func (s *Service) Delete(id string) error {
	if s.store == nil {
		return apperr.ErrStoreUnavailable
	}
	ok, err := s.store.DeleteInvoice(id)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound
	}
	s.log.Info("invoice deleted", "id", id)
	return nil
}

func (s *Service) Get(id string) (*models.Invoice, error) {
	if s.store == nil {
		return nil, apperr.ErrStoreUnavailable
	}
	inv, err := s.store.GetInvoiceByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errNotFound
	}
	return inv, nil
}

func (s *Service) List() ([]models.Invoice, error) {
	if s.store == nil {
		return nil, apperr.ErrStoreUnavailable
	}
	return s.store.GetAllInvoices()
}

func (s *Service) ListByClient(clientID string) ([]models.Invoice, error) {
	if s.store == nil {
		return nil, apperr.ErrStoreUnavailable
	}
	return s.store.GetInvoicesByClient(clientID)
}

// NextNumber derives the next invoice number from the most recently
// created invoice: INV-<year>-<seq>, sequence starting at 1001 per
// calendar year. A prefix mismatch (first invoice of a new year) resets
// the sequence. This is advisory, not transactional — two concurrent
// creates can derive the same number, and the store's UNIQUE constraint
// is what actually rejects the collision.
//
// When the store is unavailable the first number of the current year is
// returned so the admin UI always has something to prefill.
func (s *Service) NextNumber() string {
	prefix := fmt.Sprintf("INV-%d-", s.now().Year())

	if s.store == nil {
		return prefix + strconv.Itoa(firstSequence)
	}

	latest, err := s.store.LatestInvoiceNumber()
	if err != nil {
		s.log.Warn("failed to read latest invoice number, using first of year", "error", err)
		return prefix + strconv.Itoa(firstSequence)
	}
	if !strings.HasPrefix(latest, prefix) {
		return prefix + strconv.Itoa(firstSequence)
	}

	// Unparsable suffixes count as 0 rather than failing the create.
	seq, _ := strconv.Atoi(strings.TrimPrefix(latest, prefix))
	return prefix + strconv.Itoa(seq+1)
}

func validateDraft(draft *Draft) ([]models.LineItem, error) {
	var missing []string
	if strings.TrimSpace(draft.BusinessName) == "" {
		missing = append(missing, "businessName")
	}
	if strings.TrimSpace(draft.ABN) == "" {
		missing = append(missing, "abn")
	}
	if strings.TrimSpace(draft.ClientName) == "" {
		missing = append(missing, "clientName")
	}
	if len(missing) > 0 {
		return nil, apperr.New(apperr.Validation, "missing required fields: "+strings.Join(missing, ", "))
	}

	return convertItems(draft.Items)
}

func convertItems(inputs []LineItemInput) ([]models.LineItem, error) {
	if len(inputs) == 0 {
		return nil, apperr.New(apperr.Validation, "at least one line item is required")
	}

	items := make([]models.LineItem, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("line item %d: description is required", i+1))
		}
		if in.Quantity < 0 {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("line item %d: quantity cannot be negative", i+1))
		}
		if in.UnitPrice < 0 {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("line item %d: unit price cannot be negative", i+1))
		}
		taxIncluded := true
		if in.TaxIncluded != nil {
			taxIncluded = *in.TaxIncluded
		}
		items = append(items, models.LineItem{
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TaxIncluded: taxIncluded,
		})
	}
	return items, nil
}

func validateInvoice(inv *models.Invoice) error {
	if inv.BusinessName == "" || inv.ABN == "" || inv.ClientName == "" {
		return apperr.New(apperr.Validation, "businessName, abn and clientName are required")
	}
	if len(inv.Items) == 0 {
		return apperr.New(apperr.Validation, "at least one line item is required")
	}
	if !models.ValidInvoiceStatus(inv.Status) {
		return apperr.New(apperr.Validation, "invalid invoice status "+strconv.Quote(inv.Status))
	}
	return validateTaxRate(inv.TaxRate)
}

// validateTaxRate bounds the rate to [0, 1). A rate of -1 would make the
// tax-included divisor 1+rate collapse to zero.
func validateTaxRate(rate float64) error {
	if rate < 0 || rate >= 1 {
		return apperr.New(apperr.Validation, "tax rate must be at least 0 and below 1")
	}
	return nil
}

func applyPatch(inv *models.Invoice, patch *Patch) error {
	if patch.Title != nil {
		inv.Title = *patch.Title
	}
	if patch.IssueDate != nil {
		inv.IssueDate = *patch.IssueDate
	}
	if patch.DueDate != nil {
		inv.DueDate = patch.DueDate
	}
	if patch.BusinessName != nil {
		inv.BusinessName = strings.TrimSpace(*patch.BusinessName)
	}
	if patch.ABN != nil {
		inv.ABN = strings.TrimSpace(*patch.ABN)
	}
	if patch.BusinessAddress != nil {
		inv.BusinessAddress = *patch.BusinessAddress
	}
	if patch.ClientID != nil {
		inv.ClientID = *patch.ClientID
	}
	if patch.ClientName != nil {
		inv.ClientName = strings.TrimSpace(*patch.ClientName)
	}
	if patch.ClientAddress != nil {
		inv.ClientAddress = *patch.ClientAddress
	}
	if patch.ClientEmail != nil {
		inv.ClientEmail = *patch.ClientEmail
	}
	if patch.Items != nil {
		items, err := convertItems(patch.Items)
		if err != nil {
			return err
		}
		inv.Items = items
	}
	if patch.TaxRate != nil {
		inv.TaxRate = *patch.TaxRate
	}
	if patch.PaymentTerms != nil {
		inv.PaymentTerms = *patch.PaymentTerms
	}
	if patch.Notes != nil {
		inv.Notes = *patch.Notes
	}
	if patch.Status != nil {
		inv.Status = *patch.Status
	}
	return nil
}
