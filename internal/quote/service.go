// Package quote implements the proposal lifecycle: draft, send, accept or
// reject, and one-shot conversion into a draft invoice.
package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=quote
type Repository interface {
	// CreateQuote persists the quote and its line items atomically, assigning
	// the next quote number.
	CreateQuote(ctx context.Context, q *Quote) error
	GetQuote(ctx context.Context, orgID, id uuid.UUID) (*Quote, error)

	// UpdateQuoteState persists status, lifecycle timestamps and notes.
	UpdateQuoteState(ctx context.Context, q *Quote) error

	// ConvertQuote creates the draft invoice with copied line items and marks
	// the quote converted, all in one transaction. It fails with a conflict
	// when the quote was converted concurrently.
	ConvertQuote(ctx context.Context, q *Quote, conv *Conversion) error

	SoftDeleteQuote(ctx context.Context, orgID, id uuid.UUID) error

	ListQuotes(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Quote, error)
	CountQuotes(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
}

// Conversion carries the invoice-side inputs of a quote conversion. Totals
// and line items come from the quote itself.
type Conversion struct {
	InvoiceDate      time.Time
	DueDate          time.Time
	PaymentTermsDays int
	CreatedBy        uuid.UUID

	// InvoiceID is set by the repository once the invoice row exists.
	InvoiceID uuid.UUID
}

type Service struct {
	repo    Repository
	catalog catalog.Reader
}

func NewService(repo Repository, cat catalog.Reader) *Service {
	return &Service{repo: repo, catalog: cat}
}

type LineItemParams struct {
	ItemID      *uuid.UUID
	TaxID       *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

type CreateParams struct {
	CustomerID uuid.UUID
	QuoteDate  time.Time
	ExpiryDate time.Time
	Items      []LineItemParams
	Notes      string
	Terms      string
}

type ListFilter struct {
	Status     *Status
	CustomerID *uuid.UUID
	Skip       int
	Limit      int
}

func validateFilter(filter ListFilter) error {
	if filter.Skip < 0 {
		return fault.Invalid("skip must not be negative")
	}

	if filter.Limit < 1 || filter.Limit > 100 {
		return fault.Invalid("limit must be between 1 and 100")
	}

	return nil
}

// materializeLines resolves catalog references and prices each line. Shared
// between quote and invoice creation via identical semantics.
func (s *Service) materializeLines(ctx context.Context, orgID uuid.UUID, params []LineItemParams) ([]LineItem, decimal.Decimal, decimal.Decimal, error) {
	var (
		items    []LineItem
		subtotal decimal.Decimal
		taxTotal decimal.Decimal
	)

	for idx, p := range params {
		description := p.Description

		if p.ItemID != nil {
			catalogItem, err := s.catalog.Item(ctx, orgID, *p.ItemID)
			if err != nil {
				return nil, decimal.Zero, decimal.Zero, err
			}

			if description == "" {
				description = catalogItem.Name
			}
		}

		if description == "" {
			return nil, decimal.Zero, decimal.Zero, fault.Invalid("line item description is required")
		}

		taxRate := decimal.Zero
		if p.TaxID != nil {
			catalogTax, err := s.catalog.Tax(ctx, orgID, *p.TaxID)
			if err != nil {
				return nil, decimal.Zero, decimal.Zero, err
			}

			taxRate = catalogTax.Rate
		}

		amounts, err := money.CalculateLine(p.Quantity, p.Rate, taxRate)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, err
		}

		items = append(items, LineItem{
			ItemID:      p.ItemID,
			TaxID:       p.TaxID,
			Description: description,
			Quantity:    p.Quantity,
			Rate:        p.Rate,
			Amount:      amounts.Amount,
			TaxRate:     taxRate,
			TaxAmount:   amounts.TaxAmount,
			Total:       amounts.Total,
			SortOrder:   idx,
		})

		subtotal = subtotal.Add(amounts.Amount)
		taxTotal = taxTotal.Add(amounts.TaxAmount)
	}

	return items, subtotal, taxTotal, nil
}

func (s *Service) Create(ctx context.Context, orgID, actorID uuid.UUID, params CreateParams) (*Quote, error) {
	if len(params.Items) == 0 {
		return nil, fault.Invalid("quote requires at least one line item")
	}

	if params.ExpiryDate.Before(params.QuoteDate) {
		return nil, fault.Invalid("expiry date cannot be before quote date")
	}

	cust, err := s.catalog.Customer(ctx, orgID, params.CustomerID)
	if err != nil {
		return nil, err
	}

	items, subtotal, taxTotal, err := s.materializeLines(ctx, orgID, params.Items)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		OrganizationID: orgID,
		CustomerID:     cust.ID,
		CreatedBy:      &actorID,
		Status:         StatusDraft,
		QuoteDate:      params.QuoteDate,
		ExpiryDate:     params.ExpiryDate,
		Subtotal:       subtotal,
		TaxTotal:       taxTotal,
		Total:          subtotal.Add(taxTotal),
		CurrencyCode:   cust.CurrencyCode,
		Notes:          params.Notes,
		Terms:          params.Terms,
		Items:          items,
	}

	if err := s.repo.CreateQuote(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Quote, error) {
	return s.repo.GetQuote(ctx, orgID, id)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Quote, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	quotes, err := s.repo.ListQuotes(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountQuotes(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

// Send marks a draft quote sent. Re-sending an already sent quote is a no-op
// and leaves sent_at untouched.
func (s *Service) Send(ctx context.Context, orgID, id uuid.UUID) (*Quote, error) {
	q, err := s.repo.GetQuote(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !allows("send", q.Status) {
		return nil, fault.Invalidf("cannot send quote with status %s", q.Status)
	}

	if q.Status == StatusSent {
		return q, nil
	}

	now := time.Now().UTC()
	q.Status = StatusSent
	q.SentAt = &now

	if err := s.repo.UpdateQuoteState(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Accept(ctx context.Context, orgID, id uuid.UUID, notes string) (*Quote, error) {
	q, err := s.repo.GetQuote(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !allows("accept", q.Status) {
		return nil, fault.Invalidf("cannot accept quote with status %s", q.Status)
	}

	now := time.Now().UTC()
	if q.ExpiryDate.Before(now.Truncate(24 * time.Hour)) {
		return nil, fault.Invalid("cannot accept expired quote")
	}

	q.Status = StatusAccepted
	q.AcceptedAt = &now

	if notes != "" {
		q.Notes += "\n\nAcceptance Notes: " + notes
	}

	if err := s.repo.UpdateQuoteState(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Reject(ctx context.Context, orgID, id uuid.UUID, reason string) (*Quote, error) {
	if reason == "" {
		return nil, fault.Invalid("rejection reason is required")
	}

	q, err := s.repo.GetQuote(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !allows("reject", q.Status) {
		return nil, fault.Invalidf("cannot reject quote with status %s", q.Status)
	}

	now := time.Now().UTC()
	q.Status = StatusRejected
	q.RejectedAt = &now
	q.Notes += "\n\nRejection Reason: " + reason

	if err := s.repo.UpdateQuoteState(ctx, q); err != nil {
		return nil, err
	}

	return q, nil
}

// Convert turns an accepted quote into a draft invoice exactly once. Line
// items and totals are copied verbatim without recalculation.
func (s *Service) Convert(ctx context.Context, orgID, id, actorID uuid.UUID) (*Quote, error) {
	q, err := s.repo.GetQuote(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !allows("convert", q.Status) {
		return nil, fault.Invalid("only accepted quotes can be converted to invoices")
	}

	if q.ConvertedInvoiceID != nil {
		return nil, fault.Invalid("quote has already been converted to invoice")
	}

	cust, err := s.catalog.Customer(ctx, orgID, q.CustomerID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	conv := &Conversion{
		InvoiceDate:      today,
		DueDate:          today,
		PaymentTermsDays: cust.PaymentTermsDays,
		CreatedBy:        actorID,
	}

	if err := s.repo.ConvertQuote(ctx, q, conv); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetQuote(ctx, orgID, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteQuote(ctx, orgID, id)
}
