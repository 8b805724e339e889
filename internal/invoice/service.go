// Package invoice implements the billing document lifecycle from draft
// through send and void. Balance effects of payments live in the payment
// package; this one never touches amount_paid directly.
package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// CreateInvoice persists the invoice and its line items atomically,
	// assigning the next invoice number.
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, orgID, id uuid.UUID) (*Invoice, error)

	// UpdateInvoiceState persists status, lifecycle timestamps and void
	// metadata.
	UpdateInvoiceState(ctx context.Context, inv *Invoice) error

	SoftDeleteInvoice(ctx context.Context, orgID, id uuid.UUID) error

	ListInvoices(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Invoice, error)
	CountInvoices(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
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
	CustomerID    uuid.UUID
	InvoiceDate   time.Time
	DueDate       time.Time
	Items         []LineItemParams
	Notes         string
	InternalNotes string
	Terms         string
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

func (s *Service) Create(ctx context.Context, orgID, actorID uuid.UUID, params CreateParams) (*Invoice, error) {
	if len(params.Items) == 0 {
		return nil, fault.Invalid("invoice requires at least one line item")
	}

	if params.DueDate.Before(params.InvoiceDate) {
		return nil, fault.Invalid("due date cannot be before invoice date")
	}

	cust, err := s.catalog.Customer(ctx, orgID, params.CustomerID)
	if err != nil {
		return nil, err
	}

	items, subtotal, taxTotal, err := s.materializeLines(ctx, orgID, params.Items)
	if err != nil {
		return nil, err
	}

	total := subtotal.Add(taxTotal)

	inv := &Invoice{
		OrganizationID:   orgID,
		CustomerID:       cust.ID,
		CreatedBy:        &actorID,
		Status:           StatusDraft,
		InvoiceDate:      params.InvoiceDate,
		DueDate:          params.DueDate,
		Subtotal:         subtotal,
		TaxTotal:         taxTotal,
		Total:            total,
		AmountPaid:       decimal.Zero,
		BalanceDue:       total,
		CurrencyCode:     cust.CurrencyCode,
		PaymentTermsDays: cust.PaymentTermsDays,
		Notes:            params.Notes,
		InternalNotes:    params.InternalNotes,
		Terms:            params.Terms,
		Items:            items,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, orgID, id)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Invoice, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	invoices, err := s.repo.ListInvoices(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountInvoices(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Send marks a draft invoice sent. Re-sending an already sent invoice is a
// no-op and leaves sent_at untouched.
func (s *Service) Send(ctx context.Context, orgID, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if !allows("send", inv.Status) {
		return nil, fault.Invalidf("cannot send invoice with status %s", inv.Status)
	}

	if inv.Status == StatusSent {
		return inv, nil
	}

	now := time.Now().UTC()
	inv.Status = StatusSent
	inv.SentAt = &now

	if err := s.repo.UpdateInvoiceState(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Void cancels an invoice. A paid invoice cannot be voided until its
// payments are voided first.
func (s *Service) Void(ctx context.Context, orgID, id uuid.UUID, reason string) (*Invoice, error) {
	if reason == "" {
		return nil, fault.Invalid("void reason is required")
	}

	inv, err := s.repo.GetInvoice(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == StatusVoid {
		return nil, fault.Invalid("invoice is already void")
	}

	if inv.Status == StatusPaid {
		return nil, fault.Invalid("cannot void a paid invoice. Please void the payments first.")
	}

	if !allows("void", inv.Status) {
		return nil, fault.Invalidf("cannot void invoice with status %s", inv.Status)
	}

	now := time.Now().UTC()
	inv.Status = StatusVoid
	inv.VoidedAt = &now
	inv.VoidReason = reason

	if err := s.repo.UpdateInvoiceState(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Delete soft-deletes an invoice. Financially active invoices stay: only
// drafts and voided invoices with nothing paid against them can go.
func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	inv, err := s.repo.GetInvoice(ctx, orgID, id)
	if err != nil {
		return err
	}

	if inv.Status != StatusDraft && inv.Status != StatusVoid {
		return fault.Invalid("only draft or void invoices can be deleted")
	}

	if inv.AmountPaid.Sign() > 0 {
		return fault.Invalid("cannot delete an invoice with recorded payments")
	}

	return s.repo.SoftDeleteInvoice(ctx, orgID, id)
}
