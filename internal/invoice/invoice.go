package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an invoice. OVERDUE is derived from
// due_date at read time and never stored; payment states are written by the
// payment engine.
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusSent          Status = "SENT"
	StatusViewed        Status = "VIEWED"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusPaid          Status = "PAID"
	StatusOverdue       Status = "OVERDUE"
	StatusVoid          Status = "VOID"
)

// transitions lists the legal source states per operation.
var transitions = map[string][]Status{
	"send": {StatusDraft, StatusSent},
	"void": {StatusDraft, StatusSent, StatusViewed, StatusPartiallyPaid, StatusOverdue},
}

func allows(op string, from Status) bool {
	for _, s := range transitions[op] {
		if s == from {
			return true
		}
	}

	return false
}

// LineItem is a priced snapshot of one billed line.
type LineItem struct {
	ID          int64
	ItemID      *uuid.UUID
	TaxID       *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
	SortOrder   int
}

// Invoice is a billing document owned by one organization.
type Invoice struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	CustomerID       uuid.UUID
	CreatedBy        *uuid.UUID
	InvoiceNumber    string
	Status           Status
	InvoiceDate      time.Time
	DueDate          time.Time
	Subtotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	Total            decimal.Decimal
	AmountPaid       decimal.Decimal
	BalanceDue       decimal.Decimal
	CurrencyCode     string
	PaymentTermsDays int
	Notes            string
	InternalNotes    string
	Terms            string
	SentAt           *time.Time
	ViewedAt         *time.Time
	PaidAt           *time.Time
	VoidedAt         *time.Time
	VoidReason       string
	Items            []LineItem
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// EffectiveStatus returns StatusOverdue for unpaid invoices past their due
// date, otherwise the stored status. The stored status is never mutated by
// the passage of time.
func (inv *Invoice) EffectiveStatus(today time.Time) Status {
	switch inv.Status {
	case StatusSent, StatusViewed, StatusPartiallyPaid:
		if inv.DueDate.Before(today) && inv.BalanceDue.Sign() > 0 {
			return StatusOverdue
		}
	}

	return inv.Status
}
