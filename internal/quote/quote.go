package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a quote. EXPIRED is derived from
// expiry_date at read time and never stored.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusViewed    Status = "VIEWED"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusExpired   Status = "EXPIRED"
	StatusConverted Status = "CONVERTED"
)

// transitions lists the legal source states per operation. Checked once per
// operation instead of ad hoc per call site.
var transitions = map[string][]Status{
	"send":    {StatusDraft, StatusSent},
	"accept":  {StatusSent, StatusViewed},
	"reject":  {StatusSent, StatusViewed},
	"convert": {StatusAccepted},
}

func allows(op string, from Status) bool {
	for _, s := range transitions[op] {
		if s == from {
			return true
		}
	}

	return false
}

// LineItem is a priced snapshot of one quoted line. Amounts are frozen at
// creation and copied verbatim on conversion.
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

// Quote is a proposal document owned by one organization.
type Quote struct {
	ID                 uuid.UUID
	OrganizationID     uuid.UUID
	CustomerID         uuid.UUID
	CreatedBy          *uuid.UUID
	QuoteNumber        string
	Status             Status
	QuoteDate          time.Time
	ExpiryDate         time.Time
	Subtotal           decimal.Decimal
	TaxTotal           decimal.Decimal
	Total              decimal.Decimal
	CurrencyCode       string
	Notes              string
	Terms              string
	SentAt             *time.Time
	ViewedAt           *time.Time
	AcceptedAt         *time.Time
	RejectedAt         *time.Time
	ConvertedAt        *time.Time
	ConvertedInvoiceID *uuid.UUID
	Items              []LineItem
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// EffectiveStatus returns StatusExpired for quotes past expiry that were
// never answered, otherwise the stored status. The stored status is never
// mutated by expiry.
func (q *Quote) EffectiveStatus(today time.Time) Status {
	if (q.Status == StatusSent || q.Status == StatusViewed) && q.ExpiryDate.Before(today) {
		return StatusExpired
	}

	return q.Status
}
