package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how a payment was made.
type Method string

const (
	MethodCash         Method = "CASH"
	MethodCheque       Method = "CHEQUE"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodUPI          Method = "UPI"
	MethodCard         Method = "CARD"
	MethodGateway      Method = "GATEWAY"
	MethodOther        Method = "OTHER"
)

// Payment is a receipt against exactly one invoice. Payments are never
// deleted, only voided, so the audit trail stays intact.
type Payment struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	CustomerID       uuid.UUID
	InvoiceID        uuid.UUID
	CreatedBy        *uuid.UUID
	PaymentNumber    string
	PaymentDate      time.Time
	Amount           decimal.Decimal
	Method           Method
	ReferenceNumber  string
	Notes            string
	GatewayName      string
	GatewayPaymentID string
	GatewayOrderID   string
	GatewayResponse  string
	IsVoided         bool
	VoidedAt         *time.Time
	VoidReason       string
	VoidedBy         *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// InvoiceState is the slice of invoice data the reconciliation logic needs
// to validate a payment against.
type InvoiceState struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Status     string
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	BalanceDue decimal.Decimal
	SentAt     *time.Time
}

// InvoiceUpdate carries the recomputed invoice figures a payment or a void
// writes back. PriorAmountPaid guards the write: the store applies the update
// only while the invoice still shows that figure, so a concurrent payment
// surfaces as a failed write instead of silently clobbering the balance.
type InvoiceUpdate struct {
	PriorAmountPaid decimal.Decimal
	AmountPaid      decimal.Decimal
	BalanceDue      decimal.Decimal
	Status          string
	PaidAt          *time.Time
}

const (
	invoiceDraft         = "DRAFT"
	invoiceSent          = "SENT"
	invoicePaid          = "PAID"
	invoicePartiallyPaid = "PARTIALLY_PAID"
	invoiceVoid          = "VOID"
)
