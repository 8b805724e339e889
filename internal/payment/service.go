// Package payment reconciles receipts against invoice balances. Every
// balance effect runs inside one repository transaction so a payment can
// never exist without its invoice reflecting it.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	GetPayment(ctx context.Context, orgID, id uuid.UUID) (*Payment, error)
	GetInvoiceState(ctx context.Context, orgID, invoiceID uuid.UUID) (*InvoiceState, error)

	// RecordPayment assigns the next payment number, inserts the payment and
	// writes the recomputed invoice figures atomically. It fails when the
	// invoice changed since inv was computed or when the gateway payment id
	// was already recorded.
	RecordPayment(ctx context.Context, p *Payment, inv InvoiceUpdate) error

	// VoidPayment marks the payment voided and writes the restored invoice
	// figures atomically.
	VoidPayment(ctx context.Context, p *Payment, inv InvoiceUpdate) error

	// FindByGatewayID looks up a payment by its external gateway payment id.
	FindByGatewayID(ctx context.Context, orgID uuid.UUID, gatewayPaymentID string) (*Payment, error)

	ListPayments(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Payment, error)
	CountPayments(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RecordParams struct {
	InvoiceID       uuid.UUID
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Method          Method
	ReferenceNumber string
	Notes           string
}

type GatewayParams struct {
	InvoiceID        uuid.UUID
	PaymentDate      time.Time
	Amount           decimal.Decimal
	GatewayName      string
	GatewayPaymentID string
	GatewayOrderID   string
	GatewayResponse  string
}

type ListFilter struct {
	InvoiceID  *uuid.UUID
	CustomerID *uuid.UUID
	IsVoided   *bool
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

func validateTarget(inv *InvoiceState, amount decimal.Decimal, allowDraft bool) error {
	if inv.Status == invoiceVoid {
		return fault.Invalid("cannot record payment for void invoice")
	}

	if !allowDraft && inv.Status == invoiceDraft {
		return fault.Invalid("cannot record payment for draft invoice. Please send the invoice first.")
	}

	if amount.Sign() <= 0 {
		return fault.Invalid("payment amount must be greater than zero")
	}

	if amount.GreaterThan(inv.BalanceDue) {
		return fault.Invalidf("payment amount (%s) exceeds balance due (%s)", amount, inv.BalanceDue)
	}

	return nil
}

// applyEffect recomputes the invoice figures after amount is received. The
// invoice becomes PAID the moment the balance reaches zero, PARTIALLY_PAID
// otherwise.
func applyEffect(inv *InvoiceState, amount decimal.Decimal) InvoiceUpdate {
	paid := inv.AmountPaid.Add(amount)

	upd := InvoiceUpdate{
		PriorAmountPaid: inv.AmountPaid,
		AmountPaid:      paid,
		BalanceDue:      inv.Total.Sub(paid),
		Status:          invoicePartiallyPaid,
	}

	if upd.BalanceDue.IsZero() {
		now := time.Now().UTC()
		upd.Status = invoicePaid
		upd.PaidAt = &now
	}

	return upd
}

// reverseEffect recomputes the invoice figures after a payment is voided.
// When nothing remains paid the invoice returns to SENT (or DRAFT if it was
// never sent); otherwise it stays PARTIALLY_PAID. paid_at is always cleared.
func reverseEffect(inv *InvoiceState, amount decimal.Decimal) InvoiceUpdate {
	paid := inv.AmountPaid.Sub(amount)

	upd := InvoiceUpdate{
		PriorAmountPaid: inv.AmountPaid,
		AmountPaid:      paid,
		BalanceDue:      inv.Total.Sub(paid),
		Status:          invoicePartiallyPaid,
	}

	if paid.IsZero() {
		upd.Status = invoiceDraft
		if inv.SentAt != nil {
			upd.Status = invoiceSent
		}
	}

	return upd
}

// Record applies a manual payment to a sent invoice.
func (s *Service) Record(ctx context.Context, orgID, actorID uuid.UUID, params RecordParams) (*Payment, error) {
	inv, err := s.repo.GetInvoiceState(ctx, orgID, params.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := validateTarget(inv, params.Amount, false); err != nil {
		return nil, err
	}

	p := &Payment{
		OrganizationID:  orgID,
		CustomerID:      inv.CustomerID,
		InvoiceID:       inv.ID,
		CreatedBy:       &actorID,
		PaymentDate:     params.PaymentDate,
		Amount:          params.Amount,
		Method:          params.Method,
		ReferenceNumber: params.ReferenceNumber,
		Notes:           params.Notes,
	}

	if err := s.repo.RecordPayment(ctx, p, applyEffect(inv, params.Amount)); err != nil {
		return nil, err
	}

	return p, nil
}

// RecordGateway applies a gateway-confirmed payment. The operation is
// idempotent on the gateway payment id: replaying a webhook returns the
// already-recorded payment without touching the balance again.
func (s *Service) RecordGateway(ctx context.Context, orgID uuid.UUID, params GatewayParams) (*Payment, error) {
	if params.GatewayPaymentID == "" {
		return nil, fault.Invalid("gateway payment id is required")
	}

	existing, err := s.repo.FindByGatewayID(ctx, orgID, params.GatewayPaymentID)
	if err != nil && !fault.IsKind(err, fault.KindNotFound) {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	inv, err := s.repo.GetInvoiceState(ctx, orgID, params.InvoiceID)
	if err != nil {
		return nil, err
	}

	if err := validateTarget(inv, params.Amount, true); err != nil {
		return nil, err
	}

	p := &Payment{
		OrganizationID:   orgID,
		CustomerID:       inv.CustomerID,
		InvoiceID:        inv.ID,
		PaymentDate:      params.PaymentDate,
		Amount:           params.Amount,
		Method:           MethodGateway,
		ReferenceNumber:  params.GatewayPaymentID,
		Notes:            "Payment via " + params.GatewayName,
		GatewayName:      params.GatewayName,
		GatewayPaymentID: params.GatewayPaymentID,
		GatewayOrderID:   params.GatewayOrderID,
		GatewayResponse:  params.GatewayResponse,
	}

	err = s.repo.RecordPayment(ctx, p, applyEffect(inv, params.Amount))
	if err != nil {
		// A concurrent delivery of the same webhook may have won the race:
		// either its insert took the gateway id (conflict) or its balance
		// write invalidated ours. The winner's payment is the canonical one.
		if fault.IsKind(err, fault.KindConflict) || fault.IsKind(err, fault.KindInvalid) {
			if winner, findErr := s.repo.FindByGatewayID(ctx, orgID, params.GatewayPaymentID); findErr == nil {
				return winner, nil
			}
		}

		return nil, err
	}

	return p, nil
}

// Void reverses a payment's balance effect. The payment row is retained for
// audit.
func (s *Service) Void(ctx context.Context, orgID, actorID, id uuid.UUID, reason string) (*Payment, error) {
	if reason == "" {
		return nil, fault.Invalid("void reason is required")
	}

	p, err := s.repo.GetPayment(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if p.IsVoided {
		return nil, fault.Invalid("payment is already voided")
	}

	inv, err := s.repo.GetInvoiceState(ctx, orgID, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.IsVoided = true
	p.VoidedAt = &now
	p.VoidReason = reason
	p.VoidedBy = &actorID

	if err := s.repo.VoidPayment(ctx, p, reverseEffect(inv, p.Amount)); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, orgID, id)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Payment, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	payments, err := s.repo.ListPayments(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountPayments(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
