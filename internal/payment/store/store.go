package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/payment"
	"github.com/quillbooks/quillbooks/internal/sequence"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const paymentColumns = `
	id, organization_id, customer_id, invoice_id, created_by, payment_number,
	payment_date, amount, payment_method, COALESCE(reference_number, ''),
	COALESCE(notes, ''), COALESCE(gateway_name, ''), COALESCE(gateway_payment_id, ''),
	COALESCE(gateway_order_id, ''), COALESCE(gateway_response, ''),
	is_voided, voided_at, COALESCE(void_reason, ''), voided_by,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var p payment.Payment

	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.CustomerID, &p.InvoiceID, &p.CreatedBy, &p.PaymentNumber,
		&p.PaymentDate, &p.Amount, &p.Method, &p.ReferenceNumber,
		&p.Notes, &p.GatewayName, &p.GatewayPaymentID,
		&p.GatewayOrderID, &p.GatewayResponse,
		&p.IsVoided, &p.VoidedAt, &p.VoidReason, &p.VoidedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) GetPayment(ctx context.Context, orgID, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1 AND organization_id = $2`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("payment not found")
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) GetInvoiceState(ctx context.Context, orgID, invoiceID uuid.UUID) (*payment.InvoiceState, error) {
	query := `
		SELECT id, customer_id, status, total, amount_paid, balance_due, sent_at
		FROM invoices
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	var inv payment.InvoiceState

	err := s.db.QueryRowContext(ctx, query, invoiceID, orgID).Scan(
		&inv.ID, &inv.CustomerID, &inv.Status, &inv.Total, &inv.AmountPaid, &inv.BalanceDue, &inv.SentAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("invoice not found")
		}

		return nil, fmt.Errorf("getting invoice state: %w", err)
	}

	return &inv, nil
}

func (s *Store) FindByGatewayID(ctx context.Context, orgID uuid.UUID, gatewayPaymentID string) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE organization_id = $1 AND gateway_payment_id = $2`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, orgID, gatewayPaymentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("payment not found")
		}

		return nil, fmt.Errorf("finding payment by gateway id: %w", err)
	}

	return p, nil
}

// RecordPayment writes the recomputed invoice figures and inserts the
// receipt row in one transaction. The invoice write is guarded on amount_paid
// still matching the figure the caller computed from, so two concurrent
// payments can never overdraw the balance: the second one sees zero rows
// updated and fails with the reason classifyApplyFailure finds.
func (s *Store) RecordPayment(ctx context.Context, p *payment.Payment, inv payment.InvoiceUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	number, err := sequence.Next(ctx, tx, p.OrganizationID, sequence.Payment)
	if err != nil {
		return err
	}
	p.PaymentNumber = number

	applyQuery := `
		UPDATE invoices SET
			amount_paid = $1,
			balance_due = $2,
			status = $3,
			paid_at = $4,
			updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
			AND amount_paid = $7
			AND status NOT IN ('DRAFT', 'VOID')
			AND NOT is_deleted
	`

	result, err := tx.ExecContext(ctx, applyQuery,
		inv.AmountPaid, inv.BalanceDue, inv.Status, inv.PaidAt,
		p.InvoiceID, p.OrganizationID, inv.PriorAmountPaid,
	)
	if err != nil {
		return fmt.Errorf("applying payment to invoice: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking balance update: %w", err)
	}

	if rows == 0 {
		return s.classifyApplyFailure(ctx, tx, p)
	}

	insertQuery := `
		INSERT INTO payments (
			organization_id, customer_id, invoice_id, created_by, payment_number,
			payment_date, amount, payment_method, reference_number, notes,
			gateway_name, gateway_payment_id, gateway_order_id, gateway_response,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''),
			NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
			NOW(), NOW()
		)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, insertQuery,
		p.OrganizationID, p.CustomerID, p.InvoiceID, p.CreatedBy, p.PaymentNumber,
		p.PaymentDate, p.Amount, p.Method, p.ReferenceNumber, p.Notes,
		p.GatewayName, p.GatewayPaymentID, p.GatewayOrderID, p.GatewayResponse,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fault.Conflict("gateway payment already recorded")
		}

		return fmt.Errorf("creating payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}

// classifyApplyFailure re-reads the invoice after the guarded update matched
// nothing, so the caller gets the actual reason instead of a generic
// conflict: the invoice may be gone, its balance may no longer cover the
// amount, or it simply changed underneath us.
func (s *Store) classifyApplyFailure(ctx context.Context, tx *sql.Tx, p *payment.Payment) error {
	query := `
		SELECT balance_due
		FROM invoices
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	var balance decimal.Decimal

	err := tx.QueryRowContext(ctx, query, p.InvoiceID, p.OrganizationID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return fault.NotFound("invoice not found")
		}

		return fmt.Errorf("re-reading invoice: %w", err)
	}

	if p.Amount.GreaterThan(balance) {
		return fault.Invalidf("payment amount (%s) exceeds balance due (%s)", p.Amount, balance)
	}

	return fault.Conflict("invoice changed, payment not applied")
}

// VoidPayment restores the invoice figures and stamps the void metadata in
// one transaction. The payment update is guarded on is_voided so a double
// void applies the reversal only once; the invoice write is guarded on
// amount_paid like RecordPayment's.
func (s *Store) VoidPayment(ctx context.Context, p *payment.Payment, inv payment.InvoiceUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning void tx: %w", err)
	}
	defer tx.Rollback()

	voidQuery := `
		UPDATE payments SET
			is_voided = TRUE, voided_at = $1, void_reason = $2, voided_by = $3, updated_at = NOW()
		WHERE id = $4 AND organization_id = $5 AND NOT is_voided
	`

	result, err := tx.ExecContext(ctx, voidQuery, p.VoidedAt, p.VoidReason, p.VoidedBy, p.ID, p.OrganizationID)
	if err != nil {
		return fmt.Errorf("voiding payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking payment void: %w", err)
	}

	if rows == 0 {
		return fault.Invalid("payment is already voided")
	}

	reverseQuery := `
		UPDATE invoices SET
			amount_paid = $1,
			balance_due = $2,
			status = $3,
			paid_at = NULL,
			updated_at = NOW()
		WHERE id = $4 AND organization_id = $5 AND amount_paid = $6
	`

	result, err = tx.ExecContext(ctx, reverseQuery,
		inv.AmountPaid, inv.BalanceDue, inv.Status,
		p.InvoiceID, p.OrganizationID, inv.PriorAmountPaid,
	)
	if err != nil {
		return fmt.Errorf("reversing invoice balance: %w", err)
	}

	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking balance reversal: %w", err)
	}

	if rows == 0 {
		return fault.Conflict("invoice changed, void not applied")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing void: %w", err)
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter payment.ListFilter) (string, []any) {
	clauses := []string{"organization_id = $1"}
	args := []any{orgID}

	if filter.InvoiceID != nil {
		args = append(args, *filter.InvoiceID)
		clauses = append(clauses, "invoice_id = $"+strconv.Itoa(len(args)))
	}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, "customer_id = $"+strconv.Itoa(len(args)))
	}

	if filter.IsVoided != nil {
		args = append(args, *filter.IsVoided)
		clauses = append(clauses, "is_voided = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Store) ListPayments(ctx context.Context, orgID uuid.UUID, filter payment.ListFilter) ([]*payment.Payment, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (s *Store) CountPayments(ctx context.Context, orgID uuid.UUID, filter payment.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return total, nil
}
