package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/invoice"
	"github.com/quillbooks/quillbooks/internal/sequence"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const invoiceColumns = `
	id, organization_id, customer_id, created_by, invoice_number, status,
	invoice_date, due_date, subtotal, tax_total, total, amount_paid, balance_due,
	currency_code, payment_terms_days, COALESCE(notes, ''),
	COALESCE(internal_notes, ''), COALESCE(terms_and_conditions, ''),
	sent_at, viewed_at, paid_at, voided_at, COALESCE(void_reason, ''),
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	err := row.Scan(
		&inv.ID, &inv.OrganizationID, &inv.CustomerID, &inv.CreatedBy, &inv.InvoiceNumber, &inv.Status,
		&inv.InvoiceDate, &inv.DueDate, &inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
		&inv.CurrencyCode, &inv.PaymentTermsDays, &inv.Notes,
		&inv.InternalNotes, &inv.Terms,
		&inv.SentAt, &inv.ViewedAt, &inv.PaidAt, &inv.VoidedAt, &inv.VoidReason,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning invoice tx: %w", err)
	}
	defer tx.Rollback()

	number, err := sequence.Next(ctx, tx, inv.OrganizationID, sequence.Invoice)
	if err != nil {
		return err
	}
	inv.InvoiceNumber = number

	query := `
		INSERT INTO invoices (
			organization_id, customer_id, created_by, invoice_number, status,
			invoice_date, due_date, subtotal, tax_total, total, amount_paid,
			balance_due, currency_code, payment_terms_days, notes,
			internal_notes, terms_and_conditions, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			NULLIF($15, ''), NULLIF($16, ''), NULLIF($17, ''), NOW(), NOW()
		)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.OrganizationID, inv.CustomerID, inv.CreatedBy, inv.InvoiceNumber, inv.Status,
		inv.InvoiceDate, inv.DueDate, inv.Subtotal, inv.TaxTotal, inv.Total, inv.AmountPaid,
		inv.BalanceDue, inv.CurrencyCode, inv.PaymentTermsDays, inv.Notes,
		inv.InternalNotes, inv.Terms,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (
			invoice_id, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	for i := range inv.Items {
		li := &inv.Items[i]

		err := tx.QueryRowContext(ctx, itemQuery,
			inv.ID, li.ItemID, li.TaxID, li.Description, li.Quantity, li.Rate, li.Amount,
			li.TaxRate, li.TaxAmount, li.Total, li.SortOrder,
		).Scan(&li.ID)
		if err != nil {
			return fmt.Errorf("creating invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

func (s *Store) loadItems(ctx context.Context, invoiceID uuid.UUID) ([]invoice.LineItem, error) {
	query := `
		SELECT id, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY sort_order ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice items: %w", err)
	}
	defer rows.Close()

	var items []invoice.LineItem

	for rows.Next() {
		var li invoice.LineItem

		err := rows.Scan(
			&li.ID, &li.ItemID, &li.TaxID, &li.Description, &li.Quantity, &li.Rate,
			&li.Amount, &li.TaxRate, &li.TaxAmount, &li.Total, &li.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}

		items = append(items, li)
	}

	return items, rows.Err()
}

func (s *Store) GetInvoice(ctx context.Context, orgID, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("invoice not found")
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if inv.Items, err = s.loadItems(ctx, inv.ID); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) UpdateInvoiceState(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices SET
			status = $1, sent_at = $2, viewed_at = $3, voided_at = $4,
			void_reason = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $6 AND organization_id = $7 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query,
		inv.Status, inv.SentAt, inv.ViewedAt, inv.VoidedAt,
		inv.VoidReason,
		inv.ID, inv.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking invoice update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("invoice not found")
	}

	return nil
}

func (s *Store) SoftDeleteInvoice(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE invoices SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking invoice delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("invoice not found")
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter invoice.ListFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "NOT is_deleted"}
	args := []any{orgID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, "customer_id = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Store) ListInvoices(ctx context.Context, orgID uuid.UUID, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if inv.Items, err = s.loadItems(ctx, inv.ID); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

func (s *Store) CountInvoices(ctx context.Context, orgID uuid.UUID, filter invoice.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return total, nil
}
