// Package store runs the report aggregation queries against PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// rangeClauses appends optional date-range conditions on the given column.
// The caller's base args must already be in args.
func rangeClauses(column string, r report.DateRange, args []any) (string, []any) {
	var where string

	if r.Start != nil {
		args = append(args, *r.Start)
		where += " AND " + column + " >= $" + strconv.Itoa(len(args))
	}

	if r.End != nil {
		args = append(args, *r.End)
		where += " AND " + column + " <= $" + strconv.Itoa(len(args))
	}

	return where, args
}

func (s *Store) SalesSummary(ctx context.Context, orgID uuid.UUID, r report.DateRange) (*report.SalesSummary, error) {
	args := []any{orgID}
	where, args := rangeClauses("invoice_date", r, args)

	query := `
		SELECT COUNT(id),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(tax_total), 0),
			COALESCE(SUM(amount_paid), 0),
			COALESCE(SUM(balance_due), 0)
		FROM invoices
		WHERE organization_id = $1 AND NOT is_deleted AND status <> 'VOID'` + where

	var summary report.SalesSummary

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalInvoices, &summary.TotalSales, &summary.TotalTax,
		&summary.TotalPaid, &summary.TotalOutstanding,
	)
	if err != nil {
		return nil, fmt.Errorf("summarizing sales: %w", err)
	}

	return &summary, nil
}

func (s *Store) OpenInvoices(ctx context.Context, orgID uuid.UUID) ([]report.OpenInvoice, error) {
	query := `
		SELECT due_date, balance_due
		FROM invoices
		WHERE organization_id = $1 AND NOT is_deleted
			AND balance_due > 0 AND status <> 'VOID'
	`

	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("loading open invoices: %w", err)
	}
	defer rows.Close()

	var invoices []report.OpenInvoice

	for rows.Next() {
		var inv report.OpenInvoice
		if err := rows.Scan(&inv.DueDate, &inv.BalanceDue); err != nil {
			return nil, fmt.Errorf("scanning open invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (s *Store) CustomerBalances(ctx context.Context, orgID uuid.UUID) ([]report.CustomerBalance, error) {
	query := `
		SELECT c.id, c.name, SUM(i.balance_due), COUNT(i.id)
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id
		WHERE c.organization_id = $1 AND NOT c.is_deleted
			AND NOT i.is_deleted AND i.balance_due > 0 AND i.status <> 'VOID'
		GROUP BY c.id, c.name
		ORDER BY SUM(i.balance_due) DESC
	`

	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("loading customer balances: %w", err)
	}
	defer rows.Close()

	var balances []report.CustomerBalance

	for rows.Next() {
		var b report.CustomerBalance
		if err := rows.Scan(&b.CustomerID, &b.CustomerName, &b.OutstandingBalance, &b.UnpaidInvoices); err != nil {
			return nil, fmt.Errorf("scanning customer balance: %w", err)
		}

		balances = append(balances, b)
	}

	return balances, rows.Err()
}

func (s *Store) PaymentSummary(ctx context.Context, orgID uuid.UUID, r report.DateRange) (*report.PaymentSummary, error) {
	args := []any{orgID}
	where, args := rangeClauses("payment_date", r, args)

	totalQuery := `
		SELECT COUNT(id), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE organization_id = $1 AND NOT is_voided` + where

	var summary report.PaymentSummary

	err := s.db.QueryRowContext(ctx, totalQuery, args...).Scan(&summary.TotalPayments, &summary.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("summarizing payments: %w", err)
	}

	methodQuery := `
		SELECT payment_method, COUNT(id), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE organization_id = $1 AND NOT is_voided` + where + `
		GROUP BY payment_method
		ORDER BY SUM(amount) DESC`

	rows, err := s.db.QueryContext(ctx, methodQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("summarizing payments by method: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m report.MethodTotal
		if err := rows.Scan(&m.Method, &m.Count, &m.Amount); err != nil {
			return nil, fmt.Errorf("scanning method total: %w", err)
		}

		summary.ByMethod = append(summary.ByMethod, m)
	}

	return &summary, rows.Err()
}

func (s *Store) ExpenseSummary(ctx context.Context, orgID uuid.UUID, r report.DateRange) (*report.ExpenseSummary, error) {
	args := []any{orgID}
	where, args := rangeClauses("expense_date", r, args)

	totalQuery := `
		SELECT COUNT(id), COALESCE(SUM(total), 0), COALESCE(SUM(tax_amount), 0)
		FROM expenses
		WHERE organization_id = $1 AND NOT is_deleted` + where

	var summary report.ExpenseSummary

	err := s.db.QueryRowContext(ctx, totalQuery, args...).Scan(
		&summary.TotalExpenses, &summary.TotalAmount, &summary.TotalTax,
	)
	if err != nil {
		return nil, fmt.Errorf("summarizing expenses: %w", err)
	}

	categoryQuery := `
		SELECT COALESCE(category, 'Uncategorized'), COUNT(id), COALESCE(SUM(total), 0)
		FROM expenses
		WHERE organization_id = $1 AND NOT is_deleted` + where + `
		GROUP BY category
		ORDER BY SUM(total) DESC`

	rows, err := s.db.QueryContext(ctx, categoryQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("summarizing expenses by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c report.CategoryTotal
		if err := rows.Scan(&c.Category, &c.Count, &c.Amount); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		summary.ByCategory = append(summary.ByCategory, c)
	}

	return &summary, rows.Err()
}

func (s *Store) TopCustomers(ctx context.Context, orgID uuid.UUID, r report.DateRange, limit int) ([]report.CustomerSales, error) {
	args := []any{orgID}
	where, args := rangeClauses("i.invoice_date", r, args)

	args = append(args, limit)
	query := `
		SELECT c.id, c.name, COUNT(i.id), COALESCE(SUM(i.total), 0)
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id
		WHERE c.organization_id = $1 AND NOT c.is_deleted
			AND NOT i.is_deleted AND i.status <> 'VOID'` + where + `
		GROUP BY c.id, c.name
		ORDER BY SUM(i.total) DESC
		LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading top customers: %w", err)
	}
	defer rows.Close()

	var sales []report.CustomerSales

	for rows.Next() {
		var cs report.CustomerSales
		if err := rows.Scan(&cs.CustomerID, &cs.CustomerName, &cs.InvoiceCount, &cs.TotalSales); err != nil {
			return nil, fmt.Errorf("scanning customer sales: %w", err)
		}

		sales = append(sales, cs)
	}

	return sales, rows.Err()
}
