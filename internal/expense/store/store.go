// Package store persists expenses in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/expense"
	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/sequence"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const expenseColumns = `
	id, organization_id, customer_id, created_by, expense_number, vendor_name,
	expense_date, COALESCE(category, ''), amount, tax_amount, total,
	payment_method, COALESCE(reference_number, ''), COALESCE(description, ''),
	COALESCE(receipt_url, ''), is_billable, is_deleted, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*expense.Expense, error) {
	var e expense.Expense

	err := row.Scan(
		&e.ID, &e.OrganizationID, &e.CustomerID, &e.CreatedBy, &e.ExpenseNumber, &e.VendorName,
		&e.ExpenseDate, &e.Category, &e.Amount, &e.TaxAmount, &e.Total,
		&e.Method, &e.ReferenceNumber, &e.Description,
		&e.ReceiptURL, &e.IsBillable, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateExpense assigns the next expense number and inserts the row in one
// transaction so the sequence never advances without a matching expense.
func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning expense tx: %w", err)
	}
	defer tx.Rollback()

	number, err := sequence.Next(ctx, tx, e.OrganizationID, sequence.Expense)
	if err != nil {
		return err
	}
	e.ExpenseNumber = number

	query := `
		INSERT INTO expenses (
			organization_id, customer_id, created_by, expense_number, vendor_name,
			expense_date, category, amount, tax_amount, total,
			payment_method, reference_number, description, receipt_url, is_billable,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10,
			$11, NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), $15,
			NOW(), NOW()
		)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		e.OrganizationID, e.CustomerID, e.CreatedBy, e.ExpenseNumber, e.VendorName,
		e.ExpenseDate, e.Category, e.Amount, e.TaxAmount, e.Total,
		e.Method, e.ReferenceNumber, e.Description, e.ReceiptURL, e.IsBillable,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, orgID, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("expense not found")
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses SET
			customer_id = $1, vendor_name = $2, expense_date = $3,
			category = NULLIF($4, ''), amount = $5, tax_amount = $6, total = $7,
			payment_method = $8, reference_number = NULLIF($9, ''),
			description = NULLIF($10, ''), receipt_url = NULLIF($11, ''),
			is_billable = $12, updated_at = NOW()
		WHERE id = $13 AND organization_id = $14 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query,
		e.CustomerID, e.VendorName, e.ExpenseDate,
		e.Category, e.Amount, e.TaxAmount, e.Total,
		e.Method, e.ReferenceNumber,
		e.Description, e.ReceiptURL,
		e.IsBillable, e.ID, e.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking expense update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("expense not found")
	}

	return nil
}

func (s *Store) SoftDeleteExpense(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE expenses SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking expense delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("expense not found")
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter expense.ListFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "NOT is_deleted"}
	args := []any{orgID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, "category = $"+strconv.Itoa(len(args)))
	}

	if filter.IsBillable != nil {
		args = append(args, *filter.IsBillable)
		clauses = append(clauses, "is_billable = $"+strconv.Itoa(len(args)))
	}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, "customer_id = $"+strconv.Itoa(len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, "expense_date >= $"+strconv.Itoa(len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clauses = append(clauses, "expense_date <= $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Store) ListExpenses(ctx context.Context, orgID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ` + where + `
		ORDER BY expense_date DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Store) CountExpenses(ctx context.Context, orgID uuid.UUID, filter expense.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}

	return total, nil
}
