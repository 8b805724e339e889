package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/quote"
	"github.com/quillbooks/quillbooks/internal/sequence"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const quoteColumns = `
	id, organization_id, customer_id, created_by, quote_number, status,
	quote_date, expiry_date, subtotal, tax_total, total, currency_code,
	COALESCE(notes, ''), COALESCE(terms_and_conditions, ''),
	sent_at, viewed_at, accepted_at, rejected_at, converted_at,
	converted_invoice_id, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*quote.Quote, error) {
	var q quote.Quote

	err := row.Scan(
		&q.ID, &q.OrganizationID, &q.CustomerID, &q.CreatedBy, &q.QuoteNumber, &q.Status,
		&q.QuoteDate, &q.ExpiryDate, &q.Subtotal, &q.TaxTotal, &q.Total, &q.CurrencyCode,
		&q.Notes, &q.Terms,
		&q.SentAt, &q.ViewedAt, &q.AcceptedAt, &q.RejectedAt, &q.ConvertedAt,
		&q.ConvertedInvoiceID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

func (s *Store) CreateQuote(ctx context.Context, q *quote.Quote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning quote tx: %w", err)
	}
	defer tx.Rollback()

	number, err := sequence.Next(ctx, tx, q.OrganizationID, sequence.Quote)
	if err != nil {
		return err
	}
	q.QuoteNumber = number

	query := `
		INSERT INTO quotes (
			organization_id, customer_id, created_by, quote_number, status,
			quote_date, expiry_date, subtotal, tax_total, total, currency_code,
			notes, terms_and_conditions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), NOW(), NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		q.OrganizationID, q.CustomerID, q.CreatedBy, q.QuoteNumber, q.Status,
		q.QuoteDate, q.ExpiryDate, q.Subtotal, q.TaxTotal, q.Total, q.CurrencyCode,
		q.Notes, q.Terms,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating quote: %w", err)
	}

	if err := insertLineItems(ctx, tx, q.ID, q.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing quote: %w", err)
	}

	return nil
}

func insertLineItems(ctx context.Context, tx *sql.Tx, quoteID uuid.UUID, items []quote.LineItem) error {
	query := `
		INSERT INTO quote_items (
			quote_id, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	for i := range items {
		li := &items[i]

		err := tx.QueryRowContext(ctx, query,
			quoteID, li.ItemID, li.TaxID, li.Description, li.Quantity, li.Rate, li.Amount,
			li.TaxRate, li.TaxAmount, li.Total, li.SortOrder,
		).Scan(&li.ID)
		if err != nil {
			return fmt.Errorf("creating quote item: %w", err)
		}
	}

	return nil
}

func (s *Store) loadItems(ctx context.Context, quoteID uuid.UUID) ([]quote.LineItem, error) {
	query := `
		SELECT id, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY sort_order ASC
	`

	rows, err := s.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("loading quote items: %w", err)
	}
	defer rows.Close()

	var items []quote.LineItem

	for rows.Next() {
		var li quote.LineItem

		err := rows.Scan(
			&li.ID, &li.ItemID, &li.TaxID, &li.Description, &li.Quantity, &li.Rate,
			&li.Amount, &li.TaxRate, &li.TaxAmount, &li.Total, &li.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning quote item: %w", err)
		}

		items = append(items, li)
	}

	return items, rows.Err()
}

func (s *Store) GetQuote(ctx context.Context, orgID, id uuid.UUID) (*quote.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	q, err := scanQuote(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("quote not found")
		}

		return nil, fmt.Errorf("getting quote: %w", err)
	}

	if q.Items, err = s.loadItems(ctx, q.ID); err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Store) UpdateQuoteState(ctx context.Context, q *quote.Quote) error {
	query := `
		UPDATE quotes SET
			status = $1, notes = NULLIF($2, ''), sent_at = $3, viewed_at = $4,
			accepted_at = $5, rejected_at = $6, updated_at = NOW()
		WHERE id = $7 AND organization_id = $8 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query,
		q.Status, q.Notes, q.SentAt, q.ViewedAt,
		q.AcceptedAt, q.RejectedAt,
		q.ID, q.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("updating quote state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quote update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("quote not found")
	}

	return nil
}

// ConvertQuote creates the invoice, copies the quote's line items verbatim
// and stamps the quote converted, in one transaction. The quote update is
// guarded on converted_invoice_id still being unset, so a concurrent convert
// loses cleanly.
func (s *Store) ConvertQuote(ctx context.Context, q *quote.Quote, conv *quote.Conversion) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning convert tx: %w", err)
	}
	defer tx.Rollback()

	invoiceNumber, err := sequence.Next(ctx, tx, q.OrganizationID, sequence.Invoice)
	if err != nil {
		return err
	}

	invoiceQuery := `
		INSERT INTO invoices (
			organization_id, customer_id, created_by, invoice_number, status,
			invoice_date, due_date, subtotal, tax_total, total, amount_paid,
			balance_due, currency_code, payment_terms_days, notes,
			terms_and_conditions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, 'DRAFT', $5, $6, $7, $8, $9, 0, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), NOW(), NOW())
		RETURNING id
	`

	err = tx.QueryRowContext(ctx, invoiceQuery,
		q.OrganizationID, q.CustomerID, conv.CreatedBy, invoiceNumber,
		conv.InvoiceDate, conv.DueDate, q.Subtotal, q.TaxTotal, q.Total,
		q.CurrencyCode, conv.PaymentTermsDays, q.Notes, q.Terms,
	).Scan(&conv.InvoiceID)
	if err != nil {
		return fmt.Errorf("creating invoice from quote: %w", err)
	}

	copyQuery := `
		INSERT INTO invoice_items (
			invoice_id, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order, created_at, updated_at
		)
		SELECT $1, item_id, tax_id, description, quantity, rate, amount,
			tax_rate, tax_amount, total, sort_order, NOW(), NOW()
		FROM quote_items
		WHERE quote_id = $2
	`

	if _, err := tx.ExecContext(ctx, copyQuery, conv.InvoiceID, q.ID); err != nil {
		return fmt.Errorf("copying quote items: %w", err)
	}

	markQuery := `
		UPDATE quotes SET
			status = 'CONVERTED', converted_at = NOW(), converted_invoice_id = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3 AND converted_invoice_id IS NULL AND NOT is_deleted
		RETURNING converted_at
	`

	err = tx.QueryRowContext(ctx, markQuery, conv.InvoiceID, q.ID, q.OrganizationID).Scan(&q.ConvertedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fault.Invalid("quote has already been converted to invoice")
		}

		return fmt.Errorf("marking quote converted: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing conversion: %w", err)
	}

	q.Status = quote.StatusConverted
	q.ConvertedInvoiceID = &conv.InvoiceID

	return nil
}

func (s *Store) SoftDeleteQuote(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE quotes SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quote delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("quote not found")
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter quote.ListFilter) (string, []any) {
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

func (s *Store) ListQuotes(ctx context.Context, orgID uuid.UUID, filter quote.ListFilter) ([]*quote.Quote, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + quoteColumns + `
		FROM quotes
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*quote.Quote

	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, q := range quotes {
		if q.Items, err = s.loadItems(ctx, q.ID); err != nil {
			return nil, err
		}
	}

	return quotes, nil
}

func (s *Store) CountQuotes(ctx context.Context, orgID uuid.UUID, filter quote.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}

	return total, nil
}
