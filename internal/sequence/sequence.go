// Package sequence allocates human-readable document numbers, one monotonic
// counter per (organization, document type).
package sequence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DocType identifies a numbered document series.
type DocType string

const (
	Invoice DocType = "INVOICE"
	Quote   DocType = "QUOTE"
	Payment DocType = "PAYMENT"
	Expense DocType = "EXPENSE"
)

var prefixes = map[DocType]string{
	Invoice: "INV",
	Quote:   "QT",
	Payment: "PAY",
	Expense: "EXP",
}

// Format renders the nth number of a series, e.g. Format(Invoice, 5) == "INV-00005".
func Format(t DocType, n int64) string {
	return fmt.Sprintf("%s-%05d", prefixes[t], n)
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Next allocates the next number for the organization's series via an atomic
// upsert, so concurrent creators in the same organization can never be handed
// the same number. Callers must run it on the same transaction that inserts
// the document, so an aborted create rolls the counter back with it.
func Next(ctx context.Context, q Querier, orgID uuid.UUID, t DocType) (string, error) {
	query := `
		INSERT INTO document_sequences (organization_id, doc_type, last_value, created_at, updated_at)
		VALUES ($1, $2, 1, NOW(), NOW())
		ON CONFLICT (organization_id, doc_type)
		DO UPDATE SET last_value = document_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value
	`

	var n int64
	if err := q.QueryRowContext(ctx, query, orgID, t).Scan(&n); err != nil {
		return "", fmt.Errorf("allocating %s number: %w", t, err)
	}

	return Format(t, n), nil
}
