package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/fault"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Customer(ctx context.Context, orgID, id uuid.UUID) (*catalog.Customer, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), currency_code, payment_terms_days
		FROM customers
		WHERE id = $1 AND organization_id = $2 AND is_active AND NOT is_deleted
	`

	var c catalog.Customer

	err := s.db.QueryRowContext(ctx, query, id, orgID).
		Scan(&c.ID, &c.Name, &c.Email, &c.CurrencyCode, &c.PaymentTermsDays)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("customer not found")
		}

		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	return &c, nil
}

func (s *Store) Item(ctx context.Context, orgID, id uuid.UUID) (*catalog.Item, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), rate, tax_id
		FROM items
		WHERE id = $1 AND organization_id = $2 AND is_active AND NOT is_deleted
	`

	var i catalog.Item

	err := s.db.QueryRowContext(ctx, query, id, orgID).
		Scan(&i.ID, &i.Name, &i.Description, &i.Rate, &i.TaxID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("item not found")
		}

		return nil, fmt.Errorf("looking up item: %w", err)
	}

	return &i, nil
}

func (s *Store) Tax(ctx context.Context, orgID, id uuid.UUID) (*catalog.Tax, error) {
	query := `
		SELECT id, name, rate
		FROM taxes
		WHERE id = $1 AND organization_id = $2 AND is_active AND NOT is_deleted
	`

	var t catalog.Tax

	err := s.db.QueryRowContext(ctx, query, id, orgID).Scan(&t.ID, &t.Name, &t.Rate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("tax not found")
		}

		return nil, fmt.Errorf("looking up tax: %w", err)
	}

	return &t, nil
}
