package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/tax"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const taxColumns = `
	id, organization_id, name, rate, tax_type, is_active, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTax(row rowScanner) (*tax.Tax, error) {
	var t tax.Tax

	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.Name, &t.Rate, &t.Type,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Store) CreateTax(ctx context.Context, t *tax.Tax) error {
	query := `
		INSERT INTO taxes (organization_id, name, rate, tax_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.OrganizationID, t.Name, t.Rate, t.Type, t.IsActive,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating tax: %w", err)
	}

	return nil
}

func (s *Store) GetTax(ctx context.Context, orgID, id uuid.UUID) (*tax.Tax, error) {
	query := `SELECT ` + taxColumns + `
		FROM taxes
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	t, err := scanTax(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("tax not found")
		}

		return nil, fmt.Errorf("getting tax: %w", err)
	}

	return t, nil
}

func (s *Store) FindByName(ctx context.Context, orgID uuid.UUID, name string) (*tax.Tax, error) {
	query := `SELECT ` + taxColumns + `
		FROM taxes
		WHERE organization_id = $1 AND name = $2 AND NOT is_deleted`

	t, err := scanTax(s.db.QueryRowContext(ctx, query, orgID, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("tax not found")
		}

		return nil, fmt.Errorf("finding tax by name: %w", err)
	}

	return t, nil
}

func (s *Store) UpdateTax(ctx context.Context, t *tax.Tax) error {
	query := `
		UPDATE taxes SET name = $1, rate = $2, tax_type = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5 AND organization_id = $6 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, t.Name, t.Rate, t.Type, t.IsActive, t.ID, t.OrganizationID)
	if err != nil {
		return fmt.Errorf("updating tax: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking tax update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("tax not found")
	}

	return nil
}

func (s *Store) SoftDeleteTax(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE taxes SET is_deleted = TRUE, is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting tax: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking tax delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("tax not found")
	}

	return nil
}

func (s *Store) ListTaxes(ctx context.Context, orgID uuid.UUID, isActive *bool) ([]*tax.Tax, error) {
	query := `SELECT ` + taxColumns + `
		FROM taxes
		WHERE organization_id = $1 AND NOT is_deleted
			AND ($2::BOOLEAN IS NULL OR is_active = $2)
		ORDER BY rate ASC`

	rows, err := s.db.QueryContext(ctx, query, orgID, isActive)
	if err != nil {
		return nil, fmt.Errorf("listing taxes: %w", err)
	}
	defer rows.Close()

	var taxes []*tax.Tax

	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tax: %w", err)
		}

		taxes = append(taxes, t)
	}

	return taxes, rows.Err()
}
