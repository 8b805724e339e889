package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/item"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const itemColumns = `
	id, organization_id, tax_id, item_type, name, COALESCE(description, ''),
	COALESCE(sku, ''), unit, rate, is_active, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*item.Item, error) {
	var i item.Item

	err := row.Scan(
		&i.ID, &i.OrganizationID, &i.TaxID, &i.Type, &i.Name, &i.Description,
		&i.SKU, &i.Unit, &i.Rate, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &i, nil
}

func (s *Store) CreateItem(ctx context.Context, i *item.Item) error {
	query := `
		INSERT INTO items (
			organization_id, tax_id, item_type, name, description, sku, unit, rate,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		i.OrganizationID, i.TaxID, i.Type, i.Name, i.Description, i.SKU, i.Unit, i.Rate,
		i.IsActive,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, orgID, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	i, err := scanItem(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("item not found")
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return i, nil
}

func (s *Store) FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*item.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1 AND sku = $2 AND NOT is_deleted`

	i, err := scanItem(s.db.QueryRowContext(ctx, query, orgID, sku))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("item not found")
		}

		return nil, fmt.Errorf("finding item by sku: %w", err)
	}

	return i, nil
}

func (s *Store) UpdateItem(ctx context.Context, i *item.Item) error {
	query := `
		UPDATE items SET
			tax_id = $1, item_type = $2, name = $3, description = NULLIF($4, ''),
			sku = NULLIF($5, ''), unit = $6, rate = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9 AND organization_id = $10 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query,
		i.TaxID, i.Type, i.Name, i.Description,
		i.SKU, i.Unit, i.Rate, i.IsActive,
		i.ID, i.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("item not found")
	}

	return nil
}

func (s *Store) SoftDeleteItem(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE items SET is_deleted = TRUE, is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("item not found")
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter item.ListFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "NOT is_deleted"}
	args := []any{orgID}

	if filter.Search != "" {
		n := strconv.Itoa(len(args) + 1)
		clauses = append(clauses, "(name ILIKE $"+n+" OR description ILIKE $"+n+" OR sku ILIKE $"+n+")")
		args = append(args, "%"+filter.Search+"%")
	}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, "item_type = $"+strconv.Itoa(len(args)))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, "is_active = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Store) ListItems(ctx context.Context, orgID uuid.UUID, filter item.ListFilter) ([]*item.Item, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item

	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, i)
	}

	return items, rows.Err()
}

func (s *Store) CountItems(ctx context.Context, orgID uuid.UUID, filter item.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}

	return total, nil
}
