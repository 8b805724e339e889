package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/customer"
	"github.com/quillbooks/quillbooks/internal/fault"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const customerColumns = `
	id, organization_id, customer_type, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(billing_address_line1, ''), COALESCE(billing_address_line2, ''),
	COALESCE(billing_city, ''), COALESCE(billing_state, ''),
	COALESCE(billing_postal_code, ''), COALESCE(billing_country, ''),
	COALESCE(shipping_address_line1, ''), COALESCE(shipping_address_line2, ''),
	COALESCE(shipping_city, ''), COALESCE(shipping_state, ''),
	COALESCE(shipping_postal_code, ''), COALESCE(shipping_country, ''),
	COALESCE(tax_id, ''), currency_code, payment_terms_days, credit_limit,
	COALESCE(notes, ''), is_active, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*customer.Customer, error) {
	var c customer.Customer

	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.Type, &c.Name, &c.Email, &c.Phone,
		&c.BillingAddress.Line1, &c.BillingAddress.Line2,
		&c.BillingAddress.City, &c.BillingAddress.State,
		&c.BillingAddress.PostalCode, &c.BillingAddress.Country,
		&c.ShippingAddress.Line1, &c.ShippingAddress.Line2,
		&c.ShippingAddress.City, &c.ShippingAddress.State,
		&c.ShippingAddress.PostalCode, &c.ShippingAddress.Country,
		&c.TaxID, &c.CurrencyCode, &c.PaymentTermsDays, &c.CreditLimit,
		&c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			organization_id, customer_type, name, email, phone,
			billing_address_line1, billing_address_line2, billing_city,
			billing_state, billing_postal_code, billing_country,
			shipping_address_line1, shipping_address_line2, shipping_city,
			shipping_state, shipping_postal_code, shipping_country,
			tax_id, currency_code, payment_terms_days, credit_limit, notes,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), NULLIF($5, ''),
			NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
			NULLIF($15, ''), NULLIF($16, ''), NULLIF($17, ''),
			NULLIF($18, ''), $19, $20, $21, NULLIF($22, ''),
			$23, NOW(), NOW()
		)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OrganizationID, c.Type, c.Name, c.Email, c.Phone,
		c.BillingAddress.Line1, c.BillingAddress.Line2, c.BillingAddress.City,
		c.BillingAddress.State, c.BillingAddress.PostalCode, c.BillingAddress.Country,
		c.ShippingAddress.Line1, c.ShippingAddress.Line2, c.ShippingAddress.City,
		c.ShippingAddress.State, c.ShippingAddress.PostalCode, c.ShippingAddress.Country,
		c.TaxID, c.CurrencyCode, c.PaymentTermsDays, c.CreditLimit, c.Notes,
		c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, orgID, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("customer not found")
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE organization_id = $1 AND email = $2 AND NOT is_deleted`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, orgID, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("customer not found")
		}

		return nil, fmt.Errorf("finding customer by email: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			customer_type = $1, name = $2, email = NULLIF($3, ''), phone = NULLIF($4, ''),
			billing_address_line1 = NULLIF($5, ''), billing_address_line2 = NULLIF($6, ''),
			billing_city = NULLIF($7, ''), billing_state = NULLIF($8, ''),
			billing_postal_code = NULLIF($9, ''), billing_country = NULLIF($10, ''),
			shipping_address_line1 = NULLIF($11, ''), shipping_address_line2 = NULLIF($12, ''),
			shipping_city = NULLIF($13, ''), shipping_state = NULLIF($14, ''),
			shipping_postal_code = NULLIF($15, ''), shipping_country = NULLIF($16, ''),
			tax_id = NULLIF($17, ''), currency_code = $18, payment_terms_days = $19,
			credit_limit = $20, notes = NULLIF($21, ''), is_active = $22, updated_at = NOW()
		WHERE id = $23 AND organization_id = $24 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query,
		c.Type, c.Name, c.Email, c.Phone,
		c.BillingAddress.Line1, c.BillingAddress.Line2,
		c.BillingAddress.City, c.BillingAddress.State,
		c.BillingAddress.PostalCode, c.BillingAddress.Country,
		c.ShippingAddress.Line1, c.ShippingAddress.Line2,
		c.ShippingAddress.City, c.ShippingAddress.State,
		c.ShippingAddress.PostalCode, c.ShippingAddress.Country,
		c.TaxID, c.CurrencyCode, c.PaymentTermsDays,
		c.CreditLimit, c.Notes, c.IsActive,
		c.ID, c.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking customer update: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("customer not found")
	}

	return nil
}

func (s *Store) SoftDeleteCustomer(ctx context.Context, orgID, id uuid.UUID) error {
	query := `
		UPDATE customers SET is_deleted = TRUE, is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND NOT is_deleted
	`

	result, err := s.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking customer delete: %w", err)
	}

	if rows == 0 {
		return fault.NotFound("customer not found")
	}

	return nil
}

func filterClauses(orgID uuid.UUID, filter customer.ListFilter) (string, []any) {
	clauses := []string{"organization_id = $1", "NOT is_deleted"}
	args := []any{orgID}

	if filter.Search != "" {
		n := strconv.Itoa(len(args) + 1)
		clauses = append(clauses, "(name ILIKE $"+n+" OR email ILIKE $"+n+" OR phone ILIKE $"+n+")")
		args = append(args, "%"+filter.Search+"%")
	}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, "customer_type = $"+strconv.Itoa(len(args)))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, "is_active = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Store) ListCustomers(ctx context.Context, orgID uuid.UUID, filter customer.ListFilter) ([]*customer.Customer, error) {
	where, args := filterClauses(orgID, filter)

	args = append(args, filter.Limit, filter.Skip)
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (s *Store) CountCustomers(ctx context.Context, orgID uuid.UUID, filter customer.ListFilter) (int, error) {
	where, args := filterClauses(orgID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}

	return total, nil
}
