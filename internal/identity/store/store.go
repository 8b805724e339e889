package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/identity"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectUserColumns = `
	id, email, hashed_password, first_name, last_name, is_active, created_at, updated_at
`

func scanUser(row *sql.Row) (*identity.User, error) {
	var u identity.User

	err := row.Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("user not found")
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("user not found")
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) OrganizationByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	query := `
		SELECT id, name, COALESCE(legal_name, ''), COALESCE(email, ''), COALESCE(phone, ''),
			COALESCE(address_line1, ''), COALESCE(address_line2, ''), COALESCE(city, ''),
			COALESCE(state, ''), COALESCE(postal_code, ''), COALESCE(country, ''),
			COALESCE(tax_id, ''), currency_code, fiscal_year_end_month,
			COALESCE(logo_url, ''), is_active, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var o identity.Organization

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.LegalName, &o.Email, &o.Phone,
		&o.AddressLine1, &o.AddressLine2, &o.City,
		&o.State, &o.PostalCode, &o.Country,
		&o.TaxID, &o.CurrencyCode, &o.FiscalYearEndMonth,
		&o.LogoURL, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("organization not found")
		}

		return nil, fmt.Errorf("getting organization: %w", err)
	}

	return &o, nil
}

func (s *Store) Membership(ctx context.Context, userID, orgID uuid.UUID) (*identity.Membership, error) {
	query := `
		SELECT organization_id, user_id, role, is_active, invited_by, joined_at
		FROM organization_users
		WHERE user_id = $1 AND organization_id = $2
	`

	var m identity.Membership

	err := s.db.QueryRowContext(ctx, query, userID, orgID).Scan(
		&m.OrganizationID, &m.UserID, &m.Role, &m.IsActive, &m.InvitedBy, &m.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFound("membership not found")
		}

		return nil, fmt.Errorf("getting membership: %w", err)
	}

	return &m, nil
}

func (s *Store) MembershipsOf(ctx context.Context, userID uuid.UUID) ([]identity.OrgRole, error) {
	query := `
		SELECT ou.organization_id, o.name, ou.role
		FROM organization_users ou
		JOIN organizations o ON o.id = ou.organization_id
		WHERE ou.user_id = $1 AND ou.is_active
		ORDER BY ou.joined_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var memberships []identity.OrgRole

	for rows.Next() {
		var m identity.OrgRole
		if err := rows.Scan(&m.OrganizationID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}

		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

// CreateUserWithOrganization inserts the user, organization and OWNER
// membership atomically. A half-registered account must never exist.
func (s *Store) CreateUserWithOrganization(ctx context.Context, u *identity.User, org *identity.Organization) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning registration tx: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (email, hashed_password, first_name, last_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, userQuery,
		u.Email, u.HashedPassword, u.FirstName, u.LastName, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	orgQuery := `
		INSERT INTO organizations (name, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, currency_code, fiscal_year_end_month, created_at
	`

	err = tx.QueryRowContext(ctx, orgQuery, org.Name, org.Email, org.IsActive).
		Scan(&org.ID, &org.CurrencyCode, &org.FiscalYearEndMonth, &org.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}

	memberQuery := `
		INSERT INTO organization_users (organization_id, user_id, role, is_active, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW(), NOW())
	`

	if _, err := tx.ExecContext(ctx, memberQuery, org.ID, u.ID, identity.RoleOwner); err != nil {
		return fmt.Errorf("creating membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing registration: %w", err)
	}

	return nil
}
