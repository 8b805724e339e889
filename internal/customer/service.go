// Package customer manages the buyer directory of an organization.
package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, orgID, id uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	SoftDeleteCustomer(ctx context.Context, orgID, id uuid.UUID) error

	// FindByEmail looks up a non-deleted customer by exact lowercased email.
	FindByEmail(ctx context.Context, orgID uuid.UUID, email string) (*Customer, error)

	ListCustomers(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Customer, error)
	CountCustomers(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type             Type
	Name             string
	Email            string
	Phone            string
	BillingAddress   Address
	ShippingAddress  Address
	TaxID            string
	CurrencyCode     string
	PaymentTermsDays int
	CreditLimit      *decimal.Decimal
	Notes            string
}

// UpdateParams carries optional field updates; nil means leave unchanged.
type UpdateParams struct {
	Type             *Type
	Name             *string
	Email            *string
	Phone            *string
	BillingAddress   *Address
	ShippingAddress  *Address
	TaxID            *string
	CurrencyCode     *string
	PaymentTermsDays *int
	CreditLimit      *decimal.Decimal
	Notes            *string
	IsActive         *bool
}

// ListFilter narrows list and count queries. Search matches name, email and
// phone case-insensitively.
type ListFilter struct {
	Search   string
	Type     *Type
	IsActive *bool
	Skip     int
	Limit    int
}

func validateFilter(filter ListFilter) error {
	if filter.Skip < 0 {
		return fault.Invalid("skip must not be negative")
	}

	if filter.Limit < 1 || filter.Limit > 100 {
		return fault.Invalid("limit must be between 1 and 100")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, orgID uuid.UUID, params CreateParams) (*Customer, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fault.Invalid("customer name is required")
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, orgID, email)
		if err != nil && !fault.IsKind(err, fault.KindNotFound) {
			return nil, err
		}

		if existing != nil {
			return nil, fault.Conflict("customer with this email already exists in your organization")
		}
	}

	customerType := params.Type
	if customerType == "" {
		customerType = TypeBusiness
	}

	currency := params.CurrencyCode
	if currency == "" {
		currency = "INR"
	}

	terms := params.PaymentTermsDays
	if terms == 0 {
		terms = 30
	}

	c := &Customer{
		OrganizationID:   orgID,
		Type:             customerType,
		Name:             params.Name,
		Email:            email,
		Phone:            params.Phone,
		BillingAddress:   params.BillingAddress,
		ShippingAddress:  params.ShippingAddress,
		TaxID:            params.TaxID,
		CurrencyCode:     currency,
		PaymentTermsDays: terms,
		CreditLimit:      params.CreditLimit,
		Notes:            params.Notes,
		IsActive:         true,
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, orgID, id)
}

func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params UpdateParams) (*Customer, error) {
	c, err := s.repo.GetCustomer(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil && *params.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*params.Email))

		existing, err := s.repo.FindByEmail(ctx, orgID, email)
		if err != nil && !fault.IsKind(err, fault.KindNotFound) {
			return nil, err
		}

		if existing != nil && existing.ID != c.ID {
			return nil, fault.Conflict("customer with this email already exists in your organization")
		}

		c.Email = email
	}

	if params.Type != nil {
		c.Type = *params.Type
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, fault.Invalid("customer name is required")
		}

		c.Name = *params.Name
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.BillingAddress != nil {
		c.BillingAddress = *params.BillingAddress
	}

	if params.ShippingAddress != nil {
		c.ShippingAddress = *params.ShippingAddress
	}

	if params.TaxID != nil {
		c.TaxID = *params.TaxID
	}

	if params.CurrencyCode != nil {
		c.CurrencyCode = *params.CurrencyCode
	}

	if params.PaymentTermsDays != nil {
		c.PaymentTermsDays = *params.PaymentTermsDays
	}

	if params.CreditLimit != nil {
		c.CreditLimit = params.CreditLimit
	}

	if params.Notes != nil {
		c.Notes = *params.Notes
	}

	if params.IsActive != nil {
		c.IsActive = *params.IsActive
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Customer, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	customers, err := s.repo.ListCustomers(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountCustomers(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetCustomer(ctx, orgID, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteCustomer(ctx, orgID, id)
}
