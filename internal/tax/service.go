// Package tax manages the named tax rates of an organization.
package tax

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tax
type Repository interface {
	CreateTax(ctx context.Context, t *Tax) error
	GetTax(ctx context.Context, orgID, id uuid.UUID) (*Tax, error)
	UpdateTax(ctx context.Context, t *Tax) error
	SoftDeleteTax(ctx context.Context, orgID, id uuid.UUID) error

	// FindByName looks up a non-deleted tax by exact name.
	FindByName(ctx context.Context, orgID uuid.UUID, name string) (*Tax, error)

	// ListTaxes returns all non-deleted taxes ordered by ascending rate.
	ListTaxes(ctx context.Context, orgID uuid.UUID, isActive *bool) ([]*Tax, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name string
	Rate decimal.Decimal
	Type Type
}

// UpdateParams carries optional field updates; nil means leave unchanged.
type UpdateParams struct {
	Name     *string
	Rate     *decimal.Decimal
	Type     *Type
	IsActive *bool
}

var hundred = decimal.NewFromInt(100)

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return fault.Invalid("tax rate must be between 0 and 100")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, orgID uuid.UUID, params CreateParams) (*Tax, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fault.Invalid("tax name is required")
	}

	if err := validateRate(params.Rate); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, orgID, params.Name)
	if err != nil && !fault.IsKind(err, fault.KindNotFound) {
		return nil, err
	}

	if existing != nil {
		return nil, fault.Conflict("tax with this name already exists in your organization")
	}

	taxType := params.Type
	if taxType == "" {
		taxType = TypeGST
	}

	t := &Tax{
		OrganizationID: orgID,
		Name:           params.Name,
		Rate:           params.Rate,
		Type:           taxType,
		IsActive:       true,
	}

	if err := s.repo.CreateTax(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Tax, error) {
	return s.repo.GetTax(ctx, orgID, id)
}

func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params UpdateParams) (*Tax, error) {
	t, err := s.repo.GetTax(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil && *params.Name != "" {
		existing, err := s.repo.FindByName(ctx, orgID, *params.Name)
		if err != nil && !fault.IsKind(err, fault.KindNotFound) {
			return nil, err
		}

		if existing != nil && existing.ID != t.ID {
			return nil, fault.Conflict("tax with this name already exists in your organization")
		}

		t.Name = *params.Name
	}

	if params.Rate != nil {
		if err := validateRate(*params.Rate); err != nil {
			return nil, err
		}

		t.Rate = *params.Rate
	}

	if params.Type != nil {
		t.Type = *params.Type
	}

	if params.IsActive != nil {
		t.IsActive = *params.IsActive
	}

	if err := s.repo.UpdateTax(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, isActive *bool) ([]*Tax, error) {
	return s.repo.ListTaxes(ctx, orgID, isActive)
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetTax(ctx, orgID, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteTax(ctx, orgID, id)
}
