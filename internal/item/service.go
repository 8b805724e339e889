// Package item manages the sellable catalog of an organization.
package item

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=item
type Repository interface {
	CreateItem(ctx context.Context, i *Item) error
	GetItem(ctx context.Context, orgID, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, i *Item) error
	SoftDeleteItem(ctx context.Context, orgID, id uuid.UUID) error

	// FindBySKU looks up a non-deleted item by exact SKU.
	FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*Item, error)

	ListItems(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Item, error)
	CountItems(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
}

type Service struct {
	repo  Repository
	taxes catalog.Reader
}

func NewService(repo Repository, taxes catalog.Reader) *Service {
	return &Service{repo: repo, taxes: taxes}
}

type CreateParams struct {
	Type        Type
	Name        string
	Description string
	SKU         string
	Unit        string
	Rate        decimal.Decimal
	TaxID       *uuid.UUID
}

// UpdateParams carries optional field updates; nil means leave unchanged.
type UpdateParams struct {
	Type        *Type
	Name        *string
	Description *string
	SKU         *string
	Unit        *string
	Rate        *decimal.Decimal
	TaxID       *uuid.UUID
	IsActive    *bool
}

// ListFilter narrows list and count queries. Search matches name, description
// and SKU case-insensitively.
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

func (s *Service) Create(ctx context.Context, orgID uuid.UUID, params CreateParams) (*Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fault.Invalid("item name is required")
	}

	if params.Rate.IsNegative() {
		return nil, fault.Invalid("item rate must not be negative")
	}

	if params.SKU != "" {
		existing, err := s.repo.FindBySKU(ctx, orgID, params.SKU)
		if err != nil && !fault.IsKind(err, fault.KindNotFound) {
			return nil, err
		}

		if existing != nil {
			return nil, fault.Conflict("item with this SKU already exists in your organization")
		}
	}

	if params.TaxID != nil {
		if _, err := s.taxes.Tax(ctx, orgID, *params.TaxID); err != nil {
			return nil, err
		}
	}

	itemType := params.Type
	if itemType == "" {
		itemType = TypeService
	}

	unit := params.Unit
	if unit == "" {
		unit = "unit"
	}

	i := &Item{
		OrganizationID: orgID,
		TaxID:          params.TaxID,
		Type:           itemType,
		Name:           params.Name,
		Description:    params.Description,
		SKU:            params.SKU,
		Unit:           unit,
		Rate:           params.Rate,
		IsActive:       true,
	}

	if err := s.repo.CreateItem(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, orgID, id)
}

func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params UpdateParams) (*Item, error) {
	i, err := s.repo.GetItem(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if params.SKU != nil && *params.SKU != "" {
		existing, err := s.repo.FindBySKU(ctx, orgID, *params.SKU)
		if err != nil && !fault.IsKind(err, fault.KindNotFound) {
			return nil, err
		}

		if existing != nil && existing.ID != i.ID {
			return nil, fault.Conflict("item with this SKU already exists in your organization")
		}
	}

	if params.TaxID != nil {
		if _, err := s.taxes.Tax(ctx, orgID, *params.TaxID); err != nil {
			return nil, err
		}

		i.TaxID = params.TaxID
	}

	if params.Type != nil {
		i.Type = *params.Type
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, fault.Invalid("item name is required")
		}

		i.Name = *params.Name
	}

	if params.Description != nil {
		i.Description = *params.Description
	}

	if params.SKU != nil {
		i.SKU = *params.SKU
	}

	if params.Unit != nil {
		i.Unit = *params.Unit
	}

	if params.Rate != nil {
		if params.Rate.IsNegative() {
			return nil, fault.Invalid("item rate must not be negative")
		}

		i.Rate = *params.Rate
	}

	if params.IsActive != nil {
		i.IsActive = *params.IsActive
	}

	if err := s.repo.UpdateItem(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Item, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	items, err := s.repo.ListItems(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountItems(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetItem(ctx, orgID, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteItem(ctx, orgID, id)
}
