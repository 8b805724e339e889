package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	// CreateExpense assigns the next expense number and inserts the expense.
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, orgID, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	SoftDeleteExpense(ctx context.Context, orgID, id uuid.UUID) error
	ListExpenses(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Expense, error)
	CountExpenses(ctx context.Context, orgID uuid.UUID, filter ListFilter) (int, error)
}

type Service struct {
	repo      Repository
	customers catalog.Reader
}

func NewService(repo Repository, customers catalog.Reader) *Service {
	return &Service{repo: repo, customers: customers}
}

type CreateParams struct {
	VendorName      string
	ExpenseDate     time.Time
	Category        string
	Amount          decimal.Decimal
	TaxAmount       decimal.Decimal
	Method          Method
	ReferenceNumber string
	Description     string
	ReceiptURL      string
	IsBillable      bool
	CustomerID      *uuid.UUID
}

type UpdateParams struct {
	VendorName      *string
	ExpenseDate     *time.Time
	Category        *string
	Amount          *decimal.Decimal
	TaxAmount       *decimal.Decimal
	Method          *Method
	ReferenceNumber *string
	Description     *string
	ReceiptURL      *string
	IsBillable      *bool
	CustomerID      *uuid.UUID
}

type ListFilter struct {
	Category   string
	IsBillable *bool
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Skip       int
	Limit      int
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

func (s *Service) Create(ctx context.Context, orgID, actorID uuid.UUID, params CreateParams) (*Expense, error) {
	if params.VendorName == "" {
		return nil, fault.Invalid("vendor name is required")
	}

	if params.Amount.Sign() <= 0 {
		return nil, fault.Invalid("expense amount must be greater than zero")
	}

	if params.TaxAmount.Sign() < 0 {
		return nil, fault.Invalid("tax amount must not be negative")
	}

	if !params.Method.Valid() {
		return nil, fault.Invalidf("invalid payment method %q", params.Method)
	}

	if params.IsBillable {
		if params.CustomerID == nil {
			return nil, fault.Invalid("customer required for billable expenses")
		}

		if _, err := s.customers.Customer(ctx, orgID, *params.CustomerID); err != nil {
			return nil, err
		}
	}

	e := &Expense{
		OrganizationID:  orgID,
		CustomerID:      params.CustomerID,
		CreatedBy:       &actorID,
		VendorName:      params.VendorName,
		ExpenseDate:     params.ExpenseDate,
		Category:        params.Category,
		Amount:          params.Amount,
		TaxAmount:       params.TaxAmount,
		Total:           params.Amount.Add(params.TaxAmount),
		Method:          params.Method,
		ReferenceNumber: params.ReferenceNumber,
		Description:     params.Description,
		ReceiptURL:      params.ReceiptURL,
		IsBillable:      params.IsBillable,
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, orgID, id)
}

func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if params.VendorName != nil {
		if *params.VendorName == "" {
			return nil, fault.Invalid("vendor name is required")
		}
		e.VendorName = *params.VendorName
	}

	if params.ExpenseDate != nil {
		e.ExpenseDate = *params.ExpenseDate
	}

	if params.Category != nil {
		e.Category = *params.Category
	}

	if params.Amount != nil {
		if params.Amount.Sign() <= 0 {
			return nil, fault.Invalid("expense amount must be greater than zero")
		}
		e.Amount = *params.Amount
	}

	if params.TaxAmount != nil {
		if params.TaxAmount.Sign() < 0 {
			return nil, fault.Invalid("tax amount must not be negative")
		}
		e.TaxAmount = *params.TaxAmount
	}

	if params.Method != nil {
		if !params.Method.Valid() {
			return nil, fault.Invalidf("invalid payment method %q", *params.Method)
		}
		e.Method = *params.Method
	}

	if params.ReferenceNumber != nil {
		e.ReferenceNumber = *params.ReferenceNumber
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if params.ReceiptURL != nil {
		e.ReceiptURL = *params.ReceiptURL
	}

	if params.IsBillable != nil {
		e.IsBillable = *params.IsBillable
	}

	if params.CustomerID != nil {
		e.CustomerID = params.CustomerID
	}

	if e.IsBillable {
		if e.CustomerID == nil {
			return nil, fault.Invalid("customer required for billable expenses")
		}

		if _, err := s.customers.Customer(ctx, orgID, *e.CustomerID); err != nil {
			return nil, err
		}
	}

	e.Total = e.Amount.Add(e.TaxAmount)

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.repo.GetExpense(ctx, orgID, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteExpense(ctx, orgID, id)
}

func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter ListFilter) ([]*Expense, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	expenses, err := s.repo.ListExpenses(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountExpenses(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}
