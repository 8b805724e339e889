package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	SalesSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*SalesSummary, error)

	// OpenInvoices returns due date and balance for every non-void invoice
	// with an outstanding balance.
	OpenInvoices(ctx context.Context, orgID uuid.UUID) ([]OpenInvoice, error)

	CustomerBalances(ctx context.Context, orgID uuid.UUID) ([]CustomerBalance, error)
	PaymentSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*PaymentSummary, error)
	ExpenseSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*ExpenseSummary, error)
	TopCustomers(ctx context.Context, orgID uuid.UUID, r DateRange, limit int) ([]CustomerSales, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateRange(r DateRange) error {
	if r.Start != nil && r.End != nil && r.End.Before(*r.Start) {
		return fault.Invalid("end date must not be before start date")
	}

	return nil
}

func (s *Service) SalesSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*SalesSummary, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	return s.repo.SalesSummary(ctx, orgID, r)
}

// ARAging buckets every outstanding invoice balance by days past due as of
// today.
func (s *Service) ARAging(ctx context.Context, orgID uuid.UUID) (*Aging, error) {
	invoices, err := s.repo.OpenInvoices(ctx, orgID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	return bucketAging(invoices, today), nil
}

func (s *Service) CustomerBalances(ctx context.Context, orgID uuid.UUID) ([]CustomerBalance, error) {
	return s.repo.CustomerBalances(ctx, orgID)
}

func (s *Service) PaymentSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*PaymentSummary, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	return s.repo.PaymentSummary(ctx, orgID, r)
}

func (s *Service) ExpenseSummary(ctx context.Context, orgID uuid.UUID, r DateRange) (*ExpenseSummary, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	return s.repo.ExpenseSummary(ctx, orgID, r)
}

func (s *Service) TopCustomers(ctx context.Context, orgID uuid.UUID, r DateRange, limit int) ([]CustomerSales, error) {
	if err := validateRange(r); err != nil {
		return nil, err
	}

	if limit < 1 || limit > 50 {
		return nil, fault.Invalid("limit must be between 1 and 50")
	}

	return s.repo.TopCustomers(ctx, orgID, r, limit)
}
