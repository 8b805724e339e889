package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/report"
)

func daysAgo(n int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -n)
}

func TestService_ARAging(t *testing.T) {
	orgID := uuid.New()

	t.Run("BucketsByDaysOverdue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		open := []report.OpenInvoice{
			{DueDate: daysAgo(-10), BalanceDue: decimal.NewFromInt(100)}, // not yet due
			{DueDate: daysAgo(5), BalanceDue: decimal.NewFromInt(200)},
			{DueDate: daysAgo(30), BalanceDue: decimal.NewFromInt(300)}, // boundary, still current
			{DueDate: daysAgo(31), BalanceDue: decimal.NewFromInt(400)},
			{DueDate: daysAgo(60), BalanceDue: decimal.NewFromInt(500)},
			{DueDate: daysAgo(75), BalanceDue: decimal.NewFromInt(600)},
			{DueDate: daysAgo(90), BalanceDue: decimal.NewFromInt(700)},
			{DueDate: daysAgo(91), BalanceDue: decimal.NewFromInt(800)},
			{DueDate: daysAgo(365), BalanceDue: decimal.NewFromInt(900)},
		}

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().OpenInvoices(gomock.Any(), orgID).Return(open, nil)

		aging, err := report.NewService(repo).ARAging(context.Background(), orgID)
		require.NoError(t, err)

		assert.Equal(t, 3, aging.Current.Count)
		assert.Equal(t, "600", aging.Current.Amount.String())

		assert.Equal(t, 2, aging.Days31to60.Count)
		assert.Equal(t, "900", aging.Days31to60.Amount.String())

		assert.Equal(t, 2, aging.Days61to90.Count)
		assert.Equal(t, "1300", aging.Days61to90.Amount.String())

		assert.Equal(t, 2, aging.Over90.Count)
		assert.Equal(t, "1700", aging.Over90.Amount.String())

		assert.Equal(t, 9, aging.Total.Count)
		assert.Equal(t, "4500", aging.Total.Amount.String())
	})

	t.Run("NoOpenInvoices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().OpenInvoices(gomock.Any(), orgID).Return(nil, nil)

		aging, err := report.NewService(repo).ARAging(context.Background(), orgID)
		require.NoError(t, err)
		assert.Equal(t, 0, aging.Total.Count)
		assert.True(t, aging.Total.Amount.IsZero())
	})
}

func TestService_SalesSummary(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		start := daysAgo(30)
		end := daysAgo(0)
		r := report.DateRange{Start: &start, End: &end}

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().
			SalesSummary(gomock.Any(), orgID, r).
			Return(&report.SalesSummary{
				TotalInvoices:    4,
				TotalSales:       decimal.NewFromInt(1144),
				TotalPaid:        decimal.NewFromInt(572),
				TotalOutstanding: decimal.NewFromInt(572),
			}, nil)

		got, err := report.NewService(repo).SalesSummary(context.Background(), orgID, r)
		require.NoError(t, err)
		assert.Equal(t, 4, got.TotalInvoices)
		assert.True(t, got.TotalSales.Equal(got.TotalPaid.Add(got.TotalOutstanding)))
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		start := daysAgo(0)
		end := daysAgo(30)

		svc := report.NewService(report.NewMockRepository(ctrl))
		_, err := svc.SalesSummary(context.Background(), orgID, report.DateRange{Start: &start, End: &end})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_TopCustomers(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := report.NewMockRepository(ctrl)
		repo.EXPECT().
			TopCustomers(gomock.Any(), orgID, report.DateRange{}, 10).
			Return([]report.CustomerSales{
				{CustomerName: "Acme Corp", InvoiceCount: 3, TotalSales: decimal.NewFromInt(900)},
				{CustomerName: "Globex", InvoiceCount: 1, TotalSales: decimal.NewFromInt(100)},
			}, nil)

		got, err := report.NewService(repo).TopCustomers(context.Background(), orgID, report.DateRange{}, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Acme Corp", got[0].CustomerName)
	})

	t.Run("LimitOutOfBounds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := report.NewService(report.NewMockRepository(ctrl))

		for _, limit := range []int{0, 51} {
			_, err := svc.TopCustomers(context.Background(), orgID, report.DateRange{}, limit)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindInvalid))
		}
	})
}
