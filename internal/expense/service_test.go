package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillbooks/quillbooks/internal/catalog"
	"github.com/quillbooks/quillbooks/internal/expense"
	"github.com/quillbooks/quillbooks/internal/fault"
)

func TestService_Create(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()
	customerID := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(repo *expense.MockRepository, customers *catalog.MockReader)
		wantKind  fault.Kind
	}

	tests := []testCase{
		{
			name: "Success",
			params: expense.CreateParams{
				VendorName:  "Staples",
				ExpenseDate: today,
				Category:    "Office Supplies",
				Amount:      decimal.NewFromInt(500),
				TaxAmount:   decimal.NewFromInt(90),
				Method:      expense.MethodCash,
			},
			setupMock: func(repo *expense.MockRepository, _ *catalog.MockReader) {
				repo.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						e.ExpenseNumber = "EXP-00001"
						return nil
					})
			},
		},
		{
			name: "BillableWithCustomer",
			params: expense.CreateParams{
				VendorName:  "Uber",
				ExpenseDate: today,
				Category:    "Travel",
				Amount:      decimal.NewFromInt(350),
				Method:      expense.MethodUPI,
				IsBillable:  true,
				CustomerID:  &customerID,
			},
			setupMock: func(repo *expense.MockRepository, customers *catalog.MockReader) {
				customers.EXPECT().
					Customer(gomock.Any(), orgID, customerID).
					Return(&catalog.Customer{ID: customerID, Name: "Acme Corp"}, nil)
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "BillableWithoutCustomer",
			params: expense.CreateParams{
				VendorName:  "Uber",
				ExpenseDate: today,
				Amount:      decimal.NewFromInt(350),
				Method:      expense.MethodUPI,
				IsBillable:  true,
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "BillableUnknownCustomer",
			params: expense.CreateParams{
				VendorName:  "Uber",
				ExpenseDate: today,
				Amount:      decimal.NewFromInt(350),
				Method:      expense.MethodUPI,
				IsBillable:  true,
				CustomerID:  &customerID,
			},
			setupMock: func(_ *expense.MockRepository, customers *catalog.MockReader) {
				customers.EXPECT().
					Customer(gomock.Any(), orgID, customerID).
					Return(nil, fault.NotFound("customer not found"))
			},
			wantKind: fault.KindNotFound,
		},
		{
			name: "MissingVendorName",
			params: expense.CreateParams{
				ExpenseDate: today,
				Amount:      decimal.NewFromInt(100),
				Method:      expense.MethodCash,
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "ZeroAmount",
			params: expense.CreateParams{
				VendorName:  "Staples",
				ExpenseDate: today,
				Amount:      decimal.Zero,
				Method:      expense.MethodCash,
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "NegativeTax",
			params: expense.CreateParams{
				VendorName:  "Staples",
				ExpenseDate: today,
				Amount:      decimal.NewFromInt(100),
				TaxAmount:   decimal.NewFromInt(-5),
				Method:      expense.MethodCash,
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "UnknownPaymentMethod",
			params: expense.CreateParams{
				VendorName:  "Staples",
				ExpenseDate: today,
				Amount:      decimal.NewFromInt(100),
				Method:      "BARTER",
			},
			wantKind: fault.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			customers := catalog.NewMockReader(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, customers)
			}

			svc := expense.NewService(repo, customers)
			got, err := svc.Create(context.Background(), orgID, actorID, tt.params)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.VendorName, got.VendorName)
			assert.True(t, got.Total.Equal(tt.params.Amount.Add(tt.params.TaxAmount)))
			assert.Equal(t, &actorID, got.CreatedBy)
		})
	}
}

func TestService_Update(t *testing.T) {
	orgID := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	existing := func() *expense.Expense {
		return &expense.Expense{
			ID:             uuid.New(),
			OrganizationID: orgID,
			ExpenseNumber:  "EXP-00007",
			VendorName:     "Staples",
			ExpenseDate:    today,
			Amount:         decimal.NewFromInt(500),
			TaxAmount:      decimal.NewFromInt(90),
			Total:          decimal.NewFromInt(590),
			Method:         expense.MethodCash,
		}
	}

	t.Run("AmountChangeRecomputesTotal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		e := existing()
		newAmount := decimal.NewFromInt(600)

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetExpense(gomock.Any(), orgID, e.ID).Return(e, nil)
		repo.EXPECT().UpdateExpense(gomock.Any(), e).Return(nil)

		svc := expense.NewService(repo, catalog.NewMockReader(ctrl))
		got, err := svc.Update(context.Background(), orgID, e.ID, expense.UpdateParams{
			Amount: &newAmount,
		})
		require.NoError(t, err)
		assert.Equal(t, "690", got.Total.String())
	})

	t.Run("MakingBillableRequiresCustomer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		e := existing()
		billable := true

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetExpense(gomock.Any(), orgID, e.ID).Return(e, nil)

		svc := expense.NewService(repo, catalog.NewMockReader(ctrl))
		_, err := svc.Update(context.Background(), orgID, e.ID, expense.UpdateParams{
			IsBillable: &billable,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().
			GetExpense(gomock.Any(), orgID, id).
			Return(nil, fault.NotFound("expense not found"))

		svc := expense.NewService(repo, catalog.NewMockReader(ctrl))
		_, err := svc.Update(context.Background(), orgID, id, expense.UpdateParams{})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func TestService_List(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		filter := expense.ListFilter{Category: "Travel", Limit: 20}

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().
			ListExpenses(gomock.Any(), orgID, filter).
			Return([]*expense.Expense{{ExpenseNumber: "EXP-00001"}}, nil)
		repo.EXPECT().CountExpenses(gomock.Any(), orgID, filter).Return(1, nil)

		svc := expense.NewService(repo, catalog.NewMockReader(ctrl))
		expenses, total, err := svc.List(context.Background(), orgID, filter)
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := expense.NewService(expense.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))

		for _, filter := range []expense.ListFilter{
			{Skip: -1, Limit: 20},
			{Limit: 0},
			{Limit: 101},
		} {
			_, _, err := svc.List(context.Background(), orgID, filter)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindInvalid))
		}
	})
}
