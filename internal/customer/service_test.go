package customer_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillbooks/quillbooks/internal/customer"
	"github.com/quillbooks/quillbooks/internal/fault"
)

func TestService_Create(t *testing.T) {
	orgID := uuid.New()

	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantKind  fault.Kind
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:  "Acme Traders",
				Email: "Billing@Acme.in",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), orgID, "billing@acme.in").
					Return(nil, fault.NotFound("customer not found"))
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "NoEmailSkipsDuplicateCheck",
			params: customer.CreateParams{
				Name: "Walk-in",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "DuplicateEmail",
			params: customer.CreateParams{
				Name:  "Acme Traders",
				Email: "billing@acme.in",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					FindByEmail(gomock.Any(), orgID, "billing@acme.in").
					Return(&customer.Customer{ID: uuid.New()}, nil)
			},
			wantKind: fault.KindConflict,
		},
		{
			name:     "MissingName",
			params:   customer.CreateParams{Email: "billing@acme.in"},
			wantKind: fault.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), orgID, tt.params)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				return
			}

			require.NoError(t, err)
			assert.True(t, got.IsActive)
			assert.Equal(t, customer.TypeBusiness, got.Type)
			assert.Equal(t, "INR", got.CurrencyCode)
			assert.Equal(t, 30, got.PaymentTermsDays)
		})
	}
}

func TestService_Update(t *testing.T) {
	orgID := uuid.New()
	custID := uuid.New()

	existing := func() *customer.Customer {
		return &customer.Customer{
			ID:             custID,
			OrganizationID: orgID,
			Name:           "Acme Traders",
			Email:          "billing@acme.in",
			IsActive:       true,
		}
	}

	t.Run("DuplicateEmailOnOtherCustomer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().GetCustomer(gomock.Any(), orgID, custID).Return(existing(), nil)
		repo.EXPECT().
			FindByEmail(gomock.Any(), orgID, "other@acme.in").
			Return(&customer.Customer{ID: uuid.New()}, nil)

		email := "other@acme.in"
		_, err := customer.NewService(repo).Update(context.Background(), orgID, custID, customer.UpdateParams{Email: &email})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConflict))
	})

	t.Run("SameEmailAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().GetCustomer(gomock.Any(), orgID, custID).Return(existing(), nil)
		repo.EXPECT().
			FindByEmail(gomock.Any(), orgID, "billing@acme.in").
			Return(existing(), nil)
		repo.EXPECT().UpdateCustomer(gomock.Any(), gomock.Any()).Return(nil)

		email := "Billing@Acme.in"
		name := "Acme Traders Pvt Ltd"
		got, err := customer.NewService(repo).Update(context.Background(), orgID, custID, customer.UpdateParams{
			Email: &email,
			Name:  &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "billing@acme.in", got.Email)
		assert.Equal(t, "Acme Traders Pvt Ltd", got.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().
			GetCustomer(gomock.Any(), orgID, custID).
			Return(nil, fault.NotFound("customer not found"))

		_, err := customer.NewService(repo).Update(context.Background(), orgID, custID, customer.UpdateParams{})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func TestService_List(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		filter := customer.ListFilter{Search: "acme", Limit: 10}

		repo := customer.NewMockRepository(ctrl)
		repo.EXPECT().
			ListCustomers(gomock.Any(), orgID, filter).
			Return([]*customer.Customer{{ID: uuid.New()}}, nil)
		repo.EXPECT().
			CountCustomers(gomock.Any(), orgID, filter).
			Return(7, nil)

		customers, total, err := customer.NewService(repo).List(context.Background(), orgID, filter)
		require.NoError(t, err)
		assert.Len(t, customers, 1)
		assert.Equal(t, 7, total)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := customer.NewService(customer.NewMockRepository(ctrl))

		for _, filter := range []customer.ListFilter{
			{Skip: -1, Limit: 10},
			{Limit: 0},
			{Limit: 101},
		} {
			_, _, err := svc.List(context.Background(), orgID, filter)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindInvalid))
		}
	})
}
