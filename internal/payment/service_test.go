package payment_test

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
	"github.com/quillbooks/quillbooks/internal/payment"
)

func sentInvoice(balance int64) *payment.InvoiceState {
	sentAt := time.Now().UTC().Add(-time.Hour)
	total := decimal.NewFromInt(286)
	balanceDue := decimal.NewFromInt(balance)

	return &payment.InvoiceState{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     "SENT",
		Total:      total,
		AmountPaid: total.Sub(balanceDue),
		BalanceDue: balanceDue,
		SentAt:     &sentAt,
	}
}

func TestService_Record(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	type testCase struct {
		name      string
		amount    decimal.Decimal
		invoice   *payment.InvoiceState
		setupMock func(t *testing.T, m *payment.MockRepository)
		wantKind  fault.Kind
	}

	tests := []testCase{
		{
			name:    "FullPaymentMarksPaid",
			amount:  decimal.NewFromInt(286),
			invoice: sentInvoice(286),
			setupMock: func(t *testing.T, m *payment.MockRepository) {
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *payment.Payment, upd payment.InvoiceUpdate) error {
						assert.Equal(t, "PAID", upd.Status)
						assert.True(t, upd.AmountPaid.Equal(decimal.NewFromInt(286)))
						assert.True(t, upd.BalanceDue.IsZero())
						assert.True(t, upd.PriorAmountPaid.IsZero())
						assert.NotNil(t, upd.PaidAt)
						p.ID = uuid.New()
						p.PaymentNumber = "PAY-00001"
						return nil
					})
			},
		},
		{
			name:    "PartialPaymentMarksPartiallyPaid",
			amount:  decimal.NewFromInt(100),
			invoice: sentInvoice(286),
			setupMock: func(t *testing.T, m *payment.MockRepository) {
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *payment.Payment, upd payment.InvoiceUpdate) error {
						assert.Equal(t, "PARTIALLY_PAID", upd.Status)
						assert.True(t, upd.AmountPaid.Equal(decimal.NewFromInt(100)))
						assert.True(t, upd.BalanceDue.Equal(decimal.NewFromInt(186)))
						assert.Nil(t, upd.PaidAt)
						return nil
					})
			},
		},
		{
			name:    "SecondPartialClosesBalance",
			amount:  decimal.NewFromInt(186),
			invoice: sentInvoice(186),
			setupMock: func(t *testing.T, m *payment.MockRepository) {
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *payment.Payment, upd payment.InvoiceUpdate) error {
						assert.Equal(t, "PAID", upd.Status)
						assert.True(t, upd.PriorAmountPaid.Equal(decimal.NewFromInt(100)))
						assert.True(t, upd.AmountPaid.Equal(decimal.NewFromInt(286)))
						assert.True(t, upd.BalanceDue.IsZero())
						assert.NotNil(t, upd.PaidAt)
						return nil
					})
			},
		},
		{
			name:     "ExceedsBalance",
			amount:   decimal.NewFromInt(300),
			invoice:  sentInvoice(286),
			wantKind: fault.KindInvalid,
		},
		{
			name:     "ZeroAmount",
			amount:   decimal.Zero,
			invoice:  sentInvoice(286),
			wantKind: fault.KindInvalid,
		},
		{
			name:   "DraftInvoice",
			amount: decimal.NewFromInt(100),
			invoice: &payment.InvoiceState{
				ID:         uuid.New(),
				Status:     "DRAFT",
				BalanceDue: decimal.NewFromInt(286),
			},
			wantKind: fault.KindInvalid,
		},
		{
			name:   "VoidInvoice",
			amount: decimal.NewFromInt(100),
			invoice: &payment.InvoiceState{
				ID:         uuid.New(),
				Status:     "VOID",
				BalanceDue: decimal.NewFromInt(286),
			},
			wantKind: fault.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := payment.NewMockRepository(ctrl)
			repo.EXPECT().
				GetInvoiceState(gomock.Any(), orgID, tt.invoice.ID).
				Return(tt.invoice, nil)
			if tt.setupMock != nil {
				tt.setupMock(t, repo)
			}

			svc := payment.NewService(repo)
			got, err := svc.Record(context.Background(), orgID, actorID, payment.RecordParams{
				InvoiceID:   tt.invoice.ID,
				PaymentDate: today,
				Amount:      tt.amount,
				Method:      payment.MethodBankTransfer,
			})

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.invoice.CustomerID, got.CustomerID)
			assert.Equal(t, tt.invoice.ID, got.InvoiceID)
			assert.True(t, got.Amount.Equal(tt.amount))
		})
	}
}

func TestService_RecordGateway(t *testing.T) {
	orgID := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	params := func(inv *payment.InvoiceState) payment.GatewayParams {
		return payment.GatewayParams{
			InvoiceID:        inv.ID,
			PaymentDate:      today,
			Amount:           decimal.NewFromInt(286),
			GatewayName:      "razorpay",
			GatewayPaymentID: "pay_ABC123",
		}
	}

	t.Run("FirstDelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(286)

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(nil, fault.NotFound("payment not found"))
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *payment.Payment, upd payment.InvoiceUpdate) error {
				assert.Equal(t, "PAID", upd.Status)
				p.ID = uuid.New()
				return nil
			})

		got, err := payment.NewService(repo).RecordGateway(context.Background(), orgID, params(inv))
		require.NoError(t, err)
		assert.Equal(t, payment.MethodGateway, got.Method)
		assert.Equal(t, "pay_ABC123", got.GatewayPaymentID)
		assert.Equal(t, "Payment via razorpay", got.Notes)
	})

	t.Run("ReplayReturnsExisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(286)
		existing := &payment.Payment{ID: uuid.New(), GatewayPaymentID: "pay_ABC123"}

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(existing, nil)

		got, err := payment.NewService(repo).RecordGateway(context.Background(), orgID, params(inv))
		require.NoError(t, err)
		assert.Same(t, existing, got)
	})

	t.Run("ConcurrentDeliveryLosesCleanly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(286)
		winner := &payment.Payment{ID: uuid.New(), GatewayPaymentID: "pay_ABC123"}

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(nil, fault.NotFound("payment not found"))
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fault.Conflict("gateway payment already recorded"))
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(winner, nil)

		got, err := payment.NewService(repo).RecordGateway(context.Background(), orgID, params(inv))
		require.NoError(t, err)
		assert.Same(t, winner, got)
	})

	t.Run("ConcurrentWinnerConsumedBalance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(286)
		winner := &payment.Payment{ID: uuid.New(), GatewayPaymentID: "pay_ABC123"}

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(nil, fault.NotFound("payment not found"))
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fault.Invalid("payment amount (286) exceeds balance due (0)"))
		repo.EXPECT().
			FindByGatewayID(gomock.Any(), orgID, "pay_ABC123").
			Return(winner, nil)

		got, err := payment.NewService(repo).RecordGateway(context.Background(), orgID, params(inv))
		require.NoError(t, err)
		assert.Same(t, winner, got)
	})

	t.Run("MissingGatewayPaymentID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := payment.NewService(payment.NewMockRepository(ctrl))
		_, err := svc.RecordGateway(context.Background(), orgID, payment.GatewayParams{
			InvoiceID: uuid.New(),
			Amount:    decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Void(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()

	voidable := func(invoiceID uuid.UUID, amount int64) *payment.Payment {
		return &payment.Payment{
			ID:             uuid.New(),
			OrganizationID: orgID,
			InvoiceID:      invoiceID,
			Amount:         decimal.NewFromInt(amount),
		}
	}

	t.Run("FullPaymentRestoresSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(0)
		inv.Status = "PAID"
		p := voidable(inv.ID, 286)

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().GetPayment(gomock.Any(), orgID, p.ID).Return(p, nil)
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			VoidPayment(gomock.Any(), p, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *payment.Payment, upd payment.InvoiceUpdate) error {
				assert.Equal(t, "SENT", upd.Status)
				assert.True(t, upd.PriorAmountPaid.Equal(decimal.NewFromInt(286)))
				assert.True(t, upd.AmountPaid.IsZero())
				assert.True(t, upd.BalanceDue.Equal(decimal.NewFromInt(286)))
				assert.Nil(t, upd.PaidAt)
				return nil
			})

		got, err := payment.NewService(repo).Void(context.Background(), orgID, actorID, p.ID, "wrong amount")
		require.NoError(t, err)
		assert.True(t, got.IsVoided)
		assert.Equal(t, "wrong amount", got.VoidReason)
		assert.Equal(t, actorID, *got.VoidedBy)
		assert.NotNil(t, got.VoidedAt)
	})

	t.Run("UnsentInvoiceRestoresDraft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(0)
		inv.Status = "PAID"
		inv.SentAt = nil
		p := voidable(inv.ID, 286)

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().GetPayment(gomock.Any(), orgID, p.ID).Return(p, nil)
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			VoidPayment(gomock.Any(), p, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *payment.Payment, upd payment.InvoiceUpdate) error {
				assert.Equal(t, "DRAFT", upd.Status)
				assert.True(t, upd.AmountPaid.IsZero())
				return nil
			})

		_, err := payment.NewService(repo).Void(context.Background(), orgID, actorID, p.ID, "test payment")
		require.NoError(t, err)
	})

	t.Run("RemainderStaysPartiallyPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := sentInvoice(86) // 200 paid across two payments
		p := voidable(inv.ID, 100)

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().GetPayment(gomock.Any(), orgID, p.ID).Return(p, nil)
		repo.EXPECT().GetInvoiceState(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().
			VoidPayment(gomock.Any(), p, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *payment.Payment, upd payment.InvoiceUpdate) error {
				assert.Equal(t, "PARTIALLY_PAID", upd.Status)
				assert.True(t, upd.AmountPaid.Equal(decimal.NewFromInt(100)))
				assert.True(t, upd.BalanceDue.Equal(decimal.NewFromInt(186)))
				assert.Nil(t, upd.PaidAt)
				return nil
			})

		_, err := payment.NewService(repo).Void(context.Background(), orgID, actorID, p.ID, "duplicate")
		require.NoError(t, err)
	})

	t.Run("AlreadyVoided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		p := &payment.Payment{ID: uuid.New(), OrganizationID: orgID, IsVoided: true}

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().GetPayment(gomock.Any(), orgID, p.ID).Return(p, nil)

		_, err := payment.NewService(repo).Void(context.Background(), orgID, actorID, p.ID, "again")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("MissingReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := payment.NewService(payment.NewMockRepository(ctrl))
		_, err := svc.Void(context.Background(), orgID, actorID, uuid.New(), "")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_List(t *testing.T) {
	orgID := uuid.New()

	t.Run("VoidedFilterPassedThrough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		voided := false
		filter := payment.ListFilter{IsVoided: &voided, Skip: 0, Limit: 100}
		payments := []*payment.Payment{{ID: uuid.New()}}

		repo := payment.NewMockRepository(ctrl)
		repo.EXPECT().ListPayments(gomock.Any(), orgID, filter).Return(payments, nil)
		repo.EXPECT().CountPayments(gomock.Any(), orgID, filter).Return(1, nil)

		got, total, err := payment.NewService(repo).List(context.Background(), orgID, filter)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, got, 1)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := payment.NewService(payment.NewMockRepository(ctrl))

		for _, filter := range []payment.ListFilter{
			{Skip: -1, Limit: 100},
			{Skip: 0, Limit: 0},
			{Skip: 0, Limit: 101},
		} {
			_, _, err := svc.List(context.Background(), orgID, filter)
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindInvalid))
		}
	})
}
