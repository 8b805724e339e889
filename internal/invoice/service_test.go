package invoice_test

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
	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/invoice"
)

var (
	today     = time.Now().UTC().Truncate(24 * time.Hour)
	yesterday = today.AddDate(0, 0, -1)
	in30Days  = today.AddDate(0, 0, 30)
)

func TestService_Create(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()
	customerID := uuid.New()
	taxID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		cat := catalog.NewMockReader(ctrl)

		cat.EXPECT().
			Customer(gomock.Any(), orgID, customerID).
			Return(&catalog.Customer{
				ID:               customerID,
				CurrencyCode:     "INR",
				PaymentTermsDays: 30,
			}, nil)
		cat.EXPECT().
			Tax(gomock.Any(), orgID, taxID).
			Return(&catalog.Tax{ID: taxID, Rate: decimal.NewFromInt(18)}, nil)
		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				inv.ID = uuid.New()
				inv.InvoiceNumber = "INV-00001"
				return nil
			})

		svc := invoice.NewService(repo, cat)
		got, err := svc.Create(context.Background(), orgID, actorID, invoice.CreateParams{
			CustomerID:  customerID,
			InvoiceDate: today,
			DueDate:     in30Days,
			Items: []invoice.LineItemParams{
				{Description: "Consulting", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100), TaxID: &taxID},
				{Description: "Travel", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, invoice.StatusDraft, got.Status)
		assert.Equal(t, "250", got.Subtotal.String())
		assert.Equal(t, "36", got.TaxTotal.String())
		assert.Equal(t, "286", got.Total.String())
		assert.True(t, got.AmountPaid.IsZero())
		assert.True(t, got.BalanceDue.Equal(got.Total))
		assert.Equal(t, "INR", got.CurrencyCode)
		assert.Equal(t, 30, got.PaymentTermsDays)
	})

	t.Run("DueDateBeforeInvoiceDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := invoice.NewService(invoice.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Create(context.Background(), orgID, actorID, invoice.CreateParams{
			CustomerID:  customerID,
			InvoiceDate: today,
			DueDate:     yesterday,
			Items:       []invoice.LineItemParams{{Description: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("NoLineItems", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := invoice.NewService(invoice.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Create(context.Background(), orgID, actorID, invoice.CreateParams{
			CustomerID:  customerID,
			InvoiceDate: today,
			DueDate:     in30Days,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func invoiceInState(orgID uuid.UUID, status invoice.Status) *invoice.Invoice {
	sentAt := time.Now().UTC().Add(-time.Hour)
	total := decimal.NewFromInt(286)

	inv := &invoice.Invoice{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CustomerID:     uuid.New(),
		InvoiceNumber:  "INV-00001",
		Status:         status,
		InvoiceDate:    yesterday,
		DueDate:        in30Days,
		Total:          total,
		AmountPaid:     decimal.Zero,
		BalanceDue:     total,
	}
	if status != invoice.StatusDraft {
		inv.SentAt = &sentAt
	}
	if status == invoice.StatusPaid {
		inv.AmountPaid = total
		inv.BalanceDue = decimal.Zero
	}
	if status == invoice.StatusPartiallyPaid {
		inv.AmountPaid = decimal.NewFromInt(100)
		inv.BalanceDue = total.Sub(inv.AmountPaid)
	}

	return inv
}

func TestService_Send(t *testing.T) {
	orgID := uuid.New()

	t.Run("DraftToSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusDraft)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().UpdateInvoiceState(gomock.Any(), inv).Return(nil)

		got, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusSent, got.Status)
		assert.NotNil(t, got.SentAt)
	})

	t.Run("AlreadySentIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusSent)
		originalSentAt := *inv.SentAt

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)

		got, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, originalSentAt, *got.SentAt)
	})

	t.Run("VoidCannotBeSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusVoid)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)

		_, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, inv.ID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Void(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusSent)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().UpdateInvoiceState(gomock.Any(), inv).Return(nil)

		got, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Void(context.Background(), orgID, inv.ID, "duplicate billing")
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusVoid, got.Status)
		assert.Equal(t, "duplicate billing", got.VoidReason)
		assert.NotNil(t, got.VoidedAt)
	})

	t.Run("PaidInvoiceRequiresVoidingPaymentsFirst", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusPaid)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)

		_, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Void(context.Background(), orgID, inv.ID, "mistake")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
		assert.Contains(t, err.Error(), "void the payments first")
	})

	t.Run("AlreadyVoid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusVoid)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)

		_, err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Void(context.Background(), orgID, inv.ID, "again")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("MissingReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := invoice.NewService(invoice.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Void(context.Background(), orgID, uuid.New(), "")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Delete(t *testing.T) {
	orgID := uuid.New()

	t.Run("DraftDeletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusDraft)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)
		repo.EXPECT().SoftDeleteInvoice(gomock.Any(), orgID, inv.ID).Return(nil)

		err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Delete(context.Background(), orgID, inv.ID)
		require.NoError(t, err)
	})

	t.Run("SentRefuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		inv := invoiceInState(orgID, invoice.StatusSent)

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().GetInvoice(gomock.Any(), orgID, inv.ID).Return(inv, nil)

		err := invoice.NewService(repo, catalog.NewMockReader(ctrl)).Delete(context.Background(), orgID, inv.ID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestInvoice_EffectiveStatus(t *testing.T) {
	inv := invoiceInState(uuid.New(), invoice.StatusSent)
	inv.DueDate = yesterday

	assert.Equal(t, invoice.StatusOverdue, inv.EffectiveStatus(today))

	inv.BalanceDue = decimal.Zero
	assert.Equal(t, invoice.StatusSent, inv.EffectiveStatus(today))

	paid := invoiceInState(uuid.New(), invoice.StatusPaid)
	paid.DueDate = yesterday
	assert.Equal(t, invoice.StatusPaid, paid.EffectiveStatus(today))
}
