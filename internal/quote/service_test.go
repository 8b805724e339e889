package quote_test

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
	"github.com/quillbooks/quillbooks/internal/quote"
)

var (
	today     = time.Now().UTC().Truncate(24 * time.Hour)
	yesterday = today.AddDate(0, 0, -1)
	nextWeek  = today.AddDate(0, 0, 7)
)

func TestService_Create(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()
	customerID := uuid.New()
	taxID := uuid.New()

	cust := &catalog.Customer{
		ID:               customerID,
		Name:             "Acme Traders",
		CurrencyCode:     "INR",
		PaymentTermsDays: 30,
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := quote.NewMockRepository(ctrl)
		cat := catalog.NewMockReader(ctrl)

		cat.EXPECT().Customer(gomock.Any(), orgID, customerID).Return(cust, nil)
		cat.EXPECT().
			Tax(gomock.Any(), orgID, taxID).
			Return(&catalog.Tax{ID: taxID, Rate: decimal.NewFromInt(18)}, nil)
		repo.EXPECT().
			CreateQuote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q *quote.Quote) error {
				q.ID = uuid.New()
				q.QuoteNumber = "QT-00001"
				return nil
			})

		svc := quote.NewService(repo, cat)
		got, err := svc.Create(context.Background(), orgID, actorID, quote.CreateParams{
			CustomerID: customerID,
			QuoteDate:  today,
			ExpiryDate: nextWeek,
			Items: []quote.LineItemParams{
				{Description: "Consulting", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100), TaxID: &taxID},
				{Description: "Travel", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, quote.StatusDraft, got.Status)
		assert.Equal(t, "QT-00001", got.QuoteNumber)
		assert.Equal(t, "250", got.Subtotal.String())
		assert.Equal(t, "36", got.TaxTotal.String())
		assert.Equal(t, "286", got.Total.String())
		assert.Equal(t, "INR", got.CurrencyCode)
		require.Len(t, got.Items, 2)
		assert.Equal(t, 0, got.Items[0].SortOrder)
		assert.Equal(t, 1, got.Items[1].SortOrder)
	})

	t.Run("NoLineItems", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := quote.NewService(quote.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Create(context.Background(), orgID, actorID, quote.CreateParams{
			CustomerID: customerID,
			QuoteDate:  today,
			ExpiryDate: nextWeek,
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("ExpiryBeforeQuoteDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := quote.NewService(quote.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Create(context.Background(), orgID, actorID, quote.CreateParams{
			CustomerID: customerID,
			QuoteDate:  today,
			ExpiryDate: yesterday,
			Items:      []quote.LineItemParams{{Description: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cat := catalog.NewMockReader(ctrl)
		cat.EXPECT().
			Customer(gomock.Any(), orgID, customerID).
			Return(nil, fault.NotFound("customer not found"))

		svc := quote.NewService(quote.NewMockRepository(ctrl), cat)
		_, err := svc.Create(context.Background(), orgID, actorID, quote.CreateParams{
			CustomerID: customerID,
			QuoteDate:  today,
			ExpiryDate: nextWeek,
			Items:      []quote.LineItemParams{{Description: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}

func quoteInState(orgID uuid.UUID, status quote.Status) *quote.Quote {
	sentAt := time.Now().UTC().Add(-time.Hour)

	q := &quote.Quote{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CustomerID:     uuid.New(),
		QuoteNumber:    "QT-00001",
		Status:         status,
		QuoteDate:      yesterday,
		ExpiryDate:     nextWeek,
		Total:          decimal.NewFromInt(286),
	}
	if status != quote.StatusDraft {
		q.SentAt = &sentAt
	}

	return q
}

func TestService_Send(t *testing.T) {
	orgID := uuid.New()

	t.Run("DraftToSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusDraft)

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)
		repo.EXPECT().UpdateQuoteState(gomock.Any(), q).Return(nil)

		got, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, q.ID)
		require.NoError(t, err)
		assert.Equal(t, quote.StatusSent, got.Status)
		assert.NotNil(t, got.SentAt)
	})

	t.Run("AlreadySentIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusSent)
		originalSentAt := *q.SentAt

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		got, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, q.ID)
		require.NoError(t, err)
		assert.Equal(t, quote.StatusSent, got.Status)
		assert.Equal(t, originalSentAt, *got.SentAt)
	})

	t.Run("RejectedCannotBeSent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusRejected)

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		_, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Send(context.Background(), orgID, q.ID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Accept(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusSent)
		q.Notes = "Original"

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)
		repo.EXPECT().UpdateQuoteState(gomock.Any(), q).Return(nil)

		got, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Accept(context.Background(), orgID, q.ID, "Looks good")
		require.NoError(t, err)
		assert.Equal(t, quote.StatusAccepted, got.Status)
		assert.NotNil(t, got.AcceptedAt)
		assert.Equal(t, "Original\n\nAcceptance Notes: Looks good", got.Notes)
	})

	t.Run("Expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusSent)
		q.ExpiryDate = yesterday

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		_, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Accept(context.Background(), orgID, q.ID, "")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
		assert.Equal(t, quote.StatusSent, q.Status)
	})

	t.Run("FromDraftFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusDraft)

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		_, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Accept(context.Background(), orgID, q.ID, "")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Reject(t *testing.T) {
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusViewed)

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)
		repo.EXPECT().UpdateQuoteState(gomock.Any(), q).Return(nil)

		got, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Reject(context.Background(), orgID, q.ID, "Too expensive")
		require.NoError(t, err)
		assert.Equal(t, quote.StatusRejected, got.Status)
		assert.Equal(t, "\n\nRejection Reason: Too expensive", got.Notes)
	})

	t.Run("MissingReason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := quote.NewService(quote.NewMockRepository(ctrl), catalog.NewMockReader(ctrl))
		_, err := svc.Reject(context.Background(), orgID, uuid.New(), "")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestService_Convert(t *testing.T) {
	orgID := uuid.New()
	actorID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusAccepted)

		repo := quote.NewMockRepository(ctrl)
		cat := catalog.NewMockReader(ctrl)

		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)
		cat.EXPECT().
			Customer(gomock.Any(), orgID, q.CustomerID).
			Return(&catalog.Customer{ID: q.CustomerID, PaymentTermsDays: 45}, nil)
		repo.EXPECT().
			ConvertQuote(gomock.Any(), q, gomock.Any()).
			DoAndReturn(func(_ context.Context, q *quote.Quote, conv *quote.Conversion) error {
				assert.Equal(t, 45, conv.PaymentTermsDays)
				assert.Equal(t, actorID, conv.CreatedBy)
				conv.InvoiceID = uuid.New()
				q.ConvertedInvoiceID = &conv.InvoiceID
				q.Status = quote.StatusConverted
				return nil
			})

		got, err := quote.NewService(repo, cat).Convert(context.Background(), orgID, q.ID, actorID)
		require.NoError(t, err)
		assert.Equal(t, quote.StatusConverted, got.Status)
		assert.NotNil(t, got.ConvertedInvoiceID)
	})

	t.Run("AlreadyConverted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		invID := uuid.New()
		q := quoteInState(orgID, quote.StatusAccepted)
		q.ConvertedInvoiceID = &invID

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		_, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Convert(context.Background(), orgID, q.ID, actorID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})

	t.Run("NotAccepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		q := quoteInState(orgID, quote.StatusSent)

		repo := quote.NewMockRepository(ctrl)
		repo.EXPECT().GetQuote(gomock.Any(), orgID, q.ID).Return(q, nil)

		_, err := quote.NewService(repo, catalog.NewMockReader(ctrl)).Convert(context.Background(), orgID, q.ID, actorID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindInvalid))
	})
}

func TestQuote_EffectiveStatus(t *testing.T) {
	q := quoteInState(uuid.New(), quote.StatusSent)
	q.ExpiryDate = yesterday

	assert.Equal(t, quote.StatusExpired, q.EffectiveStatus(today))

	q.Status = quote.StatusAccepted
	assert.Equal(t, quote.StatusAccepted, q.EffectiveStatus(today))
}
