package tax_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/tax"
)

func TestService_Create(t *testing.T) {
	orgID := uuid.New()

	type testCase struct {
		name      string
		params    tax.CreateParams
		setupMock func(m *tax.MockRepository)
		wantKind  fault.Kind
	}

	tests := []testCase{
		{
			name: "Success",
			params: tax.CreateParams{
				Name: "GST 18%",
				Rate: decimal.NewFromInt(18),
			},
			setupMock: func(m *tax.MockRepository) {
				m.EXPECT().
					FindByName(gomock.Any(), orgID, "GST 18%").
					Return(nil, fault.NotFound("tax not found"))
				m.EXPECT().
					CreateTax(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *tax.Tax) error {
						tx.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "DuplicateName",
			params: tax.CreateParams{
				Name: "GST 18%",
				Rate: decimal.NewFromInt(18),
			},
			setupMock: func(m *tax.MockRepository) {
				m.EXPECT().
					FindByName(gomock.Any(), orgID, "GST 18%").
					Return(&tax.Tax{ID: uuid.New()}, nil)
			},
			wantKind: fault.KindConflict,
		},
		{
			name: "RateAboveHundred",
			params: tax.CreateParams{
				Name: "Impossible",
				Rate: decimal.NewFromInt(101),
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "NegativeRate",
			params: tax.CreateParams{
				Name: "Impossible",
				Rate: decimal.NewFromInt(-1),
			},
			wantKind: fault.KindInvalid,
		},
		{
			name:     "MissingName",
			params:   tax.CreateParams{Rate: decimal.NewFromInt(5)},
			wantKind: fault.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tax.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := tax.NewService(repo)
			got, err := svc.Create(context.Background(), orgID, tt.params)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				return
			}

			require.NoError(t, err)
			assert.True(t, got.IsActive)
			assert.Equal(t, tax.TypeGST, got.Type)
		})
	}
}

func TestService_Update(t *testing.T) {
	orgID := uuid.New()
	taxID := uuid.New()

	t.Run("RenameToExistingName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tax.NewMockRepository(ctrl)
		repo.EXPECT().
			GetTax(gomock.Any(), orgID, taxID).
			Return(&tax.Tax{ID: taxID, Name: "GST 18%"}, nil)
		repo.EXPECT().
			FindByName(gomock.Any(), orgID, "GST 12%").
			Return(&tax.Tax{ID: uuid.New()}, nil)

		name := "GST 12%"
		_, err := tax.NewService(repo).Update(context.Background(), orgID, taxID, tax.UpdateParams{Name: &name})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConflict))
	})

	t.Run("Deactivate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tax.NewMockRepository(ctrl)
		repo.EXPECT().
			GetTax(gomock.Any(), orgID, taxID).
			Return(&tax.Tax{ID: taxID, Name: "GST 18%", IsActive: true}, nil)
		repo.EXPECT().UpdateTax(gomock.Any(), gomock.Any()).Return(nil)

		inactive := false
		got, err := tax.NewService(repo).Update(context.Background(), orgID, taxID, tax.UpdateParams{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}
