package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbooks/quillbooks/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateLine(t *testing.T) {
	type testCase struct {
		name          string
		quantity      string
		rate          string
		taxRate       string
		wantAmount    string
		wantTaxAmount string
		wantTotal     string
		wantErr       bool
	}

	tests := []testCase{
		{
			name:     "TwoAtHundredWithGST",
			quantity: "2", rate: "100", taxRate: "18",
			wantAmount: "200.00", wantTaxAmount: "36.00", wantTotal: "236.00",
		},
		{
			name:     "OneAtFiftyNoTax",
			quantity: "1", rate: "50", taxRate: "0",
			wantAmount: "50.00", wantTaxAmount: "0.00", wantTotal: "50.00",
		},
		{
			name:     "FractionalQuantity",
			quantity: "2.345", rate: "9.99", taxRate: "5",
			// 2.345 * 9.99 = 23.42655 -> 23.43; 23.43 * 0.05 = 1.1715 -> 1.17
			wantAmount: "23.43", wantTaxAmount: "1.17", wantTotal: "24.60",
		},
		{
			name:     "HalfRoundsAwayFromZero",
			quantity: "1.5", rate: "0.07", taxRate: "0",
			// 0.105 rounds up, not to even
			wantAmount: "0.11", wantTaxAmount: "0.00", wantTotal: "0.11",
		},
		{
			name:     "TaxHalfRoundsAwayFromZero",
			quantity: "1", rate: "0.30", taxRate: "5",
			// 0.30 * 0.05 = 0.015 -> 0.02
			wantAmount: "0.30", wantTaxAmount: "0.02", wantTotal: "0.32",
		},
		{
			name:     "ZeroQuantity",
			quantity: "0", rate: "10", taxRate: "0",
			wantErr: true,
		},
		{
			name:     "NegativeRate",
			quantity: "1", rate: "-10", taxRate: "0",
			wantErr: true,
		},
		{
			name:     "TaxRateOverHundred",
			quantity: "1", rate: "10", taxRate: "101",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.CalculateLine(d(tt.quantity), d(tt.rate), d(tt.taxRate))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(d(tt.wantAmount)), "amount: got %s", got.Amount)
			assert.True(t, got.TaxAmount.Equal(d(tt.wantTaxAmount)), "tax_amount: got %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(d(tt.wantTotal)), "total: got %s", got.Total)
		})
	}
}

func TestCalculateLine_TotalIsSum(t *testing.T) {
	cases := [][3]string{
		{"1", "0.01", "18"},
		{"3.333", "7.77", "12.5"},
		{"1000", "999.99", "28"},
		{"0.001", "5000", "100"},
	}

	for _, c := range cases {
		got, err := money.CalculateLine(d(c[0]), d(c[1]), d(c[2]))
		require.NoError(t, err)

		assert.True(t, got.Total.Equal(got.Amount.Add(got.TaxAmount)))
		assert.LessOrEqual(t, int(got.Amount.Exponent()*-1), 2)
		assert.LessOrEqual(t, int(got.TaxAmount.Exponent()*-1), 2)
	}
}
