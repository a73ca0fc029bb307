package usecase_test

import (
	"errors"
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/migaloo-labs/bqs/bonds/usecase"
	"github.com/migaloo-labs/bqs/domain"
)

const defaultTokenPrecision = 6

func TestComputeFeeBreakdown(t *testing.T) {
	testcases := []struct {
		name string

		totalSupply       string
		unitPrice         string
		decimals          int
		feeRatePercent    string
		takerSharePercent string

		expected    domain.FeeBreakdown
		expectedErr bool
	}{
		{
			name: "default fee rate and split",

			totalSupply:       "100",
			unitPrice:         "2",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expected: domain.FeeBreakdown{
				GrossAmount: "200.000000",
				TotalFee:    "6.000000",
				TakerFee:    "1.800000",
				MakerFee:    "4.200000",
				NetAmount:   "194.000000",

				TotalFeePercent: "3.00",
				TakerFeePercent: "0.90",
				MakerFeePercent: "2.10",
			},
		},
		{
			name: "fractional supply and price",

			totalSupply:       "33.5",
			unitPrice:         "0.1",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expected: domain.FeeBreakdown{
				GrossAmount: "3.350000",
				TotalFee:    "0.100500",
				TakerFee:    "0.030150",
				MakerFee:    "0.070350",
				NetAmount:   "3.249500",

				TotalFeePercent: "3.00",
				TakerFeePercent: "0.90",
				MakerFeePercent: "2.10",
			},
		},
		{
			name: "full taker split",

			totalSupply:       "100",
			unitPrice:         "2",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "100",

			expected: domain.FeeBreakdown{
				GrossAmount: "200.000000",
				TotalFee:    "6.000000",
				TakerFee:    "6.000000",
				MakerFee:    "0.000000",
				NetAmount:   "194.000000",

				TotalFeePercent: "3.00",
				TakerFeePercent: "3.00",
				MakerFeePercent: "0.00",
			},
		},
		{
			name: "zero supply",

			totalSupply:       "0",
			unitPrice:         "2",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expected: domain.FeeBreakdown{
				GrossAmount: "0.000000",
				TotalFee:    "0.000000",
				TakerFee:    "0.000000",
				MakerFee:    "0.000000",
				NetAmount:   "0.000000",

				TotalFeePercent: "0.00",
				TakerFeePercent: "0.00",
				MakerFeePercent: "0.00",
			},
		},
		{
			name: "zero decimals token",

			totalSupply:       "100",
			unitPrice:         "2",
			decimals:          0,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expected: domain.FeeBreakdown{
				GrossAmount: "200",
				TotalFee:    "6",
				TakerFee:    "1",
				MakerFee:    "4",
				NetAmount:   "194",

				TotalFeePercent: "3.00",
				TakerFeePercent: "0.90",
				MakerFeePercent: "2.10",
			},
		},
		{
			name: "missing supply",

			totalSupply:       "",
			unitPrice:         "2",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expectedErr: true,
		},
		{
			name: "unparseable price",

			totalSupply:       "100",
			unitPrice:         "two",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expectedErr: true,
		},
		{
			name: "negative supply",

			totalSupply:       "-1",
			unitPrice:         "2",
			decimals:          defaultTokenPrecision,
			feeRatePercent:    "3",
			takerSharePercent: "30",

			expectedErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			feeRate := osmomath.MustNewBigDecFromStr(tc.feeRatePercent)
			takerShare := osmomath.MustNewBigDecFromStr(tc.takerSharePercent)

			actual, err := usecase.ComputeFeeBreakdown(tc.totalSupply, tc.unitPrice, tc.decimals, feeRate, takerShare)

			if tc.expectedErr {
				require.Error(t, err)

				var invalidInputErr domain.InvalidInputError
				require.True(t, errors.As(err, &invalidInputErr))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

// The maker fee is computed as the complement of the taker fee so the sum
// invariant must hold exactly at the token's precision for any split.
func TestComputeFeeBreakdown_SumInvariant(t *testing.T) {
	supplies := []string{"1", "33.5", "1234.567891", "0.000001", "99999999"}
	prices := []string{"0.1", "1", "2.5", "0.000003"}

	feeRate := osmomath.MustNewBigDecFromStr("3")

	for _, supply := range supplies {
		for _, price := range prices {
			for takerShare := 0; takerShare <= 100; takerShare += 7 {
				breakdown, err := usecase.ComputeFeeBreakdown(supply, price, defaultTokenPrecision, feeRate, osmomath.NewBigDec(int64(takerShare)))
				require.NoError(t, err)

				maker := osmomath.MustNewBigDecFromStr(breakdown.MakerFee)
				taker := osmomath.MustNewBigDecFromStr(breakdown.TakerFee)
				total := osmomath.MustNewBigDecFromStr(breakdown.TotalFee)
				gross := osmomath.MustNewBigDecFromStr(breakdown.GrossAmount)
				net := osmomath.MustNewBigDecFromStr(breakdown.NetAmount)

				// One unit at the token's precision bounds the formatting error.
				oneUnit := osmomath.MustNewBigDecFromStr("0.000001")

				require.True(t, total.Sub(maker.Add(taker)).Abs().LTE(oneUnit),
					"supply %s price %s split %d: total %s != maker %s + taker %s", supply, price, takerShare, total, maker, taker)

				require.True(t, gross.Sub(total).Sub(net).Abs().LTE(oneUnit),
					"supply %s price %s split %d: net %s != gross %s - total %s", supply, price, takerShare, net, gross, total)
			}
		}
	}
}

func TestComputeFeeBreakdown_Idempotent(t *testing.T) {
	feeRate := osmomath.MustNewBigDecFromStr("3")
	takerShare := osmomath.NewBigDec(30)

	first, err := usecase.ComputeFeeBreakdown("123.456", "0.789", defaultTokenPrecision, feeRate, takerShare)
	require.NoError(t, err)

	second, err := usecase.ComputeFeeBreakdown("123.456", "0.789", defaultTokenPrecision, feeRate, takerShare)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestComputeMarkupPrice(t *testing.T) {
	testcases := []struct {
		name string

		markupPercent  string
		listTokenPrice string
		saleTokenPrice string

		expected    string
		expectedErr bool
	}{
		{
			name: "positive markup",

			markupPercent:  "25",
			listTokenPrice: "2.0",
			saleTokenPrice: "1.0",

			expected: "2.500000",
		},
		{
			name: "zero markup is the raw price ratio",

			markupPercent:  "0",
			listTokenPrice: "3",
			saleTokenPrice: "2",

			expected: "1.500000",
		},
		{
			name: "negative markup is a discount",

			markupPercent:  "-50",
			listTokenPrice: "2.0",
			saleTokenPrice: "1.0",

			expected: "1.000000",
		},
		{
			name: "zero sale price is unavailable",

			markupPercent:  "10",
			listTokenPrice: "2.0",
			saleTokenPrice: "0",

			expectedErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			markup := osmomath.MustNewBigDecFromStr(tc.markupPercent)
			listPrice := osmomath.MustNewBigDecFromStr(tc.listTokenPrice)
			salePrice := osmomath.MustNewBigDecFromStr(tc.saleTokenPrice)

			actual, err := usecase.ComputeMarkupPrice(markup, listPrice, salePrice)

			if tc.expectedErr {
				require.Error(t, err)

				var unavailableErr domain.DataUnavailableError
				require.True(t, errors.As(err, &unavailableErr))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

// The markup-adjusted price must be strictly increasing in the markup for
// a fixed price pair.
func TestComputeMarkupPrice_Monotonic(t *testing.T) {
	listPrice := osmomath.MustNewBigDecFromStr("1.5")
	salePrice := osmomath.MustNewBigDecFromStr("1.5")

	previous := osmomath.BigDec{}
	for markup := -100; markup <= 100; markup += 5 {
		priceStr, err := usecase.ComputeMarkupPrice(osmomath.NewBigDec(int64(markup)), listPrice, salePrice)
		require.NoError(t, err)

		price := osmomath.MustNewBigDecFromStr(priceStr)
		if !previous.IsNil() {
			require.True(t, price.GT(previous), "markup %d: %s not greater than %s", markup, price, previous)
		}
		previous = price
	}
}

func TestComputeDiscountPercent(t *testing.T) {
	testcases := []struct {
		name string

		bondUnitPrice  string
		listTokenPrice string
		saleTokenPrice string

		expected    string
		expectedErr bool
	}{
		{
			name: "discount versus the market",

			bondUnitPrice:  "1.5",
			listTokenPrice: "2.0",
			saleTokenPrice: "1.0",

			// 1.5 in quote versus a 2.0 market price: 25% below.
			expected: "-25",
		},
		{
			name: "premium versus the market",

			bondUnitPrice:  "3",
			listTokenPrice: "2.0",
			saleTokenPrice: "1.0",

			expected: "50",
		},
		{
			name: "at the market",

			bondUnitPrice:  "2",
			listTokenPrice: "2.0",
			saleTokenPrice: "1.0",

			expected: "0",
		},
		{
			name: "zero list price is unavailable",

			bondUnitPrice:  "2",
			listTokenPrice: "0",
			saleTokenPrice: "1.0",

			expectedErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			unitPrice := osmomath.MustNewBigDecFromStr(tc.bondUnitPrice)
			listPrice := osmomath.MustNewBigDecFromStr(tc.listTokenPrice)
			salePrice := osmomath.MustNewBigDecFromStr(tc.saleTokenPrice)

			actual, err := usecase.ComputeDiscountPercent(unitPrice, listPrice, salePrice)

			if tc.expectedErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, osmomath.MustNewBigDecFromStr(tc.expected), actual)
		})
	}
}

func TestFormatToPrecision(t *testing.T) {
	testcases := []struct {
		name string

		value    string
		decimals int

		expected string
	}{
		{
			name:     "truncates, never rounds",
			value:    "1.9999999",
			decimals: 6,
			expected: "1.999999",
		},
		{
			name:     "pads with zeroes",
			value:    "200",
			decimals: 6,
			expected: "200.000000",
		},
		{
			name:     "zero decimals drops the fraction",
			value:    "194.75",
			decimals: 0,
			expected: "194",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			actual := usecase.FormatToPrecision(osmomath.MustNewBigDecFromStr(tc.value), tc.decimals)
			require.Equal(t, tc.expected, actual)
		})
	}
}
