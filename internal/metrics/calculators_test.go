package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcTotalAssets(t *testing.T) {
	t.Run("direct tag wins", func(t *testing.T) {
		pf := period(t,
			usd("Assets", 500),
			usd("AssetsCurrent", 200),
			usd("AssetsNoncurrent", 290),
		)
		r := CalcTotalAssets(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 500.0, *r.Value)
		assert.Equal(t, StratAssetsDirect, r.Strategy)
	})

	t.Run("current plus noncurrent fallback", func(t *testing.T) {
		pf := period(t,
			usd("AssetsCurrent", 200),
			usd("AssetsNoncurrent", 300),
		)
		r := CalcTotalAssets(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 500.0, *r.Value)
		assert.Equal(t, StratAssetsCurrentNoncurrent, r.Strategy)
		assert.Equal(t, 2, r.Tier)
	})

	t.Run("unresolved", func(t *testing.T) {
		pf := period(t, usd("Revenues", 1))
		r := CalcTotalAssets(pf)
		assert.False(t, r.Resolved())
	})
}

func TestCalcCurrentLiabilities(t *testing.T) {
	t.Run("direct tag", func(t *testing.T) {
		pf := period(t, usd("LiabilitiesCurrent", 150))
		r := CalcCurrentLiabilities(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 150.0, *r.Value)
	})

	t.Run("total minus noncurrent fallback", func(t *testing.T) {
		pf := period(t,
			usd("Liabilities", 400),
			usd("LiabilitiesNoncurrent", 250),
		)
		r := CalcCurrentLiabilities(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 150.0, *r.Value)
		assert.Equal(t, StratLiabilitiesMinusNoncur, r.Strategy)
	})
}

func TestCalcRevenue_TagPriority(t *testing.T) {
	pf := period(t,
		usd("RevenueFromContractWithCustomerExcludingAssessedTax", 990),
		usd("Revenues", 1000),
	)
	r := CalcRevenue(pf)
	require.True(t, r.Resolved())
	assert.Equal(t, 1000.0, *r.Value)
}

func TestCalcNetIncome_NegativeIsValid(t *testing.T) {
	pf := period(t, usd("NetIncomeLoss", -50))
	r := CalcNetIncome(pf)
	require.True(t, r.Resolved())
	assert.Equal(t, -50.0, *r.Value)
	assert.Equal(t, StatusPass, r.Status)
}

func TestCalcOperatingCashFlow(t *testing.T) {
	pf := period(t, usd("NetCashProvidedByUsedInOperatingActivities", 300))
	r := CalcOperatingCashFlow(pf)
	require.True(t, r.Resolved())
	assert.Equal(t, 300.0, *r.Value)
}

func TestCalcCapitalExpenditure_SignNormalized(t *testing.T) {
	t.Run("positive magnitude kept", func(t *testing.T) {
		pf := period(t, usd("PaymentsToAcquirePropertyPlantAndEquipment", 80))
		r := CalcCapitalExpenditure(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 80.0, *r.Value)
	})

	t.Run("negative reported value normalized", func(t *testing.T) {
		pf := period(t, usd("PaymentsToAcquirePropertyPlantAndEquipment", -80))
		r := CalcCapitalExpenditure(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 80.0, *r.Value)
	})
}

func TestCalcDepreciationAmortization(t *testing.T) {
	t.Run("combined tag preferred", func(t *testing.T) {
		pf := period(t,
			usd("DepreciationDepletionAndAmortization", 45),
			usd("Depreciation", 30),
			usd("AmortizationOfIntangibleAssets", 10),
		)
		r := CalcDepreciationAmortization(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 45.0, *r.Value)
		assert.Equal(t, StratDACombined, r.Strategy)
	})

	t.Run("components summed", func(t *testing.T) {
		pf := period(t,
			usd("Depreciation", 30),
			usd("AmortizationOfIntangibleAssets", 10),
		)
		r := CalcDepreciationAmortization(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 40.0, *r.Value)
		assert.Equal(t, StratDASumComponents, r.Strategy)
	})

	t.Run("single component acceptable", func(t *testing.T) {
		pf := period(t, usd("Depreciation", 30))
		r := CalcDepreciationAmortization(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 30.0, *r.Value)
	})
}

func TestCalcSharesOutstanding_UnitClass(t *testing.T) {
	t.Run("shares unit resolves", func(t *testing.T) {
		pf := period(t, shares("CommonStockSharesOutstanding", 1_000_000))
		r := CalcSharesOutstanding(pf)
		require.True(t, r.Resolved())
		assert.Equal(t, 1_000_000.0, *r.Value)
	})

	t.Run("currency-denominated fact excluded", func(t *testing.T) {
		pf := period(t, usd("CommonStockSharesOutstanding", 1_000_000))
		r := CalcSharesOutstanding(pf)
		assert.False(t, r.Resolved())
	})
}

func TestCalculateAll_CoversEveryMetric(t *testing.T) {
	pf := period(t, usd("Assets", 100))
	b := CalculateAll(pf)
	for _, m := range All {
		_, ok := b[m]
		assert.True(t, ok, "missing metric %s", m)
	}
}
