package quarterly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
)

func f(v float64) *float64 { return &v }

func TestFiscalYearKey(t *testing.T) {
	assert.Equal(t, "2023", FiscalYearKey("2023-03-31"))
	assert.Equal(t, "2023", FiscalYearKey("2023-09-28"))
	assert.Equal(t, "bad", FiscalYearKey("bad"))
}

func TestNormalize_FirstQuarterIsTerminal(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: f(72400),
		}},
	})

	d := out["2023-03-31"][metrics.OperatingIncome]
	assert.True(t, d.FirstQuarter)
	assert.True(t, d.Computed)
	require.NotNil(t, d.Quarterly)
	assert.Equal(t, 72400.0, *d.Quarterly)
}

func TestNormalize_SequentialDifferencing(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: f(72400),
		}},
		{PeriodEnd: "2023-06-30", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: f(100623),
		}},
	})

	q2 := out["2023-06-30"][metrics.OperatingIncome]
	assert.False(t, q2.FirstQuarter)
	assert.True(t, q2.Computed)
	require.NotNil(t, q2.Quarterly)
	assert.Equal(t, 28223.0, *q2.Quarterly)
	assert.Equal(t, "2023-03-31", q2.Predecessor)
}

func TestNormalize_InputOrderIrrelevant(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-09-30", Cumulative: map[metrics.Metric]*float64{
			metrics.Revenue: f(300),
		}},
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.Revenue: f(100),
		}},
		{PeriodEnd: "2023-06-30", Cumulative: map[metrics.Metric]*float64{
			metrics.Revenue: f(180),
		}},
	})

	assert.Equal(t, 100.0, *out["2023-03-31"][metrics.Revenue].Quarterly)
	assert.Equal(t, 80.0, *out["2023-06-30"][metrics.Revenue].Quarterly)
	assert.Equal(t, 120.0, *out["2023-09-30"][metrics.Revenue].Quarterly)
}

// A null predecessor yields a null quarterly value for that metric alone,
// with the reason attached.
func TestNormalize_PredecessorMissing(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: nil,
			metrics.Revenue:         f(100),
		}},
		{PeriodEnd: "2023-06-30", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: f(100623),
			metrics.Revenue:         f(180),
		}},
	})

	oi := out["2023-06-30"][metrics.OperatingIncome]
	assert.Nil(t, oi.Quarterly)
	assert.False(t, oi.Computed)
	assert.Equal(t, ReasonPredecessorMissing, oi.Reason)

	// Sibling metric in the same quarter still de-cumulates.
	rev := out["2023-06-30"][metrics.Revenue]
	require.NotNil(t, rev.Quarterly)
	assert.Equal(t, 80.0, *rev.Quarterly)
}

func TestNormalize_NullCumulativeStaysNull(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: f(50),
		}},
		{PeriodEnd: "2023-06-30", Cumulative: map[metrics.Metric]*float64{
			metrics.OperatingIncome: nil,
		}},
	})

	d := out["2023-06-30"][metrics.OperatingIncome]
	assert.Nil(t, d.Quarterly)
	assert.False(t, d.Computed)
	assert.Empty(t, d.Reason)
}

// Differencing never crosses a fiscal-year boundary: the first quarter of
// each year label is terminal.
func TestNormalize_FiscalYearBoundary(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2022-12-31", Cumulative: map[metrics.Metric]*float64{
			metrics.Revenue: f(400),
		}},
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.Revenue: f(110),
		}},
	})

	q1 := out["2023-03-31"][metrics.Revenue]
	assert.True(t, q1.FirstQuarter)
	assert.Equal(t, 110.0, *q1.Quarterly)
}

func TestNormalize_PointInTimeMetricsSkipped(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.TotalAssets: f(5000),
			metrics.Revenue:     f(100),
		}},
	})

	deltas := out["2023-03-31"]
	_, hasAssets := deltas[metrics.TotalAssets]
	assert.False(t, hasAssets)
	_, hasRevenue := deltas[metrics.Revenue]
	assert.True(t, hasRevenue)
}

// Negative deltas are legitimate: a quarter can erase year-to-date profit.
func TestNormalize_NegativeDelta(t *testing.T) {
	out := Normalize([]Quarter{
		{PeriodEnd: "2023-03-31", Cumulative: map[metrics.Metric]*float64{
			metrics.NetIncome: f(500),
		}},
		{PeriodEnd: "2023-06-30", Cumulative: map[metrics.Metric]*float64{
			metrics.NetIncome: f(300),
		}},
	})

	d := out["2023-06-30"][metrics.NetIncome]
	require.NotNil(t, d.Quarterly)
	assert.Equal(t, -200.0, *d.Quarterly)
}
