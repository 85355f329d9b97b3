package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

// fv builds one reported duration value.
func fv(end, form, filed string, val float64) xbrl.FactValue {
	return xbrl.FactValue{End: end, Form: form, Filed: filed, Val: val}
}

// testCompanyFacts builds a small but complete filer: two annual periods
// and three quarterly periods with cumulative income figures.
func testCompanyFacts() *xbrl.CompanyFacts {
	gaap := xbrl.FactNS{
		"Assets": {Units: map[string][]xbrl.FactValue{"USD": {
			fv("2022-12-31", "10-K", "2023-02-01", 900),
			fv("2023-12-31", "10-K", "2024-02-01", 1000),
			fv("2023-03-31", "10-Q", "2023-05-01", 910),
			fv("2023-06-30", "10-Q", "2023-08-01", 930),
			fv("2023-09-30", "10-Q", "2023-11-01", 960),
		}}},
		"LiabilitiesCurrent": {Units: map[string][]xbrl.FactValue{"USD": {
			fv("2023-12-31", "10-K", "2024-02-01", 300),
			fv("2023-03-31", "10-Q", "2023-05-01", 280),
			fv("2023-06-30", "10-Q", "2023-08-01", 285),
			fv("2023-09-30", "10-Q", "2023-11-01", 290),
		}}},
		"Revenues": {Units: map[string][]xbrl.FactValue{"USD": {
			fv("2023-12-31", "10-K", "2024-02-01", 400),
			fv("2023-03-31", "10-Q", "2023-05-01", 100),
			fv("2023-06-30", "10-Q", "2023-08-01", 180),
			fv("2023-09-30", "10-Q", "2023-11-01", 300),
		}}},
		"OperatingIncomeLoss": {Units: map[string][]xbrl.FactValue{"USD": {
			fv("2023-12-31", "10-K", "2024-02-01", 80),
			fv("2023-03-31", "10-Q", "2023-05-01", 20),
			fv("2023-06-30", "10-Q", "2023-08-01", 45),
			fv("2023-09-30", "10-Q", "2023-11-01", 62),
		}}},
	}

	return &xbrl.CompanyFacts{
		CIK:        12345,
		EntityName: "Test Filer Inc",
		Facts:      map[string]xbrl.FactNS{"us-gaap": gaap},
	}
}

func TestParseCompany_NilInput(t *testing.T) {
	_, err := New(0.01).ParseCompany(nil, Options{})
	require.Error(t, err)
}

func TestParseCompany_PeriodsDiscoveredAndOrdered(t *testing.T) {
	report, err := New(0.01).ParseCompany(testCompanyFacts(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 12345, report.CIK)
	assert.Equal(t, "Test Filer Inc", report.EntityName)

	require.Len(t, report.Annual, 2)
	assert.Equal(t, "2023-12-31", report.Annual[0].PeriodEnd)
	assert.True(t, report.Annual[0].MostRecent)
	assert.Equal(t, "2022-12-31", report.Annual[1].PeriodEnd)
	assert.False(t, report.Annual[1].MostRecent)

	require.Len(t, report.Quarterly, 3)
	assert.Equal(t, "2023-09-30", report.Quarterly[0].PeriodEnd)
	assert.True(t, report.Quarterly[0].MostRecent)
}

func TestParseCompany_MetricsAndFiledDate(t *testing.T) {
	report, err := New(0.01).ParseCompany(testCompanyFacts(), Options{})
	require.NoError(t, err)

	annual := report.Annual[0]
	assert.Equal(t, "2024-02-01", annual.Filed)
	assert.Equal(t, "2023", annual.FiscalYear)

	oi := annual.Metrics[metrics.OperatingIncome]
	require.True(t, oi.Resolved())
	assert.Equal(t, 80.0, *oi.Value)

	// Absent metrics come back null with a reason, never as errors.
	debt := annual.Metrics[metrics.TotalDebt]
	assert.False(t, debt.Resolved())
	assert.Equal(t, metrics.ReasonNoFacts, debt.Reason)
}

func TestParseCompany_QuarterlyDeltas(t *testing.T) {
	report, err := New(0.01).ParseCompany(testCompanyFacts(), Options{})
	require.NoError(t, err)

	byEnd := make(map[string]PeriodReport, len(report.Quarterly))
	for _, q := range report.Quarterly {
		byEnd[q.PeriodEnd] = q
	}

	q1 := byEnd["2023-03-31"].Deltas[metrics.Revenue]
	assert.True(t, q1.FirstQuarter)
	require.NotNil(t, q1.Quarterly)
	assert.Equal(t, 100.0, *q1.Quarterly)

	q2 := byEnd["2023-06-30"].Deltas[metrics.Revenue]
	require.NotNil(t, q2.Quarterly)
	assert.Equal(t, 80.0, *q2.Quarterly)
	assert.Equal(t, "2023-03-31", q2.Predecessor)

	// Annual periods carry no deltas.
	assert.Nil(t, report.Annual[0].Deltas)
}

func TestParseCompany_AnnualOnly(t *testing.T) {
	report, err := New(0.01).ParseCompany(testCompanyFacts(), Options{AnnualOnly: true})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Annual)
	assert.Empty(t, report.Quarterly)
}

func TestParseCompany_RatiosDerived(t *testing.T) {
	mc := 5000.0
	report, err := New(0.01).ParseCompany(testCompanyFacts(), Options{MarketCap: &mc})
	require.NoError(t, err)

	roce := report.Annual[0].Ratios.ROCE
	require.NotNil(t, roce.Value)
	// 80 / (1000 - 300) * 100
	assert.InDelta(t, 11.43, *roce.Value, 0.01)

	// Debt facts are absent, so EV-based ratios carry reasons instead.
	assert.Nil(t, report.Annual[0].Ratios.EnterpriseValue.Value)
	assert.Contains(t, report.Annual[0].Ratios.EnterpriseValue.Reason, "net debt unavailable")
}

func TestParseCompany_NoPeriodsNoPanic(t *testing.T) {
	cf := &xbrl.CompanyFacts{CIK: 1, EntityName: "Empty Co"}
	report, err := New(0.01).ParseCompany(cf, Options{})
	require.NoError(t, err)
	assert.Empty(t, report.Annual)
	assert.Empty(t, report.Quarterly)
}
