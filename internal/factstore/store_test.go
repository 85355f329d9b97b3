package factstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

func TestNew_RejectsFactWithoutPeriodEnd(t *testing.T) {
	_, err := New([]Fact{{Tag: "Assets", Value: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no period end date")
}

func TestFromCompanyFacts_FiltersUnitsAndTargets(t *testing.T) {
	raw := `{
		"cik": 1,
		"entityName": "Test Co",
		"facts": {
			"us-gaap": {
				"Assets": {"units": {
					"USD": [{"end": "2023-12-31", "val": 100, "form": "10-K", "filed": "2024-02-01"}],
					"EUR": [{"end": "2023-12-31", "val": 90, "form": "10-K", "filed": "2024-02-01"}]
				}},
				"CommonStockSharesOutstanding": {"units": {
					"shares": [{"end": "2023-12-31", "val": 1000, "form": "10-K", "filed": "2024-02-01"}]
				}},
				"SomeIrrelevantTag": {"units": {
					"USD": [{"end": "2023-12-31", "val": 5, "form": "10-K", "filed": "2024-02-01"}]
				}}
			}
		}
	}`
	cf, err := xbrl.ParseCompanyFacts(strings.NewReader(raw))
	require.NoError(t, err)

	s, err := FromCompanyFacts(cf, []string{"Assets", "CommonStockSharesOutstanding"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Tags())

	pf := s.Select("2023-12-31", "10-K")

	assets, ok := pf.Get("Assets", Currency)
	require.True(t, ok)
	assert.Equal(t, 100.0, assets.Value) // EUR value excluded

	sh, ok := pf.Get("CommonStockSharesOutstanding", Shares)
	require.True(t, ok)
	assert.Equal(t, 1000.0, sh.Value)

	_, ok = pf.Get("SomeIrrelevantTag", Currency)
	assert.False(t, ok)
}

func TestFromCompanyFacts_NoGAAPNamespace(t *testing.T) {
	cf := &xbrl.CompanyFacts{}
	s, err := FromCompanyFacts(cf, []string{"Assets"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Tags())
}

func TestPeriodEnds_SortedAndFormScoped(t *testing.T) {
	s, err := New([]Fact{
		{Tag: "Assets", Value: 3, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
		{Tag: "Assets", Value: 1, Unit: "USD", End: "2021-12-31", Form: "10-K", Filed: "2022-02-01"},
		{Tag: "Assets", Value: 2, Unit: "USD", End: "2022-12-31", Form: "10-K", Filed: "2023-02-01"},
		{Tag: "Assets", Value: 4, Unit: "USD", End: "2023-03-31", Form: "10-Q", Filed: "2023-05-01"},
		// Same end reported twice collapses to one period.
		{Tag: "Assets", Value: 3, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-03-01"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2021-12-31", "2022-12-31", "2023-12-31"}, s.PeriodEnds("Assets", "10-K"))
	assert.Equal(t, []string{"2023-03-31"}, s.PeriodEnds("Assets", "10-Q"))
	assert.Empty(t, s.PeriodEnds("Liabilities", "10-K"))
}

func TestClass(t *testing.T) {
	assert.Equal(t, Shares, Fact{Unit: "shares"}.Class())
	assert.Equal(t, Shares, Fact{Unit: "Shares"}.Class())
	assert.Equal(t, Currency, Fact{Unit: "USD"}.Class())
}
