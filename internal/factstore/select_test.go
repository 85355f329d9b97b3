package factstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStore(t *testing.T, facts ...Fact) *Store {
	t.Helper()
	s, err := New(facts)
	require.NoError(t, err)
	return s
}

func TestSelect_ExactPeriodAndForm(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "Assets", Value: 100, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
		Fact{Tag: "Assets", Value: 90, Unit: "USD", End: "2022-12-31", Form: "10-K", Filed: "2023-02-01"},
		Fact{Tag: "Assets", Value: 95, Unit: "USD", End: "2023-12-31", Form: "10-Q", Filed: "2024-01-15"},
	)

	pf := s.Select("2023-12-31", "10-K")
	assert.Equal(t, "2023-12-31", pf.End())
	assert.Equal(t, "10-K", pf.Form())

	f, ok := pf.Get("Assets", Currency)
	require.True(t, ok)
	assert.Equal(t, 100.0, f.Value)
}

func TestSelect_NoMatchesIsEmptyNotError(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "Assets", Value: 100, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
	)

	pf := s.Select("2019-12-31", "10-K")
	assert.True(t, pf.Empty())
	_, ok := pf.Get("Assets", Currency)
	assert.False(t, ok)
}

// Amendments supersede originals: the latest filing date wins.
func TestGet_LatestFiledWins(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "Revenues", Value: 100, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
		Fact{Tag: "Revenues", Value: 105, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-06-01"},
	)

	f, ok := s.Select("2023-12-31", "10-K").Get("Revenues", Currency)
	require.True(t, ok)
	assert.Equal(t, 105.0, f.Value)
}

func TestGet_UnitClassExcluded(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "CommonStockSharesOutstanding", Value: 1000, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
	)

	_, ok := s.Select("2023-12-31", "10-K").Get("CommonStockSharesOutstanding", Shares)
	assert.False(t, ok)
}

func TestFirst_PriorityOrder(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "Second", Value: 2, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
		Fact{Tag: "Third", Value: 3, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
	)
	pf := s.Select("2023-12-31", "10-K")

	f, ok := pf.First([]string{"First", "Second", "Third"}, Currency)
	require.True(t, ok)
	assert.Equal(t, "Second", f.Tag)

	_, ok = pf.First([]string{"Missing"}, Currency)
	assert.False(t, ok)
}

func TestEach_PreservesListOrder(t *testing.T) {
	s := mustStore(t,
		Fact{Tag: "B", Value: 2, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
		Fact{Tag: "A", Value: 1, Unit: "USD", End: "2023-12-31", Form: "10-K", Filed: "2024-02-01"},
	)
	pf := s.Select("2023-12-31", "10-K")

	facts := pf.Each([]string{"A", "B", "C"}, Currency)
	require.Len(t, facts, 2)
	assert.Equal(t, "A", facts[0].Tag)
	assert.Equal(t, "B", facts[1].Tag)
}
