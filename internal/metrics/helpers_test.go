package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caryschwartzstein/edgar-parser/internal/factstore"
)

const (
	testEnd  = "2023-12-31"
	testForm = "10-K"
)

// usd builds a USD fact for the shared test period.
func usd(tag string, value float64) factstore.Fact {
	return factstore.Fact{
		Tag:   tag,
		Value: value,
		Unit:  "USD",
		End:   testEnd,
		Form:  testForm,
		Filed: "2024-02-15",
	}
}

// shares builds a share-count fact for the shared test period.
func shares(tag string, value float64) factstore.Fact {
	f := usd(tag, value)
	f.Unit = "shares"
	return f
}

// period indexes the facts and selects the shared test period.
func period(t *testing.T, facts ...factstore.Fact) factstore.PeriodFacts {
	t.Helper()
	s, err := factstore.New(facts)
	require.NoError(t, err)
	return s.Select(testEnd, testForm)
}
