package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// Income statement strategy identifiers.
const (
	StratRevenueDirect   = "direct revenue tag"
	StratNetIncomeDirect = "direct net income tag"
)

// CalcRevenue resolves revenue from the first present revenue tag.
func CalcRevenue(pf factstore.PeriodFacts) Result {
	if rev, ok := pf.First(revenueTags, factstore.Currency); ok {
		return resolved(Revenue, rev.Value, StratRevenueDirect, 1,
			map[string]factstore.Fact{"revenues": rev})
	}
	return unresolved(Revenue)
}

// CalcNetIncome resolves net income. Negative values are valid; losses are
// flagged by the validator only where a negative is actually unusual.
func CalcNetIncome(pf factstore.PeriodFacts) Result {
	if ni, ok := pf.First(netIncomeTags, factstore.Currency); ok {
		return resolved(NetIncome, ni.Value, StratNetIncomeDirect, 1,
			map[string]factstore.Fact{"net_income": ni})
	}
	return unresolved(NetIncome)
}
