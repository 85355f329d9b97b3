package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// StratSharesDirect is the shares outstanding strategy identifier.
const StratSharesDirect = "direct shares outstanding tag"

// CalcSharesOutstanding resolves the share count. Only facts in the shares
// unit class are considered; a currency-denominated fact under a share tag
// is a tagging error and is excluded by the selector.
func CalcSharesOutstanding(pf factstore.PeriodFacts) Result {
	if sh, ok := pf.First(sharesOutstandingTags, factstore.Shares); ok {
		return resolved(SharesOutstanding, sh.Value, StratSharesDirect, 1,
			map[string]factstore.Fact{"shares_outstanding": sh})
	}
	return unresolved(SharesOutstanding)
}
