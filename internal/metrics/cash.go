package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// Cash strategy identifiers.
const (
	StratCashDirectUnrestricted = "direct unrestricted cash"
	StratCashTotalMinusRestrict = "total cash - restricted cash"
	StratCashTotalOnly          = "total cash (no restricted reported)"
)

// CashResult carries both cash views: unrestricted cash feeds enterprise
// value (restricted cash cannot service debt), total cash is the balance
// sheet figure.
type CashResult struct {
	Unrestricted Result
	Total        Result
}

// CalcCash resolves cash with restricted-cash handling. The directly
// reported unrestricted tag is preferred; otherwise unrestricted is derived
// as total minus restricted. A total with no restricted-cash information is
// assumed fully unrestricted.
func CalcCash(pf factstore.PeriodFacts) CashResult {
	direct, directOK := pf.First(unrestrictedCashTags, factstore.Currency)
	totalFact, totalOK := pf.First(totalCashTags, factstore.Currency)
	restricted, restrictedSources, restrictedOK := restrictedCash(pf)

	if directOK {
		sources := map[string]factstore.Fact{"unrestricted_cash": direct}
		for k, v := range restrictedSources {
			sources[k] = v
		}

		unres := resolved(UnrestrictedCash, direct.Value, StratCashDirectUnrestricted, 1, sources)

		totalValue := direct.Value
		strategy := StratCashDirectUnrestricted
		if restrictedOK {
			totalValue += restricted
			strategy = StratCashTotalMinusRestrict
		}
		return CashResult{
			Unrestricted: unres,
			Total:        resolved(TotalCash, totalValue, strategy, 1, sources),
		}
	}

	if totalOK && restrictedOK {
		sources := map[string]factstore.Fact{"total_cash": totalFact}
		for k, v := range restrictedSources {
			sources[k] = v
		}
		return CashResult{
			Unrestricted: resolved(UnrestrictedCash, totalFact.Value-restricted, StratCashTotalMinusRestrict, 2, sources),
			Total:        resolved(TotalCash, totalFact.Value, StratCashTotalOnly, 1, sources),
		}
	}

	if totalOK {
		sources := map[string]factstore.Fact{"total_cash": totalFact}
		return CashResult{
			Unrestricted: resolved(UnrestrictedCash, totalFact.Value, StratCashTotalOnly, 3, sources),
			Total:        resolved(TotalCash, totalFact.Value, StratCashTotalOnly, 1, sources),
		}
	}

	return CashResult{
		Unrestricted: unresolved(UnrestrictedCash),
		Total:        unresolved(TotalCash),
	}
}

// restrictedCash resolves restricted cash: the direct total tag, else the
// sum of the split current and non-current tags.
func restrictedCash(pf factstore.PeriodFacts) (float64, map[string]factstore.Fact, bool) {
	if f, ok := pf.First(restrictedCashTags, factstore.Currency); ok {
		return f.Value, map[string]factstore.Fact{"restricted_cash": f}, true
	}

	sources := make(map[string]factstore.Fact)
	total := 0.0
	found := false
	if cur, ok := pf.First(restrictedCashCurrentTags, factstore.Currency); ok {
		sources["restricted_cash_current"] = cur
		total += cur.Value
		found = true
	}
	if nc, ok := pf.First(restrictedCashNoncurrentTags, factstore.Currency); ok {
		sources["restricted_cash_noncurrent"] = nc
		total += nc.Value
		found = true
	}
	if !found {
		return 0, nil, false
	}
	return total, sources, true
}
