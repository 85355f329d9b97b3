package metrics

import (
	"fmt"

	"github.com/caryschwartzstein/edgar-parser/internal/factstore"
)

// Total debt strategy identifiers.
const (
	StratDebtIncludingCurrent = "LT debt incl. current + ST borrowings"
	StratDebtThreeComponent   = "LT non-current + LT current + ST borrowings"
)

// CalcTotalDebt sums the three independent debt components: non-current
// long-term debt, the current portion of long-term debt, and short-term
// borrowings. Tags whose value duplicates an "including current maturities"
// figure are counted once, never twice.
func CalcTotalDebt(pf factstore.PeriodFacts) Result {
	sources := make(map[string]factstore.Fact)
	var warnings []string
	total := 0.0

	// An "including current maturities" tag subsumes both long-term
	// components, so only short-term borrowings are added on top.
	if incl, ok := pf.First(ltDebtIncludingCurrentTags, factstore.Currency); ok {
		sources["lt_debt_including_current"] = incl
		total += incl.Value

		// Guard against filers that also report the current portion
		// separately with the identical value.
		if cur, ok := pf.First(ltDebtCurrentTags, factstore.Currency); ok && cur.Value == incl.Value {
			warnings = append(warnings,
				fmt.Sprintf("%s duplicates %s; counted once", cur.Tag, incl.Tag))
		}

		if st, stSources, ok := shortTermBorrowings(pf); ok {
			for k, v := range stSources {
				sources[k] = v
			}
			total += st
		}

		r := resolved(TotalDebt, total, StratDebtIncludingCurrent, 1, sources)
		r.Warnings = warnings
		return r
	}

	found := false

	if nc, ok := pf.First(ltDebtNoncurrentTags, factstore.Currency); ok {
		sources["lt_debt_noncurrent"] = nc
		total += nc.Value
		found = true
	}

	// Current portion: filers sometimes report the same figure under more
	// than one tag spelling. Identical duplicates collapse to one; differing
	// values keep the highest-priority tag and surface a warning.
	if matches := pf.Each(ltDebtCurrentTags, factstore.Currency); len(matches) > 0 {
		first := matches[0]
		for _, m := range matches[1:] {
			if m.Value == first.Value {
				warnings = append(warnings,
					fmt.Sprintf("%s duplicates %s; counted once", m.Tag, first.Tag))
			} else {
				warnings = append(warnings,
					fmt.Sprintf("%s and %s disagree (%.0f vs %.0f); using %s",
						first.Tag, m.Tag, first.Value, m.Value, first.Tag))
			}
		}
		sources["lt_debt_current"] = first
		total += first.Value
		found = true
	}

	if st, stSources, ok := shortTermBorrowings(pf); ok {
		for k, v := range stSources {
			sources[k] = v
		}
		total += st
		found = true
	}

	if !found {
		return unresolved(TotalDebt)
	}

	r := resolved(TotalDebt, total, StratDebtThreeComponent, 1, sources)
	r.Warnings = warnings
	return r
}

// shortTermBorrowings resolves the third debt component: the direct tag if
// present, else the sum of bank loans and commercial paper. Many filers
// have no short-term borrowings at all; that is not an error.
func shortTermBorrowings(pf factstore.PeriodFacts) (float64, map[string]factstore.Fact, bool) {
	if st, ok := pf.First(stBorrowingsTags, factstore.Currency); ok {
		return st.Value, map[string]factstore.Fact{"st_borrowings": st}, true
	}

	sources := make(map[string]factstore.Fact)
	total := 0.0
	found := false
	for _, tag := range stBorrowingsComponentTags {
		if f, ok := pf.Get(tag, factstore.Currency); ok {
			sources["st_"+f.Tag] = f
			total += f.Value
			found = true
		}
	}
	if !found {
		return 0, nil, false
	}
	return total, sources, true
}
