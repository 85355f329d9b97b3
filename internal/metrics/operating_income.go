package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// Operating income strategy identifiers, one per satisfiable waterfall arm.
const (
	StratOperatingIncomeDirect = "direct OperatingIncomeLoss"
	StratRevenueMinusCosts     = "Revenues - CostsAndExpenses"
	StratRevenueMinusCogsOpex  = "Revenues - COGS - OpEx"
	StratNetIncomePlusTaxInt   = "NetIncome + Tax + Interest"
	StratPretaxPlusInterest    = "PretaxIncome + Interest"
)

// CalcOperatingIncome resolves operating income (EBIT) through a four-tier
// waterfall. Tier 1 is the directly reported figure or the revenue-minus-
// total-costs identity; tiers 2-4 reconstruct it from progressively less
// reliable components. A later tier is attempted only when every earlier
// tier is unsatisfiable.
func CalcOperatingIncome(pf factstore.PeriodFacts) Result {
	// Tier 1a: direct tag.
	if oi, ok := pf.Get("OperatingIncomeLoss", factstore.Currency); ok {
		return resolved(OperatingIncome, oi.Value, StratOperatingIncomeDirect, 1,
			map[string]factstore.Fact{"operating_income": oi})
	}

	// Tier 1b: revenue minus total costs and expenses.
	rev, revOK := pf.First(revenueTags, factstore.Currency)
	costs, costsOK := pf.First(costsAndExpensesTags, factstore.Currency)
	if revOK && costsOK {
		sources := map[string]factstore.Fact{
			"revenues":           rev,
			"costs_and_expenses": costs,
		}
		if pretax, ok := pf.First(pretaxIncomeTags, factstore.Currency); ok {
			sources["pretax_income"] = pretax
		}
		return resolved(OperatingIncome, rev.Value-costs.Value, StratRevenueMinusCosts, 1, sources)
	}

	// Tier 2: build from components.
	cogs, cogsOK := pf.First(cogsTags, factstore.Currency)
	opex, opexOK := pf.First(operatingExpensesTags, factstore.Currency)
	if revOK && cogsOK && opexOK {
		return resolved(OperatingIncome, rev.Value-cogs.Value-opex.Value, StratRevenueMinusCogsOpex, 2,
			map[string]factstore.Fact{
				"revenues":           rev,
				"cost_of_revenue":    cogs,
				"operating_expenses": opex,
			})
	}

	// Tier 3: work backwards from net income.
	ni, niOK := pf.First(netIncomeTags, factstore.Currency)
	tax, taxOK := pf.First(incomeTaxTags, factstore.Currency)
	interest, intOK := pf.First(interestExpenseTags, factstore.Currency)
	if niOK && taxOK && intOK {
		return resolved(OperatingIncome, ni.Value+tax.Value+interest.Value, StratNetIncomePlusTaxInt, 3,
			map[string]factstore.Fact{
				"net_income":       ni,
				"income_tax":       tax,
				"interest_expense": interest,
			})
	}

	// Tier 4: last resort, pre-tax income plus interest.
	pretax, pretaxOK := pf.First(pretaxIncomeTags, factstore.Currency)
	if pretaxOK && intOK {
		return resolved(OperatingIncome, pretax.Value+interest.Value, StratPretaxPlusInterest, 4,
			map[string]factstore.Fact{
				"pretax_income":    pretax,
				"interest_expense": interest,
			})
	}

	return unresolved(OperatingIncome)
}
