package xbrl

// TargetFacts lists every US-GAAP tag the metric calculators consult.
// Grouped by the canonical metric each tag feeds. The per-metric tag
// priority lives with the calculators; this list only scopes extraction.
var TargetFacts = []string{
	// Operating income waterfall
	"OperatingIncomeLoss",
	"Revenues",
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"RevenueFromContractWithCustomerIncludingAssessedTax",
	"CostsAndExpenses",
	"CostOfGoodsAndServicesSold",
	"OperatingCostsAndExpenses",
	"OperatingExpenses",
	"NetIncomeLoss",
	"ProfitLoss",
	"NetIncomeLossAvailableToCommonStockholdersBasic",
	"IncomeTaxExpenseBenefit",
	"InterestExpenseDebt",
	"InterestExpense",
	"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
	"IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments",

	// Total debt components
	"LongTermDebtNoncurrent",
	"LongTermDebtAndCapitalLeaseObligations",
	"LongTermDebt",
	"LongTermDebtAndCapitalLeaseObligationsIncludingCurrentMaturities",
	"LongTermDebtIncludingCurrentMaturities",
	"LongTermDebtCurrent",
	"LongTermDebtAndCapitalLeaseObligationsCurrent",
	"LongTermDebtMaturitiesRepaymentsOfPrincipalInNextTwelveMonths",
	"ShortTermBorrowings",
	"ShortTermBankLoansAndNotesPayable",
	"CommercialPaper",

	// Cash
	"CashAndCashEquivalentsAtCarryingValue",
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	"RestrictedCashAndCashEquivalentsAtCarryingValue",
	"RestrictedCashCurrent",
	"RestrictedCashNoncurrent",

	// Balance sheet
	"Assets",
	"AssetsCurrent",
	"AssetsNoncurrent",
	"Liabilities",
	"LiabilitiesCurrent",
	"LiabilitiesNoncurrent",

	// Cash flow statement
	"NetCashProvidedByUsedInOperatingActivities",
	"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
	"PaymentsToAcquirePropertyPlantAndEquipment",
	"PaymentsToAcquireProductiveAssets",
	"DepreciationDepletionAndAmortization",
	"DepreciationAmortizationAndAccretionNet",
	"Depreciation",
	"AmortizationOfIntangibleAssets",

	// Shares
	"CommonStockSharesOutstanding",
	"CommonStockSharesIssued",
	"WeightedAverageNumberOfSharesOutstandingBasic",
}
