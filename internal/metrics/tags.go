package metrics

// Tag priority lists per metric component. Order within each list is the
// preference order the calculators walk; the first present tag wins.

var revenueTags = []string{
	"Revenues",
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"RevenueFromContractWithCustomerIncludingAssessedTax",
}

var costsAndExpensesTags = []string{"CostsAndExpenses"}

var cogsTags = []string{"CostOfGoodsAndServicesSold"}

var operatingExpensesTags = []string{
	"OperatingCostsAndExpenses",
	"OperatingExpenses",
}

var netIncomeTags = []string{
	"NetIncomeLoss",
	"ProfitLoss",
	"NetIncomeLossAvailableToCommonStockholdersBasic",
}

var incomeTaxTags = []string{"IncomeTaxExpenseBenefit"}

var interestExpenseTags = []string{
	"InterestExpenseDebt",
	"InterestExpense",
}

var pretaxIncomeTags = []string{
	"IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
	"IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments",
}

// Long-term debt, explicitly or probably non-current only.
var ltDebtNoncurrentTags = []string{
	"LongTermDebtNoncurrent",
	"LongTermDebtAndCapitalLeaseObligations",
	"LongTermDebt",
}

// Long-term debt tags that already include current maturities. When one of
// these is present the separate current portion must not be added again.
var ltDebtIncludingCurrentTags = []string{
	"LongTermDebtAndCapitalLeaseObligationsIncludingCurrentMaturities",
	"LongTermDebtIncludingCurrentMaturities",
}

var ltDebtCurrentTags = []string{
	"LongTermDebtCurrent",
	"LongTermDebtAndCapitalLeaseObligationsCurrent",
	"LongTermDebtMaturitiesRepaymentsOfPrincipalInNextTwelveMonths",
}

var stBorrowingsTags = []string{"ShortTermBorrowings"}

var stBorrowingsComponentTags = []string{
	"ShortTermBankLoansAndNotesPayable",
	"CommercialPaper",
}

var unrestrictedCashTags = []string{"CashAndCashEquivalentsAtCarryingValue"}

var totalCashTags = []string{
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	"CashAndCashEquivalentsAtCarryingValue",
}

var restrictedCashTags = []string{"RestrictedCashAndCashEquivalentsAtCarryingValue"}

var restrictedCashCurrentTags = []string{"RestrictedCashCurrent"}

var restrictedCashNoncurrentTags = []string{"RestrictedCashNoncurrent"}

var assetsTags = []string{"Assets"}

var assetsCurrentTags = []string{"AssetsCurrent"}

var assetsNoncurrentTags = []string{"AssetsNoncurrent"}

var liabilitiesTags = []string{"Liabilities"}

var liabilitiesCurrentTags = []string{"LiabilitiesCurrent"}

var liabilitiesNoncurrentTags = []string{"LiabilitiesNoncurrent"}

var operatingCashFlowTags = []string{
	"NetCashProvidedByUsedInOperatingActivities",
	"NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
}

var capexTags = []string{
	"PaymentsToAcquirePropertyPlantAndEquipment",
	"PaymentsToAcquireProductiveAssets",
}

var combinedDATags = []string{
	"DepreciationDepletionAndAmortization",
	"DepreciationAmortizationAndAccretionNet",
}

var depreciationTags = []string{"Depreciation"}

var amortizationTags = []string{"AmortizationOfIntangibleAssets"}

var sharesOutstandingTags = []string{
	"CommonStockSharesOutstanding",
	"CommonStockSharesIssued",
	"WeightedAverageNumberOfSharesOutstandingBasic",
}
