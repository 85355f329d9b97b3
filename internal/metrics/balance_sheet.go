package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// Balance sheet strategy identifiers.
const (
	StratAssetsDirect            = "direct Assets"
	StratAssetsCurrentNoncurrent = "AssetsCurrent + AssetsNoncurrent"
	StratLiabilitiesDirect       = "direct LiabilitiesCurrent"
	StratLiabilitiesMinusNoncur  = "Liabilities - LiabilitiesNoncurrent"
)

// CalcTotalAssets resolves total assets. The direct Assets tag covers
// nearly every filer; the current-plus-noncurrent sum is a rare fallback.
func CalcTotalAssets(pf factstore.PeriodFacts) Result {
	if assets, ok := pf.First(assetsTags, factstore.Currency); ok {
		return resolved(TotalAssets, assets.Value, StratAssetsDirect, 1,
			map[string]factstore.Fact{"assets": assets})
	}

	cur, curOK := pf.First(assetsCurrentTags, factstore.Currency)
	nc, ncOK := pf.First(assetsNoncurrentTags, factstore.Currency)
	if curOK && ncOK {
		return resolved(TotalAssets, cur.Value+nc.Value, StratAssetsCurrentNoncurrent, 2,
			map[string]factstore.Fact{
				"assets_current":    cur,
				"assets_noncurrent": nc,
			})
	}

	return unresolved(TotalAssets)
}

// CalcCurrentLiabilities resolves current liabilities: the direct tag, else
// total liabilities minus non-current liabilities.
func CalcCurrentLiabilities(pf factstore.PeriodFacts) Result {
	if cl, ok := pf.First(liabilitiesCurrentTags, factstore.Currency); ok {
		return resolved(CurrentLiabilities, cl.Value, StratLiabilitiesDirect, 1,
			map[string]factstore.Fact{"liabilities_current": cl})
	}

	total, totalOK := pf.First(liabilitiesTags, factstore.Currency)
	nc, ncOK := pf.First(liabilitiesNoncurrentTags, factstore.Currency)
	if totalOK && ncOK {
		return resolved(CurrentLiabilities, total.Value-nc.Value, StratLiabilitiesMinusNoncur, 2,
			map[string]factstore.Fact{
				"liabilities":            total,
				"liabilities_noncurrent": nc,
			})
	}

	return unresolved(CurrentLiabilities)
}
