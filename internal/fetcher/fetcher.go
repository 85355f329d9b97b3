// Package fetcher downloads EDGAR datasets within the SEC fair-access
// limits.
package fetcher

import (
	"context"
	"fmt"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path.
	// Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// CompanyFactsURL returns the company facts endpoint for a CIK. EDGAR
// expects the CIK zero-padded to ten digits.
func CompanyFactsURL(cik int) string {
	return fmt.Sprintf("https://data.sec.gov/api/xbrl/companyfacts/CIK%010d.json", cik)
}

// CompanyTickersURL is the full ticker-to-CIK mapping published by the SEC.
const CompanyTickersURL = "https://www.sec.gov/files/company_tickers.json"
