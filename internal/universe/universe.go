// Package universe maintains the SEC ticker-to-CIK company mapping.
package universe

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/caryschwartzstein/edgar-parser/internal/fetcher"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
	"github.com/caryschwartzstein/edgar-parser/internal/store"
)

// tickerEntry is one record of the SEC company_tickers.json file, which is
// keyed by arbitrary row index rather than shaped as an array.
type tickerEntry struct {
	CIKStr int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// Parse decodes the SEC ticker mapping into company records.
func Parse(r io.Reader) ([]model.Company, error) {
	var raw map[string]tickerEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "universe: decode company tickers")
	}

	companies := make([]model.Company, 0, len(raw))
	for _, e := range raw {
		if e.CIKStr == 0 || e.Ticker == "" {
			continue
		}
		companies = append(companies, model.Company{
			CIK:    e.CIKStr,
			Ticker: strings.ToUpper(e.Ticker),
			Name:   normalizeName(e.Title),
		})
	}
	return companies, nil
}

// nameNormalizer strips combining diacritics so lookups match however the
// filer's name was accented in the source feed.
var nameNormalizer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName collapses whitespace and folds diacritics. Legal suffixes
// are left as reported.
func normalizeName(name string) string {
	folded, _, err := transform.String(nameNormalizer, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Syncer refreshes the stored universe from the SEC.
type Syncer struct {
	fetcher fetcher.Fetcher
	store   store.Store
	log     *zap.Logger
}

// NewSyncer builds a Syncer.
func NewSyncer(f fetcher.Fetcher, s store.Store) *Syncer {
	return &Syncer{
		fetcher: f,
		store:   s,
		log:     zap.L().With(zap.String("component", "universe")),
	}
}

// Sync downloads the current ticker mapping and upserts it. Returns the
// number of rows written.
func (s *Syncer) Sync(ctx context.Context) (int64, error) {
	body, err := s.fetcher.Download(ctx, fetcher.CompanyTickersURL)
	if err != nil {
		return 0, eris.Wrap(err, "universe: download ticker mapping")
	}
	defer body.Close() //nolint:errcheck

	companies, err := Parse(body)
	if err != nil {
		return 0, err
	}

	n, err := s.store.UpsertCompanies(ctx, companies)
	if err != nil {
		return n, eris.Wrap(err, "universe: upsert companies")
	}

	s.log.Info("universe synced",
		zap.Int("parsed", len(companies)),
		zap.Int64("written", n))
	return n, nil
}
