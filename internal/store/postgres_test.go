package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caryschwartzstein/edgar-parser/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit
// testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS companies`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCompanyByTicker(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT cik, ticker, name, COALESCE\(exchange, ''\) FROM companies WHERE upper\(ticker\) = upper\(\$1\)`).
		WithArgs("aapl").
		WillReturnRows(pgxmock.NewRows([]string{"cik", "ticker", "name", "exchange"}).
			AddRow(320193, "AAPL", "Apple Inc", "Nasdaq"))

	c, err := s.GetCompanyByTicker(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, 320193, c.CIK)
	assert.Equal(t, "AAPL", c.Ticker)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCompanyByCIK_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT cik, ticker, name, COALESCE\(exchange, ''\) FROM companies WHERE cik = \$1`).
		WithArgs(999).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetCompanyByCIK(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get company by cik 999")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListCompanies(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT cik, ticker, name, COALESCE\(exchange, ''\) FROM companies WHERE true AND name ILIKE`).
		WithArgs("apple", 100).
		WillReturnRows(pgxmock.NewRows([]string{"cik", "ticker", "name", "exchange"}).
			AddRow(320193, "AAPL", "Apple Inc", ""))

	companies, err := s.ListCompanies(context.Background(), CompanyFilter{NameContains: "apple"})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "AAPL", companies[0].Ticker)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertCompanies_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	n, err := s.UpsertCompanies(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LogParse(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO parse_log`).
		WithArgs(pgxmock.AnyArg(), 320193, "Apple Inc", "complete", "", 2, 6, now, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.LogParse(context.Background(), model.ParseLog{
		CIK:              320193,
		EntityName:       "Apple Inc",
		Status:           model.ParseStatusComplete,
		AnnualPeriods:    2,
		QuarterlyPeriods: 6,
		StartedAt:        now,
		FinishedAt:       now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetReport_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT m\.period_end, m\.form, m\.fiscal_year, m\.most_recent, m\.detail, r\.detail`).
		WithArgs(999).
		WillReturnRows(pgxmock.NewRows([]string{"period_end", "form", "fiscal_year", "most_recent", "detail", "detail"}))

	_, err := s.GetReport(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stored report")
	assert.NoError(t, mock.ExpectationsWereMet())
}
