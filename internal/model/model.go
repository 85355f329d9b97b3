// Package model holds the shared persistence-facing types.
package model

import "time"

// Company is one entry of the SEC ticker-to-CIK universe.
type Company struct {
	CIK      int    `json:"cik"`
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// ParseStatus tracks a parse run through the log.
type ParseStatus string

const (
	ParseStatusComplete ParseStatus = "complete"
	ParseStatusFailed   ParseStatus = "failed"
)

// ParseLog records one parse run of one entity.
type ParseLog struct {
	ID               string      `json:"id"`
	CIK              int         `json:"cik"`
	EntityName       string      `json:"entity_name"`
	Status           ParseStatus `json:"status"`
	Error            string      `json:"error,omitempty"`
	AnnualPeriods    int         `json:"annual_periods"`
	QuarterlyPeriods int         `json:"quarterly_periods"`
	StartedAt        time.Time   `json:"started_at"`
	FinishedAt       time.Time   `json:"finished_at"`
}
