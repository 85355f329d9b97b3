// Package quarterly converts cumulative year-to-date quarterly figures into
// discrete single-quarter values by sequential differencing within one
// fiscal year.
package quarterly

import (
	"sort"

	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
)

// ReasonPredecessorMissing marks a delta that could not be computed because
// the preceding quarter's cumulative value is null.
const ReasonPredecessorMissing = "predecessor missing"

// Quarter is one quarterly period's cumulative calculator output, keyed by
// metric. Only cumulative-class metrics participate; point-in-time metrics
// never enter the normalizer.
type Quarter struct {
	PeriodEnd  string
	Cumulative map[metrics.Metric]*float64
}

// Delta is the de-cumulation outcome for one metric in one quarter.
type Delta struct {
	Metric       metrics.Metric `json:"metric"`
	Cumulative   *float64       `json:"cumulative"`
	Quarterly    *float64       `json:"quarterly"`
	Predecessor  string         `json:"predecessor,omitempty"` // period end of the prior quarter
	FirstQuarter bool           `json:"first_quarter"`
	Computed     bool           `json:"computed"`
	Reason       string         `json:"reason,omitempty"`
}

// FiscalYearKey derives the fiscal-year grouping label from a period end
// date. The year component alone is used, by label equality: entities with
// non-calendar fiscal years (e.g. a late-September year end) still group
// all their quarters under one label as long as the label is computed the
// same way for every period of the entity.
func FiscalYearKey(periodEnd string) string {
	if len(periodEnd) < 4 {
		return periodEnd
	}
	return periodEnd[:4]
}

// Normalize de-cumulates all quarters of one entity. Quarters are grouped
// by fiscal-year label and ordered chronologically inside each group. The
// earliest quarter of a year is terminal: its quarterly value equals its
// cumulative value. Every later quarter subtracts the immediately preceding
// quarter's cumulative value; a null predecessor yields a null quarterly
// value for that one metric without blocking its siblings.
//
// The result maps period end date to the per-metric deltas of that quarter.
func Normalize(quarters []Quarter) map[string]map[metrics.Metric]Delta {
	byYear := make(map[string][]Quarter)
	for _, q := range quarters {
		key := FiscalYearKey(q.PeriodEnd)
		byYear[key] = append(byYear[key], q)
	}

	out := make(map[string]map[metrics.Metric]Delta, len(quarters))

	for _, group := range byYear {
		sort.Slice(group, func(i, j int) bool {
			return group[i].PeriodEnd < group[j].PeriodEnd
		})

		for i, q := range group {
			deltas := make(map[metrics.Metric]Delta)
			for m, cum := range q.Cumulative {
				if !m.Cumulative() {
					continue
				}
				if i == 0 {
					deltas[m] = Delta{
						Metric:       m,
						Cumulative:   cum,
						Quarterly:    cum,
						FirstQuarter: true,
						Computed:     cum != nil,
					}
					continue
				}

				prev := group[i-1]
				prevCum := prev.Cumulative[m]
				d := Delta{
					Metric:      m,
					Cumulative:  cum,
					Predecessor: prev.PeriodEnd,
				}
				if cum == nil {
					// Nothing to de-cumulate; the calculator already
					// carries the absence reason.
					deltas[m] = d
					continue
				}
				if prevCum == nil {
					d.Reason = ReasonPredecessorMissing
					deltas[m] = d
					continue
				}
				v := *cum - *prevCum
				d.Quarterly = &v
				d.Computed = true
				deltas[m] = d
			}
			out[q.PeriodEnd] = deltas
		}
	}

	return out
}
