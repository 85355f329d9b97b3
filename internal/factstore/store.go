// Package factstore indexes the tagged facts of one entity and selects,
// per reporting period, the single best fact for each tag.
package factstore

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

// UnitClass partitions fact units into the classes the calculators care
// about. Currency covers USD and other ISO codes; Shares covers share counts.
type UnitClass int

const (
	Currency UnitClass = iota
	Shares
)

// Fact is one reported value, immutable once ingested.
type Fact struct {
	Tag   string
	Value float64
	Unit  string
	Start string // empty for point-in-time facts
	End   string // period end date, YYYY-MM-DD
	Form  string // filing form type, e.g. "10-K", "10-Q"
	Filed string // filing date, YYYY-MM-DD
}

// Class returns the unit class of the fact.
func (f Fact) Class() UnitClass {
	return classOf(f.Unit)
}

func classOf(unit string) UnitClass {
	if strings.EqualFold(unit, "shares") {
		return Shares
	}
	return Currency
}

// Store holds all facts for one entity, grouped by tag. Read-only after
// construction; built once per parse run and discarded afterwards.
type Store struct {
	byTag map[string][]Fact
}

// New builds a Store from raw facts. A fact with an empty period end date
// is a contract violation by the upstream collaborator and returns an error.
func New(facts []Fact) (*Store, error) {
	s := &Store{byTag: make(map[string][]Fact)}
	for _, f := range facts {
		if f.End == "" {
			return nil, eris.Errorf("factstore: fact %q has no period end date", f.Tag)
		}
		s.byTag[f.Tag] = append(s.byTag[f.Tag], f)
	}
	return s, nil
}

// FromCompanyFacts flattens EDGAR company facts into a Store, keeping only
// the target tags in the USD and shares units.
func FromCompanyFacts(cf *xbrl.CompanyFacts, targets []string) (*Store, error) {
	gaap := cf.GAAP()
	if gaap == nil {
		return New(nil)
	}

	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	var facts []Fact
	for tag, fact := range gaap {
		if !targetSet[tag] {
			continue
		}
		for unit, values := range fact.Units {
			if !strings.EqualFold(unit, "USD") && !strings.EqualFold(unit, "shares") {
				continue
			}
			for _, v := range values {
				if v.End == "" {
					continue
				}
				val, ok := xbrl.Float64Val(v.Val)
				if !ok {
					continue
				}
				facts = append(facts, Fact{
					Tag:   tag,
					Value: val,
					Unit:  unit,
					Start: v.Start,
					End:   v.End,
					Form:  v.Form,
					Filed: v.Filed,
				})
			}
		}
	}
	return New(facts)
}

// PeriodEnds returns the distinct period end dates reported for the given
// tag and form type, sorted ascending. The Assets tag is the conventional
// probe since virtually every filer reports it each period.
func (s *Store) PeriodEnds(tag, form string) []string {
	seen := make(map[string]bool)
	for _, f := range s.byTag[tag] {
		if f.Form == form {
			seen[f.End] = true
		}
	}
	ends := make([]string, 0, len(seen))
	for end := range seen {
		ends = append(ends, end)
	}
	sort.Strings(ends)
	return ends
}

// Tags returns the number of distinct tags held.
func (s *Store) Tags() int {
	return len(s.byTag)
}
