package factstore

// PeriodFacts is the Period Selector output: for one (period end, form)
// target, the facts eligible for metric calculation, still grouped by tag.
// Tie-breaking between re-filed or amended duplicates happens in Get.
type PeriodFacts struct {
	end   string
	form  string
	byTag map[string][]Fact
}

// Select filters the store to the facts whose period end date and form type
// match the target exactly. Absence of any matching fact yields an empty
// PeriodFacts, not an error; abbreviated filings routinely omit tags.
func (s *Store) Select(end, form string) PeriodFacts {
	pf := PeriodFacts{end: end, form: form, byTag: make(map[string][]Fact)}
	for tag, facts := range s.byTag {
		for _, f := range facts {
			if f.End == end && f.Form == form {
				pf.byTag[tag] = append(pf.byTag[tag], f)
			}
		}
	}
	return pf
}

// End returns the period end date this selection was made for.
func (pf PeriodFacts) End() string { return pf.end }

// Form returns the form type this selection was made for.
func (pf PeriodFacts) Form() string { return pf.form }

// Get returns the single best fact for a tag in the expected unit class.
// Facts in the wrong unit class are excluded before tie-breaking; among the
// remainder the latest filing date wins, so amendments supersede originals.
func (pf PeriodFacts) Get(tag string, class UnitClass) (Fact, bool) {
	var best Fact
	found := false
	for _, f := range pf.byTag[tag] {
		if f.Class() != class {
			continue
		}
		if !found || f.Filed > best.Filed {
			best = f
			found = true
		}
	}
	return best, found
}

// First returns the best fact for the first tag in the priority list that
// has a usable value in the expected unit class.
func (pf PeriodFacts) First(tags []string, class UnitClass) (Fact, bool) {
	for _, tag := range tags {
		if f, ok := pf.Get(tag, class); ok {
			return f, true
		}
	}
	return Fact{}, false
}

// Each returns the best fact per tag for every tag in the list that is
// present, preserving list order. Used for duplicate detection across
// alternative tag spellings of the same concept.
func (pf PeriodFacts) Each(tags []string, class UnitClass) []Fact {
	var out []Fact
	for _, tag := range tags {
		if f, ok := pf.Get(tag, class); ok {
			out = append(out, f)
		}
	}
	return out
}

// Empty reports whether the selection matched no facts at all.
func (pf PeriodFacts) Empty() bool { return len(pf.byTag) == 0 }
