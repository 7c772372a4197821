package validator

import "github.com/vitebski/normalization-trainer/pkg/models"

// FindMatch returns the index of the first snapshot record whose attribute
// names are a superset of the rule's required grouping, or false when no
// table qualifies. First match wins: when several tables contain the
// grouping, the earliest one is the match. Not best-match - the scenario
// rule sets are authored around this exact behavior.
func FindMatch(rule models.GroupingRule, snapshot []models.TableRecord) (int, bool) {
	for i, record := range snapshot {
		if containsAll(record.Names, rule.MustContain) {
			return i, true
		}
	}
	return 0, false
}

// containsAll reports whether every name is present in the set.
func containsAll(set map[string]bool, names []string) bool {
	for _, name := range names {
		if !set[name] {
			return false
		}
	}
	return true
}
