package validator

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// AnomalyPicker selects one anomaly kind out of the scenario's declared
// set, which is passed sorted. It is a seam rather than an inline random
// call so tests can pin the choice while asserting on the deterministic
// part of the diagnostic.
type AnomalyPicker func(kinds []string) string

// NewRandomPicker returns the production picker: uniform over the kind
// list, driven by the given seed.
func NewRandomPicker(seed int64) AnomalyPicker {
	rng := rand.New(rand.NewSource(seed))
	return func(kinds []string) string {
		if len(kinds) == 0 {
			return ""
		}
		return kinds[rng.Intn(len(kinds))]
	}
}

// Validate is the entry point of the core: it checks the user's tables
// against the scenario's solution specification and returns a single
// verdict. Rules are checked in order and the first failure wins, so the
// learner gets one focused correction at a time. Leftover pool attributes
// and extra tables never fail a schema that contains the required
// structure.
func Validate(tables []models.TableInstance, s models.Scenario, pick AnomalyPicker) models.ValidationVerdict {
	// Fewer tables than rules can never satisfy every grouping, so the
	// content is not even inspected.
	if len(tables) < len(s.Solution) {
		return failure(s, pick, models.ReasonInsufficientTables,
			fmt.Sprintf("Your schema needs at least %d tables, but only %d exist.",
				len(s.Solution), len(tables)))
	}

	snapshot := BuildSnapshot(tables)

	for _, rule := range s.Solution {
		idx, found := FindMatch(rule, snapshot)
		if !found {
			return failure(s, pick, models.ReasonMissingGrouping,
				fmt.Sprintf("No table groups the attributes %s together.",
					nameList(rule.MustContain)))
		}

		check := CheckKeys(rule, snapshot[idx])
		if check.OK {
			continue
		}

		switch check.Reason {
		case models.ReasonPrimaryKeyMismatch:
			return failure(s, pick, check.Reason,
				fmt.Sprintf("The table containing %s must have exactly %s as its primary key.",
					nameList(rule.MustContain), nameList(check.Expected)))
		case models.ReasonForeignKeyMissing:
			return failure(s, pick, check.Reason,
				fmt.Sprintf("The table containing %s must mark %s as foreign keys.",
					nameList(rule.MustContain), nameList(check.Expected)))
		}
	}

	return models.ValidationVerdict{
		Success: true,
		Detail:  fmt.Sprintf("Well done! Your schema for %q is fully normalized.", s.Title),
	}
}

// failure builds a failure verdict: the deterministic rule message plus
// one randomly chosen anomaly narrative as motivating context. The
// narrative is flavor only and is not tied to the failed rule.
func failure(s models.Scenario, pick AnomalyPicker, reason models.ReasonCode, message string) models.ValidationVerdict {
	detail := message

	kinds := make([]string, 0, len(s.Anomalies))
	for kind := range s.Anomalies {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	if pick != nil && len(kinds) > 0 {
		if narrative, ok := s.Anomalies[pick(kinds)]; ok && narrative != "" {
			detail += "\n\nWhy it matters: " + narrative
		}
	}

	return models.ValidationVerdict{
		Success: false,
		Reason:  reason,
		Detail:  detail,
	}
}

// nameList renders an attribute name set for a message, sorted so the
// wording does not depend on authoring order.
func nameList(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
