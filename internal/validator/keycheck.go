package validator

import "github.com/vitebski/normalization-trainer/pkg/models"

// KeyCheck is the structured outcome of checking a matched table's key
// annotations against a rule. On failure, Expected carries the rule's
// expected name set for the message.
type KeyCheck struct {
	OK       bool
	Reason   models.ReasonCode
	Expected []string
}

// CheckKeys verifies a matched table's key annotations. The primary-key
// set must equal the rule's expectation exactly: an over- or under-marked
// primary key is a modeling error even when the grouping is right. The
// foreign-key set only has to contain the expected names; extra FK marks
// are tolerated. A primary-key failure is reported before any foreign-key
// failure.
func CheckKeys(rule models.GroupingRule, record models.TableRecord) KeyCheck {
	if !sameSet(record.PKs, rule.PrimaryKeys) {
		return KeyCheck{
			OK:       false,
			Reason:   models.ReasonPrimaryKeyMismatch,
			Expected: rule.PrimaryKeys,
		}
	}

	if !containsAll(record.FKs, rule.ForeignKeys) {
		return KeyCheck{
			OK:       false,
			Reason:   models.ReasonForeignKeyMissing,
			Expected: rule.ForeignKeys,
		}
	}

	return KeyCheck{OK: true}
}

// sameSet reports whether the set holds exactly the given names, in both
// membership and cardinality.
func sameSet(set map[string]bool, names []string) bool {
	if len(set) != len(names) {
		return false
	}
	return containsAll(set, names)
}
