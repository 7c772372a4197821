package scenario

import (
	"fmt"
	"strings"

	"github.com/yourbasic/graph"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// ValidateSpecification checks the authoring invariants of a scenario's
// solution specification. Validation at play time assumes these hold, so
// every scenario must pass before it is offered to a learner.
func ValidateSpecification(s models.Scenario) error {
	if len(s.Solution) == 0 {
		return fmt.Errorf("scenario %q has no grouping rules", s.Title)
	}
	if len(s.Anomalies) == 0 {
		return fmt.Errorf("scenario %q has no anomaly narratives", s.Title)
	}

	// Count pool instances per name so rules can be checked against what
	// the learner can actually place.
	poolCounts := make(map[string]int)
	for _, attr := range s.Attributes {
		if attr.Name == "" {
			return fmt.Errorf("scenario %q has a pool attribute without a name", s.Title)
		}
		poolCounts[attr.Name]++
	}

	for i, rule := range s.Solution {
		if len(rule.MustContain) == 0 {
			return fmt.Errorf("scenario %q rule %d has an empty attribute grouping", s.Title, i+1)
		}

		contained := make(map[string]bool)
		for _, name := range rule.MustContain {
			if contained[name] {
				return fmt.Errorf("scenario %q rule %d lists %s twice", s.Title, i+1, name)
			}
			contained[name] = true
			if poolCounts[name] == 0 {
				return fmt.Errorf("scenario %q rule %d requires %s, which is not in the attribute pool",
					s.Title, i+1, name)
			}
		}

		pks := make(map[string]bool)
		for _, name := range rule.PrimaryKeys {
			if pks[name] {
				return fmt.Errorf("scenario %q rule %d lists primary key %s twice", s.Title, i+1, name)
			}
			pks[name] = true
			if !contained[name] {
				return fmt.Errorf("scenario %q rule %d expects primary key %s outside its own grouping",
					s.Title, i+1, name)
			}
		}
		fks := make(map[string]bool)
		for _, name := range rule.ForeignKeys {
			if fks[name] {
				return fmt.Errorf("scenario %q rule %d lists foreign key %s twice", s.Title, i+1, name)
			}
			fks[name] = true
			if !contained[name] {
				return fmt.Errorf("scenario %q rule %d expects foreign key %s outside its own grouping",
					s.Title, i+1, name)
			}
		}
	}

	if err := checkReferenceGraph(s); err != nil {
		return err
	}

	return nil
}

// checkReferenceGraph verifies that every expected foreign key resolves to
// another rule's primary key and that the resulting rule-to-rule reference
// graph has no cycle. A cycle would mean no valid placement order exists
// when the schema is later exported.
func checkReferenceGraph(s models.Scenario) error {
	g := graph.New(len(s.Solution))

	for i, rule := range s.Solution {
		for _, fk := range rule.ForeignKeys {
			resolved := false
			for j, other := range s.Solution {
				if i == j {
					continue
				}
				for _, pk := range other.PrimaryKeys {
					if pk == fk {
						g.Add(i, j)
						resolved = true
						break
					}
				}
			}
			if !resolved {
				return fmt.Errorf("scenario %q rule %d foreign key %s does not reference any other rule's primary key",
					s.Title, i+1, fk)
			}
		}
	}

	if !graph.Acyclic(g) {
		var groupings []string
		for _, rule := range s.Solution {
			groupings = append(groupings, strings.Join(rule.MustContain, "+"))
		}
		return fmt.Errorf("scenario %q has a circular foreign-key reference among its groupings (%s)",
			s.Title, strings.Join(groupings, ", "))
	}

	return nil
}
