package sampledata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// Generator fabricates plausible example rows for a scenario's flat
// attribute pool, so the learner sees the repetition a denormalized table
// suffers from before splitting it up.
type Generator struct {
	Faker  faker.Faker
	Rand   *rand.Rand
	Logger *logrus.Logger
}

// NewGenerator creates a generator. The seed drives both the faker and the
// entity reuse that makes redundancy visible.
func NewGenerator(seed int64, logger *logrus.Logger) *Generator {
	src := rand.NewSource(seed)
	return &Generator{
		Faker:  faker.NewWithSeed(src),
		Rand:   rand.New(src),
		Logger: logger,
	}
}

// Value generates one value for an attribute, dispatching first on the
// display name and then on the declared type tag. The type tag is display
// semantics only; anything unknown falls back to a word.
func (g *Generator) Value(attr models.PoolAttribute) interface{} {
	name := strings.ToLower(attr.Name)

	switch {
	case strings.Contains(name, "email"):
		return g.Faker.Internet().Email()
	case strings.Contains(name, "city"):
		return g.Faker.Address().City()
	case strings.Contains(name, "name"):
		if strings.Contains(name, "supplier") || strings.Contains(name, "company") {
			return g.Faker.Company().Name()
		}
		if strings.Contains(name, "product") || strings.Contains(name, "title") {
			word := g.Faker.Lorem().Word()
			return strings.ToUpper(word[:1]) + word[1:]
		}
		return g.Faker.Person().Name()
	case strings.Contains(name, "title"):
		return g.Faker.Lorem().Sentence(3)
	case strings.Contains(name, "price"):
		return float64(g.Rand.Intn(100000)) / 100
	case strings.Contains(name, "grade"):
		return []string{"A", "B", "C", "D", "F"}[g.Rand.Intn(5)]
	case strings.Contains(name, "date"):
		return g.date()
	case strings.Contains(name, "id"):
		return g.Rand.Intn(9000) + 1000
	}

	switch strings.ToLower(attr.Type) {
	case "integer", "int":
		return g.Rand.Intn(10000)
	case "decimal", "float", "double":
		return float64(g.Rand.Intn(100000)) / 100
	case "date", "datetime":
		return g.date()
	case "boolean", "bool":
		return g.Rand.Intn(2) == 1
	case "varchar", "char", "text":
		return g.Faker.Lorem().Word()
	default:
		g.Logger.Debugf("No generator for type %s, using a word", attr.Type)
		return g.Faker.Lorem().Word()
	}
}

// Row generates one record keyed by attribute name. When a name appears
// twice in the pool (a foreign-key copy), both instances get the same
// value, matching what one row of the flat table would hold.
func (g *Generator) Row(attrs []models.PoolAttribute) map[string]interface{} {
	row := make(map[string]interface{})
	for _, attr := range attrs {
		if _, seen := row[attr.Name]; seen {
			continue
		}
		row[attr.Name] = g.Value(attr)
	}
	return row
}

// Rows generates n preview rows for the scenario's flat table. Values for
// non-key attributes are drawn from a small pool of entities and reused
// across rows, so the redundancy the level is about actually shows up.
func (g *Generator) Rows(s models.Scenario, n int) []map[string]interface{} {
	entityCount := n/2 + 1
	entities := make([]map[string]interface{}, entityCount)
	for i := range entities {
		entities[i] = g.Row(s.Attributes)
	}

	rows := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		entity := entities[g.Rand.Intn(entityCount)]
		row := make(map[string]interface{}, len(entity))
		for k, v := range entity {
			row[k] = v
		}
		// Per-row facts (grades, dates, loan ids) vary even when the
		// entity repeats.
		for _, attr := range s.Attributes {
			lower := strings.ToLower(attr.Name)
			if strings.Contains(lower, "grade") || strings.Contains(lower, "date") ||
				strings.Contains(lower, "loanid") {
				row[attr.Name] = g.Value(attr)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Generator) date() string {
	days := g.Rand.Intn(365 * 3)
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}

// FormatValue renders a generated value for console output.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
