package sampledata

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests
	return logger
}

func TestValueDispatch(t *testing.T) {
	gen := NewGenerator(1, testLogger())

	if _, ok := gen.Value(models.PoolAttribute{Name: "StudentID", Type: "integer"}).(int); !ok {
		t.Error("Expected an integer value for an ID attribute")
	}

	if _, ok := gen.Value(models.PoolAttribute{Name: "Price", Type: "decimal"}).(float64); !ok {
		t.Error("Expected a float value for a price attribute")
	}

	grade, ok := gen.Value(models.PoolAttribute{Name: "Grade", Type: "varchar"}).(string)
	if !ok || len(grade) != 1 {
		t.Errorf("Expected a letter grade, got %v", grade)
	}

	name, ok := gen.Value(models.PoolAttribute{Name: "StudentName", Type: "varchar"}).(string)
	if !ok || name == "" {
		t.Error("Expected a non-empty person name")
	}

	date, ok := gen.Value(models.PoolAttribute{Name: "LoanDate", Type: "date"}).(string)
	if !ok || len(date) != len("2006-01-02") {
		t.Errorf("Expected an ISO date string, got %v", date)
	}

	if _, ok := gen.Value(models.PoolAttribute{Name: "Flag", Type: "boolean"}).(bool); !ok {
		t.Error("Expected a bool for a boolean attribute")
	}

	// Unknown type falls back to a word rather than failing.
	word, ok := gen.Value(models.PoolAttribute{Name: "Mystery", Type: "geometry"}).(string)
	if !ok || word == "" {
		t.Error("Expected a fallback word for an unknown type")
	}
}

func TestRowCollapsesDuplicateNames(t *testing.T) {
	gen := NewGenerator(1, testLogger())

	attrs := []models.PoolAttribute{
		{Name: "StudentID", Type: "integer"},
		{Name: "StudentName", Type: "varchar"},
		{Name: "StudentID", Type: "integer"},
	}

	row := gen.Row(attrs)
	if len(row) != 2 {
		t.Errorf("Expected 2 distinct columns, got %d", len(row))
	}
	if _, ok := row["StudentID"]; !ok {
		t.Error("Expected StudentID in the row")
	}
}

func TestRowsShowRedundancy(t *testing.T) {
	gen := NewGenerator(1, testLogger())

	s := models.Scenario{
		Attributes: []models.PoolAttribute{
			{Name: "StudentID", Type: "integer"},
			{Name: "StudentName", Type: "varchar"},
			{Name: "CourseID", Type: "integer"},
			{Name: "Grade", Type: "varchar"},
		},
	}

	rows := gen.Rows(s, 10)
	if len(rows) != 10 {
		t.Fatalf("Expected 10 rows, got %d", len(rows))
	}

	// Entities are drawn from a pool smaller than the row count, so at
	// least one student must repeat.
	counts := make(map[interface{}]int)
	repeated := false
	for _, row := range rows {
		counts[row["StudentID"]]++
		if counts[row["StudentID"]] > 1 {
			repeated = true
		}
	}
	if !repeated {
		t.Error("Expected at least one repeated entity across the preview rows")
	}
}

func TestGeneratorIsSeeded(t *testing.T) {
	a := NewGenerator(99, testLogger())
	b := NewGenerator(99, testLogger())

	attr := models.PoolAttribute{Name: "StudentID", Type: "integer"}
	for i := 0; i < 5; i++ {
		if a.Value(attr) != b.Value(attr) {
			t.Fatal("Expected generators with the same seed to agree")
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(12.5); got != "12.50" {
		t.Errorf("Expected 12.50, got %s", got)
	}
	if got := FormatValue(7); got != "7" {
		t.Errorf("Expected 7, got %s", got)
	}
	if got := FormatValue("abc"); got != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}
}
