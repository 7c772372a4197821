package validator

import (
	"strings"
	"testing"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// attr builds a placed attribute with key flags.
func attr(name string, pk, fk bool) models.PlacedAttribute {
	return models.PlacedAttribute{
		InstanceID:   name + "-instance",
		Name:         name,
		Type:         "varchar",
		IsPrimaryKey: pk,
		IsForeignKey: fk,
	}
}

func table(id int, attrs ...models.PlacedAttribute) models.TableInstance {
	return models.TableInstance{ID: id, Attributes: attrs}
}

// universityScenario mirrors the builtin level 1 rule set.
func universityScenario() models.Scenario {
	return models.Scenario{
		Level: 1,
		Title: "University Enrollment",
		Solution: []models.GroupingRule{
			{
				MustContain: []string{"StudentID", "StudentName"},
				PrimaryKeys: []string{"StudentID"},
				ForeignKeys: []string{},
			},
			{
				MustContain: []string{"StudentID", "CourseID", "Grade"},
				PrimaryKeys: []string{"StudentID", "CourseID"},
				ForeignKeys: []string{"StudentID"},
			},
		},
		Anomalies: map[string]string{
			"update": "update anomaly text",
			"insert": "insert anomaly text",
			"delete": "delete anomaly text",
		},
	}
}

// fixedPicker always selects the first anomaly kind.
func fixedPicker(kinds []string) string {
	return kinds[0]
}

func TestBuildSnapshot(t *testing.T) {
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
		table(2),
		table(3, attr("StudentID", true, true), attr("CourseID", true, false)),
	}

	snapshot := BuildSnapshot(tables)

	if len(snapshot) != 3 {
		t.Fatalf("Expected 3 records in the snapshot, got %d", len(snapshot))
	}

	first := snapshot[0]
	if !first.Names["StudentID"] || !first.Names["StudentName"] {
		t.Error("Expected first record to contain StudentID and StudentName")
	}
	if !first.PKs["StudentID"] || len(first.PKs) != 1 {
		t.Errorf("Expected first record PKs to be exactly {StudentID}, got %v", first.PKs)
	}
	if len(first.FKs) != 0 {
		t.Errorf("Expected first record to have no FKs, got %v", first.FKs)
	}

	empty := snapshot[1]
	if len(empty.Names) != 0 || len(empty.PKs) != 0 || len(empty.FKs) != 0 {
		t.Error("Expected an empty table to yield an empty-set record")
	}

	third := snapshot[2]
	if !third.PKs["StudentID"] || !third.PKs["CourseID"] {
		t.Errorf("Expected third record PKs to contain StudentID and CourseID, got %v", third.PKs)
	}
	if !third.FKs["StudentID"] {
		t.Errorf("Expected third record FKs to contain StudentID, got %v", third.FKs)
	}
}

func TestFindMatchFirstWins(t *testing.T) {
	rule := models.GroupingRule{MustContain: []string{"StudentID", "StudentName"}}
	snapshot := BuildSnapshot([]models.TableInstance{
		table(1, attr("CourseID", false, false)),
		table(2, attr("StudentID", false, false), attr("StudentName", false, false)),
		table(3, attr("StudentID", false, false), attr("StudentName", false, false), attr("Grade", false, false)),
	})

	idx, found := FindMatch(rule, snapshot)
	if !found {
		t.Fatal("Expected a match")
	}
	if idx != 1 {
		t.Errorf("Expected the earliest superset table (index 1) to win, got %d", idx)
	}

	// Matching is deterministic: repeating it yields the same table.
	for i := 0; i < 5; i++ {
		again, _ := FindMatch(rule, snapshot)
		if again != idx {
			t.Fatalf("Expected matching to be deterministic, got %d then %d", idx, again)
		}
	}
}

func TestFindMatchNotFound(t *testing.T) {
	rule := models.GroupingRule{MustContain: []string{"StudentID", "StudentName"}}
	snapshot := BuildSnapshot([]models.TableInstance{
		table(1, attr("StudentID", false, false)),
	})

	if _, found := FindMatch(rule, snapshot); found {
		t.Error("Expected no match when no table contains the full grouping")
	}
}

func TestCheckKeysPKStrictness(t *testing.T) {
	rule := models.GroupingRule{
		MustContain: []string{"StudentID", "StudentName"},
		PrimaryKeys: []string{"StudentID"},
	}

	// Extra PK-flagged attribute beyond the expected set must fail.
	record := BuildSnapshot([]models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", true, false)),
	})[0]

	check := CheckKeys(rule, record)
	if check.OK {
		t.Fatal("Expected an over-marked primary key to fail")
	}
	if check.Reason != models.ReasonPrimaryKeyMismatch {
		t.Errorf("Expected PrimaryKeyMismatch, got %s", check.Reason)
	}

	// Missing PK must fail the same way.
	record = BuildSnapshot([]models.TableInstance{
		table(1, attr("StudentID", false, false), attr("StudentName", false, false)),
	})[0]
	if CheckKeys(rule, record).OK {
		t.Error("Expected a missing primary key to fail")
	}
}

func TestCheckKeysFKLeniency(t *testing.T) {
	rule := models.GroupingRule{
		MustContain: []string{"StudentID", "CourseID", "Grade"},
		PrimaryKeys: []string{"StudentID", "CourseID"},
		ForeignKeys: []string{"StudentID"},
	}

	// Extra FK flags beyond the expectation are tolerated.
	record := BuildSnapshot([]models.TableInstance{
		table(1,
			attr("StudentID", true, true),
			attr("CourseID", true, true),
			attr("Grade", false, false)),
	})[0]

	if check := CheckKeys(rule, record); !check.OK {
		t.Errorf("Expected extra FK flags to pass, got %s", check.Reason)
	}
}

func TestCheckKeysPKFailureTakesPrecedence(t *testing.T) {
	rule := models.GroupingRule{
		MustContain: []string{"StudentID", "CourseID", "Grade"},
		PrimaryKeys: []string{"StudentID", "CourseID"},
		ForeignKeys: []string{"StudentID"},
	}

	// Both PK and FK are wrong; PK must be reported.
	record := BuildSnapshot([]models.TableInstance{
		table(1,
			attr("StudentID", true, false),
			attr("CourseID", false, false),
			attr("Grade", false, false)),
	})[0]

	check := CheckKeys(rule, record)
	if check.OK || check.Reason != models.ReasonPrimaryKeyMismatch {
		t.Errorf("Expected PrimaryKeyMismatch to take precedence, got %s", check.Reason)
	}
}

func TestValidateSuccess(t *testing.T) {
	s := universityScenario()
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
		table(2,
			attr("StudentID", true, true),
			attr("CourseID", true, false),
			attr("Grade", false, false)),
	}

	verdict := Validate(tables, s, fixedPicker)
	if !verdict.Success {
		t.Fatalf("Expected success, got %s: %s", verdict.Reason, verdict.Detail)
	}
	if !strings.Contains(verdict.Detail, s.Title) {
		t.Errorf("Expected the success message to reference the scenario title, got %q", verdict.Detail)
	}
}

func TestValidatePrimaryKeyMismatch(t *testing.T) {
	s := universityScenario()
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
		// Missing CourseID from the PK set.
		table(2,
			attr("StudentID", true, true),
			attr("CourseID", false, false),
			attr("Grade", false, false)),
	}

	verdict := Validate(tables, s, fixedPicker)
	if verdict.Success {
		t.Fatal("Expected failure")
	}
	if verdict.Reason != models.ReasonPrimaryKeyMismatch {
		t.Errorf("Expected PrimaryKeyMismatch, got %s", verdict.Reason)
	}
	if !strings.Contains(verdict.Detail, "CourseID, StudentID") {
		t.Errorf("Expected the expected PK set in the message, got %q", verdict.Detail)
	}
}

func TestValidateInsufficientTables(t *testing.T) {
	s := universityScenario()

	// Content is irrelevant below the table-count threshold: even a table
	// that satisfies a rule fails the precheck.
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
	}

	verdict := Validate(tables, s, fixedPicker)
	if verdict.Success || verdict.Reason != models.ReasonInsufficientTables {
		t.Errorf("Expected InsufficientTables, got %s", verdict.Reason)
	}
}

func TestValidateMissingGrouping(t *testing.T) {
	s := universityScenario()
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
		table(2, attr("CourseID", false, false), attr("Grade", false, false)),
	}

	verdict := Validate(tables, s, fixedPicker)
	if verdict.Success || verdict.Reason != models.ReasonMissingGrouping {
		t.Fatalf("Expected MissingGrouping, got %s", verdict.Reason)
	}
	if !strings.Contains(verdict.Detail, "CourseID, Grade, StudentID") {
		t.Errorf("Expected the missing grouping to be named, got %q", verdict.Detail)
	}
}

func TestValidateForeignKeyMissing(t *testing.T) {
	s := models.Scenario{
		Title: "Retail Catalog",
		Solution: []models.GroupingRule{
			{
				MustContain: []string{"ProductID", "SupplierID", "Price"},
				PrimaryKeys: []string{"ProductID", "SupplierID"},
				ForeignKeys: []string{"ProductID", "SupplierID"},
			},
		},
		Anomalies: map[string]string{"update": "text"},
	}

	tables := []models.TableInstance{
		table(1,
			attr("ProductID", true, false),
			attr("SupplierID", true, false),
			attr("Price", false, false)),
	}

	verdict := Validate(tables, s, fixedPicker)
	if verdict.Success || verdict.Reason != models.ReasonForeignKeyMissing {
		t.Fatalf("Expected ForeignKeyMissing, got %s", verdict.Reason)
	}
	if !strings.Contains(verdict.Detail, "ProductID, SupplierID") {
		t.Errorf("Expected the expected FK set in the message, got %q", verdict.Detail)
	}
}

func TestValidateIdempotent(t *testing.T) {
	s := universityScenario()
	tables := []models.TableInstance{
		table(1, attr("StudentID", false, false), attr("StudentName", false, false)),
		table(2, attr("CourseID", false, false)),
	}

	first := Validate(tables, s, fixedPicker)
	for i := 0; i < 5; i++ {
		again := Validate(tables, s, fixedPicker)
		if again.Success != first.Success || again.Reason != first.Reason {
			t.Fatalf("Expected identical outcome and reason on repeat, got %s then %s",
				first.Reason, again.Reason)
		}
	}
}

func TestValidateLenientAboutExtras(t *testing.T) {
	s := universityScenario()

	// An extra empty table and an extra FK flag must not break success.
	tables := []models.TableInstance{
		table(1, attr("StudentID", true, false), attr("StudentName", false, false)),
		table(2,
			attr("StudentID", true, true),
			attr("CourseID", true, true),
			attr("Grade", false, false)),
		table(3),
	}

	if verdict := Validate(tables, s, fixedPicker); !verdict.Success {
		t.Errorf("Expected extras to be tolerated, got %s: %s", verdict.Reason, verdict.Detail)
	}
}

func TestRandomPickerDrawsFromDeclaredKinds(t *testing.T) {
	pick := NewRandomPicker(42)
	kinds := []string{"delete", "insert", "update"}

	declared := map[string]bool{"delete": true, "insert": true, "update": true}
	for i := 0; i < 50; i++ {
		kind := pick(kinds)
		if !declared[kind] {
			t.Fatalf("Picker returned undeclared kind %q", kind)
		}
	}

	// Same seed, same sequence.
	a, b := NewRandomPicker(7), NewRandomPicker(7)
	for i := 0; i < 10; i++ {
		if a(kinds) != b(kinds) {
			t.Fatal("Expected pickers with the same seed to agree")
		}
	}
}

func TestFailureDetailIncludesAnomaly(t *testing.T) {
	s := universityScenario()
	tables := []models.TableInstance{table(1)}

	verdict := Validate(tables, s, func(kinds []string) string { return "delete" })
	if !strings.Contains(verdict.Detail, "delete anomaly text") {
		t.Errorf("Expected the picked anomaly narrative in the detail, got %q", verdict.Detail)
	}

	// A nil picker still produces the deterministic message.
	verdict = Validate(tables, s, nil)
	if verdict.Reason != models.ReasonInsufficientTables || verdict.Detail == "" {
		t.Error("Expected a verdict without flavor text when no picker is supplied")
	}
}
