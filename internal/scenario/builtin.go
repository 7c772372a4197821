package scenario

import "github.com/vitebski/normalization-trainer/pkg/models"

// builtinScenarios returns the exercise levels that ship with the binary.
// Attribute names that appear twice are deliberate: the second instance is
// the foreign-key copy the learner places into the referencing table.
func builtinScenarios() []models.Scenario {
	return []models.Scenario{
		{
			Level: 1,
			Title: "University Enrollment",
			Description: "The registrar keeps one big list with a row per enrollment: " +
				"student number, student name, course code, and the grade earned. " +
				"Student names repeat on every row for every course a student takes. " +
				"Split the attributes into tables so each fact is stored once.",
			Hint: "Student facts belong in one table keyed by StudentID. An enrollment " +
				"is identified by the combination of student and course, and its StudentID " +
				"is a copy pointing back at the student table.",
			Attributes: []models.PoolAttribute{
				{Name: "StudentID", Type: "integer"},
				{Name: "StudentName", Type: "varchar"},
				{Name: "StudentID", Type: "integer"},
				{Name: "CourseID", Type: "integer"},
				{Name: "Grade", Type: "varchar"},
			},
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
				"update": "If Maria Lopez changes her name, every enrollment row mentioning her " +
					"must be updated. Miss one and the database disagrees with itself about who she is.",
				"insert": "A new student who has not enrolled in any course yet cannot be recorded " +
					"at all, because every row requires a course and a grade.",
				"delete": "Dropping the only course a student takes deletes the last row that knows " +
					"the student exists.",
			},
		},
		{
			Level: 2,
			Title: "Retail Catalog",
			Description: "The purchasing team tracks offers in a single sheet: product number and " +
				"name, supplier number, name and city, and the price that supplier charges for that " +
				"product. Supplier details repeat for every product they offer. Normalize the sheet.",
			Hint: "Price depends on the product AND the supplier together, so the offer table is " +
				"keyed by both - and both of its identifiers are copies referencing the product and " +
				"supplier tables.",
			Attributes: []models.PoolAttribute{
				{Name: "ProductID", Type: "integer"},
				{Name: "ProductName", Type: "varchar"},
				{Name: "SupplierID", Type: "integer"},
				{Name: "SupplierName", Type: "varchar"},
				{Name: "SupplierCity", Type: "varchar"},
				{Name: "ProductID", Type: "integer"},
				{Name: "SupplierID", Type: "integer"},
				{Name: "Price", Type: "decimal"},
			},
			Solution: []models.GroupingRule{
				{
					MustContain: []string{"ProductID", "ProductName"},
					PrimaryKeys: []string{"ProductID"},
					ForeignKeys: []string{},
				},
				{
					MustContain: []string{"SupplierID", "SupplierName", "SupplierCity"},
					PrimaryKeys: []string{"SupplierID"},
					ForeignKeys: []string{},
				},
				{
					MustContain: []string{"ProductID", "SupplierID", "Price"},
					PrimaryKeys: []string{"ProductID", "SupplierID"},
					ForeignKeys: []string{"ProductID", "SupplierID"},
				},
			},
			Anomalies: map[string]string{
				"update": "When a supplier moves to a new city, the city must be corrected on every " +
					"offer row for that supplier. Any row left behind keeps the stale address.",
				"insert": "A supplier you have just signed, with no priced products yet, has no row " +
					"to live in.",
				"delete": "Removing the last offer from a supplier erases everything known about them, " +
					"including their name and city.",
			},
		},
		{
			Level: 3,
			Title: "Library Loans",
			Description: "The library logs each loan as one row: loan number, loan date, book number, " +
				"title and author, member number, name and email. Book and member details repeat on " +
				"every loan. Decompose the log into book, member, and loan tables.",
			Hint: "A loan has its own identifier, so LoanID alone is the key of the loan table. The " +
				"book and member identifiers inside it are copies referencing the other two tables.",
			Attributes: []models.PoolAttribute{
				{Name: "BookID", Type: "integer"},
				{Name: "BookTitle", Type: "varchar"},
				{Name: "AuthorName", Type: "varchar"},
				{Name: "MemberID", Type: "integer"},
				{Name: "MemberName", Type: "varchar"},
				{Name: "MemberEmail", Type: "varchar"},
				{Name: "LoanID", Type: "integer"},
				{Name: "BookID", Type: "integer"},
				{Name: "MemberID", Type: "integer"},
				{Name: "LoanDate", Type: "date"},
			},
			Solution: []models.GroupingRule{
				{
					MustContain: []string{"BookID", "BookTitle", "AuthorName"},
					PrimaryKeys: []string{"BookID"},
					ForeignKeys: []string{},
				},
				{
					MustContain: []string{"MemberID", "MemberName", "MemberEmail"},
					PrimaryKeys: []string{"MemberID"},
					ForeignKeys: []string{},
				},
				{
					MustContain: []string{"LoanID", "BookID", "MemberID", "LoanDate"},
					PrimaryKeys: []string{"LoanID"},
					ForeignKeys: []string{"BookID", "MemberID"},
				},
			},
			Anomalies: map[string]string{
				"update": "Fixing a typo in a book title means editing every loan of that book, and any " +
					"loan you miss keeps advertising the wrong title.",
				"insert": "A newly acquired book cannot be cataloged until somebody borrows it.",
				"delete": "Returning and purging the only loan of a rare book wipes out its title and " +
					"author along with the loan.",
			},
		},
	}
}
