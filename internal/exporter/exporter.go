package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourbasic/graph"

	"github.com/vitebski/normalization-trainer/internal/connector"
	"github.com/vitebski/normalization-trainer/internal/sampledata"
	"github.com/vitebski/normalization-trainer/pkg/models"
)

// ColumnRef records that a column references another exported table's
// primary key.
type ColumnRef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableDDL is one exportable table: its derived name, CREATE TABLE
// statement, insertable columns, and resolved foreign-key references.
type TableDDL struct {
	Name       string
	CreateSQL  string
	Columns    []models.PlacedAttribute
	References []ColumnRef
}

// BuildDDL turns a validated set of user tables into CREATE TABLE
// statements, ordered so referenced tables come first. FK-flagged columns
// become FOREIGN KEY constraints when some other table has exactly that
// column as its primary key; unresolvable flags are skipped with a
// warning.
func BuildDDL(tables []models.TableInstance, logger *logrus.Logger) []TableDDL {
	names := make([]string, len(tables))
	for i, table := range tables {
		names[i] = tableName(table, i)
	}

	defs := make([]TableDDL, len(tables))
	g := graph.New(len(tables))

	for i, table := range tables {
		def := TableDDL{Name: names[i], Columns: table.Attributes}

		for _, placed := range table.Attributes {
			if !placed.IsForeignKey {
				continue
			}
			parent := findReferencedTable(tables, i, placed.Name)
			if parent < 0 {
				logger.Warningf("Column %s in table %s is marked as a foreign key but no table has it as primary key",
					placed.Name, names[i])
				continue
			}
			def.References = append(def.References, ColumnRef{
				Column:    placed.Name,
				RefTable:  names[parent],
				RefColumn: placed.Name,
			})
			// Parent must be created before the referencing table.
			g.Add(parent, i)
		}

		defs[i] = def
	}

	for i := range defs {
		defs[i].CreateSQL = createStatement(defs[i])
	}

	order, ok := graph.TopSort(g)
	if !ok {
		logger.Warning("Foreign-key references form a cycle, exporting tables in workspace order")
		return defs
	}

	ordered := make([]TableDDL, 0, len(defs))
	for _, idx := range order {
		ordered = append(ordered, defs[idx])
	}
	return ordered
}

// Export applies the CREATE TABLE statements through the connector.
func Export(db *connector.DatabaseConnector, ddl []TableDDL) error {
	for _, def := range ddl {
		if _, err := db.ExecuteStatement(def.CreateSQL); err != nil {
			return fmt.Errorf("creating table %s: %w", def.Name, err)
		}
		db.Logger.Infof("Created table %s", def.Name)
	}
	return nil
}

// Seed inserts n generated rows per exported table, in the same
// referenced-first order, reusing parent primary-key values for foreign-key
// columns. Returns the total number of inserted rows.
func Seed(db *connector.DatabaseConnector, ddl []TableDDL, gen *sampledata.Generator, n int) (int64, error) {
	inserted := make(map[string][]map[string]interface{})
	var total int64

	for _, def := range ddl {
		if len(def.Columns) == 0 {
			continue
		}

		refByColumn := make(map[string]ColumnRef)
		for _, ref := range def.References {
			refByColumn[ref.Column] = ref
		}

		columnNames := make([]string, len(def.Columns))
		placeholders := make([]string, len(def.Columns))
		for i, col := range def.Columns {
			columnNames[i] = col.Name
			placeholders[i] = "?"
		}

		insertSQL := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			def.Name,
			strings.Join(columnNames, ", "),
			strings.Join(placeholders, ", "),
		)

		var paramsList [][]interface{}
		var rows []map[string]interface{}

		for i := 0; i < n; i++ {
			row := make(map[string]interface{})
			params := make([]interface{}, 0, len(def.Columns))

			for _, col := range def.Columns {
				var value interface{}
				switch {
				case col.IsForeignKey:
					ref, resolved := refByColumn[col.Name]
					if !resolved || len(inserted[ref.RefTable]) == 0 {
						value = gen.Value(models.PoolAttribute{Name: col.Name, Type: col.Type})
						break
					}
					// Index rather than draw at random: combinations of
					// composite keys stay unique across the n rows.
					parentRows := inserted[ref.RefTable]
					value = parentRows[i%len(parentRows)][ref.RefColumn]
				case col.IsPrimaryKey && isIntegerType(col.Type):
					value = i + 1
				default:
					value = gen.Value(models.PoolAttribute{Name: col.Name, Type: col.Type})
				}
				row[col.Name] = value
				params = append(params, value)
			}

			paramsList = append(paramsList, params)
			rows = append(rows, row)
		}

		affected, err := db.ExecuteMany(insertSQL, paramsList)
		if err != nil {
			return total, fmt.Errorf("seeding table %s: %w", def.Name, err)
		}

		inserted[def.Name] = rows
		total += affected
	}

	return total, nil
}

// createStatement renders the CREATE TABLE statement for one table.
func createStatement(def TableDDL) string {
	var lines []string

	var pkNames []string
	for _, col := range def.Columns {
		lines = append(lines, fmt.Sprintf("  %s %s NOT NULL", col.Name, sqlType(col.Type)))
		if col.IsPrimaryKey {
			pkNames = append(pkNames, col.Name)
		}
	}

	if len(pkNames) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(pkNames, ", ")))
	}

	refs := make([]ColumnRef, len(def.References))
	copy(refs, def.References)
	sort.Slice(refs, func(i, j int) bool { return refs[i].Column < refs[j].Column })
	for _, ref := range refs {
		lines = append(lines, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
			ref.Column, ref.RefTable, ref.RefColumn))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", def.Name, strings.Join(lines, ",\n"))
}

// findReferencedTable returns the index of a table other than self whose
// primary key is exactly the given column, or -1.
func findReferencedTable(tables []models.TableInstance, self int, column string) int {
	for i, table := range tables {
		if i == self {
			continue
		}

		var pks []string
		for _, placed := range table.Attributes {
			if placed.IsPrimaryKey {
				pks = append(pks, placed.Name)
			}
		}

		if len(pks) == 1 && pks[0] == column {
			return i
		}
	}
	return -1
}

// tableName derives a readable table name from the primary-key columns,
// stripping ID suffixes: {StudentID} becomes student, {ProductID,
// SupplierID} becomes product_supplier. Tables without primary keys fall
// back to a positional name.
func tableName(table models.TableInstance, idx int) string {
	var parts []string
	for _, placed := range table.Attributes {
		if !placed.IsPrimaryKey {
			continue
		}
		part := strings.ToLower(placed.Name)
		part = strings.TrimSuffix(part, "_id")
		part = strings.TrimSuffix(part, "id")
		part = strings.Trim(part, "_")
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("table_%d", idx+1)
	}
	return strings.Join(parts, "_")
}

// isIntegerType reports whether a display type tag is an integer type, so
// seeding can hand out sequential primary-key values instead of random ones.
func isIntegerType(displayType string) bool {
	switch strings.ToLower(displayType) {
	case "integer", "int":
		return true
	default:
		return false
	}
}

// sqlType maps a display type tag to a MySQL column type.
func sqlType(displayType string) string {
	switch strings.ToLower(displayType) {
	case "integer", "int":
		return "INT"
	case "decimal":
		return "DECIMAL(10,2)"
	case "float", "double":
		return "DOUBLE"
	case "date":
		return "DATE"
	case "datetime":
		return "DATETIME"
	case "boolean", "bool":
		return "TINYINT(1)"
	case "text":
		return "TEXT"
	default:
		return "VARCHAR(255)"
	}
}
