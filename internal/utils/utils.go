package utils

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vitebski/normalization-trainer/internal/exporter"
	"github.com/vitebski/normalization-trainer/internal/sampledata"
	"github.com/vitebski/normalization-trainer/internal/session"
	"github.com/vitebski/normalization-trainer/pkg/models"
)

// SetupLogging configures the logging system
func SetupLogging(logLevel string) *logrus.Logger {
	logger := logrus.New()

	levelStr := logLevel
	if levelStr == "" {
		levelStr = os.Getenv("TRAINER_LOG_LEVEL")
		if levelStr == "" {
			levelStr = "info"
		}
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	return logger
}

// LoadEnvironmentVariables loads environment variables from a .env file if
// one exists. MySQL credentials are only needed for the export feature, so
// nothing here is treated as required.
func LoadEnvironmentVariables(envFile string, logger *logrus.Logger) {
	if _, err := os.Stat(envFile); err != nil {
		logger.Debugf("No %s file found, using existing environment variables", envFile)
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warningf("Error loading %s file: %v", envFile, err)
		return
	}
	logger.Infof("Loaded environment variables from %s", envFile)
}

// GetEnvInt gets an integer value from environment variable
func GetEnvInt(varName string, defaultValue int) int {
	value := os.Getenv(varName)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// ValidateExportParams validates database connection parameters before an
// export is attempted.
func ValidateExportParams(host, user, password, database, port string, logger *logrus.Logger) bool {
	if host == "" {
		logger.Error("Database host is required")
		return false
	}

	if user == "" {
		logger.Error("Database user is required")
		return false
	}

	if password == "" { // Empty password is allowed
		logger.Warning("Database password is empty")
	}

	if database == "" {
		logger.Error("Database name is required")
		return false
	}

	if _, err := strconv.Atoi(port); err != nil {
		logger.Errorf("Invalid port number: %s", port)
		return false
	}

	return true
}

// PrintScenarioList prints every available level with its title.
func PrintScenarioList(scenarios map[int]models.Scenario) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("AVAILABLE LEVELS")
	fmt.Println(strings.Repeat("=", 50))

	levels := make([]int, 0, len(scenarios))
	for level := range scenarios {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for _, level := range levels {
		fmt.Printf("  %2d. %s\n", level, scenarios[level].Title)
	}
	fmt.Println(strings.Repeat("=", 50))
}

// PrintScenarioOverview prints the level banner shown when a level starts.
func PrintScenarioOverview(s models.Scenario) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("LEVEL %d: %s\n", s.Level, strings.ToUpper(s.Title))
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(wrap(s.Description, 70))
	fmt.Printf("\nAttributes to place: %d   Tables required: %d\n",
		len(s.Attributes), len(s.Solution))
	fmt.Println(strings.Repeat("=", 70))
}

// PrintWorkspace prints the pool and every table with key markers, the way
// the learner sees the current editing state.
func PrintWorkspace(st session.State) {
	fmt.Println("\nPOOL")
	if len(st.Pool) == 0 {
		fmt.Println("  (empty)")
	}
	for i, attr := range st.Pool {
		fmt.Printf("  %2d. %s (%s)\n", i+1, attr.Name, attr.Type)
	}

	for _, table := range st.Tables {
		fmt.Printf("\nTABLE %d\n", table.ID)
		if len(table.Attributes) == 0 {
			fmt.Println("  (empty)")
		}
		for i, placed := range table.Attributes {
			var marks []string
			if placed.IsPrimaryKey {
				marks = append(marks, "PK")
			}
			if placed.IsForeignKey {
				marks = append(marks, "FK")
			}
			marker := ""
			if len(marks) > 0 {
				marker = " [" + strings.Join(marks, ",") + "]"
			}
			fmt.Printf("  %2d. %s (%s)%s\n", i+1, placed.Name, placed.Type, marker)
		}
	}
}

// PrintVerdict prints a validation verdict.
func PrintVerdict(verdict models.ValidationVerdict) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	if verdict.Success {
		fmt.Println("SCHEMA CHECK: PASSED")
	} else {
		fmt.Printf("SCHEMA CHECK: FAILED (%s)\n", verdict.Reason)
	}
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(wrap(verdict.Detail, 70))
	fmt.Println(strings.Repeat("=", 70))
}

// PrintPreview prints generated example rows of the flat, denormalized
// table so the repetition is visible.
func PrintPreview(s models.Scenario, rows []map[string]interface{}) {
	columns := make([]string, 0, len(s.Attributes))
	seen := make(map[string]bool)
	for _, attr := range s.Attributes {
		if seen[attr.Name] {
			continue
		}
		seen[attr.Name] = true
		columns = append(columns, attr.Name)
	}

	fmt.Println("\nFLAT TABLE PREVIEW (note the repeated values)")
	fmt.Println("  " + strings.Join(columns, " | "))
	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = sampledata.FormatValue(row[col])
		}
		fmt.Println("  " + strings.Join(values, " | "))
	}
}

// PrintExportSummary prints the exported DDL and the seeding result.
func PrintExportSummary(ddl []exporter.TableDDL, seeded int64) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("EXPORT SUMMARY")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Tables created: %d\n", len(ddl))
	for _, def := range ddl {
		fmt.Printf("  - %s\n", def.Name)
	}
	if seeded > 0 {
		fmt.Printf("Rows seeded: %d\n", seeded)
	}
	fmt.Println(strings.Repeat("=", 50))
}

// wrap folds text at the given width, preserving paragraph breaks.
func wrap(text string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
