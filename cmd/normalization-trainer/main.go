package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vitebski/normalization-trainer/internal/connector"
	"github.com/vitebski/normalization-trainer/internal/exporter"
	"github.com/vitebski/normalization-trainer/internal/sampledata"
	"github.com/vitebski/normalization-trainer/internal/scenario"
	"github.com/vitebski/normalization-trainer/internal/session"
	"github.com/vitebski/normalization-trainer/internal/utils"
	"github.com/vitebski/normalization-trainer/internal/validator"
	"github.com/vitebski/normalization-trainer/pkg/models"
)

func main() {
	var (
		host         string
		user         string
		password     string
		database     string
		port         string
		level        int
		scenariosDir string
		envFile      string
		logLevel     string
		seedRecords  int
		list         bool
		lintOnly     bool
	)

	rootCmd := &cobra.Command{
		Use:   "normalization-trainer",
		Short: "An interactive exercise in normalizing a flat attribute set into tables",
		Long: `Database Normalization Trainer

An interactive trainer: take a flat set of attributes, split it into
tables, mark primary and foreign keys, and check the result against the
level's normalization goal. A passed schema can be exported to a MySQL
database and seeded with dummy rows.`,
		Run: func(cmd *cobra.Command, args []string) {
			logger := utils.SetupLogging(logLevel)
			utils.LoadEnvironmentVariables(envFile, logger)

			repo := scenario.NewRepository(logger)
			if scenariosDir != "" {
				if err := repo.LoadDirectory(scenariosDir); err != nil {
					logger.Errorf("Failed to load scenarios: %v", err)
					os.Exit(1)
				}
			}

			if list {
				utils.PrintScenarioList(repo.Scenarios)
				return
			}

			if lintOnly {
				failed := false
				for _, lvl := range repo.Levels() {
					s, _ := repo.Get(lvl)
					if err := scenario.ValidateSpecification(s); err != nil {
						logger.Errorf("Level %d: %v", lvl, err)
						failed = true
					} else {
						logger.Infof("Level %d (%s): OK", lvl, s.Title)
					}
				}
				if failed {
					os.Exit(1)
				}
				return
			}

			sc, err := repo.Get(level)
			if err != nil {
				logger.Errorf("Failed to start level: %v", err)
				os.Exit(1)
			}
			if err := scenario.ValidateSpecification(sc); err != nil {
				logger.Errorf("Scenario configuration is broken: %v", err)
				os.Exit(1)
			}

			tr := &trainer{
				scenario: sc,
				state:    session.StartLevel(sc),
				picker:   validator.NewRandomPicker(time.Now().UnixNano()),
				gen:      sampledata.NewGenerator(time.Now().UnixNano(), logger),
				logger:   logger,
				started:  time.Now(),
				export: exportParams{
					host: host, user: user, password: password,
					database: database, port: port, seedRecords: seedRecords,
				},
			}

			utils.PrintScenarioOverview(sc)
			utils.PrintWorkspace(tr.state)
			tr.run(os.Stdin)
		},
	}

	rootCmd.Flags().StringVarP(&host, "host", "H", "", "MySQL host for export (default: localhost)")
	rootCmd.Flags().StringVarP(&user, "user", "u", "", "MySQL user for export (default: root)")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "MySQL password for export")
	rootCmd.Flags().StringVarP(&database, "database", "d", "", "MySQL database name for export")
	rootCmd.Flags().StringVarP(&port, "port", "P", "", "MySQL port for export (default: 3306)")
	rootCmd.Flags().IntVarP(&level, "level", "n", 1, "Level number to play")
	rootCmd.Flags().StringVarP(&scenariosDir, "scenarios-dir", "s", "", "Directory with additional scenario YAML files")
	rootCmd.Flags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().IntVarP(&seedRecords, "seed-records", "r", utils.GetEnvInt("TRAINER_SEED_RECORDS", 10),
		"Number of dummy records per table when exporting")
	rootCmd.Flags().BoolVar(&list, "list", false, "List available levels and exit")
	rootCmd.Flags().BoolVar(&lintOnly, "lint-only", false, "Lint all scenario specifications and exit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type exportParams struct {
	host, user, password, database, port string
	seedRecords                          int
}

// trainer holds one interactive level session. All normalization logic
// lives in the packages it calls into; this layer only translates commands.
type trainer struct {
	scenario models.Scenario
	state    session.State
	picker   validator.AnomalyPicker
	gen      *sampledata.Generator
	logger   *logrus.Logger
	started  time.Time
	elapsed  time.Duration
	solved   bool
	export   exportParams
}

func (t *trainer) run(in *os.File) {
	scanner := bufio.NewScanner(in)
	fmt.Println("\nType 'help' for commands.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "show", "tables", "pool":
			utils.PrintWorkspace(t.state)
		case "new":
			t.state = session.CreateTable(t.state)
			utils.PrintWorkspace(t.state)
		case "drop":
			t.withTable(fields, 1, func(tableID int) {
				t.state = session.DeleteTable(t.state, tableID)
			})
		case "place":
			t.place(fields)
		case "remove":
			t.toggleOrRemove(fields, func(tableID int, instanceID string) {
				t.state = session.RemoveAttribute(t.state, tableID, instanceID)
			})
		case "pk":
			t.toggleOrRemove(fields, func(tableID int, instanceID string) {
				t.state = session.ToggleKey(t.state, tableID, instanceID, models.PrimaryKey)
			})
		case "fk":
			t.toggleOrRemove(fields, func(tableID int, instanceID string) {
				t.state = session.ToggleKey(t.state, tableID, instanceID, models.ForeignKey)
			})
		case "preview":
			utils.PrintPreview(t.scenario, t.gen.Rows(t.scenario, 5))
		case "hint":
			fmt.Println(t.scenario.Hint)
		case "time":
			fmt.Printf("Elapsed: %s\n", t.elapsedTime().Round(time.Second))
		case "check":
			t.check()
		case "export":
			t.runExport()
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q, type 'help'\n", fields[0])
		}
	}
}

// check validates the current schema and freezes the clock on success.
func (t *trainer) check() {
	verdict := validator.Validate(t.state.Tables, t.scenario, t.picker)
	utils.PrintVerdict(verdict)
	if verdict.Success && !t.solved {
		t.solved = true
		t.elapsed = time.Since(t.started)
		fmt.Printf("Solved in %s. You can now 'export' the schema.\n", t.elapsed.Round(time.Second))
	}
}

func (t *trainer) runExport() {
	if !t.solved {
		fmt.Println("Export is only available after a successful check.")
		return
	}

	p := t.export
	db := connector.NewDatabaseConnector(p.host, p.user, p.password, p.database, p.port, t.logger)
	if !utils.ValidateExportParams(db.Host, db.User, db.Password, db.Database, db.Port, t.logger) {
		return
	}
	if err := db.Connect(); err != nil {
		t.logger.Errorf("Failed to connect for export: %v", err)
		return
	}
	defer db.Disconnect()

	ddl := exporter.BuildDDL(t.state.Tables, db.Logger)
	if err := exporter.Export(db, ddl); err != nil {
		t.logger.Errorf("Export failed: %v", err)
		return
	}

	var seeded int64
	if p.seedRecords > 0 {
		var err error
		seeded, err = exporter.Seed(db, ddl, t.gen, p.seedRecords)
		if err != nil {
			t.logger.Errorf("Seeding failed: %v", err)
			return
		}
	}

	utils.PrintExportSummary(ddl, seeded)
}

func (t *trainer) elapsedTime() time.Duration {
	if t.solved {
		return t.elapsed
	}
	return time.Since(t.started)
}

// place handles "place <pool#> <table>".
func (t *trainer) place(fields []string) {
	if len(fields) != 3 {
		fmt.Println("Usage: place <pool#> <table>")
		return
	}

	poolIdx, err1 := strconv.Atoi(fields[1])
	tableID, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || poolIdx < 1 || poolIdx > len(t.state.Pool) {
		fmt.Println("Usage: place <pool#> <table>")
		return
	}

	t.state = session.PlaceAttribute(t.state, tableID, t.state.Pool[poolIdx-1].ID)
	utils.PrintWorkspace(t.state)
}

// toggleOrRemove handles the "<cmd> <table> <pos>" commands.
func (t *trainer) toggleOrRemove(fields []string, apply func(tableID int, instanceID string)) {
	if len(fields) != 3 {
		fmt.Printf("Usage: %s <table> <pos>\n", fields[0])
		return
	}

	tableID, err1 := strconv.Atoi(fields[1])
	pos, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		fmt.Printf("Usage: %s <table> <pos>\n", fields[0])
		return
	}

	for _, table := range t.state.Tables {
		if table.ID != tableID {
			continue
		}
		if pos < 1 || pos > len(table.Attributes) {
			fmt.Printf("Table %d has no attribute at position %d\n", tableID, pos)
			return
		}
		apply(tableID, table.Attributes[pos-1].InstanceID)
		utils.PrintWorkspace(t.state)
		return
	}
	fmt.Printf("No table with id %d\n", tableID)
}

func (t *trainer) withTable(fields []string, argPos int, apply func(tableID int)) {
	if len(fields) != argPos+1 {
		fmt.Printf("Usage: %s <table>\n", fields[0])
		return
	}
	tableID, err := strconv.Atoi(fields[argPos])
	if err != nil {
		fmt.Printf("Usage: %s <table>\n", fields[0])
		return
	}
	apply(tableID)
	utils.PrintWorkspace(t.state)
}

func printHelp() {
	fmt.Println(`Commands:
  show                 print pool and tables
  new                  create an empty table
  drop <table>         delete a table (attributes return to the pool)
  place <pool#> <table>  move a pool attribute into a table
  remove <table> <pos>   move an attribute back to the pool
  pk <table> <pos>       toggle the primary-key mark
  fk <table> <pos>       toggle the foreign-key mark
  preview              show example rows of the flat table
  hint                 show the level hint
  check                validate the schema against the level goal
  export               create the passed schema in MySQL and seed it
  time                 show elapsed time
  quit                 leave the trainer`)
}
