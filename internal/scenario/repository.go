package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// Repository holds every scenario available to the trainer, keyed by level.
// Scenarios are read-only for the lifetime of the process.
type Repository struct {
	Scenarios map[int]models.Scenario
	Logger    *logrus.Logger
}

// NewRepository creates a repository seeded with the builtin scenarios.
func NewRepository(logger *logrus.Logger) *Repository {
	repo := &Repository{
		Scenarios: make(map[int]models.Scenario),
		Logger:    logger,
	}

	for _, s := range builtinScenarios() {
		repo.Scenarios[s.Level] = s
	}

	return repo
}

// LoadDirectory reads scenario files (*.yaml, *.yml) from dir and merges
// them into the repository. A file scenario replaces a builtin with the
// same level. Files that fail to parse or lint are skipped with a warning
// so one bad file does not take down the whole set.
func (r *Repository) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading scenario directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		s, err := loadFile(path)
		if err != nil {
			r.Logger.Warningf("Skipping scenario file %s: %v", path, err)
			continue
		}

		if err := ValidateSpecification(s); err != nil {
			r.Logger.Warningf("Skipping scenario file %s: %v", path, err)
			continue
		}

		if _, exists := r.Scenarios[s.Level]; exists {
			r.Logger.Infof("Scenario file %s overrides level %d", entry.Name(), s.Level)
		}
		r.Scenarios[s.Level] = s
		loaded++
	}

	r.Logger.Infof("Loaded %d scenario file(s) from %s", loaded, dir)
	return nil
}

// Get returns the scenario for a level. An unknown level is a configuration
// error surfaced to the caller, never silently recovered.
func (r *Repository) Get(level int) (models.Scenario, error) {
	s, ok := r.Scenarios[level]
	if !ok {
		return models.Scenario{}, fmt.Errorf("unknown scenario level %d", level)
	}
	return s, nil
}

// Levels returns the available level numbers in ascending order.
func (r *Repository) Levels() []int {
	levels := make([]int, 0, len(r.Scenarios))
	for level := range r.Scenarios {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// loadFile parses a single YAML scenario file.
func loadFile(path string) (models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Scenario{}, err
	}

	var s models.Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return models.Scenario{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if s.Level <= 0 {
		return models.Scenario{}, fmt.Errorf("scenario is missing a positive level number")
	}
	if s.Title == "" {
		return models.Scenario{}, fmt.Errorf("scenario is missing a title")
	}

	return s, nil
}
