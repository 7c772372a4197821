package validator

import "github.com/vitebski/normalization-trainer/pkg/models"

// BuildSnapshot converts the live editing tables into the order-preserving,
// identity-stripped records the matcher works on. Pure function: empty
// tables become records with empty sets, and the input is never modified.
func BuildSnapshot(tables []models.TableInstance) []models.TableRecord {
	snapshot := make([]models.TableRecord, 0, len(tables))

	for _, table := range tables {
		record := models.TableRecord{
			Names: make(map[string]bool),
			PKs:   make(map[string]bool),
			FKs:   make(map[string]bool),
		}

		for _, placed := range table.Attributes {
			record.Names[placed.Name] = true
			if placed.IsPrimaryKey {
				record.PKs[placed.Name] = true
			}
			if placed.IsForeignKey {
				record.FKs[placed.Name] = true
			}
		}

		snapshot = append(snapshot, record)
	}

	return snapshot
}
