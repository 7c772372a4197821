package session

import (
	"github.com/google/uuid"

	"github.com/vitebski/normalization-trainer/pkg/models"
)

// State is the complete editing state of one active level: the pool of
// unplaced attributes and the user's tables. Operations take a State and
// return a new one; callers own persistence between calls. Every attribute
// instance lives in exactly one of pool or table at any time.
type State struct {
	Pool        []models.Attribute
	Tables      []models.TableInstance
	NextTableID int
}

// StartLevel seeds a fresh editing state from a scenario: the full
// attribute pool, each instance stamped with its own identity, and exactly
// one empty table.
func StartLevel(s models.Scenario) State {
	pool := make([]models.Attribute, 0, len(s.Attributes))
	for _, attr := range s.Attributes {
		pool = append(pool, models.Attribute{
			ID:   uuid.NewString(),
			Name: attr.Name,
			Type: attr.Type,
		})
	}

	return State{
		Pool:        pool,
		Tables:      []models.TableInstance{{ID: 1}},
		NextTableID: 2,
	}
}

// CreateTable adds a new empty table with the next sequential id.
func CreateTable(st State) State {
	next := clone(st)
	next.Tables = append(next.Tables, models.TableInstance{ID: st.NextTableID})
	next.NextTableID++
	return next
}

// DeleteTable removes a table and returns its attributes to the pool with
// key annotations cleared. Unknown table ids leave the state unchanged.
func DeleteTable(st State, tableID int) State {
	idx := tableIndex(st, tableID)
	if idx < 0 {
		return st
	}

	next := clone(st)
	for _, placed := range next.Tables[idx].Attributes {
		next.Pool = append(next.Pool, models.Attribute{
			ID:   placed.InstanceID,
			Name: placed.Name,
			Type: placed.Type,
		})
	}
	next.Tables = append(next.Tables[:idx], next.Tables[idx+1:]...)
	return next
}

// PlaceAttribute moves one attribute instance from the pool to a table,
// with both key flags reset. If the attribute is not in the pool, or the
// table does not exist, the state is returned unchanged.
func PlaceAttribute(st State, tableID int, attributeID string) State {
	tIdx := tableIndex(st, tableID)
	if tIdx < 0 {
		return st
	}

	pIdx := -1
	for i, attr := range st.Pool {
		if attr.ID == attributeID {
			pIdx = i
			break
		}
	}
	if pIdx < 0 {
		return st
	}

	next := clone(st)
	attr := next.Pool[pIdx]
	next.Pool = append(next.Pool[:pIdx], next.Pool[pIdx+1:]...)
	next.Tables[tIdx].Attributes = append(next.Tables[tIdx].Attributes, models.PlacedAttribute{
		InstanceID: attr.ID,
		Name:       attr.Name,
		Type:       attr.Type,
	})
	return next
}

// RemoveAttribute is the inverse of PlaceAttribute: the placement goes
// back to the pool with key annotations cleared.
func RemoveAttribute(st State, tableID int, instanceID string) State {
	tIdx := tableIndex(st, tableID)
	if tIdx < 0 {
		return st
	}

	aIdx := placementIndex(st.Tables[tIdx], instanceID)
	if aIdx < 0 {
		return st
	}

	next := clone(st)
	placed := next.Tables[tIdx].Attributes[aIdx]
	next.Tables[tIdx].Attributes = append(
		next.Tables[tIdx].Attributes[:aIdx],
		next.Tables[tIdx].Attributes[aIdx+1:]...,
	)
	next.Pool = append(next.Pool, models.Attribute{
		ID:   placed.InstanceID,
		Name: placed.Name,
		Type: placed.Type,
	})
	return next
}

// ToggleKey flips one key annotation on one placement. Cardinality is not
// checked here; only validation decides whether the annotations are right.
func ToggleKey(st State, tableID int, instanceID string, kind models.KeyKind) State {
	tIdx := tableIndex(st, tableID)
	if tIdx < 0 {
		return st
	}

	aIdx := placementIndex(st.Tables[tIdx], instanceID)
	if aIdx < 0 {
		return st
	}

	next := clone(st)
	placed := &next.Tables[tIdx].Attributes[aIdx]
	switch kind {
	case models.PrimaryKey:
		placed.IsPrimaryKey = !placed.IsPrimaryKey
	case models.ForeignKey:
		placed.IsForeignKey = !placed.IsForeignKey
	}
	return next
}

// clone deep-copies a state so operations never mutate their input's
// backing arrays.
func clone(st State) State {
	next := State{
		Pool:        make([]models.Attribute, len(st.Pool)),
		Tables:      make([]models.TableInstance, len(st.Tables)),
		NextTableID: st.NextTableID,
	}
	copy(next.Pool, st.Pool)
	for i, table := range st.Tables {
		attrs := make([]models.PlacedAttribute, len(table.Attributes))
		copy(attrs, table.Attributes)
		next.Tables[i] = models.TableInstance{ID: table.ID, Attributes: attrs}
	}
	return next
}

func tableIndex(st State, tableID int) int {
	for i, table := range st.Tables {
		if table.ID == tableID {
			return i
		}
	}
	return -1
}

func placementIndex(table models.TableInstance, instanceID string) int {
	for i, placed := range table.Attributes {
		if placed.InstanceID == instanceID {
			return i
		}
	}
	return -1
}
