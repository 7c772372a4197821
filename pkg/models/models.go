package models

// Attribute represents one attribute instance, either waiting in the pool
// or referenced by a placement. Names are not unique: a duplicated name
// with a distinct ID is how a foreign-key copy of an attribute is modeled.
type Attribute struct {
	ID   string
	Name string
	Type string
}

// PlacedAttribute is an attribute placed into a user table together with
// its key annotations. The annotations are scoped to the placement, so the
// same attribute duplicated across two tables can be PK in one and FK in
// the other.
type PlacedAttribute struct {
	InstanceID   string
	Name         string
	Type         string
	IsPrimaryKey bool
	IsForeignKey bool
}

// TableInstance is a user-created table in the editing workspace.
type TableInstance struct {
	ID         int
	Attributes []PlacedAttribute
}

// KeyKind selects which key annotation an operation targets.
type KeyKind int

const (
	PrimaryKey KeyKind = iota
	ForeignKey
)

// GroupingRule is one authored expectation: the named attributes must
// co-occur in a single user table, with exactly PrimaryKeys as its primary
// key set and at least ForeignKeys marked as foreign keys.
type GroupingRule struct {
	MustContain []string `yaml:"must_contain"`
	PrimaryKeys []string `yaml:"primary_keys"`
	ForeignKeys []string `yaml:"foreign_keys"`
}

// PoolAttribute is an attribute as authored in a scenario, before it gains
// a runtime identity at level start.
type PoolAttribute struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Scenario is the immutable description of one exercise level.
type Scenario struct {
	Level       int               `yaml:"level"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Hint        string            `yaml:"hint"`
	Attributes  []PoolAttribute   `yaml:"attributes"`
	Solution    []GroupingRule    `yaml:"solution"`
	Anomalies   map[string]string `yaml:"anomalies"`
}

// TableRecord is the identity-stripped view of one user table used during
// matching: its attribute names and the names flagged as keys.
type TableRecord struct {
	Names map[string]bool
	PKs   map[string]bool
	FKs   map[string]bool
}

// ReasonCode identifies why a validation attempt failed.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	ReasonInsufficientTables
	ReasonMissingGrouping
	ReasonPrimaryKeyMismatch
	ReasonForeignKeyMissing
)

// String returns the stable name of a reason code.
func (r ReasonCode) String() string {
	switch r {
	case ReasonInsufficientTables:
		return "InsufficientTables"
	case ReasonMissingGrouping:
		return "MissingGrouping"
	case ReasonPrimaryKeyMismatch:
		return "PrimaryKeyMismatch"
	case ReasonForeignKeyMissing:
		return "ForeignKeyMissing"
	default:
		return "None"
	}
}

// ValidationVerdict is the result of one validation request. It is created
// fresh on every request and never persisted.
type ValidationVerdict struct {
	Success bool
	Reason  ReasonCode
	Detail  string
}
