// Package query defines the storage-agnostic filter specification consumed by
// ship repositories. A Spec is a conjunction of tagged comparison conditions;
// each storage backend decides how to evaluate them (in-memory scan or SQL).
package query

type Op string

const (
	OpContains Op = "contains"
	OpEquals   Op = "eq"
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
	OpBetween  Op = "between"
)

// Condition is a single comparison over a logical field. Value holds the
// comparison operand; Upper is set only for OpBetween (inclusive bounds).
type Condition struct {
	Field string
	Op    Op
	Value any
	Upper any
}

// Contains matches records whose string field contains substr (case-sensitive).
func Contains(field, substr string) *Condition {
	return &Condition{Field: field, Op: OpContains, Value: substr}
}

// Equals matches records whose field equals value exactly.
func Equals(field string, value any) *Condition {
	return &Condition{Field: field, Op: OpEquals, Value: value}
}

// GTE matches records whose field is greater than or equal to value.
func GTE(field string, value any) *Condition {
	return &Condition{Field: field, Op: OpGTE, Value: value}
}

// LTE matches records whose field is less than or equal to value.
func LTE(field string, value any) *Condition {
	return &Condition{Field: field, Op: OpLTE, Value: value}
}

// Between matches records whose field lies in [lo, hi], bounds inclusive.
func Between(field string, lo, hi any) *Condition {
	return &Condition{Field: field, Op: OpBetween, Value: lo, Upper: hi}
}

// Spec is an AND-conjunction of conditions. The zero value matches everything.
// Conditions carry no shared state, so fragments may be added in any order
// with identical results.
type Spec struct {
	conditions []Condition
}

func NewSpec() *Spec {
	return &Spec{}
}

// Add appends a condition fragment. A nil fragment is a no-op, so builders
// that return nil for absent parameters compose without nil checks.
func (s *Spec) Add(c *Condition) *Spec {
	if c != nil {
		s.conditions = append(s.conditions, *c)
	}
	return s
}

// Conditions returns the accumulated fragments in insertion order.
func (s *Spec) Conditions() []Condition {
	if s == nil {
		return nil
	}
	return s.conditions
}

// Empty reports whether the spec constrains nothing.
func (s *Spec) Empty() bool {
	return s == nil || len(s.conditions) == 0
}
