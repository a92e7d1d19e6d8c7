package query

import (
	"strings"
	"time"
)

// Matches reports whether a record satisfies every condition in the
// spec. valueOf resolves a field name to the record's value for that
// field; an empty spec matches everything.
func (s *Spec) Matches(valueOf func(field string) any) bool {
	for _, c := range s.Conditions() {
		if !c.matches(valueOf(c.Field)) {
			return false
		}
	}
	return true
}

func (c Condition) matches(v any) bool {
	switch c.Op {
	case OpContains:
		str, ok := v.(string)
		sub, ok2 := c.Value.(string)
		return ok && ok2 && strings.Contains(str, sub)
	case OpEquals:
		return v == c.Value
	case OpGTE:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp >= 0
	case OpLTE:
		cmp, ok := compareValues(v, c.Value)
		return ok && cmp <= 0
	case OpBetween:
		lo, ok := compareValues(v, c.Value)
		hi, ok2 := compareValues(v, c.Upper)
		return ok && ok2 && lo >= 0 && hi <= 0
	}
	return false
}

// compareValues orders two values of the same comparable kind. The bool
// result is false when the kinds differ or are unordered.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		return compareOrdered(av, bv), true
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0, false
		}
		return compareOrdered(av, bv), true
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return 0, false
		}
		return compareOrdered(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case av.Before(bv):
			return -1, true
		case av.After(bv):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func compareOrdered[T float64 | int | int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
