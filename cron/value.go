package cron

import (
	"sort"
	"strconv"
	"strings"
)

// ValueKind is the shape of a parsed field.
type ValueKind int

const (
	// Unresolved is the zero FieldValue; it never appears in a Schedule.
	Unresolved ValueKind = iota
	// Wildcard matches every value of the field's range.
	Wildcard
	// Set matches an explicit list of values.
	Set
	// Step matches start, start+step, ... up to end.
	Step
)

func (k ValueKind) String() string {
	switch k {
	case Wildcard:
		return "wildcard"
	case Set:
		return "set"
	case Step:
		return "step"
	}
	return "unresolved"
}

// FieldValue is the resolved content of one field. It is immutable.
type FieldValue struct {
	kind     ValueKind
	min, max int

	// Set
	values []int

	// Step
	start, end, step int
}

func wildcardValue(f Field) FieldValue {
	return FieldValue{kind: Wildcard, min: f.Min, max: f.Max}
}

// setValue sorts and de-duplicates values in place.
func setValue(f Field, values []int) FieldValue {
	sort.Ints(values)
	n := 0
	for i, v := range values {
		if i == 0 || v != values[n-1] {
			values[n] = v
			n++
		}
	}
	return FieldValue{kind: Set, min: f.Min, max: f.Max, values: values[:n:n]}
}

func stepValue(f Field, start, end, step int) FieldValue {
	return FieldValue{kind: Step, min: f.Min, max: f.Max, start: start, end: end, step: step}
}

// Kind returns the shape of the value.
func (v FieldValue) Kind() ValueKind {
	return v.kind
}

// Bounds returns the inclusive range of the field the value belongs to.
func (v FieldValue) Bounds() (min, max int) {
	return v.min, v.max
}

// IsWildcard reports whether v matches the whole field range.
func (v FieldValue) IsWildcard() bool {
	return v.kind == Wildcard
}

// Step returns the step parameters when v is a Step.
func (v FieldValue) Step() (start, end, step int, ok bool) {
	if v.kind != Step {
		return 0, 0, 0, false
	}
	return v.start, v.end, v.step, true
}

// Matches reports whether n is accepted by the field value.
func (v FieldValue) Matches(n int) bool {
	switch v.kind {
	case Wildcard:
		return n >= v.min && n <= v.max
	case Set:
		i := sort.SearchInts(v.values, n)
		return i < len(v.values) && v.values[i] == n
	case Step:
		return n >= v.start && n <= v.end && (n-v.start)%v.step == 0
	}
	return false
}

// Values returns every matching integer in ascending order.
func (v FieldValue) Values() []int {
	switch v.kind {
	case Wildcard:
		return fill(v.min, v.max, 1)
	case Set:
		return append([]int(nil), v.values...)
	case Step:
		return fill(v.start, v.end, v.step)
	}
	return nil
}

// Len returns the number of matching integers.
func (v FieldValue) Len() int {
	switch v.kind {
	case Wildcard:
		return v.max - v.min + 1
	case Set:
		return len(v.values)
	case Step:
		return (v.end-v.start)/v.step + 1
	}
	return 0
}

// String renders v in canonical cron syntax. Consecutive runs of a Set
// collapse into ranges.
func (v FieldValue) String() string {
	switch v.kind {
	case Wildcard:
		return "*"
	case Step:
		step := strconv.Itoa(v.step)
		switch {
		case v.start == v.min && v.end == v.max:
			return "*/" + step
		case v.end == v.max:
			return strconv.Itoa(v.start) + "/" + step
		}
		return strconv.Itoa(v.start) + "-" + strconv.Itoa(v.end) + "/" + step
	case Set:
		var items []string
		for i := 0; i < len(v.values); {
			j := i
			for j+1 < len(v.values) && v.values[j+1] == v.values[j]+1 {
				j++
			}
			switch {
			case j == i:
				items = append(items, strconv.Itoa(v.values[i]))
			case j == i+1:
				items = append(items, strconv.Itoa(v.values[i]), strconv.Itoa(v.values[j]))
			default:
				items = append(items, strconv.Itoa(v.values[i])+"-"+strconv.Itoa(v.values[j]))
			}
			i = j + 1
		}
		return strings.Join(items, ",")
	}
	return ""
}

func fill(from, to, step int) []int {
	if to < from || step <= 0 {
		return nil
	}
	out := make([]int, 0, (to-from)/step+1)
	for i := from; i <= to; i += step {
		out = append(out, i)
	}
	return out
}
