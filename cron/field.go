package cron

import (
	"strconv"
	"strings"
)

// maxDigits bounds numeric literals so conversion cannot overflow.
const maxDigits = 9

// maxSetValues bounds the expansion of a list into explicit values.
const maxSetValues = 1 << 16

// item is one comma-separated term of a field after bound resolution.
type item struct {
	wildcard         bool
	start, end, step int
	stepped          bool
}

// parseField parses one token against its field definition. The token is
// split on commas and every item resolved before the union is built.
func parseField(index int, field Field, text string, limits Limits) (FieldValue, error) {
	parts := strings.Split(text, ",")
	if limits.MaxListItems > 0 && len(parts) > limits.MaxListItems {
		err := fieldError(ErrResourceLimit, index, field, text)
		err.Reason = "list has " + strconv.Itoa(len(parts)) + " items, limit is " +
			strconv.Itoa(limits.MaxListItems)
		return FieldValue{}, err
	}

	items := make([]item, 0, len(parts))
	for _, part := range parts {
		it, err := parseItem(index, field, part)
		if err != nil {
			return FieldValue{}, err
		}
		items = append(items, it)
	}

	for _, it := range items {
		if it.wildcard {
			return wildcardValue(field), nil
		}
	}
	if len(items) == 1 && items[0].stepped {
		it := items[0]
		return stepValue(field, it.start, it.end, it.step), nil
	}

	total := 0
	for _, it := range items {
		total += (it.end-it.start)/it.step + 1
	}
	if total > maxSetValues {
		err := fieldError(ErrResourceLimit, index, field, text)
		err.Reason = "expands to " + strconv.Itoa(total) + " values, limit is " +
			strconv.Itoa(maxSetValues)
		return FieldValue{}, err
	}

	values := make([]int, 0, total)
	for _, it := range items {
		for v := it.start; v <= it.end; v += it.step {
			values = append(values, v)
		}
	}
	return setValue(field, values), nil
}

// parseItem parses: *, ?, */S, N, N-M, N/S, N-M/S.
func parseItem(index int, field Field, text string) (item, error) {
	if text == "" {
		return item{}, fieldError(ErrMalformedField, index, field, text)
	}

	base, stepText, stepped := strings.Cut(text, "/")
	step := 1
	if stepped {
		var err error
		if step, err = parseStep(index, field, text, stepText); err != nil {
			return item{}, err
		}
	}

	if base == "*" || (base == "?" && field.AllowAny) {
		if !stepped {
			return item{wildcard: true}, nil
		}
		return item{start: field.Min, end: field.Max, step: step, stepped: true}, nil
	}

	lowText, highText, isRange := strings.Cut(base, "-")
	low, err := parseBound(index, field, text, lowText)
	if err != nil {
		return item{}, err
	}
	high := low
	switch {
	case isRange:
		if high, err = parseBound(index, field, text, highText); err != nil {
			return item{}, err
		}
		if low > high {
			return item{}, fieldError(ErrInvalidRange, index, field, text)
		}
	case stepped:
		high = field.Max
	}

	return item{start: low, end: high, step: step, stepped: stepped}, nil
}

// parseStep validates the increment of a step item.
func parseStep(index int, field Field, text, stepText string) (int, error) {
	negative := strings.HasPrefix(stepText, "-")
	digits := strings.TrimPrefix(stepText, "-")
	if !isDigits(digits) || len(digits) > maxDigits {
		return 0, fieldError(ErrMalformedField, index, field, text)
	}
	step, _ := strconv.Atoi(digits)
	if negative || step <= 0 {
		return 0, fieldError(ErrInvalidStep, index, field, text)
	}
	return step, nil
}

// parseBound resolves a number or symbol and checks it against the field
// bounds.
func parseBound(index int, field Field, text, bound string) (int, error) {
	switch {
	case isDigits(bound):
		if len(bound) > maxDigits {
			return 0, fieldError(ErrMalformedField, index, field, text)
		}
		v, _ := strconv.Atoi(bound)
		if !field.inBounds(v) {
			return 0, outOfRangeError(index, field, text, v)
		}
		return v, nil
	case isLetters(bound):
		v, ok := field.Lookup(bound)
		if !ok {
			return 0, fieldError(ErrUnknownSymbol, index, field, text)
		}
		return v, nil
	}
	return 0, fieldError(ErrMalformedField, index, field, text)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
