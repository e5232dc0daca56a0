package cron

import (
	"fmt"
)

// daysInMonth is the longest length of each month, February counted in a
// leap year.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// validate runs the cross-field checks on freshly parsed values.
func validate(expression string, d Dialect, values []FieldValue, policy DayPolicy, allowImpossible bool) error {
	if len(values) != d.FieldCount() {
		return inconsistentError(expression, fmt.Sprintf("%d values for %d fields", len(values), d.FieldCount()))
	}
	for i, v := range values {
		if v.Kind() == Unresolved {
			return inconsistentError(expression, fmt.Sprintf("%s field is unresolved", d.fields[i].Name))
		}
	}

	domIndex, dowIndex := d.Index(DayOfMonth), d.Index(DayOfWeek)
	domRestricted := domIndex >= 0 && !values[domIndex].IsWildcard()
	dowRestricted := dowIndex >= 0 && !values[dowIndex].IsWildcard()

	if policy == DayExclusive && domRestricted && dowRestricted {
		return inconsistentError(expression, "day-of-month and day-of-week are both restricted")
	}

	// Day-of-month alone decides the day unless day-of-week can widen it.
	if allowImpossible || !domRestricted || (dowRestricted && policy == DayOr) {
		return nil
	}
	months := wildcardValue(monthField)
	if i := d.Index(Month); i >= 0 {
		months = values[i]
	}
	if !dateExists(values[domIndex], months) {
		return inconsistentError(expression, fmt.Sprintf("day-of-month %s never occurs in month %s",
			values[domIndex], months))
	}
	return nil
}

// dateExists reports whether some selected day exists in some selected
// month.
func dateExists(days, months FieldValue) bool {
	first := days.Values()
	if len(first) == 0 {
		return false
	}
	for _, m := range months.Values() {
		if m >= 1 && m <= 12 && first[0] <= daysInMonth[m] {
			return true
		}
	}
	return false
}
