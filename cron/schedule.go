package cron

import (
	"strings"
	"time"
)

// DayPolicy decides how day-of-month and day-of-week combine when both
// are restricted, i.e. neither is a Wildcard.
type DayPolicy int

const (
	// DayOr matches a day when either restricted field matches, as cron(8)
	// does. When only one of the fields is restricted, only that one
	// constrains the day.
	DayOr DayPolicy = iota
	// DayAnd requires both fields to match.
	DayAnd
	// DayExclusive rejects expressions that restrict both fields.
	DayExclusive
)

func (p DayPolicy) String() string {
	switch p {
	case DayOr:
		return "or"
	case DayAnd:
		return "and"
	case DayExclusive:
		return "exclusive"
	}
	return "unknown"
}

// ParseDayPolicy resolves a policy from its String form.
func ParseDayPolicy(s string) (DayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "or":
		return DayOr, nil
	case "and":
		return DayAnd, nil
	case "exclusive":
		return DayExclusive, nil
	}
	return DayOr, illegalArgumentError("unknown day policy " + s)
}

// Schedule is a parsed and validated cron expression. It is immutable and
// safe for concurrent use.
type Schedule struct {
	expression string
	dialect    Dialect
	policy     DayPolicy
	values     []FieldValue
}

// Expression returns the trimmed source text.
func (s *Schedule) Expression() string {
	return s.expression
}

// Dialect returns the dialect the expression was parsed with.
func (s *Schedule) Dialect() Dialect {
	return s.dialect
}

// DayPolicy returns the policy MatchesDay applies.
func (s *Schedule) DayPolicy() DayPolicy {
	return s.policy
}

// Fields returns the resolved values in positional order.
func (s *Schedule) Fields() []FieldValue {
	return append([]FieldValue(nil), s.values...)
}

// Field returns the value of the field of the given kind. The second
// result is false when the dialect has no such field.
func (s *Schedule) Field(kind FieldKind) (FieldValue, bool) {
	i := s.dialect.Index(kind)
	if i < 0 {
		return FieldValue{}, false
	}
	return s.values[i], true
}

// Matches reports whether v is accepted by the field of the given kind.
// A second field missing from the dialect only accepts 0; a missing year
// accepts anything.
func (s *Schedule) Matches(kind FieldKind, v int) bool {
	if fv, ok := s.Field(kind); ok {
		return fv.Matches(v)
	}
	switch kind {
	case Second:
		return v == 0
	case Year:
		return true
	}
	return false
}

// MatchesDay applies the day policy to a day of month (1-31) and a day of
// week (0-6, Sunday is 0).
func (s *Schedule) MatchesDay(dom, dow int) bool {
	domValue, hasDom := s.Field(DayOfMonth)
	dowValue, hasDow := s.Field(DayOfWeek)
	switch {
	case !hasDom && !hasDow:
		return true
	case !hasDow:
		return domValue.Matches(dom)
	case !hasDom:
		return dowValue.Matches(dow)
	}

	domMatch, dowMatch := domValue.Matches(dom), dowValue.Matches(dow)
	if s.policy == DayOr && !domValue.IsWildcard() && !dowValue.IsWildcard() {
		return domMatch || dowMatch
	}
	return domMatch && dowMatch
}

// MatchesTime reports whether every field accepts t, evaluated in t's
// location.
func (s *Schedule) MatchesTime(t time.Time) bool {
	return s.Matches(Year, t.Year()) &&
		s.Matches(Month, int(t.Month())) &&
		s.MatchesDay(t.Day(), int(t.Weekday())) &&
		s.Matches(Hour, t.Hour()) &&
		s.Matches(Minute, t.Minute()) &&
		s.Matches(Second, t.Second())
}

// String renders the schedule in canonical numeric form. Parsing the
// result with the same dialect yields an equal schedule.
func (s *Schedule) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
