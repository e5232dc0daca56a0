package cron

import (
	"fmt"
	"strings"
)

// FieldKind identifies the calendar unit a field constrains.
type FieldKind int

// Field kinds, in the order they appear in the longest dialect.
const (
	Second FieldKind = iota + 1
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
	Year
)

var kindNames = map[FieldKind]string{
	Second:     "second",
	Minute:     "minute",
	Hour:       "hour",
	DayOfMonth: "day-of-month",
	Month:      "month",
	DayOfWeek:  "day-of-week",
	Year:       "year",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

var (
	monthNames = map[string]int{
		"jan": 1,
		"feb": 2,
		"mar": 3,
		"apr": 4,
		"may": 5,
		"jun": 6,
		"jul": 7,
		"aug": 8,
		"sep": 9,
		"oct": 10,
		"nov": 11,
		"dec": 12,
	}
	weekdayNames = map[string]int{
		"sun": 0,
		"mon": 1,
		"tue": 2,
		"wed": 3,
		"thu": 4,
		"fri": 5,
		"sat": 6,
	}
)

// Field describes one positional slot of a cron expression.
type Field struct {
	Kind     FieldKind
	Name     string
	Min, Max int

	// AllowAny makes "?" an alias for "*".
	AllowAny bool

	// names maps lower-case symbols to values. It is never written after
	// construction and may be shared between fields.
	names map[string]int
}

// NewField returns a field definition. Symbol keys are matched
// case-insensitively; the map is copied.
func NewField(kind FieldKind, min, max int, symbols map[string]int) Field {
	var names map[string]int
	if len(symbols) > 0 {
		names = make(map[string]int, len(symbols))
		for k, v := range symbols {
			names[strings.ToLower(k)] = v
		}
	}
	return Field{
		Kind:     kind,
		Name:     kind.String(),
		Min:      min,
		Max:      max,
		AllowAny: kind == DayOfMonth || kind == DayOfWeek,
		names:    names,
	}
}

// Lookup resolves a symbolic name, ignoring case.
func (f Field) Lookup(symbol string) (int, bool) {
	v, ok := f.names[strings.ToLower(symbol)]
	return v, ok
}

// HasSymbols reports whether the field accepts symbolic names.
func (f Field) HasSymbols() bool {
	return len(f.names) > 0
}

// inBounds reports whether v lies in the field's inclusive range.
func (f Field) inBounds(v int) bool {
	return v >= f.Min && v <= f.Max
}

// The bounds for each field.
var (
	secondField = Field{Kind: Second, Name: "second", Min: 0, Max: 59}
	minuteField = Field{Kind: Minute, Name: "minute", Min: 0, Max: 59}
	hourField   = Field{Kind: Hour, Name: "hour", Min: 0, Max: 23}
	domField    = Field{Kind: DayOfMonth, Name: "day-of-month", Min: 1, Max: 31, AllowAny: true}
	monthField  = Field{Kind: Month, Name: "month", Min: 1, Max: 12, names: monthNames}
	dowField    = Field{Kind: DayOfWeek, Name: "day-of-week", Min: 0, Max: 6, AllowAny: true, names: weekdayNames}
	yearField   = Field{Kind: Year, Name: "year", Min: 1970, Max: 2099}
)

// Dialect is a named, ordered set of fields. The number of fields selects
// the dialect when a parser supports more than one.
type Dialect struct {
	Name   string
	fields []Field
}

// Built-in dialects.
var (
	// Standard is the five-field crontab(5) layout:
	// minute hour day-of-month month day-of-week.
	Standard = Dialect{
		Name:   "standard",
		fields: []Field{minuteField, hourField, domField, monthField, dowField},
	}

	// WithSeconds prepends a seconds field to Standard.
	WithSeconds = Dialect{
		Name:   "seconds",
		fields: []Field{secondField, minuteField, hourField, domField, monthField, dowField},
	}

	// Quartz appends a year field to WithSeconds.
	Quartz = Dialect{
		Name: "quartz",
		fields: []Field{secondField, minuteField, hourField, domField, monthField, dowField,
			yearField},
	}
)

// NewDialect validates and returns a custom dialect.
func NewDialect(name string, fields ...Field) (Dialect, error) {
	if len(fields) == 0 {
		return Dialect{}, illegalArgumentError("dialect has no fields")
	}
	seen := make(map[FieldKind]struct{}, len(fields))
	for _, f := range fields {
		if f.Min > f.Max {
			return Dialect{}, illegalArgumentError(
				fmt.Sprintf("field %s: min %d > max %d", f.Name, f.Min, f.Max))
		}
		if _, ok := seen[f.Kind]; ok {
			return Dialect{}, illegalArgumentError(fmt.Sprintf("duplicate field %s", f.Kind))
		}
		seen[f.Kind] = struct{}{}
		for symbol, v := range f.names {
			if !f.inBounds(v) {
				return Dialect{}, illegalArgumentError(
					fmt.Sprintf("field %s: symbol %q out of bounds", f.Name, symbol))
			}
		}
	}
	return Dialect{Name: name, fields: append([]Field(nil), fields...)}, nil
}

// DialectByName returns a built-in dialect.
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case Standard.Name, "5":
		return Standard, true
	case WithSeconds.Name, "6":
		return WithSeconds, true
	case Quartz.Name, "7":
		return Quartz, true
	}
	return Dialect{}, false
}

// FieldCount returns the number of fields an expression must have.
func (d Dialect) FieldCount() int {
	return len(d.fields)
}

// Fields returns a copy of the field definitions in positional order.
func (d Dialect) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Index returns the position of the field of the given kind, or -1.
func (d Dialect) Index(kind FieldKind) int {
	for i, f := range d.fields {
		if f.Kind == kind {
			return i
		}
	}
	return -1
}

func (d Dialect) String() string {
	return fmt.Sprintf("%s(%d)", d.Name, len(d.fields))
}
