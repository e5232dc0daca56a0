package cron

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reugn/go-cronspec/logger"
)

// Limits bound the work a single parse may perform. Zero values disable
// the corresponding check.
type Limits struct {
	// MaxLength is the maximum expression length in bytes.
	MaxLength int
	// MaxListItems is the maximum number of comma-separated items per field.
	MaxListItems int
}

// DefaultLimits are applied unless WithLimits overrides them.
var DefaultLimits = Limits{MaxLength: 1024, MaxListItems: 256}

// Parser converts expressions into schedules. A Parser is immutable once
// built and may be used from multiple goroutines.
type Parser struct {
	dialects        []Dialect
	descriptors     bool
	policy          DayPolicy
	limits          Limits
	allowImpossible bool
	logger          logger.Logger
}

// Option configures a Parser.
type Option func(*Parser) error

// WithDialects sets the accepted dialects. The first one is the primary
// dialect descriptors expand into. Field counts must be distinct.
func WithDialects(dialects ...Dialect) Option {
	return func(p *Parser) error {
		if len(dialects) == 0 {
			return illegalArgumentError("no dialects")
		}
		seen := make(map[int]string, len(dialects))
		for _, d := range dialects {
			if d.FieldCount() == 0 {
				return illegalArgumentError(fmt.Sprintf("dialect %q has no fields", d.Name))
			}
			if other, ok := seen[d.FieldCount()]; ok {
				return illegalArgumentError(fmt.Sprintf("dialects %q and %q both have %d fields",
					other, d.Name, d.FieldCount()))
			}
			seen[d.FieldCount()] = d.Name
		}
		p.dialects = append([]Dialect(nil), dialects...)
		return nil
	}
}

// WithDescriptors enables @yearly, @monthly, @weekly, @daily and @hourly.
func WithDescriptors() Option {
	return func(p *Parser) error {
		p.descriptors = true
		return nil
	}
}

// WithDayPolicy sets how day-of-month and day-of-week combine.
func WithDayPolicy(policy DayPolicy) Option {
	return func(p *Parser) error {
		if policy < DayOr || policy > DayExclusive {
			return illegalArgumentError(fmt.Sprintf("day policy %d", int(policy)))
		}
		p.policy = policy
		return nil
	}
}

// WithLimits overrides DefaultLimits.
func WithLimits(limits Limits) Option {
	return func(p *Parser) error {
		if limits.MaxLength < 0 || limits.MaxListItems < 0 {
			return illegalArgumentError("negative limit")
		}
		p.limits = limits
		return nil
	}
}

// WithLogger sets the logger parse stages are reported to.
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) error {
		if l == nil {
			return illegalArgumentError("logger is nil")
		}
		p.logger = l
		return nil
	}
}

// AllowImpossibleDates accepts day-of-month values no selected month has,
// such as "0 0 30 2 *".
func AllowImpossibleDates() Option {
	return func(p *Parser) error {
		p.allowImpossible = true
		return nil
	}
}

// NewParser returns a Parser accepting the Standard and WithSeconds
// dialects unless configured otherwise.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		dialects: []Dialect{Standard, WithSeconds},
		policy:   DayOr,
		limits:   DefaultLimits,
		logger:   logger.NoOpLogger{},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var defaultParser, _ = NewParser(WithDescriptors())

// Parse parses an expression with the default parser: five or six fields,
// descriptors enabled, DayOr policy.
func Parse(expression string) (*Schedule, error) {
	return defaultParser.Parse(expression)
}

// MustParse is like Parse but panics on error.
func MustParse(expression string) *Schedule {
	s, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate reports whether the default parser accepts expression.
func Validate(expression string) error {
	_, err := Parse(expression)
	return err
}

// Dialects returns the accepted dialects, primary first.
func (p *Parser) Dialects() []Dialect {
	return append([]Dialect(nil), p.dialects...)
}

// Validate parses expression and discards the schedule.
func (p *Parser) Validate(expression string) error {
	_, err := p.Parse(expression)
	return err
}

// Parse tokenizes, parses and validates an expression. The returned error,
// if any, is a *ParseError.
func (p *Parser) Parse(expression string) (*Schedule, error) {
	s, err := p.parse(expression)
	if err != nil {
		p.logger.Debug("Cron expression rejected", "expression", expression, "error", err)
		return nil, err
	}
	if p.logger.Enabled(logger.LevelTrace) {
		p.logger.Trace("Cron expression parsed", "expression", s.expression,
			"dialect", s.dialect.Name, "canonical", s.String())
	}
	return s, nil
}

func (p *Parser) parse(expression string) (*Schedule, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &ParseError{Err: ErrEmptyExpression, Index: -1}
	}
	if p.limits.MaxLength > 0 && len(expression) > p.limits.MaxLength {
		return nil, &ParseError{Err: ErrResourceLimit, Index: -1,
			Reason: "expression has " + strconv.Itoa(len(expression)) +
				" bytes, limit is " + strconv.Itoa(p.limits.MaxLength)}
	}

	tokens, err := p.tokenize(expression)
	if err != nil {
		return nil, err
	}
	dialect, err := p.selectDialect(expression, len(tokens))
	if err != nil {
		return nil, err
	}
	p.logger.Trace("Tokenized cron expression", "expression", expression,
		"fields", len(tokens), "dialect", dialect.Name)

	values := make([]FieldValue, len(tokens))
	for i, token := range tokens {
		if values[i], err = parseField(i, dialect.fields[i], token, p.limits); err != nil {
			return nil, err
		}
	}
	if err := validate(expression, dialect, values, p.policy, p.allowImpossible); err != nil {
		return nil, err
	}

	return &Schedule{
		expression: expression,
		dialect:    dialect,
		policy:     p.policy,
		values:     values,
	}, nil
}

// tokenize splits an expression into fields, expanding descriptors.
func (p *Parser) tokenize(expression string) ([]string, error) {
	if !strings.HasPrefix(expression, "@") || !p.descriptors {
		return strings.Fields(expression), nil
	}
	tokens, ok := expandDescriptor(strings.ToLower(expression), p.dialects[0])
	if !ok {
		return nil, &ParseError{Err: ErrUnknownSymbol, Index: -1, Field: "descriptor",
			Text: expression}
	}
	return tokens, nil
}

func (p *Parser) selectDialect(expression string, count int) (Dialect, error) {
	for _, d := range p.dialects {
		if d.FieldCount() == count {
			return d, nil
		}
	}
	expected := make([]int, len(p.dialects))
	for i, d := range p.dialects {
		expected[i] = d.FieldCount()
	}
	sort.Ints(expected)
	return Dialect{}, &ParseError{Err: ErrFieldCountMismatch, Index: -1, Text: expression,
		Expected: expected, Actual: count}
}

// descriptors lists the fields each shorthand pins; all others are "*".
var descriptors = map[string]map[FieldKind]string{
	"@yearly":   {Second: "0", Minute: "0", Hour: "0", DayOfMonth: "1", Month: "1"},
	"@annually": {Second: "0", Minute: "0", Hour: "0", DayOfMonth: "1", Month: "1"},
	"@monthly":  {Second: "0", Minute: "0", Hour: "0", DayOfMonth: "1"},
	"@weekly":   {Second: "0", Minute: "0", Hour: "0", DayOfWeek: "0"},
	"@daily":    {Second: "0", Minute: "0", Hour: "0"},
	"@midnight": {Second: "0", Minute: "0", Hour: "0"},
	"@hourly":   {Second: "0", Minute: "0"},
}

func expandDescriptor(name string, d Dialect) ([]string, bool) {
	pinned, ok := descriptors[name]
	if !ok {
		return nil, false
	}
	tokens := make([]string, d.FieldCount())
	for i, f := range d.fields {
		text, ok := pinned[f.Kind]
		switch {
		case !ok:
			tokens[i] = "*"
		case f.inBounds(atoi(text)):
			tokens[i] = text
		default:
			tokens[i] = strconv.Itoa(f.Min)
		}
	}
	return tokens, true
}

// atoi implements an unsafe strconv.Atoi.
func atoi(str string) int {
	i, _ := strconv.Atoi(str)
	return i
}
