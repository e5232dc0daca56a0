package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reugn/go-cronspec/cron"
	"github.com/reugn/go-cronspec/internal/config"
	"gopkg.in/yaml.v3"
)

// checkResult is the outcome of validating one expression.
type checkResult struct {
	Expression string `json:"expression" yaml:"expression"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Valid      bool   `json:"valid" yaml:"valid"`
	Dialect    string `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Canonical  string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newCheckResult(expression string, line int, schedule *cron.Schedule, err error) checkResult {
	result := checkResult{Expression: expression, Line: line, Valid: err == nil}
	if err != nil {
		result.Error = err.Error()
		var parseErr *cron.ParseError
		if errors.As(err, &parseErr) {
			result.Kind = errorKind(parseErr)
			result.Field = parseErr.Field
		}
		return result
	}
	result.Dialect = schedule.Dialect().Name
	result.Canonical = schedule.String()
	return result
}

// errorKind strips the common prefix from the kind sentinel.
func errorKind(err *cron.ParseError) string {
	return strings.TrimPrefix(err.Err.Error(), cron.ErrParse.Error()+": ")
}

// fieldReport describes one field of a parsed schedule.
type fieldReport struct {
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Value    string `json:"value" yaml:"value"`
	Min      int    `json:"min" yaml:"min"`
	Max      int    `json:"max" yaml:"max"`
	Count    int    `json:"count" yaml:"count"`
}

// scheduleReport is the explain output.
type scheduleReport struct {
	Expression string        `json:"expression" yaml:"expression"`
	Dialect    string        `json:"dialect" yaml:"dialect"`
	DayPolicy  string        `json:"dayPolicy" yaml:"dayPolicy"`
	Canonical  string        `json:"canonical" yaml:"canonical"`
	Fields     []fieldReport `json:"fields" yaml:"fields"`
}

func newScheduleReport(schedule *cron.Schedule) scheduleReport {
	fields := schedule.Dialect().Fields()
	values := schedule.Fields()
	report := scheduleReport{
		Expression: schedule.Expression(),
		Dialect:    schedule.Dialect().Name,
		DayPolicy:  schedule.DayPolicy().String(),
		Canonical:  schedule.String(),
		Fields:     make([]fieldReport, len(fields)),
	}
	for i, field := range fields {
		report.Fields[i] = fieldReport{
			Position: i + 1,
			Name:     field.Name,
			Kind:     values[i].Kind().String(),
			Value:    values[i].String(),
			Min:      field.Min,
			Max:      field.Max,
			Count:    values[i].Len(),
		}
	}
	return report
}

// nextReport is the next output.
type nextReport struct {
	Expression string   `json:"expression" yaml:"expression"`
	Canonical  string   `json:"canonical" yaml:"canonical"`
	Times      []string `json:"times" yaml:"times"`
}

// render writes v in the structured formats, or calls text otherwise.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch strings.ToLower(format) {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case config.FormatText, "":
		return text(w)
	}
	return fmt.Errorf("unknown output format %q", format)
}
