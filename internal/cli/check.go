package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [EXPRESSION...]",
		Short: "Validate expressions given as arguments or one per line on stdin",
		Example: "  cronlint check '*/5 * * * *' '0 30 23 * * *'\n" +
			"  crontab -l | cut -d' ' -f1-5 | cronlint check",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.check(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), a.cfg.Format, results, func(w io.Writer) error {
				return writeCheckText(w, results)
			}); err != nil {
				return err
			}
			for _, result := range results {
				if !result.Valid {
					return ErrInvalidExpressions
				}
			}
			return nil
		},
	}
}

func (a *app) check(in io.Reader, args []string) ([]checkResult, error) {
	results := make([]checkResult, 0, len(args))
	if len(args) > 0 {
		for _, expression := range args {
			schedule, err := a.parser.Parse(expression)
			results = append(results, newCheckResult(expression, 0, schedule, err))
		}
		return results, nil
	}

	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		expression := strings.TrimSpace(scanner.Text())
		if expression == "" || strings.HasPrefix(expression, "#") {
			continue
		}
		schedule, err := a.parser.Parse(expression)
		results = append(results, newCheckResult(expression, line, schedule, err))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read expressions: %w", err)
	}
	a.log.Debug("Checked expressions", "count", len(results), "cached", a.parser.Len())
	return results, nil
}

func writeCheckText(w io.Writer, results []checkResult) error {
	for _, result := range results {
		prefix := ""
		if result.Line > 0 {
			prefix = fmt.Sprintf("%d: ", result.Line)
		}
		var err error
		if result.Valid {
			_, err = fmt.Fprintf(w, "%sValid %q (%s: %s)\n", prefix, result.Expression,
				result.Dialect, result.Canonical)
		} else {
			_, err = fmt.Fprintf(w, "%sError %q: %s\n", prefix, result.Expression, result.Error)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
