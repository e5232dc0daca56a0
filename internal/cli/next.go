package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/reugn/go-cronspec/cron"
	"github.com/spf13/cobra"
)

// maxCandidates bounds the reference fire times examined per call.
const maxCandidates = 100000

func newNextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "next EXPRESSION",
		Short:   "List the upcoming times an expression matches",
		Example: "  cronlint next -n 3 --after 2024-01-01T00:00:00Z '0 0 13 * 5'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			afterText, _ := cmd.Flags().GetString("after")
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			after := time.Now()
			if afterText != "" {
				var err error
				if after, err = time.Parse(time.RFC3339, afterText); err != nil {
					return fmt.Errorf("invalid --after: %w", err)
				}
			}

			schedule, err := a.parser.Parse(args[0])
			if err != nil {
				return err
			}
			times, err := a.next(schedule, after, count)
			if err != nil {
				return err
			}

			report := nextReport{
				Expression: schedule.Expression(),
				Canonical:  schedule.String(),
				Times:      make([]string, len(times)),
			}
			for i, t := range times {
				report.Times[i] = t.Format(time.RFC3339)
			}
			return render(cmd.OutOrStdout(), a.cfg.Format, report, func(w io.Writer) error {
				for _, t := range report.Times {
					if _, err := fmt.Fprintln(w, t); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntP("count", "n", 5, "Number of times to list.")
	cmd.Flags().String("after", "", "Start instant in RFC 3339 format (defaults to now).")
	return cmd
}

// next walks the reference fire times and keeps those the schedule
// matches under its own day policy.
func (a *app) next(schedule *cron.Schedule, after time.Time, count int) ([]time.Time, error) {
	expression, err := referenceExpression(schedule)
	if err != nil {
		return nil, err
	}
	reference, err := cronexpr.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("reference parser rejected %q: %w", expression, err)
	}

	times := make([]time.Time, 0, count)
	t := after
	for i := 0; i < maxCandidates && len(times) < count; i++ {
		t = reference.Next(t)
		if t.IsZero() {
			break
		}
		if schedule.MatchesTime(t) {
			times = append(times, t)
			continue
		}
		if !schedule.MatchesDay(t.Day(), int(t.Weekday())) {
			// skip the rest of the day
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location()).
				Add(-time.Second)
		}
	}
	a.log.Debug("Computed upcoming times", "expression", expression, "found", len(times))
	return times, nil
}

// referenceExpression renders the schedule in the layout cronexpr reads.
func referenceExpression(schedule *cron.Schedule) (string, error) {
	canonical := schedule.String()
	switch schedule.Dialect().Name {
	case cron.Standard.Name, cron.Quartz.Name:
		return canonical, nil
	case cron.WithSeconds.Name:
		// six fields mean minutes through year to cronexpr
		return canonical + " *", nil
	}
	return "", fmt.Errorf("dialect %q is not supported by next", schedule.Dialect().Name)
}
