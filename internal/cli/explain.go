package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "explain EXPRESSION",
		Short:   "Show the per-field breakdown of an expression",
		Example: "  cronlint explain '0 0 */2 * *'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := a.parser.Parse(args[0])
			if err != nil {
				return err
			}
			report := newScheduleReport(schedule)
			return render(cmd.OutOrStdout(), a.cfg.Format, report, func(w io.Writer) error {
				return writeScheduleText(w, report)
			})
		},
	}
}

func writeScheduleText(w io.Writer, report scheduleReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "expression:\t%s\n", report.Expression)
	fmt.Fprintf(tw, "dialect:\t%s\n", report.Dialect)
	fmt.Fprintf(tw, "day policy:\t%s\n", report.DayPolicy)
	fmt.Fprintf(tw, "canonical:\t%s\n", report.Canonical)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "#\tFIELD\tKIND\tVALUE\tBOUNDS\tCOUNT")
	for _, f := range report.Fields {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d-%d\t%d\n",
			f.Position, f.Name, f.Kind, f.Value, f.Min, f.Max, f.Count)
	}
	return tw.Flush()
}
