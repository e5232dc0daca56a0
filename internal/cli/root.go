// Package cli implements the cronlint command tree.
package cli

import (
	"errors"
	"log/slog"

	"github.com/reugn/go-cronspec/cron"
	"github.com/reugn/go-cronspec/internal/config"
	"github.com/reugn/go-cronspec/logger"
	"github.com/spf13/cobra"
)

// ErrInvalidExpressions is returned by check when at least one expression
// fails to parse. The individual errors have already been reported.
var ErrInvalidExpressions = errors.New("invalid cron expressions")

// app is the state shared by the sub-commands once flags are parsed.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	parser *cron.CachingParser
}

// NewRootCommand returns the cronlint root command.
func NewRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "cronlint",
		Short: "Validate and inspect cron expressions",
		Long: "cronlint parses cron expressions, reports precise errors and explains\n" +
			"valid schedules. Settings are read from CRONLINT_* environment variables;\n" +
			"flags take precedence.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringSlice("dialect", nil, "Accepted dialects: standard, seconds, quartz (repeatable).")
	flags.String("day-policy", "", "Day-of-month/day-of-week combination: or, and, exclusive.")
	flags.Bool("descriptors", true, "Accept @yearly, @daily and the other descriptors.")
	flags.StringP("format", "o", "", "Output format: text, json, yaml.")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error, off.")
	flags.String("env-file", "", "Read CRONLINT_* defaults from a dotenv file.")

	cmd.AddCommand(newCheckCmd(a), newExplainCmd(a), newNextCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	cfg, err := config.NewConfigFromEnv(cmd.Context(), envFile)
	if err != nil {
		return err
	}

	if flags.Changed("dialect") {
		cfg.Dialects, _ = flags.GetStringSlice("dialect")
	}
	if flags.Changed("day-policy") {
		cfg.DayPolicy, _ = flags.GetString("day-policy")
	}
	if flags.Changed("descriptors") {
		cfg.Descriptors, _ = flags.GetBool("descriptors")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), logger.HandlerOptions(cfg.Level()))
	log := logger.NewSlogLogger(cmd.Context(), slog.New(handler))

	opts, err := cfg.ParserOptions()
	if err != nil {
		return err
	}
	parser, err := cron.NewParser(append(opts, cron.WithLogger(log))...)
	if err != nil {
		return err
	}
	cache, err := cron.NewCachingParser(parser, cfg.CacheSize)
	if err != nil {
		return err
	}

	a.cfg, a.log, a.parser = cfg, log, cache
	log.Debug("Configured parser", "dialects", cfg.Dialects, "dayPolicy", cfg.DayPolicy,
		"descriptors", cfg.Descriptors)
	return nil
}
