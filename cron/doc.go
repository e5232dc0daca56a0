// Package cron parses and validates cron expressions into immutable,
// queryable schedules.
//
// Supported layouts:
//
//	┌───────────── second (0-59, WithSeconds and Quartz only)
//	│ ┌───────────── minute (0-59)
//	│ │ ┌───────────── hour (0-23)
//	│ │ │ ┌───────────── day of month (1-31)
//	│ │ │ │ ┌───────────── month (1-12 or JAN-DEC)
//	│ │ │ │ │ ┌───────────── day of week (0-6 or SUN-SAT, 0=Sunday)
//	│ │ │ │ │ │ ┌───────────── year (1970-2099, Quartz only)
//	│ │ │ │ │ │ │
//	* * * * * * *
//
// Each field accepts a wildcard (*), single values (5, MON), ranges (1-5),
// steps (*/15, 10/5, 1-30/5) and comma-separated lists of those. Day fields
// also accept ? as a wildcard. Symbolic names are case-insensitive.
//
// A parser configured with several dialects selects one by field count.
// When both day-of-month and day-of-week are restricted, a schedule matches
// a day if either matches (DayOr), unless WithDayPolicy selects DayAnd or
// DayExclusive.
//
// Failed parses return a *ParseError which unwraps to one of the kind
// sentinels and, through it, to ErrParse:
//
//	_, err := cron.Parse("60 * * * *")
//	var pe *cron.ParseError
//	if errors.As(err, &pe) && errors.Is(err, cron.ErrValueOutOfRange) {
//		fmt.Println(pe.Field, pe.Value, pe.Min, pe.Max) // minute 60 0 59
//	}
//
// The package computes no fire times; a Schedule only answers whether a
// value, day or instant matches.
package cron
