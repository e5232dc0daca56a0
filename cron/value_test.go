package cron_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reugn/go-cronspec/cron"
	"github.com/reugn/go-cronspec/internal/assert"
)

func minuteValue(t *testing.T, text string) cron.FieldValue {
	t.Helper()
	schedule, err := cron.Parse(text + " * * * *")
	assert.IsNil(t, err)
	value, ok := schedule.Field(cron.Minute)
	assert.Equal(t, ok, true)
	return value
}

func TestWildcardMatches(t *testing.T) {
	t.Parallel()
	value := minuteValue(t, "*")
	assert.Equal(t, value.IsWildcard(), true)
	assert.Equal(t, value.Len(), 60)
	for v := 0; v <= 59; v++ {
		if !value.Matches(v) {
			t.Fatalf("wildcard does not match %d", v)
		}
	}
	assert.Equal(t, value.Matches(-1), false)
	assert.Equal(t, value.Matches(60), false)

	min, max := value.Bounds()
	assert.Equal(t, min, 0)
	assert.Equal(t, max, 59)
}

func TestSetMatches(t *testing.T) {
	t.Parallel()
	value := minuteValue(t, "30,1,15,15")
	assert.Equal(t, value.Kind(), cron.Set)
	assert.Equal(t, value.Values(), []int{1, 15, 30})
	assert.Equal(t, value.Len(), 3)
	for _, v := range []int{1, 15, 30} {
		assert.Equal(t, value.Matches(v), true)
	}
	for _, v := range []int{0, 2, 14, 16, 29, 31, 59} {
		assert.Equal(t, value.Matches(v), false)
	}
	_, _, _, ok := value.Step()
	assert.Equal(t, ok, false)
}

func TestStepMatches(t *testing.T) {
	t.Parallel()
	value := minuteValue(t, "*/15")
	assert.Equal(t, value.Kind(), cron.Step)
	for v := 0; v <= 59; v++ {
		assert.Equal(t, value.Matches(v), v%15 == 0)
	}
	assert.Equal(t, value.Matches(60), false)
	assert.Equal(t, value.Values(), []int{0, 15, 30, 45})

	start, end, step, ok := value.Step()
	assert.Equal(t, ok, true)
	assert.Equal(t, []int{start, end, step}, []int{0, 59, 15})
}

func TestStepVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text     string
		values   []int
		excluded []int
	}{
		{"10-20/5", []int{10, 15, 20}, []int{5, 12, 25}},
		{"5/20", []int{5, 25, 45}, []int{0, 15, 65}},
		{"58/100", []int{58}, []int{59}},
		{"0-2/1", []int{0, 1, 2}, []int{3}},
	}

	for _, tt := range tests {
		test := tt
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			value := minuteValue(t, test.text)
			assert.Equal(t, value.Kind(), cron.Step)
			assert.Equal(t, value.Values(), test.values)
			assert.Equal(t, value.Len(), len(test.values))
			for _, v := range test.values {
				assert.Equal(t, value.Matches(v), true)
			}
			for _, v := range test.excluded {
				assert.Equal(t, value.Matches(v), false)
			}
		})
	}
}

func TestDayOfMonthStepStartsAtMin(t *testing.T) {
	t.Parallel()
	schedule, err := cron.Parse("0 0 */2 * *")
	assert.IsNil(t, err)
	dom, _ := schedule.Field(cron.DayOfMonth)
	assert.Equal(t, dom.Matches(1), true)
	assert.Equal(t, dom.Matches(2), false)
	assert.Equal(t, dom.Matches(31), true)
}

func TestValuesWithinBounds(t *testing.T) {
	t.Parallel()
	expressions := []string{
		"* * * * *",
		"*/7 */5 */3 */2 */2",
		"0-59/13 1-23/4 5-31/6 2-12/5 1-6/2",
		"59 23 31 12 6",
		"0 0 1 1 0",
		"0 0 1 JAN-DEC SUN-SAT",
		"0 0 0 1 1 *",
	}

	for _, expression := range expressions {
		schedule, err := cron.Parse(expression)
		assert.IsNil(t, err)
		for i, field := range schedule.Dialect().Fields() {
			for _, v := range schedule.Fields()[i].Values() {
				if v < field.Min || v > field.Max {
					t.Fatalf("%q: %s value %d outside [%d, %d]",
						expression, field.Name, v, field.Min, field.Max)
				}
			}
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	t.Parallel()
	expressions := []string{
		"59 * * * *",
		"0 0 */2 * *",
		"0 30 23 * * *",
		"*/15 9-17 * * MON-FRI",
		"5,10-12,14 */3 1,15 * ?",
		"0-30/10 10/20 * JAN,Mar-may *",
		"1,2 3,4,5 6-7 8 sat",
		"@monthly",
	}

	for _, expression := range expressions {
		first, err := cron.Parse(expression)
		assert.IsNil(t, err)
		second, err := cron.Parse(first.String())
		assert.IsNil(t, err)
		if diff := cmp.Diff(first.Fields(), second.Fields(), allowFieldValue); diff != "" {
			t.Fatalf("%q does not round-trip via %q (-first +second):\n%s",
				expression, first.String(), diff)
		}
	}
}

func TestFieldValueZero(t *testing.T) {
	t.Parallel()
	var value cron.FieldValue
	assert.Equal(t, value.Kind(), cron.Unresolved)
	assert.Equal(t, value.Matches(0), false)
	assert.Equal(t, value.Len(), 0)
	assert.IsNil(t, value.Values())
	assert.Equal(t, value.String(), "")
	assert.Equal(t, cron.Unresolved.String(), "unresolved")
	assert.Equal(t, cron.Step.String(), "step")
}

func TestValuesIsCopy(t *testing.T) {
	t.Parallel()
	value := minuteValue(t, "1,2,3")
	values := value.Values()
	values[0] = 42
	assert.Equal(t, value.Values(), []int{1, 2, 3})
}
