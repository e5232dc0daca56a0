package logger_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/reugn/go-cronspec/internal/assert"
	"github.com/reugn/go-cronspec/logger"
)

func TestSimpleLogger(t *testing.T) {
	var b bytes.Buffer
	l := logger.NewSimpleLogger(log.New(&b, "", log.LstdFlags), logger.LevelInfo)

	l.Trace("Trace")
	assertEmpty(t, &b)
	l.Debug("Debug")
	assertEmpty(t, &b)

	l.Info("Info")
	assertContains(t, &b, "INFO msg=Info")
	l.Warn("Warn", "key", "value")
	assertContains(t, &b, "WARN msg=Warn, key=value")
	l.Error("Error", "err", io.EOF)
	assertContains(t, &b, "ERROR msg=Error, err=EOF")
}

func TestSimpleLoggerOff(t *testing.T) {
	var b bytes.Buffer
	l := logger.NewSimpleLogger(log.New(&b, "", log.LstdFlags), logger.LevelOff)

	if l.Enabled(logger.LevelError) {
		t.Fatal("logger.LevelError is enabled")
	}
	l.Error("Error")
	assertEmpty(t, &b)
}

func TestSimpleLoggerFormat(t *testing.T) {
	var b bytes.Buffer
	l := logger.NewSimpleLogger(log.New(&b, "", 0), logger.LevelTrace)

	empty := struct{}{}
	l.Trace("Trace", "a", 1, "b", true, "c", empty)
	assertContains(t, &b, "TRACE msg=Trace, a=1, b=true, c={}")

	l.Debug("Debug", "dangling")
	assertContains(t, &b, "DEBUG msg=Debug, dangling")
}

func TestSlogLogger(t *testing.T) {
	var b bytes.Buffer
	handler := slog.NewTextHandler(&b, logger.HandlerOptions(logger.LevelTrace))
	l := logger.NewSlogLogger(context.Background(), slog.New(handler))

	assert.Equal(t, l.Enabled(logger.LevelTrace), true)
	assert.Equal(t, l.Enabled(logger.LevelOff), false)

	l.Trace("Trace", "expression", "* * * * *")
	assertContains(t, &b, `level=TRACE msg=Trace expression="* * * * *"`)
	l.Debug("Debug")
	assertContains(t, &b, "level=DEBUG")
	l.Info("Info")
	assertContains(t, &b, "level=INFO")
	l.Warn("Warn")
	assertContains(t, &b, "level=WARN")
	l.Error("Error")
	assertContains(t, &b, "level=ERROR")
}

func TestSlogLoggerLevel(t *testing.T) {
	var b bytes.Buffer
	handler := slog.NewTextHandler(&b, logger.HandlerOptions(logger.LevelWarn))
	l := logger.NewSlogLogger(nil, slog.New(handler)) //nolint:staticcheck

	assert.Equal(t, l.Enabled(logger.LevelInfo), false)
	l.Info("Info")
	assertEmpty(t, &b)
	l.Warn("Warn")
	assertContains(t, &b, "level=WARN")
}

func TestNoOpLogger(t *testing.T) {
	var l logger.Logger = logger.NoOpLogger{}
	assert.Equal(t, l.Enabled(logger.LevelError), false)
	l.Error("Error")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expected logger.Level
	}{
		{"trace", logger.LevelTrace},
		{"DEBUG", logger.LevelDebug},
		{" Info ", logger.LevelInfo},
		{"warn", logger.LevelWarn},
		{"error", logger.LevelError},
		{"off", logger.LevelOff},
	}
	for _, tt := range tests {
		test := tt
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			level, err := logger.ParseLevel(test.name)
			assert.IsNil(t, err)
			assert.Equal(t, level, test.expected)
			assert.Equal(t, strings.EqualFold(level.String(), strings.TrimSpace(test.name)), true)
		})
	}

	_, err := logger.ParseLevel("verbose")
	assert.ErrorContains(t, err, "unknown log level")
	assert.Equal(t, logger.Level(3).String(), "LEVEL(3)")
}

func assertEmpty(t *testing.T, r io.Reader) {
	t.Helper()
	logMsg := readAll(t, r)
	if logMsg != "" {
		t.Fatalf("log msg is not empty: %s", logMsg)
	}
}

func assertContains(t *testing.T, r io.Reader, substr string) {
	t.Helper()
	logMsg := readAll(t, r)
	if !strings.Contains(logMsg, substr) {
		t.Fatalf("log msg %q does not contain %q", logMsg, substr)
	}
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	bytes, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(bytes)
}
