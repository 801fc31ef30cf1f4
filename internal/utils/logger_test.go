package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// setupTestLogger swaps the package logger for one writing into buf.
func setupTestLogger(buf *bytes.Buffer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	SetLoggerForTest(zerolog.New(buf).With().Timestamp().Logger().Level(lvl))
}

func TestInfoLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("test message", "foo", 42, "bar", true)

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Error("expected log message not found in output")
	}
	if !strings.Contains(out, `"foo":42`) || !strings.Contains(out, `"bar":true`) {
		t.Error("expected key-value pairs not found in output")
	}
}

func TestWarnAndErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	Warn("something odd", "code", 99)
	Error("error occurred", "fatal", false)

	out := buf.String()
	if !strings.Contains(out, "something odd") || !strings.Contains(out, `"code":99`) {
		t.Error("warn output missing expected content")
	}
	if !strings.Contains(out, "error occurred") || !strings.Contains(out, `"fatal":false`) {
		t.Error("error output missing expected content")
	}
}

func TestDanglingKeyDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("hello", "k", "v", "dangling")

	if !strings.Contains(buf.String(), "hello") {
		t.Error("expected message despite dangling key")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	SetLogLevel("info")
	Info("should be visible")

	if !strings.Contains(buf.String(), "should be visible") {
		t.Error("expected info log after SetLogLevel")
	}

	SetLogLevel("not-a-level") // falls back to info without panicking
	Info("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Error("expected info log after invalid level fallback")
	}
}
