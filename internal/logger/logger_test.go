package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)
	defer func() { logger = nil }()

	fn()
	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("test info message") },
			contains: []string{"test info message", "level=INFO"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("tile stored", Fields{"zoom": 3}) },
			contains: []string{"tile stored", "level=DEBUG", "zoom=3"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("hidden message") },
			excludes: []string{"hidden message"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("test error message") },
			contains: []string{"test error message", "level=ERROR"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("tile skipped", Fields{"url": "http://a/1/2/3.png", "column": 2})
			},
			contains: []string{"tile skipped", "level=WARN", "url=http://a/1/2/3.png", "column=2"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("download finished") },
			contains: []string{"download finished", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("fetched %d of %d", 3, 4) },
			contains: []string{"fetched 3 of 4"},
		},
		{
			name:     "formatted warn log",
			level:    "warning",
			logFn:    func() { Warnf("skipped %s", "tile") },
			contains: []string{"skipped tile", "level=WARN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("archive ready", Fields{"bytes": 42})
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	assert.Equal(t, "archive ready", entry["msg"])
	assert.EqualValues(t, 42, entry["bytes"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLogger_FieldOrder(t *testing.T) {
	output := captureOutput(t, "info", FormatText, func() {
		Info("tile stored", Fields{"zoom": 1, "column": 2, "row": 3})
	})
	assert.Contains(t, output, "column=2 row=3 zoom=1")
}
