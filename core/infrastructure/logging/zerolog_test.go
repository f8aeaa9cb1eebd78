package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	previousLevel := GetLogLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		forceConsole = nil
		SetLogLevel(previousLevel)
		SetTagFilter("")
	})
	return &buf
}

func TestShouldLogTag(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		tag      string
		expected bool
	}{
		{name: "no filter", filter: "", tag: "discourse", expected: true},
		{name: "included", filter: "discourse", tag: "discourse", expected: true},
		{name: "included prefix", filter: "http", tag: "http:routes", expected: true},
		{name: "not included", filter: "http", tag: "discourse", expected: false},
		{name: "excluded", filter: "-discourse", tag: "discourse", expected: false},
		{name: "excluded other", filter: "-discourse", tag: "report", expected: true},
		{name: "mixed", filter: "http, -http:routes", tag: "http:routes", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTagFilter(tt.filter)
			defer SetTagFilter("")
			assert.Equal(t, tt.expected, shouldLogTag(tt.tag))
		})
	}
}

func TestLogger_LevelGating(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel(LogLevelInfo)

	log := New("test")
	log.Debug("hidden debug")
	log.Info("visible info")

	out := buf.String()
	assert.NotContains(t, out, "hidden debug")
	assert.Contains(t, out, "visible info")
	assert.Contains(t, out, `"tag":"test"`)

	SetLogLevel(LogLevelDebug)
	New("test").Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_DebugEnabled(t *testing.T) {
	captureOutput(t)

	SetLogLevel(LogLevelInfo)
	assert.False(t, New("test").DebugEnabled())

	SetLogLevel(LogLevelDebug)
	assert.True(t, New("test").DebugEnabled())

	SetTagFilter("-muted")
	defer SetTagFilter("")
	assert.False(t, New("muted").DebugEnabled())
}

func TestLogger_SuccessIgnoresLevel(t *testing.T) {
	buf := captureOutput(t)
	SetLogLevel(LogLevelError)

	New("test").Successf("done %d", 3)
	assert.Contains(t, buf.String(), "done 3")
}

func TestLogger_FilteredTagIsNoOp(t *testing.T) {
	buf := captureOutput(t)
	SetTagFilter("-quiet")

	log := New("quiet")
	_, ok := log.(*noOpLogger)
	require.True(t, ok)
	log.Error("should not appear")
	assert.Empty(t, buf.String())
}

func TestLogger_PrintValidationErrors(t *testing.T) {
	buf := captureOutput(t)

	New("validate").PrintValidationErrors([]string{"host is invalid", "queries[0].id is required"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Validation Errors (2)")
	assert.Contains(t, lines[2], "queries[0].id is required")
}

func TestSetLogLevel_IgnoresOutOfRange(t *testing.T) {
	previous := GetLogLevel()
	defer SetLogLevel(previous)

	SetLogLevel(LogLevelWarn)
	SetLogLevel(9)
	assert.Equal(t, LogLevelWarn, GetLogLevel())
}

func TestSetLogFile(t *testing.T) {
	previousDir := LogDir
	LogDir = t.TempDir()
	defer func() { LogDir = previousDir }()

	path, err := SetLogFile()
	require.NoError(t, err)
	defer CloseLogFile()

	assert.True(t, strings.HasPrefix(path, LogDir))
	assert.FileExists(t, path)
	require.NoError(t, CloseLogFile())
}
