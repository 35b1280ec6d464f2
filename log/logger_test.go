package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"":        Info,
		"warning": Warn,
		" error ": Error,
		"fatal":   Fatal,
	}

	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("vsh", Info, WithWriter(&buf))

	logger.Debug("hidden")
	logger.Info("Resolved %d object(s)", 3)
	logger.Named("shell").Warn("failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "INFO  [vsh] Resolved 3 object(s)")
	require.Contains(t, lines[1], "WARN  [vsh/shell] failed")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("vsh", Debug, WithWriter(&buf), WithJSON())

	logger.Named("inventory").Debug("Opened backend '%s'", "memory")

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "DEBUG", entry["level"])
	require.Equal(t, "vsh/inventory", entry["service"])
	require.Equal(t, "Opened backend 'memory'", entry["message"])
}

func TestLogger_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vsh.log")
	logger := NewLogger("vsh", Info, WithFile(file), WithoutTerminal())

	logger.Error("written to file")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(content), "written to file")
	require.NotContains(t, string(content), "\033[")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	logger.Named("child").Error("dropped")
}

func TestColorize(t *testing.T) {
	require.Equal(t, "\033[33mwarned\033[0m", colorize(Warn, "warned"))
	require.Equal(t, colorReset, Color(LogLevel(42)))
}

func TestSupportsColor(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, supportsColor(&buf))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	defer f.Close()
	require.False(t, supportsColor(f))

	t.Setenv("NO_COLOR", "1")
	require.False(t, supportsColor(os.Stderr))
}

func TestLogger_NoTerminalDisablesColor(t *testing.T) {
	logger := NewLogger("vsh", Info, WithoutTerminal())
	require.True(t, logger.NoColor)
	require.True(t, logger.Named("child").NoColor)
}
