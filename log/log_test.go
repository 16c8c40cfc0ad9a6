package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": LevelDebug,
		"Info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"crit":  LevelCrit,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("shouty")
	assert.Error(t, err)
}

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelDebug, false)))
	defer SetDefault(NewLogger(DiscardHandler()))

	Warn(LiftModule, "cannot set value for addressing mode", "mode", 11)
	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "cannot set value for addressing mode")
	assert.Contains(t, out, "module=lift")
	assert.Contains(t, out, "mode=11")

	// Trace is filtered both by level and by module.
	buf.Reset()
	Trace(LiftModule, "hidden")
	assert.Empty(t, buf.String())
}

func TestModuleFilter(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, levelMaxVerbosity, false)))
	defer SetDefault(NewLogger(DiscardHandler()))

	Debug(DecodeModule, "before enable")
	assert.Empty(t, buf.String())

	EnableModules("decode, store")
	defer DisableModule(DecodeModule)
	defer DisableModule(StoreModule)

	Debug(DecodeModule, "after enable")
	assert.True(t, strings.Contains(buf.String(), "after enable"))
}
