package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/protocompat/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "Protocol Compatibility Calculation")
	assert.Contains(t, out, "Version: 1.2.3")
	assert.NotContains(t, out, "\x1b[", "no escape codes for a buffer")
}

func TestTerminalHelpers_NonFile(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, tui.IsTerminal(&buf))
	assert.Equal(t, 0, tui.Width(&buf))
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer(80)
	out, err := render("## Round 0\n\n| | c0 |\n|---|---:|\n| **s0** | 1.0 |\n")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Round 0"))
}
