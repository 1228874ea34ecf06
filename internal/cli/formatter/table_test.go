package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"USER", "TASKS"}, [][]string{
		{"nova", "3"},
		{"orion-the-long", "12"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "USER")
	assert.Contains(t, lines[1], "──────────────")

	// Second column starts at the same visible offset on every data row.
	col := strings.Index(lines[2], "3")
	assert.Equal(t, col, strings.Index(lines[3], "12"))
	assert.Equal(t, lipgloss.Width("orion-the-long")+colGap, col)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}
