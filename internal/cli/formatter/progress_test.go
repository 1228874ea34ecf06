package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
		label  string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over clamps", 1.7, 4, 4, "100%"},
		{"negative clamps", -1, 4, 0, "  0%"},
		{"tiny width", 0.5, 0, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.True(t, strings.HasSuffix(got, tt.label), got)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	for _, pct := range []float64{0, 0.3, 1, 2} {
		got := RenderCompactBar(pct, 6, false)
		assert.NotContains(t, got, "[")
		assert.NotContains(t, got, "%")
		assert.Equal(t, 6, strings.Count(got, filledBlock)+strings.Count(got, emptyBlock))
	}
	assert.Equal(t, 2, strings.Count(RenderCompactBar(0.5, 4, true), filledBlock))
}
