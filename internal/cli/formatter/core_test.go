package formatter

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreColor_HueSweep(t *testing.T) {
	for _, tc := range []struct {
		rate float64
		hue  float64
	}{
		{0, 200},
		{0.5, 240},
		{1, 280},
		{-3, 200},
		{9, 280},
	} {
		c, err := colorful.Hex(CoreColor(tc.rate))
		require.NoError(t, err)
		h, s, l := c.Hsl()
		assert.InDelta(t, tc.hue, h, 1.5, "rate %v", tc.rate)
		assert.InDelta(t, 0.7, s, 0.02)
		assert.InDelta(t, 0.6, l, 0.02)
	}
}

func TestRenderCore_GrowsWithRate(t *testing.T) {
	assert.Contains(t, RenderCore(0), "·")
	assert.Contains(t, RenderCore(1), "●●●")
	assert.NotEqual(t, RenderCore(0.2), RenderCore(0.9))
}
