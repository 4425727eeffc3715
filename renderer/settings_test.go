package renderer_test

import (
	"testing"

	"git.fiblab.net/sim/catalogue/renderer/svg"
	"github.com/stretchr/testify/assert"
)

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, testSettings(svg.NamedColor("red")).Validate())

	s := testSettings()
	assert.Error(t, s.Validate(), "empty palette")

	s = testSettings(svg.NamedColor(""))
	assert.Error(t, s.Validate(), "empty color name")

	s = testSettings(svg.NamedColor("red"))
	s.UnderlayerColor = nil
	assert.Error(t, s.Validate())

	s = testSettings(svg.NamedColor("red"))
	s.Padding = 50
	assert.ErrorContains(t, s.Validate(), "padding")

	s = testSettings(svg.NamedColor("red"))
	s.Width = -1
	assert.Error(t, s.Validate())

	s = testSettings(svg.NamedColor("red"))
	s.StopLabelOffset = svg.Point{X: 0, Y: -200000}
	assert.ErrorContains(t, s.Validate(), "offset")

	// 黑色是合法颜色
	s = testSettings(svg.Rgb{})
	s.UnderlayerColor = svg.Rgba{}
	assert.NoError(t, s.Validate())
}
