package theme

import (
	"image/color"
	"testing"

	fynetheme "fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestParseStyle(t *testing.T) {
	style, ok := ParseStyle(" nord ")
	assert.True(t, ok)
	assert.Equal(t, Nord, style)

	_, ok = ParseStyle("solarized")
	assert.False(t, ok)
}

func TestEveryStyleHasPaletteAndDescription(t *testing.T) {
	assert.Len(t, Styles(), 7)
	for _, style := range Styles() {
		assert.NotEmpty(t, style.Description(), style)
		palette := Colors(style)
		assert.Equal(t, uint8(255), palette.Background.A, style)
		assert.NotEqual(t, palette.Background, palette.Foreground, style)
	}
}

func TestUnknownStyleFallsBackToMinimal(t *testing.T) {
	assert.Equal(t, Colors(Minimal), Colors(Style("Neon")))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#66ccff", Hex(Colors(Ocean).Accent))
	assert.Equal(t, "#000000", Hex(color.NRGBA{A: 255}))
}

func TestFyneThemeUsesPalette(t *testing.T) {
	appTheme := New(Forest)
	assert.Equal(t, Colors(Forest).Accent, appTheme.Color(fynetheme.ColorNamePrimary, fynetheme.VariantDark))
	assert.Equal(t, Colors(Forest).Background, appTheme.Color(fynetheme.ColorNameBackground, fynetheme.VariantLight))
	assert.NotNil(t, appTheme.Icon(fynetheme.IconNameVisibility))
}
