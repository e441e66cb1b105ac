package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// appTheme recolours the default fyne theme with a palette.
type appTheme struct {
	palette Palette
	base    fyne.Theme
}

// New returns a fyne theme for style.
func New(style Style) fyne.Theme {
	return &appTheme{palette: Colors(style), base: fynetheme.DefaultTheme()}
}

func (t *appTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNameBackground, fynetheme.ColorNameMenuBackground, fynetheme.ColorNameOverlayBackground:
		return t.palette.Background
	case fynetheme.ColorNameForeground:
		return t.palette.Foreground
	case fynetheme.ColorNamePlaceHolder, fynetheme.ColorNameDisabled:
		return t.palette.Muted
	case fynetheme.ColorNameInputBackground, fynetheme.ColorNameButton:
		return t.palette.MutedBackground
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return t.palette.Accent
	case fynetheme.ColorNameForegroundOnPrimary:
		return t.palette.AccentForeground
	case fynetheme.ColorNameHover:
		return t.palette.ButtonHover
	case fynetheme.ColorNamePressed:
		return t.palette.ButtonActive
	case fynetheme.ColorNameSeparator, fynetheme.ColorNameInputBorder:
		return t.palette.Border
	case fynetheme.ColorNameSuccess:
		return t.palette.Success
	case fynetheme.ColorNameWarning:
		return t.palette.Warning
	}
	return t.base.Color(name, fynetheme.VariantDark)
}

func (t *appTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *appTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *appTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}
