// Package theme holds the colour palettes users can pick from.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style names a palette.
type Style string

const (
	Minimal  Style = "Minimal"
	Ocean    Style = "Ocean"
	Forest   Style = "Forest"
	Sunset   Style = "Sunset"
	Lavender Style = "Lavender"
	Nord     Style = "Nord"
	Mocha    Style = "Mocha"
)

// Styles lists every palette in menu order.
func Styles() []Style {
	return []Style{Minimal, Ocean, Forest, Sunset, Lavender, Nord, Mocha}
}

// ParseStyle matches a style name case-insensitively.
func ParseStyle(name string) (Style, bool) {
	for _, style := range Styles() {
		if strings.EqualFold(string(style), strings.TrimSpace(name)) {
			return style, true
		}
	}
	return "", false
}

// Description is the one-line blurb shown in preferences.
func (style Style) Description() string {
	switch style {
	case Minimal:
		return "Clean black & white design"
	case Ocean:
		return "Calming blue tones"
	case Forest:
		return "Soothing natural greens"
	case Sunset:
		return "Warm, relaxing colors"
	case Lavender:
		return "Gentle purple hues"
	case Nord:
		return "Arctic, bluish colors"
	case Mocha:
		return "Warm, coffee-inspired tones"
	default:
		return ""
	}
}

// Palette is the set of colours a style resolves to.
type Palette struct {
	Background       color.NRGBA
	Foreground       color.NRGBA
	Muted            color.NRGBA
	MutedBackground  color.NRGBA
	Accent           color.NRGBA
	AccentForeground color.NRGBA
	ButtonHover      color.NRGBA
	ButtonActive     color.NRGBA
	Border           color.NRGBA
	Success          color.NRGBA
	Warning          color.NRGBA
}

// Colors returns the palette for style, falling back to Minimal.
func Colors(style Style) Palette {
	switch style {
	case Ocean:
		return Palette{
			Background:       rgb(0.06, 0.12, 0.22),
			Foreground:       rgb(0.85, 0.95, 1.0),
			Muted:            rgb(0.6, 0.75, 0.85),
			MutedBackground:  rgb(0.1, 0.18, 0.3),
			Accent:           rgb(0.4, 0.8, 1.0),
			AccentForeground: black,
			ButtonHover:      rgb(0.15, 0.25, 0.4),
			ButtonActive:     rgb(0.2, 0.3, 0.45),
			Border:           rgb(0.2, 0.3, 0.4),
			Success:          rgb(0.3, 0.8, 0.6),
			Warning:          rgb(1.0, 0.6, 0.4),
		}
	case Forest:
		return Palette{
			Background:       rgb(0.05, 0.15, 0.1),
			Foreground:       rgb(0.85, 1.0, 0.9),
			Muted:            rgb(0.6, 0.8, 0.7),
			MutedBackground:  rgb(0.1, 0.25, 0.15),
			Accent:           rgb(0.3, 0.9, 0.5),
			AccentForeground: black,
			ButtonHover:      rgb(0.15, 0.35, 0.2),
			ButtonActive:     rgb(0.2, 0.4, 0.25),
			Border:           rgb(0.2, 0.4, 0.3),
			Success:          rgb(0.2, 0.8, 0.4),
			Warning:          rgb(0.9, 0.6, 0.3),
		}
	case Sunset:
		return Palette{
			Background:       rgb(0.15, 0.08, 0.12),
			Foreground:       rgb(1.0, 0.9, 0.85),
			Muted:            rgb(0.85, 0.6, 0.65),
			MutedBackground:  rgb(0.25, 0.12, 0.18),
			Accent:           rgb(1.0, 0.4, 0.4),
			AccentForeground: white,
			ButtonHover:      rgb(0.35, 0.15, 0.25),
			ButtonActive:     rgb(0.4, 0.2, 0.3),
			Border:           rgb(0.4, 0.2, 0.3),
			Success:          rgb(0.6, 0.8, 0.4),
			Warning:          rgb(1.0, 0.6, 0.3),
		}
	case Lavender:
		return Palette{
			Background:       rgb(0.12, 0.1, 0.18),
			Foreground:       rgb(0.95, 0.9, 1.0),
			Muted:            rgb(0.75, 0.7, 0.85),
			MutedBackground:  rgb(0.18, 0.15, 0.28),
			Accent:           rgb(0.7, 0.4, 1.0),
			AccentForeground: white,
			ButtonHover:      rgb(0.25, 0.2, 0.35),
			ButtonActive:     rgb(0.3, 0.25, 0.4),
			Border:           rgb(0.3, 0.25, 0.4),
			Success:          rgb(0.5, 0.8, 0.5),
			Warning:          rgb(0.9, 0.6, 0.4),
		}
	case Nord:
		return Palette{
			Background:       rgb(0.18, 0.20, 0.25),
			Foreground:       rgb(0.92, 0.93, 0.95),
			Muted:            rgb(0.73, 0.78, 0.82),
			MutedBackground:  rgb(0.23, 0.26, 0.32),
			Accent:           rgb(0.57, 0.71, 0.78),
			AccentForeground: black,
			ButtonHover:      rgb(0.28, 0.31, 0.37),
			ButtonActive:     rgb(0.33, 0.36, 0.42),
			Border:           rgb(0.28, 0.31, 0.37),
			Success:          rgb(0.63, 0.75, 0.63),
			Warning:          rgb(0.92, 0.69, 0.53),
		}
	case Mocha:
		return Palette{
			Background:       rgb(0.15, 0.12, 0.10),
			Foreground:       rgb(0.95, 0.90, 0.85),
			Muted:            rgb(0.75, 0.65, 0.60),
			MutedBackground:  rgb(0.20, 0.16, 0.14),
			Accent:           rgb(0.85, 0.60, 0.45),
			AccentForeground: white,
			ButtonHover:      rgb(0.25, 0.20, 0.18),
			ButtonActive:     rgb(0.30, 0.25, 0.22),
			Border:           rgb(0.30, 0.25, 0.22),
			Success:          rgb(0.60, 0.75, 0.55),
			Warning:          rgb(0.90, 0.65, 0.45),
		}
	default:
		return Palette{
			Background:       black,
			Foreground:       white,
			Muted:            gray(0.65),
			MutedBackground:  gray(0.15),
			Accent:           white,
			AccentForeground: black,
			ButtonHover:      gray(0.2),
			ButtonActive:     gray(0.25),
			Border:           gray(0.2),
			Success:          color.NRGBA{R: 52, G: 199, B: 89, A: 255},
			Warning:          color.NRGBA{R: 255, G: 149, B: 0, A: 255},
		}
	}
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Terminal converts c for lipgloss styles.
func Terminal(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func rgb(r, g, b float64) color.NRGBA {
	return color.NRGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

func gray(level float64) color.NRGBA {
	return rgb(level, level, level)
}

func channel(value float64) uint8 {
	if value <= 0 {
		return 0
	}
	if value >= 1 {
		return 255
	}
	return uint8(value*255 + 0.5)
}
