package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Mesh       lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

// Available themes
var (
	ThemeNexTech = Theme{
		Name:       "nextech",
		Mesh:       lipgloss.Color("#00d4ff"), // Electric cyan
		Accent:     lipgloss.Color("#7c5cff"),
		Background: lipgloss.Color("#0a0e17"),
		Text:       lipgloss.Color("#e6f1ff"),
		Muted:      lipgloss.Color("#4a5a70"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Mesh:       lipgloss.Color("#ff00ff"), // Magenta
		Accent:     lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Mesh:       lipgloss.Color("#00ff00"), // Green phosphor
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Mesh:       lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Mesh:       lipgloss.Color("#ff6b6b"), // Coral
		Accent:     lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeNexTech,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Ramp blends from the background to the mesh colour in n steps; index 0
// is the background and index n-1 the full mesh colour.
func (t Theme) Ramp(n int) []colorful.Color {
	if n < 2 {
		n = 2
	}
	bg, err := colorful.Hex(string(t.Background))
	if err != nil {
		bg = colorful.Color{}
	}
	fg, err := colorful.Hex(string(t.Mesh))
	if err != nil {
		fg = colorful.Color{R: 1, G: 1, B: 1}
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = bg.BlendLab(fg, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

// Palette renders Ramp as lipgloss foreground styles.
func (t Theme) Palette(n int) []lipgloss.Style {
	ramp := t.Ramp(n)
	styles := make([]lipgloss.Style, len(ramp))
	for i, c := range ramp {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return styles
}

// Level maps an intensity in [0, 1] to a palette index in [1, n-1]; lit
// dots never fall back to the bare background.
func Level(intensity float64, n int) int {
	if n < 2 {
		return 0
	}
	lvl := int(intensity*float64(n-1) + 0.999)
	if lvl < 1 {
		lvl = 1
	}
	if lvl > n-1 {
		lvl = n - 1
	}
	return lvl
}
