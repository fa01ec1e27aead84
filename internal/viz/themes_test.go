package viz

import "testing"

func TestGetTheme(t *testing.T) {
	if got := GetTheme("cyberpunk"); got.Name != "cyberpunk" {
		t.Errorf("GetTheme(cyberpunk) = %s", got.Name)
	}
	if got := GetTheme("nope"); got.Name != ThemeNexTech.Name {
		t.Errorf("unknown theme = %s, want %s", got.Name, ThemeNexTech.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	th := GetTheme(names[0])
	for i := 0; i < len(names); i++ {
		th = NextTheme(th)
	}
	if th.Name != names[0] {
		t.Errorf("cycling %d themes ended on %s, want %s", len(names), th.Name, names[0])
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{0.001, 1},
		{1, 15},
		{2, 15},
	}
	for _, tt := range tests {
		if got := Level(tt.in, 16); got != tt.want {
			t.Errorf("Level(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := len(ThemeNexTech.Palette(16)); got != 16 {
		t.Errorf("Palette(16) has %d styles", got)
	}
}
