package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the board and chrome.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color

	Empty    lipgloss.Color
	Wall     lipgloss.Color
	Start    lipgloss.Color
	Finish   lipgloss.Color
	Explored lipgloss.Color
	Path     lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Primary:   lipgloss.Color("#00cccc"),
		Secondary: lipgloss.Color("#ff88ff"),
		Muted:     lipgloss.Color("#666688"),
		Error:     lipgloss.Color("#ff4444"),
		Empty:     lipgloss.Color("#1c1c24"),
		Wall:      lipgloss.Color("#0c3547"),
		Start:     lipgloss.Color("#00c853"),
		Finish:    lipgloss.Color("#d50000"),
		Explored:  lipgloss.Color("#40cee3"),
		Path:      lipgloss.Color("#fffe6a"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		Error:     lipgloss.Color("#ff0000"),
		Empty:     lipgloss.Color("#001100"),
		Wall:      lipgloss.Color("#00cc00"),
		Start:     lipgloss.Color("#ffffff"),
		Finish:    lipgloss.Color("#ffff00"),
		Explored:  lipgloss.Color("#004400"),
		Path:      lipgloss.Color("#88ff88"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#ffd700"),
		Muted:     lipgloss.Color("#4488aa"),
		Error:     lipgloss.Color("#ff4444"),
		Empty:     lipgloss.Color("#001a33"),
		Wall:      lipgloss.Color("#e0f0ff"),
		Start:     lipgloss.Color("#00ff88"),
		Finish:    lipgloss.Color("#ff4444"),
		Explored:  lipgloss.Color("#0077be"),
		Path:      lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Error:     lipgloss.Color("#ff4757"),
		Empty:     lipgloss.Color("#2d1b2e"),
		Wall:      lipgloss.Color("#fff5f5"),
		Start:     lipgloss.Color("#5fd068"),
		Finish:    lipgloss.Color("#ff4757"),
		Explored:  lipgloss.Color("#8b6b8c"),
		Path:      lipgloss.Color("#feca57"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#0088ff"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
		Empty:     lipgloss.Color("#000000"),
		Wall:      lipgloss.Color("#cccccc"),
		Start:     lipgloss.Color("#00ff00"),
		Finish:    lipgloss.Color("#ff0000"),
		Explored:  lipgloss.Color("#333333"),
		Path:      lipgloss.Color("#0088ff"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after name in cycle order.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
