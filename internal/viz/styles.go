package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles holds the chrome styles derived from a Theme.
type Styles struct {
	Subtle   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Key      lipgloss.Style
	Disabled lipgloss.Style
	Running  lipgloss.Style
	Idle     lipgloss.Style
	Error    lipgloss.Style

	barDone    lipgloss.Style
	barPending lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Subtle:     lipgloss.NewStyle().Foreground(t.Muted),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")),
		Value:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Key:        lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Disabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Strikethrough(true),
		Running:    lipgloss.NewStyle().Foreground(t.Start).Bold(true),
		Idle:       lipgloss.NewStyle().Foreground(t.Path).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		barDone:    lipgloss.NewStyle().Foreground(t.Explored),
		barPending: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// ProgressBar renders percent in [0,1] as a bar of the given width.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	return s.barDone.Render(strings.Repeat("█", filled)) +
		s.barPending.Render(strings.Repeat("░", width-filled))
}

func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// GradientText colors each rune of text along a blend between two colors.
// Colors that fail to parse fall back to white.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	start, end := parseColor(from), parseColor(to)

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := start.BlendLab(end, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}
	return b.String()
}

func parseColor(c lipgloss.Color) colorful.Color {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return parsed
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns the spinner glyph for a frame count.
func Spinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}
