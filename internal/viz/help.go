package viz

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# pathviz

Paint walls with the mouse, then ask the algorithm service for a run.

| Key | Action |
|-----|--------|
| mouse drag | toggle walls |
| v / enter | visualize |
| c | clear the grid |
| a / tab | next algorithm |
| A / shift+tab | previous algorithm |
| + / - | faster / slower playback |
| t | cycle theme |
| ? | toggle this help |
| q | quit |

Editing, clearing and settings are disabled while a run is playing.
`

// renderHelp renders the key reference, falling back to raw markdown when
// no terminal renderer can be built.
func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
