package tabs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("#4ec9b0")).
			Underline(true)
	idleStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#999"))
	disabledStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#555")).Strikethrough(true)
)

// Render はタブバーを端末向けの1行の文字列にします。
func Render(t Tabs) string {
	triggers := t.Triggers()
	parts := make([]string, 0, len(triggers))
	for _, tr := range triggers {
		style := idleStyle
		switch {
		case tr.Disabled:
			style = disabledStyle
		case tr.Selected:
			style = selectedStyle
		}
		parts = append(parts, style.Render(tr.Label))
	}
	return strings.Join(parts, "|")
}
