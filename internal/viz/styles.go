package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title   lipgloss.Style
	Panel   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Alert   lipgloss.Style
	Menu    lipgloss.Style
	Focus   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Alert:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Menu:    lipgloss.NewStyle().Foreground(t.Text),
		Focus:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// Bar renders a fill bar for a value in [0, 1].
func Bar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// CenterBar renders a bar for a value in [-1, 1] growing out of the middle.
func CenterBar(v float64, width int) string {
	half := width / 2
	n := int(v*float64(half) + copysignHalf(v))
	n = max(-half, min(half, n))

	cells := []rune(strings.Repeat("─", 2*half+1))
	cells[half] = '┼'
	for i := 1; i <= absInt(n); i++ {
		if n > 0 {
			cells[half+i] = '█'
		} else {
			cells[half-i] = '█'
		}
	}
	return string(cells)
}

func copysignHalf(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}
