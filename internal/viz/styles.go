package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles derived from the active theme
type styles struct {
	filler        lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	statusPlaying lipgloss.Style
	statusPaused  lipgloss.Style
	spark         lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		filler:        lipgloss.NewStyle().Foreground(t.Muted),
		label:         lipgloss.NewStyle().Foreground(t.Muted),
		value:         lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		statusPlaying: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		statusPaused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		spark:         lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// ProgressBar renders percent in [0, 1] as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders the last width values scaled to [lo, hi].
func Sparkline(values []float64, lo, hi float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	rng := hi - lo
	if rng <= 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Separator draws a muted rule with a centre mark.
func Separator(width int, style lipgloss.Style) string {
	if width < 8 {
		return style.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-1)
	return style.Render(left + " ◆ " + right)
}
