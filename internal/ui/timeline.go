package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/theme"
)

const (
	colorWindow = "#9D4EDD"
	barInside   = "━"
	barOutside  = "─"
)

// windowCells marks which of width bar cells fall inside the window. Cell i
// stands for the year at its centre on the [minYear, maxYear] scale.
func windowCells(minYear, maxYear int, w scene.TimeWindow, width int) []bool {
	if width <= 0 {
		return nil
	}
	cells := make([]bool, width)
	span := float64(maxYear-minYear) + 1
	for i := range cells {
		year := minYear + int((float64(i)+0.5)/float64(width)*span)
		cells[i] = w.Contains(min(year, maxYear))
	}
	return cells
}

// renderTimeline draws the time window over the dataset's year range:
//
//	1879 ──────━━━━━━━━━─────── 1933   window 1900–1915
func renderTimeline(minYear, maxYear int, w scene.TimeWindow, width int, th theme.Theme) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorWindow)).Bold(true)

	if minYear == 0 && maxYear == 0 {
		return dimStyle.Render("no timeline")
	}

	left := fmt.Sprintf("%d ", minYear)
	right := fmt.Sprintf(" %d", maxYear)
	info := fmt.Sprintf("   window %d–%d", w.Start, w.End)
	barWidth := width - len(left) - len(right) - lipgloss.Width(info)
	if barWidth < 4 {
		return accentStyle.Render(strings.TrimSpace(info))
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for _, in := range windowCells(minYear, maxYear, w, barWidth) {
		if in {
			b.WriteString(accentStyle.Render(barInside))
		} else {
			b.WriteString(dimStyle.Render(barOutside))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString(accentStyle.Render(info))
	return b.String()
}
