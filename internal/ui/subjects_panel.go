package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/state"
	"github.com/litescript/ls-stellations/internal/theme"
)

// Panel colours
const (
	colorPanelTitle  = "135" // violet
	colorPanelCursor = "229" // gold
	colorPanelHidden = "240"
)

// panelRow is a category header (subject empty) or one subject.
type panelRow struct {
	category string
	subject  string
	name     string
	index    int // position in the dataset, for the colour swatch
}

func (r panelRow) isCategory() bool { return r.subject == "" }

// subjectsPanel lists subjects grouped by category with a cursor.
type subjectsPanel struct {
	rows   []panelRow
	total  int
	cursor int
	offset int
	width  int
	height int
}

func newSubjectsPanel(data *bio.Dataset) subjectsPanel {
	var p subjectsPanel
	if data == nil {
		return p
	}

	index := make(map[string]int, len(data.Subjects))
	for i, s := range data.Subjects {
		index[s.ID] = i
	}
	p.total = len(data.Subjects)

	for _, cat := range data.Categories() {
		p.rows = append(p.rows, panelRow{category: cat, name: cat})
		for _, id := range data.SubjectIDs(cat) {
			s, _ := data.Subject(id)
			p.rows = append(p.rows, panelRow{
				category: cat,
				subject:  id,
				name:     s.DisplayName(),
				index:    index[id],
			})
		}
	}
	return p
}

func (p subjectsPanel) setSize(width, height int) subjectsPanel {
	p.width = width
	p.height = height
	return p.scrollToCursor()
}

// selected returns the row under the cursor.
func (p subjectsPanel) selected() (panelRow, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return panelRow{}, false
	}
	return p.rows[p.cursor], true
}

func (p subjectsPanel) move(delta int) subjectsPanel {
	if len(p.rows) == 0 {
		return p
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.rows)-1)
	return p.scrollToCursor()
}

func (p subjectsPanel) listHeight() int {
	// title line, blank line, three event lines
	return max(p.height-5, 1)
}

func (p subjectsPanel) scrollToCursor() subjectsPanel {
	h := p.listHeight()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+h {
		p.offset = p.cursor - h + 1
	}
	return p
}

// visibleCount returns how many subjects of a category, or of everything
// when category is empty, are visible.
func (p subjectsPanel) visibleCount(snap state.Snapshot, category string) (visible, total int) {
	for _, r := range p.rows {
		if r.isCategory() || (category != "" && r.category != category) {
			continue
		}
		total++
		if snap.SubjectVisible[r.subject] {
			visible++
		}
	}
	return visible, total
}

// view renders the panel:
//
//	Subjects 3/4
//	▾ Famous 2/3
//	  [x] ● Einstein
//	  [ ] ● Curie
func (p subjectsPanel) view(snap state.Snapshot, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelTitle)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelCursor)).Bold(true)
	hiddenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPanelHidden))

	visible, total := p.visibleCount(snap, "")
	lines := []string{titleStyle.Render(fmt.Sprintf("Subjects %d/%d", visible, total))}

	if len(p.rows) == 0 {
		lines = append(lines, dimStyle.Render("No subjects loaded"))
	}

	end := min(p.offset+p.listHeight(), len(p.rows))
	for i := p.offset; i < end; i++ {
		r := p.rows[i]
		marker := "  "
		if i == p.cursor {
			marker = cursorStyle.Render("▶ ")
		}

		if r.isCategory() {
			v, t := p.visibleCount(snap, r.category)
			text := truncate(fmt.Sprintf("▾ %s %d/%d", r.name, v, t), p.width-2)
			lines = append(lines, marker+titleStyle.Render(text))
			continue
		}

		check := "[ ]"
		nameStyle := hiddenStyle
		if snap.SubjectVisible[r.subject] {
			check = "[x]"
			nameStyle = textStyle
		}
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(subjectSwatch(r.index, p.total).Hex())).
			Render("●")
		name := truncate(r.name, p.width-10)
		lines = append(lines, marker+"  "+dimStyle.Render(check)+" "+swatch+" "+nameStyle.Render(name))
	}

	lines = append(lines, "")
	events := snap.Events
	if len(events) > 3 {
		events = events[len(events)-3:]
	}
	for _, e := range events {
		lines = append(lines, dimStyle.Render(truncate(describeEvent(e), p.width)))
	}

	return lipgloss.NewStyle().Width(p.width).Render(strings.Join(lines, "\n"))
}

// describeEvent is a one-line summary of a state event.
func describeEvent(e state.Event) string {
	ts := e.Timestamp.Local().Format("15:04:05")
	switch e.Type {
	case state.EventSubjectToggled:
		return fmt.Sprintf("%s %s %s", ts, e.Subject, e.Detail)
	case state.EventCategoryToggled:
		return fmt.Sprintf("%s %s %s", ts, e.Category, e.Detail)
	default:
		return fmt.Sprintf("%s %s %s", ts, strings.ToLower(string(e.Type)), e.Detail)
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
