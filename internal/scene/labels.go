package scene

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellations/internal/theme"
)

// LabelScale places labels outside the star radius.
const LabelScale = 1.3

// Sprite is a rendered label. Color is the theme's text colour baked in at
// render time; Width is the text's footprint in cells.
type Sprite struct {
	Text  string
	Theme theme.Name
	Color string
	Width int
}

// LabelRenderer turns (text, theme) into a sprite.
type LabelRenderer interface {
	Render(text string, th theme.Theme) Sprite
	// Invalidate drops any memoised sprites.
	Invalidate()
}

// FormatLabel builds the label text for an event.
func FormatLabel(nickname, shortCode string, year int) string {
	parts := make([]string, 0, 3)
	if nickname != "" {
		parts = append(parts, nickname)
	}
	if shortCode != "" {
		parts = append(parts, shortCode)
	}
	parts = append(parts, fmt.Sprintf("%d", year))
	return strings.Join(parts, " | ")
}

type labelKey struct {
	text  string
	theme theme.Name
}

// StyledLabelRenderer bakes theme colours into label sprites, memoised by
// (text, theme).
type StyledLabelRenderer struct {
	mu      sync.Mutex
	cache   map[labelKey]Sprite
	renders int
}

// NewStyledLabelRenderer creates an empty renderer.
func NewStyledLabelRenderer() *StyledLabelRenderer {
	return &StyledLabelRenderer{cache: make(map[labelKey]Sprite)}
}

// Render implements LabelRenderer.
func (r *StyledLabelRenderer) Render(text string, th theme.Theme) Sprite {
	key := labelKey{text: text, theme: th.Name}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache[key]; ok {
		return s
	}

	s := Sprite{
		Text:  text,
		Theme: th.Name,
		Color: th.Text,
		Width: lipgloss.Width(text),
	}
	r.cache[key] = s
	r.renders++
	return s
}

// Invalidate implements LabelRenderer.
func (r *StyledLabelRenderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[labelKey]Sprite)
}

// Renders returns how many sprites were actually rendered (cache misses).
func (r *StyledLabelRenderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}
