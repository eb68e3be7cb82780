// Package tooltip places and lays out the star detail box that follows the
// pointer.
package tooltip

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellations/internal/scene"
)

// Mode is the input style the tooltip reacts to.
type Mode int

const (
	// ModePointer follows a hovering pointer and hides on every miss.
	ModePointer Mode = iota
	// ModeTouch anchors above the touch point and survives misses until
	// dismissed.
	ModeTouch
)

func (m Mode) String() string {
	if m == ModeTouch {
		return "touch"
	}
	return "pointer"
}

// ParseMode parses "pointer" or "touch"; anything else is pointer.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "touch") {
		return ModeTouch
	}
	return ModePointer
}

// Content is what the tooltip says about a star.
type Content struct {
	Name string
	Info string
	Year int
}

// ForStar builds the content for a picked star.
func ForStar(s *scene.Star) Content {
	return Content{Name: s.SubjectID, Info: s.Info, Year: s.Year}
}

// Lines returns the tooltip body, one entry per line.
func (c Content) Lines() []string {
	return []string{c.Name, c.Info, fmt.Sprintf("Year: %d", c.Year)}
}

// Placement holds the offsets used to position the box, in viewport units.
type Placement struct {
	OffsetX   float64 // right of the pointer
	OffsetY   float64 // below the pointer
	TouchLift float64 // gap above the touch point
	Margin    float64 // minimum distance from the viewport edges
}

// PixelPlacement suits pixel viewports.
func PixelPlacement() Placement {
	return Placement{OffsetX: 10, OffsetY: 10, TouchLift: 20, Margin: 10}
}

// CellPlacement suits terminal cells.
func CellPlacement() Placement {
	return Placement{OffsetX: 2, OffsetY: 1, TouchLift: 1, Margin: 0}
}

// Position is the top-left corner of the box.
type Position struct {
	Left float64
	Top  float64
}

// Place positions a w×h box near (x, y) and clamps it inside vp.
func Place(x, y, w, h float64, vp scene.Viewport, mode Mode, pl Placement) Position {
	left := x + pl.OffsetX
	top := y + pl.OffsetY
	if mode == ModeTouch {
		top = y - h - pl.TouchLift
	}

	if left+w > vp.Width {
		left = vp.Width - w - pl.Margin
	}
	if left < pl.Margin {
		left = pl.Margin
	}
	if top < pl.Margin {
		top = pl.Margin
	}
	if top+h > vp.Height {
		top = vp.Height - h - pl.Margin
	}
	return Position{Left: left, Top: top}
}

// Coordinator turns pick results into tooltip show/hide transitions.
type Coordinator struct {
	mode      Mode
	placement Placement
	viewport  scene.Viewport

	visible bool
	content Content
	pos     Position
	anchorX float64
	anchorY float64
}

// NewCoordinator creates a hidden tooltip.
func NewCoordinator(mode Mode, pl Placement) *Coordinator {
	return &Coordinator{mode: mode, placement: pl}
}

// SetViewport sets the clamping bounds and re-places a visible tooltip.
func (c *Coordinator) SetViewport(vp scene.Viewport) {
	c.viewport = vp
	if c.visible {
		c.place()
	}
}

// Mode returns the input mode.
func (c *Coordinator) Mode() Mode { return c.mode }

// Show displays content near (x, y).
func (c *Coordinator) Show(content Content, x, y float64) {
	c.content = content
	c.anchorX, c.anchorY = x, y
	c.visible = true
	c.place()
}

// Hide removes the tooltip.
func (c *Coordinator) Hide() {
	c.visible = false
}

// HandlePick shows the tooltip for a hit. A miss hides it in pointer mode;
// in touch mode a miss is ignored so the tooltip does not flicker between
// taps.
func (c *Coordinator) HandlePick(hit scene.Hit, ok bool, x, y float64) {
	if ok && hit.Star != nil {
		c.Show(ForStar(hit.Star), x, y)
		return
	}
	if c.mode == ModePointer {
		c.Hide()
	}
}

// Visible reports whether the tooltip is shown.
func (c *Coordinator) Visible() bool { return c.visible }

// Content returns the current content.
func (c *Coordinator) Content() Content { return c.content }

// Position returns where the box is drawn.
func (c *Coordinator) Position() Position { return c.pos }

const maxTextWidth = 36

// Size is the box footprint in cells.
func (c *Coordinator) Size() (w, h int) {
	box := c.boxStyle().Render(c.body())
	return lipgloss.Width(box), lipgloss.Height(box)
}

func (c *Coordinator) place() {
	w, h := c.Size()
	c.pos = Place(c.anchorX, c.anchorY, float64(w), float64(h), c.viewport, c.mode, c.placement)
}

func (c *Coordinator) body() string {
	return strings.Join(c.content.Lines(), "\n")
}

func (c *Coordinator) boxStyle() lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if lipgloss.Width(c.body()) > maxTextWidth {
		style = style.Width(maxTextWidth)
	}
	return style
}

// Frame returns the uncoloured box, one string per row, for hosts that
// paint it cell by cell. A hidden tooltip has no rows.
func (c *Coordinator) Frame() []string {
	if !c.visible {
		return nil
	}
	return strings.Split(c.boxStyle().Render(c.body()), "\n")
}
