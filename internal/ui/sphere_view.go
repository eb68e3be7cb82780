package ui

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-stellations/internal/celestial"
	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/theme"
	"github.com/litescript/ls-stellations/internal/tooltip"
)

// CellHitScale enlarges pick spheres so a star is hit from anywhere in the
// cell it is drawn in.
const CellHitScale = 5.0

const (
	glyphGrid       = '·'
	glyphArc        = '∙'
	glyphStarSphere = '●'
	glyphStarCircle = '•'
	glyphStarHover  = '◉'

	// Cells cannot blend, so arcs are tinted toward their colour by their
	// opacity times this factor.
	arcTint = 2.5

	// Draw-order bias applied to depth, per layer.
	layerBias = 0.002
)

type layer int

const (
	layerGrid layer = iota
	layerArc
	layerStar
	layerLabel
)

func biased(depth float64, l layer) float64 {
	return depth * (1 - float64(l)*layerBias)
}

// LabelMode controls which star labels are drawn.
type LabelMode int

const (
	LabelAll   LabelMode = iota // every visible label
	LabelHover                  // only the star under the pointer
	LabelNone
)

func (m LabelMode) String() string {
	switch m {
	case LabelHover:
		return "hover"
	case LabelNone:
		return "off"
	default:
		return "all"
	}
}

// sphereView rasterises the visualisation into terminal cells.
type sphereView struct {
	width     int
	height    int
	labelMode LabelMode
}

// frame is everything one render reads.
type frame struct {
	vis     *scene.Visualization
	cam     celestial.Camera
	theme   theme.Theme
	tooltip *tooltip.Coordinator
	hovered *scene.Star
}

// projectCell maps a scene point to the cell containing it. Points off
// screen still get coordinates; ok is false only behind the camera.
func projectCell(cam *celestial.Camera, p celestial.Vec3, width, height int) (x, y int, depth float64, ok bool) {
	nx, ny, depth, ok := cam.ProjectToNDC(p)
	if !ok {
		return 0, 0, depth, false
	}
	x = int(math.Floor((nx + 1) / 2 * float64(width)))
	y = int(math.Floor((1 - ny) / 2 * float64(height)))
	return x, y, depth, true
}

func (s sphereView) render(f frame) *canvas {
	th := f.theme
	bg := th.Background
	if f.vis == nil {
		return newCanvas(s.width, s.height, bg)
	}

	if dome := f.vis.Dome(); f.vis.DomeVisible() && dome.Visible {
		bg = blendHex(bg, dome.Color, dome.Opacity)
	}
	c := newCanvas(s.width, s.height, bg)
	cam := f.cam

	if f.vis.GridVisible() {
		for _, l := range f.vis.Grid() {
			if !l.Visible {
				continue
			}
			fg := th.Line
			if l.Equator {
				fg = th.Equator
			}
			s.polyline(c, &cam, l.Points, glyphGrid, fg, layerGrid)
		}
	}

	for _, a := range f.vis.Arcs() {
		if !a.Visible {
			continue
		}
		s.polyline(c, &cam, a.Points, glyphArc, blend(bg, a.Color, a.Opacity*arcTint), layerArc)
	}

	for _, st := range f.vis.Stars() {
		if !st.Visible || st.Scale <= 0 {
			continue
		}
		s.drawStar(c, &cam, st, bg, st == f.hovered)
	}

	if s.labelMode != LabelNone {
		for _, st := range f.vis.Stars() {
			if !st.Visible || st.Label == nil || !st.Label.Visible {
				continue
			}
			if s.labelMode == LabelHover && st != f.hovered {
				continue
			}
			s.drawLabel(c, &cam, st)
		}
	}

	if f.tooltip != nil {
		drawTooltip(c, f.tooltip, th)
	}
	return c
}

// polyline draws consecutive projected points. Segments with an endpoint
// behind the camera or far off screen are dropped.
func (s sphereView) polyline(c *canvas, cam *celestial.Camera, pts []celestial.Vec3, ch rune, fg string, l layer) {
	var (
		px, py int
		pd     float64
		prev   bool
	)
	for _, p := range pts {
		x, y, d, ok := projectCell(cam, p, s.width, s.height)
		ok = ok && s.nearScreen(x, y)
		if ok && prev {
			c.line(px, py, biased(pd, l), x, y, biased(d, l), ch, fg)
		} else if ok {
			c.plot(x, y, ch, fg, biased(d, l))
		}
		px, py, pd, prev = x, y, d, ok
	}
}

func (s sphereView) nearScreen(x, y int) bool {
	return x > -s.width && x < 2*s.width && y > -s.height && y < 2*s.height
}

func (s sphereView) drawStar(c *canvas, cam *celestial.Camera, st *scene.Star, bg string, hovered bool) {
	x, y, depth, ok := projectCell(cam, st.Position, s.width, s.height)
	if !ok {
		return
	}

	glyph := glyphStarSphere
	if st.Geometry != nil && st.Geometry.Kind == fidelity.GeometryCircle {
		glyph = glyphStarCircle
	}
	if hovered {
		glyph = glyphStarHover
	}

	// Cells are about twice as tall as wide, so the disc spans twice as
	// many columns as rows.
	tanHalf := math.Tan(cam.FOV * math.Pi / 360)
	rRows := st.Radius() / (depth * tanHalf) * float64(s.height) / 2
	if rRows < 0.75 {
		c.plot(x, y, glyph, starColor(st, 1, bg), biased(depth, layerStar))
		return
	}

	rCols := rRows * 2
	for j := -int(rRows); j <= int(rRows); j++ {
		for i := -int(rCols); i <= int(rCols); i++ {
			q := math.Hypot(float64(i)/rCols, float64(j)/rRows)
			if q > 1 {
				continue
			}
			facing := math.Sqrt(1 - q*q)
			ch := '█'
			if i == 0 && j == 0 {
				ch = glyph
			}
			c.plot(x+i, y+j, ch, starColor(st, facing, bg), biased(depth, layerStar))
		}
	}
}

// starColor shades a star cell. Shader materials glow at the rim; flat
// materials are the base colour at the material opacity.
func starColor(st *scene.Star, facing float64, bg string) string {
	m := st.Material
	if m == nil {
		return st.Color.Clamped().Hex()
	}
	if m.Shader {
		return m.Shade(facing).Hex()
	}
	return blend(bg, m.Color, m.Opacity)
}

// drawLabel writes a star's sprite right of the label anchor, or left of it
// when it would run off the right edge. Occlusion uses the star's depth, not
// the anchor's.
func (s sphereView) drawLabel(c *canvas, cam *celestial.Camera, st *scene.Star) {
	l := st.Label
	x, y, _, ok := projectCell(cam, l.Position, s.width, s.height)
	if !ok {
		return
	}
	_, _, depth, ok := projectCell(cam, st.Position, s.width, s.height)
	if !ok {
		return
	}
	left := x + 2
	if w := l.Sprite.Width; left+w > s.width && x-1-w >= 0 {
		left = x - 1 - w
	}
	c.text(left, y, l.Sprite.Text, l.Sprite.Color, biased(depth, layerLabel))
}

// drawTooltip paints the tooltip box over everything else.
func drawTooltip(c *canvas, tt *tooltip.Coordinator, th theme.Theme) {
	rows := tt.Frame()
	if len(rows) == 0 {
		return
	}
	pos := tt.Position()
	left, top := int(pos.Left), int(pos.Top)
	for i, row := range rows {
		runes := []rune(row)
		for j, r := range runes {
			fg := th.TooltipText
			if i == 0 || i == len(rows)-1 || j == 0 || j == len(runes)-1 {
				fg = th.TooltipBorder
			}
			c.overlay(left+j, top+i, string(r), fg, th.TooltipBackground)
		}
	}
}

// subjectSwatch is the colour a subject's stars are drawn in.
func subjectSwatch(index, count int) colorful.Color {
	color, _ := scene.SubjectColors(scene.SubjectHue(index, count))
	return color
}
