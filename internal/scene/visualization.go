package scene

import (
	"math/rand/v2"

	"github.com/litescript/ls-stellations/internal/celestial"
	"github.com/litescript/ls-stellations/internal/fidelity"
	"github.com/litescript/ls-stellations/internal/logging"
	"github.com/litescript/ls-stellations/internal/theme"
)

// Phase is the lifecycle stage of a Visualization's primitives.
type Phase int

const (
	PhaseUnbuilt Phase = iota
	PhaseBuilding
	PhaseBuilt
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnbuilt:
		return "unbuilt"
	case PhaseBuilding:
		return "building"
	case PhaseBuilt:
		return "built"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Default geometry settings.
const (
	DefaultRadius      = 50.0
	DefaultGridCount   = 20
	DefaultDomeOpacity = 0.03
)

// Options configures a Visualization. Zero values fall back to defaults.
type Options struct {
	Radius      float64
	Profile     fidelity.Profile
	GridCount   int
	DomeOpacity float64
	Theme       theme.Theme
	Labels      LabelRenderer
	Logger      *logging.Logger

	// HitScale enlarges pick spheres; see Picker.
	HitScale float64
	// Seed fixes the per-star pulse phases. Zero picks a random seed.
	Seed uint64
}

// Stats summarises the current primitive set.
type Stats struct {
	Phase      Phase
	Generation uint64
	Stars      int
	Arcs       int
	Labels     int
	GridLines  int
	Cache      CacheStats
}

// Visualization owns every primitive of the star map and the scene graph
// holding them. It is driven from a single goroutine: the host calls
// BeginBuild/Step, UpdateVisibility, UpdateAnimation and Pick from its own
// event loop.
type Visualization struct {
	radius   float64
	profile  fidelity.Profile
	theme    theme.Theme
	hitScale float64

	labels LabelRenderer
	cache  *ResourceCache
	logger *logging.Logger
	rng    *rand.Rand

	phase Phase
	gen   uint64

	root      *Node
	domeNode  *Node
	gridNode  *Node
	arcNode   *Node
	starNode  *Node
	labelNode *Node

	dome      *Dome
	grid      []*GridLine
	stars     []*Star
	labelList []*Label
	arcs      []*Arc
}

// New creates a visualisation with its dome and grid built and no subject
// primitives yet.
func New(opts Options) *Visualization {
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	if opts.GridCount == 0 {
		opts.GridCount = DefaultGridCount
	}
	if opts.DomeOpacity <= 0 {
		opts.DomeOpacity = DefaultDomeOpacity
	}
	if opts.Theme.Name == "" {
		opts.Theme = theme.DarkTheme()
	}
	if opts.Profile.ArcSegments == 0 {
		opts.Profile = fidelity.SelectProfile(fidelity.DeviceFull)
	}
	if opts.Labels == nil {
		opts.Labels = NewStyledLabelRenderer()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	v := &Visualization{
		radius:   opts.Radius,
		profile:  opts.Profile,
		theme:    opts.Theme,
		hitScale: opts.HitScale,
		labels:   opts.Labels,
		cache:    NewResourceCache(),
		logger:   opts.Logger.With("component", "scene"),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),

		root:      NewNode("stellations"),
		domeNode:  NewNode("dome"),
		gridNode:  NewNode("grid"),
		arcNode:   NewNode("arcs"),
		starNode:  NewNode("stars"),
		labelNode: NewNode("labels"),
	}
	for _, n := range []*Node{v.domeNode, v.gridNode, v.arcNode, v.starNode, v.labelNode} {
		v.root.Add(n)
	}

	v.dome = BuildDome(v.radius, v.profile, opts.DomeOpacity, v.theme)
	v.domeNode.Items = []Primitive{v.dome}

	v.grid = BuildGrid(v.radius, v.profile.GridLineCount(opts.GridCount), v.profile.DomeSegments*2)
	for _, l := range v.grid {
		v.gridNode.Items = append(v.gridNode.Items, l)
	}

	return v
}

// Root is the scene-graph node holding everything.
func (v *Visualization) Root() *Node { return v.root }

func (v *Visualization) Stars() []*Star     { return v.stars }
func (v *Visualization) Arcs() []*Arc       { return v.arcs }
func (v *Visualization) Labels() []*Label   { return v.labelList }
func (v *Visualization) Dome() *Dome        { return v.dome }
func (v *Visualization) Grid() []*GridLine  { return v.grid }
func (v *Visualization) Radius() float64    { return v.radius }
func (v *Visualization) Theme() theme.Theme { return v.theme }
func (v *Visualization) Phase() Phase       { return v.phase }
func (v *Visualization) Generation() uint64 { return v.gen }

// Profile is the fidelity profile the visualisation was built with.
func (v *Visualization) Profile() fidelity.Profile { return v.profile }

// UpdateVisibility re-applies the filter to every star, label and arc.
func (v *Visualization) UpdateVisibility(f FilterState) {
	ApplyFilter(f, v.profile, v.stars, v.arcs)
}

// SetDomeVisible shows or hides the dome shell group.
func (v *Visualization) SetDomeVisible(visible bool) {
	v.domeNode.Visible = visible
}

// SetDomeOpacity changes the shell opacity without rebuilding it.
func (v *Visualization) SetDomeOpacity(opacity float64) {
	v.dome.Opacity = min(max(opacity, 0), 1)
}

// SetGridVisible shows or hides the geodesic grid group.
func (v *Visualization) SetGridVisible(visible bool) {
	v.gridNode.Visible = visible
}

// DomeVisible reports the dome group flag.
func (v *Visualization) DomeVisible() bool { return v.domeNode.Visible }

// GridVisible reports the grid group flag.
func (v *Visualization) GridVisible() bool { return v.gridNode.Visible }

// UpdateAnimation advances star pulses and the glow time uniform to t
// seconds. Profiles without animation leave everything untouched.
func (v *Visualization) UpdateAnimation(t float64) {
	if v.profile.UseShaderGlow {
		v.cache.SetTime(t)
	}
	if !v.profile.AnimatePulse {
		return
	}
	for _, s := range v.stars {
		s.Scale = s.BaseScale * PulseScale(t, s.Phase)
	}
}

// UpdateLabels switches theme: every label sprite is regenerated, and the
// dome picks up the new colour.
func (v *Visualization) UpdateLabels(th theme.Theme) {
	v.theme = th
	v.labels.Invalidate()
	for _, l := range v.labelList {
		l.Sprite = v.labels.Render(l.Text, th)
	}
	v.dome.Color = th.Dome
	v.logger.Debug("regenerated %d labels for %s theme", len(v.labelList), th.Name)
}

// Pick returns the nearest visible star under the pointer.
func (v *Visualization) Pick(x, y float64, vp Viewport, cam *celestial.Camera) (Hit, bool) {
	return Picker{HitScale: v.hitScale}.Pick(x, y, vp, cam, v.stars)
}

// Dispose cancels any build in progress and releases every subject
// primitive and cached resource. The dome and grid remain.
func (v *Visualization) Dispose() {
	v.gen++
	v.clearPrimitives()
	v.phase = PhaseDisposed
}

// Stats returns counts for diagnostics.
func (v *Visualization) Stats() Stats {
	return Stats{
		Phase:      v.phase,
		Generation: v.gen,
		Stars:      len(v.stars),
		Arcs:       len(v.arcs),
		Labels:     len(v.labelList),
		GridLines:  len(v.grid),
		Cache:      v.cache.Stats(),
	}
}

func (v *Visualization) clearPrimitives() {
	v.stars = nil
	v.labelList = nil
	v.arcs = nil
	v.starNode.Clear()
	v.labelNode.Clear()
	v.arcNode.Clear()
	v.cache.Clear()
	v.labels.Invalidate()
}
