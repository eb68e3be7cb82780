// Package ui provides the terminal user interface for ls-stellations.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/logging"
	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/state"
	"github.com/litescript/ls-stellations/internal/theme"
	"github.com/litescript/ls-stellations/internal/tooltip"
	"github.com/litescript/ls-stellations/internal/version"
)

// Layout
const (
	headerHeight   = 1
	timelineHeight = 1
	panelWidth     = 32
	minPanelWidth  = 80 // narrower terminals drop the panel

	orbitStep   = 5.0 // degrees
	zoomStep    = 0.9
	opacityStep = 0.01
)

// frameMsg drives animation at the profile's frame interval.
type frameMsg time.Time

// buildStepMsg asks for the next batch of build gen.
type buildStepMsg struct{ gen uint64 }

// dataLoadedMsg carries a finished load.
type dataLoadedMsg struct{ result bio.LoadResult }

// rebuildMsg rebuilds from data already held by the state manager.
type rebuildMsg struct{}

// Options wires the model to its collaborators.
type Options struct {
	Context context.Context
	State   *state.Manager
	Vis     *scene.Visualization
	// Loader reads biographies at startup. Nil means State already holds
	// the dataset.
	Loader    *bio.Loader
	Tooltip   *tooltip.Coordinator
	LabelMode LabelMode
	Logger    *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	state  *state.Manager
	vis    *scene.Visualization
	loader *bio.Loader
	tip    *tooltip.Coordinator
	anim   *scene.Animator
	logger *logging.Logger

	help help.Model

	width  int
	height int
	ready  bool

	snapshot  state.Snapshot
	applied   uint64     // snapshot revision whose filter the scene shows
	labelsFor theme.Name // theme the label sprites were rendered for

	build   *scene.Build
	loading bool
	started time.Time
	frames  int
	hovered *scene.Star

	sphere    sphereView
	panel     subjectsPanel
	showPanel bool
	statusMsg string
}

// New creates a new root model.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Tooltip == nil {
		opts.Tooltip = tooltip.NewCoordinator(tooltip.ModePointer, tooltip.CellPlacement())
	}

	snap := opts.State.Snapshot()
	m := Model{
		ctx:       opts.Context,
		state:     opts.State,
		vis:       opts.Vis,
		loader:    opts.Loader,
		tip:       opts.Tooltip,
		anim:      scene.NewAnimator(opts.Vis),
		logger:    opts.Logger.With("component", "ui"),
		help:      help.New(),
		snapshot:  snap,
		labelsFor: opts.Vis.Theme().Name,
		loading:   opts.Loader != nil,
		started:   time.Now(),
		sphere:    sphereView{labelMode: opts.LabelMode},
		panel:     newSubjectsPanel(snap.Data),
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), m.loadCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.anim.Stop()
			m.vis.Dispose()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case frameMsg:
		cmds = append(cmds, m.frameCmd())
		if m.anim.OnFrame(time.Since(m.started)) {
			m.frames++
			if m.snapshot.AutoRotate {
				m.state.AdvanceRotation(1)
			}
		}

	case dataLoadedMsg:
		m.loading = false
		m.state.Update(msg.result)
		if msg.result.Error != nil {
			m.logger.Error("load failed: %v", msg.result.Error)
		}
		if msg.result.Data != nil {
			m.panel = newSubjectsPanel(msg.result.Data).setSize(m.panel.width, m.panel.height)
			m.sync()
			cmds = append(cmds, m.startBuild())
		}

	case rebuildMsg:
		cmds = append(cmds, m.startBuild())

	case buildStepMsg:
		if m.build == nil || msg.gen != m.build.Generation() {
			break
		}
		done := m.build.Step()
		m.vis.UpdateVisibility(m.snapshot.Filter())
		m.applied = m.snapshot.Revision
		if done {
			m.build = nil
		} else {
			cmds = append(cmds, buildStepCmd(msg.gen))
		}
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.StartEarlier):
		m.state.StepStartYear(-1)
	case key.Matches(msg, keys.StartLater):
		m.state.StepStartYear(1)
	case key.Matches(msg, keys.EndEarlier):
		m.state.StepEndYear(-1)
	case key.Matches(msg, keys.EndLater):
		m.state.StepEndYear(1)

	case key.Matches(msg, keys.Up):
		m.panel = m.panel.move(-1)
	case key.Matches(msg, keys.Down):
		m.panel = m.panel.move(1)
	case key.Matches(msg, keys.Toggle):
		if r, ok := m.panel.selected(); ok {
			if r.isCategory() {
				m.state.ToggleCategory(r.category)
			} else {
				m.state.ToggleSubject(r.subject)
			}
		}
	case key.Matches(msg, keys.Category):
		if r, ok := m.panel.selected(); ok {
			m.state.ToggleCategory(r.category)
		}
	case key.Matches(msg, keys.All):
		visible, total := m.panel.visibleCount(m.snapshot, "")
		m.state.SetAllVisible(visible < total)

	case key.Matches(msg, keys.OrbitLeft):
		m.state.OrbitCamera(-orbitStep, 0)
	case key.Matches(msg, keys.OrbitRight):
		m.state.OrbitCamera(orbitStep, 0)
	case key.Matches(msg, keys.OrbitUp):
		m.state.OrbitCamera(0, orbitStep)
	case key.Matches(msg, keys.OrbitDown):
		m.state.OrbitCamera(0, -orbitStep)
	case key.Matches(msg, keys.ZoomIn):
		m.state.ZoomCamera(zoomStep)
	case key.Matches(msg, keys.ZoomOut):
		m.state.ZoomCamera(1 / zoomStep)
	case key.Matches(msg, keys.Reset):
		m.state.ResetCamera()
	case key.Matches(msg, keys.Rotate):
		m.state.ToggleAutoRotate()

	case key.Matches(msg, keys.Theme):
		m.state.ToggleTheme()
	case key.Matches(msg, keys.Grid):
		m.state.ToggleGrid()
	case key.Matches(msg, keys.Dome):
		m.state.ToggleDome()
	case key.Matches(msg, keys.DomeFaint):
		m.state.SetDomeOpacity(m.snapshot.DomeOpacity - opacityStep)
	case key.Matches(msg, keys.DomeDense):
		m.state.SetDomeOpacity(m.snapshot.DomeOpacity + opacityStep)
	case key.Matches(msg, keys.Labels):
		m.sphere.labelMode = (m.sphere.labelMode + 1) % 3

	case key.Matches(msg, keys.Rebuild):
		return m.startBuild()
	case key.Matches(msg, keys.Dismiss):
		m.tip.Hide()
		m.hovered = nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return nil
}

// handleMouse picks on motion (pointer mode) or press (both modes) and
// zooms on the wheel. Coordinates are translated into the sphere view.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.state.ZoomCamera(zoomStep)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.state.ZoomCamera(1 / zoomStep)
		return
	case msg.Action == tea.MouseActionMotion:
		if m.tip.Mode() == tooltip.ModeTouch {
			return
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
	default:
		return
	}

	x, y := msg.X, msg.Y-headerHeight
	if x < 0 || y < 0 || x >= m.sphere.width || y >= m.sphere.height {
		m.tip.HandlePick(scene.Hit{}, false, float64(x), float64(y))
		if !m.tip.Visible() {
			m.hovered = nil
		}
		return
	}
	m.pick(x, y)
}

func (m *Model) pick(x, y int) {
	cam := m.snapshot.Camera
	hit, ok := m.vis.Pick(float64(x)+0.5, float64(y)+0.5, m.viewport(), &cam)
	m.tip.HandlePick(hit, ok, float64(x), float64(y))
	switch {
	case ok:
		m.hovered = hit.Star
	case !m.tip.Visible():
		m.hovered = nil
	}
}

func (m Model) viewport() scene.Viewport {
	return scene.Viewport{Width: float64(m.sphere.width), Height: float64(m.sphere.height)}
}

// sync pulls a fresh snapshot and pushes any changes into the scene.
func (m *Model) sync() {
	m.snapshot = m.state.Snapshot()
	snap := m.snapshot

	if snap.Revision != m.applied {
		m.vis.UpdateVisibility(snap.Filter())
		m.applied = snap.Revision
		if m.hovered != nil && !m.hovered.Visible {
			m.tip.Hide()
			m.hovered = nil
		}
	}
	if snap.Theme != m.labelsFor {
		m.vis.UpdateLabels(theme.ForName(snap.Theme))
		m.labelsFor = snap.Theme
	}
	m.vis.SetDomeVisible(snap.DomeVisible)
	m.vis.SetDomeOpacity(snap.DomeOpacity)
	m.vis.SetGridVisible(snap.GridVisible)
}

func (m *Model) layout() {
	footer := 1 + lipgloss.Height(m.help.View(keys))
	bodyHeight := max(m.height-headerHeight-timelineHeight-footer, 1)

	m.showPanel = m.width >= minPanelWidth
	sphereWidth := m.width
	if m.showPanel {
		sphereWidth = m.width - panelWidth - 1
	}
	m.sphere.width = max(sphereWidth, 1)
	m.sphere.height = bodyHeight
	m.panel = m.panel.setSize(panelWidth, bodyHeight)
	m.help.Width = m.width

	m.tip.SetViewport(m.viewport())
	// Cells are about twice as tall as they are wide.
	m.state.SetAspect(float64(m.sphere.width) / (2 * float64(m.sphere.height)))
}

// startBuild begins a batched rebuild from the current dataset. Any build
// in progress becomes stale.
func (m *Model) startBuild() tea.Cmd {
	if m.snapshot.Data == nil {
		m.statusMsg = "Nothing to build: no biographies loaded"
		return nil
	}
	m.tip.Hide()
	m.hovered = nil
	m.build = m.vis.BeginBuild(m.snapshot.Data.Subjects)
	m.statusMsg = ""
	m.logger.With("build", m.build.ID.String()).Info("building %d subjects", len(m.snapshot.Data.Subjects))
	return buildStepCmd(m.build.Generation())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	th := theme.ForName(m.snapshot.Theme)
	body := m.sphere.render(frame{
		vis:     m.vis,
		cam:     m.snapshot.Camera,
		theme:   th,
		tooltip: m.tip,
		hovered: m.hovered,
	}).String()
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.panel.view(m.snapshot, th))
	}

	timeline := renderTimeline(m.snapshot.MinYear, m.snapshot.MaxYear, m.snapshot.Window, m.width, th)
	return m.renderHeader(th) + "\n" + body + "\n" + timeline + "\n" + m.renderFooter(th)
}

func (m Model) renderHeader(th theme.Theme) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))

	title := "✦ ls-stellations"
	var b strings.Builder
	runes := []rune(title)
	for i, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(i, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}

	parts := []string{
		fmt.Sprintf("v%s", version.Version),
		fmt.Sprintf("%s profile", m.vis.Profile().Class),
		fmt.Sprintf("%s theme", m.snapshot.Theme),
		fmt.Sprintf("labels: %s", m.sphere.labelMode),
	}
	if m.snapshot.AutoRotate {
		parts = append(parts, "rotating")
	}
	if m.build != nil {
		built, total := m.build.Progress()
		parts = append(parts, fmt.Sprintf("building %d/%d", built, total))
	}
	return b.String() + dimStyle.Render("  "+strings.Join(parts, " · "))
}

// gradientColor returns a hex colour along the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	stops := []colorful.Color{
		{R: 59 / 255.0, G: 130 / 255.0, B: 246 / 255.0},
		{R: 139 / 255.0, G: 92 / 255.0, B: 246 / 255.0},
		{R: 217 / 255.0, G: 70 / 255.0, B: 239 / 255.0},
		{R: 236 / 255.0, G: 72 / 255.0, B: 153 / 255.0},
	}
	if width <= 1 {
		return stops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(stops)-1)
	i := min(int(t), len(stops)-2)
	return stops[i].BlendLuv(stops[i+1], t-float64(i)).Clamped().Hex()
}

func (m Model) renderFooter(th theme.Theme) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[(m.frames/4)%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.loading:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Loading biographies...")
	case m.snapshot.Data != nil:
		stats := m.vis.Stats()
		status = dimStyle.Render(fmt.Sprintf("%d subjects · %d stars · %d arcs · loaded in %s",
			len(m.snapshot.Data.Subjects), stats.Stars, stats.Arcs,
			m.snapshot.LoadDuration.Round(time.Millisecond)))
		if m.snapshot.Skipped > 0 {
			status += errorStyle.Render(fmt.Sprintf(" (%d skipped)", m.snapshot.Skipped))
		}
	default:
		status = dimStyle.Render("No biographies")
	}
	if m.statusMsg != "" {
		status += dimStyle.Render("  " + m.statusMsg)
	}

	return "  " + status + "\n" + m.help.View(keys)
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	pos := (m.frames / 2) % (len(runes) + 8)

	var b strings.Builder
	for i, r := range runes {
		dist := abs(i - pos + 4)

		var hex string
		switch {
		case dist <= 1:
			hex = "#B4A0DC"
		case dist <= 3:
			hex = "#8C78B4"
		case dist <= 5:
			hex = "#6E5A96"
		default:
			hex = "#504678"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r)))
	}
	return b.String()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.vis.Profile().FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	if m.loader == nil {
		return func() tea.Msg { return rebuildMsg{} }
	}
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		return dataLoadedMsg{result: loader.Load(ctx)}
	}
}

// buildStepCmd yields to the event loop between build batches.
func buildStepCmd(gen uint64) tea.Cmd {
	return func() tea.Msg {
		return buildStepMsg{gen: gen}
	}
}
