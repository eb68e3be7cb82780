package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/state"
	"github.com/litescript/ls-stellations/internal/theme"
	"github.com/litescript/ls-stellations/internal/tooltip"
)

// testDataset has subject A's 1910 event straight ahead of the default
// camera, so it lands in the middle of the sphere view.
func testDataset() *bio.Dataset {
	return &bio.Dataset{
		Source: "test",
		Subjects: []bio.Subject{
			{ID: "A", Category: "Famous", Events: []bio.Event{
				{Year: 1900, Lat: 20, Lon: 60, Info: "Born"},
				{Year: 1910, Lat: 0, Lon: 90, Info: "Moved"},
				{Year: 1920, Lat: -20, Lon: 120, Info: "Died"},
			}},
			{ID: "B", Category: "Famous", Events: []bio.Event{
				{Year: 1905, Lat: 45, Lon: -30, Info: "Born"},
				{Year: 1915, Lat: 50, Lon: -10, Info: "Moved"},
			}},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func newTestModel(tt *tooltip.Coordinator) Model {
	return New(Options{
		State:   state.NewManager(state.DefaultConfig()),
		Vis:     scene.New(scene.Options{Seed: 1, HitScale: CellHitScale}),
		Tooltip: tt,
	})
}

// loadedModel sizes the model to 100x30, delivers the test dataset and
// runs the build to completion. The sphere view is then 67x26.
func loadedModel(t *testing.T, tt *tooltip.Coordinator) Model {
	t.Helper()
	m := newTestModel(tt)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, dataLoadedMsg{result: bio.LoadResult{Data: testDataset()}})
	for i := 0; m.build != nil; i++ {
		if i > 10 {
			t.Fatal("build did not finish")
		}
		m, _ = update(t, m, buildStepMsg{gen: m.build.Generation()})
	}
	return m
}

func checkFilterConsistent(t *testing.T, m Model) {
	t.Helper()
	f := m.snapshot.Filter()
	for _, s := range m.vis.Stars() {
		if want := f.StarVisible(s.SubjectID, s.Year); s.Visible != want {
			t.Errorf("star %s %d visible = %v, want %v", s.SubjectID, s.Year, s.Visible, want)
		}
	}
	for _, a := range m.vis.Arcs() {
		if want := f.ArcVisible(a.SubjectID, a.StartYear, a.EndYear); a.Visible != want {
			t.Errorf("arc %s %d-%d visible = %v, want %v", a.SubjectID, a.StartYear, a.EndYear, a.Visible, want)
		}
	}
}

func TestModel_LoadAndBuild(t *testing.T) {
	m := loadedModel(t, nil)

	stats := m.vis.Stats()
	if stats.Stars != 5 || stats.Arcs != 3 {
		t.Errorf("built %d stars and %d arcs, want 5 and 3", stats.Stars, stats.Arcs)
	}
	if m.snapshot.Window != (scene.TimeWindow{Start: 1900, End: 1920}) {
		t.Errorf("window = %+v, want the full data range", m.snapshot.Window)
	}
	if m.sphere.width != 67 || m.sphere.height != 26 {
		t.Errorf("sphere view = %dx%d, want 67x26", m.sphere.width, m.sphere.height)
	}
	checkFilterConsistent(t, m)
}

func TestModel_WindowKeys(t *testing.T) {
	m := loadedModel(t, nil)

	m, _ = update(t, m, keyMsg("]"))
	if m.snapshot.Window.Start != 1901 {
		t.Fatalf("start = %d, want 1901", m.snapshot.Window.Start)
	}
	checkFilterConsistent(t, m)

	for _, s := range m.vis.Stars() {
		if s.Year == 1900 && s.Visible {
			t.Error("1900 star should be hidden once the window starts at 1901")
		}
	}

	m, _ = update(t, m, keyMsg("{"))
	if m.snapshot.Window.End != 1919 {
		t.Errorf("end = %d, want 1919", m.snapshot.Window.End)
	}
	checkFilterConsistent(t, m)
}

func TestModel_PanelToggle(t *testing.T) {
	m := loadedModel(t, nil)

	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg(" "))

	if m.snapshot.SubjectVisible["A"] {
		t.Fatal("subject A should be hidden after toggling")
	}
	for _, s := range m.vis.Stars() {
		if s.SubjectID == "A" && s.Visible {
			t.Errorf("star A %d still visible", s.Year)
		}
	}
	checkFilterConsistent(t, m)

	// The category header toggles both subjects back on.
	m, _ = update(t, m, keyMsg("k"))
	m, _ = update(t, m, keyMsg(" "))
	if !m.snapshot.SubjectVisible["A"] || !m.snapshot.SubjectVisible["B"] {
		t.Errorf("category toggle should show every subject, got %v", m.snapshot.SubjectVisible)
	}
}

func TestModel_ThemeSwitchRerendersLabels(t *testing.T) {
	m := loadedModel(t, nil)

	m, _ = update(t, m, keyMsg("t"))
	if m.snapshot.Theme != theme.Light {
		t.Fatalf("theme = %s, want light", m.snapshot.Theme)
	}
	for _, s := range m.vis.Stars() {
		if s.Label.Sprite.Theme != theme.Light {
			t.Errorf("label %q still rendered for %s", s.Label.Text, s.Label.Sprite.Theme)
		}
	}
}

func TestModel_PointerTooltip(t *testing.T) {
	m := loadedModel(t, nil)

	// Column 33 and row 13 of the sphere view; the header takes row 0.
	m, _ = update(t, m, tea.MouseMsg{X: 33, Y: 14, Action: tea.MouseActionMotion})
	if !m.tip.Visible() {
		t.Fatal("hovering the centre star should show the tooltip")
	}
	if c := m.tip.Content(); c.Name != "A" || c.Year != 1910 {
		t.Errorf("tooltip content = %+v", c)
	}
	if m.hovered == nil || m.hovered.Year != 1910 {
		t.Error("hovered star should be tracked")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})
	if m.tip.Visible() || m.hovered != nil {
		t.Error("moving off the star should hide the tooltip")
	}
}

func TestModel_TouchTooltip(t *testing.T) {
	m := loadedModel(t, tooltip.NewCoordinator(tooltip.ModeTouch, tooltip.CellPlacement()))

	m, _ = update(t, m, tea.MouseMsg{X: 33, Y: 14, Action: tea.MouseActionMotion})
	if m.tip.Visible() {
		t.Fatal("touch mode should ignore motion")
	}

	press := tea.MouseMsg{X: 33, Y: 14, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, press)
	if !m.tip.Visible() {
		t.Fatal("tapping a star should show the tooltip")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.tip.Visible() {
		t.Error("a missed tap should keep the tooltip in touch mode")
	}

	m, _ = update(t, m, keyMsg("esc"))
	if m.tip.Visible() {
		t.Error("esc should dismiss the tooltip")
	}
}

func TestModel_StaleBuildStepIgnored(t *testing.T) {
	m := loadedModel(t, nil)

	m, cmd := update(t, m, keyMsg("R"))
	if m.build == nil || cmd == nil {
		t.Fatal("rebuild should start a build")
	}
	current := m.build.Generation()

	m, _ = update(t, m, buildStepMsg{gen: current - 1})
	if m.build == nil {
		t.Fatal("stale step should not finish the current build")
	}
	if built, _ := m.build.Progress(); built != 0 {
		t.Errorf("stale step built %d subjects", built)
	}
	if n := m.vis.Stats().Stars; n != 0 {
		t.Errorf("stars = %d before the current build steps", n)
	}

	m, _ = update(t, m, buildStepMsg{gen: current})
	if m.build != nil {
		t.Error("current step should finish the build")
	}
	if n := m.vis.Stats().Stars; n != 5 {
		t.Errorf("stars = %d after rebuild, want 5", n)
	}
	checkFilterConsistent(t, m)
}

func TestModel_AutoRotate(t *testing.T) {
	m := loadedModel(t, nil)
	yaw := m.snapshot.Camera.Yaw

	m, _ = update(t, m, keyMsg("r"))
	if !m.snapshot.AutoRotate {
		t.Fatal("r should enable auto-rotation")
	}
	m, cmd := update(t, m, frameMsg{})
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	if m.snapshot.Camera.Yaw == yaw {
		t.Error("rendered frame should advance the camera yaw")
	}
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t, nil)

	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.vis.Phase() != scene.PhaseDisposed {
		t.Errorf("phase = %s, want disposed", m.vis.Phase())
	}
}

func TestModel_View(t *testing.T) {
	if got := newTestModel(nil).View(); got != "Initializing..." {
		t.Errorf("unsized view = %q", got)
	}

	m := loadedModel(t, nil)
	out := m.View()
	for _, want := range []string{"ls-stellations", "Subjects 2/2", "window 1900–1920", "2 subjects"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
