// Package state owns the mutable view state of the star map: the time
// window, per-subject visibility, theme, dome and grid toggles, and the
// camera. The Manager is the only writer; everything else reads Snapshots.
package state

import (
	"fmt"
	"maps"
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/celestial"
	"github.com/litescript/ls-stellations/internal/scene"
	"github.com/litescript/ls-stellations/internal/theme"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventDataLoaded      EventType = "DATA_LOADED"
	EventWindowChanged   EventType = "WINDOW_CHANGED"
	EventSubjectToggled  EventType = "SUBJECT_TOGGLED"
	EventCategoryToggled EventType = "CATEGORY_TOGGLED"
	EventThemeChanged    EventType = "THEME_CHANGED"
)

// Event records a user-visible state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject,omitempty"`
	Category  string    `json:"category,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager handles all shared view state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Loaded data
	data         *bio.Dataset
	lastLoad     time.Time
	lastError    error
	loadDuration time.Duration
	skipped      int

	// Filter
	window     scene.TimeWindow
	minYear    int
	maxYear    int
	subjects   map[string]bool
	revision   uint64
	themeName  theme.Name
	domeOn     bool
	domeAlpha  float64
	gridOn     bool
	autoRotate bool

	camera        celestial.Camera
	cameraHome    celestial.Camera
	rotationSpeed float64
	panSpeed      float64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int

	Theme       theme.Name
	DomeVisible bool
	DomeOpacity float64
	GridVisible bool

	CameraDistance float64
	AutoRotate     bool
	// RotationSpeed is radians of yaw per frame while auto-rotating.
	RotationSpeed float64
	// PanSpeed scales manual orbit steps.
	PanSpeed float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:      50,
		Theme:          theme.Dark,
		DomeVisible:    true,
		DomeOpacity:    0.03,
		GridVisible:    true,
		CameraDistance: 30,
		RotationSpeed:  0.001,
		PanSpeed:       1,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.Dark
	}
	if cfg.CameraDistance <= 0 {
		cfg.CameraDistance = 30
	}
	if cfg.PanSpeed <= 0 {
		cfg.PanSpeed = 1
	}

	cam := *celestial.NewCamera(cfg.CameraDistance)
	return &Manager{
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
		subjects:      make(map[string]bool),
		themeName:     cfg.Theme,
		domeOn:        cfg.DomeVisible,
		domeAlpha:     cfg.DomeOpacity,
		gridOn:        cfg.GridVisible,
		autoRotate:    cfg.AutoRotate,
		camera:        cam,
		cameraHome:    cam,
		rotationSpeed: cfg.RotationSpeed,
		panSpeed:      cfg.PanSpeed,
	}
}

// Update records a load result. A successful load replaces the dataset,
// makes every subject visible and opens the window over the whole data
// range. A failed load keeps the previous dataset.
func (m *Manager) Update(res bio.LoadResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLoad = res.LoadedAt
	if m.lastLoad.IsZero() {
		m.lastLoad = time.Now()
	}
	m.lastError = res.Error
	m.loadDuration = res.Duration
	m.skipped = len(res.Skipped)

	if res.Data == nil {
		return
	}

	m.data = res.Data
	m.subjects = make(map[string]bool, len(res.Data.Subjects))
	for _, s := range res.Data.Subjects {
		m.subjects[s.ID] = true
	}
	if lo, hi, ok := res.Data.YearRange(); ok {
		m.minYear, m.maxYear = lo, hi
		m.window = scene.TimeWindow{Start: lo, End: hi}
	}
	m.revision++

	m.addEvent(Event{Type: EventDataLoaded, Timestamp: time.Now(), Detail: res.Data.Source})
}

// SetStartYear moves the window start. If it passes the end, the end is
// pushed along with it.
func (m *Manager) SetStartYear(year int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.window.Start = year
	if m.window.Start > m.window.End {
		m.window.End = m.window.Start
	}
	m.windowChanged()
}

// SetEndYear moves the window end. If it passes the start, the start is
// pushed along with it.
func (m *Manager) SetEndYear(year int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.window.End = year
	if m.window.End < m.window.Start {
		m.window.Start = m.window.End
	}
	m.windowChanged()
}

// StepStartYear moves the start by delta years.
func (m *Manager) StepStartYear(delta int) {
	m.SetStartYear(m.Window().Start + delta)
}

// StepEndYear moves the end by delta years.
func (m *Manager) StepEndYear(delta int) {
	m.SetEndYear(m.Window().End + delta)
}

// SetWindow sets both bounds. An inverted pair collapses onto start.
func (m *Manager) SetWindow(start, end int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if end < start {
		end = start
	}
	m.window = scene.TimeWindow{Start: start, End: end}
	m.windowChanged()
}

func (m *Manager) windowChanged() {
	m.revision++
	m.addEvent(Event{
		Type:      EventWindowChanged,
		Timestamp: time.Now(),
		Detail:    yearSpan(m.window),
	})
}

// Window returns the current time window.
func (m *Manager) Window() scene.TimeWindow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.window
}

// SetSubjectVisible shows or hides one subject.
func (m *Manager) SetSubjectVisible(id string, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subjects[id] == visible {
		return
	}
	m.subjects[id] = visible
	m.revision++
	m.addEvent(Event{Type: EventSubjectToggled, Timestamp: time.Now(), Subject: id, Detail: onOff(visible)})
}

// ToggleSubject flips one subject and returns its new visibility.
func (m *Manager) ToggleSubject(id string) bool {
	m.mu.RLock()
	visible := !m.subjects[id]
	m.mu.RUnlock()

	m.SetSubjectVisible(id, visible)
	return visible
}

// ToggleCategory shows every subject in the category unless all of them
// are already visible, in which case it hides them all. It returns the new
// visibility.
func (m *Manager) ToggleCategory(category string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.data.SubjectIDs(category)
	if len(ids) == 0 {
		return false
	}
	all := true
	for _, id := range ids {
		if !m.subjects[id] {
			all = false
			break
		}
	}
	visible := !all
	for _, id := range ids {
		m.subjects[id] = visible
	}
	m.revision++
	m.addEvent(Event{Type: EventCategoryToggled, Timestamp: time.Now(), Category: category, Detail: onOff(visible)})
	return visible
}

// SetAllVisible shows or hides every loaded subject.
func (m *Manager) SetAllVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subjects {
		m.subjects[id] = visible
	}
	m.revision++
	m.addEvent(Event{Type: EventCategoryToggled, Timestamp: time.Now(), Detail: "all " + onOff(visible)})
}

// SubjectVisible reports one subject's flag. Unknown subjects are hidden.
func (m *Manager) SubjectVisible(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subjects[id]
}

// SetTheme switches colour scheme.
func (m *Manager) SetTheme(name theme.Name) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.themeName == name {
		return
	}
	m.themeName = name
	m.addEvent(Event{Type: EventThemeChanged, Timestamp: time.Now(), Detail: string(name)})
}

// ToggleTheme flips between dark and light and returns the new theme.
func (m *Manager) ToggleTheme() theme.Name {
	m.mu.RLock()
	next := m.themeName.Toggle()
	m.mu.RUnlock()

	m.SetTheme(next)
	return next
}

// ToggleDome flips dome visibility.
func (m *Manager) ToggleDome() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domeOn = !m.domeOn
	return m.domeOn
}

// SetDomeOpacity sets the dome opacity, clamped to [0, 1].
func (m *Manager) SetDomeOpacity(alpha float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domeAlpha = math.Min(math.Max(alpha, 0), 1)
}

// ToggleGrid flips grid visibility.
func (m *Manager) ToggleGrid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gridOn = !m.gridOn
	return m.gridOn
}

// ToggleAutoRotate flips auto-rotation.
func (m *Manager) ToggleAutoRotate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoRotate = !m.autoRotate
	return m.autoRotate
}

// OrbitCamera rotates the camera by degrees, scaled by the pan speed.
func (m *Manager) OrbitCamera(dYaw, dPitch float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera.Orbit(dYaw*m.panSpeed, dPitch*m.panSpeed)
}

// ZoomCamera scales the camera distance.
func (m *Manager) ZoomCamera(factor float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera.Zoom(factor)
}

// SetAspect updates the camera aspect ratio.
func (m *Manager) SetAspect(aspect float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera.SetAspect(aspect)
	m.cameraHome.SetAspect(aspect)
}

// ResetCamera returns the camera to its starting pose.
func (m *Manager) ResetCamera() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = m.cameraHome
}

// AdvanceRotation applies frames worth of auto-rotation. It is a no-op
// while auto-rotation is off.
func (m *Manager) AdvanceRotation(frames int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoRotate || frames <= 0 {
		return
	}
	m.camera.Orbit(float64(frames)*m.rotationSpeed*180/math.Pi, 0)
}

func yearSpan(w scene.TimeWindow) string {
	return fmt.Sprintf("%d-%d", w.Start, w.End)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Data         *bio.Dataset
	LastLoad     time.Time
	LastError    error
	LoadDuration time.Duration
	Skipped      int

	Window         scene.TimeWindow
	MinYear        int
	MaxYear        int
	SubjectVisible map[string]bool
	// Revision changes whenever the window or subject visibility does.
	Revision uint64

	Theme       theme.Name
	DomeVisible bool
	DomeOpacity float64
	GridVisible bool
	AutoRotate  bool
	Camera      celestial.Camera

	Events []Event
}

// Filter returns the filter inputs captured by the snapshot.
func (s Snapshot) Filter() scene.FilterState {
	return scene.FilterState{Window: s.Window, SubjectVisible: s.SubjectVisible}
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Data:           m.data,
		LastLoad:       m.lastLoad,
		LastError:      m.lastError,
		LoadDuration:   m.loadDuration,
		Skipped:        m.skipped,
		Window:         m.window,
		MinYear:        m.minYear,
		MaxYear:        m.maxYear,
		SubjectVisible: maps.Clone(m.subjects),
		Revision:       m.revision,
		Theme:          m.themeName,
		DomeVisible:    m.domeOn,
		DomeOpacity:    m.domeAlpha,
		GridVisible:    m.gridOn,
		AutoRotate:     m.autoRotate,
		Camera:         m.camera,
		Events:         m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasData returns true once a dataset has been loaded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil
}
