package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StartEarlier key.Binding
	StartLater   key.Binding
	EndEarlier   key.Binding
	EndLater     key.Binding

	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Category key.Binding
	All      key.Binding

	OrbitLeft  key.Binding
	OrbitRight key.Binding
	OrbitUp    key.Binding
	OrbitDown  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Reset      key.Binding
	Rotate     key.Binding

	Theme     key.Binding
	Grid      key.Binding
	Dome      key.Binding
	DomeFaint key.Binding
	DomeDense key.Binding
	Labels    key.Binding

	Rebuild key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartEarlier, k.EndEarlier, k.Toggle, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartEarlier, k.StartLater, k.EndEarlier, k.EndLater},
		{k.Up, k.Down, k.Toggle, k.Category, k.All},
		{k.OrbitLeft, k.OrbitUp, k.ZoomIn, k.ZoomOut, k.Reset, k.Rotate},
		{k.Theme, k.Grid, k.Dome, k.DomeFaint, k.Labels},
		{k.Rebuild, k.Dismiss, k.Help, k.Quit},
	}
}

var keys = keyMap{
	StartEarlier: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "start year")),
	StartLater:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "start +1")),
	EndEarlier:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "end year")),
	EndLater:     key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "end +1")),

	Up:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "down")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "toggle")),
	Category: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "category")),
	All:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "all")),

	OrbitLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "orbit")),
	OrbitRight: key.NewBinding(key.WithKeys("right", "l")),
	OrbitUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "tilt")),
	OrbitDown:  key.NewBinding(key.WithKeys("down")),
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	Reset:      key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
	Rotate:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "auto-rotate")),

	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
	Dome:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dome")),
	DomeFaint: key.NewBinding(key.WithKeys(","), key.WithHelp(",/.", "dome opacity")),
	DomeDense: key.NewBinding(key.WithKeys(".")),
	Labels:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "labels")),

	Rebuild: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rebuild")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
