package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/state"
	"github.com/litescript/ls-stellations/internal/theme"
)

func panelDataset() *bio.Dataset {
	return &bio.Dataset{Subjects: []bio.Subject{
		{ID: "Albert Einstein", Nickname: "Einstein", Category: "Famous"},
		{ID: "Anna Weiss", Category: "Centropa"},
		{ID: "Marie Curie", Category: "Famous"},
	}}
}

func TestNewSubjectsPanel_Rows(t *testing.T) {
	p := newSubjectsPanel(panelDataset())

	want := []struct {
		category, subject string
	}{
		{"Famous", ""},
		{"Famous", "Albert Einstein"},
		{"Famous", "Marie Curie"},
		{"Centropa", ""},
		{"Centropa", "Anna Weiss"},
	}
	if len(p.rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(p.rows), len(want))
	}
	for i, w := range want {
		r := p.rows[i]
		if r.category != w.category || r.subject != w.subject {
			t.Errorf("row %d = %s/%s, want %s/%s", i, r.category, r.subject, w.category, w.subject)
		}
	}
	if p.rows[1].name != "Einstein" {
		t.Errorf("subject rows use the display name, got %q", p.rows[1].name)
	}
	if p.rows[2].index != 2 {
		t.Errorf("swatch index = %d, want dataset position 2", p.rows[2].index)
	}

	if empty := newSubjectsPanel(nil); len(empty.rows) != 0 {
		t.Error("nil dataset should give an empty panel")
	}
}

func TestSubjectsPanel_MoveClampsAndScrolls(t *testing.T) {
	p := newSubjectsPanel(panelDataset()).setSize(32, 7) // two list rows

	p = p.move(-3)
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want 0", p.cursor)
	}
	p = p.move(10)
	if p.cursor != 4 {
		t.Errorf("cursor = %d, want 4", p.cursor)
	}
	if p.offset != 3 {
		t.Errorf("offset = %d, want 3 to keep the cursor in view", p.offset)
	}
	p = p.move(-4)
	if p.offset != 0 {
		t.Errorf("offset = %d, want 0 after moving back to the top", p.offset)
	}

	r, ok := p.selected()
	if !ok || !r.isCategory() || r.category != "Famous" {
		t.Errorf("selected = %+v, %v", r, ok)
	}
}

func TestSubjectsPanel_View(t *testing.T) {
	p := newSubjectsPanel(panelDataset()).setSize(32, 20)
	snap := state.Snapshot{
		SubjectVisible: map[string]bool{"Albert Einstein": true},
		Events: []state.Event{
			{Type: state.EventSubjectToggled, Timestamp: time.Now(), Subject: "Marie Curie", Detail: "off"},
		},
	}

	out := p.view(snap, theme.DarkTheme())
	for _, want := range []string{"Subjects 1/3", "Famous 1/2", "Centropa 0/1", "[x]", "[ ]", "Einstein", "Marie Curie off"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}

	empty := newSubjectsPanel(nil).setSize(32, 10)
	if out := empty.view(state.Snapshot{}, theme.DarkTheme()); !strings.Contains(out, "No subjects loaded") {
		t.Errorf("empty panel = %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"much longer name", 8, "much lo…"},
		{"Schrödinger", 5, "Schr…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
