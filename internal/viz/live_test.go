package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/noise"
)

func newTestModel(t *testing.T, autoplay bool) *Model {
	t.Helper()
	calm := field.DefaultTunables()
	calm.RotationFactor = 0.25

	m, err := NewModel(Options{
		Tunables:      field.DefaultTunables(),
		Sampler:       noise.NewSimplex(3),
		Instance:      field.Options{ID: "live", Autoplay: autoplay},
		Presets:       []string{"calm"},
		Lookup:        func(string) *field.Tunables { c := calm; return &c },
		ContainerRows: 10,
		Above:         30,
		Below:         30,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *Model, k tea.KeyType, n int) {
	for i := 0; i < n; i++ {
		m.Update(tea.KeyMsg{Type: k})
	}
}

func TestLiveStartsPausedOffScreen(t *testing.T) {
	m := newTestModel(t, true)

	if got := m.Instance().State(); got != field.Paused {
		t.Fatalf("state = %s, want paused", got)
	}
	m.Update(TickMsg(time.Now()))
	if m.Instance().Renders() != 1 {
		t.Errorf("renders = %d, want only the resize render", m.Instance().Renders())
	}
}

func TestLiveScrollPlaysAndPauses(t *testing.T) {
	m := newTestModel(t, true)

	// Viewport is 22 rows; scrolling 20 rows shows the container from row 30.
	press(m, tea.KeyDown, 20)
	if got := m.Instance().State(); got != field.Playing {
		t.Fatalf("state after scroll = %s, want playing", got)
	}

	m.Update(TickMsg(time.Now()))
	m.Update(TickMsg(time.Now()))
	if m.Instance().Frame() != 2 {
		t.Errorf("frame = %d, want 2", m.Instance().Frame())
	}

	m.Update(tea.BlurMsg{})
	if got := m.Instance().State(); got != field.Paused {
		t.Errorf("state after blur = %s, want paused", got)
	}
	m.Update(TickMsg(time.Now()))
	if m.Instance().Frame() != 2 {
		t.Errorf("frame advanced while blurred: %d", m.Instance().Frame())
	}

	m.Update(tea.FocusMsg{})
	if got := m.Instance().State(); got != field.Playing {
		t.Errorf("state after focus = %s, want playing", got)
	}

	press(m, tea.KeyHome, 1)
	if m.Scroll() != 0 {
		t.Errorf("scroll = %d, want 0", m.Scroll())
	}
	if got := m.Instance().State(); got != field.Paused {
		t.Errorf("state at top = %s, want paused", got)
	}
}

func TestLiveScrollClamps(t *testing.T) {
	m := newTestModel(t, true)

	press(m, tea.KeyUp, 3)
	if m.Scroll() != 0 {
		t.Errorf("scroll = %d, want 0", m.Scroll())
	}
	press(m, tea.KeyEnd, 1)
	if want := 70 - 22; m.Scroll() != want {
		t.Errorf("scroll = %d, want %d", m.Scroll(), want)
	}
}

func TestLiveStaticNeverTicks(t *testing.T) {
	m := newTestModel(t, false)
	press(m, tea.KeyDown, 20)

	before := m.Instance().Renders()
	for i := 0; i < 5; i++ {
		m.Update(TickMsg(time.Now()))
	}
	if m.Instance().State() != field.Static || m.Instance().Renders() != before {
		t.Errorf("static field redrawn: state %s renders %d", m.Instance().State(), m.Instance().Renders())
	}
}

func TestLivePresetSwitch(t *testing.T) {
	m := newTestModel(t, true)
	press(m, tea.KeyDown, 20)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.tun.RotationFactor != 0.25 {
		t.Errorf("rotation = %f, want 0.25", m.tun.RotationFactor)
	}
	if got := m.Instance().State(); got != field.Playing {
		t.Errorf("state after preset = %s, want playing", got)
	}
	if m.obs.Subscribers() != 1 {
		t.Errorf("subscribers = %d, want 1", m.obs.Subscribers())
	}
}

func TestLiveBadPresetKeepsField(t *testing.T) {
	m := newTestModel(t, true)
	m.opts.Presets = []string{"broken"}
	m.opts.Lookup = func(string) *field.Tunables {
		bad := field.DefaultTunables()
		bad.StrokeColor = "not-a-color"
		return &bad
	}
	press(m, tea.KeyDown, 20)
	before := m.Instance()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.err == nil {
		t.Fatal("expected preset error")
	}
	if m.Instance() != before {
		t.Error("field replaced by a rejected preset")
	}
	if got := m.Instance().State(); got != field.Playing {
		t.Errorf("state = %s, want playing", got)
	}
	if m.obs.Subscribers() != 1 {
		t.Errorf("subscribers = %d, want 1", m.obs.Subscribers())
	}

	m.Update(TickMsg(time.Now()))
	if m.Instance().Frame() != 1 {
		t.Errorf("frame = %d, want 1", m.Instance().Frame())
	}
	if !strings.Contains(m.View(), "invalid") {
		t.Error("status does not show the preset error")
	}
}

func TestLiveView(t *testing.T) {
	m := newTestModel(t, true)
	press(m, tea.KeyDown, 20)
	m.Update(TickMsg(time.Now()))

	view := m.View()
	if !strings.Contains(view, "playing") {
		t.Errorf("status missing state:\n%s", view)
	}
	if !strings.ContainsRune(view, '⠀') && !strings.ContainsAny(view, "⠁⠂⠄⡀⢀") {
		t.Errorf("no braille in view")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, true)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
