package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/loop"
	"github.com/san-kum/windfield/internal/noise"
	"github.com/san-kum/windfield/internal/surface"
	"github.com/san-kum/windfield/internal/visibility"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// status line and help line
	chromeRows = 2

	sparkCapacity = 240
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	Tunables field.Tunables
	Sampler  noise.Sampler
	Instance field.Options

	// Presets are cycled with the preset key. Lookup resolves a name.
	Presets []string
	Lookup  func(name string) *field.Tunables

	// ContainerRows is the field height in terminal rows. Above and Below
	// are filler rows around it.
	ContainerRows int
	Above, Below  int

	// Scale is surface pixels per braille dot.
	Scale float64
	FPS   int
	Theme string

	Logger *zap.Logger
}

func (o *Options) defaults() {
	if o.ContainerRows <= 0 {
		o.ContainerRows = 12
	}
	if o.Above < 0 {
		o.Above = 0
	}
	if o.Below < 0 {
		o.Below = 0
	}
	if o.Scale <= 0 {
		o.Scale = 4
	}
	if o.FPS <= 0 {
		o.FPS = loop.DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Model is a scrollable page holding one wind field.
type Model struct {
	opts   Options
	tun    field.Tunables
	preset string

	inst   *field.Instance
	canvas *surface.Braille
	obs    *visibility.Observer
	ticker *loop.Ticker

	width, height int
	scroll        int

	theme  Theme
	styles styles
	keys   keyMap
	help   help.Model

	spark []float64
	err   error
	log   *zap.Logger
}

// NewModel mounts the field and positions the page at the top.
func NewModel(opts Options) (*Model, error) {
	opts.defaults()

	m := &Model{
		opts:   opts,
		tun:    opts.Tunables,
		width:  defaultWidth,
		height: defaultHeight,
		canvas: surface.NewBraille(defaultWidth, opts.ContainerRows, opts.Scale),
		ticker: loop.NewTicker(opts.FPS),
		theme:  GetTheme(opts.Theme),
		keys:   defaultKeys(),
		help:   help.New(),
		log:    opts.Logger,
	}
	m.styles = newStyles(m.theme)
	m.obs = visibility.NewObserver(m.containerRect(), m.viewportRect())
	m.ticker.SetDraw(m.draw)

	inst, err := m.mount(m.tun)
	if err != nil {
		return nil, err
	}
	m.inst = inst
	return m, nil
}

func (m *Model) mount(tun field.Tunables) (*field.Instance, error) {
	w, h := m.canvas.Size()
	opts := m.opts.Instance
	opts.Width, opts.Height = w, h

	inst, err := field.New(tun, opts, field.Deps{
		Surface:    m.canvas,
		Sampler:    m.opts.Sampler,
		Host:       m.ticker,
		Visibility: m.obs,
		ViewportWidth: func() float64 {
			w, _ := m.canvas.Size()
			return w
		},
		Logger: m.log,
	})
	if err != nil {
		return nil, err
	}
	inst.Start()
	return inst, nil
}

func (m *Model) draw() {
	m.inst.Tick()
	if segs := m.inst.Segments(); len(segs) > 0 {
		m.spark = append(m.spark, segs[len(segs)/2].Noise)
		if len(m.spark) > sparkCapacity {
			m.spark = m.spark[len(m.spark)-sparkCapacity:]
		}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) viewRows() int {
	return max(m.height-chromeRows, 1)
}

func (m *Model) pageRows() int {
	return m.opts.Above + m.opts.ContainerRows + m.opts.Below
}

func (m *Model) maxScroll() int {
	return max(m.pageRows()-m.viewRows(), 0)
}

func (m *Model) containerRect() visibility.Rect {
	return visibility.Rect{
		Y: float64(m.opts.Above),
		W: float64(m.width),
		H: float64(m.opts.ContainerRows),
	}
}

func (m *Model) viewportRect() visibility.Rect {
	return visibility.Rect{
		Y: float64(m.scroll),
		W: float64(m.width),
		H: float64(m.viewRows()),
	}
}

func (m *Model) scrollTo(row int) {
	m.scroll = min(max(row, 0), m.maxScroll())
	m.obs.SetViewport(m.viewportRect())
}

func (m *Model) resize(width, height int) {
	m.width, m.height = max(width, 1), max(height, chromeRows+1)
	m.help.Width = m.width

	m.inst.Resize(float64(m.width)*2*m.opts.Scale, float64(m.opts.ContainerRows)*4*m.opts.Scale)
	m.obs.SetTarget(m.containerRect())
	m.scrollTo(m.scroll)
}

func (m *Model) nextPreset() {
	if len(m.opts.Presets) == 0 || m.opts.Lookup == nil {
		return
	}
	idx := 0
	for i, name := range m.opts.Presets {
		if name == m.preset {
			idx = (i + 1) % len(m.opts.Presets)
			break
		}
	}
	name := m.opts.Presets[idx]
	tun := m.opts.Lookup(name)
	if tun == nil {
		return
	}

	// The current field keeps running until the preset mounts.
	inst, err := m.mount(*tun)
	if err != nil {
		m.err = err
		m.log.Warn("preset rejected", zap.String("preset", name), zap.Error(err))
		return
	}
	m.inst.Close()
	m.inst, m.tun, m.preset, m.err = inst, *tun, name, nil
	m.spark = m.spark[:0]
	m.log.Info("preset changed", zap.String("preset", name))
}

// Update handles input, focus and frame ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.inst.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.scroll - 1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.scroll + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollTo(m.scroll - m.viewRows()/2)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollTo(m.scroll + m.viewRows()/2)
		case key.Matches(msg, m.keys.Top):
			m.scrollTo(0)
		case key.Matches(msg, m.keys.Bottom):
			m.scrollTo(m.maxScroll())
		case key.Matches(msg, m.keys.Preset):
			m.nextPreset()
		case key.Matches(msg, m.keys.Theme):
			m.theme = next(m.theme.Name)
			m.styles = newStyles(m.theme)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.FocusMsg:
		m.obs.SetFocused(true)
	case tea.BlurMsg:
		m.obs.SetFocused(false)
	case TickMsg:
		m.ticker.Step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var sb strings.Builder

	lines := m.canvas.Lines()
	rows := m.viewRows()
	if m.help.ShowAll {
		rows = max(rows-len(m.keys.FullHelp())+1, 1)
	}
	for r := m.scroll; r < m.scroll+rows; r++ {
		switch {
		case r >= m.opts.Above && r < m.opts.Above+len(lines):
			sb.WriteString(lines[r-m.opts.Above])
		case r < m.pageRows():
			sb.WriteString(m.filler(r))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(m.status())
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m *Model) filler(row int) string {
	switch {
	case row == m.opts.Above-1 || row == m.opts.Above+m.opts.ContainerRows:
		return Separator(m.width, m.styles.filler)
	case row%4 == 0:
		return m.styles.filler.Render(strings.Repeat("· ", m.width/2))
	default:
		return ""
	}
}

func (m *Model) status() string {
	state := m.inst.State()
	stateStyle := m.styles.statusPaused
	if state == field.Playing {
		stateStyle = m.styles.statusPlaying
	}

	preset := m.preset
	if preset == "" {
		preset = "custom"
	}

	parts := []string{
		stateStyle.Render(fmt.Sprintf("%-8s", state)),
		m.styles.label.Render("frame ") + m.styles.value.Render(fmt.Sprintf("%d", m.inst.Frame())),
		m.styles.label.Render("visible ") + m.styles.value.Render(ProgressBar(m.obs.Ratio(), 10)),
		m.styles.label.Render("preset ") + m.styles.value.Render(preset),
		m.styles.spark.Render(Sparkline(m.spark, -1, 1, 16)),
	}
	if m.err != nil {
		parts = append(parts, m.styles.statusPaused.Render(m.err.Error()))
	}
	return strings.Join(parts, "  ")
}

// Instance is the field currently shown.
func (m *Model) Instance() *field.Instance { return m.inst }

func (m *Model) Scroll() int { return m.scroll }

// Run starts the live view on the terminal.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
