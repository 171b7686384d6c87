package field

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/windfield/internal/noise"
	"github.com/san-kum/windfield/internal/surface"
	"github.com/san-kum/windfield/internal/visibility"
	"go.uber.org/zap"
)

// State is the play state of an instance.
type State int

const (
	Uninitialized State = iota
	Static
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Static:
		return "static"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "uninitialized"
	}
}

// Host is the drawing loop that calls Tick once per frame while looping.
type Host interface {
	Loop()
	NoLoop()
}

type nopHost struct{}

func (nopHost) Loop()   {}
func (nopHost) NoLoop() {}

// Options configures one instance.
type Options struct {
	ID string

	// Width and Height size the surface. Zero keeps the surface's current
	// size.
	Width, Height float64

	Autoplay bool

	// StrokeColor overrides the tunables color when set.
	StrokeColor string

	// CellSize overrides the base cell size used on wide viewports.
	CellSize float64

	// StartFrame seeds the frame counter. A static instance left at zero
	// draws StaticFrame.
	StartFrame int
}

// StaticFrame is the frame a static instance draws by default.
const StaticFrame = 1

// Deps are the collaborators an instance draws with.
type Deps struct {
	Surface surface.Surface
	Sampler noise.Sampler

	// Host defaults to a loop that ignores Loop and NoLoop.
	Host Host

	// Visibility is required when Autoplay is set.
	Visibility visibility.Provider

	// ViewportWidth selects the responsive cell size tier. Defaults to the
	// surface width.
	ViewportWidth func() float64

	Logger *zap.Logger
}

// Instance is one wind field bound to one surface.
type Instance struct {
	id       string
	tun      Tunables
	surface  surface.Surface
	sampler  noise.Sampler
	host     Host
	provider visibility.Provider
	viewport func() float64
	log      *zap.Logger

	stroke    color.Color
	baseSize  float64
	animating bool

	state    State
	visible  bool
	frame    int
	cellSize float64
	layout   Layout
	segments []Segment
	renders  int

	unsubscribe func()
}

// New validates the configuration and binds an instance to its surface. It
// does not draw; call Start.
func New(tun Tunables, opts Options, deps Deps) (*Instance, error) {
	if err := tun.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.ID, err)
	}
	if deps.Surface == nil {
		return nil, &ConfigError{Instance: opts.ID, Key: "surface", Wrapped: ErrMissingDependency}
	}
	if deps.Sampler == nil {
		return nil, &ConfigError{Instance: opts.ID, Key: "sampler", Wrapped: ErrMissingDependency}
	}
	if opts.Autoplay && deps.Visibility == nil {
		return nil, &ConfigError{Instance: opts.ID, Key: "visibility", Wrapped: ErrMissingDependency}
	}

	strokeHex := tun.StrokeColor
	if opts.StrokeColor != "" {
		strokeHex = opts.StrokeColor
	}
	stroke, err := ParseColor(strokeHex)
	if err != nil {
		return nil, &ConfigError{Instance: opts.ID, Key: "stroke_color", Wrapped: err}
	}

	base := tun.BaseCellSize
	if opts.CellSize != 0 {
		if !(opts.CellSize > 0) || math.IsInf(opts.CellSize, 0) {
			return nil, &ConfigError{Instance: opts.ID, Key: "cell_size", Wrapped: ErrInvalidTunables}
		}
		base = opts.CellSize
	}

	if opts.Width != 0 || opts.Height != 0 {
		if !validExtent(opts.Width) || !validExtent(opts.Height) {
			return nil, &ConfigError{Instance: opts.ID, Key: "size", Wrapped: ErrInvalidSize}
		}
		deps.Surface.Resize(opts.Width, opts.Height)
	}
	if w, h := deps.Surface.Size(); !validExtent(w) || !validExtent(h) {
		return nil, &ConfigError{Instance: opts.ID, Key: "size", Wrapped: ErrInvalidSize}
	}

	inst := &Instance{
		id:        opts.ID,
		tun:       tun,
		surface:   deps.Surface,
		sampler:   deps.Sampler,
		host:      deps.Host,
		provider:  deps.Visibility,
		viewport:  deps.ViewportWidth,
		log:       deps.Logger,
		stroke:    stroke,
		baseSize:  base,
		animating: opts.Autoplay,
		frame:     opts.StartFrame,
	}
	if !opts.Autoplay && inst.frame == 0 {
		inst.frame = StaticFrame
	}
	if inst.host == nil {
		inst.host = nopHost{}
	}
	if inst.log == nil {
		inst.log = zap.NewNop()
	}
	if inst.viewport == nil {
		inst.viewport = func() float64 {
			w, _ := inst.surface.Size()
			return w
		}
	}
	inst.log = inst.log.With(zap.String("instance", opts.ID))
	return inst, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Start renders once and stops for a static instance, or subscribes to
// visibility and waits paused for an animating one. Calling it twice is a
// no-op.
func (in *Instance) Start() {
	if in.state != Uninitialized {
		return
	}

	if !in.animating {
		in.state = Static
		in.render()
		in.host.NoLoop()
		in.log.Debug("rendered static field",
			zap.Int("columns", in.layout.Columns),
			zap.Int("rows", in.layout.Rows))
		return
	}

	in.state = Paused
	in.host.NoLoop()
	in.unsubscribe = in.provider.Subscribe(in.tun.VisibilityThreshold, in.OnVisibility)
	in.log.Debug("field waiting for visibility", zap.Float64("threshold", in.tun.VisibilityThreshold))
}

// OnVisibility moves an animating instance between Paused and Playing.
func (in *Instance) OnVisibility(visible bool) {
	if in.state != Paused && in.state != Playing {
		return
	}
	in.visible = visible

	switch {
	case visible && in.state == Paused:
		in.state = Playing
		in.host.Loop()
	case !visible && in.state == Playing:
		in.state = Paused
		in.host.NoLoop()
	default:
		return
	}
	in.log.Debug("visibility changed", zap.Stringer("state", in.state), zap.Int("frame", in.frame))
}

// Tick is the per-frame callback. It draws only while playing.
func (in *Instance) Tick() {
	if in.state != Playing {
		return
	}
	in.render()
}

// Resize resizes the surface and renders once, whatever the play state.
func (in *Instance) Resize(width, height float64) {
	if !validExtent(width) || !validExtent(height) {
		in.log.Debug("ignoring resize", zap.Float64("width", width), zap.Float64("height", height))
		return
	}
	in.surface.Resize(width, height)
	if in.state == Uninitialized {
		return
	}
	in.render()
}

// Close detaches the visibility subscription.
func (in *Instance) Close() {
	if in.unsubscribe != nil {
		in.unsubscribe()
		in.unsubscribe = nil
	}
}

func (in *Instance) render() {
	in.surface.Clear()

	if in.state == Playing {
		in.frame++
	}

	w, h := in.surface.Size()
	in.cellSize = CellSizeFor(in.viewport(), in.tun, in.baseSize)
	in.layout = ComputeLayout(w, h, in.cellSize)

	in.segments = in.segments[:0]
	for r := 0; r < in.layout.Rows; r++ {
		for c := 0; c < in.layout.Columns; c++ {
			x, y := in.layout.Origin(r, c)
			n := in.tun.Sample(in.sampler, x, y, in.frame)
			in.segments = append(in.segments, in.tun.Segment(x, y, in.layout.CellSize, n))
		}
	}

	in.surface.SetLineCap(surface.CapSquare)
	for _, s := range in.segments {
		in.draw(s)
	}
	in.renders++
}

func (in *Instance) draw(s Segment) {
	cx, cy := s.Center()
	half := s.HalfExtent()

	in.surface.Push()
	in.surface.Translate(cx, cy)
	in.surface.Rotate(s.Angle)
	in.surface.SetStrokeWeight(s.Weight)
	in.surface.SetStrokeColor(in.stroke)
	in.surface.Line(-half, 0, half, 0)
	in.surface.Pop()
}

func (in *Instance) ID() string { return in.id }

func (in *Instance) State() State { return in.state }

// Frame returns the frame counter used by the last render.
func (in *Instance) Frame() int { return in.frame }

func (in *Instance) Visible() bool { return in.visible }

func (in *Instance) Animating() bool { return in.animating }

func (in *Instance) Layout() Layout { return in.layout }

func (in *Instance) CellSize() float64 { return in.cellSize }

// Size is the current surface size.
func (in *Instance) Size() (width, height float64) { return in.surface.Size() }

func (in *Instance) StrokeColor() color.Color { return in.stroke }

// Segments returns the segments of the last render. The slice is reused by
// the next render.
func (in *Instance) Segments() []Segment { return in.segments }

// Renders counts completed render passes.
func (in *Instance) Renders() int { return in.renders }
