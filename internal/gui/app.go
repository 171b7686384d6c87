// Package gui shows a wind field in a native window.
package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/loop"
	"github.com/san-kum/windfield/internal/noise"
	"github.com/san-kum/windfield/internal/visibility"
	"go.uber.org/zap"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	Tunables field.Tunables
	Sampler  noise.Sampler
	Instance field.Options

	Width, Height int32
	FPS           int
	Background    color.Color
	ShowHUD       bool

	Logger *zap.Logger
}

type App struct {
	opts   Options
	inst   *field.Instance
	surf   *Surface
	obs    *visibility.Observer
	ticker *loop.Ticker
	paused bool
	log    *zap.Logger
}

func initWindow(width, height int32, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "windfield")
	rl.SetTargetFPS(int32(fps))
}

// NewApp mounts the field on a window-sized texture. The window must be
// open.
func NewApp(opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Background == nil {
		opts.Background = color.NRGBA{R: ColBg.R, G: ColBg.G, B: ColBg.B, A: ColBg.A}
	}

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	window := visibility.Rect{W: float64(w), H: float64(h)}

	a := &App{
		opts:   opts,
		surf:   NewSurface(w, h, opts.Background),
		obs:    visibility.NewObserver(window, window),
		ticker: loop.NewTicker(opts.FPS),
		log:    opts.Logger,
	}

	instOpts := opts.Instance
	instOpts.Width, instOpts.Height = float64(w), float64(h)

	a.surf.Begin()
	inst, err := field.New(opts.Tunables, instOpts, field.Deps{
		Surface:    a.surf,
		Sampler:    opts.Sampler,
		Host:       a.ticker,
		Visibility: a.obs,
		ViewportWidth: func() float64 {
			return float64(rl.GetScreenWidth())
		},
		Logger: opts.Logger,
	})
	if err == nil {
		inst.Start()
	}
	a.surf.End()
	if err != nil {
		a.surf.Unload()
		return nil, err
	}

	a.inst = inst
	a.ticker.SetDraw(inst.Tick)
	return a, nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w > 0 && h > 0 {
			a.surf.Resize(float64(w), float64(h))
			a.surf.Begin()
			a.inst.Resize(float64(w), float64(h))
			a.surf.End()

			window := visibility.Rect{W: float64(w), H: float64(h)}
			a.obs.SetTarget(window)
			a.obs.SetViewport(window)
			a.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		}
	}

	shown := !rl.IsWindowMinimized() && !rl.IsWindowHidden()
	a.obs.SetFocused(shown && !a.paused)

	a.surf.Begin()
	a.ticker.Step()
	a.surf.End()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.surf.Present()
	if a.opts.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	status := "PLAYING"
	col := ColText
	if a.inst.State() != field.Playing {
		status = a.inst.State().String()
		col = ColTextDim
	}
	l := a.inst.Layout()
	rl.DrawText(fmt.Sprintf("%s  frame %d  %dx%d cells", status, a.inst.Frame(), l.Columns, l.Rows), 20, 20, 16, col)
	rl.DrawText("[SPACE] PAUSE  [ESC] QUIT", 20, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
}

func (a *App) Close() {
	a.inst.Close()
	a.surf.Unload()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = loop.DefaultFPS
	}
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}
