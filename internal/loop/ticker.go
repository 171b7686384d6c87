// Package loop is a headless drawing loop for field instances.
//
// All work runs on the goroutine that calls [Ticker.Run]: frame callbacks,
// and any event handed over with [Ticker.Post]. Nothing else needs locking.
package loop

import (
	"context"
	"time"
)

const DefaultFPS = 60

// Ticker calls its draw function once per frame while looping.
type Ticker struct {
	fps     int
	looping bool
	draw    func()
	events  chan func()
	frames  int
}

func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Ticker{
		fps:     fps,
		looping: true,
		events:  make(chan func(), 64),
	}
}

// SetDraw sets the per-frame callback.
func (t *Ticker) SetDraw(fn func()) { t.draw = fn }

func (t *Ticker) Loop()         { t.looping = true }
func (t *Ticker) NoLoop()       { t.looping = false }
func (t *Ticker) Looping() bool { return t.looping }

func (t *Ticker) FPS() int { return t.fps }

// Frames counts the draw callbacks made.
func (t *Ticker) Frames() int { return t.frames }

// Step runs one frame synchronously. It reports whether draw was called.
func (t *Ticker) Step() bool {
	if !t.looping || t.draw == nil {
		return false
	}
	t.draw()
	t.frames++
	return true
}

// Post queues fn to run on the loop goroutine between frames.
func (t *Ticker) Post(fn func()) {
	t.events <- fn
}

// Run ticks at the configured rate until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.events:
			fn()
		case <-ticker.C:
			t.Step()
		}
	}
}
