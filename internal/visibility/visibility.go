// Package visibility reports whether a drawing surface is on screen.
//
// [Observer] follows the intersection-observer model: a target rectangle is
// compared against a viewport rectangle and subscribers are told when the
// visible fraction crosses their threshold. Subscribers always receive the
// current state on subscribe and then only changes.
package visibility

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool { return !(r.W > 0) || !(r.H > 0) }

func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o, empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IntersectionRatio is the fraction of target inside viewport, in [0, 1].
func IntersectionRatio(target, viewport Rect) float64 {
	if target.Empty() || viewport.Empty() {
		return 0
	}
	return target.Intersect(viewport).Area() / target.Area()
}

// Callback receives visibility changes.
type Callback func(visible bool)

// Provider reports visibility changes to subscribers.
type Provider interface {
	// Subscribe calls fn with the current state, then on every change.
	// The returned function cancels the subscription.
	Subscribe(threshold float64, fn Callback) (unsubscribe func())
}

// Always reports visible once and never changes.
type Always struct{}

func (Always) Subscribe(_ float64, fn Callback) func() {
	fn(true)
	return func() {}
}
