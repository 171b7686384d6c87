package visibility

type subscription struct {
	id        int
	threshold float64
	fn        Callback
	visible   bool
}

// Observer watches one target against a viewport. A blurred observer (a
// minimised window, an unfocused terminal) reports nothing visible.
//
// Observer is not safe for concurrent use; drive it from the render loop.
type Observer struct {
	target   Rect
	viewport Rect
	focused  bool

	subs   []*subscription
	nextID int
}

func NewObserver(target, viewport Rect) *Observer {
	return &Observer{target: target, viewport: viewport, focused: true}
}

func (o *Observer) Subscribe(threshold float64, fn Callback) func() {
	o.nextID++
	s := &subscription{id: o.nextID, threshold: threshold, fn: fn}
	s.visible = o.visibleAt(threshold)
	o.subs = append(o.subs, s)
	fn(s.visible)

	id := s.id
	return func() { o.remove(id) }
}

func (o *Observer) remove(id int) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

func (o *Observer) SetTarget(r Rect) {
	o.target = r
	o.notify()
}

func (o *Observer) SetViewport(r Rect) {
	o.viewport = r
	o.notify()
}

func (o *Observer) SetFocused(focused bool) {
	if o.focused == focused {
		return
	}
	o.focused = focused
	o.notify()
}

func (o *Observer) Target() Rect   { return o.target }
func (o *Observer) Viewport() Rect { return o.viewport }
func (o *Observer) Focused() bool  { return o.focused }

// Ratio is the current visible fraction of the target, zero when blurred.
func (o *Observer) Ratio() float64 {
	if !o.focused {
		return 0
	}
	return IntersectionRatio(o.target, o.viewport)
}

// Subscribers counts live subscriptions.
func (o *Observer) Subscribers() int { return len(o.subs) }

func (o *Observer) visibleAt(threshold float64) bool {
	r := o.Ratio()
	return r > 0 && r >= threshold
}

func (o *Observer) notify() {
	subs := make([]*subscription, len(o.subs))
	copy(subs, o.subs)
	for _, s := range subs {
		v := o.visibleAt(s.threshold)
		if v == s.visible {
			continue
		}
		s.visible = v
		s.fn(v)
	}
}
