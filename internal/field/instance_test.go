package field

import (
	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/windfield/internal/noise"
	"github.com/san-kum/windfield/internal/surface"
	"github.com/san-kum/windfield/internal/visibility"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeHost struct {
	looping bool
	loops   int
	noLoops int
}

func (h *fakeHost) Loop()   { h.looping = true; h.loops++ }
func (h *fakeHost) NoLoop() { h.looping = false; h.noLoops++ }

func snapshot(in *Instance) []Segment {
	return append([]Segment(nil), in.Segments()...)
}

var _ = Describe("Instance", func() {
	var (
		tun     Tunables
		rec     *surface.Recorder
		host    *fakeHost
		sampler noise.Sampler
		obs     *visibility.Observer
	)

	viewport := visibility.Rect{W: 400, H: 300}

	BeforeEach(func() {
		tun = DefaultTunables()
		rec = surface.NewRecorder(0, 0)
		host = &fakeHost{}
		sampler = noise.NewSimplex(7)
		obs = visibility.NewObserver(visibility.Rect{Y: 1000, W: 400, H: 200}, viewport)
	})

	deps := func() Deps {
		return Deps{
			Surface:       rec,
			Sampler:       sampler,
			Host:          host,
			Visibility:    obs,
			ViewportWidth: func() float64 { return 1280 },
		}
	}

	Context("static", func() {
		It("renders exactly once and stops the loop", func() {
			in, err := New(tun, Options{ID: "s", Width: 400, Height: 200}, deps())
			Expect(err).NotTo(HaveOccurred())

			in.Start()
			Expect(in.State()).To(Equal(Static))
			Expect(in.Renders()).To(Equal(1))
			Expect(host.looping).To(BeFalse())
			Expect(in.Layout().Columns).To(Equal(11))
			Expect(in.Layout().Rows).To(Equal(5))
			Expect(rec.Lines).To(HaveLen(55))

			for i := 0; i < 10; i++ {
				in.Tick()
			}
			Expect(in.Renders()).To(Equal(1))
			Expect(in.Frame()).To(Equal(StaticFrame))
		})

		It("draws the requested start frame", func() {
			in, err := New(tun, Options{ID: "s", Width: 400, Height: 200, StartFrame: 9}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()
			Expect(in.Frame()).To(Equal(9))

			want := tun.Sample(sampler, in.Segments()[0].X, in.Segments()[0].Y, 9)
			Expect(in.Segments()[0].Noise).To(Equal(want))
		})

		It("reports the surface size", func() {
			in, err := New(tun, Options{ID: "s", Width: 400, Height: 200}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()
			in.Resize(640, 320)

			w, h := in.Size()
			Expect(w).To(Equal(640.0))
			Expect(h).To(Equal(320.0))
		})

		It("draws the same field for the same size", func() {
			in, err := New(tun, Options{ID: "s", Width: 400, Height: 200}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()
			first := snapshot(in)

			in.Resize(400, 200)
			Expect(in.Renders()).To(Equal(2))
			Expect(cmp.Diff(first, snapshot(in))).To(BeEmpty())
		})

		It("keeps every segment inside the mapped ranges", func() {
			in, err := New(tun, Options{ID: "s", Width: 1200, Height: 600}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()

			for _, s := range in.Segments() {
				Expect(s.Length).To(BeNumerically(">=", tun.LengthMin-1e-9))
				Expect(s.Length).To(BeNumerically("<=", tun.LengthMax+1e-9))
				Expect(s.Weight).To(BeNumerically(">=", tun.WeightMin-1e-9))
				Expect(s.Weight).To(BeNumerically("<=", tun.WeightMax+1e-9))
			}
		})

		It("draws centered segments with a square cap", func() {
			in, err := New(tun, Options{ID: "s", Width: 400, Height: 200}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()

			Expect(rec.Depth()).To(Equal(0))
			for i, l := range rec.Lines {
				s := in.Segments()[i]
				cx, cy := s.Center()
				Expect((l.X1 + l.X2) / 2).To(BeNumerically("~", cx, 1e-9))
				Expect((l.Y1 + l.Y2) / 2).To(BeNumerically("~", cy, 1e-9))
				Expect(l.Length()).To(BeNumerically("~", 2*s.HalfExtent(), 1e-9))
				Expect(l.Cap).To(Equal(surface.CapSquare))
				Expect(l.Weight).To(BeNumerically("~", s.Weight, 1e-9))
			}
		})
	})

	Context("animating", func() {
		var in *Instance

		BeforeEach(func() {
			var err error
			in, err = New(tun, Options{ID: "a", Width: 400, Height: 200, Autoplay: true}, deps())
			Expect(err).NotTo(HaveOccurred())
			in.Start()
		})

		It("waits paused while off screen", func() {
			Expect(in.State()).To(Equal(Paused))
			Expect(host.looping).To(BeFalse())
			in.Tick()
			Expect(in.Renders()).To(Equal(0))
		})

		It("plays while visible and pauses when scrolled away", func() {
			obs.SetTarget(visibility.Rect{Y: 100, W: 400, H: 200})
			Expect(in.State()).To(Equal(Playing))
			Expect(host.looping).To(BeTrue())

			in.Tick()
			in.Tick()
			Expect(in.Frame()).To(Equal(2))
			Expect(in.Renders()).To(Equal(2))

			obs.SetTarget(visibility.Rect{Y: 1000, W: 400, H: 200})
			Expect(in.State()).To(Equal(Paused))
			Expect(host.looping).To(BeFalse())

			in.Tick()
			Expect(in.Frame()).To(Equal(2))
		})

		It("resumes from the frame where it paused", func() {
			obs.SetTarget(visibility.Rect{Y: 0, W: 400, H: 200})
			in.Tick()
			obs.SetFocused(false)
			Expect(in.State()).To(Equal(Paused))
			obs.SetFocused(true)
			in.Tick()
			Expect(in.Frame()).To(Equal(2))
		})

		It("stays paused below the threshold", func() {
			// 10 of 200 rows visible is 5%.
			obs.SetTarget(visibility.Rect{Y: 290, W: 400, H: 200})
			Expect(in.State()).To(Equal(Paused))
		})

		It("renders once on resize without advancing while paused", func() {
			in.Resize(800, 300)
			Expect(in.Renders()).To(Equal(1))
			Expect(in.Frame()).To(Equal(0))
			w, h := rec.Size()
			Expect(w).To(Equal(800.0))
			Expect(h).To(Equal(300.0))
		})

		It("renders once on resize and advances while playing", func() {
			obs.SetTarget(visibility.Rect{Y: 0, W: 400, H: 200})
			in.Tick()
			Expect(in.State()).To(Equal(Playing))
			Expect(in.Renders()).To(Equal(1))
			Expect(in.Frame()).To(Equal(1))
			Expect(in.Layout().Columns).To(Equal(11))

			in.Resize(800, 300)
			Expect(in.State()).To(Equal(Playing))
			Expect(in.Renders()).To(Equal(2))
			Expect(in.Frame()).To(Equal(2))
			Expect(in.Layout().Columns).To(Equal(23))
			Expect(rec.Lines).To(HaveLen(in.Layout().Columns * in.Layout().Rows))
		})

		It("detaches from visibility on close", func() {
			Expect(obs.Subscribers()).To(Equal(1))
			in.Close()
			Expect(obs.Subscribers()).To(Equal(0))
		})
	})

	Context("configuration errors", func() {
		It("rejects a bad stroke color", func() {
			_, err := New(tun, Options{ID: "c", Width: 10, Height: 10, StrokeColor: "nope"}, deps())
			Expect(err).To(MatchError(ErrInvalidColor))

			var ce *ConfigError
			Expect(err).To(BeAssignableToTypeOf(ce))
		})

		It("rejects a negative size", func() {
			_, err := New(tun, Options{ID: "c", Width: -1, Height: 200}, deps())
			Expect(err).To(MatchError(ErrInvalidSize))
		})

		It("requires visibility for autoplay", func() {
			d := deps()
			d.Visibility = nil
			_, err := New(tun, Options{ID: "c", Width: 10, Height: 10, Autoplay: true}, d)
			Expect(err).To(MatchError(ErrMissingDependency))
		})

		It("skips broken instances when mounting", func() {
			opts := []Options{
				{ID: "ok", Width: 400, Height: 200},
				{ID: "bad", Width: 400, Height: 200, StrokeColor: "#zzz"},
			}
			build := func(o Options) (Deps, error) {
				return Deps{Surface: surface.NewRecorder(0, 0), Sampler: sampler}, nil
			}

			mounted := Mount(tun, opts, build, nil)
			Expect(mounted).To(HaveLen(1))
			Expect(mounted[0].ID()).To(Equal("ok"))
			Expect(mounted[0].State()).To(Equal(Static))
		})
	})

	It("uses the override stroke color", func() {
		in, err := New(tun, Options{ID: "o", Width: 400, Height: 200, StrokeColor: "#ff0000"}, deps())
		Expect(err).NotTo(HaveOccurred())
		in.Start()
		Expect(surface.Hex(rec.Lines[0].Color)).To(Equal("#ff0000"))
	})
})
