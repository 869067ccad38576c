package render

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/trails"
)

type fakeSurface struct {
	w, h    int
	clears  int
	strokes []Style
	trails  map[*trails.Trail]int
}

func (f *fakeSurface) Size() (int, int) { return f.w, f.h }
func (f *fakeSurface) Resize(w, h int)  { f.w, f.h = w, h }
func (f *fakeSurface) Clear()           { f.clears++ }

func (f *fakeSurface) Stroke(t *trails.Trail, style Style) {
	if f.trails == nil {
		f.trails = map[*trails.Trail]int{}
	}
	f.trails[t]++
	f.strokes = append(f.strokes, style)
}

type harness struct {
	session  *Session
	input    *InputHub
	pointer  *Pointer
	surfaces []*fakeSurface
}

func newHarness() *harness {
	h := &harness{input: NewInputHub(), pointer: &Pointer{}}
	h.session = NewSession(SessionOptions{
		NewSurface: func(w, hh int) (Surface, error) {
			s := &fakeSurface{w: w, h: hh}
			h.surfaces = append(h.surfaces, s)
			return s, nil
		},
		Input:   h.input,
		Pointer: h.pointer,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:    rand.New(rand.NewPCG(7, 9)),
	})
	return h
}

func smallConfig() config.RayLines {
	c := config.Default().RayLines
	c.Count = 4
	c.TailLength = 6
	return c
}

func TestResolveStrokeHex(t *testing.T) {
	c, ok := ResolveStroke("#3b82f6", nil)
	if !ok {
		t.Fatal("expected hex color to resolve")
	}
	if c.R != 59 || c.G != 130 || c.B != 246 {
		t.Fatalf("channels = (%d, %d, %d), want (59, 130, 246)", c.R, c.G, c.B)
	}
	if c.A != config.StrokeAlpha {
		t.Fatalf("alpha = %v", c.A)
	}
	if c.String() != "rgba(59, 130, 246, 0.025)" {
		t.Fatalf("String() = %q", c.String())
	}
}

func TestResolveStrokeShortHex(t *testing.T) {
	c, ok := ResolveStroke("#f00", nil)
	if !ok || c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("got %+v ok=%v", c, ok)
	}
}

func TestResolveStrokeNamedPassesThrough(t *testing.T) {
	c, ok := ResolveStroke("white", nil)
	if !ok {
		t.Fatal("white should resolve")
	}
	if c != (StrokeColor{R: 255, G: 255, B: 255, A: 1}) {
		t.Fatalf("got %+v", c)
	}
}

func TestResolveStrokeRejectsUnknown(t *testing.T) {
	for _, mode := range []string{"#12", "not-a-color", "", config.Rainbow} {
		if _, ok := ResolveStroke(mode, nil); ok {
			t.Fatalf("%q should not resolve without an oscillator", mode)
		}
	}
}

func TestResolveStrokeRainbowAdvancesOscillator(t *testing.T) {
	osc := trails.NewOscillator(0, 0.5, 85, 285)
	c, ok := ResolveStroke(config.Rainbow, osc)
	if !ok {
		t.Fatal("rainbow should resolve")
	}
	if osc.Phase != 0.5 {
		t.Fatalf("phase = %v, want 0.5", osc.Phase)
	}
	if c != RainbowStroke(osc.Value()) {
		t.Fatalf("got %+v, want %+v", c, RainbowStroke(osc.Value()))
	}
	if c.A != config.StrokeAlpha {
		t.Fatalf("alpha = %v", c.A)
	}
}

func TestRainbowStrokeWrapsHue(t *testing.T) {
	red := StrokeColor{R: 255, A: config.StrokeAlpha}
	for _, h := range []float64{0, 360, 359.6, -360, 720.2} {
		if got := RainbowStroke(h); got != red {
			t.Fatalf("RainbowStroke(%v) = %+v", h, got)
		}
	}
	if got := RainbowStroke(240); got.B != 255 || got.R != 0 || got.G != 0 {
		t.Fatalf("RainbowStroke(240) = %+v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness()
	if h.session.State() != Stopped {
		t.Fatal("new session should be stopped")
	}
	if !h.session.Start(smallConfig(), 800, 600) {
		t.Fatal("Start failed")
	}
	if h.session.State() != Running || h.input.Len() != 1 {
		t.Fatalf("state=%v listeners=%d", h.session.State(), h.input.Len())
	}

	h.session.Frame()
	h.session.Frame()

	s := h.surfaces[0]
	if s.clears != 2 {
		t.Fatalf("clears = %d, want 2", s.clears)
	}
	if len(s.strokes) != 8 {
		t.Fatalf("strokes = %d, want 8", len(s.strokes))
	}
	for _, st := range s.strokes {
		if st.Blend != BlendLighter || st.Width != 10 {
			t.Fatalf("unexpected style %+v", st)
		}
	}
	if h.session.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", h.session.Frames())
	}

	h.session.Stop()
	if h.session.State() != Stopped || h.input.Len() != 0 {
		t.Fatalf("state=%v listeners=%d after stop", h.session.State(), h.input.Len())
	}
	if h.session.Field() != nil || h.session.Surface() != nil {
		t.Fatal("stop should discard field and surface")
	}

	h.session.Frame()
	if s.clears != 2 {
		t.Fatal("frame after stop must be a no-op")
	}
}

func TestSessionStopIsIdempotent(t *testing.T) {
	h := newHarness()
	h.session.Stop()
	h.session.Start(smallConfig(), 10, 10)
	h.session.Stop()
	h.session.Stop()
	if h.session.State() != Stopped || h.input.Len() != 0 {
		t.Fatalf("state=%v listeners=%d", h.session.State(), h.input.Len())
	}
}

func TestSessionSecondStartSupersedesFirst(t *testing.T) {
	h := newHarness()
	h.session.Start(smallConfig(), 100, 100)
	first := h.session.Field()

	cfg := smallConfig()
	cfg.Count = 2
	h.session.Start(cfg, 100, 100)

	if h.input.Len() != 1 {
		t.Fatalf("listeners = %d, want 1", h.input.Len())
	}
	if h.session.Field() == first || h.session.Field().Len() != 2 {
		t.Fatal("second start should rebuild the field")
	}

	h.session.Frame()
	if h.surfaces[0].clears != 0 {
		t.Fatal("superseded surface must not be drawn")
	}
	if h.surfaces[1].clears != 1 || len(h.surfaces[1].strokes) != 2 {
		t.Fatalf("clears=%d strokes=%d", h.surfaces[1].clears, len(h.surfaces[1].strokes))
	}
	if h.session.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", h.session.Frames())
	}
}

func TestSessionWithoutSurfaceStaysStopped(t *testing.T) {
	h := newHarness()
	if h.session.Start(smallConfig(), 0, 600) {
		t.Fatal("zero width viewport should not start")
	}

	failing := NewSession(SessionOptions{
		NewSurface: func(int, int) (Surface, error) { return nil, errors.New("no gpu") },
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if failing.Start(smallConfig(), 100, 100) {
		t.Fatal("failing factory should not start")
	}
	failing.Frame()
	if failing.State() != Stopped {
		t.Fatal("should remain stopped")
	}

	if NewSession(SessionOptions{}).Start(smallConfig(), 100, 100) {
		t.Fatal("session without factory should not start")
	}
}

func TestSessionInputDrivesPointerAndResize(t *testing.T) {
	h := newHarness()
	h.session.Start(smallConfig(), 100, 100)

	h.input.Dispatch(PointerMove{X: 12, Y: 34})
	if h.pointer.X != 12 || h.pointer.Y != 34 {
		t.Fatalf("pointer = %+v", h.pointer)
	}
	h.input.Dispatch(TouchMove{X: 5, Y: 6})
	if h.pointer.X != 5 || h.pointer.Y != 6 {
		t.Fatalf("pointer = %+v", h.pointer)
	}
	h.input.Dispatch(TouchStart{Touches: []trails.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}})
	if h.pointer.X != 5 {
		t.Fatal("multi-touch start must not move the pointer")
	}
	h.input.Dispatch(TouchStart{Touches: []trails.Point{{X: 9, Y: 8}}})
	if h.pointer.X != 9 || h.pointer.Y != 8 {
		t.Fatalf("pointer = %+v", h.pointer)
	}

	for i := 0; i < 5; i++ {
		h.session.Frame()
	}
	before := h.session.Field().Trails()[0].Head()

	h.input.Dispatch(Resize{W: 300, H: 200})
	if w, hh := h.surfaces[0].Size(); w != 300 || hh != 200 {
		t.Fatalf("surface size = %dx%d", w, hh)
	}
	if h.session.Field().Trails()[0].Head() != before {
		t.Fatal("resize must not reset the trails")
	}

	h.session.Stop()
	h.input.Dispatch(PointerMove{X: 99, Y: 99})
	if h.pointer.X == 99 {
		t.Fatal("stopped session must not receive input")
	}
}

func TestSessionKeepsPreviousColorOnUnknownMode(t *testing.T) {
	h := newHarness()
	cfg := smallConfig()
	cfg.Color = "no-such-color"
	h.session.Start(cfg, 50, 50)
	h.session.Frame()
	if got := h.session.StrokeColor(); got != (StrokeColor{A: 1}) {
		t.Fatalf("stroke = %+v, want opaque black", got)
	}
}

func TestSessionHexStrokeColor(t *testing.T) {
	h := newHarness()
	cfg := smallConfig()
	cfg.Color = "#3b82f6"
	h.session.Start(cfg, 50, 50)
	h.session.Frame()
	got := h.surfaces[0].strokes[0].Color
	if got.R != 59 || got.G != 130 || got.B != 246 {
		t.Fatalf("stroke = %+v", got)
	}
}

func TestInputHubDetachDuringDispatch(t *testing.T) {
	hub := NewInputHub()
	var calls int
	var detachSecond func()
	hub.Attach(func(Event) {
		calls++
		detachSecond()
	})
	detachSecond = hub.Attach(func(Event) { calls += 10 })

	hub.Dispatch(Resize{})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	detachSecond()
	if hub.Len() != 1 {
		t.Fatalf("Len() = %d", hub.Len())
	}
}

func TestStrokeColorPremultiplied(t *testing.T) {
	near := func(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-6 }

	r, g, b, a := StrokeColor{R: 59, G: 130, B: 246, A: 0.025}.Premultiplied()
	if !near(r, 59.0/255*0.025) || !near(g, 130.0/255*0.025) || !near(b, 246.0/255*0.025) || !near(a, 0.025) {
		t.Fatalf("Premultiplied() = (%v, %v, %v, %v)", r, g, b, a)
	}
	r, g, b, a = StrokeColor{R: 255, G: 255, B: 255, A: 1}.Premultiplied()
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Fatalf("opaque white = (%v, %v, %v, %v)", r, g, b, a)
	}
}

func TestSessionStrokesEachTrailOncePerFrame(t *testing.T) {
	h := newHarness()
	cfg := smallConfig()
	cfg.Color = "#3b82f6"
	h.session.Start(cfg, 100, 100)
	h.input.Dispatch(PointerMove{X: 60, Y: 20})
	for i := 0; i < 3; i++ {
		h.session.Frame()
	}

	s := h.surfaces[0]
	if len(s.trails) != cfg.Count {
		t.Fatalf("stroked %d distinct trails, want %d", len(s.trails), cfg.Count)
	}
	for tr, n := range s.trails {
		if n != 3 {
			t.Fatalf("trail %p stroked %d times over 3 frames", tr, n)
		}
	}
	// the translucency belongs to the whole stroke, not to its pieces
	for _, st := range s.strokes {
		if st.Color.A != config.StrokeAlpha || st.Blend != BlendLighter {
			t.Fatalf("style = %+v", st)
		}
	}
}

func TestPointerTracksInputWhileSessionStopped(t *testing.T) {
	h := newHarness()
	detach := h.pointer.Track(h.input)

	h.session.Start(smallConfig(), 100, 100)
	h.session.Stop()
	h.input.Dispatch(PointerMove{X: 40, Y: 70})
	if h.pointer.Point() != (trails.Point{X: 40, Y: 70}) {
		t.Fatalf("pointer = %+v, want (40, 70)", h.pointer)
	}

	h.session.Start(smallConfig(), 100, 100)
	for i := 0; i < 500; i++ {
		h.session.Frame()
	}
	head := h.session.Field().Trails()[0].Head()
	if math.Hypot(head.X-40, head.Y-70) > 1 {
		t.Fatalf("head at (%.3f, %.3f), want near (40, 70)", head.X, head.Y)
	}

	h.session.Stop()
	detach()
	h.input.Dispatch(PointerMove{X: 1, Y: 2})
	if h.pointer.X != 40 {
		t.Fatal("detached pointer must not move")
	}
}
