package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/trails"
)

// ErrNoSurface is returned by surface factories that cannot provide a
// drawing target.
var ErrNoSurface = errors.New("no drawing surface")

// Blend is the compositing mode used for a stroke.
type Blend int

const (
	BlendSourceOver Blend = iota
	// BlendLighter adds source and destination so overlaps brighten.
	BlendLighter
)

type Style struct {
	Color StrokeColor
	Width float64
	Blend Blend
}

// Surface is a raster target sized to the viewport.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	// Stroke paints the whole trail as one shape: where the stroke overlaps
	// itself the color is applied once. Only separate strokes accumulate
	// under BlendLighter.
	Stroke(t *trails.Trail, style Style)
}

type SurfaceFactory func(w, h int) (Surface, error)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

type SessionOptions struct {
	NewSurface SurfaceFactory
	Input      *InputHub
	// Pointer is shared with the caller. The session reads it every frame
	// and its listener overwrites it while running. Use Pointer.Track to
	// keep it current while no session is running.
	Pointer *Pointer
	Logger  *slog.Logger
	// Rand seeds trail jitter and the oscillator phase. Nil uses the
	// global source.
	Rand *rand.Rand
}

// Session owns everything needed to draw the trail animation between a
// Start and the matching Stop.
type Session struct {
	opts SessionOptions

	state   State
	frames  int
	cfg     config.RayLines
	surface Surface
	field   *trails.Field
	osc     *trails.Oscillator
	stroke  StrokeColor
	detach  func()
}

func NewSession(opts SessionOptions) *Session {
	if opts.Input == nil {
		opts.Input = NewInputHub()
	}
	if opts.Pointer == nil {
		opts.Pointer = &Pointer{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{opts: opts}
}

// Start builds a fresh surface, oscillator and field from cfg and begins
// drawing on the next Frame. A running session is stopped first. When no
// surface can be acquired the session stays stopped and false is returned.
func (s *Session) Start(cfg config.RayLines, width, height int) bool {
	s.Stop()

	surface, err := s.acquire(width, height)
	if err != nil {
		s.opts.Logger.Debug("Render session not started", slog.Any("error", err))
		return false
	}

	s.cfg = cfg
	s.surface = surface
	s.frames = 1
	s.stroke = StrokeColor{A: 1}
	s.osc = trails.NewOscillator(s.random()*2*math.Pi, config.HueFrequency, config.HueAmplitude, config.HueOffset)
	s.field = trails.NewField(trails.ParamsFromConfig(cfg), s.opts.Rand)
	s.detach = s.opts.Input.Attach(s.handle)
	s.state = Running

	s.opts.Logger.Debug("Render session started",
		slog.Int("trails", cfg.Count),
		slog.Int("tailLength", cfg.TailLength),
		slog.String("color", cfg.Color),
		slog.Int("width", width),
		slog.Int("height", height),
	)
	return true
}

func (s *Session) acquire(width, height int) (Surface, error) {
	if s.opts.NewSurface == nil {
		return nil, ErrNoSurface
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("viewport %dx%d: %w", width, height, ErrNoSurface)
	}
	surface, err := s.opts.NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, ErrNoSurface
	}
	return surface, nil
}

func (s *Session) random() float64 {
	if s.opts.Rand != nil {
		return s.opts.Rand.Float64()
	}
	return rand.Float64()
}

// Stop ends the session. Stopping a stopped session does nothing.
func (s *Session) Stop() {
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	s.surface = nil
	s.field = nil
	s.osc = nil
	s.opts.Logger.Debug("Render session stopped", slog.Int("frames", s.frames))
}

// Frame draws one frame of the animation. It is a no-op unless running.
func (s *Session) Frame() {
	if s.state != Running {
		return
	}

	s.surface.Clear()

	if c, ok := ResolveStroke(s.cfg.Color, s.osc); ok {
		s.stroke = c
	}
	style := Style{Color: s.stroke, Width: s.cfg.LineWidth, Blend: BlendLighter}

	s.field.Tick(s.opts.Pointer.Point(), func(t *trails.Trail) {
		s.surface.Stroke(t, style)
	})
	s.frames++
}

func (s *Session) handle(e Event) {
	if r, ok := e.(Resize); ok {
		if s.surface != nil && r.W > 0 && r.H > 0 {
			s.surface.Resize(r.W, r.H)
		}
		return
	}
	s.opts.Pointer.Apply(e)
}

func (s *Session) State() State { return s.state }

// Frames counts drawn frames plus one since the last Start.
func (s *Session) Frames() int { return s.frames }

// Config is the configuration of the last Start.
func (s *Session) Config() config.RayLines { return s.cfg }

// Surface, Field and Oscillator are nil while stopped.
func (s *Session) Surface() Surface { return s.surface }

func (s *Session) Field() *trails.Field { return s.field }

func (s *Session) Oscillator() *trails.Oscillator { return s.osc }

// StrokeColor is the color used by the last Frame. It survives Stop.
func (s *Session) StrokeColor() StrokeColor { return s.stroke }
