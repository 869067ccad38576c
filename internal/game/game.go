package game

import (
	"fmt"
	"image"
	"log/slog"
	"maps"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/render"
	"github.com/iburimskiy/hero-trails/internal/spotlight"
	"github.com/iburimskiy/hero-trails/internal/trails"
	"github.com/iburimskiy/hero-trails/internal/ui"
)

type Options struct {
	Settings config.Settings
	Logger   *slog.Logger
	Debug    bool
	// Dialogs defaults to native zenity dialogs.
	Dialogs ColorDialogs
	Rand    *rand.Rand
}

// Game is the hero card: a background animation, the copy with its call
// to action, and the controls.
type Game struct {
	logger   *slog.Logger
	debug    bool
	settings config.Settings

	// viewport as reported by Layout, and as last dispatched
	outside image.Point
	size    image.Point

	input       *render.InputHub
	pointer     *render.Pointer
	session     *render.Session
	startFailed image.Point

	follower *spotlight.Follower
	glows    spotlight.Cache
	glow     *ebiten.Image

	hero     *hero
	controls *controls

	cursor  image.Point
	touches map[ebiten.TouchID]image.Point
	lastErr error
}

func New(opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Dialogs == nil {
		opts.Dialogs = zenityDialogs{}
	}
	opts.Settings.Clamp()

	fs, err := loadFaces()
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}

	g := &Game{
		logger:   opts.Logger,
		debug:    opts.Debug,
		settings: opts.Settings,
		input:    render.NewInputHub(),
		pointer:  &render.Pointer{},
		follower: spotlight.NewFollower(ebiten.DefaultTPS, opts.Settings.Spotlight.ForceVisible),
		hero:     newHero(fs),
		touches:  map[ebiten.TouchID]image.Point{},
	}
	g.controls = newControls(opts.Settings, fs, opts.Dialogs, opts.Logger)
	g.session = render.NewSession(render.SessionOptions{
		NewSurface: newImageSurface,
		Input:      g.input,
		Pointer:    g.pointer,
		Logger:     opts.Logger,
		Rand:       opts.Rand,
	})
	g.pointer.Track(g.input)
	g.input.Attach(g.followPointer)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.session.Stop()
		return ebiten.Termination
	}

	g.syncViewport()
	g.hero.layout(g.size.X, g.size.Y)
	g.controls.layout(g.size.X, g.size.Y)

	g.pollPointer()
	m := g.mouse()

	before := g.settings
	if g.controls.update(m, &g.settings) {
		g.logSettingsChange(before)
	}
	g.lastErr = g.controls.err
	if g.hero.launch.Update(m) {
		g.logger.Info("Launch App clicked")
	}

	switch g.settings.Background {
	case config.BackgroundSpotlight:
		g.session.Stop()
		g.follower.SetForceVisible(g.settings.Spotlight.ForceVisible)
		g.follower.Update()
	default:
		g.ensureSession()
		g.session.Frame()
	}
	return nil
}

// ensureSession (re)starts the trail animation when it is not running or
// its configuration is stale.
func (g *Game) ensureSession() {
	running := g.session.State() == render.Running
	if running && g.session.Config() == g.settings.RayLines {
		return
	}
	if !running && g.startFailed == g.size {
		return
	}
	if g.session.Start(g.settings.RayLines, g.size.X, g.size.Y) {
		g.startFailed = image.Point{}
		return
	}
	g.startFailed = g.size
	g.logger.Warn("Trail animation unavailable", slog.Int("width", g.size.X), slog.Int("height", g.size.Y))
}

func (g *Game) logSettingsChange(before config.Settings) {
	g.logger.Debug("Settings changed",
		slog.String("background", string(g.settings.Background)),
		slog.Any("rayLines", g.settings.RayLines),
		slog.Any("spotlight", g.settings.Spotlight),
	)
	if before.Background != g.settings.Background {
		g.logger.Info("Background switched", slog.String("background", string(g.settings.Background)))
	}
}

func (g *Game) syncViewport() {
	if g.outside == g.size || g.outside.X <= 0 || g.outside.Y <= 0 {
		return
	}
	g.size = g.outside
	g.input.Dispatch(render.Resize{W: g.size.X, H: g.size.Y})
}

// pollPointer turns this tick's cursor and touch state into events.
func (g *Game) pollPointer() {
	x, y := ebiten.CursorPosition()
	if p := image.Pt(x, y); p != g.cursor {
		g.cursor = p
		g.input.Dispatch(render.PointerMove{X: float64(x), Y: float64(y)})
	}

	ids := ebiten.AppendTouchIDs(nil)
	current := make(map[ebiten.TouchID]image.Point, len(ids))
	for _, id := range ids {
		tx, ty := ebiten.TouchPosition(id)
		current[id] = image.Pt(tx, ty)
	}

	if started := inpututil.AppendJustPressedTouchIDs(nil); len(started) > 0 {
		ev := render.TouchStart{}
		for _, id := range ids {
			p := current[id]
			ev.Touches = append(ev.Touches, trails.Point{X: float64(p.X), Y: float64(p.Y)})
		}
		g.input.Dispatch(ev)
	}
	for _, id := range ids {
		p := current[id]
		if prev, ok := g.touches[id]; ok && prev != p {
			g.input.Dispatch(render.TouchMove{X: float64(p.X), Y: float64(p.Y)})
		}
	}

	clear(g.touches)
	maps.Copy(g.touches, current)
}

func (g *Game) mouse() ui.Mouse {
	return ui.Mouse{
		Pos:          g.cursor,
		Down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// followPointer feeds the spotlight. The card fills the window, so window
// coordinates are card coordinates.
func (g *Game) followPointer(e render.Event) {
	switch ev := e.(type) {
	case render.PointerMove:
		g.follower.SetTarget(ev.X, ev.Y)
		g.follower.SetHovered(image.Pt(int(ev.X), int(ev.Y)).In(image.Rectangle{Max: g.size}))
	case render.TouchMove:
		g.follower.SetTarget(ev.X, ev.Y)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(cardColor)

	switch g.settings.Background {
	case config.BackgroundSpotlight:
		g.drawSpotlight(screen)
	default:
		g.drawTrails(screen)
	}

	g.hero.draw(screen)
	g.controls.draw(screen, g.settings)

	status := ""
	if g.debug {
		status = fmt.Sprintf("FPS %.0f  TPS %.0f  session %s  frame %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.session.State(), g.session.Frames())
		if f := g.session.Field(); f != nil {
			status += fmt.Sprintf("  trails %d  stroke %s", f.Len(), g.session.StrokeColor())
		}
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

func (g *Game) drawTrails(screen *ebiten.Image) {
	s, ok := g.session.Surface().(*imageSurface)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(config.CanvasOpacity)
	screen.DrawImage(s.Image(), op)
}

func (g *Game) drawSpotlight(screen *ebiten.Image) {
	sp := g.settings.Spotlight
	img, rebuilt := g.glows.Get(sp.Size, sp.EffectiveColor())
	if rebuilt || g.glow == nil {
		if g.glow != nil {
			g.glow.Deallocate()
		}
		g.glow = ebiten.NewImageFromImage(img)
	}

	x, y := g.follower.TopLeft(float64(sp.Size))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(g.follower.Opacity()))
	screen.DrawImage(g.glow, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outside = image.Pt(outsideWidth, outsideHeight)
	if g.size == (image.Point{}) {
		g.size = g.outside
	}
	return outsideWidth, outsideHeight
}
