package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/ui"
)

const (
	panelWidth   = 256
	panelMargin  = 16
	panelHeader  = 40
	panelPadding = 16
	sliderRow    = 40
	swatchRow    = 56
	swatchSize   = 24
	sourceRow    = 52
	customRow    = 96
	toggleHeight = 28
)

const (
	sourcePresets = "presets"
	sourceCustom  = "custom"
)

type sliderControl struct {
	ui.Slider
	apply func(s *config.Settings, v float64)
}

// controls is the toggle in the top-right corner and the settings panel
// in the bottom-right corner.
type controls struct {
	faces   faces
	dialogs ColorDialogs
	logger  *slog.Logger

	background *ui.Toggle

	rayPanel   ui.Panel
	raySliders []*sliderControl
	rayColors  ui.Swatches

	spotPanel  ui.Panel
	spotSize   *sliderControl
	source     *ui.Toggle
	spotColors ui.Swatches
	custom     *ui.CustomColor
	pick       ui.Button
	entry      ui.Button
	preview    image.Rectangle

	// last dialog failure, shown in the status line
	err error
}

func newControls(s config.Settings, fs faces, dialogs ColorDialogs, logger *slog.Logger) *controls {
	c := &controls{
		faces:   fs,
		dialogs: dialogs,
		logger:  logger,
		background: ui.NewToggle([]ui.Option{
			{Label: "Ray Lines", Value: string(config.BackgroundCanvas)},
			{Label: "Spotlight", Value: string(config.BackgroundSpotlight)},
		}, string(s.Background)),
		rayPanel:  ui.Panel{Title: "Ray Lines Controls"},
		spotPanel: ui.Panel{Title: "Spotlight Controls"},
		rayColors: ui.Swatches{Label: "Color", Options: config.Palette, Value: s.RayLines.Color},
		spotColors: ui.Swatches{
			Label:   "Preset Colors",
			Options: config.SpotlightPalette(),
			Value:   s.Spotlight.Color,
		},
		custom: ui.NewCustomColor(s.Spotlight.CustomColor),
	}

	source := sourcePresets
	if s.Spotlight.UseCustom {
		source = sourceCustom
	}
	c.source = ui.NewToggle([]ui.Option{
		{Label: "Presets", Value: sourcePresets},
		{Label: "Custom", Value: sourceCustom},
	}, source)

	r := s.RayLines
	c.raySliders = []*sliderControl{
		{ui.Slider{Label: "Number of Lines", Min: config.TrailCountMin, Max: config.TrailCountMax, Step: 1, Value: float64(r.Count)},
			func(s *config.Settings, v float64) { s.RayLines.Count = int(v) }},
		{ui.Slider{Label: "Line Width", Min: config.LineWidthMin, Max: config.LineWidthMax, Step: 1, Value: r.LineWidth},
			func(s *config.Settings, v float64) { s.RayLines.LineWidth = v }},
		{ui.Slider{Label: "Follow Distance", Min: config.FollowDistanceMin, Max: config.FollowDistanceMax, Step: config.FollowDistanceStep, Value: r.FollowDistance},
			func(s *config.Settings, v float64) { s.RayLines.FollowDistance = v }},
		{ui.Slider{Label: "Tail Length", Min: config.TailLengthMin, Max: config.TailLengthMax, Step: 1, Value: float64(r.TailLength)},
			func(s *config.Settings, v float64) { s.RayLines.TailLength = int(v) }},
		{ui.Slider{Label: "Fade Speed", Min: config.FadeSpeedMin, Max: config.FadeSpeedMax, Step: config.FadeSpeedStep, Value: r.FadeSpeed},
			func(s *config.Settings, v float64) { s.RayLines.FadeSpeed = v }},
	}
	c.spotSize = &sliderControl{
		ui.Slider{Label: "Size", Min: config.SpotlightSizeMin, Max: config.SpotlightSizeMax, Step: 1, Value: float64(s.Spotlight.Size)},
		func(s *config.Settings, v float64) { s.Spotlight.Size = int(v) },
	}
	return c
}

func (c *controls) spotlightMode() bool {
	return c.background.Selected() == string(config.BackgroundSpotlight)
}

func (c *controls) panel() *ui.Panel {
	if c.spotlightMode() {
		return &c.spotPanel
	}
	return &c.rayPanel
}

func (c *controls) contentHeight() int {
	if c.spotlightMode() {
		h := sliderRow + sourceRow
		if c.source.Selected() == sourceCustom {
			return h + customRow
		}
		return h + swatchRow
	}
	return len(c.raySliders)*sliderRow + swatchRow
}

func (c *controls) layout(w, h int) {
	// background toggle
	x := w - panelMargin
	for i := len(c.background.Options) - 1; i >= 0; i-- {
		ow := int(text.Advance(c.background.Options[i].Label, c.faces.ui)) + 24
		c.background.Rects[i] = image.Rect(x-ow, panelMargin+4, x, panelMargin+4+toggleHeight-8)
		x -= ow
	}

	p := c.panel()
	height := panelHeader
	if !p.Collapsed {
		height += c.contentHeight() + 2*panelPadding
	}
	left := w - panelMargin - panelWidth
	top := h - panelMargin - height
	p.Rect = image.Rect(left, top, left+panelWidth, top+height)
	p.Header = image.Rect(left, top, left+panelWidth, top+panelHeader)

	inner := left + panelPadding
	innerW := panelWidth - 2*panelPadding
	y := top + panelHeader + panelPadding

	track := func(s *ui.Slider) {
		s.Track = image.Rect(inner, y+20, inner+innerW, y+28)
		y += sliderRow
	}
	swatches := func(s *ui.Swatches) {
		s.Rects = s.Rects[:0]
		for i := range s.Options {
			sx := inner + i*(swatchSize+8)
			s.Rects = append(s.Rects, image.Rect(sx, y+20, sx+swatchSize, y+20+swatchSize))
		}
		y += swatchRow
	}

	if !c.spotlightMode() {
		for i, s := range c.raySliders {
			track(&s.Slider)
			if i == 1 {
				swatches(&c.rayColors)
			}
		}
		return
	}

	track(&c.spotSize.Slider)
	bx := inner
	for i, o := range c.source.Options {
		bw := int(text.Advance(o.Label, c.faces.ui)) + 16
		c.source.Rects[i] = image.Rect(bx, y+20, bx+bw, y+40)
		bx += bw + 8
	}
	y += sourceRow
	if c.source.Selected() == sourcePresets {
		swatches(&c.spotColors)
		return
	}
	c.pick.Rect = image.Rect(inner, y+20, inner+32, y+52)
	c.entry.Rect = image.Rect(inner+40, y+20, inner+innerW, y+52)
	c.preview = image.Rect(inner, y+60, inner+innerW, y+84)
}

// update applies this tick's input to s and reports whether s changed.
func (c *controls) update(m ui.Mouse, s *config.Settings) bool {
	changed := false
	if m.JustPressed && c.background.Click(m.Pos) {
		s.Background = config.Background(c.background.Selected())
		return true
	}

	p := c.panel()
	if m.JustPressed && p.Click(m.Pos) {
		return false
	}
	if p.Collapsed {
		return false
	}

	apply := func(sc *sliderControl) {
		if sc.Update(m) {
			sc.apply(s, sc.Value)
			changed = true
		}
	}

	if !c.spotlightMode() {
		for _, sc := range c.raySliders {
			apply(sc)
		}
		if m.JustPressed && c.rayColors.Click(m.Pos) {
			s.RayLines.Color = c.rayColors.Value
			changed = true
		}
		return changed
	}

	apply(c.spotSize)
	if m.JustPressed && c.source.Click(m.Pos) {
		s.Spotlight.UseCustom = c.source.Selected() == sourceCustom
		return true
	}
	if !s.Spotlight.UseCustom {
		if m.JustPressed && c.spotColors.Click(m.Pos) {
			s.Spotlight.Color = c.spotColors.Value
			changed = true
		}
		return changed
	}

	if c.pick.Update(m) {
		hex, err := c.dialogs.PickColor(c.custom.Value())
		changed = c.applyCustom(s, hex, err, c.custom.Pick) || changed
	}
	if c.entry.Update(m) {
		hex, err := c.dialogs.EnterHex(c.custom.Draft())
		changed = c.applyCustom(s, hex, err, func(v string) error {
			c.custom.SetDraft(v)
			return c.custom.Submit()
		}) || changed
	}
	return changed
}

func (c *controls) applyCustom(s *config.Settings, hex string, dialogErr error, submit func(string) error) bool {
	if dialogErr != nil {
		if !canceled(dialogErr) {
			c.logger.Warn("Color dialog failed", slog.Any("error", dialogErr))
			c.err = fmt.Errorf("color dialog: %w", dialogErr)
		}
		return false
	}
	if err := submit(hex); err != nil {
		c.logger.Info("Custom color rejected", slog.String("input", hex), slog.Any("error", err))
		return false
	}
	c.err = nil
	if s.Spotlight.CustomColor == c.custom.Value() {
		return false
	}
	s.Spotlight.CustomColor = c.custom.Value()
	c.logger.Debug("Custom color applied", slog.String("color", s.Spotlight.CustomColor))
	return true
}

func (c *controls) draw(dst *ebiten.Image, s config.Settings) {
	c.drawToggle(dst, c.background, 0.5)

	p := c.panel()
	r := p.Rect
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), color.NRGBA{A: 0xb3}, true)
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), panelHeader, white(0.05), true)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, white(0.1), true)
	c.label(dst, p.Title, r.Min.X+panelPadding, r.Min.Y+panelHeader/2, color.White)
	c.drawChevron(dst, r.Max.X-panelPadding-8, r.Min.Y+panelHeader/2, p.Collapsed)
	if p.Collapsed {
		return
	}

	if !c.spotlightMode() {
		for _, sc := range c.raySliders {
			c.drawSlider(dst, &sc.Slider)
		}
		c.drawSwatches(dst, &c.rayColors)
		return
	}

	c.drawSlider(dst, &c.spotSize.Slider)
	if len(c.source.Rects) > 0 {
		c.label(dst, "Color Mode", c.source.Rects[0].Min.X, c.source.Rects[0].Min.Y-12, white(0.7))
	}
	c.drawToggle(dst, c.source, 0)
	if !s.Spotlight.UseCustom {
		c.drawSwatches(dst, &c.spotColors)
		return
	}

	c.label(dst, "Custom Color", c.pick.Rect.Min.X, c.pick.Rect.Min.Y-12, white(0.7))
	pr := c.pick.Rect
	vector.DrawFilledRect(dst, float32(pr.Min.X), float32(pr.Min.Y), float32(pr.Dx()), float32(pr.Dy()), cssColor(c.custom.Value(), 1), true)
	er := c.entry.Rect
	vector.DrawFilledRect(dst, float32(er.Min.X), float32(er.Min.Y), float32(er.Dx()), float32(er.Dy()), color.NRGBA{A: 0x4d}, true)
	vector.StrokeRect(dst, float32(er.Min.X), float32(er.Min.Y), float32(er.Dx()), float32(er.Dy()), 1, white(0.1), true)
	c.label(dst, c.custom.Draft(), er.Min.X+8, er.Min.Y+er.Dy()/2, color.White)
	vr := c.preview
	vector.DrawFilledRect(dst, float32(vr.Min.X), float32(vr.Min.Y), float32(vr.Dx()), float32(vr.Dy()), cssColor(c.custom.Draft(), 1), true)
}

func (c *controls) drawToggle(dst *ebiten.Image, t *ui.Toggle, bgAlpha float64) {
	if len(t.Rects) == 0 {
		return
	}
	outer := t.Rects[0].Union(t.Rects[len(t.Rects)-1]).Inset(-4)
	if bgAlpha > 0 {
		vector.DrawFilledRect(dst, float32(outer.Min.X), float32(outer.Min.Y), float32(outer.Dx()), float32(outer.Dy()), color.NRGBA{A: uint8(bgAlpha * 0xff)}, true)
	}
	for i, r := range t.Rects {
		o := t.Options[i]
		fg := white(0.5)
		if o.Value == t.Selected() {
			vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), white(0.2), true)
			fg = white(1)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.Min.X+r.Dx()/2), float64(r.Min.Y+r.Dy()/2))
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(dst, o.Label, c.faces.ui, op)
	}
}

func (c *controls) drawSlider(dst *ebiten.Image, s *ui.Slider) {
	t := s.Track
	c.label(dst, s.Label, t.Min.X, t.Min.Y-12, white(0.7))

	value := formatValue(s.Value)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(t.Max.X), float64(t.Min.Y-12))
	op.PrimaryAlign = text.AlignEnd
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(white(0.7))
	text.Draw(dst, value, c.faces.ui, op)

	vector.DrawFilledRect(dst, float32(t.Min.X), float32(t.Min.Y), float32(t.Dx()), float32(t.Dy()), white(0.1), true)
	thumb := float32(t.Min.X) + float32(s.Fraction())*float32(t.Dx())
	vector.DrawFilledRect(dst, float32(t.Min.X), float32(t.Min.Y), thumb-float32(t.Min.X), float32(t.Dy()), white(0.35), true)
	vector.DrawFilledCircle(dst, thumb, float32(t.Min.Y)+float32(t.Dy())/2, 7, color.White, true)
}

func (c *controls) drawSwatches(dst *ebiten.Image, s *ui.Swatches) {
	if len(s.Rects) == 0 {
		return
	}
	c.label(dst, s.Label, s.Rects[0].Min.X, s.Rects[0].Min.Y-12, white(0.7))
	for i, r := range s.Rects {
		opt := s.Options[i]
		cx := float32(r.Min.X) + float32(r.Dx())/2
		cy := float32(r.Min.Y) + float32(r.Dy())/2
		radius := float32(r.Dx()) / 2
		if opt == config.Rainbow {
			drawRainbowDisc(dst, cx, cy, radius)
		} else {
			vector.DrawFilledCircle(dst, cx, cy, radius, cssColor(opt, 1), true)
		}
		if opt == s.Value {
			vector.StrokeCircle(dst, cx, cy, radius-1, 2, color.White, true)
		}
	}
}

// drawRainbowDisc paints the swatch of the cycling mode as hue wedges.
func drawRainbowDisc(dst *ebiten.Image, cx, cy, radius float32) {
	const wedges = 12
	for i := 0; i < wedges; i++ {
		var path vector.Path
		a0 := float32(i) / wedges * 2 * math.Pi
		a1 := float32(i+1) / wedges * 2 * math.Pi
		path.MoveTo(cx, cy)
		path.Arc(cx, cy, radius, a0, a1, vector.Clockwise)
		path.Close()
		fillPath(dst, &path, hueColor(float64(i)/wedges*360))
	}
}

func (c *controls) drawChevron(dst *ebiten.Image, x, y int, collapsed bool) {
	fx, fy := float32(x), float32(y)
	dy := float32(3)
	if collapsed {
		dy = -dy
	}
	vector.StrokeLine(dst, fx-5, fy-dy, fx, fy+dy, 2, white(0.7), true)
	vector.StrokeLine(dst, fx, fy+dy, fx+5, fy-dy, 2, white(0.7), true)
}

func (c *controls) label(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, c.faces.ui, op)
}
