package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/iburimskiy/hero-trails/internal/ui"
)

const (
	heroPadding     = 32
	bodyMaxWidth    = 512
	headlineLeading = 1.15
)

var (
	cardColor     = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	eyebrowAccent = cssColor("#a855f7", 1)
	headlineColor = cssColor("#e5e5e5", 1)
	bodyColor     = cssColor("#d4d4d4", 1)
)

const (
	headline = "Effortlessly Secure Code.\nDevelop faster"
	body     = "We help you detect vulnerabilities and mitigate risks in smart contracts, ensuring trust and security throughout your development process."
)

type faces struct {
	ui       text.Face
	eyebrow  text.Face
	headline text.Face
	body     text.Face
	button   text.Face
}

func loadFaces() (faces, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parsing bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return faces{}, fmt.Errorf("parsing regular font: %w", err)
	}

	newFace := func(f *opentype.Font, size float64) (text.Face, error) {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("creating %.0fpt face: %w", size, err)
		}
		return text.NewGoXFace(face), nil
	}

	fs := faces{ui: text.NewGoXFace(basicfont.Face7x13)}
	if fs.eyebrow, err = newFace(bold, 16); err != nil {
		return faces{}, err
	}
	if fs.headline, err = newFace(bold, 52); err != nil {
		return faces{}, err
	}
	if fs.body, err = newFace(regular, 18); err != nil {
		return faces{}, err
	}
	if fs.button, err = newFace(regular, 16); err != nil {
		return faces{}, err
	}
	return fs, nil
}

// hero lays out and draws the copy on the left half of the card.
type hero struct {
	faces  faces
	launch ui.Button
	body   []string
	top    float64
}

func newHero(fs faces) *hero {
	return &hero{faces: fs, launch: ui.Button{Label: "Launch App"}}
}

func (h *hero) layout(w, height int) {
	columnWidth := float64(w) - 2*heroPadding
	if w >= 768 {
		columnWidth = float64(w)/2 - 2*heroPadding
	}
	h.body = wrapText(body, h.faces.body, min(bodyMaxWidth, columnWidth))

	blockHeight := h.blockHeight()
	h.top = max(heroPadding, (float64(height)-blockHeight)/2)

	btnW := int(text.Advance(h.launch.Label, h.faces.button)) + 64
	btnY := int(h.top + blockHeight - 44)
	h.launch.Rect = image.Rect(heroPadding, btnY, heroPadding+btnW, btnY+44)
}

func (h *hero) lineHeight(f text.Face) float64 {
	m := f.Metrics()
	return m.HAscent + m.HDescent
}

func (h *hero) blockHeight() float64 {
	eyebrow := h.lineHeight(h.faces.eyebrow) + 32
	head := h.lineHeight(h.faces.headline)*headlineLeading*2 + 32
	para := 16 + h.lineHeight(h.faces.body)*1.4*float64(len(h.body))
	return eyebrow + head + para + 32 + 44
}

func (h *hero) draw(dst *ebiten.Image) {
	x := float64(heroPadding)
	y := h.top + 16

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(eyebrowAccent)
	text.Draw(dst, "AUDIT", h.faces.eyebrow, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(x+text.Advance("AUDIT", h.faces.eyebrow), y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, "AGENT", h.faces.eyebrow, op)
	y += h.lineHeight(h.faces.eyebrow) + 32

	op = &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = h.lineHeight(h.faces.headline) * headlineLeading
	op.ColorScale.ScaleWithColor(headlineColor)
	text.Draw(dst, headline, h.faces.headline, op)
	y += h.lineHeight(h.faces.headline)*headlineLeading*2 + 32

	y += 16
	for _, line := range h.body {
		op = &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(bodyColor)
		text.Draw(dst, line, h.faces.body, op)
		y += h.lineHeight(h.faces.body) * 1.4
	}

	h.drawButton(dst)
}

func (h *hero) drawButton(dst *ebiten.Image) {
	r := h.launch.Rect
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, ht := float32(r.Dx()), float32(r.Dy())

	if h.launch.Hovered {
		vector.DrawFilledRect(dst, x, y, w, ht, white(0.1), true)
	}
	vector.StrokeRect(dst, x, y, w, ht, 1, white(0.2), true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X)+float64(r.Dx())/2, float64(r.Min.Y)+float64(r.Dy())/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, h.launch.Label, h.faces.button, op)
}
