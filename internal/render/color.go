package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/iburimskiy/hero-trails/internal/config"
	"github.com/iburimskiy/hero-trails/internal/trails"
)

// StrokeColor is an 8-bit RGB color with a straight alpha in [0, 1].
type StrokeColor struct {
	R, G, B uint8
	A       float64
}

// NRGBA converts the color for image and ebiten APIs.
func (c StrokeColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}

// Premultiplied returns the color as premultiplied-alpha scale factors,
// the form ebiten's ColorScale expects.
func (c StrokeColor) Premultiplied() (r, g, b, a float32) {
	a = float32(c.A)
	return float32(c.R) / 0xff * a, float32(c.G) / 0xff * a, float32(c.B) / 0xff * a, a
}

func (c StrokeColor) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// ResolveStroke picks the stroke color for one frame. The rainbow mode
// advances osc and ignores any fixed color; hex colors get the low stroke
// alpha; named colors pass through opaque. ok is false for anything else.
func ResolveStroke(mode string, osc *trails.Oscillator) (c StrokeColor, ok bool) {
	switch {
	case mode == config.Rainbow:
		if osc == nil {
			return StrokeColor{}, false
		}
		return RainbowStroke(osc.Update()), true
	case strings.HasPrefix(mode, "#"):
		if !config.IsValidHex(mode) {
			return StrokeColor{}, false
		}
		cc, err := colorful.Hex(mode)
		if err != nil {
			return StrokeColor{}, false
		}
		r, g, b := cc.RGB255()
		return StrokeColor{R: r, G: g, B: b, A: config.StrokeAlpha}, true
	default:
		named, found := colornames.Map[strings.ToLower(mode)]
		if !found {
			return StrokeColor{}, false
		}
		return StrokeColor{R: named.R, G: named.G, B: named.B, A: float64(named.A) / 255}, true
	}
}

// RainbowStroke renders a hue as a fully saturated, mid-lightness color at
// the stroke alpha. The hue is rounded to whole degrees and wrapped.
func RainbowStroke(hue float64) StrokeColor {
	h := math.Mod(math.Round(hue), 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, 1, 0.5).Clamped().RGB255()
	return StrokeColor{R: r, G: g, B: b, A: config.StrokeAlpha}
}
