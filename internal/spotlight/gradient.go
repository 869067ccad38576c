package spotlight

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/hero-trails/internal/config"
)

// Stop is a gradient color stop. Pos is the fraction of the radius.
type Stop struct {
	Pos   float64
	Color colorful.Color
	Alpha float64
}

// The glow is transparent from this fraction of the radius outward.
const fadeOut = 0.8

var presets = map[string][3]string{
	"white":   {"#fafafa", "#f4f4f5", "#e4e4e7"},
	"#3b82f6": {"#93c5fd", "#60a5fa", "#3b82f6"},
	"#8b5cf6": {"#d8b4fe", "#c084fc", "#a855f7"},
	"#ec4899": {"#f9a8d4", "#f472b6", "#ec4899"},
	"#f97316": {"#fdba74", "#fb923c", "#f97316"},
}

// Stops returns the gradient stops for a spotlight color. Preset colors use
// three lighter-to-base shades; other hex colors use the color itself at
// rising alpha. Unknown values fall back to white.
func Stops(c string) []Stop {
	c = strings.ToLower(c)
	shades, ok := presets[c]
	if !ok && config.IsValidHex(c) {
		base, err := colorful.Hex(c)
		if err == nil {
			return []Stop{
				{Pos: 0, Color: base, Alpha: 0x33 / 255.0},
				{Pos: fadeOut / 3, Color: base, Alpha: 0x66 / 255.0},
				{Pos: fadeOut * 2 / 3, Color: base, Alpha: 0x99 / 255.0},
				{Pos: fadeOut, Color: base, Alpha: 0},
			}
		}
	}
	if !ok {
		shades = presets["white"]
	}

	stops := make([]Stop, 0, 4)
	for i, hex := range shades {
		cc, _ := colorful.Hex(hex)
		stops = append(stops, Stop{Pos: fadeOut * float64(i) / 3, Color: cc, Alpha: 1})
	}
	last := stops[len(stops)-1]
	return append(stops, Stop{Pos: fadeOut, Color: last.Color, Alpha: 0})
}

// At samples the stops at fraction t of the radius.
func At(stops []Stop, t float64) (colorful.Color, float64) {
	if t <= stops[0].Pos {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Pos {
			u := (t - a.Pos) / (b.Pos - a.Pos)
			return a.Color.BlendRgb(b.Color, u), a.Alpha + (b.Alpha-a.Alpha)*u
		}
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

// Gradient rasterizes a size×size radial glow.
func Gradient(size int, c string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}

	stops := Stops(c)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			t := math.Hypot(dx, dy) / r
			cc, a := At(stops, t)
			if a <= 0 {
				continue
			}
			cr, cg, cb := cc.Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: cr, G: cg, B: cb, A: uint8(math.Round(a * 255))})
		}
	}
	return img
}

// Cache keeps the last rasterized gradient so it is rebuilt only when the
// size or color changes.
type Cache struct {
	size  int
	color string
	img   *image.NRGBA
}

// Get returns the gradient for size and color and whether it was rebuilt.
func (c *Cache) Get(size int, col string) (*image.NRGBA, bool) {
	if c.img != nil && c.size == size && c.color == col {
		return c.img, false
	}
	c.size, c.color = size, col
	c.img = Gradient(size, col)
	return c.img, true
}
