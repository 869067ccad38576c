package game

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// cssColor converts a hex or named color to NRGBA with the given alpha.
// Unknown values are white.
func cssColor(s string, alpha float64) color.NRGBA {
	a := uint8(math.Round(clamp01(alpha) * 255))
	if c, err := colorful.Hex(s); err == nil {
		r, g, b := c.Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: a}
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: a}
}

// white returns white at the given alpha, like Tailwind's white/NN.
func white(alpha float64) color.NRGBA {
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// hueColor is an opaque, fully saturated color for a hue in degrees.
func hueColor(h float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, 1, 0.5).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapText breaks s into lines no wider than maxWidth.
func wrapText(s string, face text.Face, maxWidth float64) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && text.Advance(candidate, face) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// formatValue prints a slider value with the shortest exact decimal.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
