package config

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/image/colornames"
)

// Rainbow is the color mode that cycles the hue over time.
const Rainbow = "rainbow"

// ErrInvalidColor is returned for custom colors that are not #rgb or #rrggbb.
var ErrInvalidColor = errors.New("invalid hex color")

// Palette lists the selectable colors in display order.
var Palette = []string{"white", "#3b82f6", "#8b5cf6", "#ec4899", "#f97316", Rainbow}

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

func IsValidHex(s string) bool {
	return hexColor.MatchString(s)
}

func IsPaletteColor(s string) bool {
	return slices.Contains(Palette, s)
}

// IsNamedColor reports whether s is an SVG/CSS color keyword, in any case.
func IsNamedColor(s string) bool {
	_, ok := colornames.Map[strings.ToLower(s)]
	return ok
}

// SpotlightPalette is the palette without the rainbow mode.
func SpotlightPalette() []string {
	return slices.DeleteFunc(slices.Clone(Palette), func(c string) bool { return c == Rainbow })
}

// ValidateHex returns ErrInvalidColor when s is not a strict hex triplet.
func ValidateHex(s string) error {
	if !IsValidHex(s) {
		return ErrInvalidColor
	}
	return nil
}
