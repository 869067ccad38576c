// Package ui holds the state of the hero's controls. Drawing and input
// polling live in the game package; everything here is plain data plus
// hit testing so it can be exercised without a window.
package ui

import (
	"image"
	"math"
	"slices"

	"github.com/iburimskiy/hero-trails/internal/config"
)

// Mouse is the pointer state for one tick.
type Mouse struct {
	Pos          image.Point
	Down         bool
	JustPressed  bool
	JustReleased bool
}

// Button tracks hover and press so a click fires on release inside the
// button, after a press that also started inside it.
type Button struct {
	Label   string
	Rect    image.Rectangle
	Hovered bool
	Pressed bool
}

// Update returns true when the button was clicked this tick.
func (b *Button) Update(m Mouse) bool {
	b.Hovered = m.Pos.In(b.Rect)
	if b.Hovered && m.JustPressed {
		b.Pressed = true
	}
	clicked := false
	if m.JustReleased {
		clicked = b.Pressed && b.Hovered
		b.Pressed = false
	}
	return clicked
}

type Option struct {
	Label string
	Value string
}

// Toggle is a segmented control with exactly one selected option.
type Toggle struct {
	Options  []Option
	Rects    []image.Rectangle
	selected string
}

func NewToggle(options []Option, defaultValue string) *Toggle {
	t := &Toggle{Options: options, Rects: make([]image.Rectangle, len(options))}
	if defaultValue == "" && len(options) > 0 {
		defaultValue = options[0].Value
	}
	t.selected = defaultValue
	return t
}

func (t *Toggle) Selected() string { return t.selected }

// Select switches to value and reports whether the selection changed.
// Values that are not options are ignored.
func (t *Toggle) Select(value string) bool {
	if value == t.selected {
		return false
	}
	if !slices.ContainsFunc(t.Options, func(o Option) bool { return o.Value == value }) {
		return false
	}
	t.selected = value
	return true
}

// Click selects the option under p, if any.
func (t *Toggle) Click(p image.Point) bool {
	for i, r := range t.Rects {
		if p.In(r) {
			return t.Select(t.Options[i].Value)
		}
	}
	return false
}

// Panel is a titled, collapsible container.
type Panel struct {
	Title     string
	Rect      image.Rectangle
	Header    image.Rectangle
	Collapsed bool
}

// Click toggles the panel when the header is hit.
func (p *Panel) Click(pt image.Point) bool {
	if !pt.In(p.Header) {
		return false
	}
	p.Collapsed = !p.Collapsed
	return true
}

// Slider maps a horizontal track onto [Min, Max] in Step increments.
type Slider struct {
	Label    string
	Min      float64
	Max      float64
	Step     float64
	Value    float64
	Track    image.Rectangle
	Dragging bool
}

// Snap clamps v to the range and rounds it to the nearest step.
func (s *Slider) Snap(v float64) float64 {
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		// drop float noise from n*Step
		v = math.Round(v*1e6) / 1e6
		v = math.Min(s.Max, v)
	}
	return v
}

// Fraction is the thumb position in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Update handles dragging and reports whether the value changed.
func (s *Slider) Update(m Mouse) bool {
	if m.JustPressed && m.Pos.In(s.Track.Inset(-6)) {
		s.Dragging = true
	}
	if !m.Down {
		s.Dragging = false
	}
	if !s.Dragging || s.Track.Dx() == 0 {
		return false
	}
	frac := float64(m.Pos.X-s.Track.Min.X) / float64(s.Track.Dx())
	v := s.Snap(s.Min + frac*(s.Max-s.Min))
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// Swatches is a one-of-many color picker.
type Swatches struct {
	Label   string
	Options []string
	Rects   []image.Rectangle
	Value   string
}

// Click selects the swatch under p and reports whether the value changed.
func (s *Swatches) Click(p image.Point) bool {
	for i, r := range s.Rects {
		if i < len(s.Options) && p.In(r) {
			if s.Options[i] == s.Value {
				return false
			}
			s.Value = s.Options[i]
			return true
		}
	}
	return false
}

// CustomColor holds an applied hex color and an edit buffer. Only strict
// #rgb or #rrggbb drafts are applied; anything else reverts the buffer.
type CustomColor struct {
	value string
	draft string
}

func NewCustomColor(value string) *CustomColor {
	if !config.IsValidHex(value) {
		value = "#ffffff"
	}
	return &CustomColor{value: value, draft: value}
}

func (c *CustomColor) Value() string     { return c.value }
func (c *CustomColor) Draft() string     { return c.draft }
func (c *CustomColor) SetDraft(s string) { c.draft = s }

// Submit applies the draft. It returns config.ErrInvalidColor and restores
// the draft to the applied value when the draft is malformed.
func (c *CustomColor) Submit() error {
	if err := config.ValidateHex(c.draft); err != nil {
		c.draft = c.value
		return err
	}
	c.value = c.draft
	return nil
}

// Pick applies a color from a native picker immediately.
func (c *CustomColor) Pick(hex string) error {
	c.draft = hex
	return c.Submit()
}
