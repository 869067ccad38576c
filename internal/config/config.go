package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1200
	WindowHeight = 600

	// Trail physics
	Tension        = 0.99
	BaseFriction   = 0.5
	SpringJitter   = 0.1
	FrictionJitter = 0.01
	SpringFan      = 0.025
	MinTailLength  = 2

	// Oscillator driving the rainbow hue
	HueAmplitude = 85
	HueFrequency = 0.0015
	HueOffset    = 285

	// Stroke alpha for hex and rainbow colors
	StrokeAlpha = 0.025

	// Canvas layer opacity over the card
	CanvasOpacity = 0.7

	// Spotlight
	SpotlightFrequency = 6.0
	SpotlightDamping   = 1.0
	SpotlightFadeTicks = 12

	// Slider ranges
	TrailCountMin      = 20
	TrailCountMax      = 150
	LineWidthMin       = 1
	LineWidthMax       = 20
	FollowDistanceMin  = 0.1
	FollowDistanceMax  = 0.9
	FollowDistanceStep = 0.05
	TailLengthMin      = 10
	TailLengthMax      = 100
	FadeSpeedMin       = 0.005
	FadeSpeedMax       = 0.05
	FadeSpeedStep      = 0.005
	SpotlightSizeMin   = 200
	SpotlightSizeMax   = 1000
)

// Background selects which animation is painted behind the hero copy.
type Background string

const (
	BackgroundCanvas    Background = "canvas"
	BackgroundSpotlight Background = "spotlight"
)

// RayLines configures the trail animation. Any change requires a restart
// of the render session.
type RayLines struct {
	Count          int     `yaml:"count"`
	LineWidth      float64 `yaml:"lineWidth"`
	Color          string  `yaml:"color"`
	FollowDistance float64 `yaml:"followDistance"`
	TailLength     int     `yaml:"tailLength"`
	FadeSpeed      float64 `yaml:"fadeSpeed"`
}

type Spotlight struct {
	Size         int    `yaml:"size"`
	Color        string `yaml:"color"`
	UseCustom    bool   `yaml:"useCustom"`
	CustomColor  string `yaml:"customColor"`
	ForceVisible bool   `yaml:"forceVisible"`
}

// EffectiveColor is the custom color when enabled, the preset otherwise.
func (s Spotlight) EffectiveColor() string {
	if s.UseCustom {
		return s.CustomColor
	}
	return s.Color
}

type Settings struct {
	Background Background `yaml:"background"`
	RayLines   RayLines   `yaml:"rayLines"`
	Spotlight  Spotlight  `yaml:"spotlight"`
}

func Default() Settings {
	return Settings{
		Background: BackgroundCanvas,
		RayLines: RayLines{
			Count:          80,
			LineWidth:      10,
			Color:          Rainbow,
			FollowDistance: 0.45,
			TailLength:     50,
			FadeSpeed:      0.025,
		},
		Spotlight: Spotlight{
			Size:         600,
			Color:        "white",
			CustomColor:  "#ffffff",
			ForceVisible: true,
		},
	}
}

// Load reads settings from a YAML file on top of the defaults. A missing
// file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings %s: %w", path, err)
	}

	s.Clamp()
	return s, nil
}

// Clamp forces every value into the range its control allows and replaces
// unusable colors with the defaults.
func (s *Settings) Clamp() {
	def := Default()

	switch s.Background {
	case BackgroundCanvas, BackgroundSpotlight:
	default:
		s.Background = def.Background
	}

	r := &s.RayLines
	r.Count = clampInt(r.Count, TrailCountMin, TrailCountMax)
	r.LineWidth = clampFloat(r.LineWidth, LineWidthMin, LineWidthMax)
	r.FollowDistance = clampFloat(r.FollowDistance, FollowDistanceMin, FollowDistanceMax)
	r.TailLength = clampInt(r.TailLength, TailLengthMin, TailLengthMax)
	r.FadeSpeed = clampFloat(r.FadeSpeed, FadeSpeedMin, FadeSpeedMax)
	// CSS color names stroke too, palette or not
	if !IsPaletteColor(r.Color) && !IsValidHex(r.Color) && !IsNamedColor(r.Color) {
		r.Color = def.RayLines.Color
	}

	sp := &s.Spotlight
	sp.Size = clampInt(sp.Size, SpotlightSizeMin, SpotlightSizeMax)
	if sp.Color == Rainbow || (!IsPaletteColor(sp.Color) && !IsValidHex(sp.Color)) {
		sp.Color = def.Spotlight.Color
	}
	if !IsValidHex(sp.CustomColor) {
		sp.CustomColor = def.Spotlight.CustomColor
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
