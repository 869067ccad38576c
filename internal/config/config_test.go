package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoadOverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	data := `
background: spotlight
rayLines:
  count: 500
  color: "#3b82f6"
  tailLength: 1
spotlight:
  size: 800
  color: rainbow
  customColor: "#12"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Background != BackgroundSpotlight {
		t.Fatalf("background = %q", s.Background)
	}
	if s.RayLines.Count != TrailCountMax {
		t.Fatalf("count = %d, want %d", s.RayLines.Count, TrailCountMax)
	}
	if s.RayLines.TailLength != TailLengthMin {
		t.Fatalf("tail length = %d, want %d", s.RayLines.TailLength, TailLengthMin)
	}
	if s.RayLines.Color != "#3b82f6" {
		t.Fatalf("color = %q", s.RayLines.Color)
	}
	if s.RayLines.LineWidth != 10 {
		t.Fatalf("unset line width should keep default, got %v", s.RayLines.LineWidth)
	}
	if s.Spotlight.Size != 800 {
		t.Fatalf("spotlight size = %d", s.Spotlight.Size)
	}
	if s.Spotlight.Color != "white" {
		t.Fatalf("rainbow is not a spotlight color, got %q", s.Spotlight.Color)
	}
	if s.Spotlight.CustomColor != "#ffffff" {
		t.Fatalf("invalid custom color should fall back, got %q", s.Spotlight.CustomColor)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rayLines: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIsValidHex(t *testing.T) {
	cases := map[string]bool{
		"#3b82f6": true,
		"#FFF":    true,
		"#12":     false,
		"#1234":   false,
		"3b82f6":  false,
		"#gggggg": false,
		"white":   false,
		"":        false,
	}
	for in, want := range cases {
		if got := IsValidHex(in); got != want {
			t.Fatalf("IsValidHex(%q) = %v, want %v", in, got, want)
		}
	}
	if err := ValidateHex("#12"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("ValidateHex(#12) = %v", err)
	}
}

func TestSpotlightPaletteExcludesRainbow(t *testing.T) {
	p := SpotlightPalette()
	if len(p) != len(Palette)-1 {
		t.Fatalf("got %v", p)
	}
	for _, c := range p {
		if c == Rainbow {
			t.Fatal("rainbow must not be offered for the spotlight")
		}
	}
	if Palette[len(Palette)-1] != Rainbow {
		t.Fatal("SpotlightPalette mutated Palette")
	}
}

func TestEffectiveColor(t *testing.T) {
	s := Default().Spotlight
	if s.EffectiveColor() != "white" {
		t.Fatalf("got %q", s.EffectiveColor())
	}
	s.UseCustom = true
	s.CustomColor = "#abcdef"
	if s.EffectiveColor() != "#abcdef" {
		t.Fatalf("got %q", s.EffectiveColor())
	}
}

func TestClampKeepsNamedRayColors(t *testing.T) {
	for _, c := range []string{"red", "Crimson", "white", "#abc", Rainbow} {
		s := Default()
		s.RayLines.Color = c
		s.Clamp()
		if s.RayLines.Color != c {
			t.Errorf("Clamp changed %q to %q", c, s.RayLines.Color)
		}
	}

	s := Default()
	s.RayLines.Color = "no-such-color"
	s.Clamp()
	if s.RayLines.Color != Default().RayLines.Color {
		t.Fatalf("unknown color kept as %q", s.RayLines.Color)
	}
}
