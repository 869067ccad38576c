// Package spotlight implements the cursor-tracking glow background: a
// critically damped spring that chases the pointer and the radial gradient
// painted at its position.
package spotlight

import (
	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/hero-trails/internal/config"
)

// Follower eases a point toward the pointer without overshoot.
type Follower struct {
	spring harmonica.Spring

	x, y   float64
	vx, vy float64
	tx, ty float64

	hovered      bool
	forceVisible bool
	opacity      float64
	fadeStep     float64
}

func NewFollower(fps int, forceVisible bool) *Follower {
	return &Follower{
		spring:       harmonica.NewSpring(harmonica.FPS(fps), config.SpotlightFrequency, config.SpotlightDamping),
		forceVisible: forceVisible,
		fadeStep:     1.0 / config.SpotlightFadeTicks,
	}
}

// SetTarget moves the point the follower is chasing. Coordinates are
// relative to the card.
func (f *Follower) SetTarget(x, y float64) {
	f.tx, f.ty = x, y
}

func (f *Follower) SetHovered(h bool)      { f.hovered = h }
func (f *Follower) SetForceVisible(v bool) { f.forceVisible = v }

// Visible reports whether the glow is fading in or shown.
func (f *Follower) Visible() bool { return f.forceVisible || f.hovered }

// Update advances the spring and the fade by one tick.
func (f *Follower) Update() {
	f.x, f.vx = f.spring.Update(f.x, f.vx, f.tx)
	f.y, f.vy = f.spring.Update(f.y, f.vy, f.ty)

	target := 0.0
	if f.Visible() {
		target = 1
	}
	switch {
	case f.opacity < target:
		f.opacity = min(target, f.opacity+f.fadeStep)
	case f.opacity > target:
		f.opacity = max(target, f.opacity-f.fadeStep)
	}
}

func (f *Follower) Center() (x, y float64) { return f.x, f.y }

// TopLeft is where a glow of the given size is drawn so it stays centered
// on the follower.
func (f *Follower) TopLeft(size float64) (x, y float64) {
	return f.x - size/2, f.y - size/2
}

// Opacity is the current fade level in [0, 1].
func (f *Follower) Opacity() float64 { return f.opacity }
