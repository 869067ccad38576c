package trails

import (
	"math/rand/v2"

	"github.com/iburimskiy/hero-trails/internal/config"
)

// Params configures a Field. Changing any of them means building a new one.
type Params struct {
	Count      int
	TailLength int
	Spring     float64
	Friction   float64
	Dampening  float64
	Tension    float64
}

// ParamsFromConfig maps the ray-lines settings onto field parameters.
func ParamsFromConfig(c config.RayLines) Params {
	return Params{
		Count:      c.Count,
		TailLength: c.TailLength,
		Spring:     c.FollowDistance,
		Friction:   config.BaseFriction,
		Dampening:  c.FadeSpeed,
		Tension:    config.Tension,
	}
}

// Field owns every trail of the animation.
type Field struct {
	params Params
	trails []*Trail
}

// NewField builds Count trails with jittered stiffness and friction. Later
// trails get a slightly stiffer base so the bundle fans out. A nil rng uses
// the global source.
func NewField(p Params, rng *rand.Rand) *Field {
	if p.Count < 0 {
		p.Count = 0
	}
	if p.TailLength < config.MinTailLength {
		p.TailLength = config.MinTailLength
	}
	if p.Tension == 0 {
		p.Tension = config.Tension
	}

	random := rand.Float64
	if rng != nil {
		random = rng.Float64
	}

	f := &Field{params: p, trails: make([]*Trail, 0, p.Count)}
	for i := 0; i < p.Count; i++ {
		base := p.Spring + float64(i)/float64(p.Count)*config.SpringFan
		spring := base + config.SpringJitter*random() - config.SpringJitter/2
		friction := p.Friction + config.FrictionJitter*random() - config.FrictionJitter/2
		f.trails = append(f.trails, NewTrail(p.TailLength, spring, friction, p.Dampening, p.Tension))
	}
	return f
}

func (f *Field) Len() int { return len(f.trails) }

// Params returns the parameters after defaults were applied.
func (f *Field) Params() Params { return f.params }

// Trails exposes the trails in draw order. The slice is shared.
func (f *Field) Trails() []*Trail { return f.trails }

// Tick advances every trail toward target and hands it to visit, in order.
// visit may be nil.
func (f *Field) Tick(target Point, visit func(*Trail)) {
	for _, t := range f.trails {
		t.Update(target)
		if visit != nil {
			visit(t)
		}
	}
}
