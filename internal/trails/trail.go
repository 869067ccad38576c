package trails

import "math"

// Point is a node of a trail. It has no identity beyond its index.
type Point struct {
	X, Y   float64
	VX, VY float64
}

// PathBuilder receives the smoothed outline of a trail. *vector.Path from
// ebiten satisfies it.
type PathBuilder interface {
	MoveTo(x, y float32)
	QuadTo(x1, y1, x2, y2 float32)
}

// Trail is a chain of spring-coupled points. The head is pulled toward the
// target and every following point toward its predecessor, with stiffness
// decaying by tension per link.
type Trail struct {
	points    []Point
	spring    float64
	friction  float64
	dampening float64
	tension   float64
}

// NewTrail creates a trail of n points resting at the origin. n is raised
// to two if smaller.
func NewTrail(n int, spring, friction, dampening, tension float64) *Trail {
	if n < 2 {
		n = 2
	}
	return &Trail{
		points:    make([]Point, n),
		spring:    spring,
		friction:  friction,
		dampening: dampening,
		tension:   tension,
	}
}

// Len is the number of points in the chain. It never changes.
func (t *Trail) Len() int { return len(t.points) }

// Spring is the stiffness pulling the head toward the target.
func (t *Trail) Spring() float64 { return t.spring }

// Friction scales every velocity once per tick.
func (t *Trail) Friction() float64 { return t.friction }

// Dampening is the share of a point's velocity handed to its successor.
func (t *Trail) Dampening() float64 { return t.dampening }

// Points returns a copy of the chain.
func (t *Trail) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Head returns the first point of the chain.
func (t *Trail) Head() Point { return t.points[0] }

// SpringAt is the stiffness acting on point i.
func (t *Trail) SpringAt(i int) float64 {
	return SpringAt(t.spring, t.tension, i)
}

// SpringAt returns spring * tension^i.
func SpringAt(spring, tension float64, i int) float64 {
	return spring * math.Pow(tension, float64(i))
}

// Update advances the chain one tick toward target.
func (t *Trail) Update(target Point) {
	head := &t.points[0]
	k := t.SpringAt(0)
	head.VX += (target.X - head.X) * k
	head.VY += (target.Y - head.Y) * k

	for i := range t.points {
		p := &t.points[i]
		if i > 0 {
			prev := &t.points[i-1]
			k := t.SpringAt(i)
			p.VX += (prev.X - p.X) * k
			p.VY += (prev.Y - p.Y) * k
			p.VX += prev.VX * t.dampening
			p.VY += prev.VY * t.dampening
		}
		p.VX *= t.friction
		p.VY *= t.friction
		p.X += p.VX
		p.Y += p.VY
	}
}

// Draw traces the chain as quadratic curves through the midpoints of
// consecutive points, ending exactly on the last point.
func (t *Trail) Draw(path PathBuilder) {
	pts := t.points
	n := len(pts)

	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for i := 1; i < n-2; i++ {
		a, b := pts[i], pts[i+1]
		path.QuadTo(float32(a.X), float32(a.Y), float32((a.X+b.X)*0.5), float32((a.Y+b.Y)*0.5))
	}
	a, b := pts[n-2], pts[n-1]
	path.QuadTo(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))
}
