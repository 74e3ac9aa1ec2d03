// Package physics provides the vector math, bounds and broad-phase helpers used by the
// simulation. Motion is planar on the X/Z plane; Y is height.
package physics

import "math"

// Vec3 is a 3D vector. X is horizontal, Y is height, Z is depth (forward).
type Vec3 struct {
	X, Y, Z float64
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the vector magnitude.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. Near-zero vectors normalize to zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// ProjectOnPlane removes the component of v along the plane normal.
func (v Vec3) ProjectOnPlane(normal Vec3) Vec3 {
	n := normal.Normalize()
	return v.Sub(n.Scale(v.Dot(n)))
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// SpheresOverlap checks if two spheres overlap.
func SpheresOverlap(a Vec3, ra float64, b Vec3, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Rect is an axis-aligned rectangle on the X/Z plane.
type Rect struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	ZMin float64 `yaml:"z_min" json:"z_min"`
	ZMax float64 `yaml:"z_max" json:"z_max"`
}

// Clamp limits the X and Z components of p to the rectangle. Y is left untouched.
func (r Rect) Clamp(p Vec3) Vec3 {
	p.X = Clamp(p.X, r.XMin, r.XMax)
	p.Z = Clamp(p.Z, r.ZMin, r.ZMax)
	return p
}

// Contains reports whether p lies inside the rectangle (edges included).
func (r Rect) Contains(p Vec3) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Z >= r.ZMin && p.Z <= r.ZMax
}

// OverlapsCircle reports whether a circle of the given radius around p touches the rectangle.
func (r Rect) OverlapsCircle(p Vec3, radius float64) bool {
	dx := p.X - Clamp(p.X, r.XMin, r.XMax)
	dz := p.Z - Clamp(p.Z, r.ZMin, r.ZMax)
	return dx*dx+dz*dz <= radius*radius
}

// Grow returns the rectangle expanded by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	return Rect{r.XMin - margin, r.XMax + margin, r.ZMin - margin, r.ZMax + margin}
}

// Width returns the X extent.
func (r Rect) Width() float64 {
	return r.XMax - r.XMin
}

// Depth returns the Z extent.
func (r Rect) Depth() float64 {
	return r.ZMax - r.ZMin
}

// Valid reports whether the rectangle has non-negative extents.
func (r Rect) Valid() bool {
	return r.XMin <= r.XMax && r.ZMin <= r.ZMax
}

// Kinematic is the rigid-body state integrated by the simulation.
type Kinematic struct {
	Position Vec3
	Rotation Euler
	Velocity Vec3
}
