package physics

import "math"

// Euler is a rotation in radians, applied roll (Z) first, then pitch (X), then yaw (Y).
type Euler struct {
	Pitch float64 // About X
	Yaw   float64 // About Y
	Roll  float64 // About Z
}

// Rotate applies the rotation to v.
func (e Euler) Rotate(v Vec3) Vec3 {
	// Roll about Z
	sr, cr := math.Sincos(e.Roll)
	v = Vec3{v.X*cr - v.Y*sr, v.X*sr + v.Y*cr, v.Z}
	// Pitch about X
	sp, cp := math.Sincos(e.Pitch)
	v = Vec3{v.X, v.Y*cp - v.Z*sp, v.Y*sp + v.Z*cp}
	// Yaw about Y
	sy, cy := math.Sincos(e.Yaw)
	return Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
}

// Forward returns the rotated +Z axis.
func (e Euler) Forward() Vec3 {
	return e.Rotate(Vec3{Z: 1})
}

// Right returns the rotated +X axis.
func (e Euler) Right() Vec3 {
	return e.Rotate(Vec3{X: 1})
}

// Add returns the component-wise sum of two rotations.
func (e Euler) Add(o Euler) Euler {
	return Euler{e.Pitch + o.Pitch, e.Yaw + o.Yaw, e.Roll + o.Roll}
}

// Scale returns the rotation with every angle multiplied by s.
func (e Euler) Scale(s float64) Euler {
	return Euler{e.Pitch * s, e.Yaw * s, e.Roll * s}
}
