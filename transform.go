package navigation

import "github.com/go-gl/mathgl/mgl64"

// Transform places a geometry source in the world
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Apply maps a local point to world space: rotation first, then translation.
// A zero rotation is read as the identity.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	if t.Rotation != (mgl64.Quat{}) {
		p = t.Rotation.Rotate(p)
	}
	return p.Add(t.Position)
}
