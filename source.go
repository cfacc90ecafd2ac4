package navigation

import (
	"github.com/akmonengine/navmesh/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// Source is a piece of walkable geometry: triangles in local space placed in
// the world by a Transform. Its triangles are submitted to the mesh again on
// the first step following any change.
type Source struct {
	Id        mesh.Owner
	transform Transform
	triangles [][3]mgl64.Vec3
	changed   bool

	// world space triangles, only set during a step
	world [][3]mgl64.Vec3
}

// NewSource creates a source owning a copy of triangles.
func NewSource(id mesh.Owner, transform Transform, triangles [][3]mgl64.Vec3) *Source {
	return &Source{
		Id:        id,
		transform: transform,
		triangles: append([][3]mgl64.Vec3(nil), triangles...),
		changed:   true,
	}
}

func (s *Source) Transform() Transform {
	return s.transform
}

func (s *Source) SetTransform(transform Transform) {
	if transform == s.transform {
		return
	}
	s.transform = transform
	s.changed = true
}

// Translate moves the source by offset.
func (s *Source) Translate(offset mgl64.Vec3) {
	if offset == (mgl64.Vec3{}) {
		return
	}
	s.transform.Position = s.transform.Position.Add(offset)
	s.changed = true
}

// SetTriangles replaces the local triangles of the source.
func (s *Source) SetTriangles(triangles [][3]mgl64.Vec3) {
	s.triangles = append([][3]mgl64.Vec3(nil), triangles...)
	s.changed = true
}

// Changed reports whether the source must be submitted again.
func (s *Source) Changed() bool {
	return s.changed
}

// WorldTriangles returns the triangles of the source in world space.
func (s *Source) WorldTriangles() [][3]mgl64.Vec3 {
	return lo.Map(s.triangles, func(t [3]mgl64.Vec3, _ int) [3]mgl64.Vec3 {
		return [3]mgl64.Vec3{
			s.transform.Apply(t[0]),
			s.transform.Apply(t[1]),
			s.transform.Apply(t[2]),
		}
	})
}
