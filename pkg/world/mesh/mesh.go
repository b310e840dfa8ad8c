package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Surface is one render bucket: the quads of a single material.
type Surface struct {
	Material  Material
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	// Tints is either empty or holds one colour per position.
	Tints   []mgl32.Vec3
	Indices []uint32
}

// QuadCount returns the number of quads in the surface.
func (s *Surface) QuadCount() int { return len(s.Indices) / 6 }

// Collision is the simplified geometry handed to the physics collaborator.
// It carries no materials.
type Collision struct {
	Positions []mgl32.Vec3
	Indices   []uint32
}

// QuadCount returns the number of quads in the collision buffer.
func (c *Collision) QuadCount() int { return len(c.Indices) / 6 }

// Mesh is the render and collision geometry of one chunk. Positions are
// chunk-local; Origin is the world position of the chunk's (0, 0, 0) corner.
type Mesh struct {
	Origin mgl32.Vec3
	// Surfaces are in draw order: opaque buckets first, blended ones last.
	Surfaces  []*Surface
	Collision Collision
}

// Surface returns the bucket for m, or nil.
func (m *Mesh) Surface(mat Material) *Surface {
	for _, s := range m.Surfaces {
		if s.Material == mat {
			return s
		}
	}
	return nil
}

// QuadCount returns the number of render quads across all buckets.
func (m *Mesh) QuadCount() int {
	n := 0
	for _, s := range m.Surfaces {
		n += s.QuadCount()
	}
	return n
}

// VertexCount returns the number of render vertices across all buckets.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, s := range m.Surfaces {
		n += len(s.Positions)
	}
	return n
}

// Empty reports whether the mesh has neither render nor collision geometry.
func (m *Mesh) Empty() bool {
	return len(m.Surfaces) == 0 && len(m.Collision.Indices) == 0
}

// Area returns the total render surface area.
func (m *Mesh) Area() float32 {
	var a float32
	for _, s := range m.Surfaces {
		a += quadArea(s.Positions)
	}
	return a
}

// CollisionArea returns the total collision surface area.
func (m *Mesh) CollisionArea() float32 {
	return quadArea(m.Collision.Positions)
}

func quadArea(pos []mgl32.Vec3) float32 {
	var a float32
	for i := 0; i+3 < len(pos); i += 4 {
		a += pos[i+1].Sub(pos[i]).Cross(pos[i+3].Sub(pos[i])).Len()
	}
	return a
}
