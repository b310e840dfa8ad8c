package mesh

import (
	"slices"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// Lookup answers the block at a world position outside the chunk being
// meshed.
type Lookup func(x, y, z int) block.Type

// TintFunc returns the vertex colour of material m in world column (x, z).
// ok=false leaves the vertex white. Each quad corner is tinted from the column
// it lies over, so a merged rectangle blends between the colours of its edge
// columns.
type TintFunc func(x, z int, m Material) (c mgl32.Vec3, ok bool)

// Options controls how a chunk is meshed.
type Options struct {
	// Greedy merges coplanar faces of opaque cubes into rectangles.
	Greedy bool
	// LiquidSurfaceDrop lowers the top face of liquids below the block top.
	LiquidSurfaceDrop float32
	Tint              TintFunc
}

// DefaultOptions returns greedy meshing with a slightly sunken water surface.
func DefaultOptions() Options {
	return Options{Greedy: true, LiquidSurfaceDrop: 0.125}
}

var white = mgl32.Vec3{1, 1, 1}

type builder struct {
	grid   *voxel.Grid
	lookup Lookup
	opts   Options
	ox, oz int
	height int

	surfaces  map[Material]*Surface
	collision Collision
}

// Build meshes one chunk. Neighbour cells outside the chunk are answered by
// lookup in world coordinates; nil treats them as air. The grid is only read.
func Build(grid *voxel.Grid, pos voxel.ChunkPos, lookup Lookup, opts Options) *Mesh {
	b := &builder{
		grid:     grid,
		lookup:   lookup,
		opts:     opts,
		height:   grid.Height(),
		surfaces: make(map[Material]*Surface),
	}
	b.ox, b.oz = pos.Origin()

	b.perVoxel()
	if opts.Greedy {
		b.greedy(b.renderKey, b.emitRender)
	}
	b.greedy(b.collisionKey, b.emitCollision)

	m := &Mesh{
		Origin:    mgl32.Vec3{float32(b.ox), 0, float32(b.oz)},
		Collision: b.collision,
	}
	for _, s := range b.surfaces {
		m.Surfaces = append(m.Surfaces, s)
	}
	slices.SortFunc(m.Surfaces, func(a, c *Surface) int {
		switch {
		case a.Material.less(c.Material):
			return -1
		case c.Material.less(a.Material):
			return 1
		}
		return 0
	})
	return m
}

// at resolves chunk-local coordinates, falling back to the lookup outside the
// chunk's columns. Outside the vertical range everything is air.
func (b *builder) at(x, y, z int) block.Type {
	if y < 0 || y >= b.height {
		return block.Air
	}
	if x >= 0 && x < voxel.ChunkSize && z >= 0 && z < voxel.ChunkSize {
		return b.grid.At(x, y, z)
	}
	if b.lookup == nil {
		return block.Air
	}
	return b.lookup(b.ox+x, y, b.oz+z)
}

func (b *builder) neighbour(x, y, z int, f Face) block.Type {
	dx, dy, dz := f.Normal()
	return b.at(x+dx, y+dy, z+dz)
}

// faceVisible reports whether the face of self towards nb must be drawn.
func faceVisible(self, nb block.Type) bool {
	switch {
	case nb == block.Air:
		return true
	case self.IsOpaque():
		return !nb.IsOpaque()
	case self.IsTransparent():
		return !nb.IsOpaque() && nb != self
	}
	return false
}

// perVoxel emits every face that the greedy pass does not cover.
func (b *builder) perVoxel() {
	for y := 0; y < b.height; y++ {
		if b.grid.SectionEmpty(y / voxel.SectionHeight) {
			y += voxel.SectionHeight - 1 - y%voxel.SectionHeight
			continue
		}
		for z := 0; z < voxel.ChunkSize; z++ {
			for x := 0; x < voxel.ChunkSize; x++ {
				t := b.grid.At(x, y, z)
				switch {
				case t == block.Air:
				case t.IsLiquid():
					b.liquid(x, y, z, t)
				case t.IsCross():
					b.cross(x, y, z, t)
				case t.IsOpaque() && b.opts.Greedy:
				default:
					for _, f := range Faces {
						if faceVisible(t, b.neighbour(x, y, z, f)) {
							b.emitRender(f, MaterialFor(t, f), [3]int{x, y, z}, [3]int{1, 1, 1})
						}
					}
				}
			}
		}
	}
}

// liquid emits the top face only, and only when no liquid or opaque block
// sits on top.
func (b *builder) liquid(x, y, z int, t block.Type) {
	above := b.at(x, y+1, z)
	// The sunken surface would be hidden inside an opaque block resting on
	// the water, so it is culled like a buried cube face.
	if above.IsLiquid() || above.IsOpaque() {
		return
	}
	s := b.surface(MaterialFor(t, FaceUp))
	drop := b.opts.LiquidSurfaceDrop
	base := mgl32.Vec3{float32(x), float32(y), float32(z)}
	var corners [4]mgl32.Vec3
	for i, ci := range faceCorners[FaceUp] {
		corners[i] = base.Add(cubeVerts[ci]).Sub(mgl32.Vec3{0, drop, 0})
	}
	b.appendQuad(s, corners, baseUVs, column{x, z}, column{x, z})
}

// crossQuads are the two diagonal planes of cross-shaped foliage.
var crossQuads = [2][4]mgl32.Vec3{
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	{{0, 0, 1}, {0, 1, 1}, {1, 1, 0}, {1, 0, 0}},
}

// cross emits both diagonals with both windings so they show from any side.
func (b *builder) cross(x, y, z int, t block.Type) {
	s := b.surface(Material{Block: t})
	base := mgl32.Vec3{float32(x), float32(y), float32(z)}
	for _, q := range crossQuads {
		var front, back [4]mgl32.Vec3
		for i := range q {
			front[i] = base.Add(q[i])
			back[3-i] = front[i]
		}
		b.appendQuad(s, front, baseUVs, column{x, z}, column{x, z})
		b.appendQuad(s, back, [4]mgl32.Vec2{baseUVs[3], baseUVs[2], baseUVs[1], baseUVs[0]}, column{x, z}, column{x, z})
	}
}

func (b *builder) surface(m Material) *Surface {
	s, ok := b.surfaces[m]
	if !ok {
		s = &Surface{Material: m}
		b.surfaces[m] = s
	}
	return s
}

// boxCorners scales the unit cube face f to a box of size at origin.
func boxCorners(f Face, origin, size [3]int) [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	for i, ci := range faceCorners[f] {
		v := cubeVerts[ci]
		out[i] = mgl32.Vec3{
			float32(origin[0]) + v[0]*float32(size[0]),
			float32(origin[1]) + v[1]*float32(size[1]),
			float32(origin[2]) + v[2]*float32(size[2]),
		}
	}
	return out
}

// emitRender appends face f of the box at origin with the given size. UVs span
// the box so tiled textures repeat once per block.
func (b *builder) emitRender(f Face, m Material, origin, size [3]int) {
	su := float32(size[faceUAxis[f]])
	sv := float32(size[faceVAxis[f]])
	var uvs [4]mgl32.Vec2
	for i, uv := range baseUVs {
		uvs[i] = mgl32.Vec2{uv[0] * su, uv[1] * sv}
	}
	lo := column{origin[0], origin[2]}
	hi := column{origin[0] + size[0] - 1, origin[2] + size[2] - 1}
	b.appendQuad(b.surface(m), boxCorners(f, origin, size), uvs, lo, hi)
}

func (b *builder) emitCollision(f Face, _ Material, origin, size [3]int) {
	c := &b.collision
	base := uint32(len(c.Positions))
	corners := boxCorners(f, origin, size)
	c.Positions = append(c.Positions, corners[:]...)
	for _, i := range quadIndices {
		c.Indices = append(c.Indices, base+i)
	}
}

// column is a chunk-local (x, z) pair.
type column struct{ x, z int }

// appendQuad adds a quad covering the columns lo..hi. Corners on the low edge
// of an axis take their tint from lo, the others from hi.
func (b *builder) appendQuad(s *Surface, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2, lo, hi column) {
	base := uint32(len(s.Positions))
	s.Positions = append(s.Positions, corners[:]...)
	s.UVs = append(s.UVs, uvs[:]...)
	if b.opts.Tint != nil {
		for _, c := range corners {
			x, z := lo.x, lo.z
			if c.X() > float32(lo.x) {
				x = hi.x
			}
			if c.Z() > float32(lo.z) {
				z = hi.z
			}
			tint, ok := b.opts.Tint(b.ox+x, b.oz+z, s.Material)
			if !ok {
				tint = white
			}
			s.Tints = append(s.Tints, tint)
		}
	}
	for _, i := range quadIndices {
		s.Indices = append(s.Indices, base+i)
	}
}
