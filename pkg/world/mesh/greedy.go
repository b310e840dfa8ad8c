package mesh

import "github.com/OCharnyshevich/voxelworld/pkg/world/voxel"

// maskCell is one entry of a slice mask: the material of a visible face, or
// nothing.
type maskCell struct {
	m  Material
	ok bool
}

type keyFunc func(x, y, z int, f Face) (Material, bool)

type emitFunc func(f Face, m Material, origin, size [3]int)

func (b *builder) renderKey(x, y, z int, f Face) (Material, bool) {
	t := b.grid.At(x, y, z)
	if !t.IsOpaque() || !faceVisible(t, b.neighbour(x, y, z, f)) {
		return Material{}, false
	}
	return MaterialFor(t, f), true
}

// collisionKey ignores materials, so collision rectangles merge across block
// types. Liquids and foliage never collide.
func (b *builder) collisionKey(x, y, z int, f Face) (Material, bool) {
	if !b.grid.At(x, y, z).IsSolid() || b.neighbour(x, y, z, f).IsSolid() {
		return Material{}, false
	}
	return Material{}, true
}

// greedy sweeps the chunk once per face direction. Each slice perpendicular
// to the face normal becomes a 2D mask of visible faces keyed by material,
// and runs of equal cells are merged into rectangles: first as wide as
// possible along u, then as tall as every row allows along v.
func (b *builder) greedy(key keyFunc, emit emitFunc) {
	dims := [3]int{voxel.ChunkSize, b.height, voxel.ChunkSize}

	for _, f := range Faces {
		n, u, v := faceAxis[f], faceUAxis[f], faceVAxis[f]
		du, dv := dims[u], dims[v]
		mask := make([]maskCell, du*dv)

		for d := 0; d < dims[n]; d++ {
			if n == 1 && b.grid.SectionEmpty(d/voxel.SectionHeight) {
				continue
			}

			visible := false
			for j := 0; j < dv; j++ {
				for i := 0; i < du; i++ {
					var p [3]int
					p[n], p[u], p[v] = d, i, j
					m, ok := key(p[0], p[1], p[2], f)
					mask[i+j*du] = maskCell{m, ok}
					visible = visible || ok
				}
			}
			if !visible {
				continue
			}

			for j := 0; j < dv; j++ {
				for i := 0; i < du; {
					c := mask[i+j*du]
					if !c.ok {
						i++
						continue
					}

					w := 1
					for i+w < du && mask[i+w+j*du] == c {
						w++
					}
					h := 1
				grow:
					for j+h < dv {
						for k := 0; k < w; k++ {
							if mask[i+k+(j+h)*du] != c {
								break grow
							}
						}
						h++
					}

					var origin, size [3]int
					origin[n], origin[u], origin[v] = d, i, j
					size[n], size[u], size[v] = 1, w, h
					emit(f, c.m, origin, size)

					for l := 0; l < h; l++ {
						for k := 0; k < w; k++ {
							mask[i+k+(j+l)*du] = maskCell{}
						}
					}
					i += w
				}
			}
		}
	}
}
