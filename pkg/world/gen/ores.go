package gen

import (
	"slices"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
)

// OreGenerator places ore veins in stone using seeded per-chunk RNG.
type OreGenerator struct {
	seed   int64
	layers []OreLayer
}

// NewOreGenerator creates an OreGenerator from a seed and an ore table.
func NewOreGenerator(seed int64, layers []OreLayer) *OreGenerator {
	return &OreGenerator{seed: seed, layers: layers}
}

// Place scatters ore veins within the chunk.
func (og *OreGenerator) Place(cc *chunkContext) {
	rng := newChunkRNG(og.seed, cc.pos.X, cc.pos.Z, 500)
	avg := cc.averageSurface()
	centre := cc.cols[8][8].Biome

	for _, ore := range og.layers {
		if ore.MinSurface > 0 && avg < ore.MinSurface {
			continue
		}
		if len(ore.Biomes) > 0 && !slices.Contains(ore.Biomes, centre) {
			continue
		}
		for range ore.CountPerChunk {
			x := rng.rangeN(1, 14)
			z := rng.rangeN(1, 14)
			y := og.pickY(ore, cc.grid.Height(), rng)

			if ore.Scatter {
				replaceStone(cc, x, y, z, ore.Block)
				continue
			}
			og.placeVein(cc, x, y, z, ore.Block, ore.VeinSize, rng)
		}
	}
}

func (og *OreGenerator) pickY(ore OreLayer, height int, rng *chunkRNG) int {
	lo := max(ore.MinY, 1)
	hi := min(ore.MaxY, height-2)
	if ore.Triangular {
		return (rng.rangeN(lo, hi) + rng.rangeN(lo, hi)) / 2
	}
	return rng.rangeN(lo, hi)
}

// placeVein walks randomly from the start cell. The walk stops as soon as it
// would leave the chunk interior, so veins never touch a chunk face.
func (og *OreGenerator) placeVein(cc *chunkContext, x, y, z int, ore block.Type, size int, rng *chunkRNG) {
	height := cc.grid.Height()
	for range size {
		if x < 1 || x > 14 || z < 1 || z > 14 || y < 1 || y > height-2 {
			return
		}
		replaceStone(cc, x, y, z, ore)

		switch rng.nextN(6) {
		case 0:
			x++
		case 1:
			x--
		case 2:
			y++
		case 3:
			y--
		case 4:
			z++
		case 5:
			z--
		}
	}
}

func replaceStone(cc *chunkContext, x, y, z int, b block.Type) {
	if cc.grid.At(x, y, z) == block.Stone {
		cc.grid.Set(x, y, z, b)
	}
}
