package gen

import (
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// FlatGenerator generates a superflat world:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a FlatGenerator for a world of the given height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

var flatLayers = [...]block.Type{block.Bedrock, block.Stone, block.Stone, block.Dirt, block.Grass}

func (g *FlatGenerator) Generate(grid *voxel.Grid, _, _ int) {
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			for y, b := range flatLayers {
				grid.Set(x, y, z, b)
			}
		}
	}
}

func (g *FlatGenerator) BlockAt(_, y, _ int) block.Type {
	if y < 0 || y >= len(flatLayers) || y >= g.height {
		return block.Air
	}
	return flatLayers[y]
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return len(flatLayers) - 1 // top solid block is at y=4 (grass)
}

func (g *FlatGenerator) Height() int { return g.height }
