package gen

import (
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	// Generate fills an all-air grid with the chunk at (chunkX, chunkZ).
	Generate(g *voxel.Grid, chunkX, chunkZ int)
	// BlockAt answers a single world position without materialising a chunk.
	// Features that need a whole chunk (ores, trees, flora) are not included.
	BlockAt(x, y, z int) block.Type
	HeightAt(x, z int) int
	// Height is the number of block layers in every chunk.
	Height() int
}

// chunkContext is the scratch state shared by the feature passes of one chunk.
type chunkContext struct {
	grid *voxel.Grid
	pos  voxel.ChunkPos
	ox   int
	oz   int
	cols [voxel.ChunkSize][voxel.ChunkSize]ColumnSample
}

func (cc *chunkContext) averageSurface() int {
	sum := 0
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			sum += cc.cols[x][z].Height
		}
	}
	return sum / (voxel.ChunkSize * voxel.ChunkSize)
}

// DefaultGenerator produces terrain with biomes, rivers, caves, ores, trees
// and ground cover.
type DefaultGenerator struct {
	params Params
	column *Column
	caves  *CaveCarver
	ores   *OreGenerator
	trees  *TreeGenerator
	flora  *FloraGenerator
}

// NewDefaultGenerator creates a DefaultGenerator from generation params.
func NewDefaultGenerator(p Params) *DefaultGenerator {
	g := &DefaultGenerator{params: p}
	g.column = NewColumn(&g.params)
	g.caves = NewCaveCarver(p.Seed, p.Caves)
	g.ores = NewOreGenerator(p.Seed, p.Ores)
	g.trees = NewTreeGenerator(&g.params)
	g.flora = NewFloraGenerator(&g.params)
	return g
}

// Params returns a copy of the generation params.
func (g *DefaultGenerator) Params() Params { return g.params }

// Column exposes the column fields for tinting and tooling.
func (g *DefaultGenerator) Column() *Column { return g.column }

func (g *DefaultGenerator) Height() int { return g.params.Height }

func (g *DefaultGenerator) HeightAt(x, z int) int {
	return g.column.LandHeight(x, z)
}

func (g *DefaultGenerator) BlockAt(x, y, z int) block.Type {
	if y < 0 || y >= g.params.Height {
		return block.Air
	}
	s := g.column.Sample(x, z)
	return g.blockIn(&s, x, y, z)
}

func (g *DefaultGenerator) Generate(grid *voxel.Grid, chunkX, chunkZ int) {
	cc := &chunkContext{grid: grid, pos: voxel.ChunkPos{X: chunkX, Z: chunkZ}}
	cc.ox, cc.oz = cc.pos.Origin()

	// Pass 1: terrain with caves.
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			wx, wz := cc.ox+x, cc.oz+z
			s := g.column.Sample(wx, wz)
			cc.cols[x][z] = s

			top := max(s.Height, g.params.SeaLevel)
			for y := 0; y <= top && y < grid.Height(); y++ {
				grid.Set(x, y, z, g.blockIn(&s, wx, y, wz))
			}
		}
	}

	// Pass 2: ores.
	g.ores.Place(cc)

	// Pass 3: trees.
	g.trees.Decorate(cc)

	// Pass 4: shrubs, grass and desert plants.
	g.flora.Decorate(cc)
}

func (g *DefaultGenerator) blockIn(s *ColumnSample, x, y, z int) block.Type {
	b := s.terrainBlock(&g.params, y)
	if (b == block.Stone || b == block.Dirt) && g.caves.Carved(x, y, z, s.Height, s.Bedrock) {
		return block.Air
	}
	return b
}
