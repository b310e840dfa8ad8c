package gen

import (
	"testing"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

func generate(g Generator, cx, cz int) *voxel.Grid {
	grid := voxel.NewGrid(g.Height())
	g.Generate(grid, cx, cz)
	return grid
}

func TestDefaultGeneratorDeterministic(t *testing.T) {
	g1 := NewDefaultGenerator(DefaultParams(42))
	g2 := NewDefaultGenerator(DefaultParams(42))

	c1 := generate(g1, 3, -2)
	c2 := generate(g2, 3, -2)

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			for y := 0; y < c1.Height(); y++ {
				if a, b := c1.At(x, y, z), c2.At(x, y, z); a != b {
					t.Fatalf("block (%d,%d,%d) differs: %v vs %v", x, y, z, a, b)
				}
			}
		}
	}
}

func TestDefaultGeneratorBedrockFloor(t *testing.T) {
	g := NewDefaultGenerator(DefaultParams(12345))
	for cx := -2; cx <= 2; cx++ {
		for cz := -2; cz <= 2; cz++ {
			c := generate(g, cx, cz)
			ox, oz := voxel.ChunkPos{X: cx, Z: cz}.Origin()
			for x := 0; x < 16; x++ {
				for z := 0; z < 16; z++ {
					top := g.Column().BedrockTop(ox+x, oz+z)
					if top < 1 || top > 4 {
						t.Fatalf("bedrock top %d out of [1,4]", top)
					}
					for y := 0; y < top; y++ {
						if b := c.At(x, y, z); b != block.Bedrock {
							t.Fatalf("chunk(%d,%d) (%d,%d,%d) = %v, want bedrock", cx, cz, x, y, z, b)
						}
					}
					if b := c.At(x, top, z); b == block.Bedrock {
						t.Fatalf("chunk(%d,%d) (%d,%d,%d) must not be bedrock", cx, cz, x, top, z)
					}
				}
			}
		}
	}
}

func TestDefaultGeneratorHeightReasonable(t *testing.T) {
	p := DefaultParams(999)
	g := NewDefaultGenerator(p)
	for i := -50; i < 50; i++ {
		h := g.HeightAt(i*37, i*-53)
		if h < p.MinLandHeight || h > p.Height-2 {
			t.Fatalf("HeightAt = %d, want %d..%d", h, p.MinLandHeight, p.Height-2)
		}
	}
}

func TestDefaultGeneratorDifferentSeeds(t *testing.T) {
	c1 := generate(NewDefaultGenerator(DefaultParams(1)), 0, 0)
	c2 := generate(NewDefaultGenerator(DefaultParams(2)), 0, 0)

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			for y := 0; y < c1.Height(); y++ {
				if c1.At(x, y, z) != c2.At(x, y, z) {
					return
				}
			}
		}
	}
	t.Error("different seeds should produce different terrain")
}

// Everything BlockAt promises to predict must match the materialised chunk:
// bedrock, water, air above the land and the carved cave shell.
func TestBlockAtMatchesTerrain(t *testing.T) {
	g := NewDefaultGenerator(DefaultParams(7))
	c := generate(g, -1, 2)
	ox, oz := voxel.ChunkPos{X: -1, Z: 2}.Origin()

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			for y := 0; y < c.Height(); y++ {
				want := g.BlockAt(ox+x, y, oz+z)
				got := c.At(x, y, z)
				if got == want {
					continue
				}
				// Features may only replace stone with ore or fill air and
				// topsoil with plants and trees.
				switch {
				case got.IsOre() && want == block.Stone:
				case want == block.Air && (got.IsLog() || got.IsLeaves() || got.IsCross() || got == block.Cactus):
				default:
					t.Fatalf("(%d,%d,%d): chunk has %v, BlockAt says %v", ox+x, y, oz+z, got, want)
				}
			}
		}
	}
}

func TestOresOnlyReplaceStone(t *testing.T) {
	p := DefaultParams(2024)
	p.Caves.Enabled = false
	p.Trees.ForestChance, p.Trees.PlainsChance = 0, 0
	g := NewDefaultGenerator(p)

	ores := 0
	for cx := 0; cx < 4; cx++ {
		c := generate(g, cx, 0)
		ox, oz := voxel.ChunkPos{X: cx}.Origin()
		for x := 0; x < 16; x++ {
			for z := 0; z < 16; z++ {
				for y := 0; y < c.Height(); y++ {
					b := c.At(x, y, z)
					if !b.IsOre() {
						continue
					}
					ores++
					if x == 0 || x == 15 || z == 0 || z == 15 {
						t.Fatalf("ore on chunk face at (%d,%d,%d)", x, y, z)
					}
					if g.BlockAt(ox+x, y, oz+z) != block.Stone {
						t.Fatalf("ore at (%d,%d,%d) replaced %v", x, y, z, g.BlockAt(ox+x, y, oz+z))
					}
				}
			}
		}
	}
	if ores == 0 {
		t.Fatal("expected some ore in four chunks")
	}
}

func TestTreesStandOnGrass(t *testing.T) {
	p := DefaultParams(31337)
	p.Trees.ForestChance, p.Trees.PlainsChance = 1, 1
	p.Trees.BigForestChance, p.Trees.BigPlainsChance = 0, 0
	g := NewDefaultGenerator(p)

	trunks := 0
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			cx, cz := i*20, j*20
			c := generate(g, cx, cz)
			for x := 0; x < 16; x++ {
				for z := 0; z < 16; z++ {
					for y := 1; y < c.Height(); y++ {
						if !c.At(x, y, z).IsLog() || c.At(x, y-1, z).IsLog() {
							continue
						}
						if below := c.At(x, y-1, z); below != block.Grass {
							t.Fatalf("chunk(%d,%d) log at (%d,%d,%d) stands on %v", cx, cz, x, y, z, below)
						}
						trunks++
					}
				}
			}
		}
	}
	if trunks == 0 {
		t.Fatal("expected trees in 25 sampled chunks")
	}
}

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator(64)
	c := generate(g, 0, 0)

	// y=0: bedrock, y=1-2: stone, y=3: dirt, y=4: grass
	tests := []struct {
		y     int
		block block.Type
	}{
		{0, block.Bedrock},
		{1, block.Stone},
		{2, block.Stone},
		{3, block.Dirt},
		{4, block.Grass},
		{5, block.Air},
	}

	for _, tt := range tests {
		if got := c.At(0, tt.y, 0); got != tt.block {
			t.Errorf("y=%d: got %v, want %v", tt.y, got, tt.block)
		}
		if got := g.BlockAt(123, tt.y, -77); got != tt.block {
			t.Errorf("BlockAt y=%d: got %v, want %v", tt.y, got, tt.block)
		}
	}
	if g.HeightAt(0, 0) != 4 {
		t.Errorf("HeightAt = %d, want 4", g.HeightAt(0, 0))
	}
}
