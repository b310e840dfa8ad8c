package gen

import (
	"testing"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// flatContext returns a chunk of stone from y=1 to y=top capped with surface,
// with every column sampled as the given biome.
func flatContext(top int, surface block.Type, biome Biome) *chunkContext {
	cc := &chunkContext{grid: voxel.NewGrid(128)}
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			cc.grid.Set(x, 0, z, block.Bedrock)
			for y := 1; y < top; y++ {
				cc.grid.Set(x, y, z, block.Stone)
			}
			cc.grid.Set(x, top, z, surface)
			cc.cols[x][z] = ColumnSample{
				Height:  top,
				Bedrock: 1,
				Biome:   biome,
				Climate: Climate{Temperature: 0.5, Rainfall: 0.5},
			}
		}
	}
	return cc
}

func TestCaveCarverDepthWindow(t *testing.T) {
	p := DefaultParams(5).Caves
	p.SpaghettiThreshold = -1
	c := NewCaveCarver(5, p)

	const surface, floor = 60, 3
	for y := 0; y < 128; y++ {
		want := y > floor && y <= surface-p.MinDepth
		if got := c.Carved(10, y, -4, surface, floor); got != want {
			t.Fatalf("Carved(y=%d) = %v, want %v", y, got, want)
		}
	}

	p.Enabled = false
	if NewCaveCarver(5, p).Carved(10, 20, -4, surface, floor) {
		t.Fatal("disabled carver must not carve")
	}
}

func TestCavesOnlyHollowStoneAndDirt(t *testing.T) {
	p := DefaultParams(2024)
	p.Caves.SpaghettiThreshold = 0.5
	p.Caves.CavernThreshold = 0.2
	g := NewDefaultGenerator(p)

	carved := 0
	for x := 0; x < 96; x += 3 {
		for z := 0; z < 96; z += 3 {
			s := g.Column().Sample(x, z)
			for y := 0; y < p.Height; y++ {
				terr := s.terrainBlock(&p, y)
				got := g.blockIn(&s, x, y, z)
				if got == terr {
					continue
				}
				carved++
				if got != block.Air {
					t.Fatalf("(%d,%d,%d) carved into %v", x, y, z, got)
				}
				if terr != block.Stone && terr != block.Dirt {
					t.Fatalf("(%d,%d,%d) carved %v", x, y, z, terr)
				}
				if y <= s.Bedrock || y > s.Height-p.Caves.MinDepth {
					t.Fatalf("(%d,%d,%d) carved outside [%d, %d]", x, y, z, s.Bedrock+1, s.Height-p.Caves.MinDepth)
				}
			}
		}
	}
	if carved == 0 {
		t.Fatal("expected some cave cells")
	}
}

func TestOreLayerBiomeFilter(t *testing.T) {
	layers := []OreLayer{{
		Block: block.GoldOre, CountPerChunk: 10, VeinSize: 4, MinY: 5, MaxY: 50,
		Biomes: []Biome{BiomeDesert},
	}}

	cc := flatContext(60, block.Grass, BiomePlains)
	NewOreGenerator(9, layers).Place(cc)
	if n := cc.grid.Count(block.GoldOre); n != 0 {
		t.Fatalf("plains chunk got %d desert gold ores", n)
	}

	cc = flatContext(60, block.Sand, BiomeDesert)
	NewOreGenerator(9, layers).Place(cc)
	if cc.grid.Count(block.GoldOre) == 0 {
		t.Fatal("desert chunk got no gold")
	}
}

func TestOreLayerMinSurface(t *testing.T) {
	layers := []OreLayer{{
		Block: block.EmeraldOre, CountPerChunk: 10, VeinSize: 1, MinY: 5, MaxY: 50,
		Scatter: true, MinSurface: 70,
	}}

	cc := flatContext(60, block.Grass, BiomeMountains)
	NewOreGenerator(3, layers).Place(cc)
	if n := cc.grid.Count(block.EmeraldOre); n != 0 {
		t.Fatalf("low chunk got %d emeralds", n)
	}

	cc = flatContext(60, block.Grass, BiomeMountains)
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			cc.cols[x][z].Height = 80
		}
	}
	NewOreGenerator(3, layers).Place(cc)
	if cc.grid.Count(block.EmeraldOre) == 0 {
		t.Fatal("high chunk got no emeralds")
	}
}

func TestTreeSpacing(t *testing.T) {
	p := DefaultParams(77)
	p.Trees.ForestChance = 2
	p.Trees.BigForestChance = 0
	cc := flatContext(60, block.Grass, BiomeForest)
	NewTreeGenerator(&p).Decorate(cc)

	type column struct{ x, z int }
	var trunks []column
	for x := range voxel.ChunkSize {
		for z := range voxel.ChunkSize {
			if cc.grid.At(x, 61, z).IsLog() {
				trunks = append(trunks, column{x, z})
			}
		}
	}
	if len(trunks) < 2 {
		t.Fatalf("got %d trunks, want several", len(trunks))
	}
	for i, a := range trunks {
		if a.x < p.Trees.EdgePadding || a.x >= 16-p.Trees.EdgePadding ||
			a.z < p.Trees.EdgePadding || a.z >= 16-p.Trees.EdgePadding {
			t.Fatalf("trunk at %v inside edge padding", a)
		}
		for _, b := range trunks[i+1:] {
			if max(abs(a.x-b.x), abs(a.z-b.z)) <= p.Trees.Spacing {
				t.Fatalf("trunks %v and %v closer than %d", a, b, p.Trees.Spacing)
			}
		}
	}
}

func TestBigOakGrowsBranches(t *testing.T) {
	p := DefaultParams(11)
	tg := NewTreeGenerator(&p)

	for salt := int64(0); salt < 8; salt++ {
		cc := flatContext(60, block.Grass, BiomeForest)
		tg.placeBigOak(cc, 8, 61, 8, oak, newChunkRNG(p.Seed, 0, 0, salt))

		trunk, branch := 0, 0
		for x := range voxel.ChunkSize {
			for z := range voxel.ChunkSize {
				for y := 61; y < cc.grid.Height(); y++ {
					if cc.grid.At(x, y, z) != block.OakLog {
						continue
					}
					if x == 8 && z == 8 {
						trunk++
					} else {
						branch++
					}
				}
			}
		}
		if trunk < 8 || trunk > 12 {
			t.Fatalf("salt %d: trunk height %d, want 8-12", salt, trunk)
		}
		if branch < 2 {
			t.Fatalf("salt %d: got %d branch logs, want at least 2", salt, branch)
		}
	}
}

func TestRiversCutToBed(t *testing.T) {
	p := DefaultParams(4242)
	p.Terrain.BaseHeight = float64(p.SeaLevel + 6)
	p.Terrain.ContinentAmplitude = 4
	p.Terrain.HillsAmplitude = 4
	p.Terrain.MountainAmplitude = 0
	p.Terrain.OceanThreshold = 2
	p.Terrain.RiverScale = 1.0 / 64
	col := NewColumn(&p)

	bed := p.SeaLevel - int(p.Terrain.RiverDepth)
	rivers := 0
	for x := -100; x < 100; x += 2 {
		for z := -100; z < 100; z += 2 {
			s := col.Sample(x, z)
			if !s.River {
				continue
			}
			rivers++
			if s.Height != bed {
				t.Fatalf("river column (%d,%d) height %d, want bed %d", x, z, s.Height, bed)
			}
		}
	}
	if rivers == 0 {
		t.Fatal("expected river columns")
	}
}
