package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

type species struct {
	log    block.Type
	leaves block.Type
}

var (
	oak    = species{block.OakLog, block.OakLeaves}
	birch  = species{block.BirchLog, block.BirchLeaves}
	spruce = species{block.SpruceLog, block.SpruceLeaves}
	jungle = species{block.JungleLog, block.JungleLeaves}
)

// branchDirs are the horizontal directions a big tree branch may take.
var branchDirs = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// TreeGenerator places trees per biome.
type TreeGenerator struct {
	p    *Params
	seed int64
}

// NewTreeGenerator creates a TreeGenerator from generation params.
func NewTreeGenerator(p *Params) *TreeGenerator {
	return &TreeGenerator{p: p, seed: p.Seed}
}

// Decorate places trees in the chunk. Columns within EdgePadding of a chunk
// face are skipped so canopies stay inside the chunk.
func (tg *TreeGenerator) Decorate(cc *chunkContext) {
	tp := &tg.p.Trees
	pad := max(tp.EdgePadding, 0)

	for x := pad; x < 16-pad; x++ {
		for z := pad; z < 16-pad; z++ {
			s := &cc.cols[x][z]
			if !treeBiome(s.Biome) || s.Height <= tg.p.SeaLevel+1 {
				continue
			}
			y := s.Height
			if cc.grid.At(x, y, z) != block.Grass || cc.grid.At(x, y+1, z) != block.Air {
				continue
			}

			wx, wz := cc.ox+x, cc.oz+z
			forest := tg.forested(s)
			chance, bigChance := tp.PlainsChance, tp.BigPlainsChance
			if forest {
				chance, bigChance = tp.ForestChance, tp.BigForestChance
			}
			chance *= lerp(0.7, 1.25, s.Climate.Rainfall)
			switch s.Biome {
			case BiomeSavanna:
				chance *= 0.5
			case BiomeMountains:
				chance *= 0.6
			}
			if unitHash(tg.seed, wx, y, wz) >= chance {
				continue
			}
			if tg.crowded(cc, x, y+1, z) {
				continue
			}

			big := unitHash(tg.seed, wx+17, y+3, wz-9) < bigChance
			rng := newChunkRNG(tg.seed, wx, wz, 600)
			tg.placeTree(cc, x, y+1, z, tg.speciesFor(s, wx, wz), big, rng)
		}
	}
}

func treeBiome(b Biome) bool {
	switch b {
	case BiomeOcean, BiomeRiver, BiomeBeach, BiomeDesert:
		return false
	}
	return true
}

func (tg *TreeGenerator) forested(s *ColumnSample) bool {
	switch s.Biome {
	case BiomeForest, BiomeJungle, BiomeTaiga:
		return true
	}
	return s.Climate.Forested(tg.p.Climate.ForestThreshold)
}

func (tg *TreeGenerator) speciesFor(s *ColumnSample, wx, wz int) species {
	switch s.Biome {
	case BiomeTaiga:
		return spruce
	case BiomeJungle:
		return jungle
	case BiomeMountains:
		if s.Climate.Temperature < 0.4 {
			return spruce
		}
	case BiomeForest:
		if Hash3(tg.seed, wx, 7, wz)%3 == 0 {
			return birch
		}
	}
	return oak
}

// crowded reports whether a trunk already stands within Spacing of (x, z).
func (tg *TreeGenerator) crowded(cc *chunkContext, x, baseY, z int) bool {
	sp := tg.p.Trees.Spacing
	for dx := -sp; dx <= sp; dx++ {
		for dz := -sp; dz <= sp; dz++ {
			for dy := 0; dy < 2; dy++ {
				if cc.grid.At(x+dx, baseY+dy, z+dz).IsLog() {
					return true
				}
			}
		}
	}
	return false
}

func (tg *TreeGenerator) placeTree(cc *chunkContext, x, baseY, z int, sp species, big bool, rng *chunkRNG) {
	switch {
	case sp == spruce:
		tg.placeSpruce(cc, x, baseY, z, big, rng)
	case sp == jungle:
		tg.placeJungle(cc, x, baseY, z, big, rng)
	case big:
		tg.placeBigOak(cc, x, baseY, z, sp, rng)
	default:
		tg.placeOak(cc, x, baseY, z, sp, rng)
	}
}

// placeOak places a small round tree: a 4-6 block trunk (5-7 for birch)
// under two wide leaf layers and a narrow cross-shaped crown.
func (tg *TreeGenerator) placeOak(cc *chunkContext, x, baseY, z int, sp species, rng *chunkRNG) {
	trunk := rng.rangeN(4, 6)
	if sp == birch {
		trunk++
	}
	if baseY+trunk+2 >= cc.grid.Height() {
		return
	}

	top := baseY + trunk - 1
	for dy := -1; dy <= 0; dy++ {
		leafSquare(cc, x, top+dy, z, 2, sp.leaves, rng)
	}
	leafSquare(cc, x, top+1, z, 1, sp.leaves, nil)
	leafCross(cc, x, top+2, z, sp.leaves)

	placeTrunk(cc, x, baseY, z, trunk, sp.log)
}

// placeBigOak grows an 8-12 block trunk with 2-4 branches, each ending in a
// small leaf cluster, under a wide canopy.
func (tg *TreeGenerator) placeBigOak(cc *chunkContext, x, baseY, z int, sp species, rng *chunkRNG) {
	trunk := rng.rangeN(8, 12)
	if baseY+trunk+3 >= cc.grid.Height() {
		return
	}

	top := baseY + trunk - 1
	for dy := -2; dy <= 0; dy++ {
		r := 3
		if dy == -2 {
			r = 2
		}
		leafDisc(cc, x, top+dy, z, r, sp.leaves)
	}
	leafDisc(cc, x, top+1, z, 2, sp.leaves)
	leafCross(cc, x, top+2, z, sp.leaves)

	branches := rng.rangeN(2, 4)
	for range branches {
		dir := branchDirs[rng.nextN(len(branchDirs))]
		length := rng.rangeN(2, 4)
		bx, bz := x, z
		by := baseY + rng.rangeN(trunk/2, trunk-3)
		for step := 1; step <= length; step++ {
			bx += dir[0]
			bz += dir[1]
			if step%2 == 0 {
				by++
			}
			setLog(cc, bx, by, bz, sp.log)
		}
		leafDisc(cc, bx, by+1, bz, 1, sp.leaves)
		leafCross(cc, bx, by+2, bz, sp.leaves)
	}

	placeTrunk(cc, x, baseY, z, trunk, sp.log)
}

// placeSpruce places a conical tree, widest at the bottom.
func (tg *TreeGenerator) placeSpruce(cc *chunkContext, x, baseY, z int, big bool, rng *chunkRNG) {
	trunk := rng.rangeN(6, 9)
	if big {
		trunk += 4
	}
	if baseY+trunk+1 >= cc.grid.Height() {
		return
	}

	for dy := 2; dy <= trunk; dy++ {
		radius := min((trunk-dy)/2, 2)
		if radius <= 0 && dy < trunk {
			radius = 1
		}
		// Alternate full and thin rings for the layered look.
		if radius == 2 && dy%2 == 0 {
			radius = 1
		}
		leafDisc(cc, x, baseY+dy, z, radius, spruce.leaves)
	}
	setIfAir(cc, x, baseY+trunk, z, spruce.leaves)

	placeTrunk(cc, x, baseY, z, trunk, spruce.log)
}

// placeJungle places a tall tree with a flat, wide crown.
func (tg *TreeGenerator) placeJungle(cc *chunkContext, x, baseY, z int, big bool, rng *chunkRNG) {
	trunk := rng.rangeN(7, 11)
	if big {
		trunk = rng.rangeN(12, 16)
	}
	if baseY+trunk+2 >= cc.grid.Height() {
		return
	}

	top := baseY + trunk - 1
	leafDisc(cc, x, top, z, 2, jungle.leaves)
	leafDisc(cc, x, top+1, z, 2, jungle.leaves)
	leafDisc(cc, x, top+2, z, 1, jungle.leaves)
	placeTrunk(cc, x, baseY, z, trunk, jungle.log)
}

// placeTrunk writes a log column over air or leaves. A blocked cell ends the
// trunk early.
func placeTrunk(cc *chunkContext, x, baseY, z, height int, log block.Type) {
	for y := baseY; y < baseY+height; y++ {
		cur := cc.grid.At(x, y, z)
		if cur != block.Air && !cur.IsLeaves() {
			return
		}
		cc.grid.Set(x, y, z, log)
	}
}

// leafSquare fills a (2r+1)² layer. With an rng, corners are dropped at random
// to round the canopy.
func leafSquare(cc *chunkContext, x, y, z, r int, leaves block.Type, rng *chunkRNG) {
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if rng != nil && r > 1 && abs(dx) == r && abs(dz) == r && rng.nextN(2) == 0 {
				continue
			}
			setIfAir(cc, x+dx, y, z+dz, leaves)
		}
	}
}

// leafDisc fills a rough circle of radius r.
func leafDisc(cc *chunkContext, x, y, z, r int, leaves block.Type) {
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if dx*dx+dz*dz > r*r+1 {
				continue
			}
			setIfAir(cc, x+dx, y, z+dz, leaves)
		}
	}
}

func leafCross(cc *chunkContext, x, y, z int, leaves block.Type) {
	setIfAir(cc, x, y, z, leaves)
	setIfAir(cc, x+1, y, z, leaves)
	setIfAir(cc, x-1, y, z, leaves)
	setIfAir(cc, x, y, z+1, leaves)
	setIfAir(cc, x, y, z-1, leaves)
}

// setLog writes a branch log over air or leaves of the canopy.
func setLog(cc *chunkContext, x, y, z int, log block.Type) {
	if cur := cc.grid.At(x, y, z); cur == block.Air || cur.IsLeaves() {
		cc.grid.Set(x, y, z, log)
	}
}

// setIfAir writes b only into air inside the chunk.
func setIfAir(cc *chunkContext, x, y, z int, b block.Type) {
	if cc.grid.InBounds(x, y, z) && cc.grid.At(x, y, z) == block.Air {
		cc.grid.Set(x, y, z, b)
	}
}
