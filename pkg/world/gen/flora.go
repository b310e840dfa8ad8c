package gen

import (
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/aquilax/go-perlin"
)

// FloraGenerator scatters shrubs, tall grass, cacti and dead bushes.
type FloraGenerator struct {
	p     *Params
	seed  int64
	patch *perlin.Perlin
}

// NewFloraGenerator creates a FloraGenerator from generation params.
func NewFloraGenerator(p *Params) *FloraGenerator {
	return &FloraGenerator{
		p:     p,
		seed:  p.Seed,
		patch: perlin.NewPerlin(2, 2, 2, p.Seed*19+7),
	}
}

// Decorate runs after trees so it never plants under a trunk.
func (fg *FloraGenerator) Decorate(cc *chunkContext) {
	height := cc.grid.Height()
	for x := 1; x < 15; x++ {
		for z := 1; z < 15; z++ {
			s := &cc.cols[x][z]
			y := s.Height
			if y <= fg.p.SeaLevel+1 || y >= height-6 {
				continue
			}
			if cc.grid.At(x, y+1, z) != block.Air {
				continue
			}

			wx, wz := cc.ox+x, cc.oz+z
			switch ground := cc.grid.At(x, y, z); {
			case ground == block.Sand && s.Biome == BiomeDesert:
				fg.desert(cc, x, y, z, wx, wz)
			case ground == block.Grass:
				if s.Climate.Forested(fg.p.Climate.ForestThreshold) && fg.shrub(cc, s, x, y, z, wx, wz) {
					continue
				}
				fg.grass(cc, s, x, y, z, wx, wz)
			}
		}
	}
}

func (fg *FloraGenerator) desert(cc *chunkContext, x, y, z, wx, wz int) {
	fp := &fg.p.Flora
	r := unitHash(fg.seed, wx, y+7, wz)
	switch {
	case r < fp.CactusChance:
		// Cacti need air on all four sides.
		for _, d := range branchDirs[:4] {
			if cc.grid.At(x+d[0], y+1, z+d[1]) != block.Air {
				return
			}
		}
		h := 1 + int(Hash3(fg.seed, wx, y+8, wz)%3)
		for dy := 1; dy <= h; dy++ {
			setIfAir(cc, x, y+dy, z, block.Cactus)
		}
	case r < fp.CactusChance+fp.DeadBushChance:
		setIfAir(cc, x, y+1, z, block.DeadBush)
	}
}

// shrub places forest undergrowth. Density follows rainfall and a patch noise
// so shrubs clump together.
func (fg *FloraGenerator) shrub(cc *chunkContext, s *ColumnSample, x, y, z, wx, wz int) bool {
	fp := &fg.p.Flora
	patch := clamp01(0.5 + fg.patch.Noise2D(float64(wx)*fp.ShrubPatchScale, float64(wz)*fp.ShrubPatchScale))
	density := lerp(fp.ShrubDensityMin, fp.ShrubDensityMax, s.Climate.Rainfall) * lerp(0.65, 1.25, patch)
	if unitHash(fg.seed, wx, y+9, wz) > density {
		return false
	}

	leaves := block.OakLeaves
	if s.Biome == BiomeTaiga {
		leaves = block.SpruceLeaves
	}
	y1 := y + 1
	kind := Hash3(fg.seed, wx+3, y1, wz+7) % 100
	if kind < 70 {
		setIfAir(cc, x, y1, z, leaves)
		if kind < 22 {
			setIfAir(cc, x, y1+1, z, leaves)
		}
		return true
	}

	log := block.OakLog
	if s.Biome == BiomeTaiga {
		log = block.SpruceLog
	}
	setIfAir(cc, x, y1, z, log)
	setIfAir(cc, x, y1+1, z, leaves)
	for _, d := range branchDirs {
		setIfAir(cc, x+d[0], y1+1, z+d[1], leaves)
	}
	return true
}

func (fg *FloraGenerator) grass(cc *chunkContext, s *ColumnSample, x, y, z, wx, wz int) {
	chance := fg.p.Flora.TallGrassChance * lerp(0.5, 1.5, s.Climate.Rainfall)
	if s.Biome == BiomeSavanna {
		chance *= 2
	}
	if unitHash(fg.seed, wx, y+11, wz) < chance {
		setIfAir(cc, x, y+1, z, block.TallGrass)
	}
}
