package gen

import (
	"math"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
)

// Noise channel salts. Each independent field draws from its own salt.
const (
	saltContinent = 11 + iota*13
	saltHills
	saltSelector
	saltMountain
	saltOcean
	saltRiver
	saltTemperature
	saltRainfall
	saltForest
)

// riverCutoff bounds |river noise| beyond which no channel can be within reach.
const riverCutoff = 0.12

// Column evaluates the per-column terrain fields: land height, climate,
// biome and the bedrock floor.
type Column struct {
	p     *Params
	noise ValueNoise
}

// NewColumn creates a column generator. p must not change afterwards.
func NewColumn(p *Params) *Column {
	return &Column{p: p, noise: NewValueNoise(p.Seed)}
}

// ColumnSample is everything the terrain fill needs to know about one column.
type ColumnSample struct {
	Height  int
	Bedrock int
	Biome   Biome
	Climate Climate
	River   bool
	// Floor is the top material of submerged columns.
	Floor block.Type
}

type landSample struct {
	height float64
	ocean  float64
	river  bool
}

// LandHeight returns the surface height of column (x, z).
func (c *Column) LandHeight(x, z int) int {
	return c.clampHeight(c.land(x, z).height)
}

// BiomeParams returns the continuous climate of column (x, z).
func (c *Column) BiomeParams(x, z int) Climate {
	l := c.land(x, z)
	return c.climate(x, z, l)
}

// BiomeAt returns the discrete biome of column (x, z).
func (c *Column) BiomeAt(x, z int) Biome {
	return c.Sample(x, z).Biome
}

// BedrockTop returns the lowest y that is not bedrock in column (x, z). Every
// y below it is bedrock. The result is in [1, 4].
func (c *Column) BedrockTop(x, z int) int {
	return max(1, int(Hash3(c.p.Seed, x, 0, z)%5))
}

// Sample evaluates all column fields at once.
func (c *Column) Sample(x, z int) ColumnSample {
	l := c.land(x, z)
	s := ColumnSample{
		Height:  c.clampHeight(l.height),
		Bedrock: c.BedrockTop(x, z),
		River:   l.river,
	}
	s.Climate = c.climate(x, z, l)
	s.Biome = selectBiome(c.p, s.Climate, s.Height, s.River)
	s.Floor = c.floorMaterial(x, z, s)
	return s
}

func (c *Column) clampHeight(h float64) int {
	v := int(math.Floor(h))
	lo := max(c.p.MinLandHeight, 5)
	hi := c.p.Height - 2
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// land computes the raw height field. Continents and hills are mixed by a
// selector, ridged mountains rise where the continent channel is high, ocean
// basins sink where the ocean channel passes its threshold and rivers cut
// channels along the zero set of the river channel.
func (c *Column) land(x, z int) landSample {
	t := &c.p.Terrain
	n := c.noise
	fx, fz := float64(x), float64(z)
	sea := float64(c.p.SeaLevel)

	cont := n.FBM(fx*t.ContinentScale, fz*t.ContinentScale, 4, 0.5, 2, saltContinent)
	hills := n.FBM(fx*t.HillsScale, fz*t.HillsScale, 5, 0.5, 2, saltHills)
	sel := smoothstep(-0.3, 0.3, n.FBM(fx*t.SelectorScale, fz*t.SelectorScale, 3, 0.5, 2, saltSelector))

	h := t.BaseHeight + cont*t.ContinentAmplitude*(1-0.5*sel) + hills*t.HillsAmplitude*sel

	ridge := n.Ridged(fx*t.MountainScale, fz*t.MountainScale, 5, 0.5, 2, saltMountain)
	h += ridge * ridge * t.MountainAmplitude * smoothstep(0.05, 0.45, cont)

	ocean := c.oceanness(fx, fz)
	if ocean > t.OceanThreshold {
		floor := sea - 4 - t.OceanDepth*smoothstep(t.OceanThreshold, 1, ocean)
		h = lerp(h, floor, smoothstep(t.OceanThreshold, t.OceanThreshold+0.12, ocean))
	}

	out := landSample{height: h, ocean: ocean}
	if t.RiverWidth <= 0 || h <= sea-t.RiverDepth {
		return out
	}

	dist, ok := c.riverDistance(fx, fz)
	if !ok {
		return out
	}
	// Rivers fade out on high ground instead of carving canyons through peaks.
	weight := 1 - smoothstep(sea+18, sea+42, h)
	if weight <= 0 {
		return out
	}
	bed := sea - t.RiverDepth
	blend := smoothstep(t.RiverWidth, t.RiverWidth+t.RiverBankWidth, dist)
	out.height = lerp(h, lerp(bed, h, blend), weight)
	out.river = dist < t.RiverWidth && weight > 0.5
	return out
}

// riverDistance estimates the distance in blocks to the nearest zero crossing
// of the river channel as |value| / |gradient|.
func (c *Column) riverDistance(fx, fz float64) (float64, bool) {
	t := &c.p.Terrain
	sample := func(x, z float64) float64 {
		return c.noise.FBM(x*t.RiverScale, z*t.RiverScale, 3, 0.5, 2, saltRiver)
	}
	r := sample(fx, fz)
	if math.Abs(r) > riverCutoff {
		return 0, false
	}
	gx := (sample(fx+1, fz) - sample(fx-1, fz)) / 2
	gz := (sample(fx, fz+1) - sample(fx, fz-1)) / 2
	g := math.Hypot(gx, gz)
	if g < 1e-9 {
		return 0, false
	}
	return math.Abs(r) / g, true
}

func (c *Column) oceanness(fx, fz float64) float64 {
	t := &c.p.Terrain
	return c.unit(c.noise.FBM(fx*t.OceanScale, fz*t.OceanScale, 4, 0.5, 2, saltOcean))
}

func (c *Column) unit(v float64) float64 {
	contrast := c.p.Climate.Contrast
	if contrast <= 0 {
		contrast = 1
	}
	return clamp01(0.5 + 0.5*v*contrast)
}

func (c *Column) climate(x, z int, l landSample) Climate {
	cp := &c.p.Climate
	n := c.noise
	fx, fz := float64(x), float64(z)

	temp := c.unit(n.FBM(fx*cp.TemperatureScale, fz*cp.TemperatureScale, 4, 0.5, 2, saltTemperature))
	// Highlands are colder.
	if above := l.height - float64(c.p.SeaLevel); above > 0 {
		temp = clamp01(temp - above*0.004)
	}
	return Climate{
		Temperature: temp,
		Rainfall:    c.unit(n.FBM(fx*cp.RainfallScale, fz*cp.RainfallScale, 4, 0.5, 2, saltRainfall)),
		Forestness:  c.unit(n.FBM(fx*cp.ForestScale, fz*cp.ForestScale, 3, 0.5, 2, saltForest)),
		Oceanness:   l.ocean,
	}
}

// floorMaterial picks the top block of a submerged column. Deep water favours
// gravel, rivers never get clay.
func (c *Column) floorMaterial(x, z int, s ColumnSample) block.Type {
	r := Hash3(c.p.Seed, x, 1, z) % 100
	deep := s.Height < c.p.SeaLevel-12
	switch {
	case s.Biome == BiomeRiver:
		if r < 70 {
			return block.Sand
		}
		return block.Gravel
	case deep && r < 55:
		return block.Gravel
	case r < 60:
		return block.Sand
	case r < 85:
		return block.Gravel
	default:
		return block.Clay
	}
}
