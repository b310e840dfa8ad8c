package gen

import "fmt"

// Biome is the discrete surface classification of a column.
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomeBeach
	BiomeRiver
	BiomeDesert
	BiomeSavanna
	BiomePlains
	BiomeForest
	BiomeTaiga
	BiomeJungle
	BiomeMountains

	numBiomes
)

var biomeNames = [numBiomes]string{
	BiomeOcean:     "ocean",
	BiomeBeach:     "beach",
	BiomeRiver:     "river",
	BiomeDesert:    "desert",
	BiomeSavanna:   "savanna",
	BiomePlains:    "plains",
	BiomeForest:    "forest",
	BiomeTaiga:     "taiga",
	BiomeJungle:    "jungle",
	BiomeMountains: "mountains",
}

func (b Biome) String() string {
	if b >= numBiomes {
		return "unknown"
	}
	return biomeNames[b]
}

// MarshalText encodes a biome by name.
func (b Biome) MarshalText() ([]byte, error) {
	if b >= numBiomes {
		return nil, fmt.Errorf("gen: invalid biome %d", uint8(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a biome name.
func (b *Biome) UnmarshalText(text []byte) error {
	for i, name := range biomeNames {
		if name == string(text) {
			*b = Biome(i)
			return nil
		}
	}
	return fmt.Errorf("gen: unknown biome %q", text)
}

// Climate holds the continuous biome parameters of a column, each in [0, 1].
type Climate struct {
	Temperature float64
	Rainfall    float64
	Forestness  float64
	Oceanness   float64
}

// Forested reports whether the column belongs to a dense forest.
func (c Climate) Forested(threshold float64) bool {
	return c.Forestness > threshold
}

// selectBiome maps climate and land height to a biome.
//
//	ocean     : oceanness past the basin threshold and land under the sea
//	river     : inside a river channel at or below sea level
//	beach     : land within one block of sea level
//	mountains : land above the stone line
//	desert    : hot and dry     savanna : warm and dryish
//	taiga     : cold            jungle  : hot and wet
//	forest    : forestness past the threshold or very wet, else plains
func selectBiome(p *Params, c Climate, height int, river bool) Biome {
	sea := p.SeaLevel
	switch {
	case height < sea && c.Oceanness >= p.Terrain.OceanThreshold-0.05:
		return BiomeOcean
	case river && height <= sea:
		return BiomeRiver
	case height <= sea+1:
		return BiomeBeach
	case height > sea+p.Terrain.MountainStoneLine:
		return BiomeMountains
	case c.Temperature > 0.65 && c.Rainfall < 0.35:
		return BiomeDesert
	case c.Temperature > 0.6 && c.Rainfall < 0.5:
		return BiomeSavanna
	case c.Temperature < 0.3:
		return BiomeTaiga
	case c.Temperature > 0.6 && c.Rainfall > 0.6:
		return BiomeJungle
	case c.Forested(p.Climate.ForestThreshold) || c.Rainfall > 0.7:
		return BiomeForest
	default:
		return BiomePlains
	}
}
