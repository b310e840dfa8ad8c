package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// Params holds every generation constant. A world's params never change after
// creation, which keeps the generator a pure function of (params, position).
type Params struct {
	Seed          int64 `yaml:"seed" json:"seed"`
	Height        int   `yaml:"height" json:"height"`
	SeaLevel      int   `yaml:"sea_level" json:"seaLevel"`
	MinLandHeight int   `yaml:"min_land_height" json:"minLandHeight"`

	Terrain TerrainParams `yaml:"terrain" json:"terrain"`
	Climate ClimateParams `yaml:"climate" json:"climate"`
	Caves   CaveParams    `yaml:"caves" json:"caves"`
	Ores    []OreLayer    `yaml:"ores" json:"ores"`
	Trees   TreeParams    `yaml:"trees" json:"trees"`
	Flora   FloraParams   `yaml:"flora" json:"flora"`
}

// TerrainParams shapes the land height field. Scales are frequencies in
// cycles per block.
type TerrainParams struct {
	BaseHeight         float64 `yaml:"base_height" json:"baseHeight"`
	ContinentScale     float64 `yaml:"continent_scale" json:"continentScale"`
	ContinentAmplitude float64 `yaml:"continent_amplitude" json:"continentAmplitude"`
	HillsScale         float64 `yaml:"hills_scale" json:"hillsScale"`
	HillsAmplitude     float64 `yaml:"hills_amplitude" json:"hillsAmplitude"`
	SelectorScale      float64 `yaml:"selector_scale" json:"selectorScale"`
	MountainScale      float64 `yaml:"mountain_scale" json:"mountainScale"`
	MountainAmplitude  float64 `yaml:"mountain_amplitude" json:"mountainAmplitude"`
	OceanScale         float64 `yaml:"ocean_scale" json:"oceanScale"`
	OceanThreshold     float64 `yaml:"ocean_threshold" json:"oceanThreshold"`
	OceanDepth         float64 `yaml:"ocean_depth" json:"oceanDepth"`
	RiverScale         float64 `yaml:"river_scale" json:"riverScale"`
	RiverWidth         float64 `yaml:"river_width" json:"riverWidth"`
	RiverBankWidth     float64 `yaml:"river_bank_width" json:"riverBankWidth"`
	RiverDepth         float64 `yaml:"river_depth" json:"riverDepth"`
	MountainStoneLine  int     `yaml:"mountain_stone_line" json:"mountainStoneLine"`
}

// ClimateParams controls the biome parameter channels.
type ClimateParams struct {
	TemperatureScale float64 `yaml:"temperature_scale" json:"temperatureScale"`
	RainfallScale    float64 `yaml:"rainfall_scale" json:"rainfallScale"`
	ForestScale      float64 `yaml:"forest_scale" json:"forestScale"`
	Contrast         float64 `yaml:"contrast" json:"contrast"`
	ForestThreshold  float64 `yaml:"forest_threshold" json:"forestThreshold"`
}

// CaveParams controls the two cave channels.
type CaveParams struct {
	Enabled            bool    `yaml:"enabled" json:"enabled"`
	SpaghettiScale     float64 `yaml:"spaghetti_scale" json:"spaghettiScale"`
	SpaghettiOctaves   int     `yaml:"spaghetti_octaves" json:"spaghettiOctaves"`
	SpaghettiThreshold float64 `yaml:"spaghetti_threshold" json:"spaghettiThreshold"`
	CavernScale        float64 `yaml:"cavern_scale" json:"cavernScale"`
	CavernThreshold    float64 `yaml:"cavern_threshold" json:"cavernThreshold"`
	DepthBias          float64 `yaml:"depth_bias" json:"depthBias"`
	DepthRamp          float64 `yaml:"depth_ramp" json:"depthRamp"`
	MinDepth           int     `yaml:"min_depth" json:"minDepth"`
}

// OreLayer describes one ore distribution.
type OreLayer struct {
	Block         block.Type `yaml:"block" json:"block"`
	CountPerChunk int        `yaml:"count" json:"count"`
	VeinSize      int        `yaml:"vein_size" json:"veinSize"`
	MinY          int        `yaml:"min_y" json:"minY"`
	MaxY          int        `yaml:"max_y" json:"maxY"`
	// Triangular biases Y toward the middle of [MinY, MaxY].
	Triangular bool `yaml:"triangular" json:"triangular"`
	// Scatter places single blocks instead of walked veins.
	Scatter bool `yaml:"scatter" json:"scatter"`
	// MinSurface skips chunks whose average surface height is lower.
	MinSurface int     `yaml:"min_surface" json:"minSurface"`
	Biomes     []Biome `yaml:"biomes" json:"biomes"`
}

// TreeParams controls tree density and shape.
type TreeParams struct {
	EdgePadding     int     `yaml:"edge_padding" json:"edgePadding"`
	Spacing         int     `yaml:"spacing" json:"spacing"`
	ForestChance    float64 `yaml:"forest_chance" json:"forestChance"`
	PlainsChance    float64 `yaml:"plains_chance" json:"plainsChance"`
	BigForestChance float64 `yaml:"big_forest_chance" json:"bigForestChance"`
	BigPlainsChance float64 `yaml:"big_plains_chance" json:"bigPlainsChance"`
}

// FloraParams controls ground cover.
type FloraParams struct {
	ShrubDensityMin float64 `yaml:"shrub_density_min" json:"shrubDensityMin"`
	ShrubDensityMax float64 `yaml:"shrub_density_max" json:"shrubDensityMax"`
	ShrubPatchScale float64 `yaml:"shrub_patch_scale" json:"shrubPatchScale"`
	TallGrassChance float64 `yaml:"tall_grass_chance" json:"tallGrassChance"`
	CactusChance    float64 `yaml:"cactus_chance" json:"cactusChance"`
	DeadBushChance  float64 `yaml:"dead_bush_chance" json:"deadBushChance"`
}

// DefaultParams returns the stock world for a seed: 128 blocks high with the
// sea at 48.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:          seed,
		Height:        128,
		SeaLevel:      48,
		MinLandHeight: 8,
		Terrain: TerrainParams{
			BaseHeight:         54,
			ContinentScale:     1.0 / 420,
			ContinentAmplitude: 14,
			HillsScale:         1.0 / 90,
			HillsAmplitude:     9,
			SelectorScale:      1.0 / 260,
			MountainScale:      1.0 / 230,
			MountainAmplitude:  46,
			OceanScale:         1.0 / 720,
			OceanThreshold:     0.6,
			OceanDepth:         30,
			RiverScale:         1.0 / 640,
			RiverWidth:         5,
			RiverBankWidth:     9,
			RiverDepth:         3,
			MountainStoneLine:  36,
		},
		Climate: ClimateParams{
			TemperatureScale: 1.0 / 512,
			RainfallScale:    1.0 / 448,
			ForestScale:      1.0 / 192,
			Contrast:         1.7,
			ForestThreshold:  0.5,
		},
		Caves: CaveParams{
			Enabled:            true,
			SpaghettiScale:     1.0 / 44,
			SpaghettiOctaves:   1,
			SpaghettiThreshold: 0.9,
			CavernScale:        1.0 / 36,
			CavernThreshold:    0.5,
			DepthBias:          0.08,
			DepthRamp:          40,
			MinDepth:           6,
		},
		Ores: DefaultOreLayers(),
		Trees: TreeParams{
			EdgePadding:     2,
			Spacing:         3,
			ForestChance:    0.09,
			PlainsChance:    0.01,
			BigForestChance: 0.14,
			BigPlainsChance: 0.04,
		},
		Flora: FloraParams{
			ShrubDensityMin: 0.22,
			ShrubDensityMax: 0.46,
			ShrubPatchScale: 1.0 / 24,
			TallGrassChance: 0.12,
			CactusChance:    0.012,
			DeadBushChance:  0.02,
		},
	}
}

// DefaultOreLayers returns the stock ore table, tuned for a 128 block world.
func DefaultOreLayers() []OreLayer {
	return []OreLayer{
		{Block: block.CoalOre, CountPerChunk: 18, VeinSize: 14, MinY: 5, MaxY: 110},
		{Block: block.IronOre, CountPerChunk: 14, VeinSize: 8, MinY: 5, MaxY: 64},
		{Block: block.GoldOre, CountPerChunk: 2, VeinSize: 8, MinY: 5, MaxY: 32},
		{Block: block.GoldOre, CountPerChunk: 6, VeinSize: 8, MinY: 32, MaxY: 80, Biomes: []Biome{BiomeDesert, BiomeSavanna}},
		{Block: block.LapisOre, CountPerChunk: 1, VeinSize: 7, MinY: 5, MaxY: 32, Triangular: true},
		{Block: block.RedstoneOre, CountPerChunk: 6, VeinSize: 7, MinY: 5, MaxY: 16},
		{Block: block.DiamondOre, CountPerChunk: 1, VeinSize: 6, MinY: 5, MaxY: 16},
		{Block: block.EmeraldOre, CountPerChunk: 5, VeinSize: 1, MinY: 5, MaxY: 40, Scatter: true, MinSurface: 48 + 22},
	}
}
