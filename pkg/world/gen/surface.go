package gen

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// terrainBlock returns the pre-feature block at height y of a sampled column:
// bedrock floor, stone body, biome-specific topsoil and sea water.
func (s *ColumnSample) terrainBlock(p *Params, y int) block.Type {
	switch {
	case y < 0 || y >= p.Height:
		return block.Air
	case y < s.Bedrock:
		return block.Bedrock
	case y > s.Height:
		if y <= p.SeaLevel {
			return block.Water
		}
		return block.Air
	}

	depth := s.Height - y
	if s.Height < p.SeaLevel {
		return s.submergedLayer(depth)
	}

	switch s.Biome {
	case BiomeDesert:
		if depth < 4 {
			return block.Sand
		}
	case BiomeBeach:
		if depth < 3 {
			return block.Sand
		}
	case BiomeMountains:
		if s.Height > p.SeaLevel+p.Terrain.MountainStoneLine+8 {
			// Bare peaks.
			return block.Stone
		}
		return grassLayer(depth)
	default:
		return grassLayer(depth)
	}
	return block.Stone
}

func (s *ColumnSample) submergedLayer(depth int) block.Type {
	switch {
	case depth < 2:
		return s.Floor
	case depth < 4 && s.Floor == block.Clay:
		return block.Dirt
	case depth < 4:
		return block.Sand
	}
	return block.Stone
}

// grassLayer places grass on top with three blocks of dirt below.
func grassLayer(depth int) block.Type {
	switch {
	case depth == 0:
		return block.Grass
	case depth < 4:
		return block.Dirt
	}
	return block.Stone
}
