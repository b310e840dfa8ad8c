package block

import "fmt"

// Type identifies the kind of a voxel. The zero value is Air.
type Type uint8

const (
	Air Type = iota
	Stone
	Dirt
	Grass
	Sand
	Gravel
	Clay
	Bedrock

	CoalOre
	IronOre
	GoldOre
	RedstoneOre
	LapisOre
	DiamondOre
	EmeraldOre

	Water

	OakLog
	OakLeaves
	BirchLog
	BirchLeaves
	SpruceLog
	SpruceLeaves
	JungleLog
	JungleLeaves

	Cactus
	DeadBush
	TallGrass

	numTypes
)

// Flag describes a fixed rendering or simulation category of a block type.
type Flag uint8

const (
	// Opaque blocks are full cubes that hide any neighbour face.
	Opaque Flag = 1 << iota
	// Cross blocks render as two diagonal quads and have no collision.
	Cross
	// Liquid blocks render only their top surface and are not collidable.
	Liquid
	// Transparent blocks are solid cubes that let neighbour faces show through.
	Transparent
	// Granular blocks fall when unsupported.
	Granular
	// Directional blocks use distinct top, side and bottom materials.
	Directional
)

type info struct {
	name  string
	flags Flag
}

var registry = [numTypes]info{
	Air:          {"air", 0},
	Stone:        {"stone", Opaque},
	Dirt:         {"dirt", Opaque},
	Grass:        {"grass", Opaque | Directional},
	Sand:         {"sand", Opaque | Granular},
	Gravel:       {"gravel", Opaque | Granular},
	Clay:         {"clay", Opaque},
	Bedrock:      {"bedrock", Opaque},
	CoalOre:      {"coal_ore", Opaque},
	IronOre:      {"iron_ore", Opaque},
	GoldOre:      {"gold_ore", Opaque},
	RedstoneOre:  {"redstone_ore", Opaque},
	LapisOre:     {"lapis_ore", Opaque},
	DiamondOre:   {"diamond_ore", Opaque},
	EmeraldOre:   {"emerald_ore", Opaque},
	Water:        {"water", Liquid},
	OakLog:       {"oak_log", Opaque | Directional},
	OakLeaves:    {"oak_leaves", Transparent},
	BirchLog:     {"birch_log", Opaque | Directional},
	BirchLeaves:  {"birch_leaves", Transparent},
	SpruceLog:    {"spruce_log", Opaque | Directional},
	SpruceLeaves: {"spruce_leaves", Transparent},
	JungleLog:    {"jungle_log", Opaque | Directional},
	JungleLeaves: {"jungle_leaves", Transparent},
	Cactus:       {"cactus", Transparent | Directional},
	DeadBush:     {"dead_bush", Cross},
	TallGrass:    {"tall_grass", Cross},
}

// Count is the number of defined block types.
const Count = int(numTypes)

// Valid reports whether t is a defined block type.
func (t Type) Valid() bool { return t < numTypes }

// Flags returns the category flags of t. Undefined types have no flags.
func (t Type) Flags() Flag {
	if !t.Valid() {
		return 0
	}
	return registry[t].flags
}

// Has reports whether t carries every bit of f.
func (t Type) Has(f Flag) bool { return f != 0 && t.Flags()&f == f }

func (t Type) IsAir() bool         { return t == Air }
func (t Type) IsOpaque() bool      { return t.Has(Opaque) }
func (t Type) IsCross() bool       { return t.Has(Cross) }
func (t Type) IsLiquid() bool      { return t.Has(Liquid) }
func (t Type) IsTransparent() bool { return t.Has(Transparent) }
func (t Type) IsGranular() bool    { return t.Has(Granular) }
func (t Type) IsDirectional() bool { return t.Has(Directional) }

// IsSolid reports whether t takes part in collision: opaque and transparent
// cubes are solid, air, liquids and foliage are not.
func (t Type) IsSolid() bool { return t.Flags()&(Opaque|Transparent) != 0 }

// Supports reports whether a granular block resting on t stays in place.
func (t Type) Supports() bool { return t != Air && !t.IsLiquid() }

// IsLog reports whether t is a tree trunk block.
func (t Type) IsLog() bool {
	switch t {
	case OakLog, BirchLog, SpruceLog, JungleLog:
		return true
	}
	return false
}

// IsLeaves reports whether t is a foliage cube.
func (t Type) IsLeaves() bool {
	switch t {
	case OakLeaves, BirchLeaves, SpruceLeaves, JungleLeaves:
		return true
	}
	return false
}

// IsOre reports whether t is one of the ore blocks.
func (t Type) IsOre() bool { return t >= CoalOre && t <= EmeraldOre }

func (t Type) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return registry[t].name
}

// ByName looks a block type up by its registry name.
func ByName(name string) (Type, bool) {
	for i := range registry {
		if registry[i].name == name {
			return Type(i), true
		}
	}
	return Air, false
}

// MarshalText encodes t by name so configuration files stay readable.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("block: invalid type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a block type name.
func (t *Type) UnmarshalText(text []byte) error {
	v, ok := ByName(string(text))
	if !ok {
		return fmt.Errorf("block: unknown type %q", text)
	}
	*t = v
	return nil
}
