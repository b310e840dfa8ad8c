package mesh

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// Part selects which texture of a block a face uses.
type Part uint8

const (
	PartAll Part = iota
	PartTop
	PartSide
	PartBottom
)

// Material identifies one render bucket. All quads of a bucket share a
// texture, so the renderer draws each bucket with a single material.
type Material struct {
	Block block.Type
	Part  Part
}

// MaterialFor returns the bucket for face f of block t. Grass shows dirt
// underneath, logs show end grain on top and bottom.
func MaterialFor(t block.Type, f Face) Material {
	if !t.IsDirectional() {
		return Material{Block: t}
	}
	switch {
	case t == block.Grass:
		switch f {
		case FaceUp:
			return Material{block.Grass, PartTop}
		case FaceDown:
			return Material{Block: block.Dirt}
		}
		return Material{block.Grass, PartSide}
	case t.IsLog():
		if f == FaceUp || f == FaceDown {
			return Material{t, PartTop}
		}
		return Material{t, PartSide}
	}
	switch f {
	case FaceUp:
		return Material{t, PartTop}
	case FaceDown:
		return Material{t, PartBottom}
	}
	return Material{t, PartSide}
}

// Translucent reports whether the bucket needs alpha blending.
func (m Material) Translucent() bool { return m.Block.IsLiquid() }

// Cutout reports whether the bucket needs alpha testing.
func (m Material) Cutout() bool { return m.Block.IsLeaves() || m.Block.IsCross() }

func (m Material) String() string {
	switch m.Part {
	case PartTop:
		return m.Block.String() + "_top"
	case PartSide:
		return m.Block.String() + "_side"
	case PartBottom:
		return m.Block.String() + "_bottom"
	}
	return m.Block.String()
}

// pass is the draw order of a bucket: opaque, then alpha-tested, then blended.
func (m Material) pass() int {
	switch {
	case m.Translucent():
		return 2
	case m.Cutout():
		return 1
	}
	return 0
}

func (m Material) less(o Material) bool {
	if pm, po := m.pass(), o.pass(); pm != po {
		return pm < po
	}
	if m.Block != o.Block {
		return m.Block < o.Block
	}
	return m.Part < o.Part
}
