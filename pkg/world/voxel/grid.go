package voxel

import "github.com/OCharnyshevich/voxelworld/pkg/world/block"

// SectionHeight is the vertical size of one storage section.
const SectionHeight = 16

const sectionVolume = SectionHeight * ChunkSize * ChunkSize

// Section holds block data for a 16×16×16 vertical slice of a chunk.
// Index = y*256 + z*16 + x.
type Section struct {
	Blocks [sectionVolume]block.Type
}

// Grid is the dense block storage of one chunk column. Sections are allocated
// on the first non-air write; a nil section reads as air.
type Grid struct {
	height   int
	sections []*Section
}

// NewGrid creates an all-air grid. height is rounded up to a whole section.
func NewGrid(height int) *Grid {
	n := (height + SectionHeight - 1) / SectionHeight
	if n < 1 {
		n = 1
	}
	return &Grid{height: n * SectionHeight, sections: make([]*Section, n)}
}

// Height returns the number of block layers in the grid.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether local coordinates address a cell of the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= 0 && y < g.height
}

// At returns the block at local coordinates. Out of range reads return Air.
func (g *Grid) At(x, y, z int) block.Type {
	if !g.InBounds(x, y, z) {
		return block.Air
	}
	sec := g.sections[y/SectionHeight]
	if sec == nil {
		return block.Air
	}
	return sec.Blocks[(y%SectionHeight)*256+z*16+x]
}

// Set stores t at local coordinates and reports whether the write happened.
func (g *Grid) Set(x, y, z int, t block.Type) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	idx := y / SectionHeight
	sec := g.sections[idx]
	if sec == nil {
		if t == block.Air {
			return true
		}
		sec = &Section{}
		g.sections[idx] = sec
	}
	sec.Blocks[(y%SectionHeight)*256+z*16+x] = t
	return true
}

// SectionEmpty reports whether section i has never held a non-air block.
func (g *Grid) SectionEmpty(i int) bool {
	return i < 0 || i >= len(g.sections) || g.sections[i] == nil
}

// Highest returns the y of the topmost block in column (x, z) matching keep,
// or -1 when none does.
func (g *Grid) Highest(x, z int, keep func(block.Type) bool) int {
	for y := g.height - 1; y >= 0; y-- {
		if g.sections[y/SectionHeight] == nil {
			y -= y % SectionHeight
			continue
		}
		if keep(g.At(x, y, z)) {
			return y
		}
	}
	return -1
}

// Count returns how many cells hold t.
func (g *Grid) Count(t block.Type) int {
	n := 0
	for _, sec := range g.sections {
		if sec == nil {
			if t == block.Air {
				n += sectionVolume
			}
			continue
		}
		for _, b := range sec.Blocks {
			if b == t {
				n++
			}
		}
	}
	return n
}
