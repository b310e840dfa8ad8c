package world

import (
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// Chunk is one materialised 16×H×16 column of the world. It is filled once
// by the generator and never unloaded; leaving the view only deactivates it.
type Chunk struct {
	pos    voxel.ChunkPos
	blocks *voxel.Grid
	mesh   *mesh.Mesh
	active bool
	builds int
}

func newChunk(pos voxel.ChunkPos, height int) *Chunk {
	return &Chunk{pos: pos, blocks: voxel.NewGrid(height)}
}

func (c *Chunk) Pos() voxel.ChunkPos { return c.pos }

// Block returns the block at chunk-local coordinates.
func (c *Chunk) Block(x, y, z int) block.Type { return c.blocks.At(x, y, z) }

// Grid exposes the block storage for read-only use.
func (c *Chunk) Grid() *voxel.Grid { return c.blocks }

// Mesh returns the geometry from the latest rebuild.
func (c *Chunk) Mesh() *mesh.Mesh { return c.mesh }

func (c *Chunk) Active() bool { return c.active }

// Builds returns how many times the chunk's geometry has been rebuilt.
func (c *Chunk) Builds() int { return c.builds }
