package voxel

// ChunkSize is the horizontal edge length of a chunk in blocks.
const ChunkSize = 16

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// BlockPos is an absolute block coordinate.
type BlockPos struct{ X, Y, Z int }

// Add returns p offset by (dx, dy, dz).
func (p BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Chunk returns the chunk that owns p.
func (p BlockPos) Chunk() ChunkPos {
	return ChunkPos{FloorDiv(p.X, ChunkSize), FloorDiv(p.Z, ChunkSize)}
}

// ChunkOf returns the chunk containing world column (x, z).
func ChunkOf(x, z int) ChunkPos {
	return ChunkPos{FloorDiv(x, ChunkSize), FloorDiv(z, ChunkSize)}
}

// Local converts a world coordinate to its offset inside the owning chunk.
func Local(v int) int {
	return v - FloorDiv(v, ChunkSize)*ChunkSize
}

// Origin returns the world X and Z of the chunk's (0, 0) column.
func (c ChunkPos) Origin() (x, z int) {
	return c.X * ChunkSize, c.Z * ChunkSize
}

// DistSq returns the squared chunk distance between c and o.
func (c ChunkPos) DistSq(o ChunkPos) int {
	dx, dz := c.X-o.X, c.Z-o.Z
	return dx*dx + dz*dz
}

// Neighbours returns the four horizontally adjacent chunks.
func (c ChunkPos) Neighbours() [4]ChunkPos {
	return [4]ChunkPos{
		{c.X - 1, c.Z},
		{c.X + 1, c.Z},
		{c.X, c.Z - 1},
		{c.X, c.Z + 1},
	}
}

// FloorDiv divides rounding toward negative infinity, so that -1 / 16 == -1.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
