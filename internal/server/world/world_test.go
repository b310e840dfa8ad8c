package world

import (
	"testing"
	"time"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	generated int
	meshed    int
	applied   int
	dropped   int
}

func (r *countingRecorder) ChunkGenerated()                { r.generated++ }
func (r *countingRecorder) ChunkMeshed(time.Duration, int) { r.meshed++ }
func (r *countingRecorder) ChunksLoaded(int, int)          {}
func (r *countingRecorder) BlockEdited(applied bool) {
	if applied {
		r.applied++
	} else {
		r.dropped++
	}
}

type recordingSink struct {
	meshed     []voxel.ChunkPos
	visibility map[voxel.ChunkPos]bool
}

func (s *recordingSink) ChunkMeshed(pos voxel.ChunkPos, _ *mesh.Mesh) {
	s.meshed = append(s.meshed, pos)
}

func (s *recordingSink) ChunkVisibility(pos voxel.ChunkPos, active bool) {
	if s.visibility == nil {
		s.visibility = make(map[voxel.ChunkPos]bool)
	}
	s.visibility[pos] = active
}

type edit struct {
	pos      voxel.BlockPos
	old, cur block.Type
}

type editLog []edit

func (l *editLog) BlockChanged(pos voxel.BlockPos, old, cur block.Type) {
	*l = append(*l, edit{pos, old, cur})
}

func flatWorld(opts Options) *World {
	return NewWorld(gen.NewFlatGenerator(64), opts)
}

func TestWorldBaseStateFlatGenerator(t *testing.T) {
	w := flatWorld(Options{})

	// Nothing is loaded, so every answer comes from the generator.
	assert.Equal(t, block.Bedrock, w.GetBlock(0, 0, 0))
	assert.Equal(t, block.Stone, w.GetBlock(-40, 1, 17))
	assert.Equal(t, block.Grass, w.GetBlock(0, 4, 0))
	assert.Equal(t, block.Air, w.GetBlock(5, 40, 10))
	assert.Equal(t, block.Air, w.GetBlock(5, -1, 10))
	assert.Equal(t, block.Air, w.GetBlock(5, 64, 10))
	assert.Equal(t, 0, w.Loaded())
}

func TestGetBlockOnUnloadedChunkMatchesGenerator(t *testing.T) {
	g := gen.NewDefaultGenerator(gen.DefaultParams(99))
	w := NewWorld(g, Options{})

	for i := 0; i < 200; i++ {
		x, y, z := i*7-700, i%g.Height(), i*-13+50
		require.Equal(t, g.BlockAt(x, y, z), w.GetBlock(x, y, z))
	}
	assert.Equal(t, 0, w.Loaded(), "GetBlock must not materialise chunks")
}

func TestSetBlockDroppedOutsideLoadedSpace(t *testing.T) {
	rec := &countingRecorder{}
	var edits editLog
	w := flatWorld(Options{Recorder: rec})
	w.Subscribe(&edits)

	assert.False(t, w.SetBlock(3, 10, 5, block.Stone), "chunk not materialised")
	assert.Equal(t, block.Air, w.GetBlock(3, 10, 5))

	w.EnsureChunksNear(voxel.ChunkPos{}, 0, true)
	assert.False(t, w.SetBlock(3, -1, 5, block.Stone))
	assert.False(t, w.SetBlock(3, 64, 5, block.Stone))
	assert.Empty(t, edits)
	assert.Equal(t, 3, rec.dropped)
	assert.Equal(t, 0, rec.applied)
}

func TestSetBlockIdempotent(t *testing.T) {
	var edits editLog
	w := flatWorld(Options{})
	w.Subscribe(&edits)
	w.EnsureChunksNear(voxel.ChunkPos{}, 1, true)

	require.True(t, w.SetBlock(3, 10, 5, block.Sand))
	c, _ := w.Chunk(voxel.ChunkPos{})
	builds := c.Builds()

	require.True(t, w.SetBlock(3, 10, 5, block.Sand))
	assert.Equal(t, block.Sand, w.GetBlock(3, 10, 5))
	assert.Equal(t, builds, c.Builds(), "rewriting the same block is a no-op")
	assert.Equal(t, editLog{{voxel.BlockPos{X: 3, Y: 10, Z: 5}, block.Air, block.Sand}}, edits)

	require.True(t, w.SetBlock(0, 4, 0, block.Air))
	assert.Equal(t, block.Air, w.GetBlock(0, 4, 0))
	assert.Equal(t, block.Grass, edits[1].old)
}

func TestBoundaryRemeshPropagation(t *testing.T) {
	w := flatWorld(Options{})
	w.EnsureChunksNear(voxel.ChunkPos{}, 1, true)

	snapshot := func() map[voxel.ChunkPos]int {
		out := make(map[voxel.ChunkPos]int)
		for _, c := range w.Chunks() {
			out[c.Pos()] = c.Builds()
		}
		return out
	}
	cases := []struct {
		name    string
		x, z    int
		rebuilt []voxel.ChunkPos
	}{
		{"interior", 7, 7, []voxel.ChunkPos{{0, 0}}},
		{"west face", 0, 7, []voxel.ChunkPos{{0, 0}, {-1, 0}}},
		{"east face", 15, 7, []voxel.ChunkPos{{0, 0}, {1, 0}}},
		{"north face", 7, 0, []voxel.ChunkPos{{0, 0}, {0, -1}}},
		{"south east corner", 15, 15, []voxel.ChunkPos{{0, 0}, {1, 0}, {0, 1}}},
		{"north west corner", 0, 0, []voxel.ChunkPos{{0, 0}, {-1, 0}, {0, -1}}},
	}
	for _, tc := range cases {
		before := snapshot()
		require.True(t, w.SetBlock(tc.x, 20, tc.z, block.Stone), tc.name)
		after := snapshot()

		for pos, n := range after {
			want := before[pos]
			for _, r := range tc.rebuilt {
				if r == pos {
					want++
				}
			}
			assert.Equal(t, want, n, "%s: chunk %v", tc.name, pos)
		}
	}
}

func TestBoundaryEditUpdatesNeighbourFaces(t *testing.T) {
	w := flatWorld(Options{})
	w.EnsureChunksNear(voxel.ChunkPos{}, 1, true)
	east, _ := w.Chunk(voxel.ChunkPos{X: 1})

	before := east.Mesh().QuadCount()
	require.True(t, w.SetBlock(15, 5, 3, block.Stone))
	require.True(t, w.SetBlock(16, 5, 3, block.Stone))
	require.True(t, w.SetBlock(15, 5, 3, block.Air))

	// The east block shows five faces (its west face is exposed again once
	// the west block is gone) and hides the grass top below it.
	assert.Equal(t, before+4, east.Mesh().QuadCount())
}

func TestEnsureChunksNearBudgetNearestFirst(t *testing.T) {
	sink := &recordingSink{}
	w := flatWorld(Options{ChunkBudget: 3, Sink: sink})
	center := voxel.ChunkPos{X: 4, Z: -2}

	n := w.EnsureChunksNear(center, 2, false)
	assert.Equal(t, 3, n)
	require.NotEmpty(t, sink.meshed)
	assert.Equal(t, center, sink.meshed[0], "centre chunk comes first")
	for _, c := range w.Chunks() {
		assert.LessOrEqual(t, c.Pos().DistSq(center), 1)
	}

	total := 3
	for i := 0; i < 20 && total < 25; i++ {
		total += w.EnsureChunksNear(center, 2, false)
	}
	assert.Equal(t, 25, total)
	assert.Equal(t, 25, w.Loaded())
	assert.Zero(t, w.EnsureChunksNear(center, 2, false))
}

func TestEnsureChunksNearForced(t *testing.T) {
	w := flatWorld(Options{ChunkBudget: 1})
	assert.Equal(t, 49, w.EnsureChunksNear(voxel.ChunkPos{}, 3, true))
	assert.Len(t, w.ActiveChunks(), 49)
}

func TestDeactivationAndReactivation(t *testing.T) {
	rec := &countingRecorder{}
	sink := &recordingSink{}
	w := flatWorld(Options{Recorder: rec, Sink: sink})

	w.EnsureChunksNear(voxel.ChunkPos{}, 1, true)
	require.Equal(t, 9, rec.generated)
	require.True(t, w.SetBlock(8, 30, 8, block.Sand))

	w.EnsureChunksNear(voxel.ChunkPos{X: 10}, 1, true)
	origin, ok := w.Chunk(voxel.ChunkPos{})
	require.True(t, ok, "chunks are never destroyed")
	assert.False(t, origin.Active())
	assert.False(t, sink.visibility[voxel.ChunkPos{}])
	assert.Len(t, w.ActiveChunks(), 9)
	assert.Equal(t, 18, w.Loaded())

	w.EnsureChunksNear(voxel.ChunkPos{}, 1, true)
	assert.True(t, origin.Active())
	assert.Equal(t, 18, rec.generated, "reactivation must not regenerate")
	assert.Equal(t, block.Sand, w.GetBlock(8, 30, 8), "edits survive deactivation")
}

func TestNewChunkRemeshesExistingNeighbours(t *testing.T) {
	w := flatWorld(Options{})
	w.EnsureChunksNear(voxel.ChunkPos{}, 0, true)
	origin, _ := w.Chunk(voxel.ChunkPos{})
	require.Equal(t, 1, origin.Builds())

	w.EnsureChunksNear(voxel.ChunkPos{X: 1}, 0, true)
	assert.Equal(t, 2, origin.Builds())
	east, _ := w.Chunk(voxel.ChunkPos{X: 1})
	assert.Equal(t, 1, east.Builds())
}

func TestBiomeTint(t *testing.T) {
	p := gen.DefaultParams(5)
	tint := BiomeTint(gen.NewColumn(&p))

	_, ok := tint(0, 0, mesh.Material{Block: block.Stone})
	assert.False(t, ok)
	c, ok := tint(10, 20, grassTop)
	assert.True(t, ok)
	for _, v := range c {
		assert.True(t, v >= 0 && v <= 1)
	}
}
