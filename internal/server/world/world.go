package world

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// EditListener is told about every applied SetBlock, after the affected
// geometry has been rebuilt.
type EditListener interface {
	BlockChanged(pos voxel.BlockPos, old, cur block.Type)
}

// Sink receives geometry and visibility changes. The renderer and the
// physics engine hang off it.
type Sink interface {
	ChunkMeshed(pos voxel.ChunkPos, m *mesh.Mesh)
	ChunkVisibility(pos voxel.ChunkPos, active bool)
}

// Recorder receives world instrumentation.
type Recorder interface {
	ChunkGenerated()
	ChunkMeshed(d time.Duration, quads int)
	BlockEdited(applied bool)
	ChunksLoaded(loaded, active int)
}

// Options configures a World.
type Options struct {
	// ChunkBudget caps chunk creations per EnsureChunksNear call. Zero or
	// less means unbounded.
	ChunkBudget int
	Mesh        mesh.Options
	Logger      *slog.Logger
	Recorder    Recorder
	Sink        Sink
}

// World owns every materialised chunk and mediates all block access.
//
// World is not safe for concurrent use. It is driven from a single goroutine
// so edits, remeshes and simulation steps never interleave.
type World struct {
	generator gen.Generator
	height    int
	opts      Options
	log       *slog.Logger
	rec       Recorder
	sink      Sink

	chunks    map[voxel.ChunkPos]*Chunk
	active    int
	listeners []EditListener
}

// NewWorld creates a new World with the given generator.
func NewWorld(generator gen.Generator, opts Options) *World {
	w := &World{
		generator: generator,
		height:    generator.Height(),
		opts:      opts,
		log:       opts.Logger,
		rec:       opts.Recorder,
		sink:      opts.Sink,
		chunks:    make(map[voxel.ChunkPos]*Chunk),
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	if w.rec == nil {
		w.rec = nopRecorder{}
	}
	if w.sink == nil {
		w.sink = nopSink{}
	}
	return w
}

// Subscribe registers l for edit notifications.
func (w *World) Subscribe(l EditListener) {
	w.listeners = append(w.listeners, l)
}

// Height returns the number of block layers.
func (w *World) Height() int { return w.height }

// Generator returns the terrain generator.
func (w *World) Generator() gen.Generator { return w.generator }

// SpawnHeight returns the y a viewer at column (x, z) should stand on.
func (w *World) SpawnHeight(x, z int) int {
	return w.generator.HeightAt(x, z) + 1
}

// Chunk returns the chunk at pos if it has been materialised.
func (w *World) Chunk(pos voxel.ChunkPos) (*Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

// Chunks returns every materialised chunk ordered by X then Z.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Chunk) int { return comparePos(a.pos, b.pos) })
	return out
}

// ActiveChunks returns the chunks inside the current view.
func (w *World) ActiveChunks() []*Chunk {
	out := w.Chunks()
	return slices.DeleteFunc(out, func(c *Chunk) bool { return !c.active })
}

// Loaded returns the number of materialised chunks.
func (w *World) Loaded() int { return len(w.chunks) }

// EnsureChunksNear materialises the chunks of the (2r+1)² square around
// center, nearest first, creating at most ChunkBudget of them unless force is
// set. Chunks in the square become active and all others inactive. It returns
// how many chunks were created.
func (w *World) EnsureChunksNear(center voxel.ChunkPos, radius int, force bool) int {
	radius = max(radius, 0)
	required := make(map[voxel.ChunkPos]struct{}, (2*radius+1)*(2*radius+1))
	var missing []voxel.ChunkPos
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			p := voxel.ChunkPos{X: center.X + dx, Z: center.Z + dz}
			required[p] = struct{}{}
			if _, ok := w.chunks[p]; !ok {
				missing = append(missing, p)
			}
		}
	}
	slices.SortFunc(missing, func(a, b voxel.ChunkPos) int {
		if c := cmp.Compare(a.DistSq(center), b.DistSq(center)); c != 0 {
			return c
		}
		return comparePos(a, b)
	})

	n := len(missing)
	if !force && w.opts.ChunkBudget > 0 {
		n = min(n, w.opts.ChunkBudget)
	}
	created := missing[:n]
	w.create(created)

	w.updateActivity(required)
	w.rec.ChunksLoaded(len(w.chunks), w.active)
	if force && n > 0 {
		w.log.Info("forced chunk load", "center", center, "radius", radius, "created", n)
	}
	return n
}

// create fills every new chunk before meshing any of them, so seams between
// chunks of the same batch are meshed against real data. Existing neighbours
// are remeshed once afterwards: trees and ores are invisible to the pure
// generator they were meshed against.
func (w *World) create(batch []voxel.ChunkPos) {
	if len(batch) == 0 {
		return
	}
	fresh := make(map[voxel.ChunkPos]struct{}, len(batch))
	for _, p := range batch {
		c := newChunk(p, w.height)
		w.generator.Generate(c.blocks, p.X, p.Z)
		w.chunks[p] = c
		fresh[p] = struct{}{}
		w.rec.ChunkGenerated()
		w.log.Debug("chunk generated", "x", p.X, "z", p.Z)
	}

	var stale []voxel.ChunkPos
	for _, p := range batch {
		w.rebuild(w.chunks[p])
		for _, n := range p.Neighbours() {
			if _, ok := fresh[n]; ok {
				continue
			}
			if _, ok := w.chunks[n]; ok && !slices.Contains(stale, n) {
				stale = append(stale, n)
			}
		}
	}
	slices.SortFunc(stale, comparePos)
	for _, p := range stale {
		w.rebuild(w.chunks[p])
	}
}

func (w *World) updateActivity(required map[voxel.ChunkPos]struct{}) {
	for _, c := range w.Chunks() {
		_, want := required[c.pos]
		if c.active == want {
			continue
		}
		c.active = want
		if want {
			w.active++
		} else {
			w.active--
		}
		w.sink.ChunkVisibility(c.pos, want)
		w.log.Debug("chunk visibility", "x", c.pos.X, "z", c.pos.Z, "active", want)
	}
}

// GetBlock returns the block at a world position. Unloaded chunks answer
// with what the generator would place there; outside the vertical range
// everything is air.
func (w *World) GetBlock(x, y, z int) block.Type {
	if y < 0 || y >= w.height {
		return block.Air
	}
	if c, ok := w.chunks[voxel.ChunkOf(x, z)]; ok {
		return c.blocks.At(voxel.Local(x), y, voxel.Local(z))
	}
	return w.generator.BlockAt(x, y, z)
}

// SetBlock writes t at a world position and rebuilds the owning chunk, plus
// each neighbour whose shared face the block touches. Edits outside the
// vertical range or inside a chunk that has not been materialised are
// dropped and reported as false.
func (w *World) SetBlock(x, y, z int, t block.Type) bool {
	if y < 0 || y >= w.height || !t.Valid() {
		w.rec.BlockEdited(false)
		return false
	}
	pos := voxel.ChunkOf(x, z)
	c, ok := w.chunks[pos]
	if !ok {
		w.rec.BlockEdited(false)
		return false
	}

	lx, lz := voxel.Local(x), voxel.Local(z)
	old := c.blocks.At(lx, y, lz)
	if old == t {
		return true
	}
	c.blocks.Set(lx, y, lz, t)

	w.rebuild(c)
	switch lx {
	case 0:
		w.rebuildAt(voxel.ChunkPos{X: pos.X - 1, Z: pos.Z})
	case voxel.ChunkSize - 1:
		w.rebuildAt(voxel.ChunkPos{X: pos.X + 1, Z: pos.Z})
	}
	switch lz {
	case 0:
		w.rebuildAt(voxel.ChunkPos{X: pos.X, Z: pos.Z - 1})
	case voxel.ChunkSize - 1:
		w.rebuildAt(voxel.ChunkPos{X: pos.X, Z: pos.Z + 1})
	}

	w.rec.BlockEdited(true)
	bp := voxel.BlockPos{X: x, Y: y, Z: z}
	for _, l := range w.listeners {
		l.BlockChanged(bp, old, t)
	}
	return true
}

func (w *World) rebuildAt(pos voxel.ChunkPos) {
	if c, ok := w.chunks[pos]; ok {
		w.rebuild(c)
	}
}

func (w *World) rebuild(c *Chunk) {
	start := time.Now()
	c.mesh = mesh.Build(c.blocks, c.pos, w.GetBlock, w.opts.Mesh)
	c.builds++
	w.rec.ChunkMeshed(time.Since(start), c.mesh.QuadCount())
	w.sink.ChunkMeshed(c.pos, c.mesh)
}

func comparePos(a, b voxel.ChunkPos) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

type nopRecorder struct{}

func (nopRecorder) ChunkGenerated()                {}
func (nopRecorder) ChunkMeshed(time.Duration, int) {}
func (nopRecorder) BlockEdited(bool)               {}
func (nopRecorder) ChunksLoaded(int, int)          {}

type nopSink struct{}

func (nopSink) ChunkMeshed(voxel.ChunkPos, *mesh.Mesh) {}
func (nopSink) ChunkVisibility(voxel.ChunkPos, bool)   {}
