package sim

import (
	"log/slog"
	"math"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
)

// Grid is the block access the simulator needs. *world.World satisfies it.
type Grid interface {
	GetBlock(x, y, z int) block.Type
	SetBlock(x, y, z int, t block.Type) bool
	Height() int
}

// Recorder receives simulation instrumentation.
type Recorder interface {
	GravityProcessed(n int)
	LiquidProcessed(n int)
	QueueDepth(gravity, liquid int)
	FallingBlocks(active int)
	FallingLost()
}

// Options configures a Simulator.
type Options struct {
	// GravityBudget and LiquidBudget cap the queue entries handled per tick.
	GravityBudget int
	LiquidBudget  int
	// LiquidSpread limits how many cells liquid travels sideways from a
	// source or from the point where it last fell. Zero means unlimited.
	LiquidSpread int
	// MaxFallTicks drops a falling block that has not settled in time.
	MaxFallTicks int
	Physics      Physics
	Logger       *slog.Logger
	Recorder     Recorder
}

// DefaultOptions returns budgets suited to a 20 Hz tick.
func DefaultOptions() Options {
	return Options{
		GravityBudget: 64,
		LiquidBudget:  128,
		LiquidSpread:  7,
		MaxFallTicks:  600,
	}
}

// maxLift is how far above its landing cell a falling block looks for room.
const maxLift = 4

var horizontal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Simulator runs granular gravity and liquid flow on top of a Grid. It
// learns about edits through BlockChanged and does bounded work in Tick.
type Simulator struct {
	grid Grid
	opts Options
	log  *slog.Logger
	rec  Recorder

	physics Physics
	gravity *WorkQueue
	liquid  *WorkQueue
	levels  map[voxel.BlockPos]int
	falling []*FallingBlock
}

// New creates a Simulator. Subscribe it to the world so it sees edits.
func New(grid Grid, opts Options) *Simulator {
	s := &Simulator{
		grid:    grid,
		opts:    opts,
		log:     opts.Logger,
		rec:     opts.Recorder,
		physics: opts.Physics,
		gravity: NewWorkQueue(64),
		liquid:  NewWorkQueue(128),
		levels:  make(map[voxel.BlockPos]int),
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.rec == nil {
		s.rec = nopRecorder{}
	}
	if s.physics == nil {
		s.physics = DefaultKinematic()
	}
	return s
}

// BlockChanged schedules the work an edit can cause.
func (s *Simulator) BlockChanged(pos voxel.BlockPos, old, cur block.Type) {
	switch {
	case cur.IsGranular():
		s.gravity.Push(pos)
	case cur.IsLiquid():
		if _, ok := s.levels[pos]; !ok {
			s.levels[pos] = 0
		}
		s.liquid.Push(pos)
	}

	if !cur.IsLiquid() {
		delete(s.levels, pos)
	}
	if cur.Supports() {
		return
	}
	above := pos.Add(0, 1, 0)
	if s.grid.GetBlock(above.X, above.Y, above.Z).IsGranular() {
		s.gravity.Push(above)
	}
	if cur != block.Air {
		return
	}
	// Freed space may let liquid in from the side or from above.
	s.wakeLiquid(above)
	for _, d := range horizontal {
		s.wakeLiquid(pos.Add(d[0], 0, d[1]))
	}
}

func (s *Simulator) wakeLiquid(p voxel.BlockPos) {
	if s.grid.GetBlock(p.X, p.Y, p.Z).IsLiquid() {
		s.liquid.Push(p)
	}
}

// Tick advances the simulation by dt seconds: queued gravity checks, then
// queued liquid updates, then falling block motion.
func (s *Simulator) Tick(dt float64) {
	s.rec.GravityProcessed(s.processGravity())
	s.rec.LiquidProcessed(s.processLiquid())
	s.stepFalling(dt)
	s.rec.QueueDepth(s.gravity.Len(), s.liquid.Len())
	s.rec.FallingBlocks(len(s.falling))
}

// Falling returns the blocks currently in flight.
func (s *Simulator) Falling() []*FallingBlock { return s.falling }

// Pending returns the queue depths.
func (s *Simulator) Pending() (gravity, liquid int) {
	return s.gravity.Len(), s.liquid.Len()
}

// Idle reports whether there is no queued work and nothing in flight.
func (s *Simulator) Idle() bool {
	return s.gravity.Len() == 0 && s.liquid.Len() == 0 && len(s.falling) == 0
}

func (s *Simulator) processGravity() int {
	n := 0
	for ; n < s.opts.GravityBudget; n++ {
		p, ok := s.gravity.Pop()
		if !ok {
			break
		}
		t := s.grid.GetBlock(p.X, p.Y, p.Z)
		if !t.IsGranular() || p.Y == 0 {
			continue
		}
		if s.grid.GetBlock(p.X, p.Y-1, p.Z).Supports() {
			continue
		}
		if !s.grid.SetBlock(p.X, p.Y, p.Z, block.Air) {
			continue
		}
		fb := newFallingBlock(t, p)
		s.falling = append(s.falling, fb)
		s.log.Debug("block released", "id", fb.ID, "block", t, "pos", p)
	}
	return n
}

func (s *Simulator) processLiquid() int {
	n := 0
	for ; n < s.opts.LiquidBudget; n++ {
		p, ok := s.liquid.Pop()
		if !ok {
			break
		}
		t := s.grid.GetBlock(p.X, p.Y, p.Z)
		if !t.IsLiquid() {
			continue
		}
		if p.Y > 0 && s.grid.GetBlock(p.X, p.Y-1, p.Z) == block.Air {
			below := voxel.BlockPos{X: p.X, Y: p.Y - 1, Z: p.Z}
			s.levels[below] = 0
			if !s.grid.SetBlock(below.X, below.Y, below.Z, t) {
				delete(s.levels, below)
			}
			continue
		}

		level := s.levels[p]
		if s.opts.LiquidSpread > 0 && level >= s.opts.LiquidSpread {
			continue
		}
		for _, d := range horizontal {
			q := p.Add(d[0], 0, d[1])
			if s.grid.GetBlock(q.X, q.Y, q.Z) != block.Air {
				continue
			}
			s.levels[q] = level + 1
			if !s.grid.SetBlock(q.X, q.Y, q.Z, t) {
				delete(s.levels, q)
			}
		}
	}
	return n
}

func (s *Simulator) stepFalling(dt float64) {
	kept := s.falling[:0]
	for _, fb := range s.falling {
		if !s.advance(fb, dt) {
			kept = append(kept, fb)
		}
	}
	clear(s.falling[len(kept):])
	s.falling = kept
}

// advance moves fb one step and reports whether it is finished, either
// placed back into the grid or lost.
func (s *Simulator) advance(fb *FallingBlock, dt float64) bool {
	x, z := fb.Column()
	prev := fb.Y
	s.physics.Step(fb, dt)
	fb.Ticks++

	// Check each cell whose top face the block crossed, highest first. The
	// floor of the world counts as support.
	hi := int(math.Floor(prev)) - 1
	lo := int(math.Ceil(fb.Y)) - 1
	for c := hi; c >= lo; c-- {
		if c < 0 || s.grid.GetBlock(x, c, z).Supports() {
			if done, ok := s.land(fb, x, c+1, z); ok {
				return done
			}
			// No room: rest on the obstacle and retry next tick.
			fb.Y, fb.VelY = float64(c+1), 0
			break
		}
	}

	if s.opts.MaxFallTicks > 0 && fb.Ticks >= s.opts.MaxFallTicks {
		s.lose(fb, "timeout")
		return true
	}
	return false
}

// land places fb in the first free cell at or a little above y. ok is false
// when every candidate is occupied.
func (s *Simulator) land(fb *FallingBlock, x, y, z int) (done, ok bool) {
	top := min(y+maxLift, s.grid.Height())
	for ; y < top; y++ {
		cur := s.grid.GetBlock(x, y, z)
		if cur != block.Air && !cur.IsLiquid() {
			continue
		}
		if !s.grid.SetBlock(x, y, z, fb.Block) {
			s.lose(fb, "chunk not loaded")
			return true, true
		}
		s.log.Debug("block landed", "id", fb.ID, "block", fb.Block, "y", y, "ticks", fb.Ticks)
		return true, true
	}
	return false, false
}

func (s *Simulator) lose(fb *FallingBlock, reason string) {
	s.rec.FallingLost()
	s.log.Warn("falling block lost", "id", fb.ID, "block", fb.Block, "reason", reason,
		"x", fb.X, "y", fb.Y, "z", fb.Z)
}

type nopRecorder struct{}

func (nopRecorder) GravityProcessed(int) {}
func (nopRecorder) LiquidProcessed(int)  {}
func (nopRecorder) QueueDepth(int, int)  {}
func (nopRecorder) FallingBlocks(int)    {}
func (nopRecorder) FallingLost()         {}
