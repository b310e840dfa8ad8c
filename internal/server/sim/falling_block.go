package sim

import (
	"math"

	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
	"github.com/google/uuid"
)

// FallingBlock is a granular block in flight. X and Z are the centre of its
// column; Y is the bottom of the block.
type FallingBlock struct {
	ID      uuid.UUID
	Block   block.Type
	X, Y, Z float64
	VelY    float64
	// Ticks counts simulation steps since the block was released.
	Ticks int
}

func newFallingBlock(t block.Type, p voxel.BlockPos) *FallingBlock {
	return &FallingBlock{
		ID:    uuid.New(),
		Block: t,
		X:     float64(p.X) + 0.5,
		Y:     float64(p.Y),
		Z:     float64(p.Z) + 0.5,
	}
}

// Column returns the block column the entity falls through.
func (fb *FallingBlock) Column() (x, z int) {
	return int(math.Floor(fb.X)), int(math.Floor(fb.Z))
}

// Physics moves falling blocks. A physics engine can replace the built-in
// kinematic model.
type Physics interface {
	Step(fb *FallingBlock, dt float64)
}

// Kinematic is constant gravity with a terminal velocity, in blocks and
// seconds.
type Kinematic struct {
	Gravity          float64
	TerminalVelocity float64
}

// DefaultKinematic matches the feel of sand in block games.
func DefaultKinematic() Kinematic {
	return Kinematic{Gravity: 32, TerminalVelocity: 40}
}

func (k Kinematic) Step(fb *FallingBlock, dt float64) {
	fb.VelY -= k.Gravity * dt
	if k.TerminalVelocity > 0 && fb.VelY < -k.TerminalVelocity {
		fb.VelY = -k.TerminalVelocity
	}
	fb.Y += fb.VelY * dt
}
