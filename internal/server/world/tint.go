package world

import (
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	grassTop  = mesh.Material{Block: block.Grass, Part: mesh.PartTop}
	tintDry   = mgl32.Vec3{0.75, 0.71, 0.38}
	tintLush  = mgl32.Vec3{0.33, 0.69, 0.24}
	tintCold  = mgl32.Vec3{0.47, 0.63, 0.52}
	tintWater = mgl32.Vec3{0.25, 0.45, 0.85}
)

// BiomeTint colours grass tops, foliage and water by the column climate:
// dry land yellows, wet land greens and cold land turns blue-green.
func BiomeTint(col *gen.Column) mesh.TintFunc {
	return func(x, z int, m mesh.Material) (mgl32.Vec3, bool) {
		switch {
		case m.Block == block.Water:
			return tintWater, true
		case m == grassTop, m.Block == block.TallGrass, m.Block.IsLeaves():
		default:
			return mgl32.Vec3{}, false
		}
		c := col.BiomeParams(x, z)
		rain := float32(c.Rainfall)
		tint := tintDry.Mul(1 - rain).Add(tintLush.Mul(rain))
		if c.Temperature < 0.3 {
			k := float32((0.3 - c.Temperature) / 0.3)
			tint = tint.Mul(1 - k).Add(tintCold.Mul(k))
		}
		return tint, true
	}
}
