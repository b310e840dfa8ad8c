package gen

import "github.com/aquilax/go-perlin"

// CaveCarver decides which underground cells are hollowed out. It combines a
// spaghetti channel, the product of two ridged simplex fields that is high
// only where both cross zero, with a cavern channel of Perlin blobs. Both
// thresholds relax with depth so caves widen further down.
type CaveCarver struct {
	p       CaveParams
	tunnelA *Simplex
	tunnelB *Simplex
	cavern  *perlin.Perlin
}

// NewCaveCarver creates a CaveCarver from a seed.
func NewCaveCarver(seed int64, p CaveParams) *CaveCarver {
	return &CaveCarver{
		p:       p,
		tunnelA: NewSimplex(seed + 300),
		tunnelB: NewSimplex(seed + 400),
		cavern:  perlin.NewPerlin(2, 2, 3, seed+500),
	}
}

// Carved reports whether (x, y, z) is hollow in a column whose land surface
// is at surface and whose bedrock ends below floor.
func (cc *CaveCarver) Carved(x, y, z, surface, floor int) bool {
	// Carving stops MinDepth below the surface and above the first layer
	// over the bedrock.
	if !cc.p.Enabled || y <= floor || y > surface-cc.p.MinDepth {
		return false
	}

	ramp := cc.p.DepthRamp
	if ramp <= 0 {
		ramp = 1
	}
	bias := cc.p.DepthBias * clamp01(float64(surface-y)/ramp)

	s := cc.p.SpaghettiScale
	bx, by, bz := float64(x)*s, float64(y)*s*1.5, float64(z)*s
	oct := cc.p.SpaghettiOctaves
	a := cc.tunnelA.Ridged3D(bx, by, bz, oct, 0.5)
	b := cc.tunnelB.Ridged3D(bx, by, bz, oct, 0.5)
	if a*b > cc.p.SpaghettiThreshold-bias {
		return true
	}

	cs := cc.p.CavernScale
	blob := cc.cavern.Noise3D(float64(x)*cs, float64(y)*cs*1.8, float64(z)*cs)
	return blob > cc.p.CavernThreshold-bias
}
