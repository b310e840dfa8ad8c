package gen

import "math"

// Hash3 mixes a seed with an integer lattice coordinate. Equal inputs always
// produce equal outputs and neighbouring coordinates decorrelate fully.
func Hash3(seed int64, x, y, z int) uint32 {
	h := uint32(seed) ^ uint32(seed>>32)*0x9E3779B1
	h ^= uint32(x) * 0x85EBCA77
	h = h<<13 | h>>19
	h ^= uint32(y) * 0xC2B2AE3D
	h = h<<17 | h>>15
	h ^= uint32(z) * 0x27D4EB2F
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	h *= 0x297A2D39
	h ^= h >> 15
	return h
}

// unitHash maps a lattice hash to [0, 1).
func unitHash(seed int64, x, y, z int) float64 {
	return float64(Hash3(seed, x, y, z)%10000) / 10000
}

// chunkRNG is a simple deterministic RNG for per-chunk generation.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)
	s ^= int64(Hash3(seed, cx, int(salt), cz))
	return &chunkRNG{state: s}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// nextN returns a value in [0, n). n <= 0 yields 0.
func (r *chunkRNG) nextN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// rangeN returns a value in [lo, hi].
func (r *chunkRNG) rangeN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.nextN(hi-lo+1)
}

func (r *chunkRNG) float() float64 {
	return float64(r.nextN(1<<24)) / (1 << 24)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

// smoothstep is the cubic Hermite ramp from 0 at e0 to 1 at e1.
func smoothstep(e0, e1, v float64) float64 {
	if e0 == e1 {
		if v < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((v - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
