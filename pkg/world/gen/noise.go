package gen

import "math"

// ValueNoise is lattice value noise over Hash3. Every sample is a pure
// function of the seed, the coordinates and the salt that selects a channel.
type ValueNoise struct {
	seed int64
}

// NewValueNoise creates value noise for the given world seed.
func NewValueNoise(seed int64) ValueNoise {
	return ValueNoise{seed: seed}
}

func (v ValueNoise) lattice(ix, iz int, salt int) float64 {
	return float64(Hash3(v.seed, ix, salt, iz))/float64(math.MaxUint32)*2 - 1
}

// Noise2 returns smooth noise in [-1, 1].
func (v ValueNoise) Noise2(x, z float64, salt int) float64 {
	x0 := fastFloor(x)
	z0 := fastFloor(z)
	tx := fade(x - float64(x0))
	tz := fade(z - float64(z0))

	a := v.lattice(x0, z0, salt)
	b := v.lattice(x0+1, z0, salt)
	c := v.lattice(x0, z0+1, salt)
	d := v.lattice(x0+1, z0+1, salt)
	return lerp(lerp(a, b, tx), lerp(c, d, tx), tz)
}

// FBM sums octaves of Noise2 and normalises by the total amplitude, so the
// result stays in [-1, 1].
func (v ValueNoise) FBM(x, z float64, octaves int, persistence, lacunarity float64, salt int) float64 {
	var total, norm float64
	amp, freq := 1.0, 1.0
	for o := 0; o < octaves; o++ {
		total += v.Noise2(x*freq, z*freq, salt+o*7919) * amp
		norm += amp
		amp *= persistence
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// Ridged sums (1-|n|)^2 octaves. The result is in [0, 1] and peaks along the
// zero set of the underlying noise, which produces sharp crests.
func (v ValueNoise) Ridged(x, z float64, octaves int, persistence, lacunarity float64, salt int) float64 {
	var total, norm float64
	amp, freq := 1.0, 1.0
	for o := 0; o < octaves; o++ {
		r := 1 - math.Abs(v.Noise2(x*freq, z*freq, salt+o*7919))
		total += r * r * amp
		norm += amp
		amp *= persistence
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// fade is the smoothstep interpolation weight used between lattice points.
func fade(t float64) float64 { return t * t * (3 - 2*t) }
