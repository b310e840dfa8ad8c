package gen

import "math"

// grad3 are the gradient directions of 3D simplex noise: the midpoints of
// the edges of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex is seeded 3D simplex noise with values in [-1, 1]. The caves use it
// for tunnels, where its lack of axis-aligned artefacts matters more than it
// does for the 2D value noise fields.
type Simplex struct {
	perm [512]uint8
}

// NewSimplex builds the permutation table for seed.
func NewSimplex(seed int64) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := Hash3(seed, i, 0x51, 0) % uint32(i+1)
		p[i], p[j] = p[j], p[i]
	}

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

// Noise3D samples the field at (x, y, z).
func (s *Simplex) Noise3D(x, y, z float64) float64 {
	const (
		skew   = 1.0 / 3
		unskew = 1.0 / 6
	)

	k := (x + y + z) * skew
	cell := [3]int{fastFloor(x + k), fastFloor(y + k), fastFloor(z + k)}
	t := float64(cell[0]+cell[1]+cell[2]) * unskew
	d := [3]float64{
		x - float64(cell[0]) + t,
		y - float64(cell[1]) + t,
		z - float64(cell[2]) + t,
	}

	// The simplex containing the point is reached from the cell origin by
	// stepping along each axis once, largest offset first.
	var step [3]int
	sum := s.corner(cell, step, d, 0)
	for n, axis := range axisOrder(d) {
		step[axis] = 1
		sum += s.corner(cell, step, d, float64(n+1)*unskew)
	}
	return 32 * sum
}

// corner is the contribution of the simplex corner at cell+step.
func (s *Simplex) corner(cell, step [3]int, d [3]float64, off float64) float64 {
	x := d[0] - float64(step[0]) + off
	y := d[1] - float64(step[1]) + off
	z := d[2] - float64(step[2]) + off
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	g := grad3[s.gradient(cell[0]+step[0], cell[1]+step[1], cell[2]+step[2])]
	t *= t
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

func (s *Simplex) gradient(i, j, k int) int {
	h := s.perm[i&255+int(s.perm[j&255+int(s.perm[k&255])])]
	return int(h) % len(grad3)
}

// Ridged3D sums octaves of 1-|n|, which peaks on the zero surface of each
// octave. The result is normalised to [0, 1]. Fewer than one octave counts
// as one.
func (s *Simplex) Ridged3D(x, y, z float64, octaves int, persistence float64) float64 {
	var total, norm float64
	amp, freq := 1.0, 1.0
	for range max(octaves, 1) {
		total += (1 - math.Abs(s.Noise3D(x*freq, y*freq, z*freq))) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	return total / norm
}

// axisOrder returns the axes sorted by descending offset.
func axisOrder(d [3]float64) [3]int {
	o := [3]int{0, 1, 2}
	if d[o[0]] < d[o[1]] {
		o[0], o[1] = o[1], o[0]
	}
	if d[o[1]] < d[o[2]] {
		o[1], o[2] = o[2], o[1]
	}
	if d[o[0]] < d[o[1]] {
		o[0], o[1] = o[1], o[0]
	}
	return o
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
