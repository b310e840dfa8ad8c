package gen

import (
	"math"
	"testing"
)

func TestSimplexDeterministic(t *testing.T) {
	a, b := NewSimplex(99), NewSimplex(99)
	for i := 0; i < 200; i++ {
		x, y, z := float64(i)*0.15, float64(i)*0.25-10, float64(i)*-0.35
		if a.Noise3D(x, y, z) != b.Noise3D(x, y, z) {
			t.Fatalf("Noise3D not deterministic at (%f, %f, %f)", x, y, z)
		}
		if a.Ridged3D(x, y, z, 3, 0.5) != b.Ridged3D(x, y, z, 3, 0.5) {
			t.Fatalf("Ridged3D not deterministic at (%f, %f, %f)", x, y, z)
		}
	}
}

func TestSimplexRange(t *testing.T) {
	s := NewSimplex(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		z := float64(i)*0.71 - 500
		if v := s.Noise3D(x, y, z); v < -1 || v > 1 {
			t.Fatalf("Noise3D(%f, %f, %f) = %f, out of [-1,1]", x, y, z, v)
		}
		if v := s.Ridged3D(x, y, z, 4, 0.5); v < 0 || v > 1 {
			t.Fatalf("Ridged3D(%f, %f, %f) = %f, out of [0,1]", x, y, z, v)
		}
	}
}

func TestSimplexSeedsDiffer(t *testing.T) {
	a, b := NewSimplex(1), NewSimplex(2)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.1, float64(i)*0.2, float64(i)*0.3
		if a.Noise3D(x, y, z) != b.Noise3D(x, y, z) {
			return
		}
	}
	t.Error("different seeds should produce different noise")
}

func TestSimplexZeroAtLatticePoints(t *testing.T) {
	s := NewSimplex(7)
	// At a simplex vertex the vertex's own gradient term vanishes and every
	// other corner is out of reach.
	for i := -5; i <= 5; i++ {
		ci, cj, ck := i, 2*i+1, 3-i
		off := float64(ci+cj+ck) / 6
		x, y, z := float64(ci)-off, float64(cj)-off, float64(ck)-off
		if v := s.Noise3D(x, y, z); math.Abs(v) > 1e-9 {
			t.Fatalf("Noise3D at vertex (%d,%d,%d) = %g, want 0", ci, cj, ck, v)
		}
	}
}

func TestSimplexSmooth(t *testing.T) {
	s := NewSimplex(456)
	const step = 0.01
	prev := s.Noise3D(0, 0.3, 0.7)
	for i := 1; i < 2000; i++ {
		cur := s.Noise3D(float64(i)*step, 0.3, 0.7)
		if d := math.Abs(cur - prev); d > 0.1 {
			t.Fatalf("noise jumped by %f at x=%f", d, float64(i)*step)
		}
		prev = cur
	}
}

func TestRidgedSingleOctave(t *testing.T) {
	s := NewSimplex(3)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.21, float64(i)*-0.13, float64(i)*0.07
		want := 1 - math.Abs(s.Noise3D(x, y, z))
		if got := s.Ridged3D(x, y, z, 1, 0.5); got != want {
			t.Fatalf("Ridged3D one octave = %f, want %f", got, want)
		}
		if got := s.Ridged3D(x, y, z, 0, 0.5); got != want {
			t.Fatalf("Ridged3D zero octaves = %f, want %f", got, want)
		}
	}
}
