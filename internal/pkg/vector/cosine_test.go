package vector

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosineIdenticalDirection(t *testing.T) {
	a := []float64{1, 2, 3}
	if got := Cosine(a, a); !almostEqual(got, 1) {
		t.Errorf("Cosine(a, a) = %v, want 1", got)
	}
}

func TestCosineScaleInvariance(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5}
	scaled := []float64{0.6, -2.4, 9.0}

	if got := Cosine(a, scaled); !almostEqual(got, 1) {
		t.Errorf("Cosine(a, 2a) = %v, want 1", got)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	if got := Cosine(a, b); !almostEqual(got, 0) {
		t.Errorf("Cosine(orthogonal) = %v, want 0", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{-1, -2}
	if got := Cosine(a, b); !almostEqual(got, -1) {
		t.Errorf("Cosine(a, -a) = %v, want -1", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{1, 2, 3}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(zero, b) = %v, want 0", got)
	}
	if got := Cosine(a, a); got != 0 {
		t.Errorf("Cosine(zero, zero) = %v, want 0", got)
	}
}

func TestCosineMismatchedLengths(t *testing.T) {
	if got := Cosine([]float64{1, 2}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("Cosine(mismatched) = %v, want 0", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("Cosine(nil, nil) = %v, want 0", got)
	}
}

func TestCosineBoundedRange(t *testing.T) {
	a := []float64{0.12, -0.87, 0.33, 2.1}
	b := []float64{-1.4, 0.02, 0.95, -0.6}

	got := Cosine(a, b)
	if got < -1-1e-9 || got > 1+1e-9 {
		t.Errorf("Cosine out of [-1, 1]: %v", got)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Normalize([]float64{3, 4})

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if !almostEqual(math.Sqrt(norm), 1) {
		t.Errorf("Normalize produced norm %v, want 1", math.Sqrt(norm))
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Normalize([]float64{0, 0})
	if v[0] != 0 || v[1] != 0 {
		t.Errorf("Normalize(zero) = %v, want zero vector", v)
	}
}
