package specfun

import (
	"math"
	"math/cmplx"
	"testing"
)

func almostEqualC(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}

func TestHurwitzZeta_RiemannValues(t *testing.T) {
	// zeta(s, 1) is the Riemann zeta function.
	cases := []struct {
		s    float64
		want float64
	}{
		{2, math.Pi * math.Pi / 6},
		{4, math.Pow(math.Pi, 4) / 90},
		{3, 1.2020569031595943}, // Apery's constant
	}
	for _, c := range cases {
		got := HurwitzZeta(c.s, 1)
		if !almostEqualC(got, complex(c.want, 0), 1e-12) {
			t.Errorf("zeta(%g, 1) = %v, want %g", c.s, got, c.want)
		}
	}
}

func TestHurwitzZeta_Recurrence(t *testing.T) {
	// zeta(s, a) = a^-s + zeta(s, a+1) for complex a.
	for _, a := range []complex128{1, 2.5, 1 + 1i, 0.5 - 2i, 3 + 0.7i} {
		for _, s := range []float64{1.5, 2, 3.7} {
			lhs := HurwitzZeta(s, a)
			rhs := cmplx.Pow(a, complex(-s, 0)) + HurwitzZeta(s, a+1)
			if !almostEqualC(lhs, rhs, 1e-10*cmplx.Abs(lhs)+1e-12) {
				t.Errorf("recurrence fails for s=%g a=%v: %v vs %v", s, a, lhs, rhs)
			}
		}
	}
}

func TestHurwitzZeta_RealShift(t *testing.T) {
	// zeta(2, 1/2) = pi^2/2.
	got := HurwitzZeta(2, 0.5)
	want := math.Pi * math.Pi / 2
	if !almostEqualC(got, complex(want, 0), 1e-10) {
		t.Errorf("zeta(2, 1/2) = %v, want %g", got, want)
	}
}

func TestDefaultProvider(t *testing.T) {
	if g := Default.Gamma(5); g != 24 {
		t.Errorf("Gamma(5) = %g, want 24", g)
	}
	if g := Default.Gamma(0.5); math.Abs(g-math.Sqrt(math.Pi)) > 1e-14 {
		t.Errorf("Gamma(1/2) = %g, want sqrt(pi)", g)
	}
	got := Default.HurwitzZeta(2, 1)
	if !almostEqualC(got, complex(math.Pi*math.Pi/6, 0), 1e-12) {
		t.Errorf("provider zeta(2, 1) = %v", got)
	}
}
