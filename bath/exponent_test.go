package bath

import (
	"errors"
	"testing"
)

func TestNewCFExponent_Validation(t *testing.T) {
	ck2 := complex128(1 + 2i)
	offset := 1

	cases := []struct {
		name   string
		typ    ExponentType
		ck2    *complex128
		offset *int
	}{
		{"RI without ck2", RealImagExponent, nil, nil},
		{"R with ck2", RealExponent, &ck2, nil},
		{"plus without offset", PlusExponent, nil, nil},
		{"I with offset", ImagExponent, nil, &offset},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewCFExponent(c.typ, 1, 1, c.ck2, c.offset)
			if !errors.Is(err, ErrInvalidExponent) {
				t.Errorf("got %v, want ErrInvalidExponent", err)
			}
		})
	}

	exp, err := NewCFExponent(RealImagExponent, 1, 2, &ck2, nil)
	if err != nil {
		t.Fatalf("valid RI exponent rejected: %v", err)
	}
	if exp.Ck2() != ck2 {
		t.Errorf("Ck2() = %v, want %v", exp.Ck2(), ck2)
	}
}

func TestCFExponent_Coefficient(t *testing.T) {
	r := NewRealExponent(2, 1)
	if r.Coefficient() != 2 {
		t.Errorf("R coefficient = %v, want 2", r.Coefficient())
	}

	i := NewImagExponent(3, 1)
	if i.Coefficient() != 3i {
		t.Errorf("I coefficient = %v, want 3i", i.Coefficient())
	}

	ri := NewRealImagExponent(2, 3, 1)
	if ri.Coefficient() != 2+3i {
		t.Errorf("RI coefficient = %v, want 2+3i", ri.Coefficient())
	}
}

func TestCFExponent_TypeStrings(t *testing.T) {
	pairs := map[ExponentType]string{
		RealExponent:     "R",
		ImagExponent:     "I",
		RealImagExponent: "RI",
		PlusExponent:     "+",
		MinusExponent:    "-",
	}
	for typ, want := range pairs {
		if typ.String() != want {
			t.Errorf("%d.String() = %q, want %q", typ, typ.String(), want)
		}
	}
}

func TestCombine_SameType(t *testing.T) {
	exps := []CFExponent{
		NewRealExponent(1, 2),
		NewRealExponent(3, 2),
	}
	out := Combine(exps, CombineRTol, CombineATol)
	if len(out) != 1 {
		t.Fatalf("got %d exponents, want 1", len(out))
	}
	if out[0].Type() != RealExponent || out[0].Ck() != 4 || out[0].Vk() != 2 {
		t.Errorf("merged exponent = %v", out[0])
	}
}

func TestCombine_MixedTypesPromoteToRI(t *testing.T) {
	exps := []CFExponent{
		NewRealExponent(1, 2),
		NewImagExponent(3, 2),
	}
	out := Combine(exps, CombineRTol, CombineATol)
	if len(out) != 1 {
		t.Fatalf("got %d exponents, want 1", len(out))
	}
	if out[0].Type() != RealImagExponent {
		t.Fatalf("merged type = %v, want RI", out[0].Type())
	}
	if out[0].Ck() != 1 || out[0].Ck2() != 3 {
		t.Errorf("merged coefficients ck=%v ck2=%v, want 1 and 3", out[0].Ck(), out[0].Ck2())
	}
}

func TestCombine_DistinctFrequenciesKept(t *testing.T) {
	exps := []CFExponent{
		NewRealExponent(1, 1),
		NewRealExponent(1, 2),
		NewRealExponent(1, 3),
	}
	out := Combine(exps, CombineRTol, CombineATol)
	if len(out) != 3 {
		t.Errorf("got %d exponents, want 3", len(out))
	}
}

func TestCombine_ToleranceMatching(t *testing.T) {
	// Frequencies within rtol*|vk| are merged; farther apart they are not.
	exps := []CFExponent{
		NewRealExponent(1, 1),
		NewRealExponent(1, complex(1+1e-7, 0)),
	}
	if out := Combine(exps, 1e-5, 1e-7); len(out) != 1 {
		t.Errorf("near-identical frequencies: got %d exponents, want 1", len(out))
	}

	exps = []CFExponent{
		NewRealExponent(1, 1),
		NewRealExponent(1, complex(1.001, 0)),
	}
	if out := Combine(exps, 1e-5, 1e-7); len(out) != 2 {
		t.Errorf("distinct frequencies: got %d exponents, want 2", len(out))
	}
}

func TestCombine_FermionicNeverCombined(t *testing.T) {
	exps := []CFExponent{
		NewPlusExponent(1, 2, 1),
		NewPlusExponent(3, 2, -1),
	}
	out := Combine(exps, CombineRTol, CombineATol)
	if len(out) != 2 {
		t.Errorf("fermionic exponents merged: got %d, want 2", len(out))
	}
}

func TestCombine_Idempotent(t *testing.T) {
	exps := []CFExponent{
		NewRealExponent(1, 2),
		NewImagExponent(3, 2),
		NewRealExponent(5, 7),
	}
	once := Combine(exps, CombineRTol, CombineATol)
	twice := Combine(once, CombineRTol, CombineATol)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("exponent %d changed on second pass: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestNewExponentialEnvironment_PartialLists(t *testing.T) {
	_, err := NewExponentialEnvironment([]complex128{1}, []complex128{1}, nil, nil)
	if !errors.Is(err, ErrPartialListSpec) {
		t.Errorf("partial lists: got %v, want ErrPartialListSpec", err)
	}

	_, err = NewExponentialEnvironment(
		[]complex128{1, 2}, []complex128{1},
		[]complex128{}, []complex128{})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mismatched lists: got %v, want ErrShapeMismatch", err)
	}
}

func TestNewExponentialEnvironmentFromExponents_RejectsFermionic(t *testing.T) {
	_, err := NewExponentialEnvironmentFromExponents([]CFExponent{
		NewPlusExponent(1, 1, 1),
	})
	if !errors.Is(err, ErrInvalidExponent) {
		t.Errorf("fermionic exponent: got %v, want ErrInvalidExponent", err)
	}
}

func TestExponentialEnvironment_CombineOnConstruction(t *testing.T) {
	ck := []complex128{1, 2}
	vk := []complex128{3, 3}
	none := []complex128{}

	combined, err := NewExponentialEnvironment(ck, vk, none, none)
	if err != nil {
		t.Fatalf("NewExponentialEnvironment: %v", err)
	}
	if got := len(combined.Exponents()); got != 1 {
		t.Errorf("combined environment has %d exponents, want 1", got)
	}

	separate, err := NewExponentialEnvironment(ck, vk, none, none, WithoutCombine())
	if err != nil {
		t.Fatalf("NewExponentialEnvironment: %v", err)
	}
	if got := len(separate.Exponents()); got != 2 {
		t.Errorf("uncombined environment has %d exponents, want 2", got)
	}
}

func TestExponentialEnvironment_PowerSpectrumClosedForm(t *testing.T) {
	// A single real exponent c exp(-v t) has S(w) = 2 c v / (v^2 + w^2).
	env, err := NewExponentialEnvironment(
		[]complex128{2}, []complex128{3},
		[]complex128{}, []complex128{})
	if err != nil {
		t.Fatalf("NewExponentialEnvironment: %v", err)
	}

	for _, w := range []float64{-2, 0, 1, 4} {
		s, err := PowerSpectrumAt(env, w)
		if err != nil {
			t.Fatalf("PowerSpectrumAt(%g): %v", w, err)
		}
		want := 2 * 2 * 3 / (9 + w*w)
		if !almostEqual(s, want, 1e-14) {
			t.Errorf("S(%g) = %g, want %g", w, s, want)
		}
	}
}

func TestExponentialEnvironment_CorrelationSymmetry(t *testing.T) {
	env, err := NewExponentialEnvironment(
		[]complex128{1 + 0.5i}, []complex128{2 + 1i},
		[]complex128{0.3}, []complex128{1.5})
	if err != nil {
		t.Fatalf("NewExponentialEnvironment: %v", err)
	}

	c, err := env.CorrelationFunction([]float64{-1.3, 1.3})
	if err != nil {
		t.Fatalf("CorrelationFunction: %v", err)
	}
	conj := complex(real(c[1]), -imag(c[1]))
	if !almostEqualC(c[0], conj, 1e-14) {
		t.Errorf("C(-1.3) = %v, want conj(C(1.3)) = %v", c[0], conj)
	}
}
