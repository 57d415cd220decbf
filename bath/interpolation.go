package bath

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// RealFunc is a real-valued function of one real variable.
type RealFunc func(x float64) float64

// ComplexFunc is a complex-valued function of one real variable.
type ComplexFunc func(x float64) complex128

// realInterpolation wraps either a callable or a tabulated (x, y) dataset
// into a single callable. Callables pass through unchanged; sampled data is
// interpolated with a cubic spline.
func realInterpolation(fn RealFunc, xs, ys []float64, name string) (RealFunc, error) {
	if fn != nil {
		return fn, nil
	}
	if xs == nil || len(xs) != len(ys) {
		return nil, fmt.Errorf("%s: a matching list of sample points is required: %w",
			name, ErrShapeMismatch)
	}
	spline := &interp.NaturalCubic{}
	if err := spline.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return spline.Predict, nil
}

// complexInterpolation composes two real interpolants for the real and
// imaginary parts of sampled complex data.
func complexInterpolation(fn ComplexFunc, xs []float64, ys []complex128, name string) (ComplexFunc, error) {
	if fn != nil {
		return fn, nil
	}
	re := make([]float64, len(ys))
	im := make([]float64, len(ys))
	for i, y := range ys {
		re[i] = real(y)
		im[i] = imag(y)
	}
	reFn, err := realInterpolation(nil, xs, re, name)
	if err != nil {
		return nil, err
	}
	imFn, err := realInterpolation(nil, xs, im, name)
	if err != nil {
		return nil, err
	}
	return func(x float64) complex128 {
		return complex(reFn(x), imFn(x))
	}, nil
}

func evalReal(fn RealFunc, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}
