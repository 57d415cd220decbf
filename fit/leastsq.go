package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// leastsq minimizes sum(((model(x, p) - y) / sigma)^2) over the box
// lower <= p <= upper with a projected Levenberg-Marquardt iteration and a
// forward-difference Jacobian. guess, lower and upper use the flat packed
// parameter layout; n is the number of parameter groups.
func leastsq(model modelFunc, y, x, guess, lower, upper []float64, sigma float64, n int) []float64 {
	if sigma == 0 {
		sigma = 1
	}
	np := len(guess)
	p := make([]float64, np)
	copy(p, guess)
	clampToBounds(p, lower, upper)

	residual := func(p []float64) []float64 {
		f := model(x, unpack(p, n))
		r := make([]float64, len(y))
		for i := range y {
			r[i] = (f[i] - y[i]) / sigma
		}
		return r
	}

	sumSq := func(r []float64) float64 {
		var s float64
		for _, v := range r {
			s += v * v
		}
		return s
	}

	r := residual(p)
	cost := sumSq(r)

	lambda := 1e-3
	const (
		maxIter   = 500
		gradTol   = 1e-10
		stepTol   = 1e-12
		costTol   = 1e-14
		maxLambda = 1e12
	)

	J := mat.NewDense(len(y), np, nil)
	for iter := 0; iter < maxIter; iter++ {
		// Forward differences, stepping backwards at the upper bound so
		// the probe point stays feasible.
		for j := 0; j < np; j++ {
			h := 1e-7 * math.Max(1, math.Abs(p[j]))
			if p[j]+h > upper[j] {
				h = -h
			}
			pj := p[j]
			p[j] = pj + h
			rp := residual(p)
			p[j] = pj
			for i := range rp {
				J.Set(i, j, (rp[i]-r[i])/h)
			}
		}

		var A mat.Dense
		A.Mul(J.T(), J)
		g := mat.NewVecDense(np, nil)
		g.MulVec(J.T(), mat.NewVecDense(len(r), r))

		if mat.Norm(g, math.Inf(1)) < gradTol {
			break
		}

		improved := false
		for lambda <= maxLambda {
			B := mat.NewDense(np, np, nil)
			B.Copy(&A)
			for j := 0; j < np; j++ {
				B.Set(j, j, A.At(j, j)+lambda*(A.At(j, j)+1e-12))
			}
			delta := mat.NewVecDense(np, nil)
			if err := delta.SolveVec(B, negated(g)); err != nil {
				lambda *= 10
				continue
			}

			cand := make([]float64, np)
			for j := 0; j < np; j++ {
				cand[j] = p[j] + delta.AtVec(j)
			}
			clampToBounds(cand, lower, upper)

			rCand := residual(cand)
			cCand := sumSq(rCand)
			if cCand < cost {
				step := 0.0
				for j := range p {
					step = math.Max(step, math.Abs(cand[j]-p[j]))
				}
				gain := cost - cCand
				copy(p, cand)
				r = rCand
				cost = cCand
				lambda = math.Max(lambda/3, 1e-12)
				improved = true
				if step < stepTol || gain < costTol {
					return p
				}
				break
			}
			lambda *= 10
		}
		if !improved {
			break
		}
	}
	return p
}

func clampToBounds(p, lower, upper []float64) {
	for j := range p {
		if p[j] < lower[j] {
			p[j] = lower[j]
		}
		if p[j] > upper[j] {
			p[j] = upper[j]
		}
	}
}

func negated(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.ScaleVec(-1, v)
	return out
}
