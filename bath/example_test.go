package bath_test

import (
	"fmt"

	"github.com/openquantum/bathkit/bath"
)

func ExampleNewDrudeLorentzEnvironment() {
	env := bath.NewDrudeLorentzEnvironment(1, 0.5, 1)

	j, _ := env.SpectralDensity([]float64{0, 1, 2})
	for _, v := range j {
		fmt.Printf("%.2f ", v)
	}
	fmt.Println()
	// Output:
	// 0.00 0.50 0.40
}

func ExampleExponentialApproximation() {
	env := bath.NewDrudeLorentzEnvironment(1, 0.5, 1)

	approx, err := bath.ExponentialApproximation(env, bath.MethodMatsubara,
		bath.ApproxOptions{Nk: 2})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(approx.Exponents()))
	// Output:
	// 3
}

func ExampleNewExponentialEnvironment() {
	// Two real exponents at the same frequency merge on construction.
	env, _ := bath.NewExponentialEnvironment(
		[]complex128{1, 2}, []complex128{3, 3},
		[]complex128{}, []complex128{})

	for _, e := range env.Exponents() {
		fmt.Println(e.Type(), e.Ck(), e.Vk())
	}
	// Output:
	// R (3+0i) (3+0i)
}
