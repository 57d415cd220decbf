package fit

import (
	"fmt"
	"strings"
	"time"
)

// genSummary renders a plain-text table of fit results: one row per term,
// one column per ansatz parameter, preceded by the fit metadata.
func genSummary(duration time.Duration, rmse float64, N int, label string, groups [][]float64, columns []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result of fitting %s with %d terms:\n\n", label, N)
	fmt.Fprintf(&b, "    Fit time: %.4f s\n", duration.Seconds())
	fmt.Fprintf(&b, "    Normalized RMSE: %.2e\n\n", rmse)

	fmt.Fprintf(&b, " %-4s", "#")
	for _, c := range columns {
		fmt.Fprintf(&b, "|%-11s", c)
	}
	b.WriteString("\n")
	for k := 0; k < N; k++ {
		fmt.Fprintf(&b, " %-4d", k+1)
		for g := range columns {
			fmt.Fprintf(&b, "|%-11.2e", groups[g][k])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// twoColumnSummary places the real- and imaginary-part summaries side by
// side for correlation function fits.
func twoColumnSummary(left, right string) string {
	ll := strings.Split(left, "\n")
	rl := strings.Split(right, "\n")

	width := 0
	for _, l := range ll {
		if len(l) > width {
			width = len(l)
		}
	}

	n := len(ll)
	if len(rl) > n {
		n = len(rl)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(ll) {
			l = ll[i]
		}
		if i < len(rl) {
			r = rl[i]
		}
		fmt.Fprintf(&b, "%-*s    %s\n", width, l, r)
	}
	return b.String()
}
