package significance

import (
	"math"

	fet "github.com/glycerine/golang-fisher-exact"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ZTest is the two-proportion z-test with pooled variance. The p-value comes
// from the exact standard normal CDF. When every individual (or none) carries
// the segment the pooled variance is zero and there is no evidence of a
// difference, so the p-value is 1.
func ZTest(t Table) float64 {
	A, B := float64(t.Cases()), float64(t.Controls())
	pooled := float64(t.Carriers()) / (A + B)
	se := math.Sqrt(pooled * (1 - pooled) * (1/A + 1/B))
	if se == 0 {
		return 1
	}

	z := (float64(t.CaseWith)/A - float64(t.ControlWith)/B) / se

	return 2 * distuv.UnitNormal.CDF(-math.Abs(z))
}

// ChiSquaredTest is Pearson's chi-squared test of independence with one degree
// of freedom. With yates set, each |observed - expected| is shrunk by up to 0.5
// (never past zero) before squaring.
func ChiSquaredTest(t Table, yates bool) float64 {
	if t.degenerate() {
		return 1
	}

	observed, expected := t.Observed(), t.Expected()
	if yates {
		for i := range observed {
			diff := expected[i] - observed[i]
			observed[i] += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
		}
	}

	chi2 := stat.ChiSquare(observed, expected)
	if chi2 <= 0 {
		return 1
	}

	return distuv.ChiSquared{K: 1}.Survival(chi2)
}

// FisherTest is the two-sided Fisher's exact test.
func FisherTest(t Table) float64 {
	if t.degenerate() {
		return 1
	}

	_, _, _, twop := fet.FisherExactTest(t.CaseWith, t.ControlWith, t.CaseWithout, t.ControlWithout)

	return twop
}

// GTest is the log-likelihood ratio test, G = 2 * sum(O * ln(O/E)), with one
// degree of freedom. Empty cells contribute nothing to the sum.
func GTest(t Table) float64 {
	if t.degenerate() {
		return 1
	}

	observed, expected := t.Observed(), t.Expected()
	g := 0.0
	for i, o := range observed {
		if o == 0 {
			continue
		}
		g += o * math.Log(o/expected[i])
	}
	g *= 2

	// Rounding can push a perfect fit slightly below zero
	if g <= 0 {
		return 1
	}

	return distuv.ChiSquared{K: 1}.Survival(g)
}
