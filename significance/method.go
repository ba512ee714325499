package significance

import (
	"fmt"
	"strings"
)

// Method is a statistical test of association on a 2x2 table. Auto is not a
// test of its own: it selects ChiSquared or Fisher per table.
type Method int

const (
	Auto Method = iota
	Normal
	ChiSquared
	Fisher
	G
)

// ParseMethod understands the names accepted on the command line.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(name) {
	case "auto", "":
		return Auto, nil
	case "z", "normal":
		return Normal, nil
	case "chi", "chi2", "chisq":
		return ChiSquared, nil
	case "fisher":
		return Fisher, nil
	case "g":
		return G, nil
	}

	return Auto, fmt.Errorf("unknown test method %q (expected z, chi, fisher, g or auto)", name)
}

func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case Normal:
		return "z"
	case ChiSquared:
		return "chi"
	case Fisher:
		return "fisher"
	case G:
		return "g"
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// Label is the human readable name of a test as it appears in reports.
func (m Method) Label(yates bool) string {
	switch m {
	case Normal:
		return "Z-test"
	case ChiSquared:
		if yates {
			return "Yates chi-squared"
		}
		return "Chi-squared"
	case Fisher:
		return "Fisher"
	case G:
		return "G-test"
	}

	return m.String()
}

// Evaluate computes the two-sided p-value of t and returns the method that was
// actually applied, which only differs from m when m is Auto.
func (m Method) Evaluate(t Table, yates bool) (float64, Method) {
	used := m
	if m == Auto {
		used = Select(t)
	}

	var p float64
	switch used {
	case Normal:
		p = ZTest(t)
	case ChiSquared:
		p = ChiSquaredTest(t, yates)
	case Fisher:
		p = FisherTest(t)
	case G:
		p = GTest(t)
	default:
		panic(fmt.Sprintf("significance: no test for %v", used))
	}

	return clamp(p), used
}

// Select implements Cochran's rule: the chi-squared test is used when at least
// three expected frequencies are 5 or more and none is below 1; Fisher's exact
// test is used otherwise.
func Select(t Table) Method {
	large := 0
	for _, e := range t.Expected() {
		if e < 1 {
			return Fisher
		}
		if e >= 5 {
			large++
		}
	}

	if large >= 3 {
		return ChiSquared
	}

	return Fisher
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
