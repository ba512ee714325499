package significance

import "fmt"

// Table is a 2x2 contingency table of segment carriers:
//
//	                Case            Control
//	has segment     CaseWith        ControlWith
//	lacks segment   CaseWithout     ControlWithout
type Table struct {
	CaseWith       int
	ControlWith    int
	CaseWithout    int
	ControlWithout int
}

// NewTable builds the table for a cell covered by a cases and b controls, out
// of populations of A cases and B controls.
func NewTable(a, b, A, B int) Table {
	return Table{
		CaseWith:       a,
		ControlWith:    b,
		CaseWithout:    A - a,
		ControlWithout: B - b,
	}
}

func (t Table) Cases() int { return t.CaseWith + t.CaseWithout }
func (t Table) Controls() int { return t.ControlWith + t.ControlWithout }
func (t Table) Carriers() int { return t.CaseWith + t.ControlWith }
func (t Table) Total() int { return t.Cases() + t.Controls() }

// Observed returns the cells in row-major order.
func (t Table) Observed() []float64 {
	return []float64{
		float64(t.CaseWith), float64(t.ControlWith),
		float64(t.CaseWithout), float64(t.ControlWithout),
	}
}

// Expected returns the cell frequencies expected under independence, in the
// same order as Observed.
func (t Table) Expected() []float64 {
	n := float64(t.Total())
	if n == 0 {
		return []float64{0, 0, 0, 0}
	}

	rows := []float64{float64(t.Carriers()), float64(t.Total() - t.Carriers())}
	cols := []float64{float64(t.Cases()), float64(t.Controls())}

	return []float64{
		rows[0] * cols[0] / n, rows[0] * cols[1] / n,
		rows[1] * cols[0] / n, rows[1] * cols[1] / n,
	}
}

// degenerate reports whether any expected frequency is zero, which happens
// when a whole row or column of the table is empty.
func (t Table) degenerate() bool {
	for _, e := range t.Expected() {
		if e == 0 {
			return true
		}
	}
	return false
}

func (t Table) String() string {
	return fmt.Sprintf("[[%d %d] [%d %d]]", t.CaseWith, t.ControlWith, t.CaseWithout, t.ControlWithout)
}
