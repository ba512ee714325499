// Package report renders the results of a linkage scan.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/ibdlinkage/significance"
)

// NoDifference is printed when no cell reaches significance.
const NoDifference = "There is no significant difference between the cases and the controls."

// TableOptions selects the optional columns of the report.
type TableOptions struct {
	// Method adds the name of the test that produced each p-value. It is
	// meant for runs with automatic test selection.
	Method bool
	Yates  bool

	Misfits bool
}

func (o TableOptions) header() []string {
	cols := []string{"Chromosome", "Start", "End", "Case freq", "Control freq", "p"}
	if o.Method {
		cols = append(cols, "Method")
	}
	if o.Misfits {
		cols = append(cols, "Case misfits", "Control misfits")
	}

	return cols
}

// WriteTable writes the significant results as a tab-separated table with a
// header row. It returns false, and writes nothing, when there is no
// significant result; the caller is then expected to print NoDifference.
func WriteTable(w io.Writer, results []significance.Result, opts TableOptions) (bool, error) {
	significant := significance.Significant(results)
	if len(significant) == 0 {
		return false, nil
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(opts.header(), "\t"))

	for _, r := range significant {
		cols := []string{
			r.Chromosome,
			strconv.FormatInt(r.Start, 10),
			strconv.FormatInt(r.End, 10),
			formatFloat(r.CaseFreq),
			formatFloat(r.ControlFreq),
			formatFloat(r.P),
		}
		if opts.Method {
			cols = append(cols, r.Method.Label(opts.Yates))
		}
		if opts.Misfits {
			var cases, controls []string
			if r.Misfits != nil {
				cases, controls = r.Misfits.Cases, r.Misfits.Controls
			}
			cols = append(cols, strings.Join(cases, ","), strings.Join(controls, ","))
		}
		fmt.Fprintln(bw, strings.Join(cols, "\t"))
	}

	return true, bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
