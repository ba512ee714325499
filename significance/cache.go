package significance

import "github.com/BenLubar/memoize"

// Most interior cells of a scan share one of a handful of tables, so each
// distinct (method, table, yates) combination is only evaluated once. The
// memoized function is safe for concurrent use.
var memoizedEvaluate = memoize.Memoize(Method.Evaluate)

func evaluate(m Method, t Table, yates bool) (float64, Method) {
	return memoizedEvaluate.(func(Method, Table, bool) (float64, Method))(m, t, yates)
}
