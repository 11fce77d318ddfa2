package summary

import "fmt"

// Stat identifies one derived statistic of a measure.
type Stat int

const (
	Len Stat = iota
	Mean
	Std
	Stde
	CIUp
	CIDown
	CI
)

// Stats lists the derived statistics in output column order.
var Stats = []Stat{Len, Mean, Std, Stde, CIUp, CIDown, CI}

var statSuffix = [...]string{
	Len:    "len",
	Mean:   "mean",
	Std:    "std",
	Stde:   "stde",
	CIUp:   "ciUp",
	CIDown: "ciDown",
	CI:     "ci",
}

// String returns the column suffix of the statistic.
func (s Stat) String() string {
	if s < 0 || int(s) >= len(statSuffix) {
		return fmt.Sprintf("Stat(%d)", int(s))
	}
	return statSuffix[s]
}

// Key names a derived column: a measure and one of its statistics.
type Key struct {
	Measure string
	Stat    Stat
}

// String renders the column name, "{measure}_{stat}".
func (k Key) String() string {
	return k.Measure + "_" + k.Stat.String()
}

// Column returns the name of the column holding stat for measure.
func Column(measure string, stat Stat) string {
	return Key{Measure: measure, Stat: stat}.String()
}
