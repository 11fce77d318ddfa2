package table

import (
	"sort"
	"strings"
)

// Group is a maximal set of rows sharing the same values in the grouping
// columns.
type Group struct {
	Key  []string // rendered values of the grouping columns
	Rows []int    // row positions, ascending
}

// First returns the first row of the group.
func (g Group) First() int {
	return g.Rows[0]
}

// Len returns the number of rows in the group.
func (g Group) Len() int {
	return len(g.Rows)
}

const keySep = "\x1f"

// GroupBy partitions the rows of t by the values of the named columns.
// Groups are ordered by key: numeric columns compare numerically, string
// columns lexically, earlier columns first. Rows with a missing value in any
// grouping column belong to no group. Grouping by no columns yields a single
// group holding every row.
func (t *Table) GroupBy(names ...string) ([]Group, error) {
	cols, err := t.Columns(names...)
	if err != nil {
		return nil, err
	}
	if t.rows == 0 {
		return nil, nil
	}

	var groups []Group
	byKey := make(map[string]int)
	key := make([]string, len(cols))

rows:
	for r := 0; r < t.rows; r++ {
		for i, c := range cols {
			if c.Missing(r) {
				continue rows
			}
			key[i] = c.Label(r)
		}
		k := strings.Join(key, keySep)
		gi, ok := byKey[k]
		if !ok {
			gi = len(groups)
			byKey[k] = gi
			groups = append(groups, Group{Key: append([]string(nil), key...)})
		}
		groups[gi].Rows = append(groups[gi].Rows, r)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ra, rb := groups[a].First(), groups[b].First()
		for _, c := range cols {
			if c.less(ra, rb) {
				return true
			}
			if c.less(rb, ra) {
				return false
			}
		}
		return false
	})
	return groups, nil
}

// Keys returns a table with one row per group holding the grouping column
// values of that group.
func (t *Table) Keys(groups []Group, names ...string) (*Table, error) {
	sel, err := t.Select(names...)
	if err != nil {
		return nil, err
	}
	first := make([]int, len(groups))
	for i, g := range groups {
		first[i] = g.First()
	}
	return sel.Take(first), nil
}

// Distinct returns the number of distinct non-missing values in the named
// column.
func (t *Table) Distinct(name string) (int, error) {
	groups, err := t.GroupBy(name)
	if err != nil {
		return 0, err
	}
	return len(groups), nil
}
