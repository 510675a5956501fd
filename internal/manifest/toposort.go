package manifest

import (
	"sort"
)

// topoSort orders n nodes so that every node comes after the nodes
// depsFn returns for it. When several nodes are ready the smallest index
// goes first, so the order is deterministic. Nodes on or behind a cycle
// are returned in cyclic, sorted.
func topoSort(n int, depsFn func(i int) []int) (order, cyclic []int) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) == n {
		return order, nil
	}

	for i := range n {
		if indeg[i] > 0 {
			cyclic = append(cyclic, i)
		}
	}

	return order, cyclic
}
