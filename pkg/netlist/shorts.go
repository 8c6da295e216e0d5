package netlist

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// netSets is a union-find over net indexes.
type netSets struct {
	parent []int
	rank   []int
}

func newNetSets(n int) *netSets {
	s := &netSets{parent: make([]int, n), rank: make([]int, n)}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

func (s *netSets) find(i int) int {
	root := i
	for s.parent[root] != root {
		root = s.parent[root]
	}
	// path compression
	for i != root {
		next := s.parent[i]
		s.parent[i] = root
		i = next
	}
	return root
}

func (s *netSets) union(a, b int) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	switch {
	case s.rank[ra] < s.rank[rb]:
		s.parent[ra] = rb
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	default:
		s.parent[rb] = ra
		s.rank[ra]++
	}
}

// ShortedNets groups the names of nets that are electrically one net because
// they share a pin, directly or through other nets. Only groups of two or
// more nets are returned, each in schematic order, ordered by their first net.
func ShortedNets(sch *schematic.Schematic) [][]string {
	nets := sch.Nets()
	sets := newNetSets(len(nets))

	owner := make(map[schematic.Pin]int)
	for i, n := range nets {
		for _, p := range n.Pins() {
			if j, ok := owner[p]; ok {
				sets.union(i, j)
				continue
			}
			owner[p] = i
		}
	}

	groups := make(map[int][]int)
	for i := range nets {
		root := sets.find(i)
		groups[root] = append(groups[root], i)
	}

	var ordered [][]int
	for _, members := range groups {
		if len(members) > 1 {
			ordered = append(ordered, members)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i][0] < ordered[j][0] })

	out := make([][]string, len(ordered))
	for i, members := range ordered {
		for _, m := range members {
			out[i] = append(out[i], nets[m].Name())
		}
	}
	return out
}
