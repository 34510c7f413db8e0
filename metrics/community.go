package metrics

import (
	"math"
	"sort"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/DeuxMachin/toxgraph/graph"
)

// Communities partitions the nodes of g with Clauset-Newman-Moore greedy
// modularity maximization: starting from singletons, the pair of adjacent
// communities whose merge increases modularity the most is merged, until no
// merge increases it. Edges are unweighted here. Ties go to the pair with the
// lowest community indices, which makes the result deterministic.
//
// Communities are returned largest first. A graph without edges has no
// modularity to maximize and gives an error.
func Communities(g *graph.Graph) ([][]int, error) {
	n := g.NumNodes()
	if g.NumEdges() == 0 {
		return nil, errNoEdges
	}
	m := float64(g.NumEdges())

	members := make([][]int, n)
	k := make([]float64, n)
	links := make([]map[int]float64, n)
	alive := make([]bool, n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
		k[i] = float64(g.Degree(i))
		links[i] = make(map[int]float64, g.Degree(i))
		for _, j := range g.Neighbors(i) {
			links[i][j] = 1
		}
		alive[i] = true
	}

	for {
		bi, bj, best := -1, -1, 0.0
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j, l := range links[i] {
				if j <= i {
					continue
				}
				dq := l/m - k[i]*k[j]/(2*m*m)
				if dq > best || (bi >= 0 && dq == best && (i < bi || (i == bi && j < bj))) {
					bi, bj, best = i, j, dq
				}
			}
		}
		if bi < 0 || !(best > 0) {
			break
		}

		// Fold bj into bi.
		members[bi] = append(members[bi], members[bj]...)
		k[bi] += k[bj]
		for c, l := range links[bj] {
			delete(links[c], bj)
			if c == bi {
				continue
			}
			links[bi][c] += l
			links[c][bi] += l
		}
		links[bj] = nil
		alive[bj] = false
	}

	comms := make([][]int, 0, n)
	for i := 0; i < n; i++ {
		if alive[i] {
			sort.Ints(members[i])
			comms = append(comms, members[i])
		}
	}
	sort.SliceStable(comms, func(a, b int) bool {
		return len(comms[a]) > len(comms[b])
	})
	return comms, nil
}

// Modularity returns the Newman modularity of a partition of g, with edges
// weighted by their Weight.
func Modularity(g *graph.Graph, comms [][]int) (float64, error) {
	if g.NumEdges() == 0 {
		return 0, errNoEdges
	}
	nodes := make([][]gograph.Node, len(comms))
	for i, c := range comms {
		nodes[i] = make([]gograph.Node, len(c))
		for j, id := range c {
			nodes[i][j] = simple.Node(int64(id))
		}
	}
	q := community.Q(g.Weighted(), nodes, 1)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, errDegenerated
	}
	return q, nil
}
