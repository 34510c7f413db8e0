package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/DeuxMachin/toxgraph/graph"
)

// TopTolerance is how close to the maximum a value must be for its node to
// count as a top node.
const TopTolerance = 1e-4

// TopN is the number of nodes kept in each ranking.
const TopN = 5

type Ranked struct {
	Node  string  `json:"node"`
	Value float64 `json:"value"`

	// Filled in from Node when it is a well formed node identifier.
	graph.NodeRef
}

type Stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`

	// Top holds every node whose value is within TopTolerance of Max, in
	// node order.
	Top []Ranked `json:"top"`

	// Ranking holds the TopN highest values in descending order. Ties keep
	// node order.
	Ranking []Ranked `json:"ranking"`
}

func rank(g *graph.Graph, i int, v float64) Ranked {
	id := g.Node(i).ID
	r := Ranked{Node: id, Value: v}
	if ref, ok := graph.ParseNodeID(id); ok {
		r.NodeRef = ref
	}
	return r
}

// summarize computes statistics over per-node values. A nil or empty slice
// (a measure that failed) gives zero statistics.
func summarize(g *graph.Graph, values []float64) Stats {
	if len(values) == 0 {
		return Stats{Top: []Ranked{}, Ranking: []Ranked{}}
	}
	s := Stats{
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: mean(values),
	}

	s.Top = make([]Ranked, 0, 1)
	for i, v := range values {
		if math.Abs(v-s.Max) <= TopTolerance {
			s.Top = append(s.Top, rank(g, i, v))
		}
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})
	if len(order) > TopN {
		order = order[:TopN]
	}
	s.Ranking = make([]Ranked, len(order))
	for i, idx := range order {
		s.Ranking[i] = rank(g, idx, values[idx])
	}
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStdDev is the population standard deviation, 0 for empty input.
func popStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(xs, nil)
	return std
}

// byID turns per-node values into a map keyed by node identifier.
func byID(g *graph.Graph, values []float64) map[string]float64 {
	m := make(map[string]float64, len(values))
	for i, v := range values {
		m[g.Node(i).ID] = v
	}
	return m
}
