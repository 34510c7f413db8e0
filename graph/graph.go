package graph

import (
	"sort"
	"sync"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

type pair struct {
	u, v int
}

func newPair(u, v int) pair {
	if u > v {
		u, v = v, u
	}
	return pair{u, v}
}

// Graph is an immutable, undirected structure graph. Nodes are addressed by
// their index in Nodes().
type Graph struct {
	Granularity Granularity
	Options     Options

	nodes    []Node
	residues []*Residue
	edges    []Edge
	index    map[pair]int
	adj      [][]int
	bonds    []Bond

	once sync.Once
	ug   *simple.UndirectedGraph
	wg   *simple.WeightedUndirectedGraph
}

func newGraph(opts Options, nodes []Node, residues []*Residue,
	edges map[pair]Edge, bonds []Bond) *Graph {

	g := &Graph{
		Granularity: opts.Granularity,
		Options:     opts,
		nodes:       nodes,
		residues:    residues,
		edges:       make([]Edge, 0, len(edges)),
		index:       make(map[pair]int, len(edges)),
		adj:         make([][]int, len(nodes)),
		bonds:       bonds,
	}
	for _, e := range edges {
		g.edges = append(g.edges, e)
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].U != g.edges[j].U {
			return g.edges[i].U < g.edges[j].U
		}
		return g.edges[i].V < g.edges[j].V
	})
	for i, e := range g.edges {
		g.index[pair{e.U, e.V}] = i
		g.adj[e.U] = append(g.adj[e.U], e.V)
		g.adj[e.V] = append(g.adj[e.V], e.U)
	}
	for i := range g.adj {
		sort.Ints(g.adj[i])
	}
	return g
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Nodes returns every node in insertion order. The slice must not be
// modified.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

func (g *Graph) Node(i int) Node {
	return g.nodes[i]
}

// Edges returns every edge, sorted by endpoints. The slice must not be
// modified.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Edge returns the edge between nodes u and v, if there is one.
func (g *Graph) Edge(u, v int) (Edge, bool) {
	i, ok := g.index[newPair(u, v)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.index[newPair(u, v)]
	return ok
}

// Neighbors returns the sorted indices of the nodes adjacent to i.
func (g *Graph) Neighbors(i int) []int {
	return g.adj[i]
}

func (g *Graph) Degree(i int) int {
	return len(g.adj[i])
}

// Residues returns the residues represented in the graph, in node order.
// For residue graphs there is exactly one per node.
func (g *Graph) Residues() []*Residue {
	return g.residues
}

// DisulfideBonds returns the disulfide bridges whose cysteines are both
// present in the graph.
func (g *Graph) DisulfideBonds() []Bond {
	return g.bonds
}

// EdgeCounts tallies edges by type.
func (g *Graph) EdgeCounts() map[EdgeType]int {
	counts := map[EdgeType]int{Distance: 0, Peptide: 0, Disulfide: 0}
	for _, e := range g.edges {
		counts[e.Type]++
	}
	return counts
}

// LongRangeCount is the number of edges flagged long-range.
func (g *Graph) LongRangeCount() int {
	n := 0
	for _, e := range g.edges {
		if e.LongRange {
			n++
		}
	}
	return n
}

// Undirected returns a gonum view of the graph's topology. Node IDs are node
// indices. The view is built once and shared, so callers must treat it as
// read only.
func (g *Graph) Undirected() gograph.Undirected {
	g.once.Do(g.buildViews)
	return g.ug
}

// Weighted is like Undirected, but edges carry their Weight.
func (g *Graph) Weighted() gograph.WeightedUndirected {
	g.once.Do(g.buildViews)
	return g.wg
}

func (g *Graph) buildViews() {
	ug := simple.NewUndirectedGraph()
	wg := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range g.nodes {
		ug.AddNode(simple.Node(int64(i)))
		wg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		u, v := simple.Node(int64(e.U)), simple.Node(int64(e.V))
		ug.SetEdge(simple.Edge{F: u, T: v})
		wg.SetWeightedEdge(simple.WeightedEdge{F: u, T: v, W: e.Weight})
	}
	g.ug, g.wg = ug, wg
}

// Subgraph returns the subgraph induced by the nodes at the given indices.
// Node i of the result is node idx[i] of g. Only edges with both endpoints
// in idx are kept, as are only the disulfide bonds whose residues both
// appear.
func (g *Graph) Subgraph(idx []int) *Graph {
	remap := make(map[int]int, len(idx))
	nodes := make([]Node, 0, len(idx))
	residues := make([]*Residue, 0, 4)
	seen := make(map[*Residue]bool, 4)
	for _, i := range idx {
		if _, ok := remap[i]; ok {
			continue
		}
		remap[i] = len(nodes)
		n := g.nodes[i]
		nodes = append(nodes, n)
		if !seen[n.Residue] {
			seen[n.Residue] = true
			residues = append(residues, n.Residue)
		}
	}

	edges := make(map[pair]Edge)
	for _, e := range g.edges {
		u, okU := remap[e.U]
		v, okV := remap[e.V]
		if !okU || !okV {
			continue
		}
		p := newPair(u, v)
		e.U, e.V = p.u, p.v
		edges[p] = e
	}

	bonds := make([]Bond, 0)
	for _, b := range g.bonds {
		if seen[b.A] && seen[b.B] {
			bonds = append(bonds, b)
		}
	}
	return newGraph(g.Options, nodes, residues, edges, bonds)
}
