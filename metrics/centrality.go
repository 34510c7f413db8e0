package metrics

import (
	"errors"
	"math"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/mat"

	"github.com/DeuxMachin/toxgraph/graph"
)

var (
	errNoEdges     = errors.New("the graph has no edges")
	errNoEigen     = errors.New("eigen decomposition of the adjacency matrix failed")
	errDegenerated = errors.New("degenerate result")
)

// Density is 2E / N(N-1), and 0 for graphs with fewer than two nodes.
func Density(g *graph.Graph) float64 {
	n := float64(g.NumNodes())
	if n <= 1 {
		return 0
	}
	return 2 * float64(g.NumEdges()) / (n * (n - 1))
}

func AverageDegree(g *graph.Graph) float64 {
	if g.NumNodes() == 0 {
		return 0
	}
	return 2 * float64(g.NumEdges()) / float64(g.NumNodes())
}

// Components counts (weakly) connected components.
func Components(g *graph.Graph) int {
	if g.NumNodes() == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(g.Undirected()))
}

// Clustering returns the local clustering coefficient of every node: the
// fraction of pairs of its neighbors that are themselves adjacent. Nodes of
// degree less than two have coefficient 0.
func Clustering(g *graph.Graph) []float64 {
	cc := make([]float64, g.NumNodes())
	for i := range cc {
		nbrs := g.Neighbors(i)
		k := len(nbrs)
		if k < 2 {
			continue
		}
		triangles := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if g.HasEdge(nbrs[a], nbrs[b]) {
					triangles++
				}
			}
		}
		cc[i] = 2 * float64(triangles) / float64(k*(k-1))
	}
	return cc
}

func AverageClustering(g *graph.Graph) float64 {
	return mean(Clustering(g))
}

// DegreeCentrality is degree / (N-1). A lone node has centrality 1.
func DegreeCentrality(g *graph.Graph) []float64 {
	n := g.NumNodes()
	dc := make([]float64, n)
	if n == 1 {
		dc[0] = 1
		return dc
	}
	for i := range dc {
		dc[i] = float64(g.Degree(i)) / float64(n-1)
	}
	return dc
}

// Betweenness is the normalized shortest path betweenness of every node,
// counting hops and ignoring edge weights. Graphs with fewer than three nodes
// give all zeros.
func Betweenness(g *graph.Graph) []float64 {
	n := g.NumNodes()
	bc := make([]float64, n)
	if n <= 2 {
		return bc
	}

	// gonum sums over ordered source/target pairs, so each undirected path is
	// counted twice. That matches the normalization below.
	scale := 1 / float64((n-1)*(n-2))
	for id, v := range network.Betweenness(g.Undirected()) {
		bc[id] = v * scale
	}
	return bc
}

// Closeness is (r-1)/S scaled by (r-1)/(N-1), where r is the number of nodes
// reachable from a node (itself included) and S the sum of hop distances to
// them. Nodes that reach nothing have closeness 0.
func Closeness(g *graph.Graph) []float64 {
	n := g.NumNodes()
	cc := make([]float64, n)
	if n <= 1 {
		return cc
	}
	ug := g.Undirected()
	for i := range cc {
		reach, total := 0, 0
		var bf traverse.BreadthFirst
		bf.Walk(ug, simple.Node(int64(i)), func(_ gograph.Node, d int) bool {
			reach++
			total += d
			return false
		})
		if total == 0 {
			continue
		}
		r := float64(reach - 1)
		cc[i] = (r / float64(total)) * (r / float64(n-1))
	}
	return cc
}

// Eigenvector returns the leading eigenvector of the (unweighted) adjacency
// matrix, scaled to unit length with a non-negative sum. Graphs without
// edges have no meaningful eigenvector centrality and produce an error.
func Eigenvector(g *graph.Graph) ([]float64, error) {
	n := g.NumNodes()
	if g.NumEdges() == 0 {
		return nil, errNoEdges
	}
	adj := mat.NewSymDense(n, nil)
	for _, e := range g.Edges() {
		adj.SetSym(e.U, e.V, 1)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(adj, true); !ok {
		return nil, errNoEigen
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come in ascending order.
	lead := n - 1
	ev := make([]float64, n)
	sum, norm := 0.0, 0.0
	for i := range ev {
		ev[i] = vecs.At(i, lead)
		sum += ev[i]
		norm += ev[i] * ev[i]
	}
	norm = math.Sqrt(norm)
	if sum < 0 {
		norm = -norm
	}
	if norm == 0 || math.IsNaN(norm) {
		return nil, errDegenerated
	}
	for i := range ev {
		ev[i] /= norm
	}
	return ev, nil
}
