// Package segment groups the atoms of an atom graph into one segment per
// residue and describes the connectivity inside each segment.
package segment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/stat"

	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/metrics"
)

var ErrUnsupportedGranularity = errors.New(
	"segmentation requires an atom graph")

// Segment is the subgraph induced by the atoms of one residue.
//
// The ID is "RES_" followed by the residue number zero padded to three
// digits and the insertion code, if any: RES_027, RES_027A. When the graph
// has more than one chain the chain is prepended (A_RES_027) so IDs stay
// unique. Lexical and numeric order of IDs agree only for residue numbers
// below 1000.
type Segment struct {
	ID            string   `json:"id"`
	Chain         string   `json:"chain"`
	ResidueName   string   `json:"residue_name"`
	ResidueNumber int      `json:"residue_number"`
	InsertionCode string   `json:"insertion_code,omitempty"`
	Atoms         []string `json:"atoms"`
	NumAtoms      int      `json:"num_atoms"`
	InternalEdges int      `json:"internal_edges"`

	AvgDegree float64 `json:"avg_degree"`
	MinDegree int     `json:"min_degree"`
	MaxDegree int     `json:"max_degree"`
	Density   float64 `json:"density"`

	// Means of the subgraph-local measures. They are zero for single atom
	// segments and for any measure that failed.
	AvgDegreeCentrality float64 `json:"avg_degree_centrality"`
	AvgBetweenness      float64 `json:"avg_betweenness"`
	AvgCloseness        float64 `json:"avg_closeness"`
	AvgClustering       float64 `json:"avg_clustering"`
}

// Segmenter splits atom graphs into segments. The zero value is ready to use
// and discards its log output.
type Segmenter struct {
	Logger logr.Logger
}

// ByResidue is Segmenter{}.ByResidue.
func ByResidue(g *graph.Graph) ([]Segment, error) {
	return Segmenter{}.ByResidue(g)
}

type key struct {
	chain  string
	number int
	icode  string
}

// ByResidue returns one segment per residue in g, sorted by chain, residue
// number and insertion code. Residue graphs are rejected with
// ErrUnsupportedGranularity.
func (s Segmenter) ByResidue(g *graph.Graph) ([]Segment, error) {
	if g.Granularity != graph.AtomLevel {
		return nil, fmt.Errorf("%w, not a %s graph",
			ErrUnsupportedGranularity, g.Granularity)
	}

	groups := make(map[key][]int)
	keys := make([]key, 0, len(g.Residues()))
	chains := make(map[string]bool)
	for i, n := range g.Nodes() {
		r := n.Residue
		k := key{r.Chain, r.Number, r.InsertionCode}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
		chains[r.Chain] = true
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].chain != keys[j].chain {
			return keys[i].chain < keys[j].chain
		}
		if keys[i].number != keys[j].number {
			return keys[i].number < keys[j].number
		}
		return keys[i].icode < keys[j].icode
	})

	segs := make([]Segment, len(keys))
	for i, k := range keys {
		segs[i] = s.segment(g, k, groups[k], len(chains) > 1)
	}
	s.Logger.V(1).Info("segmented atom graph",
		"atoms", g.NumNodes(), "segments", len(segs))
	return segs, nil
}

func segmentID(k key, qualify bool) string {
	id := fmt.Sprintf("RES_%03d%s", k.number, k.icode)
	if qualify {
		return k.chain + "_" + id
	}
	return id
}

func (s Segmenter) segment(g *graph.Graph, k key, idx []int, qualify bool) Segment {
	sub := g.Subgraph(idx)
	seg := Segment{
		ID:            segmentID(k, qualify),
		Chain:         k.chain,
		ResidueName:   g.Node(idx[0]).Residue.Name,
		ResidueNumber: k.number,
		InsertionCode: k.icode,
		Atoms:         make([]string, 0, len(idx)),
		NumAtoms:      sub.NumNodes(),
		InternalEdges: sub.NumEdges(),
	}
	for _, n := range sub.Nodes() {
		name := n.ID
		if n.Atom != nil {
			name = n.Atom.Name
		}
		seg.Atoms = append(seg.Atoms, name)
	}
	sort.Strings(seg.Atoms)

	seg.MinDegree = sub.Degree(0)
	total := 0
	for i := 0; i < sub.NumNodes(); i++ {
		d := sub.Degree(i)
		total += d
		if d < seg.MinDegree {
			seg.MinDegree = d
		}
		if d > seg.MaxDegree {
			seg.MaxDegree = d
		}
	}
	seg.AvgDegree = float64(total) / float64(sub.NumNodes())

	if seg.NumAtoms <= 1 {
		return seg
	}
	seg.Density = metrics.Density(sub)

	measures := []struct {
		name string
		dst  *float64
		fn   func(*graph.Graph) []float64
	}{
		{metrics.MeasureDegree, &seg.AvgDegreeCentrality, metrics.DegreeCentrality},
		{metrics.MeasureBetweenness, &seg.AvgBetweenness, metrics.Betweenness},
		{metrics.MeasureCloseness, &seg.AvgCloseness, metrics.Closeness},
		{metrics.MeasureClustering, &seg.AvgClustering, metrics.Clustering},
	}
	for _, m := range measures {
		err := metrics.Try(func() error {
			*m.dst = stat.Mean(m.fn(sub), nil)
			return nil
		})
		if err != nil {
			*m.dst = 0
			s.Logger.Error(err, "segment measure fell back to zero",
				"segment", seg.ID, "metric", m.name)
		}
	}
	return seg
}
