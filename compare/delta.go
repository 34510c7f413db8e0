package compare

import (
	"sort"

	"github.com/DeuxMachin/toxgraph/metrics"
	"github.com/DeuxMachin/toxgraph/segment"
)

// Delta is the change of one scalar measure from reference to variant.
type Delta struct {
	Name       string  `json:"name"`
	Reference  float64 `json:"reference"`
	Variant    float64 `json:"variant"`
	Difference float64 `json:"difference"`

	// Relative is Difference over the reference value, or zero when the
	// reference value is zero.
	Relative float64 `json:"relative"`
}

func newDelta(name string, ref, variant float64) Delta {
	d := Delta{
		Name:       name,
		Reference:  ref,
		Variant:    variant,
		Difference: variant - ref,
	}
	if ref != 0 {
		d.Relative = d.Difference / ref
	}
	return d
}

type kv struct {
	name  string
	value float64
}

// scalars flattens the comparable values of m in a fixed order.
func scalars(m metrics.GraphMetrics) []kv {
	s := m.Summary
	out := []kv{
		{"num_nodes", float64(m.NumNodes)},
		{"num_edges", float64(m.NumEdges)},
		{"density", m.Density},
		{"avg_degree", m.AvgDegree},
		{"avg_clustering", m.AvgClustering},
		{"num_components", float64(m.NumComponents)},
		{"community_count", float64(m.CommunityCount)},
		{"modularity", m.Modularity},
	}
	for _, name := range []string{
		metrics.MeasureDegree, metrics.MeasureBetweenness,
		metrics.MeasureCloseness, metrics.MeasureEigenvector,
		metrics.MeasureClustering,
	} {
		st := m.Stats[name]
		out = append(out,
			kv{name + "_mean", st.Mean},
			kv{name + "_max", st.Max})
	}
	return append(out,
		kv{"total_charge", s.TotalCharge},
		kv{"avg_hydrophobicity", s.AvgHydrophobicity},
		kv{"surface_residues", float64(s.SurfaceResidues)},
		kv{"surface_charge", s.SurfaceCharge},
		kv{"surface_hydrophobicity", s.SurfaceHydrophobicity},
		kv{"disulfide_count", float64(s.DisulfideCount)},
		kv{"long_range_edges", float64(s.LongRangeEdges)},
	)
}

// MetricDeltas compares two sets of graph metrics measure by measure.
func MetricDeltas(reference, variant metrics.GraphMetrics) []Delta {
	ref, vs := scalars(reference), scalars(variant)
	deltas := make([]Delta, len(ref))
	for i := range ref {
		deltas[i] = newDelta(ref[i].name, ref[i].value, vs[i].value)
	}
	return deltas
}

// SegmentDelta compares the segments of one residue position. When the
// position is missing from one side, that side's values are zero.
type SegmentDelta struct {
	Chain         string `json:"chain"`
	ResidueNumber int    `json:"residue_number"`
	InsertionCode string `json:"insertion_code,omitempty"`
	ReferenceName string `json:"reference_residue,omitempty"`
	VariantName   string `json:"variant_residue,omitempty"`

	// Mutated is set when both sides have the position with different
	// residues.
	Mutated bool `json:"mutated"`

	Atoms         int     `json:"atoms_delta"`
	InternalEdges int     `json:"internal_edges_delta"`
	AvgDegree     float64 `json:"avg_degree_delta"`
	Density       float64 `json:"density_delta"`
}

type position struct {
	chain  string
	number int
	icode  string
}

// SegmentDeltas pairs segments by chain, residue number and insertion code
// and returns one delta per position found on either side, in chain and
// residue order.
func SegmentDeltas(reference, variant []segment.Segment) []SegmentDelta {
	byPos := make(map[position]*SegmentDelta)
	order := make([]position, 0, len(reference))
	get := func(s segment.Segment) *SegmentDelta {
		p := position{s.Chain, s.ResidueNumber, s.InsertionCode}
		d, ok := byPos[p]
		if !ok {
			d = &SegmentDelta{
				Chain:         s.Chain,
				ResidueNumber: s.ResidueNumber,
				InsertionCode: s.InsertionCode,
			}
			byPos[p] = d
			order = append(order, p)
		}
		return d
	}
	for _, s := range reference {
		d := get(s)
		d.ReferenceName = s.ResidueName
		d.Atoms -= s.NumAtoms
		d.InternalEdges -= s.InternalEdges
		d.AvgDegree -= s.AvgDegree
		d.Density -= s.Density
	}
	for _, s := range variant {
		d := get(s)
		d.VariantName = s.ResidueName
		d.Atoms += s.NumAtoms
		d.InternalEdges += s.InternalEdges
		d.AvgDegree += s.AvgDegree
		d.Density += s.Density
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].chain != order[j].chain {
			return order[i].chain < order[j].chain
		}
		if order[i].number != order[j].number {
			return order[i].number < order[j].number
		}
		return order[i].icode < order[j].icode
	})
	deltas := make([]SegmentDelta, len(order))
	for i, p := range order {
		d := byPos[p]
		d.Mutated = d.ReferenceName != "" && d.VariantName != "" &&
			d.ReferenceName != d.VariantName
		deltas[i] = *d
	}
	return deltas
}
