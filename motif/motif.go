// Package motif flags structural motifs typical of ion channel toxins from an
// already built structure graph.
//
// The rules are screening heuristics. In particular, BetaHairpin only counts
// beta-strand residues and does not check for antiparallel pairing.
package motif

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/pdb"
)

const (
	DefaultMinBetaResidues      = 4
	DefaultMinDisulfideBonds    = 3
	DefaultMinDisulfideResidues = 6
	DefaultMinPatchResidues     = 3
	DefaultPatchDistance        = 10.0
	DefaultHydrophobicCutoff    = 1.0
)

type Options struct {
	MinBetaResidues      int     `yaml:"min_beta_residues" json:"min_beta_residues"`
	MinDisulfideBonds    int     `yaml:"min_disulfide_bonds" json:"min_disulfide_bonds"`
	MinDisulfideResidues int     `yaml:"min_disulfide_residues" json:"min_disulfide_residues"`
	MinPatchResidues     int     `yaml:"min_patch_residues" json:"min_patch_residues"`
	PatchDistance        float64 `yaml:"patch_distance" json:"patch_distance"`
	HydrophobicCutoff    float64 `yaml:"hydrophobic_cutoff" json:"hydrophobic_cutoff"`
}

func DefaultOptions() Options {
	return Options{
		MinBetaResidues:      DefaultMinBetaResidues,
		MinDisulfideBonds:    DefaultMinDisulfideBonds,
		MinDisulfideResidues: DefaultMinDisulfideResidues,
		MinPatchResidues:     DefaultMinPatchResidues,
		PatchDistance:        DefaultPatchDistance,
		HydrophobicCutoff:    DefaultHydrophobicCutoff,
	}
}

type Flags struct {
	CystineKnot      bool `json:"cystine_knot"`
	BetaHairpin      bool `json:"beta_hairpin"`
	PositivePatch    bool `json:"positive_patch"`
	HydrophobicPatch bool `json:"hydrophobic_patch"`

	BetaResidues       int `json:"beta_strand_count"`
	DisulfideBonds     int `json:"disulfide_count"`
	DisulfideResidues  int `json:"disulfide_residues"`
	PositiveSurface    int `json:"positive_surface_residues"`
	HydrophobicSurface int `json:"hydrophobic_surface_residues"`
}

// Detect evaluates every motif rule over the residues of g. Residues (not
// nodes) are counted, so atom graphs give the same flags as residue graphs
// of the same structure. Surface exposure comes from the graph, and so uses
// the surface threshold it was built with.
func Detect(g *graph.Graph, opts Options) Flags {
	var f Flags
	positive := make([]r3.Vec, 0, 8)
	hydrophobic := make([]r3.Vec, 0, 8)
	for _, r := range g.Residues() {
		if r.SS == pdb.SSBeta {
			f.BetaResidues++
		}
		if r.Disulfide {
			f.DisulfideResidues++
		}
		if !r.Surface {
			continue
		}
		if r.Charge > 0 {
			positive = append(positive, r.Pos)
		}
		if r.Hydrophobicity > opts.HydrophobicCutoff {
			hydrophobic = append(hydrophobic, r.Pos)
		}
	}
	f.DisulfideBonds = len(g.DisulfideBonds())
	f.PositiveSurface = len(positive)
	f.HydrophobicSurface = len(hydrophobic)

	f.BetaHairpin = f.BetaResidues >= opts.MinBetaResidues
	f.CystineKnot = f.DisulfideBonds >= opts.MinDisulfideBonds &&
		f.DisulfideResidues >= opts.MinDisulfideResidues
	f.PositivePatch = isPatch(positive, opts)
	f.HydrophobicPatch = isPatch(hydrophobic, opts)
	return f
}

// isPatch requires enough candidates and at least one pair of them closer
// than the patch distance.
func isPatch(pts []r3.Vec, opts Options) bool {
	if len(pts) < opts.MinPatchResidues || len(pts) < 2 {
		return false
	}
	return minPairDistance(pts) < opts.PatchDistance
}

func minPairDistance(pts []r3.Vec) float64 {
	min := math.Inf(1)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if d := r3.Norm(r3.Sub(pts[i], pts[j])); d < min {
				min = d
			}
		}
	}
	return min
}
