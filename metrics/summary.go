package metrics

import (
	"github.com/DeuxMachin/toxgraph/graph"
)

// Summary describes the physicochemical makeup of the residues in a graph.
type Summary struct {
	TotalCharge          float64 `json:"total_charge"`
	ChargeStdDev         float64 `json:"charge_std_dev"`
	AvgHydrophobicity    float64 `json:"avg_hydrophobicity"`
	HydrophobicityStdDev float64 `json:"hydrophobicity_std_dev"`

	// The surface fields are zero when no residue is surface exposed.
	SurfaceResidues       int     `json:"surface_residues"`
	SurfaceCharge         float64 `json:"surface_charge"`
	SurfaceHydrophobicity float64 `json:"surface_hydrophobicity"`
	SurfaceRatio          float64 `json:"surface_to_total_ratio"`

	PharmacophoreCount int            `json:"pharmacophore_count"`
	DisulfideCount     int            `json:"disulfide_count"`
	LongRangeEdges     int            `json:"long_range_edges"`
	EdgeTypes          map[string]int `json:"edge_types"`
}

func Summarize(g *graph.Graph) Summary {
	residues := g.Residues()
	charges := make([]float64, len(residues))
	hydro := make([]float64, len(residues))
	surfCharge, surfHydro := 0.0, make([]float64, 0, len(residues))
	pharm := 0
	for i, r := range residues {
		charges[i] = r.Charge
		hydro[i] = r.Hydrophobicity
		if r.Surface {
			surfCharge += r.Charge
			surfHydro = append(surfHydro, r.Hydrophobicity)
		}
		if len(r.Pharmacophore) > 0 {
			pharm++
		}
	}

	s := Summary{
		ChargeStdDev:          popStdDev(charges),
		AvgHydrophobicity:     mean(hydro),
		HydrophobicityStdDev:  popStdDev(hydro),
		SurfaceResidues:       len(surfHydro),
		SurfaceCharge:         surfCharge,
		SurfaceHydrophobicity: mean(surfHydro),
		PharmacophoreCount:    pharm,
		DisulfideCount:        len(g.DisulfideBonds()),
		LongRangeEdges:        g.LongRangeCount(),
		EdgeTypes:             make(map[string]int, 3),
	}
	for _, q := range charges {
		s.TotalCharge += q
	}
	if len(residues) > 0 {
		s.SurfaceRatio = float64(len(surfHydro)) / float64(len(residues))
	}
	for typ, n := range g.EdgeCounts() {
		s.EdgeTypes[typ.String()] = n
	}
	return s
}
