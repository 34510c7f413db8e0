package compare

import (
	"github.com/go-logr/logr"

	"github.com/DeuxMachin/toxgraph/metrics"
	"github.com/DeuxMachin/toxgraph/pdb"
	"github.com/DeuxMachin/toxgraph/segment"
)

// Profile is what is known about one toxin: its structure and whatever was
// derived from it. Segments and IC50 are optional.
type Profile struct {
	Entry    *pdb.Entry
	Metrics  metrics.GraphMetrics
	Segments []segment.Segment
	IC50     *IC50
}

type Result struct {
	Reference string    `json:"reference"`
	Variant   string    `json:"variant"`
	Alignment Alignment `json:"alignment"`

	// RMSD is only meaningful when HasRMSD is set.
	RMSD    float64 `json:"rmsd"`
	HasRMSD bool    `json:"has_rmsd"`

	Metrics  []Delta        `json:"metrics"`
	Segments []SegmentDelta `json:"segments,omitempty"`

	// Potency, set only when both sides carry an IC50.
	ReferenceIC50 float64 `json:"reference_ic50_nm,omitempty"`
	VariantIC50   float64 `json:"variant_ic50_nm,omitempty"`
	FoldChange    float64 `json:"ic50_fold_change,omitempty"`
}

// Comparer compares variants to references. The zero value is ready to use
// and discards its log output.
type Comparer struct {
	Logger logr.Logger
}

// Compare is Comparer{}.Compare.
func Compare(reference, variant Profile) Result {
	return Comparer{}.Compare(reference, variant)
}

// Compare never fails. Parts that cannot be computed, such as the RMSD of
// structures sharing fewer than MinRMSDPairs aligned residues, are logged
// and left zero.
func (c Comparer) Compare(reference, variant Profile) Result {
	res := Result{
		Reference: reference.Entry.IdCode,
		Variant:   variant.Entry.IdCode,
		Metrics:   MetricDeltas(reference.Metrics, variant.Metrics),
	}

	rmsd, a, err := RMSD(reference.Entry, variant.Entry)
	res.Alignment = a
	if err != nil {
		c.Logger.Error(err, "skipping RMSD",
			"reference", res.Reference, "variant", res.Variant)
	} else {
		res.RMSD, res.HasRMSD = rmsd, true
	}

	if reference.Segments != nil || variant.Segments != nil {
		res.Segments = SegmentDeltas(reference.Segments, variant.Segments)
	}
	if reference.IC50 != nil && variant.IC50 != nil {
		res.ReferenceIC50 = reference.IC50.NanoMolar()
		res.VariantIC50 = variant.IC50.NanoMolar()
		res.FoldChange = FoldChange(*reference.IC50, *variant.IC50)
	}
	c.Logger.V(1).Info("compared toxins",
		"reference", res.Reference, "variant", res.Variant,
		"identity", a.Identity, "rmsd", res.RMSD)
	return res
}
