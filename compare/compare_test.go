package compare

import (
	"strings"
	"testing"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuxMachin/toxgraph/amino"
	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/metrics"
	"github.com/DeuxMachin/toxgraph/pdb"
	"github.com/DeuxMachin/toxgraph/segment"
)

func sequence(name, residues string) seq.Sequence {
	return seq.Sequence{Name: name, Residues: []seq.Residue(residues)}
}

// zigzag builds one alpha-carbon per residue of the one letter sequence.
func zigzag(name, residues string) *pdb.Entry {
	e := pdb.NewEntry(name)
	for i := range residues {
		y := 0.0
		if i%2 == 1 {
			y = 1.5
		}
		three := amino.ThreeLetter(seq.Residue(residues[i]))
		e.AddAtom('A', three, i+1, pdb.Atom{
			Name:   "CA",
			Coords: structure.Coords{X: float64(i) * 3.5, Y: y},
		})
	}
	return e
}

func TestAlignIdentical(t *testing.T) {
	a := Align(sequence("wt", "ECLEIFKACN"), sequence("v", "ECLEIFKACN"))
	assert.Equal(t, 10, a.Matches)
	assert.Equal(t, 10, a.Aligned)
	assert.Equal(t, 1.0, a.Identity)
	assert.Equal(t, "wt", a.Reference.Name)
	assert.Equal(t, "v", a.Variant.Name)
}

func TestAlignSubstitution(t *testing.T) {
	a := Align(sequence("wt", "ACDEFGHIK"), sequence("v", "ACDEWGHIK"))
	require.Len(t, a.Reference.Residues, 9)
	assert.Equal(t, 8, a.Matches)
	assert.Equal(t, 9, a.Aligned)
	assert.InDelta(t, 8.0/9, a.Identity, 1e-12)
}

func TestAlignEmpty(t *testing.T) {
	a := Align(sequence("wt", ""), sequence("v", "ACD"))
	assert.Zero(t, a.Identity)
	assert.Empty(t, a.Reference.Residues)
}

func TestAlignToReference(t *testing.T) {
	v := zigzag("v", "ECLEIFRACN")
	a, err := AlignToReference(strings.NewReader(">HwTx-IV\necleifkacn\n"), v)
	require.NoError(t, err)
	assert.Equal(t, "HwTx-IV", a.Reference.Name)
	assert.Equal(t, 10, a.Aligned)
	assert.Equal(t, 9, a.Matches)

	_, err = AlignToReference(strings.NewReader(""), v)
	assert.ErrorIs(t, err, ErrNoReference)
	_, err = AlignToReference(strings.NewReader(">empty\n"), v)
	assert.ErrorIs(t, err, ErrNoReference)
	_, err = AlignToReference(strings.NewReader("ECLE\n"), v)
	assert.Error(t, err)
}

func TestWriteAlignment(t *testing.T) {
	var buf strings.Builder
	a := Align(sequence("wt", "ACDE"), sequence("v", "ACDE"))
	require.NoError(t, WriteAlignment(&buf, a))
	assert.Equal(t, ">wt\nACDE\n>v\nACDE\n", buf.String())
}

func TestRMSDSelf(t *testing.T) {
	e := zigzag("wt", "ECLEIFKACN")
	rmsd, a, err := RMSD(e, e)
	require.NoError(t, err)
	assert.InDelta(t, 0, rmsd, 1e-3)
	assert.Equal(t, 1.0, a.Identity)
}

func TestRMSDTooFewPairs(t *testing.T) {
	_, _, err := RMSD(zigzag("wt", "EC"), zigzag("v", "EC"))
	assert.ErrorIs(t, err, ErrTooFewPairs)
}

func TestNormalizeIC50(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		nM    float64
	}{
		{5, "nM", 5},
		{5, "NM", 5},
		{2, "μM", 2000},
		{2, "µM", 2000},
		{2, " uM ", 2000},
		{3, "mM", 3e6},
		{7, "pM", 7},
		{7, "", 7},
	}
	for _, test := range tests {
		assert.Equal(t, test.nM, NormalizeIC50(test.value, test.unit),
			"%g %q", test.value, test.unit)
	}
	assert.Equal(t, 4.0, FoldChange(IC50{0.5, "uM"}, IC50{2000, "nM"}))
	assert.Zero(t, FoldChange(IC50{0, "nM"}, IC50{1, "nM"}))
}

func TestSegmentDeltas(t *testing.T) {
	ref := []segment.Segment{
		{Chain: "A", ResidueNumber: 2, ResidueName: "GLY", NumAtoms: 4, InternalEdges: 3},
		{Chain: "A", ResidueNumber: 1, ResidueName: "ALA", NumAtoms: 5, InternalEdges: 4},
	}
	variant := []segment.Segment{
		{Chain: "A", ResidueNumber: 1, ResidueName: "ALA", NumAtoms: 5, InternalEdges: 4},
		{Chain: "A", ResidueNumber: 2, ResidueName: "SER", NumAtoms: 6, InternalEdges: 5},
		{Chain: "A", ResidueNumber: 3, ResidueName: "LYS", NumAtoms: 9, InternalEdges: 8},
	}
	ds := SegmentDeltas(ref, variant)
	require.Len(t, ds, 3)

	assert.Equal(t, 1, ds[0].ResidueNumber)
	assert.False(t, ds[0].Mutated)
	assert.Zero(t, ds[0].Atoms)

	assert.Equal(t, 2, ds[1].ResidueNumber)
	assert.True(t, ds[1].Mutated)
	assert.Equal(t, 2, ds[1].Atoms)
	assert.Equal(t, 2, ds[1].InternalEdges)

	assert.Equal(t, 3, ds[2].ResidueNumber)
	assert.False(t, ds[2].Mutated)
	assert.Empty(t, ds[2].ReferenceName)
	assert.Equal(t, 9, ds[2].Atoms)
}

func measure(t *testing.T, e *pdb.Entry) metrics.GraphMetrics {
	g, err := graph.Build(e, graph.DefaultOptions())
	require.NoError(t, err)
	return metrics.Compute(g)
}

func TestMetricDeltas(t *testing.T) {
	ds := MetricDeltas(
		measure(t, zigzag("wt", "ACDEK")),
		measure(t, zigzag("v", "ACDEKR")))

	byName := make(map[string]Delta, len(ds))
	for _, d := range ds {
		byName[d.Name] = d
	}
	nodes := byName["num_nodes"]
	assert.Equal(t, 5.0, nodes.Reference)
	assert.Equal(t, 6.0, nodes.Variant)
	assert.Equal(t, 1.0, nodes.Difference)
	assert.InDelta(t, 0.2, nodes.Relative, 1e-12)

	charge := byName["total_charge"]
	assert.Equal(t, 1.0, charge.Difference)
	assert.Contains(t, byName, "eigenvector_mean")
	assert.Contains(t, byName, "clustering_max")
}

func TestCompare(t *testing.T) {
	wt := zigzag("wt", "ECLEIFKACN")
	v := zigzag("v", "ECLEIFRACN")
	res := Compare(
		Profile{Entry: wt, Metrics: measure(t, wt), IC50: &IC50{10, "nM"}},
		Profile{Entry: v, Metrics: measure(t, v), IC50: &IC50{0.1, "uM"}},
	)
	assert.Equal(t, "wt", res.Reference)
	assert.Equal(t, "v", res.Variant)
	assert.Equal(t, 9, res.Alignment.Matches)
	assert.True(t, res.HasRMSD)
	assert.InDelta(t, 0, res.RMSD, 1e-3)
	assert.Equal(t, 100.0, res.VariantIC50)
	assert.Equal(t, 10.0, res.FoldChange)
	assert.Nil(t, res.Segments)

	short := zigzag("short", "EC")
	res = Compare(
		Profile{Entry: wt, Metrics: measure(t, wt)},
		Profile{Entry: short, Metrics: measure(t, short)},
	)
	assert.False(t, res.HasRMSD)
	assert.Zero(t, res.FoldChange)
}
