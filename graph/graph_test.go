package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/TuftsBCB/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuxMachin/toxgraph/amino"
	"github.com/DeuxMachin/toxgraph/pdb"
)

func at(x, y, z float64) structure.Coords {
	return structure.Coords{X: x, Y: y, Z: z}
}

// line places n alanines on the x axis, spacing Å apart, numbered from 1.
func line(n int, spacing float64) *pdb.Entry {
	e := pdb.NewEntry("line")
	for i := 0; i < n; i++ {
		e.AddAtom('A', "ALA", i+1, pdb.Atom{
			Name: "CA", Element: "C", Coords: at(float64(i)*spacing, 0, 0),
		})
	}
	return e
}

// cystines builds two cysteines far apart in sequence whose SG atoms are
// sgDist apart.
func cystines(sgDist float64) *pdb.Entry {
	e := pdb.NewEntry("cys")
	e.AddAtom('A', "CYS", 3, pdb.Atom{Name: "CA", Element: "C", Coords: at(0, 0, 0)})
	e.AddAtom('A', "CYS", 3, pdb.Atom{Name: "SG", Element: "S", Coords: at(0, 1.8, 0)})
	e.AddAtom('A', "CYS", 20, pdb.Atom{Name: "CA", Element: "C", Coords: at(0, 3.6+sgDist, 0)})
	e.AddAtom('A', "CYS", 20, pdb.Atom{Name: "SG", Element: "S", Coords: at(0, 1.8+sgDist, 0)})
	return e
}

func residueOpts() Options {
	return DefaultOptions()
}

func atomOpts() Options {
	opts := DefaultOptions()
	opts.Granularity = AtomLevel
	return opts
}

func TestBuildLine(t *testing.T) {
	g, err := Build(line(10, 3.8), residueOpts())
	require.NoError(t, err)

	assert.Equal(t, 10, g.NumNodes())
	counts := g.EdgeCounts()
	assert.Equal(t, 9, counts[Peptide])
	assert.Equal(t, 8, counts[Distance], "only i,i+2 pairs are within 10 Å")
	assert.Equal(t, 0, counts[Disulfide])
	assert.Equal(t, 17, g.NumEdges())
	assert.Equal(t, 0, g.LongRangeCount())

	e, ok := g.Edge(1, 0)
	require.True(t, ok)
	assert.Equal(t, Peptide, e.Type)
	assert.Equal(t, PeptideWeight, e.Weight)
	assert.Equal(t, PeptideStrength, e.Strength)
	assert.Equal(t, 0, e.U)

	e, ok = g.Edge(0, 2)
	require.True(t, ok)
	assert.Equal(t, Distance, e.Type)
	assert.InDelta(t, 7.6, e.Weight, 1e-9)
	assert.InDelta(t, 1/7.6, e.Strength, 1e-9)
	assert.Equal(t, 2, e.SeqSeparation)

	assert.Equal(t, []int{0, 2, 3}, g.Neighbors(1))
	assert.Equal(t, 2, g.Degree(0))
	assert.Equal(t, "A:ALA:1", g.Node(0).ID)
}

func TestPeptideEdgesRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 5, 30} {
		g, err := Build(line(n, 3.8), residueOpts())
		require.NoError(t, err)
		assert.Equal(t, n-1, g.EdgeCounts()[Peptide], "n=%d", n)
	}
}

func TestDisulfide(t *testing.T) {
	t.Run("bonded", func(t *testing.T) {
		g, err := Build(cystines(2.0), residueOpts())
		require.NoError(t, err)
		assert.Equal(t, 1, g.EdgeCounts()[Disulfide])
		require.Len(t, g.DisulfideBonds(), 1)
		assert.InDelta(t, 2.0, g.DisulfideBonds()[0].Distance, 1e-9)
		for _, r := range g.Residues() {
			assert.True(t, r.Disulfide, r.ID)
		}
		e, ok := g.Edge(0, 1)
		require.True(t, ok)
		assert.Equal(t, DisulfideStrength, e.Strength)
		assert.True(t, e.LongRange)
		assert.Equal(t, 17, e.SeqSeparation)
	})
	t.Run("too far", func(t *testing.T) {
		g, err := Build(cystines(3.0), residueOpts())
		require.NoError(t, err)
		assert.Equal(t, 0, g.EdgeCounts()[Disulfide])
		assert.Empty(t, g.DisulfideBonds())
		assert.False(t, g.Residues()[0].Disulfide)
	})
	t.Run("atom graph", func(t *testing.T) {
		g, err := Build(cystines(2.0), atomOpts())
		require.NoError(t, err)
		require.Equal(t, 4, g.NumNodes())
		assert.Equal(t, 1, g.EdgeCounts()[Disulfide])
		e, ok := g.Edge(1, 3)
		require.True(t, ok)
		assert.Equal(t, Disulfide, e.Type)
		assert.Equal(t, "A:CYS:3:SG", g.Node(1).ID)
	})
	t.Run("beats peptide", func(t *testing.T) {
		e := pdb.NewEntry("adjacent")
		e.AddAtom('A', "CYS", 1, pdb.Atom{Name: "CA", Coords: at(0, 0, 0)})
		e.AddAtom('A', "CYS", 1, pdb.Atom{Name: "SG", Coords: at(1, 1, 0)})
		e.AddAtom('A', "CYS", 2, pdb.Atom{Name: "CA", Coords: at(3.8, 0, 0)})
		e.AddAtom('A', "CYS", 2, pdb.Atom{Name: "SG", Coords: at(2.8, 1, 0)})
		g, err := Build(e, residueOpts())
		require.NoError(t, err)
		require.Equal(t, 1, g.NumEdges())
		assert.Equal(t, Disulfide, g.Edges()[0].Type)
	})
}

func TestEmptyGraph(t *testing.T) {
	e := pdb.NewEntry("no-ca")
	e.AddAtom('A', "GLY", 1, pdb.Atom{Name: "N", Coords: at(0, 0, 0)})

	g, err := Build(e, residueOpts())
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
	assert.Equal(t, 0, g.NumEdges())
	assert.Equal(t, 0, g.Undirected().Nodes().Len())

	g, err = Build(nil, atomOpts())
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
}

func TestBuildErrors(t *testing.T) {
	t.Run("options", func(t *testing.T) {
		bad := []func(*Options){
			func(o *Options) { o.DistanceThreshold = 0 },
			func(o *Options) { o.DistanceThreshold = math.NaN() },
			func(o *Options) { o.LongRangeSeparation = -1 },
			func(o *Options) { o.DisulfideCutoff = -2 },
			func(o *Options) { o.SurfaceThreshold = -1 },
		}
		for _, f := range bad {
			opts := DefaultOptions()
			f(&opts)
			_, err := Build(line(3, 3.8), opts)
			assert.True(t, errors.Is(err, ErrInvalidOptions))
		}
	})
	t.Run("geometry", func(t *testing.T) {
		e := line(3, 3.8)
		e.AddAtom('A', "ALA", 4, pdb.Atom{Name: "CA", Coords: at(math.Inf(1), 0, 0)})
		_, err := Build(e, residueOpts())
		var cerr *ConstructionError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "A:ALA:4:CA", cerr.Node)
	})
}

func TestCoincidentNodes(t *testing.T) {
	t.Run("residues", func(t *testing.T) {
		g, err := Build(line(2, 0), residueOpts())
		require.NoError(t, err)
		require.Equal(t, 1, g.NumEdges())
		edge, ok := g.Edge(0, 1)
		require.True(t, ok)
		assert.Equal(t, Peptide, edge.Type)
	})
	t.Run("atoms", func(t *testing.T) {
		e := pdb.NewEntry("same")
		e.AddAtom('A', "ALA", 1, pdb.Atom{Name: "CA", Coords: at(0, 0, 0)})
		e.AddAtom('A', "ALA", 1, pdb.Atom{Name: "CB", Coords: at(0, 0, 0)})
		e.AddAtom('A', "ALA", 1, pdb.Atom{Name: "N", Coords: at(1.5, 0, 0)})

		g, err := Build(e, atomOpts())
		require.NoError(t, err)
		assert.Equal(t, 3, g.NumNodes())
		assert.False(t, g.HasEdge(0, 1), "no zero length edge")
		assert.True(t, g.HasEdge(0, 2))
		assert.True(t, g.HasEdge(1, 2))
		for _, edge := range g.Edges() {
			assert.False(t, math.IsInf(edge.Strength, 0))
		}
	})
}

func TestInsertionCodeIDs(t *testing.T) {
	e := pdb.NewEntry("ins")
	r := e.AddAtom('A', "ALA", 27, pdb.Atom{Name: "CA", Coords: at(0, 0, 0)})
	r.InsertionCode = 'A'
	e.AddAtom('A', "ALA", 27, pdb.Atom{Name: "CA", Coords: at(3.8, 0, 0)})

	g, err := Build(e, residueOpts())
	require.NoError(t, err)
	require.Equal(t, 2, g.NumNodes())
	assert.Equal(t, "A:ALA:27A", g.Node(0).ID)
	assert.Equal(t, "A:ALA:27", g.Node(1).ID)
	assert.Equal(t, "A", g.Node(0).Residue.InsertionCode)

	ref, ok := ParseNodeID("A:ALA:27A")
	require.True(t, ok)
	assert.Equal(t, NodeRef{Chain: "A", ResName: "ALA", ResNum: 27, InsertionCode: "A"}, ref)
}

func TestLongRange(t *testing.T) {
	e := line(3, 3.8)
	e.AddAtom('A', "LYS", 12, pdb.Atom{Name: "CA", Coords: at(0, 5, 0)})
	e.AddAtom('B', "LYS", 1, pdb.Atom{Name: "CA", Coords: at(0, -5, 0)})

	g, err := Build(e, residueOpts())
	require.NoError(t, err)
	edge, ok := g.Edge(0, 3)
	require.True(t, ok)
	assert.True(t, edge.LongRange)
	assert.Equal(t, 11, edge.SeqSeparation)

	edge, ok = g.Edge(0, 4)
	require.True(t, ok)
	assert.True(t, edge.LongRange)
	assert.Equal(t, -1, edge.SeqSeparation)

	edge, ok = g.Edge(0, 2)
	require.True(t, ok)
	assert.False(t, edge.LongRange)

	t.Run("only", func(t *testing.T) {
		opts := residueOpts()
		opts.LongRangeOnly = true
		g, err := Build(e, opts)
		require.NoError(t, err)
		assert.False(t, g.HasEdge(0, 2), "short range distance edge dropped")
		assert.True(t, g.HasEdge(0, 1), "peptide edges are always kept")
		assert.True(t, g.HasEdge(0, 3))
	})
}

func TestResidueAttributes(t *testing.T) {
	e := pdb.NewEntry("attrs")
	lys := e.AddAtom('A', "LYS", 1, pdb.Atom{Name: "CA", Coords: at(0, 0, 0)})
	lys.SASA, lys.HasSASA = 80, true
	lys.SS = pdb.SSBeta
	ile := e.AddAtom('A', "ILE", 2, pdb.Atom{Name: "CA", Coords: at(3.8, 0, 0)})
	ile.SASA, ile.HasSASA = 10, true

	g, err := Build(e, residueOpts())
	require.NoError(t, err)
	rs := g.Residues()
	require.Len(t, rs, 2)

	assert.Equal(t, "A", rs[0].Chain)
	assert.Equal(t, amino.Positive, rs[0].Class)
	assert.Equal(t, 1.0, rs[0].Charge)
	assert.Equal(t, -3.9, rs[0].Hydrophobicity)
	assert.True(t, rs[0].Surface)
	assert.Equal(t, pdb.SSBeta, rs[0].SS)
	assert.False(t, rs[1].Surface)
	assert.Equal(t, 1.0, g.Node(0).Charge())
}

func TestAtomicCharges(t *testing.T) {
	e := pdb.NewEntry("psf")
	e.AddAtom('A', "LYS", 1, pdb.Atom{Name: "CA", Coords: at(0, 0, 0), Charge: 0.2, HasCharge: true})
	e.AddAtom('A', "LYS", 1, pdb.Atom{Name: "NZ", Coords: at(1, 1, 0), Charge: 0.5, HasCharge: true})
	e.AddAtom('A', "GLY", 2, pdb.Atom{Name: "CA", Coords: at(3.8, 0, 0)})
	e.HasAtomicCharges = true

	g, err := Build(e, atomOpts())
	require.NoError(t, err)
	assert.InDelta(t, 0.7, g.Residues()[0].Charge, 1e-12)
	assert.Equal(t, 0.0, g.Residues()[1].Charge, "table value for glycine")
	assert.Equal(t, 0.5, g.Node(1).Charge())
	assert.Equal(t, "NZ", g.Node(1).Atom.Name)
}

func TestDeprotonate(t *testing.T) {
	e := pdb.NewEntry("h")
	e.AddAtom('A', "GLY", 1, pdb.Atom{Name: "CA", Coords: at(0, 0, 0)})
	e.AddAtom('A', "GLY", 1, pdb.Atom{Name: "HA2", Coords: at(1, 0, 0)})

	g, err := Build(e, atomOpts())
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumNodes())

	opts := atomOpts()
	opts.Deprotonate = true
	g, err = Build(e, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumNodes())
}

func TestPharmacophore(t *testing.T) {
	e := pdb.NewEntry("ph")
	names := []string{"LYS", "TRP", "ALA", "TYR", "LYS", "TRP"}
	for i, name := range names {
		e.AddAtom('A', name, i+1, pdb.Atom{Name: "CA", Coords: at(float64(i)*3.8, 0, 0)})
	}

	opts := residueOpts()
	opts.Pharmacophore = "KW–A–Y"
	g, err := Build(e, opts)
	require.NoError(t, err)
	tags := make([]string, 0, len(names))
	for _, r := range g.Residues() {
		tags = append(tags, r.Pharmacophore)
	}
	assert.Equal(t, []string{"part 1", "part 1", "part 2", "part 3", "part 1", "part 1"}, tags)

	opts.Pharmacophore = "KW-A"
	g, err = Build(e, opts)
	require.NoError(t, err)
	for _, r := range g.Residues() {
		assert.Empty(t, r.Pharmacophore)
	}
}

func TestParseNodeID(t *testing.T) {
	ref, ok := ParseNodeID("A:LYS:14")
	require.True(t, ok)
	assert.Equal(t, NodeRef{Chain: "A", ResName: "LYS", ResNum: 14}, ref)

	ref, ok = ParseNodeID("B:CYS:3:SG")
	require.True(t, ok)
	assert.Equal(t, "SG", ref.Atom)

	_, ok = ParseNodeID("A:LYS")
	assert.False(t, ok)
	_, ok = ParseNodeID("A:LYS:x")
	assert.False(t, ok)
}

func TestSubgraph(t *testing.T) {
	g, err := Build(line(6, 3.8), residueOpts())
	require.NoError(t, err)

	sub := g.Subgraph([]int{4, 2, 3})
	require.Equal(t, 3, sub.NumNodes())
	assert.Equal(t, "A:ALA:5", sub.Node(0).ID)
	assert.Equal(t, 3, sub.NumEdges())
	assert.True(t, sub.HasEdge(0, 2), "4-3 peptide edge")
	assert.Equal(t, 3, sub.Undirected().Nodes().Len())
	assert.Equal(t, 9, g.NumEdges(), "parent is untouched")
}

func TestParseGranularity(t *testing.T) {
	assert.Equal(t, AtomLevel, ParseGranularity("ATOM"))
	assert.Equal(t, ResidueLevel, ParseGranularity("CA"))
	assert.Equal(t, ResidueLevel, ParseGranularity("residue"))
	assert.Equal(t, "atom", AtomLevel.String())
}
