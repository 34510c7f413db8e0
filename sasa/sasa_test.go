package sasa

import (
	"math"
	"testing"

	"github.com/TuftsBCB/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/pdb"
)

func at(x, y, z float64) structure.Coords {
	return structure.Coords{X: x, Y: y, Z: z}
}

func TestIsolatedAtom(t *testing.T) {
	e := pdb.NewEntry("test")
	r := e.AddAtom('A', "GLY", 1, pdb.Atom{Name: "CA", Element: "C", Coords: at(0, 0, 0)})

	area := Compute(e, DefaultOptions())
	want := 4 * math.Pi * (1.7 + DefaultProbe) * (1.7 + DefaultProbe)
	assert.InDelta(t, want, area[r], 1e-9)
}

func TestBurial(t *testing.T) {
	e := pdb.NewEntry("test")
	a := e.AddAtom('A', "GLY", 1, pdb.Atom{Name: "CA", Element: "C", Coords: at(0, 0, 0)})
	b := e.AddAtom('A', "GLY", 2, pdb.Atom{Name: "CA", Element: "C", Coords: at(2, 0, 0)})
	far := e.AddAtom('A', "GLY", 3, pdb.Atom{Name: "CA", Element: "C", Coords: at(100, 0, 0)})
	e.AddAtom('A', "HOH", 4, pdb.Atom{Name: "O", Element: "O", Coords: at(100, 1, 0)})

	Apply(e, DefaultOptions())
	full := 4 * math.Pi * (1.7 + DefaultProbe) * (1.7 + DefaultProbe)
	assert.Less(t, a.SASA, full)
	assert.Greater(t, a.SASA, 0.0)
	assert.InDelta(t, a.SASA, b.SASA, 0.1*full, "symmetric pair")
	assert.InDelta(t, full, far.SASA, 1e-9, "waters never occlude")
	assert.True(t, far.HasSASA)
}

func TestSpiral(t *testing.T) {
	dots := spiral(50)
	require.Len(t, dots, 50)
	for _, d := range dots {
		assert.InDelta(t, 1.0, r3.Norm(d), 1e-9)
	}
}
