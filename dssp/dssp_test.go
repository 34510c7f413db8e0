package dssp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeuxMachin/toxgraph/pdb"
)

func residueLine(idx, num int, chain, aa, ss byte, acc int) string {
	return fmt.Sprintf("%5d%5d%c%c %c  %c%17s%4d      0, 0.0     2,-0.3",
		idx, num, ' ', chain, aa, ss, "", acc)
}

func testOutput() string {
	return strings.Join([]string{
		"==== Secondary Structure Definition by the program DSSP ====",
		"    4  1  0  0  0 TOTAL NUMBER OF RESIDUES",
		"  #  RESIDUE AA STRUCTURE BP1 BP2  ACC     N-H-->O",
		residueLine(1, 1, 'A', 'K', ' ', 180),
		residueLine(2, 2, 'A', 'C', 'E', 12),
		"    3        !              0   0    0      0, 0.0",
		residueLine(4, 3, 'A', 'W', 'H', 40),
		residueLine(5, 4, 'A', 'G', 'T', 0),
	}, "\n")
}

func TestClassify(t *testing.T) {
	tests := map[byte]pdb.SecondaryStructure{
		'H': pdb.SSHelix, 'G': pdb.SSHelix, 'I': pdb.SSHelix,
		'E': pdb.SSBeta, 'B': pdb.SSBeta,
		'T': pdb.SSTurn, 'S': pdb.SSBend,
		' ': pdb.SSLoop, '-': pdb.SSLoop,
		'P': pdb.SSUnknown,
	}
	for code, want := range tests {
		assert.Equal(t, want, Classify(code), "code %q", code)
	}
}

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(testOutput()))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, byte('A'), records[0].Chain)
	assert.Equal(t, 1, records[0].SequenceNum)
	assert.Equal(t, byte('K'), records[0].Amino)
	assert.Equal(t, 180.0, records[0].ACC)
	assert.Equal(t, pdb.SSLoop, records[0].Secondary())
	assert.Equal(t, pdb.SSBeta, records[1].Secondary())
	assert.Equal(t, pdb.SSHelix, records[2].Secondary())
	assert.Equal(t, 3, records[2].SequenceNum)
}

func TestReadNotDSSP(t *testing.T) {
	_, err := Read(strings.NewReader("HEADER    NOT DSSP\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	records, err := Read(strings.NewReader(testOutput()))
	require.NoError(t, err)

	e := pdb.NewEntry("test")
	e.AddAtom('A', "LYS", 1, pdb.Atom{Name: "CA"})
	e.AddAtom('A', "CYS", 2, pdb.Atom{Name: "CA"})
	e.AddAtom('B', "CYS", 2, pdb.Atom{Name: "CA"})

	assert.Equal(t, 2, Apply(e, records))
	lys := e.Chain('A').Residues[0]
	assert.True(t, lys.HasSASA)
	assert.Equal(t, 180.0, lys.SASA)
	assert.Equal(t, pdb.SSBeta, e.Chain('A').Residues[1].SS)
	assert.False(t, e.Chain('B').Residues[0].HasSASA)
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), "mkdssp-does-not-exist", "x.pdb")
	assert.Error(t, err)
}
