package compare

import (
	"errors"
	"fmt"
	"io"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/DeuxMachin/toxgraph/fasta"
	"github.com/DeuxMachin/toxgraph/pdb"
)

// MinRMSDPairs is the smallest number of aligned alpha-carbon pairs RMSD is
// computed over.
const MinRMSDPairs = 3

var ErrTooFewPairs = errors.New("too few aligned alpha-carbons for RMSD")

// ErrNoReference is returned when a FASTA reference holds no sequence.
var ErrNoReference = errors.New("no reference sequence")

const gap = seq.Residue('-')

// Alignment is a global pairwise alignment. Both rows have the same length
// and use '-' for gaps.
type Alignment struct {
	Reference seq.Sequence `json:"reference"`
	Variant   seq.Sequence `json:"variant"`

	// Matches counts identical columns, Aligned counts columns without a
	// gap in either row.
	Matches int `json:"matches"`
	Aligned int `json:"aligned"`

	// Identity is Matches over the number of columns. It is 1 only for
	// identical sequences.
	Identity float64 `json:"identity"`
}

// Align globally aligns variant against reference.
func Align(reference, variant seq.Sequence) Alignment {
	a := Alignment{
		Reference: seq.Sequence{Name: reference.Name},
		Variant:   seq.Sequence{Name: variant.Name},
	}
	if len(reference.Residues) == 0 || len(variant.Residues) == 0 {
		return a
	}
	nw := seq.NeedlemanWunsch(reference.Residues, variant.Residues,
		seq.SubstBlosum62)
	a.Reference.Residues, a.Variant.Residues = nw.A, nw.B
	for i := range nw.A {
		if nw.A[i] == gap || nw.B[i] == gap {
			continue
		}
		a.Aligned++
		if nw.A[i] == nw.B[i] {
			a.Matches++
		}
	}
	if len(nw.A) > 0 {
		a.Identity = float64(a.Matches) / float64(len(nw.A))
	}
	return a
}

// WriteAlignment writes both rows of a as aligned FASTA.
func WriteAlignment(w io.Writer, a Alignment) error {
	return fasta.NewAlignedWriter(w).WriteAll(
		[]seq.Sequence{a.Reference, a.Variant})
}

// AlignToReference reads the first sequence of the FASTA stream r, usually a
// wild type, and aligns the alpha-carbon sequence of entry against it.
func AlignToReference(r io.Reader, entry *pdb.Entry) (Alignment, error) {
	ref, err := fasta.NewReader(r).Read()
	if err == io.EOF {
		return Alignment{}, ErrNoReference
	} else if err != nil {
		return Alignment{}, fmt.Errorf("Could not read reference: %w", err)
	}
	if len(ref.Residues) == 0 {
		return Alignment{}, fmt.Errorf("%w: '%s' is empty", ErrNoReference, ref.Name)
	}
	s, _ := caSequence(entry)
	return Align(ref, s), nil
}

// caSequence returns the one letter sequence of the standard residues of
// entry that have an alpha-carbon, along with those alpha-carbons.
func caSequence(entry *pdb.Entry) (seq.Sequence, []structure.Coords) {
	s := seq.Sequence{Name: entry.IdCode}
	coords := make([]structure.Coords, 0, 64)
	for _, r := range entry.StandardResidues() {
		ca := r.Ca()
		if ca == nil {
			continue
		}
		s.Residues = append(s.Residues, r.Abbrev)
		coords = append(coords, ca.Coords)
	}
	return s, coords
}

// RMSD aligns the sequences of two structures and returns the RMSD of the
// alpha-carbons of aligned residue pairs, along with the alignment used.
func RMSD(reference, variant *pdb.Entry) (float64, Alignment, error) {
	rseq, rcoords := caSequence(reference)
	vseq, vcoords := caSequence(variant)
	a := Align(rseq, vseq)

	p1 := make([]structure.Coords, 0, a.Aligned)
	p2 := make([]structure.Coords, 0, a.Aligned)
	ri, vi := 0, 0
	for i := range a.Reference.Residues {
		rgap := a.Reference.Residues[i] == gap
		vgap := a.Variant.Residues[i] == gap
		if !rgap && !vgap {
			p1 = append(p1, rcoords[ri])
			p2 = append(p2, vcoords[vi])
		}
		if !rgap {
			ri++
		}
		if !vgap {
			vi++
		}
	}
	if len(p1) < MinRMSDPairs {
		return 0, a, fmt.Errorf("%w: '%s' and '%s' share %d, need %d",
			ErrTooFewPairs, reference.IdCode, variant.IdCode,
			len(p1), MinRMSDPairs)
	}
	return structure.RMSD(p1, p2), a, nil
}
