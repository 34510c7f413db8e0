package pdb

import (
	"fmt"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"

	"github.com/DeuxMachin/toxgraph/amino"
)

type Entry struct {
	Path   string
	IdCode string
	Chains []*Chain

	// Set when per-atom partial charges have been applied (from a PSF file).
	HasAtomicCharges bool
}

type Chain struct {
	Entry    *Entry
	Ident    byte
	Residues []*Residue
}

type Residue struct {
	Chain         byte
	SequenceNum   int
	InsertionCode byte

	// Name is the normalized three letter name and Original is the name
	// exactly as it appeared in the file.
	Name     string
	Original string
	Abbrev   seq.Residue
	Het      bool

	SS      SecondaryStructure
	SASA    float64
	HasSASA bool

	Atoms []Atom
}

type Atom struct {
	Serial  int
	Name    string
	AltLoc  byte
	Element string
	Het     bool
	structure.Coords

	Charge    float64
	HasCharge bool
}

func NewEntry(path string) *Entry {
	return &Entry{
		Path:   path,
		Chains: make([]*Chain, 0, 1),
	}
}

// Chain returns a chain with the given identifier.
// If such a chain does not exist, nil is returned.
func (e *Entry) Chain(ident byte) *Chain {
	for _, chain := range e.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	return nil
}

// AddAtom adds an atom to the residue identified by chain, residue name and
// sequence number, creating the chain and residue if they don't exist yet.
// The residue name is normalized. The residue the atom was added to is
// returned.
//
// Atoms sharing a name with an atom already in the residue are alternate
// locations, and are dropped.
func (e *Entry) AddAtom(chain byte, resName string, seqNum int, atom Atom) *Residue {
	return e.addAtom(chain, resName, seqNum, ' ', atom)
}

func (e *Entry) addAtom(chain byte, resName string, seqNum int, icode byte,
	atom Atom) *Residue {

	c := e.Chain(chain)
	if c == nil {
		c = &Chain{Entry: e, Ident: chain, Residues: make([]*Residue, 0, 25)}
		e.Chains = append(e.Chains, c)
	}

	// Atoms of one residue are almost always contiguous, so look at the end
	// first.
	var res *Residue
	for i := len(c.Residues) - 1; i >= 0; i-- {
		r := c.Residues[i]
		if r.SequenceNum == seqNum && r.InsertionCode == icode {
			res = r
			break
		}
	}
	if res == nil {
		name := amino.Normalize(resName)
		res = &Residue{
			Chain:         chain,
			SequenceNum:   seqNum,
			InsertionCode: icode,
			Name:          name,
			Original:      resName,
			Abbrev:        amino.OneLetter(name),
			Het:           atom.Het,
			Atoms:         make([]Atom, 0, 8),
		}
		c.Residues = append(c.Residues, res)
	}
	if res.Atom(atom.Name) != nil {
		return res
	}
	if len(atom.Element) == 0 {
		atom.Element = guessElement(atom.Name)
	}
	res.Atoms = append(res.Atoms, atom)
	return res
}

// Residues returns every residue of every chain, in file order.
func (e *Entry) Residues() []*Residue {
	all := make([]*Residue, 0, 64)
	for _, c := range e.Chains {
		all = append(all, c.Residues...)
	}
	return all
}

// StandardResidues is like Residues, but only returns residues that are one
// of the twenty standard amino acids (after normalization).
func (e *Entry) StandardResidues() []*Residue {
	all := make([]*Residue, 0, 64)
	for _, c := range e.Chains {
		for _, r := range c.Residues {
			if r.IsStandard() {
				all = append(all, r)
			}
		}
	}
	return all
}

// NumAtoms returns the total number of atoms kept from the file.
func (e *Entry) NumAtoms() int {
	n := 0
	for _, c := range e.Chains {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

// Sequence returns the amino acid sequence of a chain as read from its
// coordinate records. Non-standard residues are skipped.
func (c *Chain) Sequence() seq.Sequence {
	residues := make([]seq.Residue, 0, len(c.Residues))
	for _, r := range c.Residues {
		if r.IsStandard() {
			residues = append(residues, r.Abbrev)
		}
	}
	name := c.Entry.IdCode
	if len(name) == 0 {
		name = c.Entry.Path
	}
	return seq.Sequence{
		Name:     fmt.Sprintf("%s:%c", name, c.Ident),
		Residues: residues,
	}
}

func (r *Residue) IsStandard() bool {
	return r.Abbrev != amino.Unknown
}

// Atom returns the atom with the given name, or nil.
func (r *Residue) Atom(name string) *Atom {
	for i := range r.Atoms {
		if r.Atoms[i].Name == name {
			return &r.Atoms[i]
		}
	}
	return nil
}

// Ca returns the alpha-carbon atom in this residue.
// If one does not exist, nil is returned.
func (r *Residue) Ca() *Atom {
	return r.Atom("CA")
}

func (r *Residue) String() string {
	if r.InsertionCode != ' ' && r.InsertionCode != 0 {
		return fmt.Sprintf("%c:%s:%d%c",
			r.Chain, r.Name, r.SequenceNum, r.InsertionCode)
	}
	return fmt.Sprintf("%c:%s:%d", r.Chain, r.Name, r.SequenceNum)
}

// guessElement derives the element from an atom name when columns 77-78 are
// blank. Leading digits (as in 1HB) are skipped.
func guessElement(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return name[i : i+1]
		}
	}
	return ""
}
