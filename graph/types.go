package graph

import (
	"fmt"
	"strings"

	"github.com/TuftsBCB/seq"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/amino"
	"github.com/DeuxMachin/toxgraph/pdb"
)

type Granularity int

const (
	ResidueLevel Granularity = iota
	AtomLevel
)

// ParseGranularity accepts "atom" (in any case) for atom graphs. Anything
// else, including "CA" and "residue", means a residue graph.
func ParseGranularity(s string) Granularity {
	if strings.EqualFold(strings.TrimSpace(s), "atom") {
		return AtomLevel
	}
	return ResidueLevel
}

func (g Granularity) String() string {
	if g == AtomLevel {
		return "atom"
	}
	return "residue"
}

func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Granularity) UnmarshalText(text []byte) error {
	*g = ParseGranularity(string(text))
	return nil
}

// EdgeType orders edge kinds by specificity. A larger value wins when two
// edges connect the same nodes.
type EdgeType int

const (
	Distance EdgeType = iota
	Peptide
	Disulfide
)

func (t EdgeType) String() string {
	switch t {
	case Peptide:
		return "peptide"
	case Disulfide:
		return "disulfide"
	}
	return "distance"
}

func (t EdgeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Fixed weights and interaction strengths of bonded edges. Distance edges
// are weighted by their length and have strength 1/length.
const (
	PeptideWeight     = 1.0
	PeptideStrength   = 5.0
	DisulfideWeight   = 1.0
	DisulfideStrength = 10.0
)

// Residue holds the per-residue attributes shared by every node of that
// residue.
type Residue struct {
	ID     string      `json:"id"`
	Chain  string      `json:"chain"`
	Name   string      `json:"name"`
	Number int         `json:"number"`
	Abbrev seq.Residue `json:"abbrev"`

	// InsertionCode is empty unless the residue carries one, as in 27A.
	InsertionCode string `json:"insertion_code,omitempty"`

	Class   amino.Class `json:"class"`
	Pos     r3.Vec      `json:"pos"`
	HasCA   bool        `json:"has_ca"`
	NumAtom int         `json:"num_atoms"`

	SS      pdb.SecondaryStructure `json:"secondary_structure"`
	SASA    float64                `json:"sasa"`
	HasSASA bool                   `json:"has_sasa"`

	Hydrophobicity float64 `json:"hydrophobicity"`

	// Charge is the sum of atomic partial charges when the structure carries
	// them, and the residue table value otherwise.
	Charge float64 `json:"charge"`

	Disulfide     bool   `json:"is_in_disulfide"`
	Surface       bool   `json:"is_surface"`
	Pharmacophore string `json:"pharmacophore_part,omitempty"`
}

// AtomInfo is only set on the nodes of atom graphs.
type AtomInfo struct {
	Name      string  `json:"name"`
	Element   string  `json:"element"`
	Serial    int     `json:"serial"`
	Charge    float64 `json:"charge"`
	HasCharge bool    `json:"has_charge"`
}

type Node struct {
	ID      string    `json:"id"`
	Pos     r3.Vec    `json:"pos"`
	Residue *Residue  `json:"residue"`
	Atom    *AtomInfo `json:"atom,omitempty"`
}

// Charge is the node's contribution to the dipole moment: the atomic charge
// for atom nodes (zero when unknown) and the residue charge otherwise.
func (n Node) Charge() float64 {
	if n.Atom != nil {
		return n.Atom.Charge
	}
	return n.Residue.Charge
}

// Edge connects the nodes at indices U < V.
type Edge struct {
	U        int      `json:"u"`
	V        int      `json:"v"`
	Type     EdgeType `json:"type"`
	Weight   float64  `json:"weight"`
	Strength float64  `json:"interaction_strength"`

	// SeqSeparation is the difference in residue numbers of the endpoints,
	// or -1 if they lie on different chains. Inter-chain edges are always
	// long-range.
	SeqSeparation int  `json:"sequence_separation"`
	LongRange     bool `json:"long_range"`
}

// Bond is a disulfide bridge between two cysteines.
type Bond struct {
	A, B     *Residue
	Distance float64
}

func (b Bond) String() string {
	return fmt.Sprintf("%s-%s (%.2f Å)", b.A.ID, b.B.ID, b.Distance)
}
