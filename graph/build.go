package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/amino"
	"github.com/DeuxMachin/toxgraph/pdb"
)

type builder struct {
	opts     Options
	entry    *pdb.Entry
	nodes    []Node
	residues []*Residue
	edges    map[pair]Edge

	// Residue graphs map each source residue to its node. Atom graphs map
	// each cysteine to its SG node.
	resNode map[*pdb.Residue]int
	sgNode  map[*pdb.Residue]int
	res     map[*pdb.Residue]*Residue
}

// Build constructs a graph from the standard amino acid residues of entry.
//
// A structure with no qualifying nodes (say, no alpha-carbons in a residue
// graph) produces an empty graph, not an error. A *ConstructionError is only
// returned for geometry that the loader should never produce, namely
// non-finite coordinates. Nodes at the same position are not an error; they
// are simply not joined by a distance edge. Invalid options produce an error
// wrapping ErrInvalidOptions.
func Build(entry *pdb.Entry, opts Options) (*Graph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := &builder{
		opts:    opts,
		entry:   entry,
		nodes:   make([]Node, 0, 64),
		edges:   make(map[pair]Edge, 256),
		resNode: make(map[*pdb.Residue]int),
		sgNode:  make(map[*pdb.Residue]int),
		res:     make(map[*pdb.Residue]*Residue),
	}
	if entry == nil {
		return newGraph(opts, b.nodes, b.residues, b.edges, nil), nil
	}

	std := entry.StandardResidues()
	raw := findDisulfides(std, opts.DisulfideCutoff)
	bonded := make(map[*pdb.Residue]bool, 2*len(raw))
	for _, rb := range raw {
		bonded[rb.a] = true
		bonded[rb.b] = true
	}

	if err := b.addNodes(std, bonded); err != nil {
		return nil, err
	}
	tagPharmacophore(b.residues, opts.Pharmacophore)

	b.addDistanceEdges()
	if opts.Granularity == ResidueLevel {
		b.addPeptideEdges()
	}
	bonds := b.addDisulfideEdges(raw)
	return newGraph(opts, b.nodes, b.residues, b.edges, bonds), nil
}

func (b *builder) addNodes(std []*pdb.Residue, bonded map[*pdb.Residue]bool) error {
	for _, r := range std {
		atoms := b.nodeAtoms(r)
		if len(atoms) == 0 {
			continue
		}
		res := b.newResidue(r, bonded[r])
		for _, a := range atoms {
			if !finite(a.X) || !finite(a.Y) || !finite(a.Z) {
				return &ConstructionError{
					Node:   atomID(res, a.Name),
					Reason: "coordinates are not finite",
				}
			}
		}
		b.residues = append(b.residues, res)
		b.res[r] = res

		if b.opts.Granularity == ResidueLevel {
			b.resNode[r] = len(b.nodes)
			b.nodes = append(b.nodes, Node{
				ID:      res.ID,
				Pos:     res.Pos,
				Residue: res,
			})
			continue
		}
		for _, a := range atoms {
			if a.Name == "SG" && r.Abbrev == 'C' {
				b.sgNode[r] = len(b.nodes)
			}
			b.nodes = append(b.nodes, Node{
				ID:      atomID(res, a.Name),
				Pos:     vec(a),
				Residue: res,
				Atom: &AtomInfo{
					Name:      a.Name,
					Element:   a.Element,
					Serial:    a.Serial,
					Charge:    a.Charge,
					HasCharge: a.HasCharge,
				},
			})
		}
	}
	return nil
}

// nodeAtoms returns the atoms of r that become nodes: the alpha-carbon for
// residue graphs, and every (possibly non-hydrogen) atom for atom graphs.
func (b *builder) nodeAtoms(r *pdb.Residue) []pdb.Atom {
	if b.opts.Granularity == ResidueLevel {
		if ca := r.Ca(); ca != nil {
			return []pdb.Atom{*ca}
		}
		return nil
	}
	if !b.opts.Deprotonate {
		return r.Atoms
	}
	heavy := make([]pdb.Atom, 0, len(r.Atoms))
	for _, a := range r.Atoms {
		if a.Element != "H" {
			heavy = append(heavy, a)
		}
	}
	return heavy
}

func (b *builder) newResidue(r *pdb.Residue, bonded bool) *Residue {
	chain, icode := string(r.Chain), insertionCode(r.InsertionCode)
	res := &Residue{
		ID:             residueID(chain, r.Name, r.SequenceNum, icode),
		Chain:          chain,
		Name:           r.Name,
		Number:         r.SequenceNum,
		InsertionCode:  icode,
		Abbrev:         r.Abbrev,
		Class:          amino.Classify(r.Abbrev),
		NumAtom:        len(r.Atoms),
		SS:             r.SS,
		SASA:           r.SASA,
		HasSASA:        r.HasSASA,
		Hydrophobicity: amino.Hydrophobicity(r.Abbrev),
		Charge:         amino.Charge(r.Abbrev),
		Disulfide:      bonded,
	}
	res.Surface = r.HasSASA && r.SASA > b.opts.SurfaceThreshold

	if ca := r.Ca(); ca != nil {
		res.Pos = vec(*ca)
		res.HasCA = true
	} else {
		var sum r3.Vec
		for _, a := range r.Atoms {
			sum = r3.Add(sum, vec(a))
		}
		res.Pos = r3.Scale(1/float64(len(r.Atoms)), sum)
	}

	if b.entry.HasAtomicCharges {
		total, found := 0.0, false
		for _, a := range r.Atoms {
			if a.HasCharge {
				total += a.Charge
				found = true
			}
		}
		if found {
			res.Charge = total
		}
	}
	return res
}

// separation returns the sequence separation of two residues, or -1 when
// they're on different chains.
func separation(a, b *Residue) int {
	if a.Chain != b.Chain {
		return -1
	}
	d := a.Number - b.Number
	if d < 0 {
		d = -d
	}
	return d
}

func (b *builder) longRange(sep int) bool {
	return sep < 0 || sep > b.opts.LongRangeSeparation
}

func (b *builder) addDistanceEdges() {
	threshold := b.opts.DistanceThreshold
	for i := 0; i < len(b.nodes); i++ {
		for j := i + 1; j < len(b.nodes); j++ {
			ni, nj := b.nodes[i], b.nodes[j]
			d := r3.Norm(r3.Sub(ni.Pos, nj.Pos))
			if d > threshold {
				continue
			}
			// Coincident nodes get no distance edge.
			if d == 0 {
				continue
			}
			sep := separation(ni.Residue, nj.Residue)
			if b.opts.LongRangeOnly && sep >= 0 && sep < b.opts.LongRangeSeparation {
				continue
			}
			b.setEdge(Edge{
				U:             i,
				V:             j,
				Type:          Distance,
				Weight:        d,
				Strength:      1 / d,
				SeqSeparation: sep,
				LongRange:     b.longRange(sep),
			})
		}
	}
}

func (b *builder) addPeptideEdges() {
	type key struct {
		chain string
		num   int
	}
	byKey := make(map[key][]int, len(b.nodes))
	for i, n := range b.nodes {
		k := key{n.Residue.Chain, n.Residue.Number}
		byKey[k] = append(byKey[k], i)
	}
	for i, n := range b.nodes {
		next := key{n.Residue.Chain, n.Residue.Number + 1}
		for _, j := range byKey[next] {
			b.setEdge(Edge{
				U:             i,
				V:             j,
				Type:          Peptide,
				Weight:        PeptideWeight,
				Strength:      PeptideStrength,
				SeqSeparation: 1,
				LongRange:     b.longRange(1),
			})
		}
	}
}

func (b *builder) addDisulfideEdges(raw []rawBond) []Bond {
	bonds := make([]Bond, 0, len(raw))
	nodeOf := b.resNode
	if b.opts.Granularity == AtomLevel {
		nodeOf = b.sgNode
	}
	for _, rb := range raw {
		ra, okA := b.res[rb.a]
		rb2, okB := b.res[rb.b]
		if !okA || !okB {
			continue
		}
		bonds = append(bonds, Bond{A: ra, B: rb2, Distance: rb.distance})

		u, okU := nodeOf[rb.a]
		v, okV := nodeOf[rb.b]
		if !okU || !okV {
			continue
		}
		sep := separation(ra, rb2)
		b.setEdge(Edge{
			U:             u,
			V:             v,
			Type:          Disulfide,
			Weight:        DisulfideWeight,
			Strength:      DisulfideStrength,
			SeqSeparation: sep,
			LongRange:     b.longRange(sep),
		})
	}
	return bonds
}

// setEdge adds e unless an edge of the same or a more specific type already
// joins its endpoints.
func (b *builder) setEdge(e Edge) {
	p := newPair(e.U, e.V)
	e.U, e.V = p.u, p.v
	if old, ok := b.edges[p]; ok && old.Type >= e.Type {
		return
	}
	b.edges[p] = e
}

type rawBond struct {
	a, b     *pdb.Residue
	distance float64
}

// findDisulfides pairs up cysteines whose SG atoms are strictly closer than
// cutoff.
func findDisulfides(residues []*pdb.Residue, cutoff float64) []rawBond {
	type cys struct {
		res *pdb.Residue
		sg  r3.Vec
	}
	cysteines := make([]cys, 0, 8)
	for _, r := range residues {
		if r.Abbrev != 'C' {
			continue
		}
		if sg := r.Atom("SG"); sg != nil {
			cysteines = append(cysteines, cys{r, vec(*sg)})
		}
	}

	bonds := make([]rawBond, 0, len(cysteines)/2)
	for i := 0; i < len(cysteines); i++ {
		for j := i + 1; j < len(cysteines); j++ {
			d := r3.Norm(r3.Sub(cysteines[i].sg, cysteines[j].sg))
			if d < cutoff {
				bonds = append(bonds, rawBond{cysteines[i].res, cysteines[j].res, d})
			}
		}
	}
	return bonds
}

func vec(a pdb.Atom) r3.Vec {
	return r3.Vec{X: a.X, Y: a.Y, Z: a.Z}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
