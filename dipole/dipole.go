// Package dipole computes the electric dipole moment of a structure from
// point charges.
//
// Two charge models are supported. When partial charges were read from a PSF
// file, every charged atom contributes a point. Otherwise each standard
// residue contributes one point at its alpha-carbon, charged according to
// the residue table in package amino.
package dipole

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/amino"
	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/pdb"
)

// Debye converts e·Å to debye.
const Debye = 4.803

var ErrNoContributingPoints = errors.New("no charged points contribute to the dipole")

// ComputationError is returned when a dipole cannot be computed for a
// structure.
type ComputationError struct {
	Structure string
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("Could not compute the dipole moment of '%s': %s",
		e.Structure, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

type Mode int

const (
	// Residue places one table-charged point per residue at its
	// alpha-carbon.
	Residue Mode = iota

	// Atomic places one point per atom carrying a partial charge.
	Atomic
)

func (m Mode) String() string {
	if m == Atomic {
		return "atomic"
	}
	return "residue"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Dipole is the sum of charge times position over all contributing points.
// Positions are taken in the structure's own frame, so the vector of a
// charged molecule depends on where it sits; Origin is reported so callers
// can recentre.
type Dipole struct {
	Vector    r3.Vec  `json:"vector"`
	Magnitude float64 `json:"magnitude"`

	// Direction is the unit vector along Vector, or the zero vector when
	// Magnitude is zero.
	Direction r3.Vec `json:"direction"`

	// Origin is the centroid of the contributing points.
	Origin r3.Vec `json:"origin"`

	Debye  float64 `json:"debye"`
	Mode   Mode    `json:"mode"`
	Points int     `json:"points"`
	Charge float64 `json:"net_charge"`
}

type point struct {
	pos    r3.Vec
	charge float64
}

// FromEntry computes the dipole of the standard residues in entry. Atomic
// mode is used whenever the entry carries PSF charges.
func FromEntry(entry *pdb.Entry) (Dipole, error) {
	var name string
	points := make([]point, 0, 64)
	mode := Residue
	if entry != nil {
		name = entry.IdCode
		if entry.HasAtomicCharges {
			mode = Atomic
		}
		for _, r := range entry.StandardResidues() {
			if mode == Atomic {
				for _, a := range r.Atoms {
					if a.HasCharge {
						points = append(points, point{coords(a), a.Charge})
					}
				}
				continue
			}
			if ca := r.Ca(); ca != nil {
				points = append(points, point{coords(*ca), amino.Charge(r.Abbrev)})
			}
		}
	}
	return compute(name, mode, points)
}

// FromGraph computes the dipole from the nodes of g. An atom graph built
// from a structure with partial charges uses its charged atoms. Any other
// graph uses one point per residue at its alpha-carbon, charged with the
// residue charge.
func FromGraph(g *graph.Graph) (Dipole, error) {
	points := make([]point, 0, g.NumNodes())
	mode := Residue
	for _, n := range g.Nodes() {
		if n.Atom != nil && n.Atom.HasCharge {
			mode = Atomic
			points = append(points, point{n.Pos, n.Atom.Charge})
		}
	}
	if mode == Residue {
		for _, r := range g.Residues() {
			if r.HasCA {
				points = append(points, point{r.Pos, r.Charge})
			}
		}
	}
	return compute("graph", mode, points)
}

func compute(name string, mode Mode, points []point) (Dipole, error) {
	if len(points) == 0 {
		return Dipole{Mode: mode}, &ComputationError{
			Structure: name,
			Err:       ErrNoContributingPoints,
		}
	}
	d := Dipole{Mode: mode, Points: len(points)}
	var sum r3.Vec
	for _, p := range points {
		d.Vector = r3.Add(d.Vector, r3.Scale(p.charge, p.pos))
		d.Charge += p.charge
		sum = r3.Add(sum, p.pos)
	}
	d.Origin = r3.Scale(1/float64(len(points)), sum)
	d.Magnitude = r3.Norm(d.Vector)
	if d.Magnitude > 0 {
		d.Direction = r3.Scale(1/d.Magnitude, d.Vector)
	}
	d.Debye = d.Magnitude * Debye
	return d, nil
}

func coords(a pdb.Atom) r3.Vec {
	return r3.Vec{X: a.X, Y: a.Y, Z: a.Z}
}
