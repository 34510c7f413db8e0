// Package psf reads the atom section of CHARMM protein structure files and
// copies their per-atom partial charges onto a structure read from a PDB
// file.
package psf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DeuxMachin/toxgraph/pdb"
)

type File struct {
	Atoms []Atom
}

type Atom struct {
	ID      int
	Segment string
	ResID   int
	ResName string
	Name    string
	Type    string
	Charge  float64
	Mass    float64
}

// Read parses the !NATOM section of a PSF file. All other sections (bonds,
// angles, ...) are skipped.
func Read(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	natom := -1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !strings.Contains(line, "!NATOM") {
			continue
		}
		fields := strings.Fields(line)
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("Could not read the atom count on line %d "+
				"of the PSF file: %s", lineNum, err)
		}
		natom = n
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if natom < 0 {
		return nil, fmt.Errorf("The PSF file has no !NATOM section.")
	}

	f := &File{Atoms: make([]Atom, 0, natom)}
	for len(f.Atoms) < natom && scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		atom, err := readAtom(fields)
		if err != nil {
			return nil, fmt.Errorf("Could not read line %d of the PSF "+
				"file: %s", lineNum, err)
		}
		f.Atoms = append(f.Atoms, atom)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(f.Atoms) < natom {
		return nil, fmt.Errorf("The PSF file declares %d atoms but only %d "+
			"could be read.", natom, len(f.Atoms))
	}
	return f, nil
}

func readAtom(fields []string) (Atom, error) {
	if len(fields) < 8 {
		return Atom{}, fmt.Errorf("expected at least 8 fields but got %d",
			len(fields))
	}
	var (
		a   Atom
		err error
	)
	if a.ID, err = strconv.Atoi(fields[0]); err != nil {
		return Atom{}, err
	}
	a.Segment = fields[1]
	if a.ResID, err = leadingInt(fields[2]); err != nil {
		return Atom{}, err
	}
	a.ResName = fields[3]
	a.Name = fields[4]
	a.Type = fields[5]
	if a.Charge, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return Atom{}, err
	}
	if a.Mass, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return Atom{}, err
	}
	return a, nil
}

// Residue ids may carry an insertion code, as in "27A".
func leadingInt(s string) (int, error) {
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strconv.Atoi(s[:end])
}

// TotalCharge is the sum of all atomic partial charges.
func (f *File) TotalCharge() float64 {
	total := 0.0
	for _, a := range f.Atoms {
		total += a.Charge
	}
	return total
}

type atomKey struct {
	chain byte
	resID int
	name  string
}

type looseKey struct {
	resID int
	name  string
}

// Apply copies partial charges onto the atoms of entry and returns the number
// of atoms that were matched.
//
// An atom is matched on chain, residue number and atom name, where the chain
// of a PSF atom is the last character of its segment name (PROA is chain A).
// When segment names don't follow that convention, atoms fall back to being
// matched on residue number and atom name alone, as long as that is
// unambiguous.
//
// If at least one atom is matched, entry.HasAtomicCharges is set.
func (f *File) Apply(entry *pdb.Entry) int {
	exact := make(map[atomKey]float64, len(f.Atoms))
	loose := make(map[looseKey]float64, len(f.Atoms))
	ambiguous := make(map[looseKey]bool)
	for _, a := range f.Atoms {
		var chain byte = ' '
		if len(a.Segment) > 0 {
			chain = a.Segment[len(a.Segment)-1]
		}
		exact[atomKey{chain, a.ResID, a.Name}] = a.Charge

		lk := looseKey{a.ResID, a.Name}
		if _, ok := loose[lk]; ok {
			ambiguous[lk] = true
		}
		loose[lk] = a.Charge
	}

	matched := 0
	for _, r := range entry.Residues() {
		for i := range r.Atoms {
			atom := &r.Atoms[i]
			q, ok := exact[atomKey{r.Chain, r.SequenceNum, atom.Name}]
			if !ok {
				lk := looseKey{r.SequenceNum, atom.Name}
				if ambiguous[lk] {
					continue
				}
				if q, ok = loose[lk]; !ok {
					continue
				}
			}
			atom.Charge = q
			atom.HasCharge = true
			matched++
		}
	}
	if matched > 0 {
		entry.HasAtomicCharges = true
	}
	return matched
}
