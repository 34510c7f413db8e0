// Package sasa estimates solvent accessible surface area with the
// Shrake-Rupley algorithm. It is used when no DSSP output is available for a
// structure.
package sasa

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/DeuxMachin/toxgraph/pdb"
)

const (
	DefaultProbe  = 1.4
	DefaultPoints = 100
)

// Van der Waals radii in Ångströms, keyed by element.
var radii = map[string]float64{
	"C": 1.7, "N": 1.55, "O": 1.52, "S": 1.8, "H": 1.1,
}

const defaultRadius = 1.8

type Options struct {
	// Probe radius in Å.
	Probe float64 `yaml:"probe" json:"probe"`

	// Points sampled on each atom's sphere.
	Points int `yaml:"points" json:"points"`
}

func DefaultOptions() Options {
	return Options{Probe: DefaultProbe, Points: DefaultPoints}
}

type sphere struct {
	center r3.Vec
	radius float64
	res    *pdb.Residue
}

// Compute returns the accessible area of every standard residue in entry.
// Atoms of non-standard residues (waters, ligands) are ignored entirely, so
// they neither contribute area nor occlude.
func Compute(entry *pdb.Entry, opts Options) map[*pdb.Residue]float64 {
	if opts.Points <= 0 {
		opts.Points = DefaultPoints
	}
	spheres := make([]sphere, 0, entry.NumAtoms())
	for _, r := range entry.StandardResidues() {
		for _, a := range r.Atoms {
			rad, ok := radii[a.Element]
			if !ok {
				rad = defaultRadius
			}
			spheres = append(spheres, sphere{
				center: r3.Vec{X: a.X, Y: a.Y, Z: a.Z},
				radius: rad + opts.Probe,
				res:    r,
			})
		}
	}

	dots := spiral(opts.Points)
	area := make(map[*pdb.Residue]float64, len(spheres)/8+1)
	neighbors := make([]int, 0, 64)
	for i, si := range spheres {
		neighbors = neighbors[:0]
		for j, sj := range spheres {
			if i == j {
				continue
			}
			if r3.Norm(r3.Sub(si.center, sj.center)) < si.radius+sj.radius {
				neighbors = append(neighbors, j)
			}
		}

		accessible := 0
		for _, d := range dots {
			p := r3.Add(si.center, r3.Scale(si.radius, d))
			buried := false
			for _, j := range neighbors {
				sj := spheres[j]
				if r3.Norm2(r3.Sub(p, sj.center)) < sj.radius*sj.radius {
					buried = true
					break
				}
			}
			if !buried {
				accessible++
			}
		}
		frac := float64(accessible) / float64(len(dots))
		area[si.res] += 4 * math.Pi * si.radius * si.radius * frac
	}
	return area
}

// Apply computes SASA and stores it on each standard residue of entry.
func Apply(entry *pdb.Entry, opts Options) {
	area := Compute(entry, opts)
	for _, r := range entry.StandardResidues() {
		r.SASA = area[r]
		r.HasSASA = true
	}
}

// spiral places n points roughly evenly on the unit sphere.
func spiral(n int) []r3.Vec {
	dots := make([]r3.Vec, n)
	inc := math.Pi * (3 - math.Sqrt(5))
	off := 2 / float64(n)
	for k := 0; k < n; k++ {
		y := float64(k)*off - 1 + off/2
		r := math.Sqrt(1 - y*y)
		phi := float64(k) * inc
		dots[k] = r3.Vec{X: math.Cos(phi) * r, Y: y, Z: math.Sin(phi) * r}
	}
	return dots
}
